package topology

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/meshtopo/pkg/domain"
	"github.com/aretw0/meshtopo/pkg/ports"
)

// Snapshot opens a session on the source, copies everything the builder needs
// into a RawMesh and closes the session before returning, on every path.
func Snapshot(ctx context.Context, opener ports.MeshOpener) (raw *domain.RawMesh, err error) {
	session, err := opener.Open(ctx)
	if err != nil {
		return nil, unavailable("open", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && err == nil {
			raw, err = nil, unavailable("close", cerr)
		}
	}()

	vertices, err := session.Vertices()
	if err != nil {
		return nil, unavailable("read vertices", err)
	}
	elements, err := session.Elements()
	if err != nil {
		return nil, unavailable("read elements", err)
	}

	groups := make(map[domain.ElementID][]domain.GroupID)
	for _, el := range elements {
		if el.Kind != domain.KindLine {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := session.PhysicalGroupsForLine(el.ID)
		if err != nil {
			return nil, unavailable(fmt.Sprintf("read physical groups of line %d", el.ID), err)
		}
		if len(g) > 0 {
			groups[el.ID] = g
		}
	}

	return &domain.RawMesh{Vertices: vertices, Elements: elements, LineGroups: groups}, nil
}

func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, domain.ErrSourceUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrSourceUnavailable, err)
}
