package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/meshtopo/pkg/domain"
	"github.com/aretw0/meshtopo/pkg/ports"
)

// Source implements ports.MeshOpener over an in-memory RawMesh.
// It counts opened and closed sessions so callers can check that sessions are released.
type Source struct {
	raw *domain.RawMesh

	// ElementsErr, when set, is returned by Elements() to simulate a read failure.
	ElementsErr error

	mu     sync.Mutex
	opened int
	closed int
}

// NewSource creates a Source serving the provided raw mesh.
func NewSource(raw *domain.RawMesh) *Source {
	if raw.LineGroups == nil {
		raw.LineGroups = make(map[domain.ElementID][]domain.GroupID)
	}
	return &Source{raw: raw}
}

// NewFromTriangles creates a Source from plain tuples. This improves DX for tests.
// lines maps a line element id to its two vertices; groups maps it to its physical groups.
func NewFromTriangles(
	vertices map[domain.VertexID]domain.Coord,
	triangles map[domain.ElementID][3]domain.VertexID,
	lines map[domain.ElementID][2]domain.VertexID,
	groups map[domain.ElementID][]domain.GroupID,
) *Source {
	raw := &domain.RawMesh{Vertices: vertices, LineGroups: groups}
	// Triangles first, then lines, each in ascending id order.
	for _, id := range sortedIDs(triangles) {
		vs := triangles[id]
		raw.Elements = append(raw.Elements, domain.Element{ID: id, Kind: domain.KindTriangle, Vertices: vs[:]})
	}
	for _, id := range sortedIDs(lines) {
		vs := lines[id]
		raw.Elements = append(raw.Elements, domain.Element{ID: id, Kind: domain.KindLine, Vertices: vs[:]})
	}
	return NewSource(raw)
}

func sortedIDs[V any](m map[domain.ElementID]V) []domain.ElementID {
	ids := make([]domain.ElementID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Open returns a session over the raw mesh.
func (s *Source) Open(ctx context.Context) (ports.MeshSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened++
	return &session{src: s}, nil
}

// Leaked reports how many sessions are currently not closed.
func (s *Source) Leaked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened - s.closed
}

type session struct {
	src    *Source
	closed bool
}

func (s *session) Vertices() (map[domain.VertexID]domain.Coord, error) {
	if s.closed {
		return nil, fmt.Errorf("session closed")
	}
	return s.src.raw.Vertices, nil
}

func (s *session) Elements() ([]domain.Element, error) {
	if s.closed {
		return nil, fmt.Errorf("session closed")
	}
	if s.src.ElementsErr != nil {
		return nil, s.src.ElementsErr
	}
	return s.src.raw.Elements, nil
}

func (s *session) PhysicalGroupsForLine(id domain.ElementID) ([]domain.GroupID, error) {
	if s.closed {
		return nil, fmt.Errorf("session closed")
	}
	return s.src.raw.LineGroups[id], nil
}

func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.src.mu.Lock()
	s.src.closed++
	s.src.mu.Unlock()
	return nil
}
