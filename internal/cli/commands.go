package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aretw0/meshtopo/internal/adapters/file"
	"github.com/aretw0/meshtopo/internal/presentation/geo"
	"github.com/aretw0/meshtopo/internal/presentation/graph"
	"github.com/aretw0/meshtopo/internal/presentation/tui"
	"github.com/aretw0/meshtopo/pkg/domain"
)

// Convert reads the input mesh and writes the geometry and topology tables.
func Convert(ctx context.Context, opts Options) error {
	e, err := newEnv(opts)
	if err != nil {
		return err
	}
	return e.finish(ctx, e.convert(ctx))
}

func (e *env) convert(ctx context.Context) error {
	mesh, err := e.conv.Load(ctx, e.source)
	if err != nil {
		return err
	}
	if err := e.conv.Write(ctx, mesh, e.cfg.Geometry, e.cfg.Topology); err != nil {
		return err
	}
	s := mesh.Stats()
	tui.Success(e.stdout, "%s -> %s, %s (%d vertices, %d triangles, %d edges, %d boundary groups)",
		filepath.Base(e.cfg.Input), e.cfg.Geometry, e.cfg.Topology,
		s.Vertices, s.Triangles, s.Edges, s.BoundaryGroups)
	return nil
}

// Validate runs every integrity check on the input mesh and prints each violation.
func Validate(ctx context.Context, opts Options) error {
	e, err := newEnv(opts)
	if err != nil {
		return err
	}
	return e.finish(ctx, e.validate(ctx))
}

func (e *env) validate(ctx context.Context) error {
	err := e.conv.Validate(ctx, e.source)
	violations := domain.Violations(err)
	if len(violations) == 0 {
		if err != nil {
			return err
		}
		tui.Success(e.stdout, "%s is a valid mesh", filepath.Base(e.cfg.Input))
		return nil
	}

	for _, v := range violations {
		var ie *domain.IntegrityError
		if errors.As(v, &ie) {
			tui.Failure(e.stdout, "%s", describe(ie))
			continue
		}
		tui.Failure(e.stdout, "%v", v)
	}
	return fmt.Errorf("%w: %d found in %s", domain.ErrMeshIntegrity, len(violations), filepath.Base(e.cfg.Input))
}

// describe formats a violation without the common prefix, for list output.
func describe(v *domain.IntegrityError) string {
	msg := v.Reason
	if v.Edge != nil {
		msg = fmt.Sprintf("edge %s: %s", v.Edge, msg)
	}
	if v.Element != 0 {
		msg = fmt.Sprintf("element %d: %s", v.Element, msg)
	}
	return msg
}

// Info prints a summary of the input mesh topology.
func Info(ctx context.Context, opts Options, plain bool) error {
	e, err := newEnv(opts)
	if err != nil {
		return err
	}
	return e.finish(ctx, e.info(ctx, plain))
}

func (e *env) info(ctx context.Context, plain bool) error {
	mesh, err := e.conv.Load(ctx, e.source)
	if err != nil {
		return err
	}
	report := tui.InfoMarkdown(filepath.Base(e.cfg.Input), mesh, mesh.Stats(), e.source.GroupNames())
	return tui.Print(e.stdout, report, plain)
}

// Graph prints the Mermaid dual graph of the input mesh.
func Graph(ctx context.Context, opts Options, highlight []int64) error {
	e, err := newEnv(opts)
	if err != nil {
		return err
	}
	return e.finish(ctx, e.graph(ctx, highlight))
}

func (e *env) graph(ctx context.Context, highlight []int64) error {
	mesh, err := e.conv.Load(ctx, e.source)
	if err != nil {
		return err
	}
	overlay := &graph.GraphOverlay{GroupNames: e.source.GroupNames()}
	for _, id := range highlight {
		overlay.Highlight = append(overlay.Highlight, domain.ElementID(id))
	}
	_, err = io.WriteString(e.stdout, graph.GenerateMermaid(mesh, overlay))
	return err
}

// Export writes the input mesh as GeoJSON. An output of "-" or "" means Stdout.
func Export(ctx context.Context, opts Options, output string) error {
	e, err := newEnv(opts)
	if err != nil {
		return err
	}
	return e.finish(ctx, e.export(ctx, output))
}

func (e *env) export(ctx context.Context, output string) error {
	mesh, err := e.conv.Load(ctx, e.source)
	if err != nil {
		return err
	}
	if output == "" || output == "-" {
		var buf bytes.Buffer
		if err := geo.Write(&buf, mesh); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := buf.WriteTo(e.stdout)
		return err
	}
	err = file.New().Publish(ctx, file.Output{Path: output, Render: func(w io.Writer) error {
		return geo.Write(w, mesh)
	}})
	if err != nil {
		return err
	}
	e.logger.Info("geojson written", "path", output)
	tui.Success(e.stdout, "%s -> %s", filepath.Base(e.cfg.Input), output)
	return nil
}
