package topology

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/meshtopo/internal/logging"
	"github.com/aretw0/meshtopo/pkg/domain"
)

// Builder derives the topology model from a raw mesh snapshot.
type Builder struct {
	logger *slog.Logger
	hooks  domain.BuildHooks
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets a custom structured logger for the builder.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBuildHooks registers observability hooks.
func WithBuildHooks(hooks domain.BuildHooks) Option {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// NewBuilder creates a Builder. Without options it logs nothing and has no hooks.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the topology model, failing on the first integrity violation.
// The returned error wraps domain.ErrMeshIntegrity as a *domain.IntegrityError.
func (b *Builder) Build(ctx context.Context, raw *domain.RawMesh) (*domain.Mesh, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	var first *domain.IntegrityError
	mesh := b.assemble(ctx, raw, func(v *domain.IntegrityError) bool {
		first = v
		return false
	})
	if first != nil {
		return nil, first
	}

	stats := mesh.Stats()
	b.logger.Debug("topology built",
		"vertices", stats.Vertices,
		"triangles", stats.Triangles,
		"edges", stats.Edges,
		"boundary_edges", stats.BoundaryEdges,
		"groups", stats.BoundaryGroups,
	)
	if b.hooks.OnBuilt != nil {
		b.hooks.OnBuilt(ctx, &domain.BuildEvent{
			Timestamp: start,
			Duration:  time.Since(start),
			Stats:     stats,
		})
	}
	return mesh, nil
}

// Validate runs every integrity check and reports all violations at once as a *domain.AggregateError.
// A nil result means Build would succeed on the same input.
func (b *Builder) Validate(ctx context.Context, raw *domain.RawMesh) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var errs []error
	b.assemble(ctx, raw, func(v *domain.IntegrityError) bool {
		errs = append(errs, v)
		return true
	})
	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}

// assemble walks the snapshot once. report is called for every violation and
// returns whether the walk continues.
func (b *Builder) assemble(ctx context.Context, raw *domain.RawMesh, report func(*domain.IntegrityError) bool) *domain.Mesh {
	mesh := domain.NewMesh()
	violate := func(v *domain.IntegrityError) bool {
		b.logger.Debug("integrity violation", "element", v.Element, "reason", v.Reason)
		if b.hooks.OnViolation != nil {
			b.hooks.OnViolation(ctx, v)
		}
		return report(v)
	}

	for _, id := range sortedVertexIDs(raw.Vertices) {
		if id <= 0 {
			if !violate(&domain.IntegrityError{Reason: fmt.Sprintf("vertex id %d is not positive", id)}) {
				return mesh
			}
			continue
		}
		mesh.Vertices[id] = raw.Vertices[id]
	}

	seen := make(map[domain.ElementID]struct{}, len(raw.Elements))
	for _, el := range raw.Elements {
		if _, dup := seen[el.ID]; dup {
			if !violate(&domain.IntegrityError{Element: el.ID, Reason: "duplicate element id"}) {
				return mesh
			}
			continue
		}
		seen[el.ID] = struct{}{}

		var v *domain.IntegrityError
		switch el.Kind {
		case domain.KindTriangle:
			v = addTriangle(mesh, raw, el)
		case domain.KindLine:
			v = b.addLine(mesh, raw, el)
		default:
			mesh.Ignored++
		}
		if v != nil && !violate(v) {
			return mesh
		}
	}

	assignEdgeIDs(mesh)
	for _, g := range mesh.Boundaries {
		sort.Slice(g.Lines, func(i, j int) bool { return g.Lines[i] < g.Lines[j] })
	}
	return mesh
}

// addTriangle records the triangle and appends it to the owners of its three edges.
// Nothing is recorded when the triangle is invalid.
func addTriangle(mesh *domain.Mesh, raw *domain.RawMesh, el domain.Element) *domain.IntegrityError {
	if len(el.Vertices) != 3 {
		return &domain.IntegrityError{Element: el.ID, Reason: fmt.Sprintf("triangle has %d vertices, want 3", len(el.Vertices))}
	}
	if v := checkVertices(raw, el); v != nil {
		return v
	}
	tri := domain.Triangle{ID: el.ID, Vertices: [3]domain.VertexID{el.Vertices[0], el.Vertices[1], el.Vertices[2]}}
	keys := tri.EdgeKeys()
	for _, key := range keys {
		if key.Degenerate() {
			k := key
			return &domain.IntegrityError{Element: el.ID, Edge: &k, Reason: "degenerate triangle side"}
		}
		if e, ok := mesh.Edges[key]; ok && len(e.Triangles) >= 2 {
			k := key
			return &domain.IntegrityError{
				Element: el.ID,
				Edge:    &k,
				Reason:  fmt.Sprintf("third owning triangle (already owned by %d and %d)", e.Triangles[0], e.Triangles[1]),
			}
		}
	}

	mesh.Triangles[tri.ID] = tri
	for _, key := range keys {
		e := edgeFor(mesh, key)
		e.Triangles = append(e.Triangles, tri.ID)
	}
	return nil
}

// addLine attaches the line element to its edge and classifies it under its first physical group.
func (b *Builder) addLine(mesh *domain.Mesh, raw *domain.RawMesh, el domain.Element) *domain.IntegrityError {
	if len(el.Vertices) != 2 {
		return &domain.IntegrityError{Element: el.ID, Reason: fmt.Sprintf("line has %d vertices, want 2", len(el.Vertices))}
	}
	if v := checkVertices(raw, el); v != nil {
		return v
	}
	key := domain.NewEdgeKey(el.Vertices[0], el.Vertices[1])
	if key.Degenerate() {
		return &domain.IntegrityError{Element: el.ID, Edge: &key, Reason: "degenerate line element"}
	}
	if e, ok := mesh.Edges[key]; ok && e.Line != nil {
		return &domain.IntegrityError{Element: el.ID, Edge: &key, Reason: fmt.Sprintf("edge already carries line element %d", e.Line.ID)}
	}

	groups := append([]domain.GroupID(nil), raw.LineGroups[el.ID]...)
	edgeFor(mesh, key).Line = &domain.LineRef{ID: el.ID, Groups: groups}

	if len(groups) == 0 {
		return nil
	}
	if len(groups) > 1 {
		b.logger.Debug("line element has several physical groups, keeping the first",
			"element", el.ID, "groups", groups)
	}
	g, ok := mesh.Boundaries[groups[0]]
	if !ok {
		g = &domain.BoundaryGroup{ID: groups[0]}
		mesh.Boundaries[groups[0]] = g
	}
	g.Lines = append(g.Lines, el.ID)
	return nil
}

func checkVertices(raw *domain.RawMesh, el domain.Element) *domain.IntegrityError {
	for _, vid := range el.Vertices {
		if _, ok := raw.Vertices[vid]; !ok || vid <= 0 {
			return &domain.IntegrityError{
				Element: el.ID,
				Reason:  fmt.Sprintf("%s references unknown vertex %d", el.Kind, vid),
			}
		}
	}
	return nil
}

func edgeFor(mesh *domain.Mesh, key domain.EdgeKey) *domain.Edge {
	e, ok := mesh.Edges[key]
	if !ok {
		e = &domain.Edge{Key: key}
		mesh.Edges[key] = e
	}
	return e
}

// assignEdgeIDs numbers edges 1..n in ascending key order.
func assignEdgeIDs(mesh *domain.Mesh) {
	for i, e := range mesh.SortedEdges() {
		e.ID = domain.EdgeID(i + 1)
	}
}

func sortedVertexIDs(vertices map[domain.VertexID]domain.Coord) []domain.VertexID {
	ids := make([]domain.VertexID, 0, len(vertices))
	for id := range vertices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
