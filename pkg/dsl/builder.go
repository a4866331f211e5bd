package dsl

import (
	"fmt"

	"github.com/aretw0/meshtopo/pkg/adapters/memory"
	"github.com/aretw0/meshtopo/pkg/domain"
)

// Builder manages the mesh construction.
// Elements keep the order in which they are added, as they would in a mesh file.
type Builder struct {
	vertices map[domain.VertexID]domain.Coord
	elements []*ElementBuilder
	errs     []error
}

// New creates a new mesh builder.
func New() *Builder {
	return &Builder{
		vertices: make(map[domain.VertexID]domain.Coord),
	}
}

// Vertex adds a vertex. Redefining an id is reported by Build.
func (b *Builder) Vertex(id domain.VertexID, coords ...float64) *Builder {
	if _, dup := b.vertices[id]; dup {
		b.errs = append(b.errs, fmt.Errorf("vertex %d defined twice", id))
		return b
	}
	b.vertices[id] = domain.Coord(coords)
	return b
}

// Triangle adds a triangle element.
func (b *Builder) Triangle(id domain.ElementID, v0, v1, v2 domain.VertexID) *ElementBuilder {
	return b.add(id, domain.KindTriangle, v0, v1, v2)
}

// Line adds a line element. Use Groups to tag it.
func (b *Builder) Line(id domain.ElementID, v0, v1 domain.VertexID) *ElementBuilder {
	return b.add(id, domain.KindLine, v0, v1)
}

// Other adds an element the topology ignores, such as a point or a quadrangle.
func (b *Builder) Other(id domain.ElementID, vertices ...domain.VertexID) *ElementBuilder {
	return b.add(id, domain.KindOther, vertices...)
}

func (b *Builder) add(id domain.ElementID, kind domain.ElementKind, vertices ...domain.VertexID) *ElementBuilder {
	eb := &ElementBuilder{
		element: domain.Element{ID: id, Kind: kind, Vertices: vertices},
		builder: b,
	}
	b.elements = append(b.elements, eb)
	return eb
}

// Raw compiles the mesh into a snapshot. Element ids are not checked here;
// duplicates and dangling references are left for the topology builder to report.
func (b *Builder) Raw() (*domain.RawMesh, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	raw := &domain.RawMesh{
		Vertices:   make(map[domain.VertexID]domain.Coord, len(b.vertices)),
		LineGroups: make(map[domain.ElementID][]domain.GroupID),
	}
	for id, c := range b.vertices {
		raw.Vertices[id] = c
	}
	for _, eb := range b.elements {
		raw.Elements = append(raw.Elements, eb.element)
		if len(eb.groups) > 0 {
			if eb.element.Kind != domain.KindLine {
				return nil, fmt.Errorf("element %d: only line elements carry physical groups", eb.element.ID)
			}
			raw.LineGroups[eb.element.ID] = eb.groups
		}
	}
	return raw, nil
}

// Build compiles the mesh into an in-memory source.
func (b *Builder) Build() (*memory.Source, error) {
	raw, err := b.Raw()
	if err != nil {
		return nil, fmt.Errorf("failed to build memory source: %w", err)
	}
	return memory.NewSource(raw), nil
}

// ElementBuilder provides a fluent API for configuring an element.
type ElementBuilder struct {
	element domain.Element
	groups  []domain.GroupID
	builder *Builder
}

// Groups tags a line element with physical groups. The first one classifies the boundary edge.
func (e *ElementBuilder) Groups(ids ...domain.GroupID) *ElementBuilder {
	e.groups = append(e.groups, ids...)
	return e
}

// Mesh returns the parent builder to continue the chain.
func (e *ElementBuilder) Mesh() *Builder {
	return e.builder
}
