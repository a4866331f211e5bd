package domain

import (
	"fmt"
	"sort"
)

// VertexID identifies a mesh vertex. It is assigned by the mesh source and never reassigned.
type VertexID int64

// ElementID identifies a mesh element (triangle, line or any other kind).
type ElementID int64

// GroupID identifies a physical group attached to boundary line elements.
type GroupID int64

// EdgeID is the synthetic identifier assigned to every edge at build time.
type EdgeID int64

// NoNeighbour is written in place of a triangle id when an edge has a single owner.
const NoNeighbour = -1

// Coord is a vertex position with 2 or 3 components.
type Coord []float64

// ElementKind classifies elements coming from the mesh source.
type ElementKind int

const (
	// KindOther covers every element the topology ignores (points, quads, solids).
	KindOther ElementKind = iota
	// KindLine is a 2-node 1-D element, usually a tagged boundary segment.
	KindLine
	// KindTriangle is a 3-node 2-D element.
	KindTriangle
)

func (k ElementKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindTriangle:
		return "triangle"
	default:
		return "other"
	}
}

// Element is a raw element as yielded by a mesh source.
type Element struct {
	ID       ElementID
	Kind     ElementKind
	Vertices []VertexID
}

// RawMesh is the plain data snapshot read from a mesh source.
// It holds no handle on the source and can outlive the session that produced it.
type RawMesh struct {
	Vertices map[VertexID]Coord
	Elements []Element

	// LineGroups maps a line element to the physical groups the source reports for it,
	// in source order. Lines without groups may be absent.
	LineGroups map[ElementID][]GroupID
}

// Triangle is a 2-D element with a cyclic vertex order.
// Edge i joins Vertices[i] and Vertices[(i+1)%3].
type Triangle struct {
	ID       ElementID
	Vertices [3]VertexID
}

// EdgeKeys returns the canonical keys of the three sides, in side order.
func (t Triangle) EdgeKeys() [3]EdgeKey {
	var keys [3]EdgeKey
	for i := 0; i < 3; i++ {
		keys[i] = NewEdgeKey(t.Vertices[i], t.Vertices[(i+1)%3])
	}
	return keys
}

// BoundaryGroup lists the line elements classified under one physical group.
type BoundaryGroup struct {
	ID    GroupID
	Lines []ElementID
}

// Mesh is the built topology model.
// It is created by the topology builder and is read-only afterwards.
type Mesh struct {
	Vertices   map[VertexID]Coord
	Triangles  map[ElementID]Triangle
	Edges      map[EdgeKey]*Edge
	Boundaries map[GroupID]*BoundaryGroup

	// Ignored counts the source elements that are neither triangles nor lines.
	Ignored int
}

// NewMesh returns an empty Mesh with all tables allocated.
func NewMesh() *Mesh {
	return &Mesh{
		Vertices:   make(map[VertexID]Coord),
		Triangles:  make(map[ElementID]Triangle),
		Edges:      make(map[EdgeKey]*Edge),
		Boundaries: make(map[GroupID]*BoundaryGroup),
	}
}

// VertexIDs returns all vertex ids in ascending order.
func (m *Mesh) VertexIDs() []VertexID {
	ids := make([]VertexID, 0, len(m.Vertices))
	for id := range m.Vertices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TriangleIDs returns all triangle ids in ascending order.
func (m *Mesh) TriangleIDs() []ElementID {
	ids := make([]ElementID, 0, len(m.Triangles))
	for id := range m.Triangles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SortedEdges returns all edges in ascending key order, which is also ascending EdgeID order.
func (m *Mesh) SortedEdges() []*Edge {
	edges := make([]*Edge, 0, len(m.Edges))
	for _, e := range m.Edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Key.Less(edges[j].Key) })
	return edges
}

// SortedBoundaries returns boundary groups in ascending group id order.
func (m *Mesh) SortedBoundaries() []*BoundaryGroup {
	groups := make([]*BoundaryGroup, 0, len(m.Boundaries))
	for _, g := range m.Boundaries {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups
}

// Edge looks up the edge between a and b in either order.
func (m *Mesh) Edge(a, b VertexID) (*Edge, bool) {
	e, ok := m.Edges[NewEdgeKey(a, b)]
	return e, ok
}

// Neighbours returns, for each side of the triangle, the triangle across it or NoNeighbour.
func (m *Mesh) Neighbours(id ElementID) ([3]ElementID, error) {
	var adj [3]ElementID
	tri, ok := m.Triangles[id]
	if !ok {
		return adj, fmt.Errorf("triangle %d: %w", id, ErrElementNotFound)
	}
	for i, key := range tri.EdgeKeys() {
		edge, ok := m.Edges[key]
		if !ok {
			return adj, fmt.Errorf("triangle %d side %d: edge %s: %w", id, i, key, ErrEdgeNotFound)
		}
		adj[i] = edge.Other(id)
	}
	return adj, nil
}

// Dimension reports 3 if any vertex carries a z component, otherwise 2.
func (m *Mesh) Dimension() int {
	for _, c := range m.Vertices {
		if len(c) > 2 {
			return 3
		}
	}
	return 2
}
