package domain

import "fmt"

// EdgeKey is the canonical, unordered pair of vertex ids of an edge.
// A is always the smaller id, so (a,b) and (b,a) produce the same key.
type EdgeKey struct {
	A VertexID
	B VertexID
}

// NewEdgeKey canonicalizes the pair by sorting it.
func NewEdgeKey(a, b VertexID) EdgeKey {
	if b < a {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// Degenerate reports whether both endpoints are the same vertex.
func (k EdgeKey) Degenerate() bool {
	return k.A == k.B
}

// Less orders keys lexicographically by (A, B).
func (k EdgeKey) Less(o EdgeKey) bool {
	if k.A != o.A {
		return k.A < o.A
	}
	return k.B < o.B
}

func (k EdgeKey) String() string {
	return fmt.Sprintf("(%d,%d)", k.A, k.B)
}

// LineRef is the line-element facet of an edge.
type LineRef struct {
	ID ElementID

	// Groups holds every physical group the source reported, in source order.
	Groups []GroupID
}

// Group returns the group the line is classified under (the first reported one).
func (l *LineRef) Group() (GroupID, bool) {
	if l == nil || len(l.Groups) == 0 {
		return 0, false
	}
	return l.Groups[0], true
}

// Edge is one undirected mesh edge.
//
// Triangle ownership and line-element identity are independent facets:
// an edge may have owners, a line, or both.
type Edge struct {
	Key EdgeKey
	ID  EdgeID

	// Triangles holds the owning triangles in discovery order (at most 2).
	Triangles []ElementID

	// Line is set when the source supplies an explicit line element on this vertex pair.
	Line *LineRef
}

// Interior reports whether the edge is shared by two triangles.
func (e *Edge) Interior() bool {
	return len(e.Triangles) == 2
}

// Boundary reports whether the edge lies on the region boundary (a single owner).
func (e *Edge) Boundary() bool {
	return len(e.Triangles) == 1
}

// Labeled reports whether the edge carries a line element.
func (e *Edge) Labeled() bool {
	return e.Line != nil
}

// Other returns the owner that is not tri, or NoNeighbour when there is none.
func (e *Edge) Other(tri ElementID) ElementID {
	for _, t := range e.Triangles {
		if t != tri {
			return t
		}
	}
	return NoNeighbour
}
