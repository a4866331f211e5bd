package tables

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/meshtopo/pkg/domain"
)

// BoundarySentinel is the fourth field of an edge line owned by a triangle.
const BoundarySentinel = -1

// EdgeIDScheme selects which identifier the triangle section writes for each side.
type EdgeIDScheme int

const (
	// EdgeIDSynthetic writes the build-time EdgeID: the 1-based position of the
	// edge key in the edge section.
	EdgeIDSynthetic EdgeIDScheme = iota
	// EdgeIDPreferLine writes the line element id when the side carries one,
	// and the synthetic id otherwise.
	EdgeIDPreferLine
)

func (s EdgeIDScheme) String() string {
	switch s {
	case EdgeIDPreferLine:
		return "line"
	default:
		return "synthetic"
	}
}

// ParseEdgeIDScheme converts "synthetic" or "line" to a scheme. The empty string means synthetic.
func ParseEdgeIDScheme(s string) (EdgeIDScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "synthetic":
		return EdgeIDSynthetic, nil
	case "line":
		return EdgeIDPreferLine, nil
	default:
		return EdgeIDSynthetic, fmt.Errorf("unknown edge id scheme %q (want synthetic or line)", s)
	}
}

// WriteGeometry writes one `id x y [z]` line per vertex in ascending id order.
// z is written for every vertex as soon as one vertex is 3-D.
func WriteGeometry(w io.Writer, m *domain.Mesh) error {
	bw := bufio.NewWriter(w)
	dim := m.Dimension()
	for _, id := range m.VertexIDs() {
		c := m.Vertices[id]
		bw.WriteString(strconv.FormatInt(int64(id), 10))
		for i := 0; i < dim; i++ {
			v := 0.0
			if i < len(c) {
				v = c[i]
			}
			bw.WriteByte(' ')
			bw.WriteString(formatFloat(v))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteTopology writes the edge section followed by the triangle section.
//
// Edge section, ascending key order, one line per owning triangle then one for the line element:
//
//	v1 v2 triangle_id -1
//	v1 v2 line_id -group_id   (0 when the line has no physical group)
//
// Triangle section, ascending triangle id:
//
//	v0 v1 v2 e0 e1 e2 adj0 adj1 adj2
func WriteTopology(w io.Writer, m *domain.Mesh, scheme EdgeIDScheme) error {
	bw := bufio.NewWriter(w)

	for _, e := range m.SortedEdges() {
		for _, tri := range sortedOwners(e) {
			writeInts(bw, int64(e.Key.A), int64(e.Key.B), int64(tri), BoundarySentinel)
		}
		if e.Line != nil {
			var sentinel int64
			if g, ok := e.Line.Group(); ok {
				sentinel = -int64(g)
			}
			writeInts(bw, int64(e.Key.A), int64(e.Key.B), int64(e.Line.ID), sentinel)
		}
	}

	for _, id := range m.TriangleIDs() {
		tri := m.Triangles[id]
		row := make([]int64, 0, 9)
		for _, v := range tri.Vertices {
			row = append(row, int64(v))
		}
		var adj [3]int64
		for i, key := range tri.EdgeKeys() {
			e, ok := m.Edges[key]
			if !ok {
				return fmt.Errorf("triangle %d side %d: edge %s: %w", id, i, key, domain.ErrEdgeNotFound)
			}
			row = append(row, edgeRef(e, scheme))
			adj[i] = int64(e.Other(id))
		}
		row = append(row, adj[:]...)
		writeInts(bw, row...)
	}

	return bw.Flush()
}

func edgeRef(e *domain.Edge, scheme EdgeIDScheme) int64 {
	if scheme == EdgeIDPreferLine && e.Line != nil {
		return int64(e.Line.ID)
	}
	return int64(e.ID)
}

func sortedOwners(e *domain.Edge) []domain.ElementID {
	owners := append([]domain.ElementID(nil), e.Triangles...)
	if len(owners) == 2 && owners[1] < owners[0] {
		owners[0], owners[1] = owners[1], owners[0]
	}
	return owners
}

func writeInts(bw *bufio.Writer, vals ...int64) {
	for i, v := range vals {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.FormatInt(v, 10))
	}
	bw.WriteByte('\n')
}

// formatFloat uses the shortest representation that round-trips, so 0.0 is written as "0".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
