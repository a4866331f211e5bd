package tables

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/meshtopo/pkg/domain"
)

// ErrMalformedTable is returned when a geometry or topology table cannot be parsed.
var ErrMalformedTable = errors.New("malformed table")

// TriangleRow is one line of the triangle section.
type TriangleRow struct {
	ID         domain.ElementID
	Vertices   [3]domain.VertexID
	EdgeRefs   [3]int64 // as written: synthetic edge ids or line element ids
	Neighbours [3]domain.ElementID
}

// Topology is the read-side model of a topology table.
//
// Triangle lines carry no id of their own: the id of each row is recovered as
// the only triangle owner shared by the edge lines of its three sides.
type Topology struct {
	edges     []*domain.Edge // table order; ID is the 1-based position
	byKey     map[domain.EdgeKey]*domain.Edge
	rows      []TriangleRow
	triangles map[domain.ElementID]int // id -> index in rows
}

type edgeLine struct {
	key      domain.EdgeKey
	owner    int64
	sentinel int64
}

// ParseTopology reads a table written by WriteTopology.
func ParseTopology(r io.Reader) (*Topology, error) {
	var lines []edgeLine
	var rows []TriangleRow

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		vals, err := parseInts(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedTable, err)
		}
		switch len(vals) {
		case 4:
			if len(rows) > 0 {
				return nil, fmt.Errorf("line %d: %w: edge line after triangle section", lineNo, ErrMalformedTable)
			}
			lines = append(lines, edgeLine{
				key:      domain.NewEdgeKey(domain.VertexID(vals[0]), domain.VertexID(vals[1])),
				owner:    vals[2],
				sentinel: vals[3],
			})
		case 9:
			var row TriangleRow
			for i := 0; i < 3; i++ {
				row.Vertices[i] = domain.VertexID(vals[i])
				row.EdgeRefs[i] = vals[3+i]
				row.Neighbours[i] = domain.ElementID(vals[6+i])
			}
			rows = append(rows, row)
		default:
			return nil, fmt.Errorf("line %d: %w: %d fields, want 4 or 9", lineNo, ErrMalformedTable, len(vals))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	return assemble(lines, rows)
}

func assemble(lines []edgeLine, rows []TriangleRow) (*Topology, error) {
	t := &Topology{
		byKey:     make(map[domain.EdgeKey]*domain.Edge),
		triangles: make(map[domain.ElementID]int, len(rows)),
	}

	// candidates[key] holds every owner written with the triangle sentinel.
	candidates := make(map[domain.EdgeKey][]domain.ElementID)
	for _, l := range lines {
		if _, ok := t.byKey[l.key]; !ok {
			e := &domain.Edge{Key: l.key, ID: domain.EdgeID(len(t.edges) + 1)}
			t.edges = append(t.edges, e)
			t.byKey[l.key] = e
		}
		if l.sentinel == BoundarySentinel {
			candidates[l.key] = append(candidates[l.key], domain.ElementID(l.owner))
		}
	}

	for i := range rows {
		row := &rows[i]
		tri := domain.Triangle{Vertices: row.Vertices}
		var common []domain.ElementID
		for side, key := range tri.EdgeKeys() {
			owners, ok := candidates[key]
			if !ok {
				return nil, fmt.Errorf("%w: triangle row %d side %s has no edge line", ErrMalformedTable, i+1, key)
			}
			if side == 0 {
				common = append(common, owners...)
				continue
			}
			common = intersect(common, owners)
		}
		if len(common) != 1 {
			return nil, fmt.Errorf("%w: triangle row %d matches %d owners %v", ErrMalformedTable, i+1, len(common), common)
		}
		row.ID = common[0]
		if _, dup := t.triangles[row.ID]; dup {
			return nil, fmt.Errorf("%w: triangle %d appears twice", ErrMalformedTable, row.ID)
		}
		t.triangles[row.ID] = i
	}
	t.rows = rows

	for _, l := range lines {
		e := t.byKey[l.key]
		if _, isTri := t.triangles[domain.ElementID(l.owner)]; isTri && l.sentinel == BoundarySentinel {
			e.Triangles = append(e.Triangles, domain.ElementID(l.owner))
			continue
		}
		if e.Line != nil {
			return nil, fmt.Errorf("%w: edge %s has two line elements", ErrMalformedTable, l.key)
		}
		ref := &domain.LineRef{ID: domain.ElementID(l.owner)}
		if l.sentinel < 0 {
			ref.Groups = []domain.GroupID{domain.GroupID(-l.sentinel)}
		}
		e.Line = ref
	}
	return t, nil
}

// NumEdges returns the number of distinct edges.
func (t *Topology) NumEdges() int { return len(t.edges) }

// NumTriangles returns the number of triangle rows.
func (t *Topology) NumTriangles() int { return len(t.rows) }

// Edges returns the edges in table order.
func (t *Topology) Edges() []*domain.Edge { return t.edges }

// Edge looks up the edge between a and b in either order.
func (t *Topology) Edge(a, b domain.VertexID) (*domain.Edge, bool) {
	e, ok := t.byKey[domain.NewEdgeKey(a, b)]
	return e, ok
}

// IsEdgeBoundary reports whether the edge has fewer than two owning triangles.
func (t *Topology) IsEdgeBoundary(key domain.EdgeKey) bool {
	e, ok := t.byKey[key]
	return ok && len(e.Triangles) < 2
}

// Triangles returns the triangle rows in table order.
func (t *Topology) Triangles() []TriangleRow { return t.rows }

// Triangle returns the row of the given triangle.
func (t *Topology) Triangle(id domain.ElementID) (TriangleRow, error) {
	i, ok := t.triangles[id]
	if !ok {
		return TriangleRow{}, fmt.Errorf("triangle %d: %w", id, domain.ErrElementNotFound)
	}
	return t.rows[i], nil
}

// IsTriangleBoundary reports whether any side of the triangle lies on the boundary.
func (t *Topology) IsTriangleBoundary(id domain.ElementID) bool {
	row, err := t.Triangle(id)
	if err != nil {
		return false
	}
	for _, n := range row.Neighbours {
		if n == domain.NoNeighbour {
			return true
		}
	}
	return false
}

// BoundaryGroups returns the line elements per physical group, each list ascending.
func (t *Topology) BoundaryGroups() map[domain.GroupID][]domain.ElementID {
	groups := make(map[domain.GroupID][]domain.ElementID)
	for _, e := range t.edges {
		if g, ok := e.Line.Group(); ok {
			groups[g] = append(groups[g], e.Line.ID)
		}
	}
	for _, lines := range groups {
		sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })
	}
	return groups
}

// Mesh rebuilds a domain.Mesh from the table and the given vertex coordinates.
func (t *Topology) Mesh(vertices map[domain.VertexID]domain.Coord) *domain.Mesh {
	m := domain.NewMesh()
	for id, c := range vertices {
		m.Vertices[id] = c
	}
	for _, row := range t.rows {
		m.Triangles[row.ID] = domain.Triangle{ID: row.ID, Vertices: row.Vertices}
	}
	for _, e := range t.edges {
		cp := &domain.Edge{Key: e.Key, ID: e.ID, Triangles: append([]domain.ElementID(nil), e.Triangles...)}
		if e.Line != nil {
			cp.Line = &domain.LineRef{ID: e.Line.ID, Groups: append([]domain.GroupID(nil), e.Line.Groups...)}
		}
		m.Edges[e.Key] = cp
	}
	for g, lines := range t.BoundaryGroups() {
		m.Boundaries[g] = &domain.BoundaryGroup{ID: g, Lines: lines}
	}
	return m
}

// ParseGeometry reads a table written by WriteGeometry.
func ParseGeometry(r io.Reader) (map[domain.VertexID]domain.Coord, error) {
	vertices := make(map[domain.VertexID]domain.Coord)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 && len(fields) != 4 {
			return nil, fmt.Errorf("line %d: %w: %d fields, want 3 or 4", lineNo, ErrMalformedTable, len(fields))
		}
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedTable, err)
		}
		coord := make(domain.Coord, len(fields)-1)
		for i, f := range fields[1:] {
			coord[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedTable, err)
			}
		}
		if _, dup := vertices[domain.VertexID(id)]; dup {
			return nil, fmt.Errorf("line %d: %w: vertex %d appears twice", lineNo, ErrMalformedTable, id)
		}
		vertices[domain.VertexID(id)] = coord
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return vertices, nil
}

func parseInts(fields []string) ([]int64, error) {
	vals := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func intersect(a, b []domain.ElementID) []domain.ElementID {
	var out []domain.ElementID
	for _, x := range a {
		for _, y := range b {
			if x == y {
				out = append(out, x)
				break
			}
		}
	}
	return out
}
