package domain

import (
	"context"
	"time"
)

// BuildStats summarizes a built mesh.
type BuildStats struct {
	Vertices        int `json:"vertices"`
	Triangles       int `json:"triangles"`
	Lines           int `json:"lines"`
	Ignored         int `json:"ignored"`
	Edges           int `json:"edges"`
	InteriorEdges   int `json:"interior_edges"`
	BoundaryEdges   int `json:"boundary_edges"`
	LabeledEdges    int `json:"labeled_edges"`
	UnlabeledEdges  int `json:"unlabeled_edges"`
	BoundaryGroups  int `json:"boundary_groups"`
	MultiGroupLines int `json:"multi_group_lines"`
}

// BuildEvent is emitted once a mesh has been built successfully.
type BuildEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
	Stats     BuildStats    `json:"stats"`
}

// BuildHooks defines callbacks for builder observability.
type BuildHooks struct {
	OnBuilt     func(context.Context, *BuildEvent)
	OnViolation func(context.Context, *IntegrityError)
}

// Stats computes the summary of a built mesh.
func (m *Mesh) Stats() BuildStats {
	s := BuildStats{
		Vertices:       len(m.Vertices),
		Triangles:      len(m.Triangles),
		Edges:          len(m.Edges),
		BoundaryGroups: len(m.Boundaries),
		Ignored:        m.Ignored,
	}
	for _, e := range m.Edges {
		switch {
		case e.Interior():
			s.InteriorEdges++
		case e.Boundary():
			s.BoundaryEdges++
			if !e.Labeled() {
				s.UnlabeledEdges++
			}
		}
		if e.Labeled() {
			s.Lines++
			s.LabeledEdges++
			if len(e.Line.Groups) > 1 {
				s.MultiGroupLines++
			}
		}
	}
	return s
}
