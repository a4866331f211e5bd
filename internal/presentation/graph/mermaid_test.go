package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/meshtopo/internal/presentation/graph"
	"github.com/aretw0/meshtopo/internal/topology"
	"github.com/aretw0/meshtopo/pkg/adapters/memory"
	"github.com/aretw0/meshtopo/pkg/domain"
)

// square is two triangles sharing the diagonal (1,3); only the bottom and right sides are tagged.
func square(t *testing.T) *domain.Mesh {
	t.Helper()
	src := memory.NewFromTriangles(
		map[domain.VertexID]domain.Coord{1: {0, 0}, 2: {1, 0}, 3: {1, 1}, 4: {0, 1}},
		map[domain.ElementID][3]domain.VertexID{10: {1, 2, 3}, 11: {1, 3, 4}},
		map[domain.ElementID][2]domain.VertexID{20: {1, 2}, 21: {2, 3}},
		map[domain.ElementID][]domain.GroupID{20: {1}, 21: {2}},
	)
	raw, err := topology.Snapshot(context.Background(), src)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	mesh, err := topology.NewBuilder().Build(context.Background(), raw)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return mesh
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Triangle And Group Shapes",
			contains: []string{
				"graph TD\n",
				`t10["10"]`,
				`t11["11"]`,
				`g1[/"group 1"/]`,
				`g2[/"group 2"/]`,
				`unlabeled(("unlabeled"))`,
			},
		},
		{
			name: "Interior Edge Links Owners",
			contains: []string{
				`t10 ---|"(1,3)"| t11`,
			},
		},
		{
			name: "Boundary Edges Link Groups",
			contains: []string{
				`t10 -.-|"(1,2)"| g1`,
				`t10 -.-|"(2,3)"| g2`,
				`t11 -.-|"(3,4)"| unlabeled`,
				`t11 -.-|"(1,4)"| unlabeled`,
				"class t10 boundary;",
				"class t11 boundary;",
			},
			excludes: []string{"Overlay Styles"},
		},
		{
			name: "Group Names Escaping",
			overlay: &graph.GraphOverlay{
				GroupNames: map[domain.GroupID]string{1: `"wall"`},
			},
			contains: []string{
				`g1[/"1: 'wall'"/]`,
				`g2[/"group 2"/]`,
			},
		},
		{
			name: "Highlight Overlay",
			overlay: &graph.GraphOverlay{
				Highlight: []domain.ElementID{11, 11, 99},
			},
			contains: []string{
				"classDef highlight",
				"class t11 highlight;",
			},
			excludes: []string{"class t99 highlight;"},
		},
	}

	mesh := square(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(mesh, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
		})
	}
}

func TestGenerateMermaid_HighlightOnce(t *testing.T) {
	got := graph.GenerateMermaid(square(t), &graph.GraphOverlay{Highlight: []domain.ElementID{10, 10}})
	if n := strings.Count(got, "class t10 highlight;"); n != 1 {
		t.Errorf("expected one highlight class for t10, got %d", n)
	}
}

func TestGenerateMermaid_Deterministic(t *testing.T) {
	mesh := square(t)
	first := graph.GenerateMermaid(mesh, nil)
	for i := 0; i < 5; i++ {
		if got := graph.GenerateMermaid(mesh, nil); got != first {
			t.Fatalf("output changed between runs:\n%s\n---\n%s", first, got)
		}
	}
}
