package tui_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meshtopo/internal/presentation/tui"
	"github.com/aretw0/meshtopo/internal/topology"
	"github.com/aretw0/meshtopo/pkg/domain"
)

func square(t *testing.T) *domain.Mesh {
	t.Helper()
	raw := &domain.RawMesh{
		Vertices: map[domain.VertexID]domain.Coord{1: {0, 0}, 2: {1, 0}, 3: {1, 1}, 4: {0, 1}},
		Elements: []domain.Element{
			{ID: 10, Kind: domain.KindTriangle, Vertices: []domain.VertexID{1, 2, 3}},
			{ID: 11, Kind: domain.KindTriangle, Vertices: []domain.VertexID{1, 3, 4}},
			{ID: 20, Kind: domain.KindLine, Vertices: []domain.VertexID{1, 2}},
			{ID: 21, Kind: domain.KindLine, Vertices: []domain.VertexID{2, 3}},
		},
		LineGroups: map[domain.ElementID][]domain.GroupID{20: {1}, 21: {1, 4}},
	}
	mesh, err := topology.NewBuilder().Build(context.Background(), raw)
	require.NoError(t, err)
	return mesh
}

func TestInfoMarkdown(t *testing.T) {
	mesh := square(t)
	stats := mesh.Stats()
	got := tui.InfoMarkdown("square.msh", mesh, stats, map[domain.GroupID]string{1: "wall|left"})

	assert.True(t, strings.HasPrefix(got, "# square.msh\n"))
	assert.Contains(t, got, "| Triangles | 2 |")
	assert.Contains(t, got, "| Edges | 5 |")
	assert.Contains(t, got, "| Interior edges | 1 |")
	assert.Contains(t, got, "| Boundary edges | 4 |")
	assert.Contains(t, got, "| Unlabeled boundary edges | 2 |")
	assert.Contains(t, got, `| 1 | wall\|left | 2 |`)
	assert.Contains(t, got, "1 line elements belong to several physical groups")
}

func TestInfoMarkdown_NoGroups(t *testing.T) {
	mesh := domain.NewMesh()
	got := tui.InfoMarkdown("empty", mesh, mesh.Stats(), nil)
	assert.Contains(t, got, "No boundary groups.")
	assert.NotContains(t, got, "several physical groups")
}

func TestPrint_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tui.Print(&buf, "# title\n", false))
	assert.Equal(t, "# title\n", buf.String())
	assert.False(t, tui.IsTerminal(&buf))
	assert.Zero(t, tui.TerminalWidth(&buf))
}

func TestNewRenderer(t *testing.T) {
	render, err := tui.NewRenderer(60)
	require.NoError(t, err)
	out, err := render("| | Count |\n|---|---:|\n| Triangles | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Triangles")
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	tui.Success(&buf, "wrote %d files", 2)
	tui.Failure(&buf, "integrity violation")
	tui.PrintBanner(&buf)

	assert.Contains(t, buf.String(), "wrote 2 files")
	assert.Contains(t, buf.String(), "integrity violation")
	assert.Contains(t, buf.String(), "|_|")
}
