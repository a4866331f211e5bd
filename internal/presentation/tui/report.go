package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/meshtopo/pkg/domain"
)

// InfoMarkdown summarizes a built mesh as a markdown report.
// names labels boundary groups and may be nil.
func InfoMarkdown(title string, mesh *domain.Mesh, stats domain.BuildStats, names map[domain.GroupID]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	sb.WriteString("| | Count |\n|---|---:|\n")
	rows := []struct {
		label string
		value int
	}{
		{"Vertices", stats.Vertices},
		{"Triangles", stats.Triangles},
		{"Edges", stats.Edges},
		{"Interior edges", stats.InteriorEdges},
		{"Boundary edges", stats.BoundaryEdges},
		{"Labeled edges", stats.LabeledEdges},
		{"Unlabeled boundary edges", stats.UnlabeledEdges},
		{"Ignored elements", stats.Ignored},
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %d |\n", r.label, r.value)
	}

	fmt.Fprintf(&sb, "\n## Boundary groups\n\n")
	groups := mesh.SortedBoundaries()
	if len(groups) == 0 {
		sb.WriteString("No boundary groups.\n")
	} else {
		sb.WriteString("| Group | Name | Lines |\n|---:|---|---:|\n")
		for _, g := range groups {
			name := names[g.ID]
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(&sb, "| %d | %s | %d |\n", g.ID, strings.ReplaceAll(name, "|", `\|`), len(g.Lines))
		}
	}

	if stats.MultiGroupLines > 0 {
		fmt.Fprintf(&sb, "\n> %d line elements belong to several physical groups; the first group is used.\n", stats.MultiGroupLines)
	}
	return sb.String()
}
