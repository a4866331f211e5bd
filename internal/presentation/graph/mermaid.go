package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/meshtopo/pkg/domain"
)

// GraphOverlay contains optional data to annotate the graph with.
type GraphOverlay struct {
	// GroupNames labels boundary group nodes, e.g. with Gmsh physical names.
	GroupNames map[domain.GroupID]string
	// Highlight marks triangles of interest.
	Highlight []domain.ElementID
}

// unlabeledID is the node collecting boundary edges without a line element.
const unlabeledID = "unlabeled"

// GenerateMermaid produces a Mermaid flowchart of the dual graph of a mesh:
// - Triangle: [Rectangle], one per triangle
// - Interior edge: solid link between its two owners
// - Boundary group: [/Parallelogram/], linked by a dotted line from every triangle on the group
// - Unlabeled boundary: ((Circle)), shared by every boundary edge without a grouped line element
// Triangles touching the boundary are styled, and overlay highlights are applied if provided.
func GenerateMermaid(mesh *domain.Mesh, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range mesh.TriangleIDs() {
		sb.WriteString(fmt.Sprintf("    %s[\"%d\"]\n", triangleID(id), id))
	}
	for _, g := range mesh.SortedBoundaries() {
		label := fmt.Sprintf("group %d", g.ID)
		if overlay != nil && overlay.GroupNames[g.ID] != "" {
			// Escape double quotes in names for Mermaid label
			label = fmt.Sprintf("%d: %s", g.ID, strings.ReplaceAll(overlay.GroupNames[g.ID], "\"", "'"))
		}
		sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", groupID(g.ID), label))
	}

	onBoundary := make(map[domain.ElementID]bool)
	hasUnlabeled := false
	var links strings.Builder
	for _, e := range mesh.SortedEdges() {
		switch {
		case e.Interior():
			links.WriteString(fmt.Sprintf("    %s ---|\"%s\"| %s\n", triangleID(e.Triangles[0]), e.Key, triangleID(e.Triangles[1])))
		case e.Boundary():
			owner := e.Triangles[0]
			onBoundary[owner] = true
			target := unlabeledID
			if g, ok := e.Line.Group(); ok {
				target = groupID(g)
			} else {
				hasUnlabeled = true
			}
			links.WriteString(fmt.Sprintf("    %s -.-|\"%s\"| %s\n", triangleID(owner), e.Key, target))
		}
	}
	if hasUnlabeled {
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", unlabeledID, unlabeledID))
	}
	sb.WriteString(links.String())

	sb.WriteString("\n    %% Boundary Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef boundary fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	for _, id := range mesh.TriangleIDs() {
		if onBoundary[id] {
			sb.WriteString(fmt.Sprintf("    class %s boundary;\n", triangleID(id)))
		}
	}

	if overlay != nil && len(overlay.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		seen := make(map[domain.ElementID]bool)
		for _, id := range overlay.Highlight {
			// Only style triangles that exist in this mesh
			if _, ok := mesh.Triangles[id]; !ok || seen[id] {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s highlight;\n", triangleID(id)))
		}
	}

	return sb.String()
}

func triangleID(id domain.ElementID) string {
	return fmt.Sprintf("t%d", id)
}

func groupID(id domain.GroupID) string {
	return fmt.Sprintf("g%d", id)
}
