package ports

import (
	"context"
	"io"

	"github.com/aretw0/meshtopo/pkg/domain"
)

// MeshSource defines how the builder retrieves raw mesh data.
// This allows the file format (Gmsh, memory fixtures) to be decoupled from the topology core.
type MeshSource interface {
	// Vertices returns every vertex id with its coordinates.
	Vertices() (map[domain.VertexID]domain.Coord, error)

	// Elements returns all elements in source order, whatever their kind.
	// Kinds the topology does not use are reported as domain.KindOther.
	Elements() ([]domain.Element, error)

	// PhysicalGroupsForLine returns the physical groups attached to a line element.
	// An untagged line yields an empty slice and no error.
	PhysicalGroupsForLine(id domain.ElementID) ([]domain.GroupID, error)
}

// MeshSession is an open MeshSource holding resources that must be released.
type MeshSession interface {
	MeshSource
	io.Closer
}

// MeshOpener acquires a MeshSession.
// Implementations wrap errors that mean "no mesh could be obtained" with domain.ErrSourceUnavailable.
type MeshOpener interface {
	Open(ctx context.Context) (MeshSession, error)
}

// GroupNamer is implemented by sources that know human-readable names for physical groups.
// Names are only guaranteed after a session has read the source.
type GroupNamer interface {
	GroupNames() map[domain.GroupID]string
}
