package geo

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/aretw0/meshtopo/pkg/domain"
)

// Feature kinds written in the "kind" property.
const (
	KindTriangle = "triangle"
	KindEdge     = "edge"
)

// FeatureCollection converts a mesh into GeoJSON features:
// one Polygon per triangle, and one LineString per boundary or labeled edge.
// Coordinates are planar; z is dropped.
func FeatureCollection(mesh *domain.Mesh) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()

	for _, id := range mesh.TriangleIDs() {
		tri := mesh.Triangles[id]
		ring := make(orb.Ring, 0, 4)
		for _, vid := range tri.Vertices {
			p, err := point(mesh, vid)
			if err != nil {
				return nil, fmt.Errorf("triangle %d: %w", id, err)
			}
			ring = append(ring, p)
		}
		ring = append(ring, ring[0])
		// Exterior rings are counterclockwise (RFC 7946).
		if ring.Orientation() == orb.CW {
			ring.Reverse()
		}

		neighbours, err := mesh.Neighbours(id)
		if err != nil {
			return nil, err
		}
		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.ID = int64(id)
		feature.Properties["kind"] = KindTriangle
		feature.Properties["neighbours"] = neighbours[:]
		fc.Append(feature)
	}

	for _, e := range mesh.SortedEdges() {
		if e.Interior() && !e.Labeled() {
			continue
		}
		a, err := point(mesh, e.Key.A)
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", e.Key, err)
		}
		b, err := point(mesh, e.Key.B)
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", e.Key, err)
		}

		feature := geojson.NewFeature(orb.LineString{a, b})
		feature.Properties = geojson.Properties{
			"kind":      KindEdge,
			"edge_id":   int64(e.ID),
			"triangles": e.Triangles,
			"boundary":  e.Boundary(),
		}
		if e.Labeled() {
			feature.Properties["line_id"] = int64(e.Line.ID)
			if g, ok := e.Line.Group(); ok {
				feature.Properties["group"] = int64(g)
				feature.Properties["groups"] = e.Line.Groups
			}
		}
		fc.Append(feature)
	}

	if len(mesh.Vertices) > 0 {
		points := make(orb.MultiPoint, 0, len(mesh.Vertices))
		for _, vid := range mesh.VertexIDs() {
			p, err := point(mesh, vid)
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		}
		fc.BBox = geojson.NewBBox(points.Bound())
	}
	return fc, nil
}

// Write encodes the mesh as an indented GeoJSON FeatureCollection.
func Write(w io.Writer, mesh *domain.Mesh) error {
	fc, err := FeatureCollection(mesh)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal geojson: %w", err)
	}
	var indented json.RawMessage = data
	out, err := json.MarshalIndent(indented, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to indent geojson: %w", err)
	}
	_, err = w.Write(append(out, '\n'))
	return err
}

func point(mesh *domain.Mesh, id domain.VertexID) (orb.Point, error) {
	c, ok := mesh.Vertices[id]
	if !ok || len(c) < 2 {
		return orb.Point{}, fmt.Errorf("vertex %d has no planar coordinates", id)
	}
	return orb.Point{c[0], c[1]}, nil
}
