// Package topology builds the edge, adjacency and boundary tables of a triangular mesh
// from a raw snapshot read through ports.MeshOpener.
package topology
