/*
Package meshtopo converts unstructured triangular meshes into the plain-text
topology tables read by finite-volume solvers.

It reads a mesh through a ports.MeshOpener (Gmsh files via pkg/adapters/gmsh,
or in-memory data via pkg/adapters/memory), derives the edge adjacency model
and writes two files:

  - geometry: one `id x y [z]` line per vertex
  - topology: edge records (owning triangles and boundary line elements)
    followed by one row per triangle with its vertices, edges and neighbours

# Concept

Every triangle side is an edge keyed by its two vertex ids in ascending order.
An edge with two owning triangles is interior; with one it lies on the
boundary. Line elements tagged with a physical group label boundary edges and
classify them into boundary groups, which the solver maps to boundary conditions.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/meshtopo"
		"github.com/aretw0/meshtopo/pkg/adapters/gmsh"
	)

	func main() {
		conv := meshtopo.New()
		if err := conv.Convert(context.Background(), gmsh.New("channel.msh"), "geometry.txt", "topology.txt"); err != nil {
			log.Fatal(err)
		}
	}

Integrity violations (an edge with three owners, a line referencing an unknown
vertex...) abort the conversion with an error wrapping domain.ErrMeshIntegrity,
and no output file is written.
*/
package meshtopo
