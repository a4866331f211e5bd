/*
Package dsl provides a Go DSL for programmatically constructing meshes.

It is the in-code counterpart of a mesh file: vertices and elements are
declared with a fluent builder, and the result is a memory.Source usable
wherever a ports.MeshOpener is expected. This is particularly useful for
unit tests and for generating structured meshes.

Example usage:

	b := dsl.New().
		Vertex(1, 0, 0).
		Vertex(2, 1, 0).
		Vertex(3, 0, 1)

	b.Triangle(10, 1, 2, 3)
	b.Line(20, 1, 2).Groups(5)

	src, err := b.Build()
	// ... pass src to meshtopo.New().Convert(...)
*/
package dsl
