// Package gmsh reads Gmsh ASCII meshes (formats 2.2 and 4.1) and exposes them
// through ports.MeshOpener.
//
// Only nodes, elements and physical tags are read. Binary files and
// parametric node blocks are rejected with ErrFormat; unknown sections are skipped.
package gmsh
