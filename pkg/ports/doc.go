/*
Package ports defines the driven ports (interfaces) for the meshtopo core.

These interfaces decouple the topology builder from concrete mesh readers,
allowing the same build to run on Gmsh files, in-memory fixtures or any
other source.

# Key Interfaces

  - MeshSource: yields vertices, elements and line physical groups.
  - MeshSession: an open MeshSource that must be closed.
  - MeshOpener: acquires a MeshSession for one read.
*/
package ports
