/*
Package domain contains the core mesh and topology models of meshtopo.

It defines the entities read from a mesh source and the connectivity tables
derived from them. This package is kept pure and free of I/O, following the
Hexagonal Architecture used across the module.

# Key Entities

  - RawMesh: the plain vertex/element snapshot read from a mesh source.
  - Triangle: a 2-D element with a cyclic vertex order.
  - EdgeKey: the canonical unordered vertex pair identifying an edge.
  - Edge: an edge with two independent facets, owning triangles and line element.
  - BoundaryGroup: the line elements classified under one physical group.
  - Mesh: the built topology (vertices, triangles, edges, boundary groups).
*/
package domain
