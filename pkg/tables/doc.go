/*
Package tables writes and reads the plain-text geometry and topology tables
consumed by downstream numerical solvers.

# Geometry table

One line per vertex, ascending id:

	vertex_id x y [z]

# Topology table

An edge section followed by a triangle section in the same stream.
Edge lines, ascending (v1, v2):

	v1 v2 triangle_id -1        one per owning triangle
	v1 v2 line_id -group_id     when a line element lies on the edge (0 without group)

Triangle lines, ascending triangle id:

	v0 v1 v2 e0 e1 e2 adj0 adj1 adj2

Side i joins v_i and v_(i+1 mod 3). e_i is the synthetic edge id (the 1-based
position of the edge in the edge section) or, with EdgeIDPreferLine, the
line element id when the side carries one. adj_i is the triangle across the
side or -1.

Field counts and ordering are a compatibility contract and must not change.
*/
package tables
