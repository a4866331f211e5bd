// Package geo exports meshes as GeoJSON for inspection in GIS tools.
package geo
