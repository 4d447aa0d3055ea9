// Package formats provides encoders and parsers for the files written by
// planetgen.
package formats

// Note: GEOM (cached geodesic mesh) is implemented in geom.go
// Note: OBJ export of baked meshes is implemented in obj.go
