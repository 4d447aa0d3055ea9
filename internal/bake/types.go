// Package bake displaces a cached geodesic mesh by a height field and
// colors it from the matching color field.
package bake

import (
	"github.com/Faultbox/geoplanet/pkg/formats"
	"github.com/Faultbox/geoplanet/pkg/math"
	"github.com/Faultbox/geoplanet/pkg/palette"
)

// Mesh is a baked planet surface. All slices are owned by the Mesh; none
// alias the geometry it was baked from.
type Mesh struct {
	Depth     int
	Positions []math.Vec3
	Normals   []math.Vec3
	Colors    []palette.Color
	UV        []math.Vec2
	Triangles []uint32
	Bounds    Bounds
}

// Bounds holds the radial extent of the baked surface.
type Bounds struct {
	MinRadius float64
	MaxRadius float64
}

// Options scales the radial displacement.
type Options struct {
	// BaseScale is the displacement of a height of 1 before the height
	// exponent is applied.
	BaseScale   float64 `yaml:"base_scale"`
	HeightScale float64 `yaml:"height_scale"`
	HeightPower float64 `yaml:"height_power"`
}

// DefaultOptions returns the standard displacement of 2.5% of the radius.
func DefaultOptions() Options {
	return Options{
		BaseScale:   0.025,
		HeightScale: 1,
		HeightPower: 1,
	}
}

// RadialScale is BaseScale * HeightScale^HeightPower.
func (o Options) RadialScale() float64 {
	return o.BaseScale * powf(o.HeightScale, o.HeightPower)
}

// OBJ converts m for Wavefront export.
func (m *Mesh) OBJ(name string) *formats.OBJMesh {
	out := &formats.OBJMesh{
		Name:      name,
		Positions: make([][3]float64, len(m.Positions)),
		Normals:   make([][3]float64, len(m.Normals)),
		Colors:    make([][3]float32, len(m.Colors)),
		UV:        make([][2]float64, len(m.UV)),
		Indices:   m.Triangles,
	}
	for i, p := range m.Positions {
		out.Positions[i] = [3]float64{p.X, p.Y, p.Z}
	}
	for i, n := range m.Normals {
		out.Normals[i] = [3]float64{n.X, n.Y, n.Z}
	}
	for i, c := range m.Colors {
		out.Colors[i] = c.RGB()
	}
	for i, uv := range m.UV {
		out.UV[i] = [2]float64{uv.X, uv.Y}
	}
	return out
}
