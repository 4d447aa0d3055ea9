package bake

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/geoplanet/internal/field"
	"github.com/Faultbox/geoplanet/internal/logger"
	"github.com/Faultbox/geoplanet/pkg/icosphere"
	"github.com/Faultbox/geoplanet/pkg/math"
	"github.com/Faultbox/geoplanet/pkg/palette"
)

var ErrFieldMismatch = errors.New("height and color fields differ in size")

// Bake displaces every vertex of geo along its direction by the sampled
// height times opts.RadialScale, colors it from colors, and recomputes
// normals. geo is only read.
func Bake(geo *icosphere.Mesh, heights *field.HeightField, colors *field.ColorField, opts Options) (*Mesh, error) {
	if heights.Width != colors.Width || heights.Height != colors.Height {
		return nil, fmt.Errorf("%w: heights %dx%d, colors %dx%d",
			ErrFieldMismatch, heights.Width, heights.Height, colors.Width, colors.Height)
	}

	n := len(geo.Vertices)
	out := &Mesh{
		Depth:     geo.Depth,
		Positions: make([]math.Vec3, n),
		Colors:    make([]palette.Color, n),
		UV:        make([]math.Vec2, n),
		Triangles: append([]uint32(nil), geo.Triangles...),
		Bounds:    Bounds{MinRadius: gomath.Inf(1), MaxRadius: gomath.Inf(-1)},
	}

	scale := opts.RadialScale()
	for i, v := range geo.Vertices {
		uv := vertexUV(geo, i)
		px, py := pixel(uv, heights.Width, heights.Height)

		h := heights.At(px, py)
		dir := v.Normalize()
		p := v.Add(dir.Scale(h * scale))

		out.Positions[i] = p
		out.Colors[i] = colors.At(px, py)
		out.UV[i] = uv

		r := p.Length()
		out.Bounds.MinRadius = gomath.Min(out.Bounds.MinRadius, r)
		out.Bounds.MaxRadius = gomath.Max(out.Bounds.MaxRadius, r)
	}

	out.Normals = RecalculateNormals(out.Positions, out.Triangles)

	logger.Debug("mesh baked",
		zap.Int("depth", geo.Depth),
		zap.Int("vertices", n),
		zap.Float64("radial_scale", scale),
		zap.Float64("max_radius", out.Bounds.MaxRadius))

	return out, nil
}

func vertexUV(geo *icosphere.Mesh, i int) math.Vec2 {
	if len(geo.UV) == len(geo.Vertices) {
		return geo.UV[i]
	}
	return icosphere.SphericalUV(geo.Vertices[i])
}

// pixel maps texture coordinates to a clamped pixel; v grows upward while
// rows grow downward.
func pixel(uv math.Vec2, width, height int) (x, y int) {
	x = int(uv.X * float64(width))
	y = int((1 - uv.Y) * float64(height))
	return clampi(x, 0, width-1), clampi(y, 0, height-1)
}

// RecalculateNormals returns area-weighted vertex normals for the given
// winding. Vertices not referenced by any triangle get a zero normal.
func RecalculateNormals(positions []math.Vec3, triangles []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))
	for t := 0; t+2 < len(triangles); t += 3 {
		a, b, c := triangles[t], triangles[t+1], triangles[t+2]
		face := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func powf(x, y float64) float64 {
	if y == 1 {
		return x
	}
	return gomath.Pow(x, y)
}
