// Package icosphere builds geodesic spheres by analytically subdividing one
// face of a unit icosahedron and replicating it over all twenty faces.
//
// The canonical face lies around +Z with corners A, B and BB. Subdivision
// points are found by intersecting families of slicing planes with the unit
// sphere, so every generated vertex is exactly on the sphere.
package icosphere

import (
	gomath "math"
	"sync"

	"github.com/Faultbox/geoplanet/pkg/math"
)

// Constants holds the derived geometry of the canonical icosahedron face.
// A Constants value is immutable once built.
type Constants struct {
	L float64 // edge length of the unit icosahedron
	H float64 // height of a face triangle
	Z float64 // z of the canonical face corners
	K float64 // sqrt(3/4), sin(60)
	S float64 // cos(pi/5)

	A  math.Vec3 // face corner on the -x side
	B  math.Vec3 // face corner with +y
	BB math.Vec3 // B mirrored in y
	P  math.Vec3 // pole opposite the slicing pencil

	C   math.Vec3 // B projected on the xz plane and normalized
	M   math.Vec3 // first subdivision midpoint
	FFA math.Vec3 // A rotated 90 degrees clockwise in the front view
	POW math.Vec3 // P scaled outward onto the ellipse
}

// NewConstants solves the canonical face geometry.
func NewConstants() *Constants {
	c := &Constants{}
	c.L = 4 / gomath.Sqrt(10+gomath.Sqrt(20))
	c.H = gomath.Sqrt(c.L*c.L - (c.L/2)*(c.L/2))
	c.Z = gomath.Sqrt(1 - (2*c.H/3)*(2*c.H/3))
	c.K = gomath.Sqrt(3.0 / 4.0)
	c.S = gomath.Cos(gomath.Pi / 5)

	c.A = math.Vec3{X: -2 * c.H / 3, Y: 0, Z: c.Z}
	c.B = math.Vec3{X: c.H / 3, Y: c.L / 2, Z: c.Z}
	c.BB = math.Vec3{X: c.B.X, Y: -c.B.Y, Z: c.B.Z}
	c.P = math.Vec3{X: c.A.X, Y: 0, Z: -2 * c.A.Z}

	mag := gomath.Sqrt(c.B.X*c.B.X + c.B.Z*c.B.Z)
	c.C = math.Vec3{X: c.B.X / mag, Y: 0, Z: c.B.Z / mag}
	c.M = math.Vec3{X: -c.C.X / 2, Y: c.K * c.C.X, Z: c.C.Z}

	c.FFA = FrontViewRotation90CW(c.A)
	c.POW = c.EllipseScaleOutward(c.P)
	return c
}

// Default returns the process-wide constants, computed on first use.
var Default = sync.OnceValue(NewConstants)
