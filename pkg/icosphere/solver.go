package icosphere

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/geoplanet/pkg/math"
)

// ErrNotUnitComponent is the panic value (wrapped) raised when a missing unit
// vector component is requested for a vector already longer than one.
var ErrNotUnitComponent = errors.New("vector components exceed unit length")

// Miss is returned by FindIntersectionPoint when a line does not meet the
// unit sphere.
var Miss = math.Vec3{X: 0, Y: 0, Z: -100}

// Line is an infinite line given by its direction and the point on it
// closest to the origin.
type Line struct {
	Normal math.Vec3
	Point  math.Vec3
}

// Plane is the set of points x with Normal·x = Dist.
type Plane struct {
	Normal math.Vec3
	Dist   float64
}

// ConstructLine returns the line through q and r.
func ConstructLine(q, r math.Vec3) Line {
	n := r.Sub(q).Normalize()
	return Line{Normal: n, Point: q.Sub(n.Scale(q.Dot(n)))}
}

// FindIntersectionPoint intersects a line with the unit sphere. The root
// with z >= 0 is preferred. Lines that miss the sphere yield Miss.
func FindIntersectionPoint(l Line) math.Vec3 {
	m := l.Point.Length()
	if m > 1 {
		return Miss
	}
	v := l.Normal.Scale(gomath.Sqrt(1 - m*m))
	c := l.Point.Add(v)
	if c.Z < 0 {
		c = l.Point.Sub(v)
	}
	return c
}

// FrontViewRotation90CW rotates p a quarter turn clockwise in the xz plane.
func FrontViewRotation90CW(p math.Vec3) math.Vec3 {
	return math.Vec3{X: p.Z, Y: p.Y, Z: -p.X}
}

// FrontView2D drops the y component.
func FrontView2D(p math.Vec3) math.Vec3 {
	return math.Vec3{X: p.X, Y: 0, Z: p.Z}
}

// RotateClockwise rotates p by 120 degrees clockwise about z.
func RotateClockwise(p math.Vec3) math.Vec3 {
	k := Default().K
	return math.Vec3{X: p.Y*k - p.X/2, Y: -p.X*k - p.Y/2, Z: p.Z}
}

// RotateCounterClockwise rotates p by 120 degrees counter-clockwise about z.
func RotateCounterClockwise(p math.Vec3) math.Vec3 {
	k := Default().K
	return math.Vec3{X: -p.Y*k - p.X/2, Y: p.X*k - p.Y/2, Z: p.Z}
}

// UnitComponentY fills in the non-negative y that makes p a unit vector.
// It panics if x²+z² > 1.
func UnitComponentY(p math.Vec3) math.Vec3 {
	q := p.X*p.X + p.Z*p.Z
	if q > 1 {
		panic(fmt.Errorf("%w: x²+z² = %g", ErrNotUnitComponent, q))
	}
	return math.Vec3{X: p.X, Y: gomath.Sqrt(1 - q), Z: p.Z}
}

// UnitComponentZ fills in the non-negative z that makes p a unit vector.
// It panics if x²+y² > 1.
func UnitComponentZ(p math.Vec3) math.Vec3 {
	q := p.X*p.X + p.Y*p.Y
	if q > 1 {
		panic(fmt.Errorf("%w: x²+y² = %g", ErrNotUnitComponent, q))
	}
	return math.Vec3{X: p.X, Y: p.Y, Z: gomath.Sqrt(1 - q)}
}

// EllipseScaleOutward stretches q along FFA by 1/S, keeping its A component.
func (c *Constants) EllipseScaleOutward(q math.Vec3) math.Vec3 {
	return c.A.Scale(c.A.Dot(q)).Add(c.FFA.Scale(c.FFA.Dot(q) / c.S))
}

// CircleScaleInward is the inverse of EllipseScaleOutward.
func (c *Constants) CircleScaleInward(q math.Vec3) math.Vec3 {
	return c.A.Scale(c.A.Dot(q)).Add(c.FFA.Scale(c.FFA.Dot(q) * c.S))
}

// CutPointOne derives the first child cut point of seed.
func (c *Constants) CutPointOne(seed math.Vec3) math.Vec3 {
	p := FindIntersectionPoint(ConstructLine(c.P, FrontView2D(seed)))
	p = c.EllipseScaleOutward(FrontView2D(RotateCounterClockwise(p)))
	p = FindIntersectionPoint(ConstructLine(p, c.POW))
	return UnitComponentY(c.CircleScaleInward(p))
}

// CutPointTwo derives the second child from the first: rotated
// counter-clockwise and mirrored in y.
func (c *Constants) CutPointTwo(c0 math.Vec3) math.Vec3 {
	r := RotateCounterClockwise(c0)
	return math.Vec3{X: r.X, Y: -r.Y, Z: r.Z}
}

// SlicingPlanes returns the plane through P and pt that contains the y
// direction, followed by its clockwise and counter-clockwise rotations.
func (c *Constants) SlicingPlanes(pt math.Vec3) [3]Plane {
	n := math.Vec3{X: c.P.Z - pt.Z, Y: 0, Z: pt.X - c.P.X}.Normalize()
	d := n.Dot(c.P)
	return [3]Plane{
		{Normal: n, Dist: d},
		{Normal: RotateClockwise(n), Dist: d},
		{Normal: RotateCounterClockwise(n), Dist: d},
	}
}

// GridPoint intersects the line where planes a and b meet with the unit
// sphere.
func (c *Constants) GridPoint(a, b Plane) math.Vec3 {
	dir := a.Normal.Cross(b.Normal).Normalize()

	fPoint := a.Normal.Scale(a.Dist)
	gDir := b.Normal.Cross(dir).Normalize()
	gPoint := b.Normal.Scale(b.Dist)

	t := fPoint.Sub(gPoint).Dot(a.Normal) / a.Normal.Dot(gDir)
	onLine := gPoint.Add(gDir.Scale(t))
	return FindIntersectionPoint(Line{Normal: dir, Point: onLine})
}
