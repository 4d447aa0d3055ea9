package icosphere

import (
	"github.com/Faultbox/geoplanet/pkg/math"
)

// Rotation steps between neighbouring face frames, in degrees.
const (
	stepAround = 60.0   // about a face normal, between adjacent edges
	stepAcross = 41.811 // about an edge axis, between adjacent face normals
	stepCorner = 30.0   // about a face normal, edge to corner
)

// Axes is an orthonormal frame. Z is the face normal and X points from the
// A corner toward the opposite edge.
type Axes struct {
	X, Y, Z math.Vec3
}

// CanonicalAxes returns the frame of face 0.
func CanonicalAxes() Axes {
	return Axes{
		X: math.Vec3{X: 1},
		Y: math.Vec3{Y: 1},
		Z: math.Vec3{Z: 1},
	}
}

// axis selects one of the frame's own axes.
type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

// rotate turns all three axes by degrees about the frame's own axis.
func (a *Axes) rotate(degrees float64, about axis) *Axes {
	var dir math.Vec3
	switch about {
	case axisX:
		dir = a.X
	case axisY:
		dir = a.Y
	default:
		dir = a.Z
	}
	m := math.RotateAxisDegrees(dir, degrees)
	a.X = m.TransformDirection(a.X)
	a.Y = m.TransformDirection(a.Y)
	a.Z = m.TransformDirection(a.Z)
	return a
}

// step moves to the face adjacent across the frame's y edge.
func (a *Axes) step(turn float64) *Axes {
	return a.rotate(stepAcross, axisY).rotate(turn, axisZ)
}

// corner moves to the next face around the frame's A corner.
func (a *Axes) corner() *Axes {
	return a.rotate(stepCorner, axisZ).rotate(-stepAcross, axisX).rotate(stepCorner, axisZ)
}

// FaceFrames returns the frames of all twenty faces. Frame 0 is canonical;
// every other frame is reached by a fixed chain of edge and corner steps.
func FaceFrames() []Axes {
	frames := make([]Axes, 0, 20)
	frames = append(frames, CanonicalAxes())

	// Five faces around the top right corner.
	c := CanonicalAxes()
	frames = append(frames, *c.corner())
	for i := 0; i < 4; i++ {
		frames = append(frames, *c.step(stepAround))
	}

	// Middle band on the left.
	c = CanonicalAxes()
	frames = append(frames, *c.step(-stepAround))
	frames = append(frames, *c.corner())
	frames = append(frames, *c.step(stepAround))
	frames = append(frames, *c.step(stepAround))
	frames = append(frames, *c.rotate(stepAround, axisZ).rotate(-stepAcross, axisY))
	frames = append(frames, *c.corner())
	frames = append(frames, *c.step(stepAround))
	frames = append(frames, *c.step(-stepAround))

	// Bottom right.
	c = CanonicalAxes()
	frames = append(frames, *c.rotate(stepAround, axisZ).rotate(-stepAcross, axisY))
	frames = append(frames, *c.corner())
	frames = append(frames, *c.corner())
	side := c
	frames = append(frames, *side.step(stepAround))
	frames = append(frames, *c.corner())
	frames = append(frames, *c.corner())

	return frames
}
