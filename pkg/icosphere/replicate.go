package icosphere

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/geoplanet/pkg/math"
)

// DedupTolerance is the distance under which two replicated boundary points
// are treated as the same vertex.
const DedupTolerance = 3e-4

var ErrReplicationMismatch = errors.New("replicated mesh has unexpected size")

// vertexRef is a boundary vertex still waiting for neighbouring faces to
// claim it.
type vertexRef struct {
	pos       math.Vec3
	remaining int
	index     int
}

// FrameRotation returns the rotation taking the canonical frame onto f:
// first the canonical z onto f.Z, then a turn about the new z that brings
// the rotated x onto f.X.
func FrameRotation(f Axes) math.Mat4 {
	canon := CanonicalAxes()

	tilt := canon.Z.Angle(f.Z)
	axis := canon.Z.Cross(f.Z)
	var mz math.Mat4
	switch {
	case axis.Length() > 1e-7:
		mz = math.RotateAxis(axis, tilt)
	case tilt < gomath.Pi/2:
		mz = math.Identity()
	default:
		mz = math.RotateAxis(canon.X, gomath.Pi)
	}

	x := mz.TransformDirection(canon.X)
	z := mz.TransformDirection(canon.Z)
	mx := math.RotateAxis(z, x.SignedAngle(f.X, z))
	return mx.Mul(mz)
}

// Replicate copies face onto every frame and merges the shared boundary
// vertices. frames[0] must be the canonical frame; the face is emitted there
// untransformed.
func Replicate(face *Face, frames []Axes) (*Mesh, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrReplicationMismatch)
	}
	n := len(face.Points)
	vertices := make([]math.Vec3, 0, VertexCount(face.Depth))
	triangles := make([]uint32, 0, len(face.Pattern)*len(frames))

	var pending []vertexRef
	for k, p := range face.Points {
		vertices = append(vertices, p)
		if face.Boundary[k] > 0 {
			pending = append(pending, vertexRef{pos: p, remaining: face.Boundary[k], index: k})
		}
	}
	triangles = append(triangles, face.Pattern...)

	local := make([]int, n)
	for _, f := range frames[1:] {
		m := FrameRotation(f)
		for k, src := range face.Points {
			p := m.TransformDirection(src)
			if face.Boundary[k] == 0 {
				local[k] = len(vertices)
				vertices = append(vertices, p)
				continue
			}

			found := -1
			for j := range pending {
				if pending[j].pos.Distance(p) < DedupTolerance {
					found = j
					break
				}
			}
			if found < 0 {
				local[k] = len(vertices)
				pending = append(pending, vertexRef{pos: p, remaining: face.Boundary[k], index: len(vertices)})
				vertices = append(vertices, p)
				continue
			}

			local[k] = pending[found].index
			pending[found].remaining--
			if pending[found].remaining <= 0 {
				pending = append(pending[:found], pending[found+1:]...)
			}
		}
		for _, idx := range face.Pattern {
			triangles = append(triangles, uint32(local[idx]))
		}
	}

	if len(frames) == 20 {
		if len(vertices) != VertexCount(face.Depth) || len(triangles)/3 != TriangleCount(face.Depth) {
			return nil, fmt.Errorf("%w: depth %d gave %d vertices, %d triangles",
				ErrReplicationMismatch, face.Depth, len(vertices), len(triangles)/3)
		}
	}

	return &Mesh{
		Depth:     face.Depth,
		Vertices:  vertices,
		Triangles: triangles,
	}, nil
}

// Build constructs the full geodesic sphere at depth with UVs computed.
func Build(depth int) (*Mesh, error) {
	face, err := Default().AssembleFace(depth)
	if err != nil {
		return nil, err
	}
	mesh, err := Replicate(face, FaceFrames())
	if err != nil {
		return nil, err
	}
	mesh.ComputeUV()
	return mesh, nil
}
