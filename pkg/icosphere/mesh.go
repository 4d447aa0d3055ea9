package icosphere

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"github.com/Faultbox/geoplanet/pkg/math"
)

var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is a geodesic sphere. Cached meshes are shared between bakes and
// must be treated as read-only; use Clone before modifying one.
type Mesh struct {
	Depth     int
	Vertices  []math.Vec3
	Triangles []uint32
	UV        []math.Vec2
}

// IndexWidth returns the number of bits needed per triangle index: 16 while
// every index fits a uint16, otherwise 32.
func (m *Mesh) IndexWidth() int {
	if len(m.Vertices) >= 1<<16 {
		return 32
	}
	return 16
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Depth:     m.Depth,
		Vertices:  append([]math.Vec3(nil), m.Vertices...),
		Triangles: append([]uint32(nil), m.Triangles...),
	}
	if m.UV != nil {
		c.UV = append([]math.Vec2(nil), m.UV...)
	}
	return c
}

// SphericalUV maps a direction to equirectangular texture coordinates:
// u from the longitude about y, v from the latitude.
func SphericalUV(p math.Vec3) math.Vec2 {
	n := p.Normalize()
	y := n.Y
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	return math.Vec2{
		X: 0.5 + gomath.Atan2(n.X, n.Z)/(2*gomath.Pi),
		Y: 0.5 + gomath.Asin(y)/gomath.Pi,
	}
}

// ComputeUV fills UV from the vertex directions.
func (m *Mesh) ComputeUV() {
	m.UV = make([]math.Vec2, len(m.Vertices))
	for i, v := range m.Vertices {
		m.UV[i] = SphericalUV(v)
	}
}

// Validate checks index bounds and that the surface is a closed
// orientable manifold of genus zero.
func (m *Mesh) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Triangles))
	}
	nv := uint32(len(m.Vertices))
	for i, idx := range m.Triangles {
		if idx >= nv {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, nv)
		}
	}

	type edge struct{ a, b uint32 }
	directed := make(map[edge]int, len(m.Triangles))
	for t := 0; t < len(m.Triangles); t += 3 {
		tri := m.Triangles[t : t+3]
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a == b {
				return fmt.Errorf("%w: degenerate triangle %d", ErrInvalidMesh, t/3)
			}
			directed[edge{a, b}]++
		}
	}
	for e, n := range directed {
		if n != 1 {
			return fmt.Errorf("%w: edge %d->%d used %d times", ErrInvalidMesh, e.a, e.b, n)
		}
		if directed[edge{e.b, e.a}] != 1 {
			return fmt.Errorf("%w: edge %d-%d is not shared by exactly two triangles", ErrInvalidMesh, e.a, e.b)
		}
	}

	v := len(m.Vertices)
	e := len(directed) / 2
	f := len(m.Triangles) / 3
	if v-e+f != 2 {
		return fmt.Errorf("%w: euler characteristic %d, want 2", ErrInvalidMesh, v-e+f)
	}
	return nil
}

// SphericalArea sums the spherical excess of every triangle. A watertight
// sphere covers 4π.
func (m *Mesh) SphericalArea() float64 {
	var area float64
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		a := toS2(m.Vertices[m.Triangles[t]])
		b := toS2(m.Vertices[m.Triangles[t+1]])
		c := toS2(m.Vertices[m.Triangles[t+2]])
		area += s2.PointArea(a, b, c)
	}
	return area
}

// MaxRadiusError returns the largest deviation of a vertex from the unit
// sphere.
func (m *Mesh) MaxRadiusError() float64 {
	var worst float64
	for _, v := range m.Vertices {
		if d := gomath.Abs(v.Length() - 1); d > worst {
			worst = d
		}
	}
	return worst
}

func toS2(v math.Vec3) s2.Point {
	return s2.Point{Vector: r3.Vector{X: v.X, Y: v.Y, Z: v.Z}.Normalize()}
}
