package icosphere

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/geoplanet/pkg/math"
)

// MaxDepth is the deepest subdivision supported (10·4^10+2 vertices).
const MaxDepth = 10

var (
	ErrDepthOutOfRange = errors.New("subdivision depth out of range")
	ErrFaceIncomplete  = errors.New("face grid has wrong point count")
)

// Boundary multiplicities. A face edge point is shared with one neighbouring
// face; a corner is shared by five faces, four of them neighbours.
const (
	Interior    = 0
	EdgeShared  = 1
	CornerShare = 4
)

// Face is one subdivided icosahedron face in the canonical orientation.
type Face struct {
	Depth int
	Side  int // points along one edge, 2^Depth+1

	// Points are laid out in columns of decreasing length: Side points,
	// then Side-1, down to 1.
	Points []math.Vec3

	// Pattern holds three indices into Points per triangle, counter-clockwise
	// seen from outside the sphere.
	Pattern []uint32

	// Boundary is the number of other faces expected to share each point.
	Boundary []int
}

// SideLength returns the number of points along a face edge at depth.
func SideLength(depth int) int {
	return 1<<depth + 1
}

// VertexCount returns the unique vertex count of a full sphere at depth.
func VertexCount(depth int) int {
	return 10*(1<<(2*depth)) + 2
}

// TriangleCount returns the triangle count of a full sphere at depth.
func TriangleCount(depth int) int {
	return 20 * (1 << (2 * depth))
}

// AssembleFace subdivides the canonical face to the given depth.
func (c *Constants) AssembleFace(depth int) (*Face, error) {
	if depth < 0 || depth > MaxDepth {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrDepthOutOfRange, depth, MaxDepth)
	}

	cuts := c.cutPoints(depth)
	slices.SortStableFunc(cuts, func(p, q math.Vec3) int {
		return cmp.Compare(q.Y, p.Y)
	})

	planes := make([][3]Plane, len(cuts))
	for i, pt := range cuts {
		planes[i] = c.SlicingPlanes(pt)
	}

	n := len(cuts)
	side := SideLength(depth)
	points := make([]math.Vec3, 0, side*(side+1)/2)
	for i := 0; i < n; i++ {
		for j := 0; j < n && i+j < n+1; j++ {
			p := c.GridPoint(planes[i][2], planes[j][0])
			if p.Z >= 0 {
				points = append(points, p)
			}
		}
		if i == 0 {
			points = append(points, c.A)
		}
		if i == n-1 {
			points = append(points, c.BB)
		}
	}

	if want := side * (side + 1) / 2; len(points) != want {
		return nil, fmt.Errorf("%w: depth %d has %d points, want %d", ErrFaceIncomplete, depth, len(points), want)
	}

	return &Face{
		Depth:    depth,
		Side:     side,
		Points:   points,
		Pattern:  TrianglePattern(side),
		Boundary: boundaryMultiplicity(side),
	}, nil
}

// cutPoints lists the sphere points whose slicing planes produce the grid.
// Each subdivision level splits every frontier point into two children.
func (c *Constants) cutPoints(depth int) []math.Vec3 {
	if depth == 0 {
		return []math.Vec3{c.B}
	}
	cuts := []math.Vec3{c.M, c.B}
	frontier := []math.Vec3{c.M}
	for level := 1; level < depth; level++ {
		next := make([]math.Vec3, 0, 2*len(frontier))
		for _, seed := range frontier {
			c0 := c.CutPointOne(seed)
			c1 := c.CutPointTwo(c0)
			cuts = append(cuts, c0, c1)
			next = append(next, c0, c1)
		}
		frontier = next
	}
	return cuts
}

// TrianglePattern triangulates a face grid with side points per edge.
// Column 0 contributes only lower triangles; later columns also emit the
// upper triangle pointing back into the previous column.
func TrianglePattern(side int) []uint32 {
	pattern := make([]uint32, 0, 3*(side-1)*(side-1))
	offset := 0
	for col := side; col > 1; col-- {
		for i := 0; i < col-1; i++ {
			pattern = append(pattern,
				uint32(i+offset), uint32(i+1+offset), uint32(i+offset+col))
			if offset != 0 {
				pattern = append(pattern,
					uint32(i+1+offset), uint32(i+offset), uint32(i+offset-col))
			}
		}
		offset += col
	}
	return pattern
}

func boundaryMultiplicity(side int) []int {
	count := side * (side + 1) / 2
	mult := make([]int, count)
	offset := 0
	for col, size := 0, side; size > 0; col, size = col+1, size-1 {
		for i := 0; i < size; i++ {
			if col != 0 && i != 0 && i != size-1 {
				continue
			}
			k := offset + i
			if k == 0 || k == side-1 || k == count-1 {
				mult[k] = CornerShare
			} else {
				mult[k] = EdgeShared
			}
		}
		offset += size
	}
	return mult
}
