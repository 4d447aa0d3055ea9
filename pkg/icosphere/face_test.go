package icosphere

import (
	"errors"
	gomath "math"
	"slices"
	"testing"
)

func TestAssembleFaceCounts(t *testing.T) {
	c := Default()
	for depth := 0; depth <= 5; depth++ {
		face, err := c.AssembleFace(depth)
		if err != nil {
			t.Fatalf("AssembleFace(%d) error: %v", depth, err)
		}
		n := 1<<depth + 1
		if face.Side != n {
			t.Errorf("depth %d: side = %d, want %d", depth, face.Side, n)
		}
		if want := n * (n + 1) / 2; len(face.Points) != want {
			t.Errorf("depth %d: %d points, want %d", depth, len(face.Points), want)
		}
		if want := 3 * (n - 1) * (n - 1); len(face.Pattern) != want {
			t.Errorf("depth %d: %d pattern indices, want %d", depth, len(face.Pattern), want)
		}
		for _, idx := range face.Pattern {
			if int(idx) >= len(face.Points) {
				t.Fatalf("depth %d: pattern index %d out of range", depth, idx)
			}
		}
		for _, p := range face.Points {
			if d := gomath.Abs(p.Length() - 1); d > 1e-4 {
				t.Fatalf("depth %d: point %v off the unit sphere", depth, p)
			}
		}
	}
}

func TestAssembleFaceCorners(t *testing.T) {
	c := Default()
	face, err := c.AssembleFace(2)
	if err != nil {
		t.Fatal(err)
	}
	n := face.Side
	last := len(face.Points) - 1
	for _, k := range []int{0, n - 1, last} {
		if face.Boundary[k] != CornerShare {
			t.Errorf("point %d multiplicity = %d, want corner", k, face.Boundary[k])
		}
	}
	if face.Points[n-1] != c.A {
		t.Errorf("end of first column = %v, want A", face.Points[n-1])
	}
	if face.Points[last] != c.BB {
		t.Errorf("last point = %v, want BB", face.Points[last])
	}
}

func TestAssembleFaceDepthOutOfRange(t *testing.T) {
	for _, depth := range []int{-1, MaxDepth + 1} {
		if _, err := Default().AssembleFace(depth); !errors.Is(err, ErrDepthOutOfRange) {
			t.Errorf("AssembleFace(%d) error = %v, want ErrDepthOutOfRange", depth, err)
		}
	}
}

func TestTrianglePattern(t *testing.T) {
	tests := []struct {
		side int
		want []uint32
	}{
		{2, []uint32{0, 1, 2}},
		{3, []uint32{0, 1, 3, 1, 2, 4, 3, 4, 5, 4, 3, 1}},
	}
	for _, tt := range tests {
		if got := TrianglePattern(tt.side); !slices.Equal(got, tt.want) {
			t.Errorf("TrianglePattern(%d) = %v, want %v", tt.side, got, tt.want)
		}
	}
}

func TestBoundaryMultiplicity(t *testing.T) {
	want := []int{
		4, 1, 1, 1, 4,
		1, 0, 0, 1,
		1, 0, 1,
		1, 1,
		4,
	}
	if got := boundaryMultiplicity(5); !slices.Equal(got, want) {
		t.Errorf("boundaryMultiplicity(5) = %v, want %v", got, want)
	}
	if got := boundaryMultiplicity(2); !slices.Equal(got, []int{4, 4, 4}) {
		t.Errorf("boundaryMultiplicity(2) = %v, want all corners", got)
	}
}

func TestSizes(t *testing.T) {
	tests := []struct {
		depth, side, vertices, triangles int
	}{
		{0, 2, 12, 20},
		{1, 3, 42, 80},
		{2, 5, 162, 320},
		{5, 33, 10242, 20480},
	}
	for _, tt := range tests {
		if got := SideLength(tt.depth); got != tt.side {
			t.Errorf("SideLength(%d) = %d, want %d", tt.depth, got, tt.side)
		}
		if got := VertexCount(tt.depth); got != tt.vertices {
			t.Errorf("VertexCount(%d) = %d, want %d", tt.depth, got, tt.vertices)
		}
		if got := TriangleCount(tt.depth); got != tt.triangles {
			t.Errorf("TriangleCount(%d) = %d, want %d", tt.depth, got, tt.triangles)
		}
	}
}
