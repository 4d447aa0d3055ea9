package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := RotateAxis(Vec3{1, 2, 3}, 0.7)
	result := m.Mul(Identity())
	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestRotateAxis(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float64
		in    Vec3
		want  Vec3
	}{
		{"z quarter turn", Vec3{0, 0, 1}, math.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"x half turn", Vec3{1, 0, 0}, math.Pi, Vec3{0, 0, 1}, Vec3{0, 0, -1}},
		{"unnormalized axis", Vec3{0, 5, 0}, math.Pi / 2, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"zero axis", Vec3{}, 1, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotateAxis(tt.axis, tt.angle).TransformVec3(tt.in)
			if !got.ApproxEqual(tt.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateAxisDegreesComposition(t *testing.T) {
	// Three 120 degree turns about the diagonal return to the start.
	axis := Vec3{1, 1, 1}
	r := RotateAxisDegrees(axis, 120)
	m := r.Mul(r).Mul(r)
	p := Vec3{0.3, -0.2, 0.9}
	if got := m.TransformVec3(p); !got.ApproxEqual(p, 1e-12) {
		t.Errorf("R^3 * p = %v, want %v", got, p)
	}
	if got := r.TransformDirection(Vec3{1, 0, 0}); !got.ApproxEqual(Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("120 degrees about diagonal: x -> %v, want y", got)
	}
}
