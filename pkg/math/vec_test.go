package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	l := v.Normalize().Length()
	if math.Abs(l-1) > 1e-12 {
		t.Errorf("Vec3.Normalize().Length() = %v, want 1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3Angle(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"orthogonal", Vec3{1, 0, 0}, Vec3{0, 1, 0}, math.Pi / 2},
		{"parallel", Vec3{0, 0, 2}, Vec3{0, 0, 5}, 0},
		{"opposite", Vec3{0, 0, 1}, Vec3{0, 0, -1}, math.Pi},
		{"zero", Vec3{}, Vec3{1, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Angle(tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Angle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3SignedAngle(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	z := Vec3{0, 0, 1}
	if got := x.SignedAngle(y, z); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("SignedAngle(x->y about z) = %v, want pi/2", got)
	}
	if got := y.SignedAngle(x, z); math.Abs(got+math.Pi/2) > 1e-12 {
		t.Errorf("SignedAngle(y->x about z) = %v, want -pi/2", got)
	}
}
