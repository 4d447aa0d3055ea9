package noise

import (
	"errors"
	gomath "math"
	"testing"
)

func allParams() []Params {
	var out []Params
	for fr := FBM; fr <= HybridMulti; fr++ {
		for b := Gradient; b <= White; b++ {
			p := DefaultParams()
			p.Fractal = fr
			p.Basis = b
			out = append(out, p)
		}
	}
	return out
}

func TestDeterministic(t *testing.T) {
	for _, p := range allParams() {
		f1, err := New(p)
		if err != nil {
			t.Fatalf("New(%s/%s) failed: %v", p.Fractal, p.Basis, err)
		}
		f2, _ := New(p)
		for i := 0; i < 50; i++ {
			x, y, z := float64(i)*0.37, float64(i)*-0.11, float64(i)*0.73
			if a, b := f1.Get(x, y, z), f2.Get(x, y, z); a != b {
				t.Fatalf("%s/%s: Get(%v,%v,%v) = %v then %v", p.Fractal, p.Basis, x, y, z, a, b)
			}
			if v := f1.Get(x, y, z); gomath.IsNaN(v) || gomath.IsInf(v, 0) {
				t.Fatalf("%s/%s: Get returned %v", p.Fractal, p.Basis, v)
			}
		}
	}
}

func TestSeedChangesOutput(t *testing.T) {
	for b := Gradient; b <= White; b++ {
		p := DefaultParams()
		p.Basis = b
		f1, _ := New(p)
		p.Seed++
		f2, _ := New(p)

		differ := false
		for i := 0; i < 20 && !differ; i++ {
			x := 0.5 + float64(i)*1.3
			differ = f1.Get(x, 0.25, -x) != f2.Get(x, 0.25, -x)
		}
		if !differ {
			t.Errorf("%s: changing the seed did not change the output", b)
		}
	}
}

func TestBasisRange(t *testing.T) {
	for b := Gradient; b <= White; b++ {
		src := newSource(b, Quintic, 7)
		for i := 0; i < 2000; i++ {
			x := float64(i) * 0.173
			v := src.Get(x, x*0.7-3, 11-x*1.3)
			if v < -1 || v > 1 {
				t.Fatalf("%s: value %v outside [-1, 1]", b, v)
			}
		}
	}
}

func TestGradientZeroOnLattice(t *testing.T) {
	src := newSource(Gradient, Quintic, 3)
	for i := -5; i <= 5; i++ {
		if v := src.Get(float64(i), float64(2*i), float64(-i)); v != 0 {
			t.Errorf("gradient noise at lattice point %d = %v, want 0", i, v)
		}
	}
}

func TestValueContinuous(t *testing.T) {
	src := newSource(Value, Quintic, 3)
	for i := 0; i < 10; i++ {
		x := float64(i) + 0.5
		if d := gomath.Abs(src.Get(x, 0.3, 0.3) - src.Get(x+1e-7, 0.3, 0.3)); d > 1e-5 {
			t.Errorf("value noise jumps by %v near x=%v", d, x)
		}
	}
}

func TestInterpolationNoneIsStepped(t *testing.T) {
	src := newSource(Value, None, 3)
	if a, b := src.Get(2.1, 0.1, 0.1), src.Get(2.9, 0.9, 0.9); a != b {
		t.Errorf("stepped value noise differs inside one cell: %v vs %v", a, b)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero octaves", func(p *Params) { p.Octaves = 0 }},
		{"too many octaves", func(p *Params) { p.Octaves = MaxOctaves + 1 }},
		{"zero frequency", func(p *Params) { p.Frequency = 0 }},
		{"NaN lacunarity", func(p *Params) { p.Lacunarity = gomath.NaN() }},
		{"bad fractal", func(p *Params) { p.Fractal = 42 }},
		{"bad basis", func(p *Params) { p.Basis = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if _, err := New(p); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("New() error = %v, want ErrInvalidParams", err)
			}
		})
	}
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("DefaultParams().Validate() = %v", err)
	}
}

func TestKindText(t *testing.T) {
	var f FractalType
	if err := f.UnmarshalText([]byte("ridged_multi")); err != nil || f != RidgedMulti {
		t.Errorf("UnmarshalText(ridged_multi) = %v, %v", f, err)
	}
	var b BasisType
	if err := b.UnmarshalText([]byte("perlin")); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("UnmarshalText(perlin) error = %v, want ErrInvalidParams", err)
	}
	if s := Simplex.String(); s != "simplex" {
		t.Errorf("Simplex.String() = %q", s)
	}
	if s := InterpolationType(9).String(); s != "unknown(9)" {
		t.Errorf("unknown interpolation String() = %q", s)
	}
}
