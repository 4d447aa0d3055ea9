package palette

import (
	"errors"
	"slices"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func testParams() Params {
	return Params{
		Colors: []Input{
			{Color: "#1f4e9c", HueShift: 10},
			{Color: "#3c8d2f", HueShift: 5},
			{Color: "#e8e4d8"},
		},
		Ratios: []float64{2, 1, 1},
		Detail: 16,
		Seed:   42,
	}
}

func TestGenerateRatios(t *testing.T) {
	ramp, err := Generate(testParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// 16 * (0.5, 0.25, 0.25)
	if len(ramp) != 16 {
		t.Errorf("ramp length = %d, want 16", len(ramp))
	}
	for i, c := range ramp {
		if c.A != 1 {
			t.Errorf("color %d alpha = %v, want 1", i, c.A)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := testParams()
	p.RandomRatios = true
	a, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a, b) {
		t.Error("same seed produced different ramps")
	}
}

func TestGenerateValueLevels(t *testing.T) {
	p := Params{Colors: []Input{{Color: "#ff0000", Variations: 4}}}
	ramp, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(ramp) != 4 {
		t.Fatalf("ramp length = %d, want 4", len(ramp))
	}
	want := []float64{0.4375, 0.625, 0.8125, 1}
	for i, c := range ramp {
		_, _, v := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Hsv()
		if d := v - want[i]; d > 1e-6 || d < -1e-6 {
			t.Errorf("variation %d value = %v, want %v", i, v, want[i])
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   error
	}{
		{"no colors", Params{}, ErrEmptyPalette},
		{"zero variations", Params{Colors: []Input{{Color: "#fff"}}}, ErrEmptyPalette},
		{"bad hex", Params{Colors: []Input{{Color: "green", Variations: 1}}}, ErrInvalidColor},
		{"ratio count", Params{Colors: []Input{{Color: "#fff"}}, Ratios: []float64{1, 2}, Detail: 4}, ErrRatioMismatch},
		{"zero ratios", Params{Colors: []Input{{Color: "#fff"}}, Ratios: []float64{0}, Detail: 4}, ErrInvalidPalette},
		{"no detail", Params{Colors: []Input{{Color: "#fff"}}, Ratios: []float64{1}}, ErrInvalidPalette},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(tt.params); !errors.Is(err, tt.want) {
				t.Errorf("Generate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || c.B != 0 || c.A != 1 {
		t.Errorf("ParseHex = %+v", c)
	}
	if got := c.Hex(); got != "#ff8000" {
		t.Errorf("Hex() = %q, want #ff8000", got)
	}
	if _, err := ParseHex("nope"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("ParseHex(nope) error = %v", err)
	}
}
