// Package palette builds color ramps for height quantization.
//
// A ramp is generated from a few base colors. Each base color expands into a
// run of variations that go from dark to bright, with an optional random hue
// jitter, so low heights pick the dark end of the first color and high
// heights the bright end of the last.
package palette

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrEmptyPalette   = errors.New("palette has no colors")
	ErrInvalidColor   = errors.New("invalid palette color")
	ErrRatioMismatch  = errors.New("palette ratios do not match colors")
	ErrInvalidPalette = errors.New("invalid palette parameters")
)

// Value levels run from minLevel (first variation scaled down) to 1.
const minLevel = 0.25

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGB returns the color without alpha.
func (c Color) RGB() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

// ParseHex parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	return fromColorful(c), nil
}

func fromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}
}

// Input is one base color of a ramp.
type Input struct {
	Color string `yaml:"color"`
	// HueShift is the maximum random hue jitter per variation, in degrees.
	HueShift int `yaml:"hue_shift"`
	// Variations is used when the palette has no ratios.
	Variations int `yaml:"variations"`
}

// Params describes a ramp.
type Params struct {
	Colors []Input `yaml:"colors"`

	// Ratios split Detail variations between the colors. They are normalized
	// to sum to one. Ignored when RandomRatios is set.
	Ratios       []float64 `yaml:"ratios,omitempty"`
	RandomRatios bool      `yaml:"random_ratios"`
	Detail       int       `yaml:"detail"`

	Seed uint64 `yaml:"seed"`
}

// Generate expands p into a ramp. The result is deterministic for p.
func Generate(p Params) ([]Color, error) {
	if len(p.Colors) == 0 {
		return nil, ErrEmptyPalette
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x5851F42D4C957F2D))

	counts, err := variationCounts(p, rng)
	if err != nil {
		return nil, err
	}

	var ramp []Color
	for i, in := range p.Colors {
		base, err := colorful.Hex(in.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: color %d %q: %v", ErrInvalidColor, i, in.Color, err)
		}
		ramp = append(ramp, variations(base, in.HueShift, counts[i], rng)...)
	}

	if len(ramp) == 0 {
		return nil, fmt.Errorf("%w: every color has zero variations", ErrEmptyPalette)
	}
	return ramp, nil
}

func variationCounts(p Params, rng *rand.Rand) ([]int, error) {
	counts := make([]int, len(p.Colors))

	ratios := p.Ratios
	if p.RandomRatios {
		ratios = make([]float64, len(p.Colors))
		for i := range ratios {
			ratios[i] = rng.Float64()
		}
	}

	if len(ratios) == 0 {
		for i, in := range p.Colors {
			if in.Variations < 0 {
				return nil, fmt.Errorf("%w: color %d has %d variations", ErrInvalidPalette, i, in.Variations)
			}
			counts[i] = in.Variations
		}
		return counts, nil
	}

	if len(ratios) != len(p.Colors) {
		return nil, fmt.Errorf("%w: %d ratios for %d colors", ErrRatioMismatch, len(ratios), len(p.Colors))
	}
	if p.Detail < 1 {
		return nil, fmt.Errorf("%w: detail %d with ratios", ErrInvalidPalette, p.Detail)
	}

	var sum float64
	for _, r := range ratios {
		if r < 0 || gomath.IsNaN(r) {
			return nil, fmt.Errorf("%w: ratio %g", ErrInvalidPalette, r)
		}
		sum += r
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: ratios sum to zero", ErrInvalidPalette)
	}
	for i, r := range ratios {
		counts[i] = int(float64(p.Detail) * r / sum)
	}
	return counts, nil
}

// variations returns n shades of base, from dark to bright.
func variations(base colorful.Color, hueShift, n int, rng *rand.Rand) []Color {
	if n <= 0 {
		return nil
	}
	if hueShift < 0 {
		hueShift = -hueShift
	}
	h, s, v := base.Hsv()

	out := make([]Color, 0, n)
	for k := 1; k <= n; k++ {
		hue := h
		if hueShift > 0 {
			hue += float64(rng.IntN(2*hueShift) - hueShift)
		}
		hue = gomath.Mod(hue, 360)
		if hue < 0 {
			hue += 360
		}
		level := minLevel + float64(k)/float64(n)*(1-minLevel)
		out = append(out, fromColorful(colorful.Hsv(hue, s, gomath.Min(v*level, 1))))
	}
	return out
}
