// Package field generates the equirectangular height and color images that
// are baked onto a geodesic mesh.
package field

import (
	"errors"
	"fmt"

	"github.com/Faultbox/geoplanet/pkg/palette"
)

var (
	ErrInvalidSettings = errors.New("invalid field settings")
	ErrEmptyRamp       = errors.New("color ramp is empty")
)

// HeightField is a row-major grid of heights. After generation every value
// is in [0, 1].
type HeightField struct {
	Width  int
	Height int
	Values []float64
}

// NewHeightField allocates a zeroed field.
func NewHeightField(width, height int) *HeightField {
	return &HeightField{Width: width, Height: height, Values: make([]float64, width*height)}
}

// At returns the value at (x, y) with coordinates clamped to the field.
func (h *HeightField) At(x, y int) float64 {
	return h.Values[clampi(y, 0, h.Height-1)*h.Width+clampi(x, 0, h.Width-1)]
}

// Set stores v at (x, y).
func (h *HeightField) Set(x, y int, v float64) {
	h.Values[y*h.Width+x] = v
}

// Range returns the smallest and largest value.
func (h *HeightField) Range() (lo, hi float64) {
	if len(h.Values) == 0 {
		return 0, 0
	}
	lo, hi = h.Values[0], h.Values[0]
	for _, v := range h.Values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// ColorField is a row-major grid of colors aligned with a HeightField.
type ColorField struct {
	Width  int
	Height int
	Pixels []palette.Color
}

// At returns the color at (x, y) with coordinates clamped to the field.
func (c *ColorField) At(x, y int) palette.Color {
	return c.Pixels[clampi(y, 0, c.Height-1)*c.Width+clampi(x, 0, c.Width-1)]
}

// Settings controls how a HeightField is produced from a noise function.
type Settings struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// PerlinScale divides the projected sphere coordinates before sampling.
	PerlinScale float64 `yaml:"perlin_scale"`
	// PowerRule is applied to remapped heights; 1 leaves them linear.
	PowerRule float64 `yaml:"power_rule"`

	Upscale       bool    `yaml:"upscale"`
	UpscaleWidth  int     `yaml:"upscale_width"`
	UpscaleHeight int     `yaml:"upscale_height"`
	ResampleRatio float64 `yaml:"resample_ratio"`

	Smooth         bool `yaml:"smooth"`
	SmoothDistance int  `yaml:"smooth_distance"`
}

// DefaultSettings returns a 512x256 field without upscaling or smoothing.
func DefaultSettings() Settings {
	return Settings{
		Width:          512,
		Height:         256,
		PerlinScale:    40,
		PowerRule:      1,
		UpscaleWidth:   1024,
		UpscaleHeight:  512,
		ResampleRatio:  0.25,
		SmoothDistance: 1,
	}
}

// Validate reports the first out-of-range field.
func (s Settings) Validate() error {
	switch {
	case s.Width < 2 || s.Height < 2:
		return fmt.Errorf("%w: size %dx%d, need at least 2x2", ErrInvalidSettings, s.Width, s.Height)
	case !(s.PerlinScale > 0):
		return fmt.Errorf("%w: perlin scale %g must be positive", ErrInvalidSettings, s.PerlinScale)
	case s.ResampleRatio < 0 || s.ResampleRatio > 1:
		return fmt.Errorf("%w: resample ratio %g not in [0, 1]", ErrInvalidSettings, s.ResampleRatio)
	case s.Smooth && s.SmoothDistance < 0:
		return fmt.Errorf("%w: smooth distance %d", ErrInvalidSettings, s.SmoothDistance)
	}
	return nil
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
