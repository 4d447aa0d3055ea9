package field

import (
	"fmt"

	"github.com/Faultbox/geoplanet/pkg/palette"
)

// Bucket returns the ramp index for height h in a ramp of n colors. Heights
// outside [0, 1] clamp to the first or last color.
func Bucket(h float64, n int) int {
	return clampi(int(h/(1/float64(n))), 0, n-1)
}

// Colorize quantizes every height into ramp.
func Colorize(h *HeightField, ramp []palette.Color) (*ColorField, error) {
	if len(ramp) == 0 {
		return nil, ErrEmptyRamp
	}
	if len(h.Values) != h.Width*h.Height {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrInvalidSettings, len(h.Values), h.Width, h.Height)
	}

	c := &ColorField{
		Width:  h.Width,
		Height: h.Height,
		Pixels: make([]palette.Color, len(h.Values)),
	}
	for i, v := range h.Values {
		c.Pixels[i] = ramp[Bucket(v, len(ramp))]
	}
	return c, nil
}
