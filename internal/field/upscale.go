package field

import (
	gomath "math"
	"math/rand/v2"
)

// Resampler returns a normalized height at a fractional source coordinate.
type Resampler func(sx, sy float64) float64

// Upscale enlarges src to width x height. A target that is not larger in
// both dimensions returns src unchanged.
//
// Target pixels that map exactly onto a source pixel copy it. Otherwise, with
// probability ratio, the height is resampled at the exact back-mapped point;
// the rest take the mean of the nearest source pixel and the pixels directly
// above and below it.
func Upscale(src *HeightField, width, height int, ratio float64, rng *rand.Rand, resample Resampler) *HeightField {
	if width <= src.Width || height <= src.Height {
		return src
	}

	dst := NewHeightField(width, height)
	fx := float64(src.Width) / float64(width)
	fy := float64(src.Height) / float64(height)

	for y := 0; y < height; y++ {
		sy := float64(y) * fy
		for x := 0; x < width; x++ {
			sx := float64(x) * fx

			ix, iy := int(gomath.Floor(sx)), int(gomath.Floor(sy))
			if float64(ix) == sx && float64(iy) == sy {
				dst.Set(x, y, src.At(ix, iy))
				continue
			}

			if resample != nil && rng != nil && rng.Float64() < ratio {
				dst.Set(x, y, clampf(resample(sx, sy), 0, 1))
				continue
			}

			v := src.At(ix, iy) + src.At(ix, iy-1) + src.At(ix, iy+1)
			dst.Set(x, y, v/3)
		}
	}
	return dst
}
