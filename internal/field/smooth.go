package field

// Smooth applies a box filter of the given radius. Cells near the border
// average only the neighbours that exist; the field does not wrap.
func Smooth(src *HeightField, radius int) *HeightField {
	if radius <= 0 {
		return src
	}

	dst := NewHeightField(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		y0, y1 := max(y-radius, 0), min(y+radius, src.Height-1)
		for x := 0; x < src.Width; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, src.Width-1)

			var sum float64
			for yy := y0; yy <= y1; yy++ {
				row := src.Values[yy*src.Width:]
				for xx := x0; xx <= x1; xx++ {
					sum += row[xx]
				}
			}
			dst.Set(x, y, sum/float64((x1-x0+1)*(y1-y0+1)))
		}
	}
	return dst
}
