package noise

import (
	gomath "math"

	"github.com/ojrac/opensimplex-go"
)

// source is one octave of basis noise, returning values in about [-1, 1].
type source interface {
	Get(x, y, z float64) float64
}

func newSource(basis BasisType, interp InterpolationType, seed int64) source {
	switch basis {
	case Value:
		return &valueSource{seed: seed, curve: curveFor(interp)}
	case Simplex:
		return &simplexSource{n: opensimplex.New(seed)}
	case White:
		return &whiteSource{seed: seed}
	default:
		return &gradientSource{seed: seed, curve: curveFor(interp)}
	}
}

func curveFor(interp InterpolationType) func(float64) float64 {
	switch interp {
	case None:
		return func(float64) float64 { return 0 }
	case Linear:
		return func(t float64) float64 { return t }
	case Cubic:
		return func(t float64) float64 { return t * t * (3 - 2*t) }
	default:
		return func(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }
	}
}

// hash3 is a SplitMix64 style integer hash of a lattice point.
func hash3(x, y, z, seed int64) uint64 {
	v := uint64(x)*0x8DA6B343 ^ uint64(y)*0xD8163841 ^ uint64(z)*0xCB1AB31F
	v += uint64(seed) * 0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// unitFloat maps a hash to [-1, 1].
func unitFloat(h uint64) float64 {
	return float64(h>>11)/float64(1<<52) - 1
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// lattice locates p in its unit cell: the lower corner and the
// interpolation weights along each axis.
type lattice struct {
	x0, y0, z0 int64
	fx, fy, fz float64 // offsets inside the cell
	u, v, w    float64 // curve(fx), curve(fy), curve(fz)
}

func locate(x, y, z float64, curve func(float64) float64) lattice {
	fx0, fy0, fz0 := gomath.Floor(x), gomath.Floor(y), gomath.Floor(z)
	l := lattice{
		x0: int64(fx0), y0: int64(fy0), z0: int64(fz0),
		fx: x - fx0, fy: y - fy0, fz: z - fz0,
	}
	l.u, l.v, l.w = curve(l.fx), curve(l.fy), curve(l.fz)
	return l
}

// trilinear blends the eight corner values c[dx|dy<<1|dz<<2].
func (l lattice) trilinear(c [8]float64) float64 {
	x00 := lerp(c[0], c[1], l.u)
	x10 := lerp(c[2], c[3], l.u)
	x01 := lerp(c[4], c[5], l.u)
	x11 := lerp(c[6], c[7], l.u)
	return lerp(lerp(x00, x10, l.v), lerp(x01, x11, l.v), l.w)
}

type valueSource struct {
	seed  int64
	curve func(float64) float64
}

func (s *valueSource) Get(x, y, z float64) float64 {
	l := locate(x, y, z, s.curve)
	var c [8]float64
	for i := range c {
		dx, dy, dz := int64(i&1), int64(i>>1&1), int64(i>>2&1)
		c[i] = unitFloat(hash3(l.x0+dx, l.y0+dy, l.z0+dz, s.seed))
	}
	return l.trilinear(c)
}

// gradients are the twelve cube edge directions of classic Perlin noise.
var gradients = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

type gradientSource struct {
	seed  int64
	curve func(float64) float64
}

func (s *gradientSource) Get(x, y, z float64) float64 {
	l := locate(x, y, z, s.curve)
	var c [8]float64
	for i := range c {
		dx, dy, dz := int64(i&1), int64(i>>1&1), int64(i>>2&1)
		g := gradients[hash3(l.x0+dx, l.y0+dy, l.z0+dz, s.seed)%12]
		c[i] = g[0]*(l.fx-float64(dx)) + g[1]*(l.fy-float64(dy)) + g[2]*(l.fz-float64(dz))
	}
	v := l.trilinear(c)
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

type simplexSource struct {
	n opensimplex.Noise
}

func (s *simplexSource) Get(x, y, z float64) float64 {
	return s.n.Eval3(x, y, z)
}

// whiteSource hashes the exact coordinate bits, so it is uncorrelated even
// between neighbouring samples.
type whiteSource struct {
	seed int64
}

func (s *whiteSource) Get(x, y, z float64) float64 {
	return unitFloat(hash3(
		int64(gomath.Float64bits(x)),
		int64(gomath.Float64bits(y)),
		int64(gomath.Float64bits(z)),
		s.seed))
}
