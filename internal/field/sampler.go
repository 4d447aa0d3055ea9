package field

import (
	gomath "math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/geoplanet/internal/logger"
	"github.com/Faultbox/geoplanet/pkg/noise"
)

// Sampler projects image coordinates onto a sphere and samples a noise
// function there. Column 0 and the last column meet at the same longitude.
type Sampler struct {
	settings Settings
	noise    *noise.Fractal
	offset   float64
}

// NewSampler validates the inputs and compiles the noise function.
func NewSampler(s Settings, p noise.Params) (*Sampler, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	n, err := noise.New(p)
	if err != nil {
		return nil, err
	}
	return &Sampler{settings: s, noise: n, offset: p.Offset}, nil
}

// Raw returns the unnormalized noise at image coordinate (x, y). Fractional
// coordinates address points between pixels.
func (s *Sampler) Raw(x, y float64) float64 {
	w := float64(s.settings.Width)
	h := float64(s.settings.Height)
	cx, cy := w/2, h/2
	r := w / (2 * gomath.Pi)

	latitude := (y - cy) / h
	longitude := (x - cx) / cx

	ringRadius := r * gomath.Cos(latitude*gomath.Pi)
	ny := gomath.Sin(latitude*gomath.Pi) * r
	nx := gomath.Cos(longitude*gomath.Pi)*ringRadius + s.offset
	nz := gomath.Sin(longitude*gomath.Pi)*ringRadius + s.offset

	// The offset is added again inside the division.
	scale := s.settings.PerlinScale
	return s.noise.Get((nx+s.offset)/scale, (ny+s.offset)/scale, (nz+s.offset)/scale)
}

// Generate produces a height field: noise is sampled for every pixel,
// remapped to [0, 1] by the global range, raised to PowerRule, then
// optionally upscaled and smoothed.
func Generate(s Settings, p noise.Params) (*HeightField, error) {
	sampler, err := NewSampler(s, p)
	if err != nil {
		return nil, err
	}

	h := NewHeightField(s.Width, s.Height)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			h.Set(x, y, sampler.Raw(float64(x), float64(y)))
		}
	}

	lo, hi := h.Range()
	norm := newNormalizer(lo, hi, s.PowerRule)
	for i, v := range h.Values {
		h.Values[i] = norm.apply(v)
	}

	logger.Debug("height field sampled",
		zap.Int("width", s.Width),
		zap.Int("height", s.Height),
		zap.Float64("raw_min", lo),
		zap.Float64("raw_max", hi))

	if s.Upscale {
		rng := rand.New(rand.NewPCG(uint64(p.Seed), uint64(p.Seed)^0xDA3E39CB94B95BDB))
		resample := func(sx, sy float64) float64 {
			return norm.apply(sampler.Raw(sx, sy))
		}
		h = Upscale(h, s.UpscaleWidth, s.UpscaleHeight, s.ResampleRatio, rng, resample)
	}
	if s.Smooth && s.SmoothDistance > 0 {
		h = Smooth(h, s.SmoothDistance)
	}
	return h, nil
}

// normalizer maps raw noise into [0, 1] using a fixed range.
type normalizer struct {
	lo, span, power float64
}

func newNormalizer(lo, hi, power float64) normalizer {
	if !(power > 0) {
		power = 1
	}
	return normalizer{lo: lo, span: hi - lo, power: power}
}

func (n normalizer) apply(v float64) float64 {
	if n.span == 0 {
		return 0
	}
	t := clampf((v-n.lo)/n.span, 0, 1)
	if n.power != 1 {
		t = gomath.Pow(t, n.power)
	}
	return t
}
