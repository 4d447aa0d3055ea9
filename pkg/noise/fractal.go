// Package noise provides seeded, deterministic 3D fractal noise.
//
// A Fractal sums several octaves of a basis noise. Each octave has its own
// seed and is sampled at Lacunarity times the previous octave's frequency.
package noise

import (
	"errors"
	"fmt"
	gomath "math"
)

// MaxOctaves bounds Params.Octaves.
const MaxOctaves = 24

var ErrInvalidParams = errors.New("invalid noise parameters")

// Params describes a fractal noise function.
type Params struct {
	Fractal       FractalType       `yaml:"fractal"`
	Basis         BasisType         `yaml:"basis"`
	Interpolation InterpolationType `yaml:"interpolation"`

	Frequency  float64 `yaml:"frequency"`
	Lacunarity float64 `yaml:"lacunarity"`
	Octaves    int     `yaml:"octaves"`

	// Offset shifts the signal in the multifractal types.
	Offset float64 `yaml:"offset"`
	// H is the fractal increment: octave i is weighted Lacunarity^(-H·i).
	H float64 `yaml:"h"`
	// Gain feeds the ridged signal back into the next octave's weight.
	Gain float64 `yaml:"gain"`

	Seed int64 `yaml:"seed"`
}

// DefaultParams returns an fBm gradient noise with six octaves.
func DefaultParams() Params {
	return Params{
		Fractal:       FBM,
		Basis:         Gradient,
		Interpolation: Quintic,
		Frequency:     1,
		Lacunarity:    2,
		Octaves:       6,
		Offset:        1,
		H:             1,
		Gain:          2,
		Seed:          1000,
	}
}

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	switch {
	case p.Fractal < FBM || p.Fractal > HybridMulti:
		return fmt.Errorf("%w: fractal type %d", ErrInvalidParams, p.Fractal)
	case p.Basis < Gradient || p.Basis > White:
		return fmt.Errorf("%w: basis type %d", ErrInvalidParams, p.Basis)
	case p.Interpolation < Quintic || p.Interpolation > None:
		return fmt.Errorf("%w: interpolation %d", ErrInvalidParams, p.Interpolation)
	case p.Octaves < 1 || p.Octaves > MaxOctaves:
		return fmt.Errorf("%w: octaves %d not in [1, %d]", ErrInvalidParams, p.Octaves, MaxOctaves)
	case !(p.Frequency > 0):
		return fmt.Errorf("%w: frequency %g must be positive", ErrInvalidParams, p.Frequency)
	case !(p.Lacunarity > 0):
		return fmt.Errorf("%w: lacunarity %g must be positive", ErrInvalidParams, p.Lacunarity)
	}
	return nil
}

// Fractal is a compiled noise function. It is safe for concurrent use.
type Fractal struct {
	params  Params
	sources []source
	weights []float64
	norm    float64
}

// New compiles p.
func New(p Params) (*Fractal, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	f := &Fractal{
		params:  p,
		sources: make([]source, p.Octaves),
		weights: make([]float64, p.Octaves),
	}
	for i := range f.sources {
		f.sources[i] = newSource(p.Basis, p.Interpolation, p.Seed+int64(i)*300)
		f.weights[i] = gomath.Pow(p.Lacunarity, -p.H*float64(i))
		f.norm += f.weights[i]
	}
	return f, nil
}

// Params returns the parameters f was built from.
func (f *Fractal) Params() Params {
	return f.params
}

// Get samples the noise at (x, y, z).
func (f *Fractal) Get(x, y, z float64) float64 {
	x *= f.params.Frequency
	y *= f.params.Frequency
	z *= f.params.Frequency

	switch f.params.Fractal {
	case RidgedMulti:
		return f.ridged(x, y, z)
	case Billow:
		return f.billow(x, y, z)
	case Multi:
		return f.multi(x, y, z)
	case HybridMulti:
		return f.hybrid(x, y, z)
	default:
		return f.fbm(x, y, z)
	}
}

func (f *Fractal) fbm(x, y, z float64) float64 {
	var sum float64
	lac := f.params.Lacunarity
	for i, src := range f.sources {
		sum += src.Get(x, y, z) * f.weights[i]
		x, y, z = x*lac, y*lac, z*lac
	}
	return sum / f.norm
}

func (f *Fractal) billow(x, y, z float64) float64 {
	var sum float64
	lac := f.params.Lacunarity
	for i, src := range f.sources {
		sum += (2*gomath.Abs(src.Get(x, y, z)) - 1) * f.weights[i]
		x, y, z = x*lac, y*lac, z*lac
	}
	return sum / f.norm
}

func (f *Fractal) multi(x, y, z float64) float64 {
	value := 1.0
	lac := f.params.Lacunarity
	for i, src := range f.sources {
		value *= src.Get(x, y, z)*f.weights[i] + f.params.Offset
		x, y, z = x*lac, y*lac, z*lac
	}
	return value
}

func (f *Fractal) hybrid(x, y, z float64) float64 {
	lac := f.params.Lacunarity
	off := f.params.Offset

	result := (f.sources[0].Get(x, y, z) + off) * f.weights[0]
	weight := result
	for i := 1; i < len(f.sources); i++ {
		x, y, z = x*lac, y*lac, z*lac
		if weight > 1 {
			weight = 1
		}
		signal := (f.sources[i].Get(x, y, z) + off) * f.weights[i]
		result += weight * signal
		weight *= signal
	}
	return result
}

func (f *Fractal) ridged(x, y, z float64) float64 {
	lac := f.params.Lacunarity
	off := f.params.Offset

	signal := off - gomath.Abs(f.sources[0].Get(x, y, z))
	signal *= signal
	result := signal
	for i := 1; i < len(f.sources); i++ {
		x, y, z = x*lac, y*lac, z*lac
		weight := signal * f.params.Gain
		if weight > 1 {
			weight = 1
		} else if weight < 0 {
			weight = 0
		}
		signal = off - gomath.Abs(f.sources[i].Get(x, y, z))
		signal *= signal * weight
		result += signal * f.weights[i]
	}
	return result
}
