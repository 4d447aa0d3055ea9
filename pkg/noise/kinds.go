package noise

import "fmt"

// FractalType selects how octaves are combined.
type FractalType int

const (
	FBM FractalType = iota
	RidgedMulti
	Billow
	Multi
	HybridMulti
)

// BasisType selects the per-octave noise source.
type BasisType int

const (
	Gradient BasisType = iota
	Value
	Simplex
	White
)

// InterpolationType selects the lattice smoothing curve.
type InterpolationType int

const (
	Quintic InterpolationType = iota
	Cubic
	Linear
	None
)

var (
	fractalNames = []string{"fbm", "ridged_multi", "billow", "multi", "hybrid_multi"}
	basisNames   = []string{"gradient", "value", "simplex", "white"}
	interpNames  = []string{"quintic", "cubic", "linear", "none"}
)

func kindString(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func parseKind(names []string, kind, text string) (int, error) {
	for i, n := range names {
		if n == text {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidParams, kind, text)
}

func (t FractalType) String() string { return kindString(fractalNames, int(t)) }

// MarshalText implements encoding.TextMarshaler.
func (t FractalType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *FractalType) UnmarshalText(b []byte) error {
	v, err := parseKind(fractalNames, "fractal type", string(b))
	*t = FractalType(v)
	return err
}

func (t BasisType) String() string { return kindString(basisNames, int(t)) }

func (t BasisType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *BasisType) UnmarshalText(b []byte) error {
	v, err := parseKind(basisNames, "basis type", string(b))
	*t = BasisType(v)
	return err
}

func (t InterpolationType) String() string { return kindString(interpNames, int(t)) }

func (t InterpolationType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *InterpolationType) UnmarshalText(b []byte) error {
	v, err := parseKind(interpNames, "interpolation", string(b))
	*t = InterpolationType(v)
	return err
}
