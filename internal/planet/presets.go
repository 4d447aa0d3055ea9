package planet

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/geoplanet/internal/bake"
	"github.com/Faultbox/geoplanet/internal/field"
	"github.com/Faultbox/geoplanet/pkg/noise"
	"github.com/Faultbox/geoplanet/pkg/palette"
)

// Fresh noise seeds drawn by Pick fall in [MinPresetSeed, MaxPresetSeed).
const (
	MinPresetSeed = 1000
	MaxPresetSeed = 10000
)

var ErrInvalidLibrary = errors.New("invalid preset library")

//go:embed presets.yaml
var defaultLibrary []byte

// Library is a set of noise presets and palettes, paired into groups. A
// group says which palettes suit which terrain.
type Library struct {
	NoiseSets    []NoiseSet    `yaml:"noise_sets"`
	PaletteLists []PaletteList `yaml:"palette_lists"`
	Groups       []Group       `yaml:"groups"`
}

// NoiseSet is a named list of terrain presets.
type NoiseSet struct {
	Name   string        `yaml:"name"`
	Noises []NoisePreset `yaml:"noises"`
}

// NoisePreset is one terrain. Field and Bake override the base recipe when
// set.
type NoisePreset struct {
	Name  string          `yaml:"name"`
	Noise noise.Params    `yaml:"noise"`
	Field *field.Settings `yaml:"field,omitempty"`
	Bake  *bake.Options   `yaml:"bake,omitempty"`
}

// UnmarshalYAML fills fields missing from the document with defaults.
func (p *NoisePreset) UnmarshalYAML(node *yaml.Node) error {
	type plain NoisePreset
	v := plain{Noise: noise.DefaultParams()}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = NoisePreset(v)
	return nil
}

// PaletteList is a named list of palettes.
type PaletteList struct {
	Name     string          `yaml:"name"`
	Palettes []PalettePreset `yaml:"palettes"`
}

// PalettePreset is a named palette.
type PalettePreset struct {
	Name           string `yaml:"name"`
	palette.Params `yaml:",inline"`
}

// Group pairs a noise set with a palette list, by name.
type Group struct {
	NoiseSet    string `yaml:"noise_set"`
	PaletteList string `yaml:"palette_list"`
}

// DefaultLibrary returns the built-in library.
func DefaultLibrary() (*Library, error) {
	return ParseLibrary(defaultLibrary)
}

// LoadLibrary reads a library from a YAML file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset library: %w", err)
	}
	lib, err := ParseLibrary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// ParseLibrary decodes and validates a YAML library.
func ParseLibrary(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLibrary, err)
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// Validate checks that every group resolves to a non-empty noise set and
// palette list, and that every preset is usable.
func (l *Library) Validate() error {
	if len(l.Groups) == 0 {
		return fmt.Errorf("%w: no groups", ErrInvalidLibrary)
	}
	for _, set := range l.NoiseSets {
		for _, n := range set.Noises {
			if err := n.Noise.Validate(); err != nil {
				return fmt.Errorf("%w: noise %s/%s: %w", ErrInvalidLibrary, set.Name, n.Name, err)
			}
			if n.Field != nil {
				if err := n.Field.Validate(); err != nil {
					return fmt.Errorf("%w: noise %s/%s: %w", ErrInvalidLibrary, set.Name, n.Name, err)
				}
			}
		}
	}
	for _, list := range l.PaletteLists {
		for _, p := range list.Palettes {
			if len(p.Colors) == 0 {
				return fmt.Errorf("%w: palette %s/%s: %w", ErrInvalidLibrary, list.Name, p.Name, palette.ErrEmptyPalette)
			}
		}
	}
	for i, g := range l.Groups {
		set := l.noiseSet(g.NoiseSet)
		if set == nil || len(set.Noises) == 0 {
			return fmt.Errorf("%w: group %d: noise set %q missing or empty", ErrInvalidLibrary, i, g.NoiseSet)
		}
		list := l.paletteList(g.PaletteList)
		if list == nil || len(list.Palettes) == 0 {
			return fmt.Errorf("%w: group %d: palette list %q missing or empty", ErrInvalidLibrary, i, g.PaletteList)
		}
	}
	return nil
}

func (l *Library) noiseSet(name string) *NoiseSet {
	for i := range l.NoiseSets {
		if l.NoiseSets[i].Name == name {
			return &l.NoiseSets[i]
		}
	}
	return nil
}

func (l *Library) paletteList(name string) *PaletteList {
	for i := range l.PaletteLists {
		if l.PaletteLists[i].Name == name {
			return &l.PaletteLists[i]
		}
	}
	return nil
}

// Pick draws a group, then a noise and a palette from it, and applies them
// to base. The noise gets a fresh seed in [MinPresetSeed, MaxPresetSeed) and
// the palette a fresh seed of its own. The library must be valid.
func (l *Library) Pick(rng *rand.Rand, base Recipe) Recipe {
	g := l.Groups[rng.IntN(len(l.Groups))]
	set := l.noiseSet(g.NoiseSet)
	list := l.paletteList(g.PaletteList)

	n := set.Noises[rng.IntN(len(set.Noises))]
	p := list.Palettes[rng.IntN(len(list.Palettes))]

	r := base
	r.Name = fmt.Sprintf("%s-%s", n.Name, p.Name)
	r.Noise = n.Noise
	r.Noise.Seed = int64(MinPresetSeed + rng.IntN(MaxPresetSeed-MinPresetSeed))
	if n.Field != nil {
		r.Field = *n.Field
	}
	if n.Bake != nil {
		r.Bake = *n.Bake
	}
	r.Palette = p.Params
	r.Palette.Colors = append([]palette.Input(nil), p.Colors...)
	r.Palette.Ratios = append([]float64(nil), p.Ratios...)
	r.Palette.Seed = rng.Uint64()
	return r
}

// Recipes picks count recipes from a generator seeded with seed. The same
// seed always yields the same recipes.
func (l *Library) Recipes(count int, seed uint64, base Recipe) []Recipe {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	out := make([]Recipe, count)
	for i := range out {
		r := l.Pick(rng, base)
		r.Name = fmt.Sprintf("%03d-%s", i, r.Name)
		out[i] = r
	}
	return out
}
