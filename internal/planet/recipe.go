// Package planet turns a recipe into a baked planet: a cached geodesic
// sphere displaced by a noise height field and colored from a palette ramp.
package planet

import (
	"errors"
	"fmt"

	"github.com/Faultbox/geoplanet/internal/bake"
	"github.com/Faultbox/geoplanet/internal/field"
	"github.com/Faultbox/geoplanet/pkg/icosphere"
	"github.com/Faultbox/geoplanet/pkg/noise"
	"github.com/Faultbox/geoplanet/pkg/palette"
)

var ErrInvalidRecipe = errors.New("invalid planet recipe")

// Recipe holds everything needed to bake one planet.
type Recipe struct {
	Name    string         `yaml:"name"`
	Depth   int            `yaml:"depth"`
	Noise   noise.Params   `yaml:"noise"`
	Field   field.Settings `yaml:"field"`
	Palette palette.Params `yaml:"palette"`
	Bake    bake.Options   `yaml:"bake"`
}

// DefaultRecipe returns a depth 6 planet with a four color earth-like ramp.
func DefaultRecipe() Recipe {
	return Recipe{
		Name:  "planet",
		Depth: 6,
		Noise: noise.DefaultParams(),
		Field: field.DefaultSettings(),
		Palette: palette.Params{
			Colors: []palette.Input{
				{Color: "#1b3a6b", HueShift: 4, Variations: 6},
				{Color: "#d8c78a", HueShift: 2, Variations: 2},
				{Color: "#3f7a3a", HueShift: 6, Variations: 6},
				{Color: "#8a7f74", HueShift: 3, Variations: 4},
			},
			Detail: 18,
			Seed:   1000,
		},
		Bake: bake.DefaultOptions(),
	}
}

// Validate checks the recipe against a cache that holds depths up to
// maxDepth.
func (r Recipe) Validate(maxDepth int) error {
	if maxDepth > icosphere.MaxDepth {
		maxDepth = icosphere.MaxDepth
	}
	if r.Depth < 0 || r.Depth > maxDepth {
		return fmt.Errorf("%w: %q: depth %d not in [0, %d]", ErrInvalidRecipe, r.Name, r.Depth, maxDepth)
	}
	if err := r.Noise.Validate(); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRecipe, r.Name, err)
	}
	if err := r.Field.Validate(); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRecipe, r.Name, err)
	}
	if len(r.Palette.Colors) == 0 {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRecipe, r.Name, palette.ErrEmptyPalette)
	}
	if r.Bake.BaseScale < 0 {
		return fmt.Errorf("%w: %q: base scale %g is negative", ErrInvalidRecipe, r.Name, r.Bake.BaseScale)
	}
	return nil
}
