package planet

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/geoplanet/internal/bake"
	"github.com/Faultbox/geoplanet/internal/field"
	"github.com/Faultbox/geoplanet/internal/logger"
	"github.com/Faultbox/geoplanet/internal/meshcache"
	"github.com/Faultbox/geoplanet/pkg/palette"
)

// Planet is the result of baking a Recipe.
type Planet struct {
	Recipe  Recipe
	Heights *field.HeightField
	Colors  *field.ColorField
	Ramp    []palette.Color
	Mesh    *bake.Mesh
}

// Generator bakes recipes against a mesh cache. The cache must already hold
// every depth a recipe asks for. Generate is safe for concurrent use.
type Generator struct {
	meshes *meshcache.Manager
	log    *zap.Logger
}

// NewGenerator creates a generator backed by meshes.
func NewGenerator(meshes *meshcache.Manager) *Generator {
	return &Generator{
		meshes: meshes,
		log:    logger.Named("planet"),
	}
}

// Generate samples the height field, builds the ramp, colors the field and
// bakes it onto the cached mesh for r.Depth.
func (g *Generator) Generate(r Recipe) (*Planet, error) {
	start := time.Now()

	geo, err := g.meshes.Get(r.Depth)
	if err != nil {
		return nil, fmt.Errorf("planet %q: %w", r.Name, err)
	}

	heights, err := field.Generate(r.Field, r.Noise)
	if err != nil {
		return nil, fmt.Errorf("planet %q: height field: %w", r.Name, err)
	}

	ramp, err := palette.Generate(r.Palette)
	if err != nil {
		return nil, fmt.Errorf("planet %q: palette: %w", r.Name, err)
	}

	colors, err := field.Colorize(heights, ramp)
	if err != nil {
		return nil, fmt.Errorf("planet %q: colorize: %w", r.Name, err)
	}

	mesh, err := bake.Bake(geo, heights, colors, r.Bake)
	if err != nil {
		return nil, fmt.Errorf("planet %q: bake: %w", r.Name, err)
	}

	g.log.Info("planet baked",
		zap.String("name", r.Name),
		zap.Int("depth", r.Depth),
		zap.Int64("seed", r.Noise.Seed),
		zap.Int("vertices", len(mesh.Positions)),
		zap.Int("ramp", len(ramp)),
		zap.Int("field_width", heights.Width),
		zap.Int("field_height", heights.Height),
		zap.Duration("elapsed", time.Since(start)))

	return &Planet{
		Recipe:  r,
		Heights: heights,
		Colors:  colors,
		Ramp:    ramp,
		Mesh:    mesh,
	}, nil
}
