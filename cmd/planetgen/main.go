// planetgen builds the geodesic mesh cache and bakes procedural planets.
package main

import (
	"flag"
	"fmt"
	gomath "math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/geoplanet/internal/config"
	"github.com/Faultbox/geoplanet/internal/logger"
	"github.com/Faultbox/geoplanet/internal/meshcache"
	"github.com/Faultbox/geoplanet/internal/planet"
	"github.com/Faultbox/geoplanet/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "cache":
		cmdCache(args)
	case "info":
		cmdInfo(args)
	case "bake":
		cmdBake(args)
	case "batch":
		cmdBatch(args)
	case "presets":
		cmdPresets(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`planetgen - geodesic planet generator

Usage:
  planetgen <command> [options]

Commands:
  cache [--rebuild]                 Build missing mesh depths up to max_depth
  info                              Show the mesh cache inventory
  bake [--out file.obj] [--random]  Bake one planet and export it as OBJ
  batch [--count N] [--out-dir D]   Bake random planets from the preset library
  presets                           List the preset library
  init [path]                       Write the default config

Shared options:
  --config, --debug, --depth, --max-depth, --cache-dir, --seed,
  --workers, --presets, --log-file

Examples:
  planetgen cache --max-depth 7
  planetgen bake --depth 5 --seed 4242 --out earth.obj
  planetgen batch --count 16 --workers 4 --out-dir planets`)
}

// setup parses args into fs, loads the config and starts logging.
func setup(fs *flag.FlagSet, args []string) *config.Config {
	config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.LogFileConfig(), true); err != nil {
		fail(err)
	}
	return cfg
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	logger.Sync()
	os.Exit(1)
}

// openCache builds any missing depth and returns the manager.
func openCache(cfg *config.Config) *meshcache.Manager {
	m := meshcache.NewManager(meshcache.NewStore(cfg.Geometry.CacheDir, cfg.Geometry.BaseName))
	if err := m.Ensure(cfg.Geometry.MaxDepth); err != nil {
		fail(err)
	}
	return m
}

func loadLibrary(cfg *config.Config) *planet.Library {
	var (
		lib *planet.Library
		err error
	)
	if cfg.Presets.Path != "" {
		lib, err = planet.LoadLibrary(cfg.Presets.Path)
	} else {
		lib, err = planet.DefaultLibrary()
	}
	if err != nil {
		fail(err)
	}
	return lib
}

func cmdCache(args []string) {
	fs := flag.NewFlagSet("cache", flag.ExitOnError)
	rebuild := fs.Bool("rebuild", false, "Rebuild every depth, even if cached")
	cfg := setup(fs, args)
	defer logger.Sync()

	m := meshcache.NewManager(meshcache.NewStore(cfg.Geometry.CacheDir, cfg.Geometry.BaseName))
	defer m.Close()

	if *rebuild {
		for depth := 0; depth <= cfg.Geometry.MaxDepth; depth++ {
			if err := m.Rebuild(depth); err != nil {
				fail(err)
			}
		}
	} else if err := m.Ensure(cfg.Geometry.MaxDepth); err != nil {
		fail(err)
	}
	fmt.Printf("Cache ready: depths 0-%d in %s\n", cfg.Geometry.MaxDepth, cfg.Geometry.CacheDir)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cfg := setup(fs, args)
	defer logger.Sync()

	m := meshcache.NewManager(meshcache.NewStore(cfg.Geometry.CacheDir, cfg.Geometry.BaseName))
	defer m.Close()

	entries := m.Inventory(cfg.Geometry.MaxDepth)
	fmt.Printf("Cache:   %s\n", cfg.Geometry.CacheDir)
	fmt.Printf("Depths:  %d of %d\n", len(entries), cfg.Geometry.MaxDepth+1)
	fmt.Println()
	fmt.Printf("  %-5s %10s %10s %5s %10s %12s\n", "depth", "vertices", "triangles", "index", "size", "area/4π")

	for _, e := range entries {
		if e.Err != nil {
			fmt.Printf("  %-5d error: %v\n", e.Depth, e.Err)
			continue
		}
		fmt.Printf("  %-5d %10d %10d %5d %9.2fK %12.9f\n",
			e.Depth, e.Vertices, e.Triangles, e.IndexWidth,
			float64(e.Size)/1024, e.Area/(4*gomath.Pi))
	}
}

func cmdBake(args []string) {
	fs := flag.NewFlagSet("bake", flag.ExitOnError)
	out := fs.String("out", "planet.obj", "Output OBJ file")
	random := fs.Bool("random", false, "Pick the recipe from the preset library")
	cfg := setup(fs, args)
	defer logger.Sync()

	recipe := cfg.Planet
	if *random {
		seed := uint64(recipe.Noise.Seed)
		rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
		recipe = loadLibrary(cfg).Pick(rng, cfg.Planet)
	}

	m := openCache(cfg)
	defer m.Close()

	p, err := planet.NewGenerator(m).Generate(recipe)
	if err != nil {
		fail(err)
	}
	if err := writeOBJ(*out, p); err != nil {
		fail(err)
	}

	fmt.Printf("Planet:   %s\n", recipe.Name)
	fmt.Printf("Depth:    %d\n", recipe.Depth)
	fmt.Printf("Seed:     %d\n", recipe.Noise.Seed)
	fmt.Printf("Vertices: %d\n", len(p.Mesh.Positions))
	fmt.Printf("Ramp:     %d colors\n", len(p.Ramp))
	fmt.Printf("Radius:   %.5f - %.5f\n", p.Mesh.Bounds.MinRadius, p.Mesh.Bounds.MaxRadius)
	fmt.Printf("Wrote:    %s\n", *out)
}

func cmdBatch(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	count := fs.Int("count", 0, "Number of planets (0 = config batch.count)")
	outDir := fs.String("out-dir", "", "Output directory (default config batch.output_dir)")
	cfg := setup(fs, args)
	defer logger.Sync()

	if *count > 0 {
		cfg.Batch.Count = *count
	}
	if *outDir != "" {
		cfg.Batch.OutputDir = *outDir
	}
	if err := os.MkdirAll(cfg.Batch.OutputDir, 0755); err != nil {
		fail(err)
	}

	recipes := loadLibrary(cfg).Recipes(cfg.Batch.Count, cfg.Batch.Seed, cfg.Planet)

	m := openCache(cfg)
	defer m.Close()

	var written atomic.Int64
	err := planet.NewGenerator(m).BakeAll(recipes, cfg.Batch.Workers, func(res planet.Result) {
		if res.Err != nil {
			return
		}
		path := filepath.Join(cfg.Batch.OutputDir, res.Planet.Recipe.Name+".obj")
		if err := writeOBJ(path, res.Planet); err != nil {
			logger.Error("write failed", zap.String("path", path), zap.Error(err))
			return
		}
		written.Add(1)
		logger.Debug("planet written", zap.String("path", path))
	})

	fmt.Printf("Baked %d/%d planets into %s\n", written.Load(), len(recipes), cfg.Batch.OutputDir)
	if err != nil {
		fail(err)
	}
}

func cmdPresets(args []string) {
	fs := flag.NewFlagSet("presets", flag.ExitOnError)
	cfg := setup(fs, args)
	defer logger.Sync()

	lib := loadLibrary(cfg)

	fmt.Println("Noise sets:")
	for _, set := range lib.NoiseSets {
		fmt.Printf("  %s\n", set.Name)
		for _, n := range set.Noises {
			fmt.Printf("    %-14s %s/%s, %d octaves\n", n.Name, n.Noise.Fractal, n.Noise.Basis, n.Noise.Octaves)
		}
	}
	fmt.Println()
	fmt.Println("Palette lists:")
	for _, list := range lib.PaletteLists {
		fmt.Printf("  %s\n", list.Name)
		for _, p := range list.Palettes {
			fmt.Printf("    %-14s %d base colors\n", p.Name, len(p.Colors))
		}
	}
	fmt.Println()
	fmt.Println("Groups:")
	for _, g := range lib.Groups {
		fmt.Printf("  %s -> %s\n", g.NoiseSet, g.PaletteList)
	}
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	cfg := setup(fs, args)
	defer logger.Sync()

	var err error
	path := filepath.Join(config.ConfigDir(), "planetgen.yaml")
	if fs.NArg() > 0 {
		path = fs.Arg(0)
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fail(err)
	}
	fmt.Printf("Wrote config to %s\n", path)
}

func writeOBJ(path string, p *planet.Planet) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := formats.WriteOBJ(f, p.Mesh.OBJ(p.Recipe.Name)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
