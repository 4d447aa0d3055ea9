package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Faultbox/geoplanet/pkg/noise"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test geometry defaults
	if cfg.Geometry.MaxDepth != 7 {
		t.Errorf("expected max depth 7, got %d", cfg.Geometry.MaxDepth)
	}
	if cfg.Geometry.BaseName != "sphere" {
		t.Errorf("expected base name 'sphere', got %s", cfg.Geometry.BaseName)
	}
	if !filepath.IsAbs(cfg.Geometry.CacheDir) {
		t.Errorf("expected absolute cache dir, got %s", cfg.Geometry.CacheDir)
	}

	// Test planet defaults
	if cfg.Planet.Depth != 6 {
		t.Errorf("expected depth 6, got %d", cfg.Planet.Depth)
	}
	if cfg.Planet.Bake.BaseScale != 0.025 {
		t.Errorf("expected base scale 0.025, got %f", cfg.Planet.Bake.BaseScale)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "planetgen.yaml")

	yamlContent := `
geometry:
  max_depth: 5
  cache_dir: /var/cache/planets
  base_name: ico

planet:
  name: mars
  depth: 4
  noise:
    fractal: ridged_multi
    basis: simplex
    octaves: 8
  field:
    width: 256
    height: 128
    perlin_scale: 20
    upscale: true
  bake:
    height_scale: 2

batch:
  workers: 4
  count: 20
  seed: 77

logging:
  level: "debug"
  log_file: "planetgen.log"
  format: json
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Geometry.MaxDepth != 5 {
		t.Errorf("expected max depth 5, got %d", cfg.Geometry.MaxDepth)
	}
	if cfg.Geometry.BaseName != "ico" {
		t.Errorf("expected base name 'ico', got %s", cfg.Geometry.BaseName)
	}

	if cfg.Planet.Name != "mars" || cfg.Planet.Depth != 4 {
		t.Errorf("expected planet mars at depth 4, got %s at %d", cfg.Planet.Name, cfg.Planet.Depth)
	}
	if cfg.Planet.Noise.Fractal != noise.RidgedMulti || cfg.Planet.Noise.Basis != noise.Simplex {
		t.Errorf("noise kinds not loaded: %v %v", cfg.Planet.Noise.Fractal, cfg.Planet.Noise.Basis)
	}
	if cfg.Planet.Noise.Octaves != 8 {
		t.Errorf("expected 8 octaves, got %d", cfg.Planet.Noise.Octaves)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Planet.Noise.Lacunarity != 2 {
		t.Errorf("expected default lacunarity 2, got %f", cfg.Planet.Noise.Lacunarity)
	}
	if !cfg.Planet.Field.Upscale || cfg.Planet.Field.UpscaleWidth != 1024 {
		t.Errorf("expected upscale to default 1024 wide, got %v %d", cfg.Planet.Field.Upscale, cfg.Planet.Field.UpscaleWidth)
	}
	if cfg.Planet.Bake.HeightScale != 2 || cfg.Planet.Bake.BaseScale != 0.025 {
		t.Errorf("unexpected bake options %+v", cfg.Planet.Bake)
	}

	if cfg.Batch.Workers != 4 || cfg.Batch.Count != 20 || cfg.Batch.Seed != 77 {
		t.Errorf("unexpected batch config %+v", cfg.Batch)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if fc := cfg.LogFileConfig(); fc.Path != "planetgen.log" || fc.Format != "json" || fc.MaxSizeMB != 50 {
		t.Errorf("unexpected log file config %+v", fc)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "geometry:\n  max_depth: not a number\n  invalid syntax here\n"},
		{"unknown fractal", "planet:\n  noise:\n    fractal: sawtooth\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/planetgen.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"max depth too large", func(c *Config) { c.Geometry.MaxDepth = 11 }},
		{"no base name", func(c *Config) { c.Geometry.BaseName = "" }},
		{"negative workers", func(c *Config) { c.Batch.Workers = -2 }},
		{"depth beyond cache", func(c *Config) { c.Geometry.MaxDepth = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" && filepath.Dir(path) != ConfigDir() {
		t.Errorf("expected no config in working directory, got %s", path)
	}

	if err := os.WriteFile(fileName, []byte("geometry:\n  max_depth: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != "./"+fileName {
		t.Errorf("expected ./%s, got %q", fileName, path)
	}
}

func TestFindConfigFileInConfigDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())

	// Only planetgen.yaml counts; other names in the same places are ignored.
	if err := os.WriteFile("config.yaml", []byte("geometry:\n  max_depth: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write stray config: %v", err)
	}
	if err := os.Mkdir(fileName, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if path := findConfigFile(); path != "" {
		t.Errorf("expected no config, got %s", path)
	}

	want := filepath.Join(xdg, "geoplanet", "planetgen.yaml")
	if want != searchPaths()[1] {
		t.Fatalf("config dir candidate = %s, want %s", searchPaths()[1], want)
	}
	if err := os.MkdirAll(filepath.Dir(want), 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(want, []byte("geometry:\n  max_depth: 8\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if path := findConfigFile(); path != want {
		t.Errorf("expected %s, got %q", want, path)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Geometry.MaxDepth != 8 {
		t.Errorf("expected max depth 8 from config dir, got %d", cfg.Geometry.MaxDepth)
	}
}

func TestRegisterFlags(t *testing.T) {
	t.Cleanup(resetFlags)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)
	args := []string{"--depth", "3", "--max-depth", "4", "--seed", "1234", "--workers", "2", "--cache-dir", "/tmp/meshes"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg := Default()
	applyFlags(cfg)

	if cfg.Planet.Depth != 3 || cfg.Geometry.MaxDepth != 4 {
		t.Errorf("depth %d / max depth %d, want 3 / 4", cfg.Planet.Depth, cfg.Geometry.MaxDepth)
	}
	if cfg.Planet.Noise.Seed != 1234 || cfg.Batch.Seed != 1234 {
		t.Errorf("seed not applied: noise %d batch %d", cfg.Planet.Noise.Seed, cfg.Batch.Seed)
	}
	if cfg.Batch.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Batch.Workers)
	}
	if cfg.Geometry.CacheDir != "/tmp/meshes" {
		t.Errorf("expected cache dir /tmp/meshes, got %s", cfg.Geometry.CacheDir)
	}
}

func resetFlags() {
	flagConfig = ""
	flagDebug = false
	flagDepth = -1
	flagMaxDepth = -1
	flagCacheDir = ""
	flagSeed = -1
	flagWorkers = -1
	flagPresets = ""
	flagLogFile = ""
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		setup  func()
		verify func(*testing.T, *Config)
	}{
		{
			name:  "no flags",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				def := Default()
				if cfg.Planet.Depth != def.Planet.Depth || cfg.Planet.Noise.Seed != def.Planet.Noise.Seed {
					t.Error("unset flags should leave defaults alone")
				}
			},
		},
		{
			name: "debug flag",
			setup: func() {
				flagDebug = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "depth zero",
			setup: func() {
				flagDepth = 0
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Planet.Depth != 0 {
					t.Errorf("expected depth 0, got %d", cfg.Planet.Depth)
				}
			},
		},
		{
			name: "presets and log file",
			setup: func() {
				flagPresets = "mine.yaml"
				flagLogFile = "out.log"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Presets.Path != "mine.yaml" {
					t.Errorf("expected presets mine.yaml, got %s", cfg.Presets.Path)
				}
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer resetFlags()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "planetgen.yaml")

	yamlContent := `
geometry:
  max_depth: 6
planet:
  depth: 5
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	flagConfig = configPath
	flagDepth = 2
	defer resetFlags()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Depth should be from flag (2), not file (5)
	if cfg.Planet.Depth != 2 {
		t.Errorf("expected depth 2 from flag, got %d", cfg.Planet.Depth)
	}

	// Max depth should be from file (6) since no flag override
	if cfg.Geometry.MaxDepth != 6 {
		t.Errorf("expected max depth 6 from file, got %d", cfg.Geometry.MaxDepth)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	flagMaxDepth = 2
	defer resetFlags()
	t.Chdir(t.TempDir())

	// Default planet depth 6 does not fit a cache of depth 2.
	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "planetgen.yaml")

	cfg := Default()
	cfg.Planet.Name = "saved"
	cfg.Planet.Noise.Basis = noise.Value
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Planet.Name != "saved" || loaded.Planet.Noise.Basis != noise.Value {
		t.Errorf("saved values not reloaded: %s %v", loaded.Planet.Name, loaded.Planet.Noise.Basis)
	}
}
