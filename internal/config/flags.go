package config

import "flag"

// Flag values. Negative numbers and empty strings mean "not set".
var (
	flagConfig   string
	flagDebug    bool
	flagDepth    = -1
	flagMaxDepth = -1
	flagCacheDir string
	flagSeed     int64 = -1
	flagWorkers  = -1
	flagPresets  string
	flagLogFile  string
)

// RegisterFlags binds the shared flags to fs. Call it once per subcommand
// flag set, before fs.Parse.
func RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.IntVar(&flagDepth, "depth", -1, "Planet subdivision depth")
	fs.IntVar(&flagMaxDepth, "max-depth", -1, "Deepest cached subdivision")
	fs.StringVar(&flagCacheDir, "cache-dir", "", "Mesh cache directory")
	fs.Int64Var(&flagSeed, "seed", -1, "Noise seed (batch: recipe seed)")
	fs.IntVar(&flagWorkers, "workers", -1, "Batch worker count (0 = one per CPU)")
	fs.StringVar(&flagPresets, "presets", "", "Path to preset library")
	fs.StringVar(&flagLogFile, "log-file", "", "Write logs to this file as well")
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagDepth >= 0 {
		cfg.Planet.Depth = flagDepth
	}
	if flagMaxDepth >= 0 {
		cfg.Geometry.MaxDepth = flagMaxDepth
	}
	if flagCacheDir != "" {
		cfg.Geometry.CacheDir = flagCacheDir
	}
	if flagSeed >= 0 {
		cfg.Planet.Noise.Seed = flagSeed
		cfg.Batch.Seed = uint64(flagSeed)
	}
	if flagWorkers >= 0 {
		cfg.Batch.Workers = flagWorkers
	}
	if flagPresets != "" {
		cfg.Presets.Path = flagPresets
	}
	if flagLogFile != "" {
		cfg.Logging.LogFile = flagLogFile
	}
}
