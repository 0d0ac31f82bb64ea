package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log-file", "", "Write logs to this file as well")
	flagSteps     = flag.Int("steps", -1, "Merge passes run before export")
	flagAutoSteps = flag.Int("auto-steps", -1, "Merge passes run when buffers are read")
	flagOutDir    = flag.String("out-dir", "", "Directory for built meshes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagSteps >= 0 {
		cfg.Generator.OptimizeSteps = *flagSteps
	}
	if *flagAutoSteps >= 0 {
		cfg.Generator.AutoOptimizeSteps = *flagAutoSteps
	}
	if *flagOutDir != "" {
		cfg.Output.Directory = *flagOutDir
	}
}
