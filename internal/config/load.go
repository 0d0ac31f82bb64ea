package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load builds the effective configuration: defaults, then the first config
// file found, then command-line flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := decodeFile(cfg, path); err != nil {
			return nil, err
		}
		cfg.Source = path
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.sourceName(), err)
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations, most specific first.
func searchPaths() []string {
	return []string{
		"meshgen.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
}

func findConfigFile() string {
	for _, path := range searchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "QuadMesh")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "QuadMesh")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "quadmesh")
	}
	return filepath.Join(home, ".config", "quadmesh")
}

// decodeFile overlays the YAML document at path onto cfg. Keys that do not
// map to a Config field are rejected; an empty file leaves cfg untouched.
func decodeFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
