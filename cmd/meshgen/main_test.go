package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/quadmesh/internal/config"
	"github.com/Faultbox/quadmesh/internal/logger"
	"github.com/Faultbox/quadmesh/pkg/meshfile"
)

const stripScene = `
grids:
  - origin: [0, 0, 0]
    u: [1, 0, 0]
    v: [0, 1, 0]
    columns: 4
    rows: 1
`

func TestOutputPath(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Directory = "out"

	if got, want := outputPath(cfg, "scenes/floor.yaml", ""), filepath.Join("out", "floor.qmsh"); got != want {
		t.Errorf("outputPath() = %q, want %q", got, want)
	}
	if got := outputPath(cfg, "scenes/floor.yaml", "x.qmsh"); got != "x.qmsh" {
		t.Errorf("outputPath() = %q, want %q", got, "x.qmsh")
	}
}

func TestCmdBuild(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "strip.yaml")
	if err := os.WriteFile(scenePath, []byte(stripScene), 0644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}

	cfg := config.Default()
	cfg.Output.Directory = filepath.Join(dir, "out")

	if err := cmdBuild(cfg, []string{scenePath}); err != nil {
		t.Fatalf("cmdBuild failed: %v", err)
	}

	d, err := meshfile.ReadFile(filepath.Join(dir, "out", "strip.qmsh"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	// Four unit quads in a row collapse into one.
	if d.Count != 6 {
		t.Errorf("Count = %d, want 6", d.Count)
	}

	cfg.Output.Overwrite = false
	if err := cmdBuild(cfg, []string{scenePath}); err == nil {
		t.Error("expected error when output exists and overwrite is disabled")
	}

	if err := cmdInfo([]string{filepath.Join(dir, "out", "strip.qmsh")}); err != nil {
		t.Errorf("cmdInfo failed: %v", err)
	}
}

func TestCmdConfigSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "meshgen.yaml")

	cfg := config.Default()
	cfg.Generator.OptimizeSteps = 2
	if err := cmdConfig(cfg, []string{"-save", "-o", path}); err != nil {
		t.Fatalf("cmdConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "optimize_steps: 2") {
		t.Errorf("saved config missing optimize_steps:\n%s", data)
	}

	if err := cmdConfig(cfg, nil); err != nil {
		t.Errorf("printing config failed: %v", err)
	}
}

func TestCmdBuildWarnsOnOverwrite(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "strip.yaml")
	if err := os.WriteFile(scenePath, []byte(stripScene), 0644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}

	core, logs := observer.New(zap.DebugLevel)
	orig := logger.Log
	logger.Log = zap.New(core)
	defer func() { logger.Log = orig }()

	cfg := config.Default()
	cfg.Output.Directory = dir
	for i := 0; i < 2; i++ {
		if err := cmdBuild(cfg, []string{scenePath}); err != nil {
			t.Fatalf("build %d failed: %v", i, err)
		}
	}

	if n := logs.FilterMessage("overwriting existing mesh").Len(); n != 1 {
		t.Errorf("overwrite warnings = %d, want 1", n)
	}
	if n := logs.FilterMessage("scene loaded").Len(); n != 2 {
		t.Errorf("scene loaded entries = %d, want 2", n)
	}
}
