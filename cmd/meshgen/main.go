// meshgen builds scene descriptions into packed, simplified mesh files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/quadmesh/internal/config"
	"github.com/Faultbox/quadmesh/internal/logger"
	"github.com/Faultbox/quadmesh/internal/scene"
	"github.com/Faultbox/quadmesh/pkg/meshfile"
	"github.com/Faultbox/quadmesh/pkg/meshgen"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Source != "" {
		logger.Debug("config loaded", zap.String("source", cfg.Source))
	}

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "build", "b":
		err = cmdBuild(cfg, args)
	case "info":
		err = cmdInfo(args)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshgen - procedural quad mesh builder

Usage:
  meshgen [global flags] <command> [options]

Commands:
  build <scene.yaml> [-o file.qmsh]  Build, simplify and write a mesh
  info <file.qmsh>                   Show mesh file information
  config [-save] [-o file.yaml]      Print or save the effective config

Global flags:
  -config <path>     Config file (default ./meshgen.yaml)
  -debug             Enable debug logging
  -steps <n>         Merge passes before export
  -auto-steps <n>    Merge passes run when buffers are read
  -out-dir <dir>     Output directory
  -log-file <path>   Also log to a rotating file

Examples:
  meshgen build floor.yaml
  meshgen -steps 4 build floor.yaml -o floor.qmsh
  meshgen info floor.qmsh
  meshgen -steps 4 config -save`)
}

func cmdBuild(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default <scene>.qmsh in the output directory)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: meshgen build <scene.yaml> [-o file.qmsh]")
	}
	scenePath := fs.Arg(0)

	s, err := scene.LoadFile(scenePath)
	if err != nil {
		return err
	}

	g := meshgen.New(
		meshgen.WithLogger(logger.Named("meshgen")),
		meshgen.WithAutoOptimizeSteps(cfg.Generator.AutoOptimizeSteps),
	)
	defer g.Destroy()

	if err := s.Build(g); err != nil {
		return fmt.Errorf("building scene %s: %w", scenePath, err)
	}
	before := len(g.Quads())
	logger.Debug("scene loaded",
		zap.String("scene", scenePath),
		zap.Int("quads", len(s.Quads)),
		zap.Int("triangles", len(s.Triangles)),
		zap.Int("grids", len(s.Grids)))

	if err := g.Optimize(cfg.Generator.OptimizeSteps); err != nil {
		return err
	}
	data, err := g.CalculateData()
	if err != nil {
		return err
	}

	path := outputPath(cfg, scenePath, *out)
	if _, err := os.Stat(path); err == nil {
		if !cfg.Output.Overwrite {
			return fmt.Errorf("output %s exists and overwrite is disabled", path)
		}
		logger.Warn("overwriting existing mesh", zap.String("output", path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := meshfile.WriteFile(path, data); err != nil {
		return fmt.Errorf("writing mesh: %w", err)
	}

	logger.Info("mesh built",
		zap.String("scene", scenePath),
		zap.String("output", path),
		zap.Int("quads_in", before),
		zap.Int("quads_out", len(g.Quads())),
		zap.Int("vertices", data.Count))

	fmt.Printf("Scene:    %s\n", scenePath)
	fmt.Printf("Output:   %s\n", path)
	fmt.Printf("Quads:    %d -> %d\n", before, len(g.Quads()))
	fmt.Printf("Vertices: %d\n", data.Count)
	return nil
}

// outputPath resolves -o, falling back to <scene name>.qmsh in the output
// directory.
func outputPath(cfg *config.Config, scenePath, out string) string {
	if out != "" {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
	return filepath.Join(cfg.Output.Directory, base+".qmsh")
}

// cmdConfig prints the effective config as YAML, or writes it with -save
// (to -o, or the user config directory).
func cmdConfig(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Write the config instead of printing it")
	out := fs.String("o", "", "Destination for -save (default user config directory)")
	fs.Parse(args)

	if !*save {
		data, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	path := *out
	var err error
	if path == "" {
		path, err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	logger.Info("config saved", zap.String("path", path))
	fmt.Printf("Saved config to %s\n", path)
	return nil
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshgen info <file.qmsh>")
	}

	d, err := meshfile.ReadFile(args[0])
	if err != nil {
		return err
	}

	faces := make(map[uint32]bool)
	for _, f := range d.FaceIndices {
		faces[f] = true
	}

	fmt.Printf("Mesh:      %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", d.Count)
	fmt.Printf("Triangles: %d\n", d.Count/3)
	fmt.Printf("Faces:     %d\n", len(faces))
	fmt.Printf("Size:      %.2f KB\n", float64(meshfile.Size(d.Count))/1024)

	if d.Count > 0 {
		lo := [3]float32{d.Positions[0], d.Positions[1], d.Positions[2]}
		hi := lo
		for i := 0; i < d.Count; i++ {
			for k := 0; k < 3; k++ {
				p := d.Positions[i*3+k]
				lo[k] = min(lo[k], p)
				hi[k] = max(hi[k], p)
			}
		}
		fmt.Printf("Bounds:    %v - %v\n", lo, hi)
	}
	return nil
}
