// Package scene loads YAML scene descriptions into a mesh generator.
package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/quadmesh/pkg/math"
	"github.com/Faultbox/quadmesh/pkg/meshgen"
)

// Scene errors.
var (
	ErrInvalidVector = errors.New("invalid vector")
	ErrInvalidGrid   = errors.New("invalid grid")
)

// Scene is a list of primitives to feed a generator.
type Scene struct {
	Quads     []Quad     `yaml:"quads"`
	Triangles []Triangle `yaml:"triangles"`
	Grids     []Grid     `yaml:"grids"`
}

// Quad is one quad, corners in winding order.
type Quad struct {
	Corners [][]float32 `yaml:"corners"`         // 4 points
	UVs     [][]float32 `yaml:"uvs,omitempty"`   // optional, 4 UVs
	Color   []float32   `yaml:"color,omitempty"` // optional RGB
}

// Triangle is one standalone triangle.
type Triangle struct {
	Corners [][]float32 `yaml:"corners"` // 3 points
	Color   []float32   `yaml:"color,omitempty"`
}

// Grid is a plane of Columns x Rows quads spanned by the U and V steps.
type Grid struct {
	Origin  []float32 `yaml:"origin"`
	U       []float32 `yaml:"u"`
	V       []float32 `yaml:"v"`
	Columns int       `yaml:"columns"`
	Rows    int       `yaml:"rows"`
	Color   []float32 `yaml:"color,omitempty"`
}

// Parse decodes a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return &s, nil
}

// LoadFile reads and decodes a scene file.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data)
}

// Build adds every primitive of the scene to g. Nothing is added if any
// primitive is invalid.
func (s *Scene) Build(g *meshgen.Generator) error {
	if err := s.Validate(); err != nil {
		return err
	}

	for _, q := range s.Quads {
		c := points(q.Corners)
		var quad *meshgen.Quad
		if len(q.UVs) > 0 {
			var uvs [4]math.Vec2
			for i, uv := range q.UVs {
				uvs[i] = math.Vec2{X: uv[0], Y: uv[1]}
			}
			quad = g.AddQuadUV(c[0], c[1], c[2], c[3], uvs)
		} else {
			quad = g.AddQuad(c[0], c[1], c[2], c[3])
		}
		if q.Color != nil {
			quad.SetColor(color(q.Color))
		}
	}

	for _, t := range s.Triangles {
		c := points(t.Corners)
		tri := g.AddTriangle(c[0], c[1], c[2])
		if t.Color != nil {
			tri.SetColor(color(t.Color))
		}
	}

	for _, gr := range s.Grids {
		origin, u, v := vec3(gr.Origin), vec3(gr.U), vec3(gr.V)
		// Corners are computed from lattice indices so neighbouring cells
		// agree on shared positions exactly.
		corner := func(i, j int) math.Vec3 {
			return origin.Add(u.Scale(float32(i))).Add(v.Scale(float32(j)))
		}
		for row := 0; row < gr.Rows; row++ {
			for col := 0; col < gr.Columns; col++ {
				quad := g.AddQuad(corner(col, row), corner(col+1, row), corner(col+1, row+1), corner(col, row+1))
				if gr.Color != nil {
					quad.SetColor(color(gr.Color))
				}
			}
		}
	}

	return nil
}

// Validate checks component counts and grid sizes.
func (s *Scene) Validate() error {
	for i, q := range s.Quads {
		if err := checkVectors(q.Corners, 4, 3); err != nil {
			return fmt.Errorf("quad %d corners: %w", i, err)
		}
		if len(q.UVs) > 0 {
			if err := checkVectors(q.UVs, 4, 2); err != nil {
				return fmt.Errorf("quad %d uvs: %w", i, err)
			}
		}
		if err := checkColor(q.Color); err != nil {
			return fmt.Errorf("quad %d: %w", i, err)
		}
	}

	for i, t := range s.Triangles {
		if err := checkVectors(t.Corners, 3, 3); err != nil {
			return fmt.Errorf("triangle %d corners: %w", i, err)
		}
		if err := checkColor(t.Color); err != nil {
			return fmt.Errorf("triangle %d: %w", i, err)
		}
	}

	for i, gr := range s.Grids {
		if err := checkVectors([][]float32{gr.Origin, gr.U, gr.V}, 3, 3); err != nil {
			return fmt.Errorf("grid %d: %w", i, err)
		}
		if gr.Columns <= 0 || gr.Rows <= 0 {
			return fmt.Errorf("%w: grid %d is %dx%d", ErrInvalidGrid, i, gr.Columns, gr.Rows)
		}
		if err := checkColor(gr.Color); err != nil {
			return fmt.Errorf("grid %d: %w", i, err)
		}
	}

	return nil
}

func checkVectors(vs [][]float32, count, dims int) error {
	if len(vs) != count {
		return fmt.Errorf("%w: expected %d entries, got %d", ErrInvalidVector, count, len(vs))
	}
	for i, v := range vs {
		if len(v) != dims {
			return fmt.Errorf("%w: entry %d has %d components, want %d", ErrInvalidVector, i, len(v), dims)
		}
	}
	return nil
}

func checkColor(c []float32) error {
	if c != nil && len(c) != 3 {
		return fmt.Errorf("%w: color has %d components, want 3", ErrInvalidVector, len(c))
	}
	return nil
}

func vec3(v []float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func points(vs [][]float32) []math.Vec3 {
	out := make([]math.Vec3, len(vs))
	for i, v := range vs {
		out[i] = vec3(v)
	}
	return out
}

func color(c []float32) math.Color {
	return math.Color{R: c[0], G: c[1], B: c[2]}
}
