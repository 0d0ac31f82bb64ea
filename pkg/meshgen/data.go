package meshgen

import (
	"fmt"
)

// Data holds the packed vertex buffers of a generator, one entry per
// vertex. Indices is always 0..Count-1: vertices are never shared.
type Data struct {
	Count       int
	Positions   []float32 // xyz
	Normals     []float32 // xyz
	Colors      []float32 // rgb
	UVs         []float32 // uv
	Indices     []uint32
	FaceIndices []uint32
}

func newData(count int) *Data {
	return &Data{
		Count:       count,
		Positions:   make([]float32, count*3),
		Normals:     make([]float32, count*3),
		Colors:      make([]float32, count*3),
		UVs:         make([]float32, count*2),
		Indices:     make([]uint32, count),
		FaceIndices: make([]uint32, count),
	}
}

// CalculateData returns the packed buffers. They are cached until the next
// pool mutation; a recompute first runs the configured merge passes.
func (g *Generator) CalculateData() (*Data, error) {
	if !g.dirty && g.data != nil {
		return g.data, nil
	}

	if g.autoSteps > 0 {
		if err := g.Optimize(g.autoSteps); err != nil {
			return nil, fmt.Errorf("calculating data: %w", err)
		}
	}

	vertices := g.vertices.values()
	d := newData(len(vertices))
	for i, v := range vertices {
		p, n := v.position.Array(), v.Normal.Array()
		copy(d.Positions[i*3:], p[:])
		copy(d.Normals[i*3:], n[:])
		d.Colors[i*3], d.Colors[i*3+1], d.Colors[i*3+2] = v.Color.R, v.Color.G, v.Color.B
		d.UVs[i*2], d.UVs[i*2+1] = v.UV.X, v.UV.Y
		d.Indices[i] = uint32(i)
		d.FaceIndices[i] = uint32(v.FaceIndex)
	}

	g.data = d
	g.dirty = false

	return d, nil
}

// mustData is CalculateData for the buffer accessors. A failure here means
// the pools are inconsistent, so it panics.
func (g *Generator) mustData() *Data {
	d, err := g.CalculateData()
	if err != nil {
		panic(err)
	}
	return d
}

// Count returns the number of packed vertices.
func (g *Generator) Count() int { return g.mustData().Count }

// Positions returns the packed positions.
func (g *Generator) Positions() []float32 { return g.mustData().Positions }

// Normals returns the packed normals.
func (g *Generator) Normals() []float32 { return g.mustData().Normals }

// Indices returns the packed index buffer.
func (g *Generator) Indices() []uint32 { return g.mustData().Indices }

// FaceIndices returns the per-vertex face tags.
func (g *Generator) FaceIndices() []uint32 { return g.mustData().FaceIndices }

// UVs returns the packed texture coordinates.
func (g *Generator) UVs() []float32 { return g.mustData().UVs }

// Colors returns the packed vertex colors.
func (g *Generator) Colors() []float32 { return g.mustData().Colors }
