// Package meshfile reads and writes packed mesh buffers as a little-endian
// binary file.
//
// Layout: magic "QMSH", version [minor, major], uint32 vertex count, then
// positions, normals, colors (3 float32 each), uvs (2 float32), indices and
// face indices (uint32), every attribute stored as one contiguous array.
package meshfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/quadmesh/pkg/meshgen"
)

// Mesh file errors.
var (
	ErrInvalidMagic       = errors.New("invalid mesh magic: expected 'QMSH'")
	ErrUnsupportedVersion = errors.New("unsupported mesh version")
	ErrTruncatedData      = errors.New("truncated mesh data")
	ErrBufferLength       = errors.New("buffer length does not match vertex count")
)

const (
	magic      = "QMSH"
	headerSize = 10

	// maxVertices bounds the count read from a header before allocating.
	maxVertices = 1 << 26
)

// Version is the file format version.
type Version struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentVersion is the version written by Write.
var CurrentVersion = Version{Major: 1, Minor: 0}

// Size returns the encoded size in bytes of a mesh with count vertices.
func Size(count int) int {
	// 3+3+3+2 floats and 2 uint32 per vertex
	return headerSize + count*(11*4+2*4)
}

// checkLengths verifies every buffer holds exactly d.Count entries.
func checkLengths(d *meshgen.Data) error {
	if d.Count < 0 || d.Count > maxVertices {
		return fmt.Errorf("%w: count %d", ErrBufferLength, d.Count)
	}
	lengths := []struct {
		name      string
		got, want int
	}{
		{"positions", len(d.Positions), d.Count * 3},
		{"normals", len(d.Normals), d.Count * 3},
		{"colors", len(d.Colors), d.Count * 3},
		{"uvs", len(d.UVs), d.Count * 2},
		{"indices", len(d.Indices), d.Count},
		{"face indices", len(d.FaceIndices), d.Count},
	}
	for _, l := range lengths {
		if l.got != l.want {
			return fmt.Errorf("%w: %s has %d values, want %d", ErrBufferLength, l.name, l.got, l.want)
		}
	}
	return nil
}

// Write encodes d to w. Nothing is written when the buffers disagree with
// d.Count.
func Write(w io.Writer, d *meshgen.Data) error {
	if err := checkLengths(d); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	bw.WriteString(magic)
	bw.WriteByte(CurrentVersion.Minor)
	bw.WriteByte(CurrentVersion.Major)

	if err := binary.Write(bw, binary.LittleEndian, uint32(d.Count)); err != nil {
		return fmt.Errorf("writing count: %w", err)
	}

	arrays := []struct {
		name string
		data any
	}{
		{"positions", d.Positions},
		{"normals", d.Normals},
		{"colors", d.Colors},
		{"uvs", d.UVs},
		{"indices", d.Indices},
		{"face indices", d.FaceIndices},
	}
	for _, a := range arrays {
		if err := binary.Write(bw, binary.LittleEndian, a.data); err != nil {
			return fmt.Errorf("writing %s: %w", a.name, err)
		}
	}

	return bw.Flush()
}

// Encode returns d as bytes.
func Encode(d *meshgen.Data) ([]byte, error) {
	if err := checkLengths(d); err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, Size(d.Count)))
	if err := Write(buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse decodes a mesh file from raw bytes.
func Parse(data []byte) (*meshgen.Data, error) {
	if len(data) < headerSize {
		return nil, ErrTruncatedData
	}

	if string(data[0:4]) != magic {
		return nil, ErrInvalidMagic
	}

	version := Version{Major: data[5], Minor: data[4]}
	if version.Major != CurrentVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}

	count := binary.LittleEndian.Uint32(data[6:10])
	if count > maxVertices {
		return nil, fmt.Errorf("invalid vertex count: %d", count)
	}
	if len(data) < Size(int(count)) {
		return nil, fmt.Errorf("%w: %d vertices need %d bytes, have %d",
			ErrTruncatedData, count, Size(int(count)), len(data))
	}

	n := int(count)
	d := &meshgen.Data{
		Count:       n,
		Positions:   make([]float32, n*3),
		Normals:     make([]float32, n*3),
		Colors:      make([]float32, n*3),
		UVs:         make([]float32, n*2),
		Indices:     make([]uint32, n),
		FaceIndices: make([]uint32, n),
	}

	r := bytes.NewReader(data[headerSize:])
	arrays := []struct {
		name string
		data any
	}{
		{"positions", d.Positions},
		{"normals", d.Normals},
		{"colors", d.Colors},
		{"uvs", d.UVs},
		{"indices", d.Indices},
		{"face indices", d.FaceIndices},
	}
	for _, a := range arrays {
		if err := binary.Read(r, binary.LittleEndian, a.data); err != nil {
			return nil, fmt.Errorf("%w: reading %s", ErrTruncatedData, a.name)
		}
	}

	return d, nil
}

// WriteFile writes d to path.
func WriteFile(path string, d *meshgen.Data) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile parses a mesh file from disk.
func ReadFile(path string) (*meshgen.Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh file: %w", err)
	}
	return Parse(data)
}
