package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"
)

// GEOM format errors.
var (
	ErrInvalidGEOMMagic       = errors.New("invalid GEOM magic: expected 'GEOM'")
	ErrUnsupportedGEOMVersion = errors.New("unsupported GEOM version")
	ErrTruncatedGEOMData      = errors.New("truncated GEOM data")
	ErrInvalidIndexWidth      = errors.New("invalid GEOM index width")
	ErrGEOMChecksum           = errors.New("GEOM checksum mismatch")
)

const (
	geomMagic      = "GEOM"
	geomHeaderSize = 16
	geomCRCSize    = 4
)

// GEOMVersion represents the GEOM file version.
type GEOMVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GEOMVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentGEOMVersion is written by EncodeGEOM.
var CurrentGEOMVersion = GEOMVersion{Major: 1, Minor: 0}

// GEOM is a cached geodesic mesh: unit-sphere vertex positions and triangle
// indices. Texture coordinates are not stored.
type GEOM struct {
	Version    GEOMVersion
	IndexWidth uint8 // 16 or 32
	Depth      uint8
	Vertices   [][3]float64
	Indices    []uint32
}

// IndexWidthFor returns the narrowest index width for vertexCount vertices.
func IndexWidthFor(vertexCount int) uint8 {
	if vertexCount >= 1<<16 {
		return 32
	}
	return 16
}

// EncodeGEOM writes g to w. A zero IndexWidth is chosen from the vertex
// count; a 16-bit width that cannot address every vertex is rejected.
func EncodeGEOM(w io.Writer, g *GEOM) error {
	width := g.IndexWidth
	if width == 0 {
		width = IndexWidthFor(len(g.Vertices))
	}
	if width != 16 && width != 32 {
		return fmt.Errorf("%w: %d", ErrInvalidIndexWidth, width)
	}
	if width == 16 && len(g.Vertices) >= 1<<16 {
		return fmt.Errorf("%w: 16 bits for %d vertices", ErrInvalidIndexWidth, len(g.Vertices))
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(g.Indices))
	}

	le := binary.LittleEndian
	size := geomHeaderSize + len(g.Vertices)*24 + len(g.Indices)*int(width/8) + geomCRCSize
	buf := make([]byte, 0, size)

	buf = append(buf, geomMagic...)
	buf = append(buf, CurrentGEOMVersion.Minor, CurrentGEOMVersion.Major, width, g.Depth)
	buf = le.AppendUint32(buf, uint32(len(g.Vertices)))
	buf = le.AppendUint32(buf, uint32(len(g.Indices)))

	for _, v := range g.Vertices {
		for _, c := range v {
			buf = le.AppendUint64(buf, math.Float64bits(c))
		}
	}
	for _, idx := range g.Indices {
		if width == 16 {
			buf = le.AppendUint16(buf, uint16(idx))
		} else {
			buf = le.AppendUint32(buf, idx)
		}
	}

	buf = le.AppendUint32(buf, crc32.ChecksumIEEE(buf))

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing GEOM: %w", err)
	}
	return nil
}

// ParseGEOM parses a GEOM file from raw bytes.
func ParseGEOM(data []byte) (*GEOM, error) {
	if len(data) < geomHeaderSize+geomCRCSize {
		return nil, ErrTruncatedGEOMData
	}

	if string(data[0:4]) != geomMagic {
		return nil, ErrInvalidGEOMMagic
	}

	// Version is stored as [minor, major]
	version := GEOMVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != CurrentGEOMVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGEOMVersion, version)
	}

	width := data[6]
	if width != 16 && width != 32 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndexWidth, width)
	}

	body := data[:len(data)-geomCRCSize]
	want := binary.LittleEndian.Uint32(data[len(data)-geomCRCSize:])
	if got := crc32.ChecksumIEEE(body); got != want {
		return nil, fmt.Errorf("%w: got %08x, want %08x", ErrGEOMChecksum, got, want)
	}

	g := &GEOM{
		Version:    version,
		IndexWidth: width,
		Depth:      data[7],
	}

	r := bytes.NewReader(body[8:])

	var vertexCount, indexCount uint32
	if err := binary.Read(r, binary.LittleEndian, &vertexCount); err != nil {
		return nil, fmt.Errorf("%w: reading vertex count", ErrTruncatedGEOMData)
	}
	if err := binary.Read(r, binary.LittleEndian, &indexCount); err != nil {
		return nil, fmt.Errorf("%w: reading index count", ErrTruncatedGEOMData)
	}
	if indexCount%3 != 0 {
		return nil, fmt.Errorf("invalid GEOM index count: %d", indexCount)
	}
	if width == 16 && vertexCount >= 1<<16 {
		return nil, fmt.Errorf("%w: 16 bits for %d vertices", ErrInvalidIndexWidth, vertexCount)
	}

	need := int64(vertexCount)*24 + int64(indexCount)*int64(width/8)
	if int64(r.Len()) != need {
		return nil, fmt.Errorf("%w: %d payload bytes, want %d", ErrTruncatedGEOMData, r.Len(), need)
	}

	g.Vertices = make([][3]float64, vertexCount)
	if err := binary.Read(r, binary.LittleEndian, g.Vertices); err != nil {
		return nil, fmt.Errorf("%w: reading vertices", ErrTruncatedGEOMData)
	}

	g.Indices = make([]uint32, indexCount)
	if width == 16 {
		idx := make([]uint16, indexCount)
		if err := binary.Read(r, binary.LittleEndian, idx); err != nil {
			return nil, fmt.Errorf("%w: reading indices", ErrTruncatedGEOMData)
		}
		for i, v := range idx {
			g.Indices[i] = uint32(v)
		}
	} else if err := binary.Read(r, binary.LittleEndian, g.Indices); err != nil {
		return nil, fmt.Errorf("%w: reading indices", ErrTruncatedGEOMData)
	}

	for i, v := range g.Indices {
		if v >= vertexCount {
			return nil, fmt.Errorf("GEOM index %d at %d out of range (%d vertices)", v, i, vertexCount)
		}
	}

	return g, nil
}

// ParseGEOMFile parses a GEOM file from disk.
func ParseGEOMFile(path string) (*GEOM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GEOM file: %w", err)
	}
	return ParseGEOM(data)
}
