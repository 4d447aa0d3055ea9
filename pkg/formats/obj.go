package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

var ErrOBJAttributeMismatch = errors.New("OBJ attribute count does not match positions")

// OBJMesh is a triangle mesh for Wavefront OBJ export. Normals, Colors and
// UV are optional; when present they are indexed like Positions.
type OBJMesh struct {
	Name      string
	Positions [][3]float64
	Normals   [][3]float64
	Colors    [][3]float32 // written as the common "v x y z r g b" extension
	UV        [][2]float64
	Indices   []uint32
}

// WriteOBJ writes m as Wavefront OBJ text.
func WriteOBJ(w io.Writer, m *OBJMesh) error {
	n := len(m.Positions)
	for name, count := range map[string]int{"normals": len(m.Normals), "colors": len(m.Colors), "uv": len(m.UV)} {
		if count != 0 && count != n {
			return fmt.Errorf("%w: %d %s for %d positions", ErrOBJAttributeMismatch, count, name, n)
		}
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}

	bw := bufio.NewWriter(w)
	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for i, p := range m.Positions {
		if len(m.Colors) > 0 {
			c := m.Colors[i]
			fmt.Fprintf(bw, "v %g %g %g %g %g %g\n", p[0], p[1], p[2], c[0], c[1], c[2])
		} else {
			fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
		}
	}
	for _, t := range m.UV {
		fmt.Fprintf(bw, "vt %g %g\n", t[0], t[1])
	}
	for _, nv := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", nv[0], nv[1], nv[2])
	}

	hasUV, hasNormals := len(m.UV) > 0, len(m.Normals) > 0
	for i := 0; i+2 < len(m.Indices); i += 3 {
		bw.WriteString("f")
		for k := 0; k < 3; k++ {
			idx := m.Indices[i+k] + 1 // OBJ indices are 1-based
			switch {
			case hasUV && hasNormals:
				fmt.Fprintf(bw, " %d/%d/%d", idx, idx, idx)
			case hasNormals:
				fmt.Fprintf(bw, " %d//%d", idx, idx)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", idx, idx)
			default:
				fmt.Fprintf(bw, " %d", idx)
			}
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return nil
}
