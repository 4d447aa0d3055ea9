package meshcache

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/Faultbox/geoplanet/pkg/formats"
	"github.com/Faultbox/geoplanet/pkg/icosphere"
	"github.com/Faultbox/geoplanet/pkg/math"
)

var (
	ErrNotCached = errors.New("mesh not cached")
	ErrCorrupt   = errors.New("cached mesh is corrupt")
)

// Store persists one GEOM file per depth, named <baseName><depth>.
type Store struct {
	dir      string
	baseName string
}

// NewStore creates a store rooted at dir.
func NewStore(dir, baseName string) *Store {
	return &Store{dir: dir, baseName: baseName}
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file holding the mesh for depth.
func (s *Store) Path(depth int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d", s.baseName, depth))
}

// Exists reports whether a file for depth is present.
func (s *Store) Exists(depth int) bool {
	info, err := os.Stat(s.Path(depth))
	return err == nil && info.Mode().IsRegular()
}

// Save writes m atomically: the file for its depth is either the previous
// content or the complete new mesh, never a partial write.
func (s *Store) Save(m *icosphere.Mesh) (err error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, s.baseName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()

	g := &formats.GEOM{
		IndexWidth: uint8(m.IndexWidth()),
		Depth:      uint8(m.Depth),
		Vertices:   make([][3]float64, len(m.Vertices)),
		Indices:    m.Triangles,
	}
	for i, v := range m.Vertices {
		g.Vertices[i] = [3]float64{v.X, v.Y, v.Z}
	}

	w := bufio.NewWriter(tmp)
	err = formats.EncodeGEOM(w, g)
	err = multierr.Append(err, w.Flush())
	err = multierr.Append(err, tmp.Sync())
	err = multierr.Append(err, tmp.Close())
	if err != nil {
		return fmt.Errorf("writing depth %d: %w", m.Depth, err)
	}

	if err = os.Rename(tmp.Name(), s.Path(m.Depth)); err != nil {
		return fmt.Errorf("publishing depth %d: %w", m.Depth, err)
	}
	return nil
}

// Load reads the mesh for depth and recomputes its UVs. A missing file is
// ErrNotCached; it is never regenerated here.
func (s *Store) Load(depth int) (*icosphere.Mesh, error) {
	path := s.Path(depth)
	g, err := formats.ParseGEOMFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: depth %d (%s): %w", ErrNotCached, depth, path, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}

	if int(g.Depth) != depth ||
		len(g.Vertices) != icosphere.VertexCount(depth) ||
		len(g.Indices) != 3*icosphere.TriangleCount(depth) {
		return nil, fmt.Errorf("%w: %s holds depth %d with %d vertices",
			ErrCorrupt, path, g.Depth, len(g.Vertices))
	}

	m := &icosphere.Mesh{
		Depth:     depth,
		Vertices:  make([]math.Vec3, len(g.Vertices)),
		Triangles: g.Indices,
	}
	for i, v := range g.Vertices {
		m.Vertices[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	m.ComputeUV()
	return m, nil
}
