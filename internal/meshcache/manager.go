// Package meshcache builds, persists and shares geodesic meshes per depth.
//
// Meshes are produced once by Ensure and then only loaded. A loaded mesh is
// shared by every caller of Get and must not be modified.
package meshcache

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/geoplanet/internal/logger"
	"github.com/Faultbox/geoplanet/pkg/icosphere"
)

// Manager serves meshes from memory, falling back to the disk store.
type Manager struct {
	store *Store
	cache *Cache
	mu    sync.Mutex // serializes disk loads and builds
	log   *zap.Logger
}

// NewManager creates a manager over store.
func NewManager(store *Store) *Manager {
	return &Manager{
		store: store,
		cache: NewCache(),
		log:   logger.Named("meshcache"),
	}
}

// Store returns the underlying disk store.
func (m *Manager) Store() *Store {
	return m.store
}

// Ensure builds and persists every depth from 0 to maxDepth that is not on
// disk yet.
func (m *Manager) Ensure(maxDepth int) error {
	if maxDepth < 0 || maxDepth > icosphere.MaxDepth {
		return fmt.Errorf("%w: %d", icosphere.ErrDepthOutOfRange, maxDepth)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for depth := 0; depth <= maxDepth; depth++ {
		if m.store.Exists(depth) {
			m.log.Debug("mesh already cached", zap.Int("depth", depth))
			continue
		}
		if err := m.build(depth); err != nil {
			return err
		}
	}
	return nil
}

// Rebuild regenerates depth unconditionally and replaces the cached copy.
func (m *Manager) Rebuild(depth int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.build(depth)
}

func (m *Manager) build(depth int) error {
	start := time.Now()
	mesh, err := icosphere.Build(depth)
	if err != nil {
		return fmt.Errorf("building depth %d: %w", depth, err)
	}
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("building depth %d: %w", depth, err)
	}
	if err := m.store.Save(mesh); err != nil {
		return err
	}
	m.cache.Set(depth, mesh)

	m.log.Info("mesh cached",
		zap.Int("depth", depth),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Triangles)/3),
		zap.Int("index_bits", mesh.IndexWidth()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Get returns the shared mesh for depth, loading it from disk on first use.
// It fails with ErrNotCached if Ensure has not produced the depth.
func (m *Manager) Get(depth int) (*icosphere.Mesh, error) {
	if mesh, ok := m.cache.Get(depth); ok {
		return mesh, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if mesh, ok := m.cache.Peek(depth); ok {
		return mesh, nil
	}
	mesh, err := m.store.Load(depth)
	if err != nil {
		return nil, err
	}
	m.cache.Set(depth, mesh)
	m.log.Debug("mesh loaded", zap.Int("depth", depth), zap.String("path", m.store.Path(depth)))
	return mesh, nil
}

// Entry describes one cached depth.
type Entry struct {
	Depth      int
	Path       string
	Size       int64
	Vertices   int
	Triangles  int
	IndexWidth int
	Area       float64 // spherical area, 4π when watertight
	Err        error
}

// Inventory loads every depth from 0 to maxDepth that exists on disk.
func (m *Manager) Inventory(maxDepth int) []Entry {
	var entries []Entry
	for depth := 0; depth <= maxDepth; depth++ {
		path := m.store.Path(depth)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		e := Entry{Depth: depth, Path: path, Size: info.Size()}
		mesh, err := m.Get(depth)
		if err != nil {
			e.Err = err
		} else {
			e.Vertices = len(mesh.Vertices)
			e.Triangles = len(mesh.Triangles) / 3
			e.IndexWidth = mesh.IndexWidth()
			e.Area = mesh.SphericalArea()
		}
		entries = append(entries, e)
	}
	return entries
}

// Close drops every loaded mesh.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is an in-memory map of loaded meshes.
type Cache struct {
	data map[int]*icosphere.Mesh
	mu   sync.RWMutex

	// Stats
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[int]*icosphere.Mesh),
	}
}

// Get retrieves a mesh and counts the lookup.
func (c *Cache) Get(depth int) (*icosphere.Mesh, bool) {
	mesh, ok := c.Peek(depth)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return mesh, ok
}

// Peek retrieves a mesh without touching the stats.
func (c *Cache) Peek(depth int) (*icosphere.Mesh, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mesh, ok := c.data[depth]
	return mesh, ok
}

// Set stores a mesh.
func (c *Cache) Set(depth int, mesh *icosphere.Mesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[depth] = mesh
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[int]*icosphere.Mesh)
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	return int(c.hits.Load()), int(c.misses.Load())
}
