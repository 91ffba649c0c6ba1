// Package assets resolves driver headshots into local image files the PDF
// engine can embed. Images are fetched once, scaled to thumbnail size, and
// persisted under a cache directory keyed by driver identity.
package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// Store persists scaled thumbnails keyed by driver identity.
type Store interface {
	// Locate returns the path of a previously saved thumbnail, if present.
	Locate(id string) (string, bool)
	// Save writes the thumbnail and returns the path it is readable at.
	Save(id string, img image.Image) (string, error)
}

// DiskStore keeps thumbnails as PNG files in a single directory. Writes go
// through a temp file and rename, guarded by a file lock so concurrent runs
// sharing the cache directory do not tear each other's files.
type DiskStore struct {
	dir  string
	lock *flock.Flock
}

// NewDiskStore creates a store rooted at dir. The directory is created on
// first save, not here.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".lock")),
	}
}

func (s *DiskStore) pathFor(id string) string {
	return filepath.Join(s.dir, id+".png")
}

func (s *DiskStore) Locate(id string) (string, bool) {
	path := s.pathFor(id)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

func (s *DiskStore) Save(id string, img image.Image) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return "", fmt.Errorf("lock cache directory: %w", err)
	}
	defer s.lock.Unlock()

	path := s.pathFor(id)
	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp thumbnail: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp thumbnail: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename thumbnail into place: %w", err)
	}
	return path, nil
}

// MemStore is an in-memory Store for tests. Saved paths carry a mem://
// prefix and are not readable from disk.
type MemStore struct {
	mu     sync.Mutex
	images map[string]image.Image
}

func NewMemStore() *MemStore {
	return &MemStore{images: make(map[string]image.Image)}
}

func (s *MemStore) Locate(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[id]; ok {
		return "mem://" + id, true
	}
	return "", false
}

func (s *MemStore) Save(id string, img image.Image) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[id] = img
	return "mem://" + id, nil
}

// Len reports how many thumbnails the store holds.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}
