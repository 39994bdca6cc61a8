// Package store models the filesystem layout the service works with: three
// named areas under a common base directory. Files enter the single area on
// upload, bulk holds the externally managed candidate images, and processed
// is the terminal area for uploads that completed a match attempt.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Area names one of the three directories a file moves through.
type Area string

const (
	AreaBulk      Area = "bulk"
	AreaSingle    Area = "single"
	AreaProcessed Area = "processed"
)

// FileStore provides save/read/move/exists operations over the three areas,
// keeping path handling out of the matching logic so the backing storage
// could be swapped without touching it.
type FileStore struct {
	base string
}

// New creates the area directories under baseDir if they are absent.
func New(baseDir string) (*FileStore, error) {
	for _, area := range []Area{AreaBulk, AreaSingle, AreaProcessed} {
		dir := filepath.Join(baseDir, string(area))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s directory: %w", area, err)
		}
	}
	return &FileStore{base: baseDir}, nil
}

// Path returns the on-disk location of a file within an area. The name is
// reduced to its base so callers cannot escape the area directory.
func (s *FileStore) Path(area Area, name string) string {
	return filepath.Join(s.base, string(area), filepath.Base(name))
}

// Save writes the reader's contents to the named file within an area,
// replacing any existing file, and returns the resulting path.
func (s *FileStore) Save(area Area, name string, r io.Reader) (string, error) {
	path := s.Path(area, name)
	out, err := os.Create(path) //nolint:gosec // filename sanitized via filepath.Base
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// Read returns the contents of the named file within an area.
func (s *FileStore) Read(area Area, name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(area, name))
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", filepath.Base(name), area, err)
	}
	return data, nil
}

// Exists reports whether the named file is present within an area.
func (s *FileStore) Exists(area Area, name string) bool {
	info, err := os.Stat(s.Path(area, name))
	return err == nil && !info.IsDir()
}

// Move relocates the named file from one area to another. A cross-device
// rename falls back to copy and remove.
func (s *FileStore) Move(src, dst Area, name string) error {
	from := s.Path(src, name)
	to := s.Path(dst, name)
	if err := os.Rename(from, to); err == nil {
		return nil
	}
	in, err := os.Open(from) //nolint:gosec // filename sanitized via filepath.Base
	if err != nil {
		return fmt.Errorf("moving %s: %w", filepath.Base(name), err)
	}
	defer in.Close()
	if _, err := s.Save(dst, name, in); err != nil {
		return fmt.Errorf("moving %s: %w", filepath.Base(name), err)
	}
	if err := os.Remove(from); err != nil {
		return fmt.Errorf("removing %s after move: %w", filepath.Base(name), err)
	}
	return nil
}

// List returns the names of regular files within an area, sorted.
func (s *FileStore) List(area Area) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.base, string(area)))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", area, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
