// Package store persists the ordered program list as a newline-delimited file.
package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store loads and saves an ordered list of program paths.
type Store interface {
	Load() ([]string, error)
	Save(paths []string) error
}

// FileStore keeps one path per line in a plain text file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the storage file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored paths in order.
// Returns an empty list if the file doesn't exist.
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read program list: %w", err)
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse program list: %w", err)
	}

	if paths == nil {
		return []string{}, nil
	}
	return paths, nil
}

// Save overwrites the file with paths, one per line, creating parent
// directories if needed.
func (s *FileStore) Save(paths []string) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}

	var buf bytes.Buffer
	for _, p := range paths {
		buf.WriteString(p)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write program list: %w", err)
	}
	return nil
}

// Memory is an in-memory Store. Saves counts how many times Save was called.
type Memory struct {
	Paths   []string
	Saves   int
	SaveErr error
}

// Load returns a copy of the stored paths.
func (m *Memory) Load() ([]string, error) {
	return append([]string{}, m.Paths...), nil
}

// Save records paths unless SaveErr is set.
func (m *Memory) Save(paths []string) error {
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Paths = append([]string{}, paths...)
	return nil
}
