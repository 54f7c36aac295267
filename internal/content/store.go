// Package content stores one freeform text blob per named course module.
// Reads of an absent module return a placeholder; writes overwrite the whole
// blob.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// Placeholder is returned when a module has no published content yet.
const Placeholder = "No course content has been published yet."

// module names are restricted to a safe slug so a crafted name can never
// escape the content directory.
var moduleNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ErrInvalidModule rejects module names outside the allowed slug format.
var ErrInvalidModule = fmt.Errorf("invalid module name")

// Store is a directory of <module>.txt files.
type Store struct {
	dir string
	mu  sync.Mutex
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Read returns the module's content, or Placeholder when none exists.
func (s *Store) Read(module string) (string, error) {
	path, err := s.path(module)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Placeholder, nil
		}
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(data), nil
}

// Write fully overwrites the module's content via a temp-file rename so a
// failed write never leaves a truncated blob behind.
func (s *Store) Write(module, text string) error {
	path, err := s.path(module)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create content directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write content: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace content: %w", err)
	}
	return nil
}

func (s *Store) path(module string) (string, error) {
	if !moduleNamePattern.MatchString(module) {
		return "", ErrInvalidModule
	}
	return filepath.Join(s.dir, module+".txt"), nil
}
