// Package siteconfig stores the site configuration document. A missing or
// unparseable file silently falls back to the built-in default; the last
// successful save always wins.
package siteconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Document is the site configuration. SiteDescription is markdown text;
// SiteImage is an optional file path.
type Document struct {
	SiteTitle       string `json:"site_title"`
	SiteDescription string `json:"site_description"`
	SiteImage       string `json:"site_image,omitempty"`
}

// Default is the built-in document used when nothing has been saved yet.
func Default() Document {
	return Document{
		SiteTitle:       "Training Program Registration",
		SiteDescription: "Welcome! Sign up for the training program using the registration form.",
	}
}

// Store persists the document as one JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved document, or the default when the file is absent or
// corrupt. Corruption is not an error for readers; the next save repairs it.
func (s *Store) Load() Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Default()
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Default()
	}
	return doc
}

// Save replaces the document on disk via a temp-file rename.
func (s *Store) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal site config: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write site config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace site config: %w", err)
	}
	return nil
}
