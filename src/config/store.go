package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Record is a string-keyed preference record.
type Record map[string]string

// PreferenceStore persists records across launches.
type PreferenceStore interface {
	Get(key string) (Record, bool)
	Set(key string, rec Record)
	Flush() error
}

// FileStore keeps records in a YAML file.
type FileStore struct {
	mu    sync.Mutex
	path  string
	data  map[string]Record
	dirty bool
}

// OpenFileStore loads path if it exists. A missing file is an empty store; an
// unreadable one is logged and treated as empty so a bad file never blocks
// startup.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: map[string]Record{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read preferences %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		log.Printf("config: preferences %s are malformed, starting fresh: %v", path, err)
		s.data = map[string]Record{}
	}
	if s.data == nil {
		s.data = map[string]Record{}
	}
	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(key string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[key]
	if !ok {
		return nil, false
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out, true
}

func (s *FileStore) Set(key string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(Record, len(rec))
	for k, v := range rec {
		cp[k] = v
	}
	s.data[key] = cp
	s.dirty = true
}

// Flush writes pending changes atomically (temp file + rename).
func (s *FileStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	out, err := yaml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace preferences: %w", err)
	}
	s.dirty = false
	return nil
}
