package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store owns the State snapshot. All access goes through View/Update so the
// single-writer assumption holds even though handlers and timer callbacks
// run on separate goroutines. When path is empty the store is memory-only.
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// Open loads the snapshot at path, or starts empty when the file does not
// exist. An empty path gives a memory-only store, which tests use.
func Open(path string) (*Store, error) {
	s := &Store{path: path, state: NewState()}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	s.state.normalize()
	return s, nil
}

// View runs fn against a copy-on-read of the snapshot. fn must not retain
// references past its return.
func (s *Store) View(fn func(state *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

// Update runs fn against the snapshot and writes the whole state back on
// success. An error from fn leaves the persisted state untouched.
func (s *Store) Update(fn func(state *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.state); err != nil {
		return err
	}
	return s.flushLocked()
}

// Reset replaces the snapshot with an empty one and persists it. Used by
// the system reset path after outstanding timers have been cancelled.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = NewState()
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
