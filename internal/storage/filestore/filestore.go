// Package filestore persists the key-value namespace to a single JSON file,
// emulating the synchronous browser localStorage the original frontend used.
// Every mutation rewrites the file; reads are served from memory.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mlebedeva/tastebook/internal/common"
)

type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string][]byte
}

// New loads (or creates) the store file at path.
func New(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: make(map[string][]byte)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var snapshot map[string]json.RawMessage
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	for k, v := range snapshot {
		// Values are kept as the raw strings they were written as.
		var str string
		if err := json.Unmarshal(v, &str); err != nil {
			return nil, fmt.Errorf("failed to parse store entry %q: %w", k, err)
		}
		s.data[k] = []byte(str)
	}
	return s, nil
}

func (s *FileStore) Write(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return s.flush()
}

func (s *FileStore) Read(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return s.flush()
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)
	return s.flush()
}

// flush rewrites the whole file. Caller must hold the write lock.
func (s *FileStore) flush() error {
	snapshot := make(map[string]string, len(s.data))
	for k, v := range s.data {
		snapshot[k] = string(v)
	}

	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}

	// Write to a temp file first so a crash mid-write never truncates the store.
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
