package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// memoryKV is the in-memory KeyValueStore used by tests and the "memory"
// client backend. Values do not survive the process.
type memoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV returns an empty in-memory KeyValueStore.
func NewMemoryKV() KeyValueStore {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *memoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// fileKV persists the whole key/value map as a single JSON file. The map is
// loaded once at construction and rewritten on every Set, which is plenty for
// a single-user client collection.
type fileKV struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// NewFileKV opens (or creates on first Set) a JSON-file-backed KeyValueStore
// at path.
func NewFileKV(path string) (KeyValueStore, error) {
	f := &fileKV{path: path, values: map[string]string{}}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *fileKV) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}
	if err = json.Unmarshal(data, &f.values); err != nil {
		return fmt.Errorf("decode local storage file: %w", err)
	}
	if f.values == nil {
		f.values = map[string]string{}
	}
	return nil
}

func (f *fileKV) persist() error {
	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage file: %w", err)
	}
	if err = os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}
	return nil
}

func (f *fileKV) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.persist()
}
