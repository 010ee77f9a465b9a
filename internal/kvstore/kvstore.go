// Package kvstore is the persistence collaborator: an opaque key-value
// store the core re-serializes its collections into after every
// mutation. The store holds the last value it was given; there is no
// partial-write recovery.
package kvstore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/localpulse/localpulse/pkg/logging"
)

// Store is the key-value interface the core persists through.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Well-known logical keys.
const (
	KeyDrafts      = "localpulse.drafts"
	KeyReviews     = "localpulse.reviews"
	KeySavedEvents = "localpulse.savedEvents"
)

// MemoryStore is an in-process Store, used in tests and as the default
// when no data directory is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// FileStore persists each key as a file under a directory. Writes go
// through a temp file and rename so a crash leaves the previous value
// in place.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	name := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(f.dir, name+".json")
}

func (f *FileStore) Get(key string) (string, bool) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return err
	}
	logger := logging.GetLogger("kvstore")
	logger.Debug().Str("key", key).Int("bytes", len(value)).Msg("Persisted key")
	return nil
}
