// Package save persists game snapshots as JSON blobs in a key-value store.
package save

import (
	"context"
	"fmt"
	"sync"

	"blaze-and-steel/internal/config"
)

// BlobStore is an opaque string store keyed by name.
type BlobStore interface {
	// Get returns the value for key; ok is false when nothing is stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Backend is a BlobStore that holds resources until closed.
type Backend interface {
	BlobStore
	Close() error
}

// MemStore keeps blobs in memory. Safe for concurrent use.
type MemStore struct {
	mu    sync.Mutex
	blobs map[string]string
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string]string)}
}

func (m *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.blobs[key]
	return v, ok, nil
}

func (m *MemStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
	return nil
}

func (m *MemStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *MemStore) Close() error { return nil }

// Open builds the backend named by cfg.Storage.Backend.
func Open(cfg config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.StoragePath())
	case config.BackendSQLite:
		return OpenSQLite(cfg.StoragePath())
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
