// Package storage provides an in-memory session backend. Snapshots live for
// the lifetime of the process, which is what a single tutorial run needs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	k1sstorage "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/storage"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// memoryStorage keeps encoded snapshots in a map.
type memoryStorage struct {
	// mu protects all operations on the storage
	mu sync.RWMutex

	// data stores encoded snapshots by key
	data map[string][]byte

	// config contains storage configuration
	config k1sstorage.Config

	// metrics tracks operation statistics
	metrics *memoryMetrics

	closed atomic.Bool
}

// memoryMetrics tracks operational metrics
type memoryMetrics struct {
	operations uint64
	errors     uint64
}

// NewMemoryStorage creates a new in-memory session backend.
func NewMemoryStorage(config k1sstorage.Config) k1sstorage.Backend {
	return &memoryStorage{
		data:    make(map[string][]byte),
		config:  config,
		metrics: &memoryMetrics{},
	}
}

// New builds a memory backend from factory configuration.
func New(config k1sstorage.FactoryConfig) (k1sstorage.Backend, error) {
	sc, err := config.ToStorageConfig()
	if err != nil {
		return nil, err
	}
	return NewMemoryStorage(sc), nil
}

// Name returns the name of this storage backend
func (s *memoryStorage) Name() string {
	return string(k1sstorage.StorageTypeMemory)
}

func (s *memoryStorage) check(ctx context.Context) error {
	if ctx.Err() != nil {
		return k1sstorage.NewContextCancelledError(ctx)
	}
	if s.closed.Load() {
		atomic.AddUint64(&s.metrics.errors, 1)
		return k1sstorage.ErrClosed
	}
	return nil
}

// Save replaces the snapshot of session with store.
func (s *memoryStorage) Save(ctx context.Context, session string, store v1.Store) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if err := k1sstorage.ValidateSessionName(session); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.config.GetCodec().Encode(store, &buf); err != nil {
		atomic.AddUint64(&s.metrics.errors, 1)
		return fmt.Errorf("failed to encode session %s: %w", session, err)
	}

	s.mu.Lock()
	s.data[k1sstorage.SessionKey(s.config.KeyPrefix, session)] = buf.Bytes()
	s.mu.Unlock()

	atomic.AddUint64(&s.metrics.operations, 1)
	return nil
}

// Load returns the snapshot of session.
func (s *memoryStorage) Load(ctx context.Context, session string) (v1.Store, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.data[k1sstorage.SessionKey(s.config.KeyPrefix, session)]
	s.mu.RUnlock()
	if !ok {
		return nil, k1sstorage.NewNotFoundError(session)
	}

	store, err := s.config.GetCodec().Decode(data)
	if err != nil {
		atomic.AddUint64(&s.metrics.errors, 1)
		return nil, fmt.Errorf("failed to decode session %s: %w", session, err)
	}

	atomic.AddUint64(&s.metrics.operations, 1)
	return store, nil
}

// Delete removes the snapshot of session.
func (s *memoryStorage) Delete(ctx context.Context, session string) error {
	if err := s.check(ctx); err != nil {
		return err
	}

	key := k1sstorage.SessionKey(s.config.KeyPrefix, session)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return k1sstorage.NewNotFoundError(session)
	}
	delete(s.data, key)

	atomic.AddUint64(&s.metrics.operations, 1)
	return nil
}

// List returns all session names in lexical order.
func (s *memoryStorage) List(ctx context.Context) ([]string, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var sessions []string
	for key := range s.data {
		if session, ok := k1sstorage.SessionFromKey(s.config.KeyPrefix, key); ok {
			sessions = append(sessions, session)
		}
	}
	sort.Strings(sessions)
	return sessions, nil
}

// Count returns the number of stored sessions.
func (s *memoryStorage) Count(ctx context.Context) (int64, error) {
	sessions, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

// Compact is a no-op for memory storage.
func (s *memoryStorage) Compact(ctx context.Context) error {
	return s.check(ctx)
}

// Close drops all snapshots.
func (s *memoryStorage) Close() error {
	s.closed.Store(true)

	s.mu.Lock()
	s.data = make(map[string][]byte)
	s.mu.Unlock()

	return nil
}

// GetMetrics returns operation statistics
func (s *memoryStorage) GetMetrics() (operations, errors uint64) {
	return atomic.LoadUint64(&s.metrics.operations), atomic.LoadUint64(&s.metrics.errors)
}
