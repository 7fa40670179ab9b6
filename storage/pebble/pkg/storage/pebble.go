// Package storage provides a PebbleDB session backend so a learner can close
// the tutorial and pick up the same cluster later.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/pebble"

	k1sstorage "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/storage"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// pebbleStorage stores one encoded snapshot per session key in an LSM tree.
type pebbleStorage struct {
	// db is the underlying PebbleDB instance, opened lazily
	db *pebble.DB

	// dbMu guards opening the database
	dbMu sync.Mutex

	// path is the database directory
	path string

	// config contains storage configuration
	config k1sstorage.Config

	// metrics tracks operation statistics
	metrics *pebbleMetrics

	// closed indicates if the storage is closed
	closed atomic.Bool
}

// pebbleMetrics tracks operational metrics
type pebbleMetrics struct {
	operations uint64
	errors     uint64
}

// NewPebbleStorageWithPath creates a new Pebble backend rooted at path.
func NewPebbleStorageWithPath(path string, config k1sstorage.Config) k1sstorage.Backend {
	return &pebbleStorage{
		path:    path,
		config:  config,
		metrics: &pebbleMetrics{},
	}
}

// New builds a Pebble backend from factory configuration.
func New(config k1sstorage.FactoryConfig) (k1sstorage.Backend, error) {
	sc, err := config.ToStorageConfig()
	if err != nil {
		return nil, err
	}
	return NewPebbleStorageWithPath(config.GetDatabasePath(), sc), nil
}

// initDB opens the PebbleDB instance if not already open.
func (s *pebbleStorage) initDB() error {
	s.dbMu.Lock()
	defer s.dbMu.Unlock()

	if s.db != nil {
		return nil
	}

	// Snapshots are small and written once per command.
	opts := &pebble.Options{
		MemTableSize:          4 << 20,
		L0CompactionThreshold: 2,
		MaxOpenFiles:          256,
	}

	db, err := pebble.Open(s.path, opts)
	if err != nil {
		return fmt.Errorf("failed to open pebble database at %s: %w", s.path, err)
	}

	s.db = db
	return nil
}

// Name returns the name of this storage backend
func (s *pebbleStorage) Name() string {
	return string(k1sstorage.StorageTypePebble)
}

func (s *pebbleStorage) check(ctx context.Context) error {
	if ctx.Err() != nil {
		return k1sstorage.NewContextCancelledError(ctx)
	}
	if s.closed.Load() {
		atomic.AddUint64(&s.metrics.errors, 1)
		return k1sstorage.ErrClosed
	}
	if err := s.initDB(); err != nil {
		atomic.AddUint64(&s.metrics.errors, 1)
		return err
	}
	return nil
}

// Save replaces the snapshot of session with store.
func (s *pebbleStorage) Save(ctx context.Context, session string, store v1.Store) error {
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

	key := k1sstorage.SessionKey(s.config.KeyPrefix, session)
	if err := s.db.Set([]byte(key), buf.Bytes(), pebble.Sync); err != nil {
		atomic.AddUint64(&s.metrics.errors, 1)
		return fmt.Errorf("failed to write session %s: %w", session, err)
	}

	atomic.AddUint64(&s.metrics.operations, 1)
	return nil
}

// Load returns the snapshot of session.
func (s *pebbleStorage) Load(ctx context.Context, session string) (v1.Store, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	key := k1sstorage.SessionKey(s.config.KeyPrefix, session)
	data, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, k1sstorage.NewNotFoundError(session)
	}
	if err != nil {
		atomic.AddUint64(&s.metrics.errors, 1)
		return nil, fmt.Errorf("failed to read session %s: %w", session, err)
	}
	// data is only valid until closer is closed
	raw := append([]byte(nil), data...)
	closer.Close()

	store, err := s.config.GetCodec().Decode(raw)
	if err != nil {
		atomic.AddUint64(&s.metrics.errors, 1)
		return nil, fmt.Errorf("failed to decode session %s: %w", session, err)
	}

	atomic.AddUint64(&s.metrics.operations, 1)
	return store, nil
}

// Delete removes the snapshot of session.
func (s *pebbleStorage) Delete(ctx context.Context, session string) error {
	if err := s.check(ctx); err != nil {
		return err
	}

	key := []byte(k1sstorage.SessionKey(s.config.KeyPrefix, session))
	_, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return k1sstorage.NewNotFoundError(session)
	}
	if err != nil {
		atomic.AddUint64(&s.metrics.errors, 1)
		return fmt.Errorf("failed to read session %s: %w", session, err)
	}
	closer.Close()

	if err := s.db.Delete(key, pebble.Sync); err != nil {
		atomic.AddUint64(&s.metrics.errors, 1)
		return fmt.Errorf("failed to delete session %s: %w", session, err)
	}

	atomic.AddUint64(&s.metrics.operations, 1)
	return nil
}

// List returns all session names in lexical order, which is the key order
// of the LSM tree.
func (s *pebbleStorage) List(ctx context.Context) ([]string, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	prefix := k1sstorage.BuildKey(s.config.KeyPrefix, k1sstorage.SessionKeyPrefix) + "/"
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: []byte(prefix + "\xFF"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	var sessions []string
	for iter.First(); iter.Valid(); iter.Next() {
		if session, ok := k1sstorage.SessionFromKey(s.config.KeyPrefix, string(iter.Key())); ok {
			sessions = append(sessions, session)
		}
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterator error: %w", err)
	}

	return sessions, nil
}

// Count returns the number of stored sessions.
func (s *pebbleStorage) Count(ctx context.Context) (int64, error) {
	sessions, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

// Compact performs manual compaction on the entire keyspace.
func (s *pebbleStorage) Compact(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return err
	}

	if err := s.db.Compact([]byte(""), []byte("\xFF"), true); err != nil {
		return fmt.Errorf("failed to compact database: %w", err)
	}

	return nil
}

// Close closes the PebbleDB instance.
func (s *pebbleStorage) Close() error {
	s.closed.Store(true)

	s.dbMu.Lock()
	defer s.dbMu.Unlock()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close pebble database: %w", err)
		}
		s.db = nil
	}

	return nil
}

// GetMetrics returns operation statistics
func (s *pebbleStorage) GetMetrics() (operations, errors uint64) {
	return atomic.LoadUint64(&s.metrics.operations), atomic.LoadUint64(&s.metrics.errors)
}
