// Package storage defines how tutorial sessions are persisted. A backend keeps
// one snapshot of the cluster store per session name.
package storage

import (
	"context"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Interface stores cluster snapshots by session name.
type Interface interface {
	// Save replaces the snapshot of session with store.
	Save(ctx context.Context, session string, store v1.Store) error

	// Load returns the snapshot of session. A missing session yields an
	// error for which IsNotFound is true.
	Load(ctx context.Context, session string) (v1.Store, error)

	// Delete removes the snapshot of session. Deleting a missing session
	// yields an error for which IsNotFound is true.
	Delete(ctx context.Context, session string) error

	// List returns all session names in lexical order.
	List(ctx context.Context) ([]string, error)
}

// Backend defines additional methods that storage backends implement
// beyond the basic session Interface.
type Backend interface {
	Interface

	// Name returns the name of this storage backend
	Name() string

	// Close closes the storage backend and cleans up resources
	Close() error

	// Compact performs storage compaction if supported
	Compact(ctx context.Context) error

	// Count returns the number of stored sessions
	Count(ctx context.Context) (int64, error)
}

// Factory creates storage backends from configuration
type Factory interface {
	// CreateBackend creates a new backend storage instance
	CreateBackend(config FactoryConfig) (Backend, error)

	// SupportedBackends returns the list of supported backend types
	SupportedBackends() []StorageType
}
