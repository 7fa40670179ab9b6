package storage

import (
	"fmt"
	"path/filepath"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/codec"
)

// StorageType defines the supported storage backend types.
type StorageType string

const (
	// StorageTypeMemory keeps sessions for the lifetime of the process
	StorageTypeMemory StorageType = "memory"

	// StorageTypePebble persists sessions in a PebbleDB directory
	StorageTypePebble StorageType = "pebble"
)

// Config holds options shared by all backends.
type Config struct {
	// KeyPrefix scopes all keys of this storage instance
	KeyPrefix string

	// Codec encodes snapshots; JSON when nil
	Codec codec.Codec
}

// GetCodec returns the configured codec or the JSON default.
func (c Config) GetCodec() codec.Codec {
	if c.Codec == nil {
		return codec.NewJSONCodec()
	}
	return c.Codec
}

// FactoryConfig holds configuration for the storage factory.
type FactoryConfig struct {
	// Type specifies which storage backend to use
	Type StorageType `json:"type"`

	// Path is the directory path for persistent storage backends
	Path string `json:"path,omitempty"`

	// DatabaseName is the name of the database directory inside Path
	DatabaseName string `json:"databaseName,omitempty"`

	// KeyPrefix scopes all keys, e.g. per learner
	KeyPrefix string `json:"keyPrefix,omitempty"`

	// Format is the snapshot codec format, "json" or "yaml"
	Format string `json:"format,omitempty"`
}

// Validate validates the factory configuration and fills in defaults.
func (c *FactoryConfig) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("storage type must be specified")
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if _, err := codec.ForFormat(c.Format); err != nil {
		return err
	}

	switch c.Type {
	case StorageTypeMemory:
		return nil
	case StorageTypePebble:
		if c.Path == "" {
			return fmt.Errorf("path is required for %s storage", c.Type)
		}
		if c.DatabaseName == "" {
			c.DatabaseName = GetDefaultDatabaseName(c.Type)
		}
		return nil
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Type)
	}
}

// GetDatabasePath returns the full path to the database directory.
func (c *FactoryConfig) GetDatabasePath() string {
	if c.Path == "" {
		return c.DatabaseName
	}
	return filepath.Join(c.Path, c.DatabaseName)
}

// ToStorageConfig converts FactoryConfig to the backend Config.
func (c *FactoryConfig) ToStorageConfig() (Config, error) {
	format := c.Format
	if format == "" {
		format = "json"
	}
	cd, err := codec.ForFormat(format)
	if err != nil {
		return Config{}, err
	}
	return Config{KeyPrefix: c.KeyPrefix, Codec: cd}, nil
}
