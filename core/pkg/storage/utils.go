package storage

import (
	"fmt"
	"strings"
)

// SessionKeyPrefix prefixes every session key in a backend.
const SessionKeyPrefix = "sessions"

// BuildKey constructs a storage key with optional prefix components
func BuildKey(components ...string) string {
	var validComponents []string
	for _, component := range components {
		if component != "" {
			validComponents = append(validComponents, component)
		}
	}
	return strings.Join(validComponents, "/")
}

// SessionKey returns the key a session snapshot is stored under.
func SessionKey(prefix, session string) string {
	return BuildKey(prefix, SessionKeyPrefix, session)
}

// SessionFromKey is the inverse of SessionKey.
func SessionFromKey(prefix, key string) (string, bool) {
	return strings.CutPrefix(key, BuildKey(prefix, SessionKeyPrefix)+"/")
}

// ValidateSessionName rejects names that cannot be stored as a key.
func ValidateSessionName(session string) error {
	if session == "" {
		return fmt.Errorf("session name must not be empty")
	}
	if strings.ContainsAny(session, "/\x00") {
		return fmt.Errorf("session name %q must not contain '/'", session)
	}
	return nil
}

// IsValidStorageType checks if a storage type is supported
func IsValidStorageType(storageType StorageType) bool {
	switch storageType {
	case StorageTypeMemory, StorageTypePebble:
		return true
	default:
		return false
	}
}

// StorageTypeFromString converts a string to StorageType with validation
func StorageTypeFromString(s string) (StorageType, error) {
	storageType := StorageType(s)
	if !IsValidStorageType(storageType) {
		return "", fmt.Errorf("invalid storage type: %s", s)
	}
	return storageType, nil
}

// GetAllStorageTypes returns all supported storage types
func GetAllStorageTypes() []StorageType {
	return []StorageType{
		StorageTypeMemory,
		StorageTypePebble,
	}
}

// IsPersistentBackend checks if the storage type survives a restart
func IsPersistentBackend(storageType StorageType) bool {
	return storageType != StorageTypeMemory
}

// GetDefaultDatabaseName returns the default database name for a storage type
func GetDefaultDatabaseName(storageType StorageType) string {
	switch storageType {
	case StorageTypePebble:
		return "k1s-tutor.pebble"
	default:
		return "k1s-tutor.db"
	}
}
