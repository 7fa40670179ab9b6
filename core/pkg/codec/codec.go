// Package codec encodes and decodes snapshots of a cluster store so a session
// can be persisted between runs.
package codec

import (
	"fmt"
	"io"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

const (
	// SnapshotAPIVersion is written into every encoded snapshot.
	SnapshotAPIVersion = "tutor.k1s.io/v1"
	// SnapshotKind is the kind of an encoded snapshot.
	SnapshotKind = "Snapshot"
)

// Snapshot is the serialized envelope around a store.
type Snapshot struct {
	APIVersion string   `json:"apiVersion"`
	Kind       string   `json:"kind"`
	Items      v1.Store `json:"items"`
}

// Codec encodes and decodes stores.
type Codec interface {
	// Encode writes the store to w.
	Encode(store v1.Store, w io.Writer) error
	// Decode parses data produced by Encode.
	Decode(data []byte) (v1.Store, error)
	// Identifier names the wire format.
	Identifier() string
}

// ForFormat returns the codec for "json" or "yaml".
func ForFormat(format string) (Codec, error) {
	switch format {
	case "json":
		return NewJSONCodec(), nil
	case "yaml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
}

func newSnapshot(store v1.Store) Snapshot {
	items := store
	if items == nil {
		items = v1.Store{}
	}
	return Snapshot{APIVersion: SnapshotAPIVersion, Kind: SnapshotKind, Items: items}
}

func checkSnapshot(s Snapshot) error {
	if s.Kind != SnapshotKind {
		return fmt.Errorf("unexpected kind %q, want %q", s.Kind, SnapshotKind)
	}
	if s.APIVersion != SnapshotAPIVersion {
		return fmt.Errorf("unsupported snapshot version %q", s.APIVersion)
	}
	return nil
}
