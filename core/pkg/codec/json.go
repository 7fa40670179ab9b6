package codec

import (
	"encoding/json"
	"fmt"
	"io"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// JSONCodec implements Codec with encoding/json.
type JSONCodec struct {
	pretty bool
}

// NewJSONCodec creates a compact JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// NewPrettyJSONCodec creates a JSON codec that indents its output.
func NewPrettyJSONCodec() *JSONCodec {
	return &JSONCodec{pretty: true}
}

// Encode writes the store as JSON.
func (c *JSONCodec) Encode(store v1.Store, w io.Writer) error {
	var (
		data []byte
		err  error
	)
	if c.pretty {
		data, err = json.MarshalIndent(newSnapshot(store), "", "  ")
	} else {
		data, err = json.Marshal(newSnapshot(store))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot to JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON data: %w", err)
	}
	return nil
}

// Decode parses a JSON snapshot.
func (c *JSONCodec) Decode(data []byte) (v1.Store, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot decode empty data")
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode JSON snapshot: %w", err)
	}
	if err := checkSnapshot(s); err != nil {
		return nil, err
	}
	return s.Items, nil
}

// Identifier returns "json".
func (c *JSONCodec) Identifier() string {
	return "json"
}
