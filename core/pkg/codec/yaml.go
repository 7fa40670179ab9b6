package codec

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// YAMLCodec implements Codec with sigs.k8s.io/yaml, so JSON struct tags
// drive the field names.
type YAMLCodec struct{}

// NewYAMLCodec creates a YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Encode writes the store as YAML.
func (c *YAMLCodec) Encode(store v1.Store, w io.Writer) error {
	data, err := yaml.Marshal(newSnapshot(store))
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot to YAML: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write YAML data: %w", err)
	}
	return nil
}

// Decode parses a YAML snapshot.
func (c *YAMLCodec) Decode(data []byte) (v1.Store, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot decode empty data")
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode YAML snapshot: %w", err)
	}
	if err := checkSnapshot(s); err != nil {
		return nil, err
	}
	return s.Items, nil
}

// Identifier returns "yaml".
func (c *YAMLCodec) Identifier() string {
	return "yaml"
}
