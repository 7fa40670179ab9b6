// Package uid generates resource identifiers. Generators are explicit values
// owned by an engine instance rather than process-wide counters, so every
// session or test gets an independent sequence.
package uid

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Generator hands out identifiers that are never repeated by the same
// generator.
type Generator interface {
	Next() string
}

// SequencePrefix prefixes identifiers produced by a Sequence.
const SequencePrefix = "res-"

// Sequence produces "res-1", "res-2", ... It is safe for concurrent use.
type Sequence struct {
	mu   sync.Mutex
	last uint64
}

// NewSequence returns a sequence starting at 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// NewSequenceAfter returns a sequence that continues after the highest
// sequence id found in store, so a restored session never reuses an id.
func NewSequenceAfter(store v1.Store) *Sequence {
	s := &Sequence{}
	for _, r := range store {
		n, ok := strings.CutPrefix(r.ID, SequencePrefix)
		if !ok {
			continue
		}
		if v, err := strconv.ParseUint(n, 10, 64); err == nil && v > s.last {
			s.last = v
		}
	}
	return s
}

// Next returns the next identifier.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return SequencePrefix + strconv.FormatUint(s.last, 10)
}

// UUIDs produces random RFC 4122 identifiers, like the UIDs of a real cluster.
type UUIDs struct{}

// NewUUIDs returns a random generator.
func NewUUIDs() UUIDs {
	return UUIDs{}
}

// Next returns a new random UUID.
func (UUIDs) Next() string {
	return uuid.NewString()
}
