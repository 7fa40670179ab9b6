package events

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/uuid"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Recorder appends events to a store.
type Recorder struct {
	options RecorderOptions
}

// NewRecorder creates a new Recorder instance
func NewRecorder(options RecorderOptions) *Recorder {
	if options.Clock == nil {
		options.Clock = time.Now
	}
	if options.NextID == nil {
		options.NextID = func() string { return string(uuid.NewUUID()) }
	}
	if options.Suffix == nil {
		options.Suffix = generateEventSuffix
	}
	if options.MaxEvents == 0 {
		options.MaxEvents = DefaultMaxEvents
	}
	return &Recorder{options: options}
}

// generateEventSuffix generates a unique suffix for event names
func generateEventSuffix() string {
	return string(uuid.NewUUID())[:8]
}

// Eventf records an event about involved and returns the new store. An
// existing event for the same object with the same reason and message is
// aggregated instead: its count goes up and its last seen time is
// refreshed. Events about cluster-scoped objects go to the default
// namespace; events for a namespace that no longer exists are dropped.
func (r *Recorder) Eventf(store v1.Store, involved v1.Resource, source, eventtype, reason, messageFmt string, args ...any) v1.Store {
	message := fmt.Sprintf(messageFmt, args...)
	now := r.options.Clock()
	lastSeen := now.UTC().Format(time.RFC3339)

	namespace := involved.Namespace
	if namespace == "" {
		namespace = v1.NamespaceDefault
	}
	if !store.HasNamespace(namespace) {
		return store
	}

	for _, existing := range store.OfType(v1.TypeEvent) {
		if existing.Namespace == namespace &&
			existing.MetaString(v1.MetaInvolvedID) == involved.ID &&
			existing.MetaString(v1.MetaReason) == reason &&
			existing.MetaString(v1.MetaMessage) == message {
			return store.Replace(existing.
				WithMeta(v1.MetaCount, existing.MetaIntOr(v1.MetaCount, 1)+1).
				WithMeta(v1.MetaLastSeen, lastSeen))
		}
	}

	event := v1.Resource{
		ID:        r.options.NextID(),
		Type:      v1.TypeEvent,
		Name:      fmt.Sprintf("%s.%s", involved.Name, r.options.Suffix()),
		Namespace: namespace,
		Metadata: map[string]any{
			v1.MetaEventType:      eventtype,
			v1.MetaReason:         reason,
			v1.MetaMessage:        message,
			v1.MetaInvolvedObject: involved.Type + "/" + involved.Name,
			v1.MetaInvolvedID:     involved.ID,
			v1.MetaSource:         source,
			v1.MetaCount:          1,
			v1.MetaLastSeen:       lastSeen,
		},
		CreatedAt: now,
	}
	return r.trim(store.Append(event))
}

// trim drops the oldest events beyond MaxEvents.
func (r *Recorder) trim(store v1.Store) v1.Store {
	if r.options.MaxEvents < 0 {
		return store
	}
	all := store.OfType(v1.TypeEvent)
	excess := len(all) - r.options.MaxEvents
	if excess <= 0 {
		return store
	}
	return store.Without(all[:excess].IDs()...)
}
