// Package events records what the simulated controllers would have reported
// for a command: pods being scheduled and killed, replicasets scaling. Events
// are ordinary resources of type v1.TypeEvent in the namespace of the object
// they are about, so "get events" lists them like anything else.
package events

import (
	"time"

	corev1 "k8s.io/api/core/v1"
)

// Event types
const (
	// EventTypeNormal represents normal, informational events
	EventTypeNormal = corev1.EventTypeNormal

	// EventTypeWarning represents events that indicate problems or issues
	EventTypeWarning = corev1.EventTypeWarning
)

// Event reasons as reported by the kubernetes controllers and the kubelet.
const (
	ReasonScheduled         = "Scheduled"
	ReasonPulled            = "Pulled"
	ReasonKilling           = "Killing"
	ReasonSuccessfulCreate  = "SuccessfulCreate"
	ReasonSuccessfulDelete  = "SuccessfulDelete"
	ReasonScalingReplicaSet = "ScalingReplicaSet"
	ReasonCompleted         = "Completed"
)

// Reporting components.
const (
	SourceScheduler             = "default-scheduler"
	SourceKubelet               = "kubelet"
	SourceReplicaSetController  = "replicaset-controller"
	SourceDeploymentController  = "deployment-controller"
	SourceStatefulSetController = "statefulset-controller"
	SourceDaemonSetController   = "daemonset-controller"
	SourceJobController         = "job-controller"
)

// DefaultMaxEvents bounds the number of events kept in a store.
const DefaultMaxEvents = 500

// RecorderOptions provides configuration options for creating a Recorder
type RecorderOptions struct {
	// NextID generates the ids of new events
	NextID func() string

	// Clock stamps first and last seen times
	Clock func() time.Time

	// Suffix generates the random part of event names
	Suffix func() string

	// MaxEvents is the number of events kept per store; the oldest are
	// dropped first. Zero means DefaultMaxEvents, negative means no limit.
	MaxEvents int
}
