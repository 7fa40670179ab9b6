// Package v1 defines the resource record of the simulated cluster and the
// ordered store that holds them.
package v1

import (
	corev1 "k8s.io/api/core/v1"
)

// Type tags of the built-in resource kinds. The set is open: any other string
// is a valid Type as long as a handler knows how to create it.
const (
	TypePod                   = "pod"
	TypeDeployment            = "deployment"
	TypeReplicaSet            = "replicaset"
	TypeService               = "service"
	TypeNamespace             = "namespace"
	TypeConfigMap             = "configmap"
	TypeSecret                = "secret"
	TypeIngress               = "ingress"
	TypeNode                  = "node"
	TypePersistentVolume      = "persistentvolume"
	TypePersistentVolumeClaim = "persistentvolumeclaim"
	TypeServiceAccount        = "serviceaccount"
	TypeRole                  = "role"
	TypeClusterRole           = "clusterrole"
	TypeRoleBinding           = "rolebinding"
	TypeClusterRoleBinding    = "clusterrolebinding"
	TypeNetworkPolicy         = "networkpolicy"
	TypeJob                   = "job"
	TypeCronJob               = "cronjob"
	TypeStatefulSet           = "statefulset"
	TypeDaemonSet             = "daemonset"
	TypeEvent                 = "event"
)

// Metadata keys understood by the handlers and printers.
const (
	MetaManagedBy    = "managedBy"
	MetaImage        = "image"
	MetaReplicas     = "replicas"
	MetaRevision     = "revision"
	MetaStatus       = "status"
	MetaRestarts     = "restarts"
	MetaNode         = "node"
	MetaPodIP        = "podIP"
	MetaPort         = "port"
	MetaTargetPort   = "targetPort"
	MetaServiceType  = "serviceType"
	MetaClusterIP    = "clusterIP"
	MetaNodePort     = "nodePort"
	MetaExternalIP   = "externalIP"
	MetaExternalName = "externalName"
	MetaSelector     = "selector"
	MetaExposes      = "exposes"
	MetaTaints       = "taints"
	MetaRoles        = "roles"
	MetaVersion      = "version"
	MetaData         = "data"
	MetaSecretType   = "secretType"
	MetaSchedule     = "schedule"
	MetaRestartedAt  = "restartedAt"
	MetaNextOrdinal  = "nextOrdinal"
	MetaCapacity     = "capacity"
	MetaStorage      = "storage"
	MetaVolume       = "volume"
	MetaClaim        = "claim"
	MetaVerbs        = "verbs"
	MetaResources    = "resources"
	MetaRoleRef      = "roleRef"
	MetaSubjects     = "subjects"
	MetaRules        = "rules"
	MetaPodSelector  = "podSelector"
	MetaCompletions  = "completions"
	MetaInternalIP   = "internalIP"

	MetaEventType      = "eventType"
	MetaReason         = "reason"
	MetaMessage        = "message"
	MetaInvolvedObject = "involvedObject"
	MetaInvolvedID     = "involvedID"
	MetaCount          = "count"
	MetaLastSeen       = "lastSeen"
	MetaSource         = "source"
)

// Well known values.
const (
	NamespaceDefault    = "default"
	NamespaceKubeSystem = "kube-system"
	NamespaceKubePublic = "kube-public"

	DefaultImage = "nginx"

	// PreviousImage is the image a rollout undo switches a deployment to.
	PreviousImage = "previous"

	StatusRunning   = string(corev1.PodRunning)
	StatusCompleted = "Completed"
	StatusActive    = string(corev1.NamespaceActive)
	StatusReady     = string(corev1.NodeReady)
	StatusBound     = string(corev1.ClaimBound)
	StatusAvailable = string(corev1.VolumeAvailable)

	KubeletVersion = "v1.30.0"

	// ServerVersion is what "version" reports for the simulated server.
	ServerVersion = "v1.30.0"
)

var clusterScoped = map[string]bool{
	TypeNamespace:          true,
	TypeNode:               true,
	TypePersistentVolume:   true,
	TypeClusterRole:        true,
	TypeClusterRoleBinding: true,
}

// IsClusterScoped reports whether resources of the given type live outside
// any namespace.
func IsClusterScoped(resourceType string) bool {
	return clusterScoped[resourceType]
}

// ScopedNamespace returns the namespace a resource of the given type is
// stored under when the caller asked for namespace.
func ScopedNamespace(resourceType, namespace string) string {
	if IsClusterScoped(resourceType) {
		return ""
	}
	if namespace == "" {
		return NamespaceDefault
	}
	return namespace
}
