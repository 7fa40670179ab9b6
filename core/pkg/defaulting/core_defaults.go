package defaulting

import (
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

const (
	// DefaultStorage is the size of volumes and claims created without one.
	DefaultStorage = "1Gi"

	statusPending = "Pending"
	secretOpaque  = "Opaque"
	clusterIP     = "ClusterIP"
)

// CoreDefaults returns the static defaults of the built-in types.
func CoreDefaults() []*ObjectDefaults {
	image := DefaultValue{Key: v1.MetaImage, Value: v1.DefaultImage}
	replicas := DefaultValue{Key: v1.MetaReplicas, Value: 1}

	return []*ObjectDefaults{
		{Type: v1.TypePod, Defaults: []DefaultValue{
			image,
			{Key: v1.MetaStatus, Value: v1.StatusRunning},
			{Key: v1.MetaRestarts, Value: 0},
		}},
		{Type: v1.TypeDeployment, Defaults: []DefaultValue{image, replicas}},
		{Type: v1.TypeReplicaSet, Defaults: []DefaultValue{image, replicas}},
		{Type: v1.TypeStatefulSet, Defaults: []DefaultValue{image, replicas}},
		{Type: v1.TypeDaemonSet, Defaults: []DefaultValue{image}},
		{Type: v1.TypeCronJob, Defaults: []DefaultValue{image}},
		{Type: v1.TypeJob, Defaults: []DefaultValue{image, {Key: v1.MetaCompletions, Value: 1}}},
		{Type: v1.TypeService, Defaults: []DefaultValue{{Key: v1.MetaServiceType, Value: clusterIP}}},
		{Type: v1.TypePersistentVolumeClaim, Defaults: []DefaultValue{
			{Key: v1.MetaStatus, Value: statusPending},
			{Key: v1.MetaStorage, Value: DefaultStorage},
		}},
		{Type: v1.TypePersistentVolume, Defaults: []DefaultValue{
			{Key: v1.MetaStatus, Value: v1.StatusAvailable},
			{Key: v1.MetaCapacity, Value: DefaultStorage},
		}},
		{Type: v1.TypeNamespace, Defaults: []DefaultValue{{Key: v1.MetaStatus, Value: v1.StatusActive}}},
		{Type: v1.TypeSecret, Defaults: []DefaultValue{{Key: v1.MetaSecretType, Value: secretOpaque}}},
	}
}
