package registry

import (
	"fmt"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

const (
	// CategoryAll is the category expanded by "get all".
	CategoryAll = "all"

	groupApps       = "apps"
	groupBatch      = "batch"
	groupNetworking = "networking.k8s.io"
	groupRBAC       = "rbac.authorization.k8s.io"
)

// coreResources lists the built-in types in the order "api-resources" and
// "get all" present them.
var coreResources = []ResourceConfig{
	{Type: v1.TypePod, Singular: "pod", Plural: "pods", Kind: "Pod", ShortNames: []string{"po"}, Namespaced: true, Categories: []string{CategoryAll}},
	{Type: v1.TypeService, Singular: "service", Plural: "services", Kind: "Service", ShortNames: []string{"svc"}, Namespaced: true, Categories: []string{CategoryAll}},
	{Type: v1.TypeDaemonSet, Singular: "daemonset", Plural: "daemonsets", Kind: "DaemonSet", Group: groupApps, ShortNames: []string{"ds"}, Namespaced: true, Categories: []string{CategoryAll}},
	{Type: v1.TypeDeployment, Singular: "deployment", Plural: "deployments", Kind: "Deployment", Group: groupApps, ShortNames: []string{"deploy"}, Namespaced: true, Categories: []string{CategoryAll}},
	{Type: v1.TypeReplicaSet, Singular: "replicaset", Plural: "replicasets", Kind: "ReplicaSet", Group: groupApps, ShortNames: []string{"rs"}, Namespaced: true, Categories: []string{CategoryAll}},
	{Type: v1.TypeStatefulSet, Singular: "statefulset", Plural: "statefulsets", Kind: "StatefulSet", Group: groupApps, ShortNames: []string{"sts"}, Namespaced: true, Categories: []string{CategoryAll}},
	{Type: v1.TypeJob, Singular: "job", Plural: "jobs", Kind: "Job", Group: groupBatch, Namespaced: true, Categories: []string{CategoryAll}},
	{Type: v1.TypeCronJob, Singular: "cronjob", Plural: "cronjobs", Kind: "CronJob", Group: groupBatch, ShortNames: []string{"cj"}, Namespaced: true, Categories: []string{CategoryAll}},
	{Type: v1.TypeNamespace, Singular: "namespace", Plural: "namespaces", Kind: "Namespace", ShortNames: []string{"ns"}},
	{Type: v1.TypeNode, Singular: "node", Plural: "nodes", Kind: "Node", ShortNames: []string{"no"}},
	{Type: v1.TypeConfigMap, Singular: "configmap", Plural: "configmaps", Kind: "ConfigMap", ShortNames: []string{"cm"}, Namespaced: true},
	{Type: v1.TypeSecret, Singular: "secret", Plural: "secrets", Kind: "Secret", Namespaced: true},
	{Type: v1.TypeServiceAccount, Singular: "serviceaccount", Plural: "serviceaccounts", Kind: "ServiceAccount", ShortNames: []string{"sa"}, Namespaced: true},
	{Type: v1.TypeIngress, Singular: "ingress", Plural: "ingresses", Kind: "Ingress", Group: groupNetworking, ShortNames: []string{"ing"}, Namespaced: true},
	{Type: v1.TypeNetworkPolicy, Singular: "networkpolicy", Plural: "networkpolicies", Kind: "NetworkPolicy", Group: groupNetworking, ShortNames: []string{"netpol"}, Namespaced: true},
	{Type: v1.TypePersistentVolume, Singular: "persistentvolume", Plural: "persistentvolumes", Kind: "PersistentVolume", ShortNames: []string{"pv"}},
	{Type: v1.TypePersistentVolumeClaim, Singular: "persistentvolumeclaim", Plural: "persistentvolumeclaims", Kind: "PersistentVolumeClaim", ShortNames: []string{"pvc"}, Namespaced: true},
	{Type: v1.TypeRole, Singular: "role", Plural: "roles", Kind: "Role", Group: groupRBAC, Namespaced: true},
	{Type: v1.TypeClusterRole, Singular: "clusterrole", Plural: "clusterroles", Kind: "ClusterRole", Group: groupRBAC},
	{Type: v1.TypeRoleBinding, Singular: "rolebinding", Plural: "rolebindings", Kind: "RoleBinding", Group: groupRBAC, Namespaced: true},
	{Type: v1.TypeClusterRoleBinding, Singular: "clusterrolebinding", Plural: "clusterrolebindings", Kind: "ClusterRoleBinding", Group: groupRBAC},
	{Type: v1.TypeEvent, Singular: "event", Plural: "events", Kind: "Event", ShortNames: []string{"ev"}, Namespaced: true},
}

// RegisterCoreResources registers every built-in resource type with the given
// registry.
func RegisterCoreResources(registry Registry) error {
	for _, config := range coreResources {
		config.Description = getResourceDescription(config.Kind)
		if err := registry.RegisterResource(config); err != nil {
			return fmt.Errorf("failed to register core resource %s: %w", config.Kind, err)
		}
	}
	return nil
}

// NewCoreRegistry returns a registry preloaded with the built-in types.
func NewCoreRegistry(opts ...RegistryOption) (Registry, error) {
	reg := NewRegistry(opts...)
	if err := RegisterCoreResources(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// getResourceDescription returns a human-readable description for core resources.
func getResourceDescription(kind string) string {
	descriptions := map[string]string{
		"Pod":                   "Smallest deployable unit, runs one or more containers",
		"Service":               "Stable network endpoint in front of a set of pods",
		"Deployment":            "Declarative updates for pods through a replicaset",
		"ReplicaSet":            "Keeps a stable number of identical pods running",
		"StatefulSet":           "Pods with stable, ordinal identities",
		"DaemonSet":             "Runs one pod on every node",
		"Job":                   "Runs pods to completion",
		"CronJob":               "Runs jobs on a schedule",
		"Namespace":             "Provides multi-tenancy and resource organization",
		"Node":                  "A worker machine in the cluster",
		"ConfigMap":             "Holds non-sensitive configuration data in key-value pairs",
		"Secret":                "Holds sensitive data such as passwords, OAuth tokens, and ssh keys",
		"ServiceAccount":        "Provides identity for processes that run in pods",
		"Ingress":               "HTTP routing from outside the cluster to services",
		"NetworkPolicy":         "Controls which pods may talk to each other",
		"PersistentVolume":      "A piece of storage provisioned in the cluster",
		"PersistentVolumeClaim": "A request for storage by a user",
	}

	if desc, exists := descriptions[kind]; exists {
		return desc
	}
	return fmt.Sprintf("Core Kubernetes resource: %s", kind)
}
