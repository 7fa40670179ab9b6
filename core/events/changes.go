package events

import (
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// podControllers maps the types that own pods to the controller reporting
// for them.
var podControllers = map[string]string{
	v1.TypeReplicaSet:  SourceReplicaSetController,
	v1.TypeStatefulSet: SourceStatefulSetController,
	v1.TypeDaemonSet:   SourceDaemonSetController,
	v1.TypeJob:         SourceJobController,
}

// RecordChanges derives the events of a successful command from the
// resources it created, deleted and updated. before is the store the
// command ran against, after the store it produced.
func (r *Recorder) RecordChanges(before, after v1.Store, created []v1.Resource, deleted []string, updated []v1.Resource) v1.Store {
	store := after
	for _, c := range created {
		store = r.created(store, c)
	}
	for _, id := range deleted {
		if old, ok := before.Get(id); ok {
			store = r.deleted(store, old)
		}
	}
	for _, u := range updated {
		if old, ok := before.Get(u.ID); ok {
			store = r.updated(store, old, u)
		}
	}
	return store
}

func (r *Recorder) created(store v1.Store, c v1.Resource) v1.Store {
	owner, hasOwner := store.Get(c.ManagedBy())

	switch c.Type {
	case v1.TypePod:
		if node := c.MetaString(v1.MetaNode); node != "" {
			store = r.Eventf(store, c, SourceScheduler, EventTypeNormal, ReasonScheduled,
				"Successfully assigned %s/%s to %s", c.Namespace, c.Name, node)
		}
		store = r.Eventf(store, c, SourceKubelet, EventTypeNormal, ReasonPulled,
			"Container image %q already present on machine", c.MetaString(v1.MetaImage))
		if !hasOwner {
			break
		}
		if source, ok := podControllers[owner.Type]; ok {
			store = r.Eventf(store, owner, source, EventTypeNormal, ReasonSuccessfulCreate, "Created pod: %s", c.Name)
		}
		if owner.Type == v1.TypeJob && c.MetaString(v1.MetaStatus) == v1.StatusCompleted {
			store = r.Eventf(store, owner, SourceJobController, EventTypeNormal, ReasonCompleted, "Job completed")
		}

	case v1.TypeReplicaSet:
		if hasOwner && owner.Type == v1.TypeDeployment {
			store = r.Eventf(store, owner, SourceDeploymentController, EventTypeNormal, ReasonScalingReplicaSet,
				"Scaled up replica set %s to %d", c.Name, c.MetaIntOr(v1.MetaReplicas, 1))
		}
	}
	return store
}

func (r *Recorder) deleted(store v1.Store, old v1.Resource) v1.Store {
	if old.Type != v1.TypePod {
		return store
	}
	container := old.Labels["app"]
	if container == "" {
		container = old.Name
	}
	store = r.Eventf(store, old, SourceKubelet, EventTypeNormal, ReasonKilling, "Stopping container %s", container)

	if owner, ok := store.Get(old.ManagedBy()); ok {
		if source, ok := podControllers[owner.Type]; ok {
			store = r.Eventf(store, owner, source, EventTypeNormal, ReasonSuccessfulDelete, "Deleted pod: %s", old.Name)
		}
	}
	return store
}

func (r *Recorder) updated(store v1.Store, old, u v1.Resource) v1.Store {
	if u.Type != v1.TypeDeployment {
		return store
	}
	from, to := old.MetaIntOr(v1.MetaReplicas, 1), u.MetaIntOr(v1.MetaReplicas, 1)
	if from == to {
		return store
	}
	sets := store.OwnedOfType(u.ID, v1.TypeReplicaSet)
	if len(sets) == 0 {
		return store
	}
	direction := "up"
	if to < from {
		direction = "down"
	}
	return r.Eventf(store, u, SourceDeploymentController, EventTypeNormal, ReasonScalingReplicaSet,
		"Scaled %s replica set %s to %d", direction, sets[0].Name, to)
}
