package handlers

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/builders"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/options"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

const (
	// LabelApp is set on every workload and the pods it owns.
	LabelApp = "app"
	// LabelPodTemplateHash ties a replicaset's pods to it.
	LabelPodTemplateHash = "pod-template-hash"

	podTemplateHashLength = 10
	podSuffixLength       = 5
)

// checkCreate verifies that a resource of the given config can be created:
// its namespace must exist and the name must be free.
func checkCreate(store v1.Store, config registry.ResourceConfig, name, namespace string) error {
	if config.Namespaced && !store.HasNamespace(namespace) {
		return namespaceNotFound(namespace)
	}
	if store.Exists(config.Type, name, namespace) {
		return alreadyExists(config, name)
	}
	return nil
}

// podTemplate describes the pods a workload stamps out.
type podTemplate struct {
	owner     string
	image     string
	port      int
	labels    map[string]string
	namespace string
	status    string
}

func templateOf(owner v1.Resource) podTemplate {
	return podTemplate{
		owner:     owner.ID,
		image:     owner.MetaString(v1.MetaImage),
		port:      owner.MetaIntOr(v1.MetaPort, 0),
		labels:    owner.Labels,
		namespace: owner.Namespace,
		status:    v1.StatusRunning,
	}
}

func (c *Context) newPod(name string, t podTemplate, node string) v1.Resource {
	status := t.status
	if status == "" {
		status = v1.StatusRunning
	}
	b := builders.NewResource(v1.TypePod, name).
		InNamespace(t.namespace).
		WithLabels(t.labels).
		WithMeta(v1.MetaImage, t.image).
		WithMeta(v1.MetaStatus, status).
		WithMeta(v1.MetaRestarts, 0).
		WithMeta(v1.MetaPodIP, c.podIP())
	if t.owner != "" {
		b.OwnedBy(t.owner)
	}
	if node != "" {
		b.WithMeta(v1.MetaNode, node)
	}
	if t.port > 0 {
		b.WithMeta(v1.MetaPort, t.port)
	}
	return b.Build(c.nextID(), c.now())
}

// nodeFor spreads pods over the nodes of the store round robin.
func nodeFor(store v1.Store, i int) string {
	nodes := store.OfType(v1.TypeNode)
	if len(nodes) == 0 {
		return ""
	}
	return nodes[i%len(nodes)].Name
}

func workloadLabels(name string, extra map[string]string) map[string]string {
	out := map[string]string{LabelApp: name}
	maps.Copy(out, extra)
	return out
}

// newDeployment builds the deployment, its single replicaset and the
// replicaset's pods. Pods are named "<replicaset>-<ordinal>" from 0.
func (c *Context) newDeployment(store v1.Store, name, namespace string, o *options.WorkloadOptions) []v1.Resource {
	now := c.now()
	labels := workloadLabels(name, o.Labels)

	db := builders.NewResource(v1.TypeDeployment, name).
		InNamespace(namespace).
		WithLabels(labels).
		WithMeta(v1.MetaImage, o.Image).
		WithMeta(v1.MetaReplicas, o.Replicas).
		WithMeta(v1.MetaRevision, 1).
		WithMeta(v1.MetaSelector, map[string]string{LabelApp: name})
	if o.HasPort {
		db.WithMeta(v1.MetaPort, o.Port)
	}
	deployment := db.Build(c.nextID(), now)

	hash := c.rand().String(podTemplateHashLength)
	rsb := builders.NewResource(v1.TypeReplicaSet, name+"-"+hash).
		InNamespace(namespace).
		WithLabels(labels).
		WithLabel(LabelPodTemplateHash, hash).
		OwnedBy(deployment.ID).
		WithMeta(v1.MetaImage, o.Image).
		WithMeta(v1.MetaReplicas, o.Replicas).
		WithMeta(v1.MetaNextOrdinal, o.Replicas)
	if o.HasPort {
		rsb.WithMeta(v1.MetaPort, o.Port)
	}
	rs := rsb.Build(c.nextID(), now)

	out := []v1.Resource{deployment, rs}
	template := templateOf(rs)
	for i := 0; i < o.Replicas; i++ {
		out = append(out, c.newPod(ordinalName(rs.Name, i), template, nodeFor(store, i)))
	}
	return out
}

// newStatefulSet builds a statefulset owning its pods "<name>-<ordinal>".
func (c *Context) newStatefulSet(store v1.Store, name, namespace string, o *options.WorkloadOptions) []v1.Resource {
	sb := builders.NewResource(v1.TypeStatefulSet, name).
		InNamespace(namespace).
		WithLabels(workloadLabels(name, o.Labels)).
		WithMeta(v1.MetaImage, o.Image).
		WithMeta(v1.MetaReplicas, o.Replicas).
		WithMeta(v1.MetaNextOrdinal, o.Replicas).
		WithMeta(v1.MetaSelector, map[string]string{LabelApp: name})
	if o.HasPort {
		sb.WithMeta(v1.MetaPort, o.Port)
	}
	sts := sb.Build(c.nextID(), c.now())

	out := []v1.Resource{sts}
	template := templateOf(sts)
	for i := 0; i < o.Replicas; i++ {
		out = append(out, c.newPod(ordinalName(name, i), template, nodeFor(store, i)))
	}
	return out
}

// newDaemonSet builds a daemonset with one pod per node, or a single pod in a
// store without nodes.
func (c *Context) newDaemonSet(store v1.Store, name, namespace string, o *options.WorkloadOptions) []v1.Resource {
	nodes := store.OfType(v1.TypeNode)
	count := max(len(nodes), 1)

	ds := builders.NewResource(v1.TypeDaemonSet, name).
		InNamespace(namespace).
		WithLabels(workloadLabels(name, o.Labels)).
		WithMeta(v1.MetaImage, o.Image).
		WithMeta(v1.MetaReplicas, count).
		WithMeta(v1.MetaSelector, map[string]string{LabelApp: name}).
		Build(c.nextID(), c.now())

	out := []v1.Resource{ds}
	template := templateOf(ds)
	for i := 0; i < count; i++ {
		out = append(out, c.newPod(name+"-"+c.rand().String(podSuffixLength), template, nodeFor(store, i)))
	}
	return out
}

// newJob builds a job and the single pod that ran it to completion.
func (c *Context) newJob(store v1.Store, name, namespace string, o *options.WorkloadOptions) []v1.Resource {
	job := builders.NewResource(v1.TypeJob, name).
		InNamespace(namespace).
		WithLabels(o.Labels).
		WithLabel("job-name", name).
		WithMeta(v1.MetaImage, o.Image).
		WithMeta(v1.MetaCompletions, 1).
		WithMeta(v1.MetaStatus, "Complete").
		Build(c.nextID(), c.now())

	template := templateOf(job)
	template.status = v1.StatusCompleted
	return []v1.Resource{job, c.newPod(name+"-"+c.rand().String(podSuffixLength), template, nodeFor(store, 0))}
}

func ordinalName(prefix string, ordinal int) string {
	return prefix + "-" + strconv.Itoa(ordinal)
}

// scaledPods is the outcome of resizing the pods owned by one workload.
type scaledPods struct {
	store   v1.Store
	owner   v1.Resource
	created []v1.Resource
	deleted []string
}

// scaleOwnedPods resizes the pods owned by owner to replicas. New pods get
// ordinals continuing after the highest ordinal the owner ever handed out,
// so a name is never reused; surplus pods are removed from the tail.
func (c *Context) scaleOwnedPods(store v1.Store, owner v1.Resource, replicas int) scaledPods {
	pods := store.OwnedOfType(owner.ID, v1.TypePod)
	out := scaledPods{store: store}

	switch {
	case replicas > len(pods):
		next := max(owner.MetaIntOr(v1.MetaNextOrdinal, len(pods)), len(pods))
		template := templateOf(owner)
		for i := len(pods); i < replicas; i++ {
			for store.Exists(v1.TypePod, ordinalName(owner.Name, next), owner.Namespace) {
				next++
			}
			pod := c.newPod(ordinalName(owner.Name, next), template, nodeFor(store, i))
			out.created = append(out.created, pod)
			next++
		}
		out.store = out.store.Append(out.created...)
		owner = owner.WithMeta(v1.MetaNextOrdinal, next)
	case replicas < len(pods):
		var ids []string
		for _, p := range pods[replicas:] {
			ids = append(ids, p.ID)
		}
		out.deleted = store.OwnershipClosure(ids...)
		out.store = out.store.Without(out.deleted...)
	}

	out.owner = owner.WithMeta(v1.MetaReplicas, replicas)
	out.store = out.store.Replace(out.owner)
	return out
}

// propagateImage sets image on root and every resource it transitively owns
// that carries an image.
func propagateImage(store v1.Store, root v1.Resource, image string) (v1.Store, []v1.Resource) {
	var ids []string
	for _, id := range store.OwnershipClosure(root.ID) {
		r, _ := store.Get(id)
		if _, ok := r.Metadata[v1.MetaImage]; ok {
			ids = append(ids, id)
		}
	}
	store = store.Update(ids, func(r v1.Resource) v1.Resource {
		r.Metadata[v1.MetaImage] = image
		return r
	})

	updated := make([]v1.Resource, 0, len(ids))
	for _, id := range ids {
		r, _ := store.Get(id)
		updated = append(updated, r)
	}
	return store, updated
}

// ownedReplicaSet returns the replicaset of a deployment.
func ownedReplicaSet(store v1.Store, deployment v1.Resource) (v1.Resource, bool) {
	sets := store.OwnedOfType(deployment.ID, v1.TypeReplicaSet)
	if len(sets) == 0 {
		return v1.Resource{}, false
	}
	return sets[0], true
}

func created(config registry.ResourceConfig, name string) string {
	return fmt.Sprintf("%s created", config.QualifiedName(name))
}
