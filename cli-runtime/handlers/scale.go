package handlers

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/options"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Scale sets the replica count of a deployment, replicaset or statefulset.
// A deployment scales the pods of its replicaset; its replica metadata is
// updated even when it owns no replicaset.
func Scale(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result) {
	o, err := options.ParseScaleOptions(&args)
	if err != nil {
		return store, Fail(err)
	}
	if err := flags.CheckUnknown(args); err != nil {
		return store, Fail(err)
	}
	t, rest, err := options.ParseTarget(args)
	if err != nil {
		return store, Fail(err)
	}
	if len(rest) > 0 {
		return store, Fail(fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " ")))
	}
	config, err := ctx.Resolve(t.Type)
	if err != nil {
		return store, Fail(err)
	}
	r, ok := store.Find(config.Type, t.Name, namespace)
	if !ok {
		return store, Fail(notFound(config, t.Name))
	}

	var (
		next   = store
		result = Succeed("%s scaled", config.QualifiedName(r.Name))
	)
	switch r.Type {
	case v1.TypeDeployment:
		deployment := r.WithMeta(v1.MetaReplicas, o.Replicas)
		next = next.Replace(deployment)
		result.ResourcesUpdated = append(result.ResourcesUpdated, deployment)
		if rs, ok := ownedReplicaSet(next, deployment); ok {
			scaled := ctx.scaleOwnedPods(next, rs, o.Replicas)
			next = scaled.store
			result.ResourcesCreated = scaled.created
			result.ResourcesDeleted = scaled.deleted
			result.ResourcesUpdated = append(result.ResourcesUpdated, scaled.owner)
		}
	case v1.TypeReplicaSet, v1.TypeStatefulSet:
		scaled := ctx.scaleOwnedPods(next, r, o.Replicas)
		next = scaled.store
		result.ResourcesCreated = scaled.created
		result.ResourcesDeleted = scaled.deleted
		result.ResourcesUpdated = []v1.Resource{scaled.owner}
	default:
		return store, Fail(fmt.Errorf("cannot scale %s %q: only deployments, replicasets and statefulsets can be scaled", config.Plural, r.Name))
	}

	if err := ctx.validate(result.ResourcesUpdated...); err != nil {
		return store, Fail(err)
	}
	ctx.logger().Debug("scaled",
		zap.String("target", r.Key()),
		zap.Int("replicas", o.Replicas),
		zap.Int("created", len(result.ResourcesCreated)),
		zap.Int("deleted", len(result.ResourcesDeleted)))
	return next, result
}
