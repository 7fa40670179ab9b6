package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/options"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/printers"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

type rolloutAction func(ctx *Context, store v1.Store, config registry.ResourceConfig, deployment v1.Resource) (v1.Store, Result)

var rolloutActions = map[string]rolloutAction{
	"status":  rolloutStatus,
	"history": rolloutHistory,
	"undo":    rolloutUndo,
	"restart": rolloutRestart,
}

// Rollout handles "rollout status|history|undo|restart deployment/NAME".
func Rollout(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result) {
	if err := flags.CheckUnknown(args); err != nil {
		return store, Fail(err)
	}
	if len(args) == 0 {
		return store, Fail(fmt.Errorf("rollout requires a subcommand: history, restart, status, undo"))
	}
	action, ok := rolloutActions[args[0]]
	if !ok {
		return store, Fail(fmt.Errorf("unknown rollout subcommand %q, expected one of: history, restart, status, undo", args[0]))
	}

	config, deployment, err := ctx.findDeployment(store, args[1:], namespace, "rollout "+args[0])
	if err != nil {
		return store, Fail(err)
	}
	return action(ctx, store, config, deployment)
}

// findDeployment resolves the single deployment target of a rollout or set
// command.
func (c *Context) findDeployment(store v1.Store, args []string, namespace, command string) (registry.ResourceConfig, v1.Resource, error) {
	t, rest, err := options.ParseTarget(args)
	if err != nil {
		return registry.ResourceConfig{}, v1.Resource{}, err
	}
	if len(rest) > 0 {
		return registry.ResourceConfig{}, v1.Resource{}, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	config, err := c.Resolve(t.Type)
	if err != nil {
		return registry.ResourceConfig{}, v1.Resource{}, err
	}
	if config.Type != v1.TypeDeployment {
		return registry.ResourceConfig{}, v1.Resource{}, fmt.Errorf("%s is only supported for deployments, got %s", command, config.Plural)
	}
	r, ok := store.Find(config.Type, t.Name, namespace)
	if !ok {
		return registry.ResourceConfig{}, v1.Resource{}, notFound(config, t.Name)
	}
	return config, r, nil
}

func rolloutStatus(ctx *Context, store v1.Store, _ registry.ResourceConfig, deployment v1.Resource) (v1.Store, Result) {
	replicas := deployment.MetaIntOr(v1.MetaReplicas, 1)
	ready := 0
	if rs, ok := ownedReplicaSet(store, deployment); ok {
		for _, p := range store.OwnedOfType(rs.ID, v1.TypePod) {
			if p.MetaString(v1.MetaStatus) == v1.StatusRunning {
				ready++
			}
		}
	}
	revision := deployment.MetaIntOr(v1.MetaRevision, 1)
	if ready < replicas {
		return store, Succeed("Waiting for deployment %q rollout to finish: %d of %d updated replicas are available...\nrevision: %d, replicas: %d/%d ready",
			deployment.Name, ready, replicas, revision, ready, replicas)
	}
	return store, Succeed("deployment %q successfully rolled out\nrevision: %d, replicas: %d/%d ready",
		deployment.Name, revision, ready, replicas)
}

func rolloutHistory(ctx *Context, store v1.Store, _ registry.ResourceConfig, deployment v1.Resource) (v1.Store, Result) {
	out, err := printers.Sprint(printers.NewHistoryPrinter(ctx.printerOptions(store)), v1.Store{deployment})
	if err != nil {
		return store, Fail(err)
	}
	return store, Succeed("%s", out)
}

// rolloutUndo rolls back to the image sentinel v1.PreviousImage. A
// deployment still at its first revision has nothing to roll back to.
func rolloutUndo(ctx *Context, store v1.Store, config registry.ResourceConfig, deployment v1.Resource) (v1.Store, Result) {
	revision := deployment.MetaIntOr(v1.MetaRevision, 1)
	if revision <= 1 {
		return store, Fail(fmt.Errorf("no rollout history found for deployment %q", deployment.Name))
	}
	next, updated := ctx.updateImage(store, deployment, v1.PreviousImage)
	result := Succeed("%s rolled back", config.QualifiedName(deployment.Name))
	result.ResourcesUpdated = updated
	return next, result
}

// rolloutRestart bumps the revision and refreshes the creation time of every
// pod, keeping their ids and names.
func rolloutRestart(ctx *Context, store v1.Store, config registry.ResourceConfig, deployment v1.Resource) (v1.Store, Result) {
	now := ctx.now()
	deployment = deployment.
		WithMeta(v1.MetaRevision, deployment.MetaIntOr(v1.MetaRevision, 1)+1).
		WithMeta(v1.MetaRestartedAt, now.UTC().Format(time.RFC3339))
	next := store.Replace(deployment)

	var podIDs []string
	for _, id := range next.OwnershipClosure(deployment.ID) {
		if r, _ := next.Get(id); r.Type == v1.TypePod {
			podIDs = append(podIDs, id)
		}
	}
	next = next.Update(podIDs, func(r v1.Resource) v1.Resource {
		r.CreatedAt = now
		return r
	})

	result := Succeed("%s restarted", config.QualifiedName(deployment.Name))
	result.ResourcesUpdated = []v1.Resource{deployment}
	for _, id := range podIDs {
		r, _ := next.Get(id)
		result.ResourcesUpdated = append(result.ResourcesUpdated, r)
	}
	return next, result
}

// updateImage bumps the deployment revision and pushes image down to its
// replicaset and pods.
func (c *Context) updateImage(store v1.Store, deployment v1.Resource, image string) (v1.Store, []v1.Resource) {
	deployment = deployment.WithMeta(v1.MetaRevision, deployment.MetaIntOr(v1.MetaRevision, 1)+1)
	return propagateImage(store.Replace(deployment), deployment, image)
}

// SetImage handles "set image deployment/NAME container=image".
func SetImage(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result) {
	if err := flags.CheckUnknown(args); err != nil {
		return store, Fail(err)
	}
	if len(args) == 0 || args[0] != "image" {
		return store, Fail(fmt.Errorf("set requires the image subcommand: set image deployment/NAME CONTAINER=IMAGE"))
	}
	args = args[1:]

	var (
		targetArgs []string
		image      string
		hasImage   bool
	)
	for _, arg := range args {
		if _, img, found := strings.Cut(arg, "="); found {
			image, hasImage = img, true
			continue
		}
		targetArgs = append(targetArgs, arg)
	}
	if !hasImage {
		return store, Fail(fmt.Errorf("at least one image update is required"))
	}
	if image == "" {
		return store, Fail(fmt.Errorf("image must not be empty"))
	}

	config, deployment, err := ctx.findDeployment(store, targetArgs, namespace, "set image")
	if err != nil {
		return store, Fail(err)
	}
	next, updated := ctx.updateImage(store, deployment, image)
	if err := ctx.validate(updated...); err != nil {
		return store, Fail(err)
	}
	result := Succeed("%s image updated", config.QualifiedName(deployment.Name))
	result.ResourcesUpdated = updated
	return next, result
}
