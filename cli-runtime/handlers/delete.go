package handlers

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// protectedNamespaces can never be deleted.
var protectedNamespaces = sets.New(v1.NamespaceDefault, v1.NamespaceKubeSystem, v1.NamespaceKubePublic)

// target is a resolved command line resource reference.
type target struct {
	config registry.ResourceConfig
	name   string
}

// resolveTargets parses "TYPE NAME [NAME...]" or "TYPE/NAME [TYPE/NAME...]".
func (c *Context) resolveTargets(args []string) ([]target, error) {
	if len(args) == 0 {
		return nil, errResourceType
	}

	if strings.Contains(args[0], "/") {
		targets := make([]target, 0, len(args))
		for _, arg := range args {
			t, n, found := strings.Cut(arg, "/")
			if !found || t == "" || n == "" {
				return nil, fmt.Errorf("arguments in resource/name form must have a single resource and name")
			}
			config, err := c.Resolve(t)
			if err != nil {
				return nil, err
			}
			targets = append(targets, target{config: config, name: n})
		}
		return targets, nil
	}

	config, err := c.Resolve(args[0])
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("resource(s) were provided, but no name was specified")
	}
	targets := make([]target, 0, len(args)-1)
	for _, name := range args[1:] {
		targets = append(targets, target{config: config, name: name})
	}
	return targets, nil
}

// Delete removes the named resources and, transitively, everything they own.
// Deleting a namespace also deletes every resource inside it. Either every
// target is deleted or none is.
func Delete(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result) {
	if err := flags.CheckUnknown(args); err != nil {
		return store, Fail(err)
	}
	targets, err := ctx.resolveTargets(args)
	if err != nil {
		return store, Fail(err)
	}

	var (
		roots    []string
		messages []string
	)
	for _, t := range targets {
		r, ok := store.Find(t.config.Type, t.name, namespace)
		if !ok {
			return store, Fail(notFound(t.config, t.name))
		}
		if r.Type == v1.TypeNamespace {
			if protectedNamespaces.Has(r.Name) {
				return store, Fail(apierrors.NewForbidden(t.config.GroupResource(), r.Name,
					fmt.Errorf("this namespace may not be deleted")))
			}
			for _, member := range store {
				if member.Namespace == r.Name && !v1.IsClusterScoped(member.Type) {
					roots = append(roots, member.ID)
				}
			}
		}
		roots = append(roots, r.ID)
		messages = append(messages, fmt.Sprintf("%s %q deleted", qualifiedKind(t.config), r.Name))
	}

	deleted := store.OwnershipClosure(roots...)
	ctx.logger().Debug("cascading delete",
		zap.Strings("roots", roots),
		zap.Int("deleted", len(deleted)))

	result := Succeed("%s", strings.Join(messages, "\n"))
	result.ResourcesDeleted = deleted
	return store.Without(deleted...), result
}

// qualifiedKind renders "deployment.apps" or "pod" for delete messages.
func qualifiedKind(config registry.ResourceConfig) string {
	if config.Group == "" {
		return config.Singular
	}
	return config.Singular + "." + config.Group
}
