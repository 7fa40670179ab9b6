package handlers

import (
	"fmt"
	"maps"
	"strings"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/options"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// labelChange is one "key=value" or "key-" argument.
type labelChange struct {
	key    string
	value  string
	remove bool
}

func parseLabelChanges(args []string) ([]labelChange, []string, error) {
	var (
		changes []labelChange
		rest    []string
	)
	for _, arg := range args {
		switch {
		case strings.Contains(arg, "="):
			k, v, _ := strings.Cut(arg, "=")
			if k == "" {
				return nil, nil, fmt.Errorf("invalid label spec: %s", arg)
			}
			changes = append(changes, labelChange{key: k, value: v})
		case strings.HasSuffix(arg, "-") && len(arg) > 1 && len(rest) > 0:
			changes = append(changes, labelChange{key: strings.TrimSuffix(arg, "-"), remove: true})
		default:
			rest = append(rest, arg)
		}
	}
	return changes, rest, nil
}

// Label applies label changes left to right. key=value adds or overwrites,
// key- removes. --overwrite is accepted for kubectl compatibility.
func Label(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result) {
	if _, err := options.ParseLabelOptions(&args); err != nil {
		return store, Fail(err)
	}
	if err := flags.CheckUnknown(args); err != nil {
		return store, Fail(err)
	}
	changes, targetArgs, err := parseLabelChanges(args)
	if err != nil {
		return store, Fail(err)
	}
	if len(changes) == 0 {
		return store, Fail(fmt.Errorf("at least one label update is required"))
	}
	t, rest, err := options.ParseTarget(targetArgs)
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

	labels := maps.Clone(r.Labels)
	if labels == nil {
		labels = map[string]string{}
	}
	added := false
	for _, c := range changes {
		if c.remove {
			delete(labels, c.key)
			continue
		}
		labels[c.key] = c.value
		added = true
	}

	updated := r.WithLabels(labels)
	if err := ctx.validate(updated); err != nil {
		return store, Fail(err)
	}

	verb := "labeled"
	if !added {
		verb = "unlabeled"
	}
	result := Succeed("%s %s", config.QualifiedName(r.Name), verb)
	result.ResourcesUpdated = []v1.Resource{updated}
	return store.Replace(updated), result
}
