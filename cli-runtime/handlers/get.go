package handlers

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/builders"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/options"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/printers"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

func (c *Context) printerOptions(store v1.Store) *printers.PrinterOptions {
	return &printers.PrinterOptions{
		Now:      c.now,
		Registry: c.Registry,
		Store:    store,
	}
}

// getRequest is the parsed positional part of a get command.
type getRequest struct {
	configs []registry.ResourceConfig
	names   []string
	// pairs restricts the result to exact type/name pairs given in
	// TYPE/NAME form
	pairs []target
}

func (r getRequest) types() []string {
	out := make([]string, 0, len(r.configs))
	for _, c := range r.configs {
		out = append(out, c.Type)
	}
	return out
}

// parseGet resolves "TYPE[,TYPE...] [NAME...]" or "TYPE/NAME...". The type
// "all" expands to every type in the all category.
func (c *Context) parseGet(args []string) (getRequest, error) {
	if strings.Contains(args[0], "/") {
		pairs, err := c.resolveTargets(args)
		if err != nil {
			return getRequest{}, err
		}
		req := getRequest{pairs: pairs}
		for _, p := range pairs {
			if !slices.ContainsFunc(req.configs, func(rc registry.ResourceConfig) bool { return rc.Type == p.config.Type }) {
				req.configs = append(req.configs, p.config)
			}
		}
		return req, nil
	}

	var req getRequest
	for _, token := range strings.Split(args[0], ",") {
		if token == registry.CategoryAll && c.Registry != nil {
			for _, t := range c.Registry.GetTypesForCategory(registry.CategoryAll) {
				req.configs = append(req.configs, c.Config(t))
			}
			continue
		}
		config, err := c.Resolve(token)
		if err != nil {
			return getRequest{}, err
		}
		req.configs = append(req.configs, config)
	}
	req.names = args[1:]
	return req, nil
}

// Get lists resources as a table or in the format chosen with -o.
func Get(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result) {
	o, err := options.ParseGetOptions(&args)
	if err != nil {
		return store, Fail(err)
	}
	if err := flags.CheckUnknown(args); err != nil {
		return store, Fail(err)
	}
	if len(args) == 0 {
		return store, Fail(fmt.Errorf(`you must specify the type of resource to get. Use "kubectl api-resources" for a complete list of supported resources`))
	}
	req, err := ctx.parseGet(args)
	if err != nil {
		return store, Fail(err)
	}

	selector := builders.NewResourceSelector().
		ForType(req.types()...).
		WithLabels(o.Selector).
		WithFields(o.FieldSelector)
	if o.AllNamespaces {
		selector.InAllNamespaces()
	} else {
		selector.InNamespace(namespace)
	}
	names := req.names
	for _, p := range req.pairs {
		names = append(names, p.name)
	}
	if len(names) > 0 {
		selector.WithNames(names...)
	}

	found := selector.Select(store)
	if len(req.pairs) > 0 {
		found = found.Filter(func(r v1.Resource) bool {
			return slices.ContainsFunc(req.pairs, func(p target) bool {
				return p.config.Type == r.Type && p.name == r.Name
			})
		})
		for _, p := range req.pairs {
			if !slices.ContainsFunc(found, func(r v1.Resource) bool { return r.Type == p.config.Type && r.Name == p.name }) {
				return store, Fail(notFound(p.config, p.name))
			}
		}
	}
	for _, name := range req.names {
		if !slices.ContainsFunc(found, func(r v1.Resource) bool { return r.Name == name }) {
			return store, Fail(notFound(req.configs[0], name))
		}
	}

	if len(found) == 0 {
		if o.AllNamespaces || !slices.ContainsFunc(req.configs, func(c registry.ResourceConfig) bool { return c.Namespaced }) {
			return store, Succeed("No resources found")
		}
		return store, Succeed("No resources found in %s namespace.", namespace)
	}

	// Multi-type listings are grouped in the order the types were requested.
	if len(req.configs) > 1 {
		order := req.types()
		slices.SortStableFunc(found, func(a, b v1.Resource) int {
			return slices.Index(order, a.Type) - slices.Index(order, b.Type)
		})
	}

	popts := ctx.printerOptions(store)
	popts.ShowLabels = o.ShowLabels
	popts.AllNamespaces = o.AllNamespaces
	printer, err := printers.NewPrinterFactory(popts).NewPrinter(o.Output)
	if err != nil {
		return store, Fail(err)
	}
	out, err := printers.Sprint(printer, found)
	if err != nil {
		return store, Fail(err)
	}
	return store, Succeed("%s", out)
}

// Describe prints a detailed report of one or more resources. Without a name
// every resource of the type in the namespace is described.
func Describe(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result) {
	if err := flags.CheckUnknown(args); err != nil {
		return store, Fail(err)
	}
	if len(args) == 0 {
		return store, Fail(errResourceType)
	}

	var found v1.Store
	if !strings.Contains(args[0], "/") && len(args) == 1 {
		config, err := ctx.Resolve(args[0])
		if err != nil {
			return store, Fail(err)
		}
		found = builders.NewResourceSelector().ForType(config.Type).InNamespace(namespace).Select(store)
		if len(found) == 0 {
			return store, Fail(fmt.Errorf("no resources found in %s namespace", namespace))
		}
	} else {
		targets, err := ctx.resolveTargets(args)
		if err != nil {
			return store, Fail(err)
		}
		for _, t := range targets {
			r, ok := store.Find(t.config.Type, t.name, namespace)
			if !ok {
				return store, Fail(notFound(t.config, t.name))
			}
			found = append(found, r)
		}
	}

	out, err := printers.Sprint(printers.NewDescribePrinter(ctx.printerOptions(store)), found)
	if err != nil {
		return store, Fail(err)
	}
	return store, Succeed("%s", out)
}
