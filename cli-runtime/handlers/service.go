package handlers

import (
	"fmt"
	"maps"
	"strings"

	corev1 "k8s.io/api/core/v1"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/builders"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/options"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

var serviceTypes = map[string]corev1.ServiceType{
	"clusterip":    corev1.ServiceTypeClusterIP,
	"nodeport":     corev1.ServiceTypeNodePort,
	"loadbalancer": corev1.ServiceTypeLoadBalancer,
	"externalname": corev1.ServiceTypeExternalName,
}

// ParseServiceType accepts both the create subcommand form ("nodeport") and
// the API form ("NodePort").
func ParseServiceType(s string) (corev1.ServiceType, error) {
	t, ok := serviceTypes[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("unsupported service type %q, supported types: clusterip, externalname, loadbalancer, nodeport", s)
	}
	return t, nil
}

// newService builds a service of the given type. NodePort and LoadBalancer
// services get a port in the node port range; LoadBalancer services also get
// an external address; ExternalName services only record the DNS name.
func (c *Context) newService(name, namespace string, serviceType corev1.ServiceType, o *options.ServiceOptions, selector, labels map[string]string) (v1.Resource, error) {
	b := builders.NewResource(v1.TypeService, name).
		InNamespace(namespace).
		WithLabels(labels).
		WithMeta(v1.MetaServiceType, string(serviceType))

	if serviceType == corev1.ServiceTypeExternalName {
		if o.ExternalName == "" {
			return v1.Resource{}, fmt.Errorf(`required flag(s) "external-name" not set`)
		}
		b.WithMeta(v1.MetaExternalName, o.ExternalName)
	} else {
		b.WithMeta(v1.MetaClusterIP, c.clusterIP())
		if len(selector) > 0 {
			b.WithMeta(v1.MetaSelector, maps.Clone(selector))
		}
	}

	if o.Port > 0 {
		b.WithMeta(v1.MetaPort, o.Port)
		b.WithMeta(v1.MetaTargetPort, o.TargetPort)
	}

	switch serviceType {
	case corev1.ServiceTypeNodePort:
		b.WithMeta(v1.MetaNodePort, c.nodePort())
	case corev1.ServiceTypeLoadBalancer:
		b.WithMeta(v1.MetaNodePort, c.nodePort())
		b.WithMeta(v1.MetaExternalIP, c.externalIP())
	}

	return b.Build(c.nextID(), c.now()), nil
}

// createService handles "create service TYPE NAME [--tcp=port[:target]]".
func createService(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	o, err := options.ParseCreateServiceOptions(&args)
	if err != nil {
		return store, Fail(err)
	}
	if err := flags.CheckUnknown(args); err != nil {
		return store, Fail(err)
	}
	if len(args) == 0 {
		return store, Fail(fmt.Errorf("service type is required, one of: clusterip, externalname, loadbalancer, nodeport"))
	}
	serviceType, err := ParseServiceType(args[0])
	if err != nil {
		return store, Fail(err)
	}
	name, err := singleName(args[1:], config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}

	lbls := map[string]string{LabelApp: name}
	svc, err := ctx.newService(name, namespace, serviceType, o, lbls, lbls)
	if err != nil {
		return store, Fail(err)
	}
	return ctx.commit(store, config, svc)
}

// Expose creates a service for an existing resource. The service inherits
// the target's labels, selects the target's pods and records the target id.
func Expose(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result) {
	o, err := options.ParseExposeOptions(&args)
	if err != nil {
		return store, Fail(err)
	}
	if err := flags.CheckUnknown(args); err != nil {
		return store, Fail(err)
	}
	target, rest, err := options.ParseTarget(args)
	if err != nil {
		return store, Fail(err)
	}
	if len(rest) > 0 {
		return store, Fail(fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " ")))
	}
	targetConfig, err := ctx.Resolve(target.Type)
	if err != nil {
		return store, Fail(err)
	}
	r, ok := store.Find(targetConfig.Type, target.Name, namespace)
	if !ok {
		return store, Fail(notFound(targetConfig, target.Name))
	}

	serviceType, err := ParseServiceType(o.Type)
	if err != nil {
		return store, Fail(err)
	}

	selector := r.MetaStringMap(v1.MetaSelector)
	if len(selector) == 0 {
		selector = r.Labels
	}
	if len(selector) == 0 && serviceType != corev1.ServiceTypeExternalName {
		return store, Fail(fmt.Errorf("couldn't retrieve selectors via --selector flag or introspection: the %s %q has no labels", targetConfig.Singular, r.Name))
	}

	name := o.Name
	if name == "" {
		name = r.Name
	}
	config := ctx.Config(v1.TypeService)
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}

	svc, err := ctx.newService(name, namespace, serviceType, o, selector, r.Labels)
	if err != nil {
		return store, Fail(err)
	}
	svc = svc.WithMeta(v1.MetaExposes, r.ID)
	if err := ctx.validate(svc); err != nil {
		return store, Fail(err)
	}

	result := Succeed("%s exposed", config.QualifiedName(name))
	result.ResourcesCreated = []v1.Resource{svc}
	return store.Append(svc), result
}
