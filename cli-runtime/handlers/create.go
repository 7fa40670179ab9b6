package handlers

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/labels"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/builders"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/options"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// creator creates one resource type. args are the tokens after the type.
type creator func(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result)

var creators = map[string]creator{
	v1.TypeDeployment:            createWorkload((*Context).newDeployment),
	v1.TypeStatefulSet:           createWorkload((*Context).newStatefulSet),
	v1.TypeDaemonSet:             createWorkload((*Context).newDaemonSet),
	v1.TypeJob:                   createWorkload((*Context).newJob),
	v1.TypeCronJob:               createCronJob,
	v1.TypeService:               createService,
	v1.TypeNamespace:             createNamespace,
	v1.TypeConfigMap:             createConfigMap,
	v1.TypeSecret:                createSecret,
	v1.TypeServiceAccount:        createSimple,
	v1.TypeRole:                  createRole,
	v1.TypeClusterRole:           createRole,
	v1.TypeRoleBinding:           createBinding,
	v1.TypeClusterRoleBinding:    createBinding,
	v1.TypeIngress:               createIngress,
	v1.TypeNode:                  createNode,
	v1.TypePersistentVolume:      createPersistentVolume,
	v1.TypePersistentVolumeClaim: createPersistentVolumeClaim,
	v1.TypeNetworkPolicy:         createNetworkPolicy,
}

// Create dispatches "create TYPE ..." to the creator of the resolved type.
// Registered types without a dedicated creator are created generically.
func Create(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return store, Fail(errResourceType)
	}
	config, err := ctx.Resolve(args[0])
	if err != nil {
		return store, Fail(err)
	}
	create, ok := creators[config.Type]
	if !ok {
		create = createGeneric
	}
	return create(ctx, store, config, args[1:], namespace)
}

// Run creates a single unmanaged pod labeled app=<name>.
func Run(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result) {
	config := ctx.Config(v1.TypePod)
	o, err := options.ParseWorkloadOptions(&args)
	if err != nil {
		return store, Fail(err)
	}
	name, err := singleName(args, "pod")
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}

	template := podTemplate{
		image:     o.Image,
		port:      o.Port,
		labels:    workloadLabels(name, o.Labels),
		namespace: namespace,
	}
	pod := ctx.newPod(name, template, nodeFor(store, 0))
	return ctx.commit(store, config, pod)
}

// commit defaults and validates resources and appends them to the store.
// The first resource names the result.
func (c *Context) commit(store v1.Store, config registry.ResourceConfig, resources ...v1.Resource) (v1.Store, Result) {
	resources = slices.Clone(resources)
	if err := c.applyDefaults(resources); err != nil {
		return store, Fail(err)
	}
	if err := c.validate(resources...); err != nil {
		return store, Fail(err)
	}
	result := Succeed("%s", created(config, resources[0].Name))
	result.ResourcesCreated = resources
	return store.Append(resources...), result
}

// singleName returns the only positional argument left after flag
// extraction. Leftover flags are reported as unknown.
func singleName(args []string, kind string) (string, error) {
	if err := flags.CheckUnknown(args); err != nil {
		return "", err
	}
	switch len(args) {
	case 0:
		return "", missingName(kind)
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("exactly one NAME is required, got %d", len(args))
	}
}

func createWorkload(build func(*Context, v1.Store, string, string, *options.WorkloadOptions) []v1.Resource) creator {
	return func(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
		o, err := options.ParseWorkloadOptions(&args)
		if err != nil {
			return store, Fail(err)
		}
		name, err := singleName(args, config.Singular)
		if err != nil {
			return store, Fail(err)
		}
		if err := checkCreate(store, config, name, namespace); err != nil {
			return store, Fail(err)
		}
		resources := build(ctx, store, name, namespace, o)
		ctx.logger().Debug("built workload",
			zap.String("type", config.Type),
			zap.String("name", name),
			zap.Int("resources", len(resources)))
		return ctx.commit(store, config, resources...)
	}
}

func createCronJob(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	schedule, found, err := flags.ExtractFlagValue(&args, flags.FlagSchedule)
	if err != nil {
		return store, Fail(err)
	}
	if !found {
		return store, Fail(fmt.Errorf(`required flag(s) "schedule" not set`))
	}
	o, err := options.ParseWorkloadOptions(&args)
	if err != nil {
		return store, Fail(err)
	}
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}

	cronjob := builders.NewResource(v1.TypeCronJob, name).
		InNamespace(namespace).
		WithLabels(o.Labels).
		WithMeta(v1.MetaImage, o.Image).
		WithMeta(v1.MetaSchedule, schedule).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, cronjob)
}

func createNamespace(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, _ string) (v1.Store, Result) {
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, ""); err != nil {
		return store, Fail(err)
	}
	ns := builders.NewResource(v1.TypeNamespace, name).
		WithLabel("kubernetes.io/metadata.name", name).
		WithMeta(v1.MetaStatus, v1.StatusActive).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, ns)
}

func createConfigMap(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	data, err := options.ParseLiterals(&args)
	if err != nil {
		return store, Fail(err)
	}
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}
	cm := builders.NewResource(config.Type, name).
		InNamespace(namespace).
		WithMeta(v1.MetaData, data).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, cm)
}

// createSecret handles "create secret generic NAME". The generic sub type
// may be omitted.
func createSecret(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	if len(args) > 0 {
		switch args[0] {
		case "generic":
			args = args[1:]
		case "tls", "docker-registry":
			return store, Fail(fmt.Errorf("secret type %q is not supported, use generic", args[0]))
		}
	}
	data, err := options.ParseLiterals(&args)
	if err != nil {
		return store, Fail(err)
	}
	secretType, err := flags.ExtractFlag(&args, "Opaque", flags.FlagType)
	if err != nil {
		return store, Fail(err)
	}
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}
	secret := builders.NewResource(v1.TypeSecret, name).
		InNamespace(namespace).
		WithMeta(v1.MetaData, data).
		WithMeta(v1.MetaSecretType, secretType).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, secret)
}

// createSimple creates a resource that carries no type specific state.
func createSimple(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}
	r := builders.NewResource(config.Type, name).
		InNamespace(namespace).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, r)
}

func createRole(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	o, err := options.ParseRoleOptions(&args)
	if err != nil {
		return store, Fail(err)
	}
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}
	role := builders.NewResource(config.Type, name).
		InNamespace(namespace).
		WithMeta(v1.MetaVerbs, o.Verbs).
		WithMeta(v1.MetaResources, o.Resources).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, role)
}

// createBinding creates a rolebinding or clusterrolebinding. The role
// reference is recorded as "Role/name" or "ClusterRole/name"; subjects as
// "User/name" or "ServiceAccount/namespace:name".
func createBinding(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	o, err := options.ParseBindingOptions(&args, !config.Namespaced)
	if err != nil {
		return store, Fail(err)
	}
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}

	roleRef := "ClusterRole/" + o.ClusterRole
	if o.Role != "" {
		roleRef = "Role/" + o.Role
	}
	var subjects []string
	for _, u := range o.Users {
		subjects = append(subjects, "User/"+u)
	}
	for _, sa := range o.ServiceAccounts {
		subjects = append(subjects, "ServiceAccount/"+sa)
	}

	binding := builders.NewResource(config.Type, name).
		InNamespace(namespace).
		WithMeta(v1.MetaRoleRef, roleRef).
		WithMeta(v1.MetaSubjects, subjects).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, binding)
}

// createIngress requires at least one --rule=host/path=service:port.
func createIngress(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	rules, err := flags.ExtractFlagValues(&args, flags.FlagRule)
	if err != nil {
		return store, Fail(err)
	}
	if len(rules) == 0 {
		return store, Fail(fmt.Errorf("not enough information provided: every ingress has to specify at least one --rule"))
	}
	for _, rule := range rules {
		if _, backend, found := strings.Cut(rule, "="); !found || !strings.Contains(backend, ":") {
			return store, Fail(fmt.Errorf("rule %q is invalid, expected host/path=service:port", rule))
		}
	}
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}
	ing := builders.NewResource(v1.TypeIngress, name).
		InNamespace(namespace).
		WithMeta(v1.MetaRules, rules).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, ing)
}

func createNode(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, _ string) (v1.Store, Result) {
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, ""); err != nil {
		return store, Fail(err)
	}
	node := builders.NewResource(v1.TypeNode, name).
		WithLabel("kubernetes.io/hostname", name).
		WithMeta(v1.MetaStatus, v1.StatusReady).
		WithMeta(v1.MetaRoles, "<none>").
		WithMeta(v1.MetaVersion, v1.KubeletVersion).
		WithMeta(v1.MetaInternalIP, ctx.nodeIP()).
		WithMeta(v1.MetaTaints, []string{}).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, node)
}

func createPersistentVolume(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, _ string) (v1.Store, Result) {
	capacity, err := flags.ExtractFlag(&args, "1Gi", flags.FlagCapacity)
	if err != nil {
		return store, Fail(err)
	}
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, ""); err != nil {
		return store, Fail(err)
	}
	pv := builders.NewResource(v1.TypePersistentVolume, name).
		WithMeta(v1.MetaCapacity, capacity).
		WithMeta(v1.MetaStatus, v1.StatusAvailable).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, pv)
}

// createPersistentVolumeClaim binds the claim to the first Available volume
// if there is one; otherwise the claim stays Pending.
func createPersistentVolumeClaim(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	size, err := flags.ExtractFlag(&args, "1Gi", flags.FlagSize)
	if err != nil {
		return store, Fail(err)
	}
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}

	pvc := builders.NewResource(v1.TypePersistentVolumeClaim, name).
		InNamespace(namespace).
		WithMeta(v1.MetaStorage, size).
		WithMeta(v1.MetaStatus, "Pending").
		Build(ctx.nextID(), ctx.now())

	volumes := store.OfType(v1.TypePersistentVolume).Filter(func(r v1.Resource) bool {
		return r.MetaString(v1.MetaStatus) == v1.StatusAvailable
	})
	if len(volumes) == 0 {
		return ctx.commit(store, config, pvc)
	}

	pv := volumes[0].
		WithMeta(v1.MetaStatus, v1.StatusBound).
		WithMeta(v1.MetaClaim, pvc.Namespace+"/"+pvc.Name)
	pvc = pvc.WithMeta(v1.MetaStatus, v1.StatusBound).WithMeta(v1.MetaVolume, pv.Name)

	next, result := ctx.commit(store, config, pvc)
	if !result.Success {
		return store, result
	}
	result.ResourcesUpdated = []v1.Resource{pv}
	return next.Replace(pv), result
}

func createNetworkPolicy(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	podSelector, err := flags.ExtractFlag(&args, "", flags.FlagPodSelector)
	if err != nil {
		return store, Fail(err)
	}
	if _, err := labels.Parse(podSelector); err != nil {
		return store, Fail(fmt.Errorf("invalid pod selector %q: %w", podSelector, err))
	}
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}
	np := builders.NewResource(v1.TypeNetworkPolicy, name).
		InNamespace(namespace).
		WithMeta(v1.MetaPodSelector, podSelector).
		Build(ctx.nextID(), ctx.now())
	return ctx.commit(store, config, np)
}

// createGeneric creates any registered type without a dedicated creator and
// stores every remaining --key=value flag as metadata.
func createGeneric(ctx *Context, store v1.Store, config registry.ResourceConfig, args []string, namespace string) (v1.Store, Result) {
	labelSpec, _, err := flags.ExtractFlagValue(&args, flags.FlagLabels)
	if err != nil {
		return store, Fail(err)
	}
	lbls, err := options.ParseLabels(labelSpec)
	if err != nil {
		return store, Fail(err)
	}
	extra := flags.ExtractRemainingFlags(&args)
	name, err := singleName(args, config.Singular)
	if err != nil {
		return store, Fail(err)
	}
	if err := checkCreate(store, config, name, namespace); err != nil {
		return store, Fail(err)
	}

	b := builders.NewResource(config.Type, name).InNamespace(namespace).WithLabels(lbls)
	for k, v := range extra {
		if n, err := strconv.Atoi(v); err == nil {
			b.WithMeta(k, n)
			continue
		}
		b.WithMeta(k, v)
	}
	return ctx.commit(store, config, b.Build(ctx.nextID(), ctx.now()))
}
