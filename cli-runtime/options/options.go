// Package options parses the flags of each command into typed option
// structs. Every Parse function consumes the flags it understands from the
// token list and leaves the positional arguments behind.
package options

import (
	"fmt"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/labels"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Output formats accepted by -o.
const (
	OutputTable = ""
	OutputWide  = "wide"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputName  = "name"
)

// GetOptions contains parsed get options.
type GetOptions struct {
	AllNamespaces bool
	ShowLabels    bool
	Selector      labels.Selector
	FieldSelector fields.Selector
	Output        string
}

// ParseGetOptions parses -A, --show-labels, -l, --field-selector and -o.
func ParseGetOptions(args *[]string) (*GetOptions, error) {
	options := &GetOptions{Selector: labels.Everything(), FieldSelector: fields.Everything()}

	var err error
	if options.AllNamespaces, err = flags.ExtractBoolFlag(args, flags.FlagAllNamespaces, flags.FlagAllNamespacesShort); err != nil {
		return nil, err
	}
	if options.ShowLabels, err = flags.ExtractBoolFlag(args, flags.FlagShowLabels); err != nil {
		return nil, err
	}

	selector, found, err := flags.ExtractFlagValue(args, flags.FlagSelector, flags.FlagSelectorShort)
	if err != nil {
		return nil, err
	}
	if found {
		if options.Selector, err = labels.Parse(selector); err != nil {
			return nil, fmt.Errorf("invalid label selector %q: %w", selector, err)
		}
	}

	fieldSelector, found, err := flags.ExtractFlagValue(args, flags.FlagFieldSelector)
	if err != nil {
		return nil, err
	}
	if found {
		if options.FieldSelector, err = fields.ParseSelector(fieldSelector); err != nil {
			return nil, fmt.Errorf("invalid field selector %q: %w", fieldSelector, err)
		}
	}

	if options.Output, err = ParseOutput(args); err != nil {
		return nil, err
	}

	return options, nil
}

// ParseOutput parses -o/--output.
func ParseOutput(args *[]string) (string, error) {
	output, err := flags.ExtractFlag(args, OutputTable, flags.FlagOutput, flags.FlagOutputShort)
	if err != nil {
		return "", err
	}
	switch output {
	case OutputTable, OutputWide, OutputJSON, OutputYAML, OutputName:
		return output, nil
	default:
		return "", fmt.Errorf("unable to match a printer suitable for the output format %q, allowed formats are: json,name,wide,yaml", output)
	}
}

// WorkloadOptions contains the pod template flags shared by run and the
// workload create commands.
type WorkloadOptions struct {
	Image    string
	Replicas int
	Port     int
	HasPort  bool
	Labels   map[string]string
}

// ParseWorkloadOptions parses --image, --replicas, --port and --labels.
// Replicas defaults to 1.
func ParseWorkloadOptions(args *[]string) (*WorkloadOptions, error) {
	options := &WorkloadOptions{}

	var err error
	if options.Image, err = flags.ExtractFlag(args, v1.DefaultImage, flags.FlagImage); err != nil {
		return nil, err
	}
	if options.Image == "" {
		return nil, fmt.Errorf("--image must not be empty")
	}
	if options.Replicas, _, err = flags.ExtractIntFlag(args, 1, flags.FlagReplicas); err != nil {
		return nil, err
	}
	if options.Replicas < 0 {
		return nil, fmt.Errorf("--replicas must be greater than or equal to 0, got %d", options.Replicas)
	}
	if options.Port, options.HasPort, err = flags.ExtractIntFlag(args, 0, flags.FlagPort); err != nil {
		return nil, err
	}

	labelSpec, _, err := flags.ExtractFlagValue(args, flags.FlagLabels)
	if err != nil {
		return nil, err
	}
	if options.Labels, err = ParseLabels(labelSpec); err != nil {
		return nil, err
	}

	return options, nil
}

// ParseLabels parses "k=v,k2=v2".
func ParseLabels(spec string) (map[string]string, error) {
	if strings.TrimSpace(spec) == "" {
		return map[string]string{}, nil
	}
	set, err := labels.ConvertSelectorToLabelsMap(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid labels %q: %w", spec, err)
	}
	return set, nil
}

// ServiceOptions contains parsed service options for create service and
// expose.
type ServiceOptions struct {
	Type         string
	Name         string
	Port         int
	TargetPort   int
	ExternalName string
}

// ParseTCP parses "port" or "port:targetPort".
func ParseTCP(spec string) (port, targetPort int, err error) {
	p, t, found := strings.Cut(spec, ":")
	if port, err = strconv.Atoi(p); err != nil {
		return 0, 0, fmt.Errorf("invalid port %q in --tcp=%s", p, spec)
	}
	targetPort = port
	if found {
		if targetPort, err = strconv.Atoi(t); err != nil {
			return 0, 0, fmt.Errorf("invalid target port %q in --tcp=%s", t, spec)
		}
	}
	return port, targetPort, nil
}

// ParseCreateServiceOptions parses --tcp and --external-name.
func ParseCreateServiceOptions(args *[]string) (*ServiceOptions, error) {
	options := &ServiceOptions{}

	tcp, found, err := flags.ExtractFlagValue(args, flags.FlagTCP)
	if err != nil {
		return nil, err
	}
	if found {
		if options.Port, options.TargetPort, err = ParseTCP(tcp); err != nil {
			return nil, err
		}
	}
	if options.ExternalName, _, err = flags.ExtractFlagValue(args, flags.FlagExternalName); err != nil {
		return nil, err
	}
	return options, nil
}

// ParseExposeOptions parses --port, --target-port, --name, --type and
// --external-name. --port is required.
func ParseExposeOptions(args *[]string) (*ServiceOptions, error) {
	options := &ServiceOptions{}

	var (
		found bool
		err   error
	)
	if options.Port, found, err = flags.ExtractIntFlag(args, 0, flags.FlagPort); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("couldn't find port via --port flag or introspection")
	}
	if options.TargetPort, found, err = flags.ExtractIntFlag(args, options.Port, flags.FlagTargetPort); err != nil {
		return nil, err
	}
	if !found {
		options.TargetPort = options.Port
	}
	if options.Name, _, err = flags.ExtractFlagValue(args, flags.FlagName); err != nil {
		return nil, err
	}
	if options.Type, err = flags.ExtractFlag(args, "ClusterIP", flags.FlagType); err != nil {
		return nil, err
	}
	if options.ExternalName, _, err = flags.ExtractFlagValue(args, flags.FlagExternalName); err != nil {
		return nil, err
	}
	return options, nil
}

// ScaleOptions contains parsed scale options.
type ScaleOptions struct {
	Replicas int
}

// ParseScaleOptions parses the required --replicas flag.
func ParseScaleOptions(args *[]string) (*ScaleOptions, error) {
	replicas, found, err := flags.ExtractIntFlag(args, 0, flags.FlagReplicas)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf(`required flag(s) "replicas" not set`)
	}
	if replicas < 0 {
		return nil, fmt.Errorf("the --replicas flag must be greater than or equal to 0, got %d", replicas)
	}
	return &ScaleOptions{Replicas: replicas}, nil
}

// LabelOptions contains parsed label options.
type LabelOptions struct {
	Overwrite bool
}

// ParseLabelOptions parses --overwrite.
func ParseLabelOptions(args *[]string) (*LabelOptions, error) {
	overwrite, err := flags.ExtractBoolFlag(args, flags.FlagOverwrite)
	if err != nil {
		return nil, err
	}
	return &LabelOptions{Overwrite: overwrite}, nil
}

// ParseLiterals parses repeated --from-literal=key=value flags.
func ParseLiterals(args *[]string) (map[string]string, error) {
	values, err := flags.ExtractFlagValues(args, flags.FlagFromLiteral)
	if err != nil {
		return nil, err
	}
	data := make(map[string]string, len(values))
	for _, literal := range values {
		k, v, found := strings.Cut(literal, "=")
		if !found || k == "" {
			return nil, fmt.Errorf("invalid literal source %s, expected key=value", literal)
		}
		if _, exists := data[k]; exists {
			return nil, fmt.Errorf("cannot add key %s, another key by that name already exists", k)
		}
		data[k] = v
	}
	return data, nil
}

// RoleOptions contains parsed role options.
type RoleOptions struct {
	Verbs     []string
	Resources []string
}

// ParseRoleOptions parses --verb and --resource, both required.
func ParseRoleOptions(args *[]string) (*RoleOptions, error) {
	verbs, err := flags.ExtractListFlag(args, flags.FlagVerb)
	if err != nil {
		return nil, err
	}
	if len(verbs) == 0 {
		return nil, fmt.Errorf("at least one verb must be specified")
	}
	resources, err := flags.ExtractListFlag(args, flags.FlagResource)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, fmt.Errorf("at least one resource must be specified")
	}
	return &RoleOptions{Verbs: verbs, Resources: resources}, nil
}

// BindingOptions contains parsed rolebinding options.
type BindingOptions struct {
	Role            string
	ClusterRole     string
	Users           []string
	ServiceAccounts []string
}

// ParseBindingOptions parses --role, --clusterrole, --user and
// --serviceaccount. Exactly one of role or clusterrole must be set; cluster
// bindings may only reference a clusterrole.
func ParseBindingOptions(args *[]string, clusterScoped bool) (*BindingOptions, error) {
	options := &BindingOptions{}

	var err error
	if options.Role, _, err = flags.ExtractFlagValue(args, flags.FlagRole); err != nil {
		return nil, err
	}
	if options.ClusterRole, _, err = flags.ExtractFlagValue(args, flags.FlagClusterRole); err != nil {
		return nil, err
	}
	if options.Users, err = flags.ExtractListFlag(args, flags.FlagUser); err != nil {
		return nil, err
	}
	if options.ServiceAccounts, err = flags.ExtractListFlag(args, flags.FlagServiceAccount); err != nil {
		return nil, err
	}

	switch {
	case clusterScoped && options.Role != "":
		return nil, fmt.Errorf("a clusterrolebinding can only reference a clusterrole")
	case clusterScoped && options.ClusterRole == "":
		return nil, fmt.Errorf(`required flag(s) "clusterrole" not set`)
	case options.Role == "" && options.ClusterRole == "":
		return nil, fmt.Errorf("exactly one of clusterrole or role must be specified")
	case options.Role != "" && options.ClusterRole != "":
		return nil, fmt.Errorf("exactly one of clusterrole or role must be specified")
	}

	for _, sa := range options.ServiceAccounts {
		if ns, name, found := strings.Cut(sa, ":"); !found || ns == "" || name == "" {
			return nil, fmt.Errorf("serviceaccount must be <namespace>:<name>, got %q", sa)
		}
	}
	return options, nil
}

// Target is a resource addressed on the command line.
type Target struct {
	Type string
	Name string
}

// ParseTarget reads "TYPE NAME" or "TYPE/NAME" from the front of positional
// args and returns the remaining arguments.
func ParseTarget(args []string) (Target, []string, error) {
	if len(args) == 0 {
		return Target{}, nil, fmt.Errorf("you must specify the type of resource")
	}
	if t, n, found := strings.Cut(args[0], "/"); found {
		if t == "" || n == "" {
			return Target{}, nil, fmt.Errorf("arguments in resource/name form must have a single resource and name")
		}
		return Target{Type: t, Name: n}, args[1:], nil
	}
	if len(args) < 2 {
		return Target{}, nil, fmt.Errorf("you must specify the name of the %s", args[0])
	}
	return Target{Type: args[0], Name: args[1]}, args[2:], nil
}
