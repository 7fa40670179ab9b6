package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/printers"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// ControlPlaneURL is where the simulated API server claims to listen.
const ControlPlaneURL = "https://127.0.0.1:6443"

// ClusterInfo reports the control plane endpoints.
func ClusterInfo(_ *Context, store v1.Store, _ []string, _ string) (v1.Store, Result) {
	return store, Succeed("Kubernetes control plane is running at %s\n"+
		"CoreDNS is running at %s/api/v1/namespaces/kube-system/services/kube-dns:dns/proxy\n\n"+
		"To further debug and diagnose cluster problems, use 'kubectl cluster-info dump'.",
		ControlPlaneURL, ControlPlaneURL)
}

// Version reports client and server versions.
func Version(_ *Context, store v1.Store, _ []string, _ string) (v1.Store, Result) {
	return store, Succeed("Client Version: %s\nServer Version: %s", v1.ServerVersion, v1.ServerVersion)
}

// APIResources lists the registered resource types.
func APIResources(ctx *Context, store v1.Store, args []string, _ string) (v1.Store, Result) {
	if err := flags.CheckUnknown(args); err != nil {
		return store, Fail(err)
	}
	if ctx.Registry == nil {
		return store, Fail(fmt.Errorf("no resource registry configured"))
	}

	var b strings.Builder
	w := printers.GetNewTabWriter(&b)
	fmt.Fprintln(w, "NAME\tSHORTNAMES\tAPIVERSION\tNAMESPACED\tKIND")
	for _, config := range ctx.Registry.ListResources() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			config.Plural,
			strings.Join(config.ShortNames, ","),
			config.APIVersion(),
			strconv.FormatBool(config.Namespaced),
			config.Kind)
	}
	if err := w.Flush(); err != nil {
		return store, Fail(err)
	}
	return store, Succeed("%s", strings.TrimRight(b.String(), "\n"))
}

// helpText describes every action, in the order help prints them.
var helpText = [][2]string{
	{"run NAME --image=IMAGE", "Run a pod"},
	{"create TYPE NAME", "Create a resource (deployment, service, namespace, configmap, ...)"},
	{"get TYPE [NAME]", "Display one or many resources"},
	{"describe TYPE NAME", "Show details of a resource"},
	{"delete TYPE NAME", "Delete a resource and everything it owns"},
	{"expose TYPE NAME --port=PORT", "Expose a resource as a new service"},
	{"scale TYPE/NAME --replicas=N", "Set a new size for a deployment, replicaset or statefulset"},
	{"rollout SUBCOMMAND deployment/NAME", "Manage rollouts: status, history, undo, restart"},
	{"set image deployment/NAME C=IMAGE", "Update the image of a deployment"},
	{"label TYPE NAME KEY=VAL KEY-", "Update the labels of a resource"},
	{"api-resources", "Print the supported resource types"},
	{"cluster-info", "Display cluster information"},
	{"version", "Print the client and server version"},
}

// Help lists the supported commands.
func Help(_ *Context, store v1.Store, _ []string, _ string) (v1.Store, Result) {
	var b strings.Builder
	b.WriteString("kubectl controls the simulated Kubernetes cluster.\n\nCommands:\n")
	w := printers.GetNewTabWriter(&b)
	for _, entry := range helpText {
		fmt.Fprintf(w, "  %s\t%s\n", entry[0], entry[1])
	}
	if err := w.Flush(); err != nil {
		return store, Fail(err)
	}
	b.WriteString("\nFlags: -n/--namespace NAMESPACE, -A/--all-namespaces, --show-labels, -l/--selector, -o/--output")
	return store, Succeed("%s", b.String())
}

// DefaultHandlers returns the action table of the command line.
func DefaultHandlers() map[string]Handler {
	return map[string]Handler{
		"run":           Run,
		"create":        Create,
		"get":           Get,
		"describe":      Describe,
		"delete":        Delete,
		"expose":        Expose,
		"scale":         Scale,
		"rollout":       Rollout,
		"set":           SetImage,
		"label":         Label,
		"api-resources": APIResources,
		"cluster-info":  ClusterInfo,
		"version":       Version,
		"help":          Help,
	}
}
