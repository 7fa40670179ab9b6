package flags

// Flag name constants for kubectl-compatible flags. Names are given without
// leading dashes; single letter names are matched as "-x", longer ones as
// "--name".

// Scope flags
const (
	// FlagNamespace specifies the namespace scope
	FlagNamespace = "namespace"
	// FlagNamespaceShort is the short form of namespace flag
	FlagNamespaceShort = "n"
	// FlagAllNamespaces lists resources across all namespaces
	FlagAllNamespaces = "all-namespaces"
	// FlagAllNamespacesShort is the short form of all-namespaces flag
	FlagAllNamespacesShort = "A"
)

// Output formatting flags
const (
	// FlagOutput specifies the output format (wide, json, yaml, name)
	FlagOutput = "output"
	// FlagOutputShort is the short form of output flag
	FlagOutputShort = "o"
	// FlagShowLabels shows all labels as the last column
	FlagShowLabels = "show-labels"
	// FlagSelector specifies label selector for filtering
	FlagSelector = "selector"
	// FlagSelectorShort is the short form of selector flag
	FlagSelectorShort = "l"
	// FlagFieldSelector specifies field selector for filtering
	FlagFieldSelector = "field-selector"
)

// Workload flags
const (
	// FlagImage is the container image
	FlagImage = "image"
	// FlagReplicas is the desired number of pods
	FlagReplicas = "replicas"
	// FlagPort is the container or service port
	FlagPort = "port"
	// FlagTargetPort is the port a service forwards to
	FlagTargetPort = "target-port"
	// FlagLabels is a comma separated list of k=v pairs
	FlagLabels = "labels"
	// FlagSchedule is a cron schedule
	FlagSchedule = "schedule"
)

// Service flags
const (
	// FlagName overrides the generated resource name
	FlagName = "name"
	// FlagType is the service type
	FlagType = "type"
	// FlagTCP is a port[:targetPort] pair
	FlagTCP = "tcp"
	// FlagExternalName is the DNS name of an ExternalName service
	FlagExternalName = "external-name"
)

// Config, RBAC and storage flags
const (
	// FlagFromLiteral is a repeated key=value data entry
	FlagFromLiteral = "from-literal"
	// FlagVerb is a repeated or comma separated RBAC verb
	FlagVerb = "verb"
	// FlagResource is a repeated or comma separated RBAC resource
	FlagResource = "resource"
	// FlagRole names the role of a rolebinding
	FlagRole = "role"
	// FlagClusterRole names the clusterrole of a binding
	FlagClusterRole = "clusterrole"
	// FlagUser is a repeated binding subject
	FlagUser = "user"
	// FlagServiceAccount is a repeated namespace:name binding subject
	FlagServiceAccount = "serviceaccount"
	// FlagRule is a repeated host/path=service:port ingress rule
	FlagRule = "rule"
	// FlagCapacity is the size of a persistentvolume
	FlagCapacity = "capacity"
	// FlagSize is the requested size of a persistentvolumeclaim
	FlagSize = "size"
	// FlagPodSelector selects the pods a networkpolicy applies to
	FlagPodSelector = "pod-selector"
	// FlagOverwrite allows label to replace existing values
	FlagOverwrite = "overwrite"
)

// Front-end flags
const (
	// FlagConfig is the path of the configuration file
	FlagConfig = "config"
	// FlagSession names the persisted session
	FlagSession = "session"
	// FlagStorage selects the session backend
	FlagStorage = "storage"
	// FlagDBPath is the directory of persistent backends
	FlagDBPath = "db-path"
	// FlagKeyword is the accepted invocation keyword
	FlagKeyword = "keyword"
	// FlagNoColor disables colored output
	FlagNoColor = "no-color"
	// FlagLogLevel sets the log level
	FlagLogLevel = "log-level"
	// FlagMetricsAddr serves Prometheus metrics on the given address
	FlagMetricsAddr = "metrics-addr"
	// FlagBootstrap seeds a new session with system namespaces and a node
	FlagBootstrap = "bootstrap"
)

// Default values for commonly used flags
const (
	// DefaultNamespace is the default namespace when none specified
	DefaultNamespace = "default"
	// DefaultKeyword is the default invocation keyword
	DefaultKeyword = "kubectl"
	// DefaultSession is the default session name
	DefaultSession = "default"
	// DefaultStorage is the default session backend
	DefaultStorage = "memory"
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "warn"
)
