package printers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/duration"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

const (
	noneValue    = "<none>"
	unknownValue = "<unknown>"
)

// PrintColumn defines a single column in table output.
type PrintColumn struct {
	Name string
	// Priority 1 columns are only shown with -o wide
	Priority int32
	Value    func(r v1.Resource, now time.Time) string
}

// ColumnDefinitionProvider provides column definitions for resource types.
type ColumnDefinitionProvider interface {
	GetColumns(resourceType string, wide bool) []PrintColumn
}

// DefaultColumnProvider mirrors the columns kubectl prints for each built-in
// type. Unknown types get NAME and AGE.
type DefaultColumnProvider struct{}

var (
	nameColumn = PrintColumn{Name: "NAME", Value: func(r v1.Resource, _ time.Time) string { return r.Name }}
	ageColumn  = PrintColumn{Name: "AGE", Value: func(r v1.Resource, now time.Time) string { return age(r, now) }}
)

func meta(key string) func(v1.Resource, time.Time) string {
	return func(r v1.Resource, _ time.Time) string { return orNone(r.MetaString(key)) }
}

func fixed(value string) func(v1.Resource, time.Time) string {
	return func(v1.Resource, time.Time) string { return value }
}

func replicas(r v1.Resource, _ time.Time) string {
	return strconv.Itoa(r.MetaIntOr(v1.MetaReplicas, 1))
}

func readyOfReplicas(r v1.Resource, _ time.Time) string {
	n := r.MetaIntOr(v1.MetaReplicas, 1)
	return fmt.Sprintf("%d/%d", n, n)
}

func containers(r v1.Resource, _ time.Time) string {
	image := r.MetaString(v1.MetaImage)
	if image == "" {
		return noneValue
	}
	// kubectl names the single container after its image repository.
	name := image
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, ":"); i >= 0 {
		name = name[:i]
	}
	return name
}

func selector(r v1.Resource, _ time.Time) string {
	if s := r.MetaStringMap(v1.MetaSelector); len(s) > 0 {
		return labels.Set(s).String()
	}
	if len(r.Labels) > 0 {
		return labels.Set(r.Labels).String()
	}
	return noneValue
}

var typeColumns = map[string][]PrintColumn{
	v1.TypePod: {
		nameColumn,
		{Name: "READY", Value: func(r v1.Resource, _ time.Time) string {
			if r.MetaString(v1.MetaStatus) == v1.StatusRunning {
				return "1/1"
			}
			return "0/1"
		}},
		{Name: "STATUS", Value: meta(v1.MetaStatus)},
		{Name: "RESTARTS", Value: func(r v1.Resource, _ time.Time) string {
			return strconv.Itoa(r.MetaIntOr(v1.MetaRestarts, 0))
		}},
		ageColumn,
		{Name: "IP", Priority: 1, Value: meta(v1.MetaPodIP)},
		{Name: "NODE", Priority: 1, Value: meta(v1.MetaNode)},
	},
	v1.TypeDeployment: {
		nameColumn,
		{Name: "READY", Value: readyOfReplicas},
		{Name: "UP-TO-DATE", Value: replicas},
		{Name: "AVAILABLE", Value: replicas},
		ageColumn,
		{Name: "CONTAINERS", Priority: 1, Value: containers},
		{Name: "IMAGES", Priority: 1, Value: meta(v1.MetaImage)},
		{Name: "SELECTOR", Priority: 1, Value: selector},
	},
	v1.TypeReplicaSet: {
		nameColumn,
		{Name: "DESIRED", Value: replicas},
		{Name: "CURRENT", Value: replicas},
		{Name: "READY", Value: replicas},
		ageColumn,
		{Name: "CONTAINERS", Priority: 1, Value: containers},
		{Name: "IMAGES", Priority: 1, Value: meta(v1.MetaImage)},
		{Name: "SELECTOR", Priority: 1, Value: selector},
	},
	v1.TypeStatefulSet: {
		nameColumn,
		{Name: "READY", Value: readyOfReplicas},
		ageColumn,
		{Name: "CONTAINERS", Priority: 1, Value: containers},
		{Name: "IMAGES", Priority: 1, Value: meta(v1.MetaImage)},
	},
	v1.TypeDaemonSet: {
		nameColumn,
		{Name: "DESIRED", Value: replicas},
		{Name: "CURRENT", Value: replicas},
		{Name: "READY", Value: replicas},
		{Name: "UP-TO-DATE", Value: replicas},
		{Name: "AVAILABLE", Value: replicas},
		ageColumn,
		{Name: "CONTAINERS", Priority: 1, Value: containers},
		{Name: "IMAGES", Priority: 1, Value: meta(v1.MetaImage)},
	},
	v1.TypeJob: {
		nameColumn,
		{Name: "STATUS", Value: fixed("Complete")},
		{Name: "COMPLETIONS", Value: func(r v1.Resource, _ time.Time) string {
			n := r.MetaIntOr(v1.MetaCompletions, 1)
			return fmt.Sprintf("%d/%d", n, n)
		}},
		ageColumn,
		{Name: "CONTAINERS", Priority: 1, Value: containers},
		{Name: "IMAGES", Priority: 1, Value: meta(v1.MetaImage)},
	},
	v1.TypeCronJob: {
		nameColumn,
		{Name: "SCHEDULE", Value: meta(v1.MetaSchedule)},
		{Name: "SUSPEND", Value: fixed("False")},
		{Name: "ACTIVE", Value: fixed("0")},
		{Name: "LAST SCHEDULE", Value: fixed(noneValue)},
		ageColumn,
		{Name: "CONTAINERS", Priority: 1, Value: containers},
		{Name: "IMAGES", Priority: 1, Value: meta(v1.MetaImage)},
	},
	v1.TypeService: {
		nameColumn,
		{Name: "TYPE", Value: func(r v1.Resource, _ time.Time) string {
			if t := r.MetaString(v1.MetaServiceType); t != "" {
				return t
			}
			return string(corev1.ServiceTypeClusterIP)
		}},
		{Name: "CLUSTER-IP", Value: meta(v1.MetaClusterIP)},
		{Name: "EXTERNAL-IP", Value: func(r v1.Resource, _ time.Time) string {
			switch corev1.ServiceType(r.MetaString(v1.MetaServiceType)) {
			case corev1.ServiceTypeExternalName:
				return orNone(r.MetaString(v1.MetaExternalName))
			case corev1.ServiceTypeLoadBalancer:
				if ip := r.MetaString(v1.MetaExternalIP); ip != "" {
					return ip
				}
				return "<pending>"
			default:
				return noneValue
			}
		}},
		{Name: "PORT(S)", Value: servicePorts},
		ageColumn,
		{Name: "SELECTOR", Priority: 1, Value: selector},
	},
	v1.TypeNamespace: {
		nameColumn,
		{Name: "STATUS", Value: meta(v1.MetaStatus)},
		ageColumn,
	},
	v1.TypeNode: {
		nameColumn,
		{Name: "STATUS", Value: meta(v1.MetaStatus)},
		{Name: "ROLES", Value: meta(v1.MetaRoles)},
		ageColumn,
		{Name: "VERSION", Value: meta(v1.MetaVersion)},
		{Name: "INTERNAL-IP", Priority: 1, Value: meta(v1.MetaInternalIP)},
		{Name: "TAINTS", Priority: 1, Value: func(r v1.Resource, _ time.Time) string {
			return orNone(strings.Join(r.MetaStrings(v1.MetaTaints), ","))
		}},
	},
	v1.TypeConfigMap: {
		nameColumn,
		{Name: "DATA", Value: dataCount},
		ageColumn,
	},
	v1.TypeSecret: {
		nameColumn,
		{Name: "TYPE", Value: func(r v1.Resource, _ time.Time) string {
			if t := r.MetaString(v1.MetaSecretType); t != "" {
				return t
			}
			return string(corev1.SecretTypeOpaque)
		}},
		{Name: "DATA", Value: dataCount},
		ageColumn,
	},
	v1.TypeServiceAccount: {
		nameColumn,
		{Name: "SECRETS", Value: fixed("0")},
		ageColumn,
	},
	v1.TypeIngress: {
		nameColumn,
		{Name: "CLASS", Value: fixed(noneValue)},
		{Name: "HOSTS", Value: ingressHosts},
		{Name: "ADDRESS", Value: fixed("")},
		{Name: "PORTS", Value: fixed("80")},
		ageColumn,
	},
	v1.TypeNetworkPolicy: {
		nameColumn,
		{Name: "POD-SELECTOR", Value: func(r v1.Resource, _ time.Time) string {
			// An empty pod selector selects every pod in the namespace.
			return r.MetaString(v1.MetaPodSelector)
		}},
		ageColumn,
	},
	v1.TypePersistentVolume: {
		nameColumn,
		{Name: "CAPACITY", Value: meta(v1.MetaCapacity)},
		{Name: "ACCESS MODES", Value: fixed("RWO")},
		{Name: "RECLAIM POLICY", Value: fixed(string(corev1.PersistentVolumeReclaimRetain))},
		{Name: "STATUS", Value: meta(v1.MetaStatus)},
		{Name: "CLAIM", Value: func(r v1.Resource, _ time.Time) string { return r.MetaString(v1.MetaClaim) }},
		ageColumn,
	},
	v1.TypePersistentVolumeClaim: {
		nameColumn,
		{Name: "STATUS", Value: meta(v1.MetaStatus)},
		{Name: "VOLUME", Value: func(r v1.Resource, _ time.Time) string { return r.MetaString(v1.MetaVolume) }},
		{Name: "CAPACITY", Value: meta(v1.MetaStorage)},
		{Name: "ACCESS MODES", Value: fixed("RWO")},
		ageColumn,
	},
	v1.TypeRole: {
		nameColumn,
		{Name: "CREATED AT", Value: createdAt},
	},
	v1.TypeClusterRole: {
		nameColumn,
		{Name: "CREATED AT", Value: createdAt},
	},
	v1.TypeRoleBinding: {
		nameColumn,
		{Name: "ROLE", Value: meta(v1.MetaRoleRef)},
		ageColumn,
		{Name: "SUBJECTS", Priority: 1, Value: subjects},
	},
	v1.TypeClusterRoleBinding: {
		nameColumn,
		{Name: "ROLE", Value: meta(v1.MetaRoleRef)},
		ageColumn,
		{Name: "SUBJECTS", Priority: 1, Value: subjects},
	},
	v1.TypeEvent: {
		{Name: "LAST SEEN", Value: lastSeen},
		{Name: "TYPE", Value: meta(v1.MetaEventType)},
		{Name: "REASON", Value: meta(v1.MetaReason)},
		{Name: "OBJECT", Value: meta(v1.MetaInvolvedObject)},
		{Name: "SOURCE", Priority: 1, Value: meta(v1.MetaSource)},
		{Name: "MESSAGE", Value: meta(v1.MetaMessage)},
		{Name: "COUNT", Priority: 1, Value: func(r v1.Resource, _ time.Time) string {
			return strconv.Itoa(r.MetaIntOr(v1.MetaCount, 1))
		}},
	},
}

// GetColumns returns the columns for a type, dropping priority columns
// unless wide output was requested.
func (p *DefaultColumnProvider) GetColumns(resourceType string, wide bool) []PrintColumn {
	defs, ok := typeColumns[resourceType]
	if !ok {
		return []PrintColumn{nameColumn, ageColumn}
	}
	columns := make([]PrintColumn, 0, len(defs))
	for _, col := range defs {
		if col.Priority > 0 && !wide {
			continue
		}
		columns = append(columns, col)
	}
	return columns
}

func servicePorts(r v1.Resource, _ time.Time) string {
	port := r.MetaString(v1.MetaPort)
	if port == "" {
		return noneValue
	}
	if nodePort := r.MetaString(v1.MetaNodePort); nodePort != "" {
		return fmt.Sprintf("%s:%s/%s", port, nodePort, corev1.ProtocolTCP)
	}
	return fmt.Sprintf("%s/%s", port, corev1.ProtocolTCP)
}

func dataCount(r v1.Resource, _ time.Time) string {
	return strconv.Itoa(len(r.MetaStringMap(v1.MetaData)))
}

func ingressHosts(r v1.Resource, _ time.Time) string {
	var hosts []string
	for _, rule := range r.MetaStrings(v1.MetaRules) {
		host, _, _ := strings.Cut(rule, "/")
		if host == "" {
			host = "*"
		}
		hosts = append(hosts, host)
	}
	if len(hosts) == 0 {
		return "*"
	}
	return strings.Join(hosts, ",")
}

func subjects(r v1.Resource, _ time.Time) string {
	return orNone(strings.Join(r.MetaStrings(v1.MetaSubjects), ","))
}

func createdAt(r v1.Resource, _ time.Time) string {
	if r.CreatedAt.IsZero() {
		return unknownValue
	}
	return r.CreatedAt.UTC().Format(time.RFC3339)
}

func age(r v1.Resource, now time.Time) string {
	if r.CreatedAt.IsZero() {
		return unknownValue
	}
	return duration.HumanDuration(now.Sub(r.CreatedAt))
}

// lastSeen is the age of the last occurrence of an event.
func lastSeen(r v1.Resource, now time.Time) string {
	seen, err := time.Parse(time.RFC3339, r.MetaString(v1.MetaLastSeen))
	if err != nil {
		return age(r, now)
	}
	return duration.HumanDuration(now.Sub(seen))
}

func labelsColumn(r v1.Resource) string {
	if len(r.Labels) == 0 {
		return noneValue
	}
	return labels.Set(r.Labels).String()
}

func orNone(s string) string {
	if s == "" {
		return noneValue
	}
	return s
}

// formatValue renders a metadata value for describe output.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return noneValue
	case map[string]string:
		if len(t) == 0 {
			return noneValue
		}
		return labels.Set(t).String()
	case map[string]any:
		if len(t) == 0 {
			return noneValue
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+formatValue(t[k]))
		}
		return strings.Join(parts, ",")
	case []string:
		if len(t) == 0 {
			return noneValue
		}
		return strings.Join(t, ",")
	case []any:
		if len(t) == 0 {
			return noneValue
		}
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ",")
	case string:
		return orNone(t)
	default:
		return v1.Resource{Metadata: map[string]any{"v": v}}.MetaString("v")
	}
}
