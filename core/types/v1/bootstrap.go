package v1

import "time"

// Bootstrap returns the store a fresh tutorial session starts from: the
// system namespaces and a single control-plane node.
func Bootstrap(nextID func() string, now time.Time) Store {
	var s Store
	for _, ns := range []string{NamespaceDefault, NamespaceKubeSystem, NamespaceKubePublic} {
		s = append(s, Resource{
			ID:        nextID(),
			Type:      TypeNamespace,
			Name:      ns,
			Labels:    map[string]string{"kubernetes.io/metadata.name": ns},
			Metadata:  map[string]any{MetaStatus: StatusActive},
			CreatedAt: now,
		})
	}
	s = append(s, Resource{
		ID:   nextID(),
		Type: TypeNode,
		Name: "control-plane",
		Labels: map[string]string{
			"kubernetes.io/hostname":                "control-plane",
			"node-role.kubernetes.io/control-plane": "",
		},
		Metadata: map[string]any{
			MetaStatus:  StatusReady,
			MetaRoles:   "control-plane",
			MetaVersion: KubeletVersion,
			MetaTaints:  []string{},
		},
		CreatedAt: now,
	})
	return s
}
