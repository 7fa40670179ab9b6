package v1

import (
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Store is the ordered collection of resources making up the cluster state.
// A Store value is treated as immutable: every helper that changes the
// contents returns a new Store and leaves the receiver untouched.
type Store []Resource

// Clone returns a deep copy of s.
func (s Store) Clone() Store {
	if s == nil {
		return nil
	}
	out := make(Store, len(s))
	for i, r := range s {
		out[i] = r.DeepCopy()
	}
	return out
}

// Find returns the resource with the given type and name in namespace. The
// namespace is ignored for cluster-scoped types.
func (s Store) Find(resourceType, name, namespace string) (Resource, bool) {
	ns := ScopedNamespace(resourceType, namespace)
	for _, r := range s {
		if r.Type == resourceType && r.Name == name && r.Namespace == ns {
			return r, true
		}
	}
	return Resource{}, false
}

// Get returns the resource with the given id.
func (s Store) Get(id string) (Resource, bool) {
	for _, r := range s {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}

// Exists reports whether (type, name, namespace) is taken.
func (s Store) Exists(resourceType, name, namespace string) bool {
	_, ok := s.Find(resourceType, name, namespace)
	return ok
}

// Filter returns the resources matching fn, preserving order.
func (s Store) Filter(fn func(Resource) bool) Store {
	var out Store
	for _, r := range s {
		if fn(r) {
			out = append(out, r)
		}
	}
	return out
}

// OfType returns all resources of the given type.
func (s Store) OfType(resourceType string) Store {
	return s.Filter(func(r Resource) bool { return r.Type == resourceType })
}

// OwnedBy returns the direct children of the resource with id owner.
func (s Store) OwnedBy(owner string) Store {
	return s.Filter(func(r Resource) bool { return r.ManagedBy() == owner })
}

// OwnedOfType returns the direct children of owner with the given type.
func (s Store) OwnedOfType(owner, resourceType string) Store {
	return s.Filter(func(r Resource) bool {
		return r.Type == resourceType && r.ManagedBy() == owner
	})
}

// Append returns a new store with rs added at the end.
func (s Store) Append(rs ...Resource) Store {
	out := make(Store, 0, len(s)+len(rs))
	out = append(out, s...)
	return append(out, rs...)
}

// Replace returns a new store where the resource with r.ID is swapped for r.
// Position is preserved.
func (s Store) Replace(r Resource) Store {
	out := make(Store, len(s))
	copy(out, s)
	for i := range out {
		if out[i].ID == r.ID {
			out[i] = r
		}
	}
	return out
}

// Update applies fn to every resource whose id is in ids and returns the new
// store.
func (s Store) Update(ids []string, fn func(Resource) Resource) Store {
	set := sets.New(ids...)
	out := make(Store, len(s))
	for i, r := range s {
		if set.Has(r.ID) {
			out[i] = fn(r.DeepCopy())
			continue
		}
		out[i] = r
	}
	return out
}

// Without returns a new store with the given ids removed.
func (s Store) Without(ids ...string) Store {
	set := sets.New(ids...)
	return s.Filter(func(r Resource) bool { return !set.Has(r.ID) })
}

// OwnershipClosure returns the ids of roots and of every resource whose
// managedBy chain leads to one of them. The closure is computed as a fixed
// point over the current store, so chains of any depth are followed.
// Returned ids are in store order.
func (s Store) OwnershipClosure(roots ...string) []string {
	closure := sets.New[string]()
	for _, id := range roots {
		if _, ok := s.Get(id); ok {
			closure.Insert(id)
		}
	}
	for changed := true; changed; {
		changed = false
		for _, r := range s {
			if closure.Has(r.ID) {
				continue
			}
			if owner := r.ManagedBy(); owner != "" && closure.Has(owner) {
				closure.Insert(r.ID)
				changed = true
			}
		}
	}
	ids := make([]string, 0, closure.Len())
	for _, r := range s {
		if closure.Has(r.ID) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// IDs returns the ids of s in order.
func (s Store) IDs() []string {
	ids := make([]string, len(s))
	for i, r := range s {
		ids[i] = r.ID
	}
	return ids
}

// Namespaces returns the names of all namespace resources.
func (s Store) Namespaces() []string {
	var names []string
	for _, r := range s.OfType(TypeNamespace) {
		names = append(names, r.Name)
	}
	return names
}

// HasNamespace reports whether ns can hold resources. The default namespace
// always exists, even in an empty store.
func (s Store) HasNamespace(ns string) bool {
	return ns == NamespaceDefault || slices.Contains(s.Namespaces(), ns)
}
