package builders_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/labels"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/builders"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

var _ = Describe("ResourceSelector", func() {
	store := v1.Store{
		{ID: "1", Type: v1.TypeNamespace, Name: "dev"},
		{ID: "2", Type: v1.TypePod, Name: "a", Namespace: "default", Labels: map[string]string{"app": "web"}, Metadata: map[string]any{v1.MetaStatus: "Running"}},
		{ID: "3", Type: v1.TypePod, Name: "b", Namespace: "dev", Labels: map[string]string{"app": "db"}, Metadata: map[string]any{v1.MetaStatus: "Completed"}},
		{ID: "4", Type: v1.TypeService, Name: "a", Namespace: "default"},
		{ID: "5", Type: v1.TypeNode, Name: "control-plane"},
	}

	names := func(s v1.Store) []string {
		var out []string
		for _, r := range s {
			out = append(out, r.Key())
		}
		return out
	}

	It("should select by type in the default namespace", func() {
		Expect(names(builders.NewResourceSelector().ForType(v1.TypePod).Select(store))).To(Equal([]string{"pod/a"}))
	})

	It("should select across namespaces", func() {
		Expect(names(builders.NewResourceSelector().ForType(v1.TypePod).InAllNamespaces().Select(store))).
			To(Equal([]string{"pod/a", "pod/b"}))
	})

	It("should select in a given namespace", func() {
		Expect(names(builders.NewResourceSelector().ForType(v1.TypePod).InNamespace("dev").Select(store))).
			To(Equal([]string{"pod/b"}))
	})

	It("should ignore the namespace for cluster scoped types", func() {
		Expect(names(builders.NewResourceSelector().ForType(v1.TypeNode, v1.TypeNamespace).InNamespace("dev").Select(store))).
			To(Equal([]string{"namespace/dev", "node/control-plane"}))
	})

	It("should filter by names and multiple types, keeping store order", func() {
		Expect(names(builders.NewResourceSelector().ForType(v1.TypeService, v1.TypePod).WithNames("a").Select(store))).
			To(Equal([]string{"pod/a", "service/a"}))
	})

	It("should filter by labels", func() {
		selector, err := labels.Parse("app in (db)")
		Expect(err).NotTo(HaveOccurred())
		Expect(names(builders.NewResourceSelector().InAllNamespaces().WithLabels(selector).Select(store))).
			To(Equal([]string{"pod/b"}))
	})

	It("should filter by fields", func() {
		selector, err := fields.ParseSelector("status.phase=Running")
		Expect(err).NotTo(HaveOccurred())
		Expect(names(builders.NewResourceSelector().InAllNamespaces().WithFields(selector).Select(store))).
			To(Equal([]string{"pod/a"}))
	})
})

var _ = Describe("ResourceBuilder", func() {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	It("should build a namespaced resource", func() {
		r := builders.NewResource(v1.TypePod, "web").
			WithLabel("app", "web").
			WithLabels(map[string]string{"env": "dev"}).
			WithMeta(v1.MetaImage, "nginx").
			OwnedBy("res-1").
			Build("res-2", now)

		Expect(r.ID).To(Equal("res-2"))
		Expect(r.Namespace).To(Equal("default"))
		Expect(r.Labels).To(Equal(map[string]string{"app": "web", "env": "dev"}))
		Expect(r.ManagedBy()).To(Equal("res-1"))
		Expect(r.CreatedAt).To(Equal(now))
	})

	It("should drop the namespace for cluster scoped types", func() {
		r := builders.NewResource(v1.TypeNamespace, "dev").InNamespace("other").Build("x", now)
		Expect(r.Namespace).To(BeEmpty())
	})

	It("should not share maps between builds", func() {
		b := builders.NewResource(v1.TypePod, "web").InNamespace("dev")
		first := b.Build("1", now)
		first.Labels["x"] = "y"
		second := b.Build("2", now)
		Expect(second.Labels).NotTo(HaveKey("x"))
		Expect(second.Namespace).To(Equal("dev"))
	})
})
