package validation_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/validation"
)

var _ = Describe("Validation Manager", func() {
	var (
		ctx context.Context
		mgr validation.ValidationManager
		reg registry.Registry
	)

	config := func(resourceType string) registry.ResourceConfig {
		c, err := reg.GetResourceConfig(resourceType)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		mgr, err = validation.NewDefaultManager()
		Expect(err).NotTo(HaveOccurred())
		reg, err = registry.NewCoreRegistry()
		Expect(err).NotTo(HaveOccurred())
	})

	It("should accept a valid deployment", func() {
		obj := v1.Resource{
			Type:     v1.TypeDeployment,
			Name:     "web",
			Labels:   map[string]string{"app": "web"},
			Metadata: map[string]any{v1.MetaImage: "nginx", v1.MetaReplicas: 3},
		}
		Expect(mgr.Validate(ctx, config(v1.TypeDeployment), obj)).To(Succeed())
	})

	It("should reject invalid names with an Invalid status", func() {
		obj := v1.Resource{Type: v1.TypeDeployment, Name: "Web_App"}
		err := mgr.Validate(ctx, config(v1.TypeDeployment), obj)
		Expect(apierrors.IsInvalid(err)).To(BeTrue())
		Expect(err.Error()).To(HavePrefix(`Deployment.apps "Web_App" is invalid: metadata.name`))
	})

	It("should require services to be DNS labels", func() {
		obj := v1.Resource{Type: v1.TypeService, Name: "web.svc"}
		Expect(mgr.Validate(ctx, config(v1.TypeService), obj)).NotTo(Succeed())

		obj = v1.Resource{Type: v1.TypeConfigMap, Name: "web.cfg"}
		Expect(mgr.Validate(ctx, config(v1.TypeConfigMap), obj)).To(Succeed())
	})

	It("should reject negative replicas", func() {
		obj := v1.Resource{Type: v1.TypeReplicaSet, Name: "web", Metadata: map[string]any{v1.MetaReplicas: -1}}
		err := mgr.Validate(ctx, config(v1.TypeReplicaSet), obj)
		Expect(err).To(MatchError(ContainSubstring("metadata.replicas")))
		Expect(err).To(MatchError(ContainSubstring("greater than or equal to 0")))
	})

	It("should handle numbers decoded from JSON", func() {
		obj := v1.Resource{Type: v1.TypeDeployment, Name: "web", Metadata: map[string]any{v1.MetaReplicas: float64(2)}}
		Expect(mgr.Validate(ctx, config(v1.TypeDeployment), obj)).To(Succeed())
	})

	DescribeTable("service rules",
		func(meta map[string]any, valid bool) {
			obj := v1.Resource{Type: v1.TypeService, Name: "svc", Metadata: meta}
			err := mgr.Validate(ctx, config(v1.TypeService), obj)
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(HaveOccurred())
			}
		},
		Entry("cluster ip", map[string]any{v1.MetaServiceType: "ClusterIP", v1.MetaPort: 80}, true),
		Entry("port too large", map[string]any{v1.MetaPort: 70000}, false),
		Entry("port zero", map[string]any{v1.MetaPort: 0}, false),
		Entry("node port in range", map[string]any{v1.MetaServiceType: "NodePort", v1.MetaNodePort: 30080}, true),
		Entry("node port out of range", map[string]any{v1.MetaServiceType: "NodePort", v1.MetaNodePort: 8080}, false),
		Entry("unknown type", map[string]any{v1.MetaServiceType: "Headless"}, false),
		Entry("external name set", map[string]any{v1.MetaServiceType: "ExternalName", v1.MetaExternalName: "db.example.com"}, true),
		Entry("external name missing", map[string]any{v1.MetaServiceType: "ExternalName"}, false),
	)

	It("should validate cron schedules", func() {
		obj := v1.Resource{Type: v1.TypeCronJob, Name: "tick", Metadata: map[string]any{v1.MetaSchedule: "*/5 * * * *"}}
		Expect(mgr.Validate(ctx, config(v1.TypeCronJob), obj)).To(Succeed())

		obj.Metadata[v1.MetaSchedule] = "hourly"
		Expect(mgr.Validate(ctx, config(v1.TypeCronJob), obj)).NotTo(Succeed())
	})

	It("should reject invalid label values", func() {
		obj := v1.Resource{Type: v1.TypePod, Name: "web", Labels: map[string]string{"env": "not valid!"}}
		Expect(mgr.Validate(ctx, config(v1.TypePod), obj)).To(MatchError(ContainSubstring("metadata.labels[env]")))
	})

	It("should stop at the first error with fail fast", func() {
		mgr = validation.NewManager(validation.WithFailFast(true))
		obj := v1.Resource{Type: v1.TypePod, Name: "Bad Name", Labels: map[string]string{"env": "not valid!"}}
		err := mgr.Validate(ctx, config(v1.TypePod), obj)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).NotTo(ContainSubstring("metadata.labels"))
	})

	It("should skip names when disabled", func() {
		mgr = validation.NewManager(validation.WithNameValidation(false))
		obj := v1.Resource{Type: v1.TypePod, Name: "Bad Name"}
		Expect(mgr.Validate(ctx, config(v1.TypePod), obj)).To(Succeed())
	})

	It("should reject rules that do not compile", func() {
		Expect(mgr.RegisterRules("pod", validation.ValidationRule{Field: "x", Expression: "self.("})).NotTo(Succeed())
	})

	It("should report registered types", func() {
		Expect(mgr.HasValidationFor(v1.TypeService)).To(BeTrue())
		Expect(mgr.HasValidationFor(v1.TypeSecret)).To(BeFalse())
	})
})

var _ = Describe("CEL Validator", func() {
	var cv validation.CELValidator

	BeforeEach(func() {
		cv = validation.NewCELValidator()
	})

	It("should evaluate against maps", func() {
		Expect(cv.ValidateCELValue(context.Background(), map[string]any{"a": int64(2)}, "self.a > 1")).To(Succeed())
		Expect(cv.ValidateCELValue(context.Background(), map[string]any{"a": int64(0)}, "self.a > 1")).
			To(MatchError(ContainSubstring("is not satisfied")))
	})

	It("should cache compiled programs", func() {
		first, err := cv.CompileCEL("self == 1")
		Expect(err).NotTo(HaveOccurred())
		second, err := cv.CompileCEL("self == 1")
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(BeIdenticalTo(first))
	})

	It("should reject empty and non-boolean expressions", func() {
		_, err := cv.CompileCEL("")
		Expect(err).To(HaveOccurred())
		Expect(cv.ValidateCELValue(context.Background(), int64(1), "self + 1")).To(HaveOccurred())
	})
})

var _ = Describe("ToCELValue", func() {
	It("should normalize metadata", func() {
		obj := v1.Resource{
			Type: v1.TypeNode, Name: "n1",
			Labels:   map[string]string{"a": "b"},
			Metadata: map[string]any{"n": 3, "f": float64(4), "t": []string{"x"}},
		}
		self := validation.ToCELValue(obj)
		meta := self["metadata"].(map[string]any)
		Expect(meta["n"]).To(Equal(int64(3)))
		Expect(meta["f"]).To(Equal(int64(4)))
		Expect(meta["t"]).To(Equal([]any{"x"}))
		Expect(self["labels"]).To(Equal(map[string]any{"a": "b"}))
	})
})
