package defaulting_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/defaulting"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

var _ = Describe("Defaulting Manager", func() {
	var (
		ctx     context.Context
		manager defaulting.DefaultingManager
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		manager, err = defaulting.NewCoreManager()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("core defaults", func() {
		It("should fill missing pod metadata", func() {
			pod, err := manager.Default(ctx, v1.Resource{Type: v1.TypePod, Name: "web"})
			Expect(err).NotTo(HaveOccurred())
			Expect(pod.MetaString(v1.MetaImage)).To(Equal(v1.DefaultImage))
			Expect(pod.MetaString(v1.MetaStatus)).To(Equal(v1.StatusRunning))
			Expect(pod.MetaIntOr(v1.MetaRestarts, -1)).To(Equal(0))
		})

		It("should not overwrite set keys, including zero values", func() {
			in := v1.Resource{Type: v1.TypeDeployment, Name: "web", Metadata: map[string]any{
				v1.MetaImage:    "redis",
				v1.MetaReplicas: 0,
			}}
			out, err := manager.Default(ctx, in)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.MetaString(v1.MetaImage)).To(Equal("redis"))
			Expect(out.MetaIntOr(v1.MetaReplicas, -1)).To(Equal(0))
		})

		It("should leave the input untouched", func() {
			in := v1.Resource{Type: v1.TypeSecret, Name: "creds", Metadata: map[string]any{}}
			out, err := manager.Default(ctx, in)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.MetaString(v1.MetaSecretType)).To(Equal("Opaque"))
			Expect(in.Metadata).To(BeEmpty())
		})

		It("should be idempotent", func() {
			once, err := manager.Default(ctx, v1.Resource{Type: v1.TypePersistentVolumeClaim, Name: "data"})
			Expect(err).NotTo(HaveOccurred())
			twice, err := manager.Default(ctx, once)
			Expect(err).NotTo(HaveOccurred())
			Expect(twice).To(Equal(once))
			Expect(once.MetaString(v1.MetaStorage)).To(Equal(defaulting.DefaultStorage))
		})

		It("should pass through types without defaults", func() {
			in := v1.Resource{Type: v1.TypeConfigMap, Name: "cfg"}
			Expect(manager.HasDefaultsFor(v1.TypeConfigMap)).To(BeFalse())
			out, err := manager.Default(ctx, in)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(in))
		})

		It("should reject resources without a type", func() {
			_, err := manager.Default(ctx, v1.Resource{Name: "x"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RegisterObjectDefaults", func() {
		It("should validate registrations", func() {
			Expect(manager.RegisterObjectDefaults(nil)).To(HaveOccurred())
			Expect(manager.RegisterObjectDefaults(&defaulting.ObjectDefaults{})).To(HaveOccurred())
			Expect(manager.RegisterObjectDefaults(&defaulting.ObjectDefaults{
				Type:     "widget",
				Defaults: []defaulting.DefaultValue{{Key: "", Value: 1}},
			})).To(HaveOccurred())
			Expect(manager.RegisterObjectDefaults(&defaulting.ObjectDefaults{
				Type:     "widget",
				Defaults: []defaulting.DefaultValue{{Key: "parts", Value: []string{"a"}}},
			})).To(MatchError(ContainSubstring("must be a scalar")))
		})

		It("should replace earlier defaults of the same type", func() {
			Expect(manager.RegisterObjectDefaults(&defaulting.ObjectDefaults{
				Type:     v1.TypeService,
				Defaults: []defaulting.DefaultValue{{Key: v1.MetaServiceType, Value: "NodePort"}},
			})).To(Succeed())
			svc, err := manager.Default(ctx, v1.Resource{Type: v1.TypeService, Name: "web"})
			Expect(err).NotTo(HaveOccurred())
			Expect(svc.MetaString(v1.MetaServiceType)).To(Equal("NodePort"))
		})
	})

	Describe("strategies", func() {
		It("should run supported strategies before static defaults", func() {
			strategy := defaulting.NewBasicStrategy(func(_ context.Context, r v1.Resource) (v1.Resource, error) {
				return r.WithMeta(v1.MetaImage, "busybox"), nil
			}, v1.TypeJob)
			Expect(manager.RegisterStrategy(strategy)).To(Succeed())

			job, err := manager.Default(ctx, v1.Resource{Type: v1.TypeJob, Name: "once"})
			Expect(err).NotTo(HaveOccurred())
			Expect(job.MetaString(v1.MetaImage)).To(Equal("busybox"))
			Expect(job.MetaIntOr(v1.MetaCompletions, 0)).To(Equal(1))

			pod, err := manager.Default(ctx, v1.Resource{Type: v1.TypePod, Name: "p"})
			Expect(err).NotTo(HaveOccurred())
			Expect(pod.MetaString(v1.MetaImage)).To(Equal(v1.DefaultImage))
		})

		It("should apply strategies without types to everything", func() {
			Expect(manager.RegisterStrategy(defaulting.NewBasicStrategy(func(_ context.Context, r v1.Resource) (v1.Resource, error) {
				return r.WithMeta("team", "platform"), nil
			}))).To(Succeed())
			Expect(manager.HasDefaultsFor("widget")).To(BeTrue())

			out, err := manager.Default(ctx, v1.Resource{Type: "widget", Name: "w"})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.MetaString("team")).To(Equal("platform"))
		})

		It("should wrap strategy errors", func() {
			Expect(manager.RegisterStrategy(defaulting.NewBasicStrategy(func(_ context.Context, r v1.Resource) (v1.Resource, error) {
				return r, errors.New("boom")
			}))).To(Succeed())
			_, err := manager.Default(ctx, v1.Resource{Type: v1.TypePod, Name: "p"})
			Expect(err).To(MatchError(ContainSubstring("failed to apply defaulting strategy: boom")))
		})

		It("should reject nil strategies", func() {
			Expect(manager.RegisterStrategy(nil)).To(HaveOccurred())
		})
	})
})
