package storage_test

import (
	"context"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	k1sstorage "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/storage"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/storage/pebble/pkg/storage"
)

var _ = Describe("Pebble Storage", func() {
	var (
		ctx     context.Context
		dir     string
		backend k1sstorage.Backend
		store   v1.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = filepath.Join(GinkgoT().TempDir(), "db")
		backend = storage.NewPebbleStorageWithPath(dir, k1sstorage.Config{})
		store = v1.Store{
			{ID: "res-1", Type: v1.TypeNamespace, Name: "dev", CreatedAt: time.Unix(0, 0).UTC()},
			{
				ID: "res-2", Type: v1.TypeDeployment, Name: "web", Namespace: "default",
				Metadata:  map[string]any{v1.MetaImage: "nginx", v1.MetaReplicas: 3, v1.MetaRevision: 1},
				CreatedAt: time.Unix(10, 0).UTC(),
			},
		}
	})

	AfterEach(func() {
		Expect(backend.Close()).To(Succeed())
	})

	It("should report its name", func() {
		Expect(backend.Name()).To(Equal("pebble"))
	})

	It("should persist sessions across reopen", func() {
		Expect(backend.Save(ctx, "lesson1", store)).To(Succeed())
		Expect(backend.Close()).To(Succeed())

		backend = storage.NewPebbleStorageWithPath(dir, k1sstorage.Config{})
		loaded, err := backend.Load(ctx, "lesson1")
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(HaveLen(2))
		Expect(loaded[1].MetaIntOr(v1.MetaReplicas, 0)).To(Equal(3))
		Expect(loaded[1].CreatedAt.Equal(time.Unix(10, 0))).To(BeTrue())
	})

	It("should overwrite an existing session", func() {
		Expect(backend.Save(ctx, "s", store)).To(Succeed())
		Expect(backend.Save(ctx, "s", store[:1])).To(Succeed())

		loaded, err := backend.Load(ctx, "s")
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(HaveLen(1))
	})

	It("should return not found for unknown sessions", func() {
		_, err := backend.Load(ctx, "missing")
		Expect(k1sstorage.IsNotFound(err)).To(BeTrue())
		Expect(k1sstorage.IsNotFound(backend.Delete(ctx, "missing"))).To(BeTrue())
	})

	It("should list sessions in key order", func() {
		for _, s := range []string{"c", "a", "b"} {
			Expect(backend.Save(ctx, s, store)).To(Succeed())
		}
		sessions, err := backend.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(sessions).To(Equal([]string{"a", "b", "c"}))

		Expect(backend.Delete(ctx, "b")).To(Succeed())
		n, err := backend.Count(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(2)))
	})

	It("should compact", func() {
		Expect(backend.Save(ctx, "s", store)).To(Succeed())
		Expect(backend.Compact(ctx)).To(Succeed())
	})

	It("should fail after close", func() {
		Expect(backend.Close()).To(Succeed())
		_, err := backend.Load(ctx, "s")
		Expect(err).To(MatchError(k1sstorage.ErrClosed))
	})

	It("should be buildable from factory configuration", func() {
		b, err := storage.New(k1sstorage.FactoryConfig{Type: k1sstorage.StorageTypePebble, Path: GinkgoT().TempDir()})
		Expect(err).NotTo(HaveOccurred())
		defer b.Close()
		Expect(b.Save(ctx, "x", store)).To(Succeed())
	})
})
