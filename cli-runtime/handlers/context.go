// Package handlers implements the actions of the tutorial command line. Every
// handler is a pure function over the cluster store: it receives the current
// store and the positional arguments left after the engine extracted the
// namespace, and returns either a new store and a success result, or the
// untouched input store and a failure result.
package handlers

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	utilrand "k8s.io/apimachinery/pkg/util/rand"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/defaulting"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/uid"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/validation"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Randomizer is the source of generated suffixes, ports and addresses.
type Randomizer interface {
	// Intn returns a number in [0, n)
	Intn(n int) int
	// String returns a random string of length n from the kubernetes
	// name alphabet
	String(n int) string
}

type globalRandomizer struct{}

func (globalRandomizer) Intn(n int) int      { return utilrand.Intn(n) }
func (globalRandomizer) String(n int) string { return utilrand.String(n) }

// NewRandomizer returns a randomizer backed by apimachinery's rand package.
func NewRandomizer() Randomizer {
	return globalRandomizer{}
}

// alphanums is the alphabet of apimachinery's rand.String: no vowels, so
// generated names never spell words, and no confusable characters.
const alphanums = "bcdfghjklmnpqrstvwxz2456789"

type seededRandomizer struct {
	r *rand.Rand
}

// NewSeededRandomizer returns a deterministic randomizer owned by the caller.
func NewSeededRandomizer(seed int64) Randomizer {
	return &seededRandomizer{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRandomizer) Intn(n int) int { return s.r.Intn(n) }

func (s *seededRandomizer) String(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanums[s.r.Intn(len(alphanums))]
	}
	return string(b)
}

// Context carries the collaborators a handler needs. It is owned by the
// engine and shared by every command of a session.
type Context struct {
	Ctx       context.Context
	IDs       uid.Generator
	Clock     func() time.Time
	Rand      Randomizer
	Registry  registry.Registry
	Validator validation.Validator
	Defaulter defaulting.Defaulter
	Logger    *zap.Logger
}

// NewContext returns a context with a fresh id sequence, the wall clock, the
// built-in resource table and validation rules.
func NewContext() (*Context, error) {
	reg, err := registry.NewCoreRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build resource registry: %w", err)
	}
	validator, err := validation.NewDefaultManager()
	if err != nil {
		return nil, fmt.Errorf("failed to build validator: %w", err)
	}
	defaulter, err := defaulting.NewCoreManager()
	if err != nil {
		return nil, fmt.Errorf("failed to build defaulter: %w", err)
	}
	return &Context{
		Ctx:       context.Background(),
		IDs:       uid.NewSequence(),
		Clock:     time.Now,
		Rand:      NewRandomizer(),
		Registry:  reg,
		Validator: validator,
		Defaulter: defaulter,
		Logger:    zap.NewNop(),
	}, nil
}

func (c *Context) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

func (c *Context) nextID() string {
	if c.IDs == nil {
		c.IDs = uid.NewSequence()
	}
	return c.IDs.Next()
}

func (c *Context) rand() Randomizer {
	if c.Rand == nil {
		c.Rand = NewRandomizer()
	}
	return c.Rand
}

func (c *Context) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Resolve maps a type token typed by the user to its registered config.
func (c *Context) Resolve(token string) (registry.ResourceConfig, error) {
	if c.Registry == nil {
		return registry.ResourceConfig{}, fmt.Errorf("no resource registry configured")
	}
	return c.Registry.Resolve(token)
}

// Config returns the config of a type tag, synthesizing one for types the
// registry does not know.
func (c *Context) Config(resourceType string) registry.ResourceConfig {
	if c.Registry != nil {
		if config, err := c.Registry.GetResourceConfig(resourceType); err == nil {
			return config
		}
	}
	return registry.ResourceConfig{
		Type:       resourceType,
		Singular:   resourceType,
		Plural:     resourceType + "s",
		Kind:       resourceType,
		Version:    "v1",
		Namespaced: !v1.IsClusterScoped(resourceType),
	}
}

// applyDefaults fills unset metadata of resources in place.
func (c *Context) applyDefaults(resources []v1.Resource) error {
	if c.Defaulter == nil {
		return nil
	}
	for i, r := range resources {
		defaulted, err := c.Defaulter.Default(c.context(), r)
		if err != nil {
			return err
		}
		resources[i] = defaulted
	}
	return nil
}

// validate runs the validator over every resource about to be committed.
func (c *Context) validate(resources ...v1.Resource) error {
	if c.Validator == nil {
		return nil
	}
	for _, r := range resources {
		if err := c.Validator.Validate(c.context(), c.Config(r.Type), r); err != nil {
			return err
		}
	}
	return nil
}

// Address helpers. The ranges mirror a kind cluster: services in
// 10.96.0.0/16, pods in 10.244.0.0/16, nodes in 172.18.0.0/16. External
// addresses come from the documentation range 203.0.113.0/24.

func (c *Context) clusterIP() string {
	return fmt.Sprintf("10.96.%d.%d", c.rand().Intn(256), 1+c.rand().Intn(254))
}

func (c *Context) podIP() string {
	return fmt.Sprintf("10.244.%d.%d", c.rand().Intn(256), 1+c.rand().Intn(254))
}

func (c *Context) nodeIP() string {
	return fmt.Sprintf("172.18.0.%d", 2+c.rand().Intn(253))
}

func (c *Context) externalIP() string {
	return fmt.Sprintf("203.0.113.%d", 1+c.rand().Intn(254))
}

// NodePortMin and NodePortMax bound the ports allocated to NodePort and
// LoadBalancer services.
const (
	NodePortMin = 30000
	NodePortMax = 32767
)

func (c *Context) nodePort() int {
	return NodePortMin + c.rand().Intn(NodePortMax-NodePortMin+1)
}
