package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/handlers"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/metrics"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/defaulting"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/pkg/uid"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/validation"
)

// DefaultKeyword is the invocation keyword every line must start with.
const DefaultKeyword = "kubectl"

// Option is a functional option for configuring the engine
type Option func(*Config)

// Config holds the collaborators of an engine. Nil fields are filled with
// defaults by New.
type Config struct {
	// Keywords accepted as the first token of a line
	Keywords []string

	// IDs generates resource ids
	IDs uid.Generator

	// Clock stamps CreatedAt and drives restarts
	Clock func() time.Time

	// Rand generates name suffixes, ports and addresses
	Rand handlers.Randomizer

	Registry  registry.Registry
	Validator validation.Validator
	Defaulter defaulting.Defaulter

	Logger   *zap.Logger
	Observer metrics.Observer

	// Handlers maps actions to their handlers
	Handlers map[string]handlers.Handler

	// RecordEvents turns successful commands into cluster events
	RecordEvents bool
}

// DefaultConfig returns a configuration with the kubectl keyword and the
// built-in action table. The remaining collaborators are created by New.
func DefaultConfig() *Config {
	return &Config{
		Keywords:     []string{DefaultKeyword},
		Handlers:     handlers.DefaultHandlers(),
		RecordEvents: true,
	}
}

// WithKeywords replaces the accepted invocation keywords, e.g. "kubectl"
// and "k".
func WithKeywords(keywords ...string) Option {
	return func(c *Config) {
		if len(keywords) > 0 {
			c.Keywords = keywords
		}
	}
}

// WithIDs sets the id generator. Restored sessions pass a sequence that
// continues after the highest stored id.
func WithIDs(ids uid.Generator) Option {
	return func(c *Config) {
		c.IDs = ids
	}
}

// WithClock sets the clock
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithRand sets the random source
func WithRand(r handlers.Randomizer) Option {
	return func(c *Config) {
		c.Rand = r
	}
}

// WithRegistry sets the resource type table
func WithRegistry(r registry.Registry) Option {
	return func(c *Config) {
		c.Registry = r
	}
}

// WithValidator sets the validator run before every commit
func WithValidator(v validation.Validator) Option {
	return func(c *Config) {
		c.Validator = v
	}
}

// WithDefaulter sets the defaulter applied to created resources
func WithDefaulter(d defaulting.Defaulter) Option {
	return func(c *Config) {
		c.Defaulter = d
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithObserver sets the metrics observer
func WithObserver(o metrics.Observer) Option {
	return func(c *Config) {
		c.Observer = o
	}
}

// WithHandler adds or replaces the handler of one action.
func WithHandler(action string, h handlers.Handler) Option {
	return func(c *Config) {
		if c.Handlers == nil {
			c.Handlers = map[string]handlers.Handler{}
		}
		c.Handlers[action] = h
	}
}

// WithHandlers replaces the whole action table.
func WithHandlers(table map[string]handlers.Handler) Option {
	return func(c *Config) {
		c.Handlers = table
	}
}

// WithEvents enables or disables event recording.
func WithEvents(enabled bool) Option {
	return func(c *Config) {
		c.RecordEvents = enabled
	}
}
