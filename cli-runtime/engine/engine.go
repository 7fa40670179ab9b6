// Package engine parses tutorial command lines and routes them to the
// handlers. The engine owns the id generator, clock, random source, type
// table and validator of a session but never the store: every call receives
// the current store and returns the next one.
package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/handlers"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/events"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/metrics"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Engine executes command lines against a store.
type Engine struct {
	ctx      *handlers.Context
	keywords []string
	handlers map[string]handlers.Handler
	observer metrics.Observer
	recorder *events.Recorder
	logger   *zap.Logger
}

// New creates an engine. Collaborators not set through options get the
// defaults of handlers.NewContext.
func New(opts ...Option) (*Engine, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	hctx, err := handlers.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create handler context: %w", err)
	}
	if config.IDs != nil {
		hctx.IDs = config.IDs
	}
	if config.Clock != nil {
		hctx.Clock = config.Clock
	}
	if config.Rand != nil {
		hctx.Rand = config.Rand
	}
	if config.Registry != nil {
		hctx.Registry = config.Registry
	}
	if config.Validator != nil {
		hctx.Validator = config.Validator
	}
	if config.Defaulter != nil {
		hctx.Defaulter = config.Defaulter
	}
	if config.Logger != nil {
		hctx.Logger = config.Logger
	}

	observer := config.Observer
	if observer == nil {
		observer = metrics.Nop{}
	}

	e := &Engine{
		ctx:      hctx,
		keywords: slices.Clone(config.Keywords),
		handlers: maps.Clone(config.Handlers),
		observer: observer,
		logger:   hctx.Logger,
	}
	if config.RecordEvents {
		e.recorder = events.NewRecorder(events.RecorderOptions{
			NextID: hctx.IDs.Next,
			Clock:  hctx.Clock,
			Suffix: func() string { return hctx.Rand.String(10) },
		})
	}
	return e, nil
}

// Bootstrap returns the initial tutorial cluster, with ids taken from the
// engine's generator.
func (e *Engine) Bootstrap() v1.Store {
	return v1.Bootstrap(e.ctx.IDs.Next, e.ctx.Clock())
}

// Keywords returns the accepted invocation keywords.
func (e *Engine) Keywords() []string {
	return slices.Clone(e.keywords)
}

// Actions returns the registered actions in sorted order.
func (e *Engine) Actions() []string {
	actions := make([]string, 0, len(e.handlers))
	for action := range e.handlers {
		actions = append(actions, action)
	}
	slices.Sort(actions)
	return actions
}

// Execute runs one command line. See ExecuteContext.
func (e *Engine) Execute(store v1.Store, line string) (v1.Store, handlers.Result) {
	return e.ExecuteContext(context.Background(), store, line)
}

// ExecuteContext runs one command line against store. On failure the
// returned store is store itself. A panicking handler is reported as a
// failure result.
func (e *Engine) ExecuteContext(ctx context.Context, store v1.Store, line string) (next v1.Store, result handlers.Result) {
	start := time.Now()
	action := ""
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("handler panicked",
				zap.String("action", action),
				zap.String("line", line),
				zap.Any("panic", r),
				zap.Stack("stack"))
			next, result = store, handlers.Fail(fmt.Errorf("internal error while running %q: %v", action, r))
		}
		e.observer.ObserveCommand(action, result.Success, time.Since(start))
		e.observer.ObserveStore(next)
	}()

	cmd, err := e.Parse(line)
	if err != nil {
		e.logger.Debug("rejected command", zap.String("line", line), zap.Error(err))
		return store, handlers.Fail(err)
	}
	action = cmd.Action

	handler, ok := e.handlers[cmd.Action]
	if !ok {
		return store, handlers.Fail(fmt.Errorf("unknown command %q for %q", cmd.Action, cmd.Keyword))
	}

	hctx := *e.ctx
	hctx.Ctx = ctx
	next, result = handler(&hctx, store, cmd.Args, cmd.Namespace)
	if !result.Success {
		next = store
	} else if e.recorder != nil {
		recorded := e.recorder.RecordChanges(store, next, result.ResourcesCreated, result.ResourcesDeleted, result.ResourcesUpdated)
		result = announceEvents(result, next, recorded)
		next = recorded
	}

	e.logger.Debug("executed command",
		zap.String("action", cmd.Action),
		zap.String("namespace", cmd.Namespace),
		zap.Bool("success", result.Success),
		zap.Int("created", len(result.ResourcesCreated)),
		zap.Int("deleted", len(result.ResourcesDeleted)),
		zap.Int("updated", len(result.ResourcesUpdated)))
	return next, result
}

// announceEvents adds the event records the recorder wrote on top of the
// handler's store to result, so every id in the store shows up in some
// result: new events as created, aggregated ones as updated and events
// trimmed past the cap as deleted.
func announceEvents(result handlers.Result, handled, recorded v1.Store) handlers.Result {
	before := make(map[string]v1.Resource, len(handled))
	for _, r := range handled {
		before[r.ID] = r
	}
	kept := make(map[string]bool, len(recorded))
	for _, r := range recorded {
		kept[r.ID] = true
		old, existed := before[r.ID]
		switch {
		case !existed:
			result.ResourcesCreated = append(result.ResourcesCreated, r)
		case r.Type == v1.TypeEvent && eventChanged(old, r):
			result.ResourcesUpdated = append(result.ResourcesUpdated, r)
		}
	}
	for _, r := range handled {
		if !kept[r.ID] {
			result.ResourcesDeleted = append(result.ResourcesDeleted, r.ID)
		}
	}
	return result
}

func eventChanged(old, r v1.Resource) bool {
	return old.MetaIntOr(v1.MetaCount, 1) != r.MetaIntOr(v1.MetaCount, 1) ||
		old.MetaString(v1.MetaLastSeen) != r.MetaString(v1.MetaLastSeen)
}

// Command is a parsed command line.
type Command struct {
	Keyword   string
	Action    string
	Namespace string
	// Args are the tokens after the action with the namespace flag removed
	Args []string
}

// Parse tokenizes line, checks the invocation keyword and extracts
// -n/--namespace from anywhere on the line.
func (e *Engine) Parse(line string) (Command, error) {
	tokens, err := flags.Tokenize(line)
	if err != nil {
		return Command{}, err
	}
	if len(tokens) == 0 || !slices.Contains(e.keywords, tokens[0]) {
		return Command{}, fmt.Errorf("commands must start with %s", e.keywordList())
	}

	cmd := Command{Keyword: tokens[0]}
	args := tokens[1:]

	namespace, found, err := flags.ExtractFlagValue(&args, flags.FlagNamespace, flags.FlagNamespaceShort)
	if err != nil {
		return Command{}, err
	}
	switch {
	case !found:
		cmd.Namespace = flags.DefaultNamespace
	case namespace == "":
		return Command{}, fmt.Errorf("the namespace must not be empty")
	default:
		cmd.Namespace = namespace
	}

	if len(args) == 0 {
		return Command{}, fmt.Errorf("no command given, run %q for a list of commands", cmd.Keyword+" help")
	}
	cmd.Action = args[0]
	cmd.Args = args[1:]
	return cmd, nil
}

func (e *Engine) keywordList() string {
	quoted := make([]string, len(e.keywords))
	for i, k := range e.keywords {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return strings.Join(quoted, " or ")
}
