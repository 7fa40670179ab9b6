package validation

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// ruleCostLimit bounds the work a single rule may do. Rules only look at a
// handful of labels and metadata keys, so anything near the limit is a bug.
const ruleCostLimit = 10000

// ruleCompiler compiles rule expressions once per process and hands out the
// cached program afterwards.
type ruleCompiler struct {
	env *cel.Env

	mu       sync.Mutex
	programs map[string]*ruleProgram
}

type ruleProgram struct {
	expression string
	program    cel.Program
}

// NewCELValidator returns a CELValidator whose expressions see their input
// as the dynamically typed variable "self".
func NewCELValidator() CELValidator {
	env, err := cel.NewEnv(
		cel.Variable("self", cel.DynType),
		cel.DefaultUTCTimeZone(true),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}
	return &ruleCompiler{
		env:      env,
		programs: make(map[string]*ruleProgram),
	}
}

// ValidateCELValue compiles expression if needed and requires it to be true
// for value.
func (c *ruleCompiler) ValidateCELValue(ctx context.Context, value any, expression string) error {
	compiled, err := c.CompileCEL(expression)
	if err != nil {
		return err
	}
	ok, err := compiled.Eval(ctx, value)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("rule %q is not satisfied", expression)
	}
	return nil
}

// CompileCEL returns the cached program for expression, compiling it on first
// use.
func (c *ruleCompiler) CompileCEL(expression string) (CompiledCELProgram, error) {
	if expression == "" {
		return nil, fmt.Errorf("rule expression cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.programs[expression]; ok {
		return p, nil
	}

	ast, issues := c.env.Compile(expression)
	if issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile rule %q: %w", expression, issues.Err())
	}
	program, err := c.env.Program(ast,
		cel.CostLimit(ruleCostLimit),
		cel.InterruptCheckFrequency(100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build program for rule %q: %w", expression, err)
	}

	p := &ruleProgram{expression: expression, program: program}
	c.programs[expression] = p
	return p, nil
}

// Eval runs the rule with value bound to self. Anything but a boolean result
// is an error.
func (p *ruleProgram) Eval(ctx context.Context, value any) (bool, error) {
	out, _, err := p.program.ContextEval(ctx, map[string]any{"self": value})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate rule %q: %w", p.expression, err)
	}
	return asBool(out)
}

func asBool(v ref.Val) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, fmt.Errorf("rule produced no result")
	case types.Bool:
		return bool(b), nil
	default:
		return false, fmt.Errorf("rule must produce a bool, got %s", v.Type().TypeName())
	}
}
