// Package rules evaluates CEL expressions against parsed command line
// options.
//
// Every value option is declared with its zero value when absent, so
// expressions that care about presence use the present map:
//
//	present.root && loglevel <= 4 && !debug
package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/shibukawa/kcmdline"
	"github.com/shibukawa/kcmdline/cmdline"
)

// PresentVariable is the map(string, bool) telling which value options were given
const PresentVariable = "present"

// IPv6DisableVariable is the CEL name of ipv6.disable
const IPv6DisableVariable = "ipv6_disable"

// Result is the outcome of one rule against one set of options
type Result struct {
	Rule   kcmdline.Rule
	Passed bool
	Err    error
}

// Failed reports whether the result fails a check
func (r Result) Failed() bool {
	return r.Err != nil || (!r.Passed && r.Rule.Severity != kcmdline.SeverityWarning)
}

// Engine holds compiled rules
type Engine struct {
	env      *cel.Env
	compiled []compiledRule
}

type compiledRule struct {
	rule    kcmdline.Rule
	program cel.Program
}

// NewEnv creates the CEL environment describing parsed options
func NewEnv() (*cel.Env, error) {
	envOptions := []cel.EnvOption{
		cel.CrossTypeNumericComparisons(true),
		cel.EagerlyValidateDeclarations(true),
		cel.Variable(cmdline.KeyRoot, cel.StringType),
		cel.Variable(cmdline.KeyInit, cel.StringType),
		cel.Variable(cmdline.KeyLogLevel, cel.UintType),
		cel.Variable(cmdline.KeyMem, cel.UintType),
		cel.Variable(cmdline.KeyVGA, cel.UintType),
		cel.Variable(IPv6DisableVariable, cel.BoolType),
		cel.Variable(PresentVariable, cel.MapType(cel.StringType, cel.BoolType)),
	}

	for _, flag := range cmdline.KnownFlags() {
		envOptions = append(envOptions, cel.Variable(flag, cel.BoolType))
	}

	env, err := cel.NewEnv(envOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create rule environment: %w", err)
	}

	return env, nil
}

// New compiles rules. It fails on the first rule that does not compile to
// a bool expression.
func New(rules []kcmdline.Rule) (*Engine, error) {
	env, err := NewEnv()
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		env:      env,
		compiled: make([]compiledRule, 0, len(rules)),
	}

	for _, rule := range rules {
		program, err := engine.compile(rule.Expr)
		if err != nil {
			return nil, fmt.Errorf("rule '%s': %w", rule.Name, err)
		}

		engine.compiled = append(engine.compiled, compiledRule{rule: rule, program: program})
	}

	return engine, nil
}

func (e *Engine) compile(expression string) (cel.Program, error) {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %w", kcmdline.ErrRuleCompile, issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: got %s", kcmdline.ErrNotBoolean, ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kcmdline.ErrRuleCompile, err)
	}

	return program, nil
}

// Len returns the number of compiled rules
func (e *Engine) Len() int {
	return len(e.compiled)
}

// Evaluate runs every rule against opts, in rule order
func (e *Engine) Evaluate(opts cmdline.Options) []Result {
	activation := Activation(opts)
	results := make([]Result, 0, len(e.compiled))

	for _, c := range e.compiled {
		result := Result{Rule: c.rule}

		out, _, err := c.program.Eval(activation)
		if err != nil {
			result.Err = fmt.Errorf("%w: %w", kcmdline.ErrRuleEvaluation, err)
		} else if passed, ok := out.Value().(bool); ok {
			result.Passed = passed
		} else {
			result.Err = fmt.Errorf("%w: got %T", kcmdline.ErrNotBoolean, out.Value())
		}

		results = append(results, result)
	}

	return results
}

// Activation maps options to CEL variables. Absent values are zero.
func Activation(opts cmdline.Options) map[string]any {
	activation := map[string]any{
		cmdline.KeyRoot:     deref(opts.Root),
		cmdline.KeyInit:     deref(opts.Init),
		cmdline.KeyLogLevel: uint64(deref(opts.LogLevel)),
		cmdline.KeyMem:      deref(opts.Mem),
		cmdline.KeyVGA:      uint64(deref(opts.VGA)),
		IPv6DisableVariable: opts.IPv6Disable,
		PresentVariable: map[string]bool{
			cmdline.KeyRoot:     opts.Root != nil,
			cmdline.KeyInit:     opts.Init != nil,
			cmdline.KeyLogLevel: opts.LogLevel != nil,
			cmdline.KeyMem:      opts.Mem != nil,
			cmdline.KeyVGA:      opts.VGA != nil,
		},
	}

	set := make(map[string]bool)
	for _, flag := range opts.Flags() {
		set[flag] = true
	}
	for _, flag := range cmdline.KnownFlags() {
		activation[flag] = set[flag]
	}

	return activation
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}

	return *p
}
