package evaluator

import (
	"strconv"

	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/hosterr"
	"github.com/brewinlang/interpreter/internal/object"
)

// builtinFunc matches the signature every intercepted name is dispatched
// to from Call, before the user function registry is ever consulted
// (spec.md §4.2/§4.9). Grounded on the original's check_builtin_funcs
// interception in original_source/interpreterv4.py and on the teacher's
// name-to-function map style of internal/evaluator/builtins_io.go's
// IOBuiltins().
type builtinFunc func(ev *Evaluator, args []*ast.Node, env *object.Environment) (*object.Thunk, error)

var builtins = map[string]builtinFunc{
	"print":  builtinPrint,
	"inputi": builtinInputI,
	"inputs": builtinInputS,
}

// stringify renders a forced Value the way `print`'s concatenation rule
// requires (spec.md §4.9): true/false for bools, decimal for ints, raw for
// strings, "nil" for nil. Control-flow sentinels never reach here because
// callers check isSignal first.
func stringify(v object.Value) string {
	return v.Inspect()
}

// forceArgs forces each argument expression under env in order, returning
// early (without forcing the rest) on the first error or control-flow
// signal — print's left-to-right evaluation order matters because
// arguments can have side effects (spec.md §8's memoization-idempotence
// property is exercised precisely by builtins like inputi appearing
// inside an argument expression).
func forceArgs(ev *Evaluator, args []*ast.Node, env *object.Environment) ([]object.Value, object.Value, error) {
	values := make([]object.Value, 0, len(args))
	for _, arg := range args {
		v, err := ev.Eval(arg, env)
		if err != nil {
			return nil, nil, err
		}
		if isSignal(v) {
			return nil, v, nil
		}
		values = append(values, v)
	}
	return values, nil, nil
}

func builtinPrint(ev *Evaluator, args []*ast.Node, env *object.Environment) (*object.Thunk, error) {
	values, sig, err := forceArgs(ev, args, env)
	if err != nil {
		return nil, err
	}
	if sig != nil {
		return object.Literal(sig), nil
	}
	line := ""
	for _, v := range values {
		line += stringify(v)
	}
	ev.Host.Output(line)
	return object.Literal(object.TheNil), nil
}

// requireAtMostOnePromptArg enforces spec.md §4.9's "at most one argument"
// rule shared by inputi/inputs, and resolves the prompt text when present.
func requireAtMostOnePromptArg(ev *Evaluator, name string, args []*ast.Node, env *object.Environment) (string, bool, object.Value, error) {
	if len(args) > 1 {
		return "", false, nil, hosterr.New(hosterr.NameError, "no %s() overload takes more than 1 argument", name)
	}
	if len(args) == 0 {
		return "", false, nil, nil
	}
	v, err := ev.Eval(args[0], env)
	if err != nil {
		return "", false, nil, err
	}
	if isSignal(v) {
		return "", false, v, nil
	}
	return stringify(v), true, nil, nil
}

func builtinInputI(ev *Evaluator, args []*ast.Node, env *object.Environment) (*object.Thunk, error) {
	prompt, hasPrompt, sig, err := requireAtMostOnePromptArg(ev, "inputi", args, env)
	if err != nil {
		return nil, err
	}
	if sig != nil {
		return object.Literal(sig), nil
	}
	if hasPrompt {
		ev.Host.Prompt(prompt)
	}
	line, err := ev.Host.GetInput()
	if err != nil {
		return nil, hosterr.New(hosterr.FaultError, "inputi: %v", err)
	}
	n, convErr := strconv.ParseInt(line, 10, 64)
	if convErr != nil {
		return nil, hosterr.New(hosterr.TypeError, "inputi: %q is not a valid integer", line)
	}
	return object.Literal(&object.Integer{Value: n}), nil
}

func builtinInputS(ev *Evaluator, args []*ast.Node, env *object.Environment) (*object.Thunk, error) {
	prompt, hasPrompt, sig, err := requireAtMostOnePromptArg(ev, "inputs", args, env)
	if err != nil {
		return nil, err
	}
	if sig != nil {
		return object.Literal(sig), nil
	}
	if hasPrompt {
		ev.Host.Prompt(prompt)
	}
	line, err := ev.Host.GetInput()
	if err != nil {
		return nil, hosterr.New(hosterr.FaultError, "inputs: %v", err)
	}
	return object.Literal(&object.String{Value: line}), nil
}
