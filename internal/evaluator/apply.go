package evaluator

import (
	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/hosterr"
	"github.com/brewinlang/interpreter/internal/object"
)

// Call implements the function call protocol of spec.md §4.3. Built-in
// names (print/inputi/inputs) are dispatched first and force their own
// arguments. For a user-defined function it never
// forces arguments — each one becomes a Thunk capturing the caller's
// environment as it stood at the call site — and it never forces the
// return value either; the caller decides when to force the returned
// Thunk. This is the one part of call protocol grounded directly on
// original_source/interpreterv4.py's run_fcall/run_func rather than on the
// teacher, since the teacher's own ApplyFunction
// (internal/evaluator/apply.go) evaluates arguments eagerly — funxy is not
// call-by-need.
func (ev *Evaluator) Call(node *ast.Node, env *object.Environment) (*object.Thunk, error) {
	name := node.Str("name")
	argExprs := node.List("args")

	if builtin, ok := builtins[name]; ok {
		return builtin(ev, argExprs, env)
	}

	def, ok := ev.Registry.Lookup(name, len(argExprs))
	if !ok {
		if ev.Registry.Has(name) {
			return nil, hosterr.New(hosterr.NameError, "no overload of %q takes %d argument(s)", name, len(argExprs))
		}
		return nil, hosterr.New(hosterr.NameError, "function %q is not defined", name)
	}

	ev.callDepth++
	if ev.callDepth > ev.maxCallDepth {
		ev.callDepth--
		return nil, hosterr.New(hosterr.FaultError, "maximum call depth exceeded in %q", name)
	}
	defer func() { ev.callDepth-- }()

	callerSnapshot := env.Clone()
	callEnv := object.NewEnvironment()
	for i, paramName := range def.Params {
		argThunk := object.NewThunk(argExprs[i], callerSnapshot)
		if !callEnv.Define(paramName, argThunk) {
			return nil, hosterr.New(hosterr.NameError, "duplicate parameter name %q in function %q", paramName, name)
		}
	}

	result, err := ev.ExecBlock(def.Body, callEnv)
	if err != nil {
		return nil, err
	}

	if ret, ok := result.(*object.ReturnSignal); ok {
		return ret.Thunk, nil
	}
	if exc, ok := result.(*object.ExceptionSignal); ok {
		// Unwound through the whole function body uncaught: record this
		// call's frame (name and call-site position) before re-packaging
		// as a pre-forced Thunk, so a fault that reaches the driver still
		// uncaught carries the full call-frame chain it unwound through,
		// innermost first. Then continue propagating the same way it
		// propagates through `if`/`for`/`try` (spec.md §4.7: exception
		// signals are never caught by function-call frames).
		exc.Frames = append(exc.Frames, object.Frame{FuncName: name, Line: node.Pos.Line, Column: node.Pos.Column})
		return object.Literal(exc), nil
	}
	return object.Literal(object.TheNil), nil
}
