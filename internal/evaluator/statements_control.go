package evaluator

import (
	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/hosterr"
	"github.com/brewinlang/interpreter/internal/object"
)

// forceBool force-evaluates expr and requires the result to be a Bool
// (spec.md §4.4's if/for condition rule), propagating any control-flow
// signal the force produced (a function call inside a condition can
// raise).
func (ev *Evaluator) forceBool(expr *ast.Node, env *object.Environment) (bool, object.Value, error) {
	v, err := ev.Eval(expr, env)
	if err != nil {
		return false, nil, err
	}
	if isSignal(v) {
		return false, v, nil
	}
	b, ok := v.(*object.Boolean)
	if !ok {
		return false, nil, hosterr.New(hosterr.TypeError, "condition must be a bool, got %s", object.TypeName(v))
	}
	return b.Value, nil, nil
}

// execIf pushes a new scope, force-evaluates the condition, runs the
// matching branch, and pops the scope on every exit path — including an
// exceptional one, via defer, the same push/defer-pop/run-body discipline
// the teacher uses around evalForExpression's loop body
// (internal/evaluator/statements_loops.go).
func (ev *Evaluator) execIf(node *ast.Node, env *object.Environment) (object.Value, error) {
	env.Push()
	defer env.Pop()

	cond, sig, err := ev.forceBool(node.Child("condition"), env)
	if err != nil {
		return nil, err
	}
	if sig != nil {
		return sig, nil
	}

	if cond {
		return ev.ExecBlock(node.List("statements"), env)
	}
	if elseStmts := node.List("else_statements"); elseStmts != nil {
		return ev.ExecBlock(elseStmts, env)
	}
	return object.TheNil, nil
}

// execFor runs init once, then loops while the condition holds: each
// iteration pushes a fresh scope, runs the body, pops it, then runs update
// (spec.md §4.4).
func (ev *Evaluator) execFor(node *ast.Node, env *object.Environment) (object.Value, error) {
	if _, err := ev.Exec(node.Child("init"), env); err != nil {
		return nil, err
	}

	for {
		cond, sig, err := ev.forceBool(node.Child("condition"), env)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
		if !cond {
			return object.TheNil, nil
		}

		result, err := ev.runLoopBody(node.List("statements"), env)
		if err != nil {
			return nil, err
		}
		if isSignal(result) {
			return result, nil
		}

		if _, err := ev.Exec(node.Child("update"), env); err != nil {
			return nil, err
		}
	}
}

func (ev *Evaluator) runLoopBody(statements []*ast.Node, env *object.Environment) (object.Value, error) {
	env.Push()
	defer env.Pop()
	return ev.ExecBlock(statements, env)
}

// execRaise force-evaluates exception_type to a Str and produces an
// ExceptionSignal carrying that tag (spec.md §4.4).
func (ev *Evaluator) execRaise(node *ast.Node, env *object.Environment) (object.Value, error) {
	v, err := ev.Eval(node.Child("exception_type"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(v) {
		return v, nil
	}
	s, ok := v.(*object.String)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "raise requires a string tag, got %s", object.TypeName(v))
	}
	return &object.ExceptionSignal{Tag: s.Value}, nil
}

// execTry pushes a new scope, runs the body, and on an ExceptionSignal
// scans `catchers` in order for a matching tag; the matching catcher's
// statements run in the *surrounding* scope (not the try block's, which
// has already been popped), matching spec.md §4.4's catch semantics. A
// ReturnSignal passes through untouched; an unmatched tag re-raises.
func (ev *Evaluator) execTry(node *ast.Node, env *object.Environment) (object.Value, error) {
	result, err := func() (object.Value, error) {
		env.Push()
		defer env.Pop()
		return ev.ExecBlock(node.List("statements"), env)
	}()
	if err != nil {
		return nil, err
	}

	exc, ok := result.(*object.ExceptionSignal)
	if !ok {
		return result, nil
	}

	for _, catcher := range node.List("catchers") {
		if catcher.Str("exception_type") == exc.Tag {
			return ev.ExecBlock(catcher.List("statements"), env)
		}
	}
	return exc, nil
}
