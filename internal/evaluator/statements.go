package evaluator

import (
	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/hosterr"
	"github.com/brewinlang/interpreter/internal/object"
)

// Exec executes one statement node under env and returns object.TheNil on
// normal completion, or a control-flow sentinel (*object.ReturnSignal /
// *object.ExceptionSignal) that the caller must propagate upward without
// running further statements in its own block. A non-nil error is always a
// fatal HostError (spec.md §7) and must unwind immediately and
// unconditionally — it is never caught by `try`.
//
// This mirrors the shape of the teacher's evalCore type-switch
// (internal/evaluator/evaluator.go) and the sentinel-propagation idiom in
// statements_loops.go's runBody closure, generalized from funxy's
// break/continue/return trio to this language's return/raise trio.
func (ev *Evaluator) Exec(node *ast.Node, env *object.Environment) (object.Value, error) {
	switch node.Kind {
	case ast.KindVardef:
		return ev.execVardef(node, env)
	case ast.KindAssign:
		return ev.execAssign(node, env)
	case ast.KindFcall:
		thunk, err := ev.Call(node, env)
		if err != nil {
			return nil, err
		}
		v, err := thunk.Force(ev)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		return object.TheNil, nil
	case ast.KindIf:
		return ev.execIf(node, env)
	case ast.KindFor:
		return ev.execFor(node, env)
	case ast.KindReturn:
		return ev.execReturn(node, env)
	case ast.KindRaise:
		return ev.execRaise(node, env)
	case ast.KindTry:
		return ev.execTry(node, env)
	default:
		return nil, hosterr.New(hosterr.TypeError, "unrecognized statement kind %q", node.Kind)
	}
}

// ExecBlock runs a list of statements in order under env, stopping at the
// first error or control-flow signal (spec.md §8 scope discipline:
// intervening statements after a signal never run). On normal completion
// it returns object.TheNil.
func (ev *Evaluator) ExecBlock(statements []*ast.Node, env *object.Environment) (object.Value, error) {
	for _, stmt := range statements {
		result, err := ev.Exec(stmt, env)
		if err != nil {
			return nil, err
		}
		if isSignal(result) {
			return result, nil
		}
	}
	return object.TheNil, nil
}

// execVardef declares `name` in the innermost scope with an uninitialized
// sentinel binding (spec.md §4.4; uninitialized-read behavior resolved in
// SPEC_FULL.md §D.3). Redeclaration in the same scope is a NAME_ERROR.
func (ev *Evaluator) execVardef(node *ast.Node, env *object.Environment) (object.Value, error) {
	name := node.Str("name")
	sentinel := object.NewThunk(ast.New(ast.KindUninit, map[string]any{"name": name}), env)
	if !env.Define(name, sentinel) {
		return nil, hosterr.New(hosterr.NameError, "variable %q is already defined in this scope", name)
	}
	return object.TheNil, nil
}

// execAssign replaces the binding for `name` with a fresh, unevaluated
// Thunk wrapping the RHS expression and a shallow-copied snapshot of the
// *current* scope stack (spec.md §4.4). No evaluation occurs here —
// laziness is the whole point.
func (ev *Evaluator) execAssign(node *ast.Node, env *object.Environment) (object.Value, error) {
	name := node.Str("name")
	rhs := node.Child("expression")
	captured := env.Clone()
	thunk := object.NewThunk(rhs, captured)
	if !env.Assign(name, thunk) {
		return nil, hosterr.New(hosterr.NameError, "variable %q is not defined", name)
	}
	return object.TheNil, nil
}

// execReturn packages the return expression (or nil) into a Thunk over a
// snapshot of the current scope stack, without evaluating it, and
// produces a ReturnSignal for the enclosing call frame to catch
// (spec.md §4.4/§4.7).
func (ev *Evaluator) execReturn(node *ast.Node, env *object.Environment) (object.Value, error) {
	expr := node.Child("expression")
	if expr == nil {
		return &object.ReturnSignal{Thunk: object.Literal(object.TheNil)}, nil
	}
	return &object.ReturnSignal{Thunk: object.NewThunk(expr, env.Clone())}, nil
}
