// Package evaluator is the coupled machinery spec.md §0 calls the hardest
// and most interesting subsystem: scope stacks, lazily captured
// environments, overload-by-arity call dispatch, operator kernels, and the
// Return/raise control-flow signals.
package evaluator

import (
	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/hosterr"
	"github.com/brewinlang/interpreter/internal/object"
)

// maxCallDepth bounds recursive function-call nesting, the same
// stack-overflow backstop role the teacher's maxEvalDepth/evalDepth pair
// plays in internal/evaluator/evaluator.go, sized generously since this
// language has no tail-call optimization.
const maxCallDepth = 4000

// Evaluator holds the process-wide state of one interpreter run: the
// function registry (built once per spec.md §3) and the host I/O sink.
// Unlike the teacher's Evaluator (internal/evaluator/evaluator.go), there
// is no type system, trait, witness, or module state to carry — none of
// that exists in this language.
type Evaluator struct {
	Registry     *Registry
	Host         Host
	callDepth    int
	maxCallDepth int
}

// New builds an Evaluator with an empty registry, ready for the driver to
// populate via Registry.Register before calling Eval/Exec.
func New(host Host) *Evaluator {
	return &Evaluator{Registry: NewRegistry(), Host: host, maxCallDepth: maxCallDepth}
}

// WithMaxCallDepth overrides the recursion backstop (cmd/brewin's
// --max-call-depth flag, layered through internal/config). A non-positive
// value leaves the built-in default in place.
func (ev *Evaluator) WithMaxCallDepth(depth int) *Evaluator {
	if depth > 0 {
		ev.maxCallDepth = depth
	}
	return ev
}

// Eval forces an expression node under env to a Value (spec.md §4.5). It
// never mutates env's binding set; reading/writing variables is the
// statement executor's job (Exec), except for `var` reads, which force
// the referenced Thunk as a side effect of evaluating the identifier.
func (ev *Evaluator) Eval(node *ast.Node, env *object.Environment) (object.Value, error) {
	if node == nil {
		return object.TheNil, nil
	}
	v, err := ev.evalCore(node, env)
	if herr, ok := err.(*hosterr.HostError); ok {
		return nil, hosterr.WithPos(herr, node.Pos.Line, node.Pos.Column)
	}
	return v, err
}

func (ev *Evaluator) evalCore(node *ast.Node, env *object.Environment) (object.Value, error) {
	switch node.Kind {
	case ast.KindInt:
		return &object.Integer{Value: node.Int("val")}, nil
	case ast.KindString:
		return &object.String{Value: node.Str("val")}, nil
	case ast.KindBool:
		return object.NativeBool(node.Bool("val")), nil
	case ast.KindNil:
		return object.TheNil, nil
	case ast.KindVar:
		return ev.evalIdentifier(node, env)
	case ast.KindFcall:
		thunk, err := ev.Call(node, env)
		if err != nil {
			return nil, err
		}
		return thunk.Force(ev)
	case ast.KindNeg:
		return ev.evalNeg(node, env)
	case ast.KindNot:
		return ev.evalNot(node, env)
	case ast.KindAnd:
		return ev.evalAnd(node, env)
	case ast.KindOr:
		return ev.evalOr(node, env)
	case ast.KindAdd, ast.KindSub, ast.KindMul, ast.KindDiv:
		return ev.evalArithmetic(node, env)
	case ast.KindEq, ast.KindNeq:
		return ev.evalEquality(node, env)
	case ast.KindLt, ast.KindLeq, ast.KindGt, ast.KindGeq:
		return ev.evalOrdering(node, env)
	case ast.KindUninit:
		return nil, hosterr.New(hosterr.NameError, "variable %q used before assignment", node.Str("name"))
	default:
		return nil, hosterr.New(hosterr.TypeError, "unrecognized expression kind %q", node.Kind)
	}
}

func (ev *Evaluator) evalIdentifier(node *ast.Node, env *object.Environment) (object.Value, error) {
	name := node.Str("name")
	thunk, ok := env.Resolve(name)
	if !ok {
		return nil, hosterr.New(hosterr.NameError, "variable %q is not defined", name)
	}
	return thunk.Force(ev)
}
