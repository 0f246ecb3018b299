package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/hosterr"
	"github.com/brewinlang/interpreter/internal/object"
)

func fcall(name string, args ...*ast.Node) *ast.Node {
	return ast.New(ast.KindFcall, map[string]any{"name": name, "args": args})
}

func funcDef(name string, params []string, body ...*ast.Node) *ast.Node {
	paramNodes := make([]*ast.Node, len(params))
	for i, p := range params {
		paramNodes[i] = ast.New(ast.KindVar, map[string]any{"name": p})
	}
	return ast.New(ast.KindFunc, map[string]any{
		"name":       name,
		"args":       paramNodes,
		"statements": body,
	})
}

func TestCallDispatchesByArity(t *testing.T) {
	ev := newEval()
	ev.Registry.Register(funcDef("greet", nil,
		ast.New(ast.KindReturn, map[string]any{"expression": strLit("none")}),
	))
	ev.Registry.Register(funcDef("greet", []string{"name"},
		ast.New(ast.KindReturn, map[string]any{"expression": varNode("name")}),
	))

	env := object.NewEnvironment()
	v, err := ev.Eval(fcall("greet", strLit("ada")), env)
	require.NoError(t, err)
	require.Equal(t, "ada", v.(*object.String).Value)

	v, err = ev.Eval(fcall("greet"), env)
	require.NoError(t, err)
	require.Equal(t, "none", v.(*object.String).Value)
}

func TestCallUnknownArityIsNameError(t *testing.T) {
	ev := newEval()
	ev.Registry.Register(funcDef("f", []string{"a"}, ast.New(ast.KindReturn, nil)))

	_, err := ev.Eval(fcall("f", intLit(1), intLit(2)), object.NewEnvironment())
	requireHostErrorKind(t, err, hosterr.NameError)
}

func TestCallUndefinedFunctionIsNameError(t *testing.T) {
	ev := newEval()
	_, err := ev.Eval(fcall("nope"), object.NewEnvironment())
	requireHostErrorKind(t, err, hosterr.NameError)
}

// Arguments must be forced lazily: an argument that would raise a
// TYPE_ERROR if ever evaluated must not affect a function that never reads
// it.
func TestArgumentsAreNeverForcedUnlessRead(t *testing.T) {
	ev := newEval()
	ev.Registry.Register(funcDef("ignoreArg", []string{"unused"},
		ast.New(ast.KindReturn, map[string]any{"expression": intLit(5)}),
	))

	poison := bin(ast.KindAdd, strLit("x"), intLit(1)) // would TYPE_ERROR if forced
	v, err := ev.Eval(fcall("ignoreArg", poison), object.NewEnvironment())
	require.NoError(t, err)
	require.Equal(t, int64(5), v.(*object.Integer).Value)
}

func TestUncaughtExceptionPropagatesPastCallBoundary(t *testing.T) {
	ev := newEval()
	ev.Registry.Register(funcDef("boom", nil,
		ast.New(ast.KindRaise, map[string]any{"exception_type": strLit("bad")}),
	))

	v, err := ev.Eval(fcall("boom"), object.NewEnvironment())
	require.NoError(t, err)
	exc, ok := v.(*object.ExceptionSignal)
	require.True(t, ok)
	require.Equal(t, "bad", exc.Tag)
}

// An exception left uncaught all the way to the top accumulates one Frame
// per call boundary it unwound through, innermost call first.
func TestUncaughtExceptionAccumulatesCallFrameChain(t *testing.T) {
	ev := newEval()
	ev.Registry.Register(funcDef("inner", nil,
		ast.New(ast.KindRaise, map[string]any{"exception_type": strLit("bad")}),
	))
	ev.Registry.Register(funcDef("outer", nil,
		fcall("inner"),
	))

	v, err := ev.Eval(fcall("outer"), object.NewEnvironment())
	require.NoError(t, err)
	exc, ok := v.(*object.ExceptionSignal)
	require.True(t, ok)

	require.Len(t, exc.Frames, 2)
	require.Equal(t, "inner", exc.Frames[0].FuncName)
	require.Equal(t, "outer", exc.Frames[1].FuncName)
}
