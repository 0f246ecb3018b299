package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/evaluator"
	"github.com/brewinlang/interpreter/internal/hosterr"
	"github.com/brewinlang/interpreter/internal/object"
)

func intLit(n int64) *ast.Node    { return ast.New(ast.KindInt, map[string]any{"val": n}) }
func strLit(s string) *ast.Node   { return ast.New(ast.KindString, map[string]any{"val": s}) }
func boolLit(b bool) *ast.Node    { return ast.New(ast.KindBool, map[string]any{"val": b}) }
func bin(k ast.Kind, l, r *ast.Node) *ast.Node {
	return ast.New(k, map[string]any{"op1": l, "op2": r})
}

func newEval() *evaluator.Evaluator {
	return evaluator.New(evaluator.NewStdHost(nilReader{}, &discardWriter{}))
}

type nilReader struct{}

func (nilReader) Read(p []byte) (int, error) { return 0, nil }

type discardWriter struct{ buf []byte }

func (w *discardWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func TestArithmeticFollowsPrecedenceWiredManually(t *testing.T) {
	// 1 + 2 * 3
	expr := bin(ast.KindAdd, intLit(1), bin(ast.KindMul, intLit(2), intLit(3)))
	ev := newEval()
	v, err := ev.Eval(expr, object.NewEnvironment())
	require.NoError(t, err)
	require.Equal(t, int64(7), v.(*object.Integer).Value)
}

func TestStringConcatenation(t *testing.T) {
	expr := bin(ast.KindAdd, strLit("foo"), strLit("bar"))
	ev := newEval()
	v, err := ev.Eval(expr, object.NewEnvironment())
	require.NoError(t, err)
	require.Equal(t, "foobar", v.(*object.String).Value)
}

func TestAddStringAndIntIsTypeError(t *testing.T) {
	expr := bin(ast.KindAdd, strLit("foo"), intLit(1))
	ev := newEval()
	_, err := ev.Eval(expr, object.NewEnvironment())
	requireHostErrorKind(t, err, hosterr.TypeError)
}

func TestFloorDivisionRoundsTowardNegativeInfinity(t *testing.T) {
	expr := bin(ast.KindDiv, intLit(-7), intLit(2))
	ev := newEval()
	v, err := ev.Eval(expr, object.NewEnvironment())
	require.NoError(t, err)
	require.Equal(t, int64(-4), v.(*object.Integer).Value)
}

func TestDivisionByZeroRaisesDiv0Exception(t *testing.T) {
	expr := bin(ast.KindDiv, intLit(1), intLit(0))
	ev := newEval()
	v, err := ev.Eval(expr, object.NewEnvironment())
	require.NoError(t, err, "div-by-zero is a catchable exception, not a Go error")
	exc, ok := v.(*object.ExceptionSignal)
	require.True(t, ok)
	require.Equal(t, object.DivZeroTag, exc.Tag)
}

// The right operand here is an Int, which would produce a TYPE_ERROR if
// evaluated and type-checked as a bool. A passing test proves short-circuit
// actually skips evaluating it rather than merely skipping the result.
func TestShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	expr := bin(ast.KindAnd, boolLit(false), intLit(99))
	ev := newEval()
	v, err := ev.Eval(expr, object.NewEnvironment())
	require.NoError(t, err)
	require.False(t, v.(*object.Boolean).Value)
}

func TestShortCircuitOrDoesNotEvaluateRight(t *testing.T) {
	expr := bin(ast.KindOr, boolLit(true), intLit(99))
	ev := newEval()
	v, err := ev.Eval(expr, object.NewEnvironment())
	require.NoError(t, err)
	require.True(t, v.(*object.Boolean).Value)
}

func TestNilEqualsNil(t *testing.T) {
	expr := bin(ast.KindEq, ast.New(ast.KindNil, nil), ast.New(ast.KindNil, nil))
	ev := newEval()
	v, err := ev.Eval(expr, object.NewEnvironment())
	require.NoError(t, err)
	require.True(t, v.(*object.Boolean).Value)
}

func TestCrossTypeEqualityIsAlwaysFalse(t *testing.T) {
	expr := bin(ast.KindEq, intLit(1), boolLit(true))
	ev := newEval()
	v, err := ev.Eval(expr, object.NewEnvironment())
	require.NoError(t, err)
	require.False(t, v.(*object.Boolean).Value)
}

func TestOrderingRejectsNonInts(t *testing.T) {
	expr := bin(ast.KindLt, strLit("a"), strLit("b"))
	ev := newEval()
	_, err := ev.Eval(expr, object.NewEnvironment())
	requireHostErrorKind(t, err, hosterr.TypeError)
}

func requireHostErrorKind(t *testing.T, err error, kind hosterr.Kind) {
	t.Helper()
	require.Error(t, err)
	herr, ok := err.(*hosterr.HostError)
	require.True(t, ok, "expected a *hosterr.HostError, got %T", err)
	require.Equal(t, kind, herr.Kind)
}
