package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brewinlang/interpreter/internal/ast"
)

func TestNodeAccessors(t *testing.T) {
	child := ast.New(ast.KindInt, map[string]any{"val": int64(7)})
	list := []*ast.Node{child, child}
	node := ast.New(ast.KindFcall, map[string]any{
		"name": "f",
		"args": list,
		"op1":  child,
		"flag": true,
	}).At(3, 9)

	require.Equal(t, "f", node.Str("name"))
	require.Equal(t, child, node.Child("op1"))
	require.Equal(t, list, node.List("args"))
	require.True(t, node.Bool("flag"))
	require.True(t, node.HasChild("op1"))
	require.False(t, node.HasChild("missing"))
	require.Equal(t, 3, node.Pos.Line)
	require.Equal(t, 9, node.Pos.Column)
}

func TestNodeAccessorsZeroValueOnWrongType(t *testing.T) {
	node := ast.New(ast.KindInt, map[string]any{"val": int64(1)})

	require.Equal(t, "", node.Str("val"))
	require.Equal(t, int64(0), node.Int("name"))
	require.Nil(t, node.Child("val"))
	require.Nil(t, node.List("val"))
}

func TestNewNilAttrDoesNotPanic(t *testing.T) {
	node := ast.New(ast.KindNil, nil)
	require.Equal(t, "", node.Str("anything"))
}
