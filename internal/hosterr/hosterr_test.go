package hosterr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brewinlang/interpreter/internal/hosterr"
)

func TestWithPosFillsOnlyWhenUnset(t *testing.T) {
	err := hosterr.New(hosterr.NameError, "variable %q is not defined", "x")
	require.Equal(t, 0, err.Line)

	withPos := hosterr.WithPos(err, 4, 2)
	require.Equal(t, 4, withPos.Line)
	require.Equal(t, 2, withPos.Column)

	// The innermost position wins: a second WithPos call further up the
	// call stack must not overwrite it.
	outer := hosterr.WithPos(withPos, 10, 10)
	require.Equal(t, 4, outer.Line)
	require.Equal(t, 2, outer.Column)
}

func TestErrorMessageFormat(t *testing.T) {
	err := hosterr.New(hosterr.TypeError, "bad thing")
	require.Equal(t, "TYPE_ERROR: bad thing", err.Error())

	positioned := hosterr.WithPos(err, 3, 5)
	require.Equal(t, "TYPE_ERROR at 3:5: bad thing", positioned.Error())
}
