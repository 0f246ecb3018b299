package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/parser"
)

func TestParseMinimalMain(t *testing.T) {
	root, err := parser.New().Parse(`func main() { print("hi"); }`)
	require.NoError(t, err)
	require.Equal(t, ast.KindProgram, root.Kind)

	funcs := root.List("functions")
	require.Len(t, funcs, 1)
	require.Equal(t, "main", funcs[0].Str("name"))

	stmts := funcs[0].List("statements")
	require.Len(t, stmts, 1)
	require.Equal(t, ast.KindFcall, stmts[0].Kind)
	require.Equal(t, "print", stmts[0].Str("name"))
}

func TestParseFunctionWithParams(t *testing.T) {
	root, err := parser.New().Parse(`func add(a, b) { return a + b; }`)
	require.NoError(t, err)

	fn := root.List("functions")[0]
	params := fn.List("args")
	require.Len(t, params, 2)
	require.Equal(t, "a", params[0].Str("name"))
	require.Equal(t, "b", params[1].Str("name"))

	ret := fn.List("statements")[0]
	require.Equal(t, ast.KindReturn, ret.Kind)
	expr := ret.Child("expression")
	require.Equal(t, ast.KindAdd, expr.Kind)
	require.Equal(t, "a", expr.Child("op1").Str("name"))
	require.Equal(t, "b", expr.Child("op2").Str("name"))
}

func TestParseVardefAssignAndArithmeticPrecedence(t *testing.T) {
	root, err := parser.New().Parse(`func main() {
		var x;
		x = 1 + 2 * 3;
	}`)
	require.NoError(t, err)
	stmts := root.List("functions")[0].List("statements")
	require.Len(t, stmts, 2)
	require.Equal(t, ast.KindVardef, stmts[0].Kind)
	require.Equal(t, "x", stmts[0].Str("name"))

	assign := stmts[1]
	require.Equal(t, ast.KindAssign, assign.Kind)
	rhs := assign.Child("expression")
	require.Equal(t, ast.KindAdd, rhs.Kind)
	require.Equal(t, ast.KindInt, rhs.Child("op1").Kind)
	mul := rhs.Child("op2")
	require.Equal(t, ast.KindMul, mul.Kind)
	require.Equal(t, int64(2), mul.Child("op1").Int("val"))
	require.Equal(t, int64(3), mul.Child("op2").Int("val"))
}

func TestParseIfElse(t *testing.T) {
	root, err := parser.New().Parse(`func main() {
		if (1 < 2) {
			print("yes");
		} else {
			print("no");
		}
	}`)
	require.NoError(t, err)
	ifNode := root.List("functions")[0].List("statements")[0]
	require.Equal(t, ast.KindIf, ifNode.Kind)
	require.Equal(t, ast.KindLt, ifNode.Child("condition").Kind)
	require.Len(t, ifNode.List("statements"), 1)
	require.Len(t, ifNode.List("else_statements"), 1)
}

func TestParseForLoop(t *testing.T) {
	root, err := parser.New().Parse(`func main() {
		var i;
		for (i = 0; i < 10; i = i + 1) {
			print(i);
		}
	}`)
	require.NoError(t, err)
	forNode := root.List("functions")[0].List("statements")[1]
	require.Equal(t, ast.KindFor, forNode.Kind)
	require.Equal(t, ast.KindAssign, forNode.Child("init").Kind)
	require.Equal(t, ast.KindLt, forNode.Child("condition").Kind)
	require.Equal(t, ast.KindAssign, forNode.Child("update").Kind)
	require.Len(t, forNode.List("statements"), 1)
}

func TestParseTryCatch(t *testing.T) {
	root, err := parser.New().Parse(`func main() {
		try {
			raise "bad";
		} catchers {
			catch "bad" {
				print("caught");
			}
		}
	}`)
	require.NoError(t, err)
	tryNode := root.List("functions")[0].List("statements")[0]
	require.Equal(t, ast.KindTry, tryNode.Kind)
	require.Len(t, tryNode.List("statements"), 1)

	catchers := tryNode.List("catchers")
	require.Len(t, catchers, 1)
	require.Equal(t, ast.KindCatch, catchers[0].Kind)
	require.Equal(t, "bad", catchers[0].Str("exception_type"))
}

func TestParseUnaryNegAndNot(t *testing.T) {
	root, err := parser.New().Parse(`func main() { return -1 + !true; }`)
	require.NoError(t, err)
	expr := root.List("functions")[0].List("statements")[0].Child("expression")
	require.Equal(t, ast.KindAdd, expr.Kind)
	require.Equal(t, ast.KindNeg, expr.Child("op1").Kind)
	require.Equal(t, ast.KindNot, expr.Child("op2").Kind)
}

func TestParseNestedCallsAsArguments(t *testing.T) {
	root, err := parser.New().Parse(`func main() { print(add(1, 2)); }`)
	require.NoError(t, err)
	printCall := root.List("functions")[0].List("statements")[0]
	args := printCall.List("args")
	require.Len(t, args, 1)
	require.Equal(t, ast.KindFcall, args[0].Kind)
	require.Equal(t, "add", args[0].Str("name"))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := parser.New().Parse(`func main() { @@@ }`)
	require.Error(t, err)
}

// Parsing is a pure function of its input: two independent parses of the
// same source must produce structurally identical trees, positions
// included. cmp.Diff walks the whole Attr map (nested *Node pointers,
// []*Node lists, and primitive leaves alike), which a require.Equal on two
// top-level *Node values would do too, but a failure here prints exactly
// which attribute in which nested node diverged instead of a flat dump of
// both trees.
func TestParseIsDeterministic(t *testing.T) {
	source := `
		func fib(n) {
			if (n <= 1) {
				return n;
			} else {
				return fib(n - 1) + fib(n - 2);
			}
		}
		func main() {
			var i;
			for (i = 0; i < 5; i = i + 1) {
				print(fib(i));
			}
		}
	`

	first, err := parser.New().Parse(source)
	require.NoError(t, err)
	second, err := parser.New().Parse(source)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("two parses of the same source diverged (-first +second):\n%s", diff)
	}
}
