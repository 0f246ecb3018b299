package evaluator

import (
	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/hosterr"
	"github.com/brewinlang/interpreter/internal/object"
)

// The operator kernels below are grounded on the dynamic-type-check style
// of the teacher's internal/evaluator/object_primitives.go and
// expressions_operators.go: every kernel rejects operand types explicitly
// rather than coercing, mirroring spec.md §4.6's "no implicit coercion
// between Int and Bool" rule.

func (ev *Evaluator) evalNeg(node *ast.Node, env *object.Environment) (object.Value, error) {
	v, err := ev.Eval(node.Child("op1"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(v) {
		return v, nil
	}
	i, ok := v.(*object.Integer)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "neg requires an int, got %s", object.TypeName(v))
	}
	return &object.Integer{Value: -i.Value}, nil
}

func (ev *Evaluator) evalNot(node *ast.Node, env *object.Environment) (object.Value, error) {
	v, err := ev.Eval(node.Child("op1"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(v) {
		return v, nil
	}
	b, ok := v.(*object.Boolean)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "! requires a bool, got %s", object.TypeName(v))
	}
	return object.NativeBool(!b.Value), nil
}

// evalAnd/evalOr implement short-circuit evaluation (spec.md §4.5/§8): the
// right operand is never evaluated once the left already determines the
// result, grounded on the teacher's &&/|| special-casing in
// internal/evaluator/evaluator.go's evalCore.
func (ev *Evaluator) evalAnd(node *ast.Node, env *object.Environment) (object.Value, error) {
	left, err := ev.Eval(node.Child("op1"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(left) {
		return left, nil
	}
	lb, ok := left.(*object.Boolean)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "&& requires bool operands, got %s", object.TypeName(left))
	}
	if !lb.Value {
		return object.False, nil
	}
	right, err := ev.Eval(node.Child("op2"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(right) {
		return right, nil
	}
	rb, ok := right.(*object.Boolean)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "&& requires bool operands, got %s", object.TypeName(right))
	}
	return object.NativeBool(rb.Value), nil
}

func (ev *Evaluator) evalOr(node *ast.Node, env *object.Environment) (object.Value, error) {
	left, err := ev.Eval(node.Child("op1"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(left) {
		return left, nil
	}
	lb, ok := left.(*object.Boolean)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "|| requires bool operands, got %s", object.TypeName(left))
	}
	if lb.Value {
		return object.True, nil
	}
	right, err := ev.Eval(node.Child("op2"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(right) {
		return right, nil
	}
	rb, ok := right.(*object.Boolean)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "|| requires bool operands, got %s", object.TypeName(right))
	}
	return object.NativeBool(rb.Value), nil
}

// evalArithmetic dispatches +, -, *, / with the overloaded-+ rule from
// spec.md §4.6: "+" on two strings concatenates, "+"/-/*// on two ints use
// the integer kernel, any other combination is a TYPE_ERROR.
func (ev *Evaluator) evalArithmetic(node *ast.Node, env *object.Environment) (object.Value, error) {
	left, err := ev.Eval(node.Child("op1"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(left) {
		return left, nil
	}
	right, err := ev.Eval(node.Child("op2"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(right) {
		return right, nil
	}

	if node.Kind == ast.KindAdd {
		if ls, ok := left.(*object.String); ok {
			rs, ok := right.(*object.String)
			if !ok {
				return nil, hosterr.New(hosterr.TypeError, "+ between string and %s is not defined", object.TypeName(right))
			}
			return &object.String{Value: ls.Value + rs.Value}, nil
		}
		if _, ok := right.(*object.String); ok {
			return nil, hosterr.New(hosterr.TypeError, "+ between %s and string is not defined", object.TypeName(left))
		}
	}

	li, ok := left.(*object.Integer)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "%s requires int operands, got %s", node.Kind, object.TypeName(left))
	}
	ri, ok := right.(*object.Integer)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "%s requires int operands, got %s", node.Kind, object.TypeName(right))
	}

	switch node.Kind {
	case ast.KindAdd:
		return &object.Integer{Value: li.Value + ri.Value}, nil
	case ast.KindSub:
		return &object.Integer{Value: li.Value - ri.Value}, nil
	case ast.KindMul:
		return &object.Integer{Value: li.Value * ri.Value}, nil
	case ast.KindDiv:
		if ri.Value == 0 {
			return &object.ExceptionSignal{Tag: object.DivZeroTag}, nil
		}
		return &object.Integer{Value: floorDiv(li.Value, ri.Value)}, nil
	}
	return nil, hosterr.New(hosterr.TypeError, "unknown arithmetic operator %q", node.Kind)
}

// floorDiv implements floor ("//") division, the Open Question resolution
// recorded in spec.md §9 and SPEC_FULL.md §D.1: the quotient rounds toward
// negative infinity, not toward zero like Go's native "/".
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (ev *Evaluator) evalEquality(node *ast.Node, env *object.Environment) (object.Value, error) {
	left, err := ev.Eval(node.Child("op1"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(left) {
		return left, nil
	}
	right, err := ev.Eval(node.Child("op2"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(right) {
		return right, nil
	}
	eq := valuesEqual(left, right)
	if node.Kind == ast.KindNeq {
		eq = !eq
	}
	return object.NativeBool(eq), nil
}

// valuesEqual implements spec.md §4.6's equality law: nil == nil; nil vs.
// any non-nil is false; differing primitive types compare false (never an
// error); within a type, compare by value. Booleans and ints never
// compare equal to each other even when numerically coincident (True !=
// 1, False != 0).
func valuesEqual(a, b object.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *object.Nil:
		return true
	case *object.Integer:
		return av.Value == b.(*object.Integer).Value
	case *object.Boolean:
		return av.Value == b.(*object.Boolean).Value
	case *object.String:
		return av.Value == b.(*object.String).Value
	default:
		return false
	}
}

// evalOrdering implements <, <=, >, >=: integer-only (spec.md §4.6).
func (ev *Evaluator) evalOrdering(node *ast.Node, env *object.Environment) (object.Value, error) {
	left, err := ev.Eval(node.Child("op1"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(left) {
		return left, nil
	}
	right, err := ev.Eval(node.Child("op2"), env)
	if err != nil {
		return nil, err
	}
	if isSignal(right) {
		return right, nil
	}
	li, ok := left.(*object.Integer)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "%s requires int operands, got %s", node.Kind, object.TypeName(left))
	}
	ri, ok := right.(*object.Integer)
	if !ok {
		return nil, hosterr.New(hosterr.TypeError, "%s requires int operands, got %s", node.Kind, object.TypeName(right))
	}
	var result bool
	switch node.Kind {
	case ast.KindLt:
		result = li.Value < ri.Value
	case ast.KindLeq:
		result = li.Value <= ri.Value
	case ast.KindGt:
		result = li.Value > ri.Value
	case ast.KindGeq:
		result = li.Value >= ri.Value
	}
	return object.NativeBool(result), nil
}

// isSignal reports whether v is a control-flow sentinel (ReturnSignal,
// ExceptionSignal) rather than a primitive value, in which case every
// operator kernel must short-circuit and propagate it untouched instead
// of type-checking it.
func isSignal(v object.Value) bool {
	switch v.Kind() {
	case object.ReturnKind, object.ExceptKind:
		return true
	default:
		return false
	}
}
