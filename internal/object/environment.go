package object

import "github.com/brewinlang/interpreter/internal/ast"

// Scope is a single (unordered) mapping from variable name to Thunk;
// insertion order is irrelevant (spec.md §3).
type Scope map[string]*Thunk

// Environment is the scope stack: innermost last. Resolution walks from the
// end of the slice to the start.
//
// This replaces the teacher's outer-pointer Environment
// (internal/evaluator/environment.go: Environment{store, outer}) with an
// explicit slice of scopes, because spec.md §3 requires a *clonable stack*:
// capturing a closure takes a shallow-copy snapshot of the whole stack
// spine, not a shared pointer to a parent chain. See Clone below and
// DESIGN.md for why the teacher's sync.RWMutex is not carried over.
type Environment struct {
	scopes []Scope
}

// NewEnvironment returns a stack with a single empty scope.
func NewEnvironment() *Environment {
	return &Environment{scopes: []Scope{{}}}
}

// Push adds a fresh empty scope at the top of the stack.
func (e *Environment) Push() {
	e.scopes = append(e.scopes, Scope{})
}

// Pop removes the topmost scope. Calling Pop on a single-scope stack is a
// programmer error in this package's callers (every Push is paired with a
// deferred Pop); it is a no-op to stay safe rather than panic.
func (e *Environment) Pop() {
	if len(e.scopes) <= 1 {
		return
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Define binds name in the innermost scope. Returns false if name is
// already present in that scope (redeclaration — a NAME_ERROR at the
// call site, per spec.md §4.4).
func (e *Environment) Define(name string, t *Thunk) bool {
	top := e.scopes[len(e.scopes)-1]
	if _, exists := top[name]; exists {
		return false
	}
	top[name] = t
	return true
}

// Resolve walks innermost to outermost looking for name.
func (e *Environment) Resolve(name string) (*Thunk, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if t, ok := e.scopes[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Assign replaces the binding for name in the innermost scope that
// contains it, walking top to bottom. Returns false if name is bound
// nowhere on the stack (an undeclared-variable NAME_ERROR at the call
// site).
func (e *Environment) Assign(name string, t *Thunk) bool {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = t
			return true
		}
	}
	return false
}

// Clone takes the shallow-copy snapshot spec.md §3 calls the "environment
// capture invariant": a new list spine, new inner maps, but the same
// *Thunk pointers. Because Thunk.Force memoizes by mutating the Thunk it
// was given (not by replacing the map entry), every snapshot that still
// holds a pointer to that Thunk observes the memoized result — which is
// exactly the sharing spec.md §5 requires ("memoizing a variable in one
// captured snapshot is visible through other snapshots").
func (e *Environment) Clone() *Environment {
	cloned := make([]Scope, len(e.scopes))
	for i, scope := range e.scopes {
		newScope := make(Scope, len(scope))
		for k, v := range scope {
			newScope[k] = v
		}
		cloned[i] = newScope
	}
	return &Environment{scopes: cloned}
}

// Evaluator is the minimal capability Thunk.Force needs from the
// evaluator: force an expression node under a given environment to a
// Value. Declaring it here (rather than importing the evaluator package)
// keeps object dependency-free of evaluator and avoids an import cycle —
// *evaluator.Evaluator satisfies this interface implicitly.
type Evaluator interface {
	Eval(node *ast.Node, env *Environment) (Value, error)
}

// Thunk is the unit of call-by-need and of memoization: an unevaluated
// expression paired with the environment it should be evaluated in
// (spec.md glossary). It is the *only* thing ever stored in a Scope
// binding.
type Thunk struct {
	Expr   *ast.Node
	Env    *Environment
	forced bool
	value  Value
}

// NewThunk captures expr against a snapshot of env (the caller must pass
// an already-cloned Environment; Thunk itself never clones, to keep the
// capture point explicit at each call site named in spec.md §4.3/§4.4).
func NewThunk(expr *ast.Node, env *Environment) *Thunk {
	return &Thunk{Expr: expr, Env: env}
}

// Literal wraps an already-known Value in a pre-forced Thunk. Used for
// built-in results, a function's implicit nil return, and an exception
// re-packaged as it unwinds through a call boundary.
func Literal(v Value) *Thunk {
	return &Thunk{forced: true, value: v}
}

// Force evaluates the Thunk's expression under its *captured* environment
// exactly once; subsequent calls return the memoized Value without
// re-invoking the evaluator (spec.md §4.8). A raised ExceptionSignal
// returned by ev is propagated but never memoized — the next force (e.g.
// reading the same variable again after the exception was caught)
// re-attempts evaluation and raises again.
func (t *Thunk) Force(ev Evaluator) (Value, error) {
	if t.forced {
		return t.value, nil
	}
	v, err := ev.Eval(t.Expr, t.Env)
	if err != nil {
		return nil, err
	}
	if v.Kind() == ExceptKind {
		return v, nil
	}
	t.value = v
	t.forced = true
	return v, nil
}
