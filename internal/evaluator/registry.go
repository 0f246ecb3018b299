package evaluator

import "github.com/brewinlang/interpreter/internal/ast"

// FunctionDef is one registered `func` node, pre-extracted for dispatch.
type FunctionDef struct {
	Name   string
	Params []string
	Body   []*ast.Node
	Node   *ast.Node
}

// Registry is the process-wide name -> []definition map spec.md §3/§4.2
// describes: multiple entries with the same name but different arities
// coexist, and dispatch scans for the first whose parameter count matches.
// Grounded on the teacher's e.ClassImplementations/e.TraitSuperTraits
// map-of-list registries (internal/evaluator/evaluator.go) and on
// defined_functions in original_source/interpreterv4.py's run().
type Registry struct {
	defs map[string][]*FunctionDef
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string][]*FunctionDef)}
}

// Register appends a function definition node under its name.
func (r *Registry) Register(node *ast.Node) {
	name := node.Str("name")
	params := node.List("args")
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Str("name")
	}
	def := &FunctionDef{
		Name:   name,
		Params: names,
		Body:   node.List("statements"),
		Node:   node,
	}
	r.defs[name] = append(r.defs[name], def)
}

// Lookup finds the definition registered under name whose parameter count
// equals argc. ok is false if the name is unknown or no arity matches.
func (r *Registry) Lookup(name string, argc int) (*FunctionDef, bool) {
	candidates, ok := r.defs[name]
	if !ok {
		return nil, false
	}
	for _, def := range candidates {
		if len(def.Params) == argc {
			return def, true
		}
	}
	return nil, false
}

// Has reports whether any definition (of any arity) is registered under
// name — used by the driver to check for `main`.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}
