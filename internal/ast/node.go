// Package ast defines the AST shape this interpreter consumes: an opaque
// tagged node produced by an external parsing module. The evaluator never
// constructs these except for the KindUninit sentinel it synthesizes for
// a `vardef` binding.
package ast

// Kind tags the shape of a Node's attribute map. It is just a string so a
// parser can introduce new kinds without this package changing.
type Kind string

const (
	KindProgram  Kind = "program"
	KindFunc     Kind = "func"
	KindVardef   Kind = "vardef"
	KindAssign   Kind = "="
	KindFcall    Kind = "fcall"
	KindIf       Kind = "if"
	KindFor      Kind = "for"
	KindReturn   Kind = "return"
	KindRaise    Kind = "raise"
	KindTry      Kind = "try"
	KindCatch    Kind = "catch"
	KindInt      Kind = "int"
	KindString   Kind = "string"
	KindBool     Kind = "bool"
	KindNil      Kind = "nil"
	KindVar      Kind = "var"
	KindAdd      Kind = "+"
	KindSub      Kind = "-"
	KindMul      Kind = "*"
	KindDiv      Kind = "/"
	KindNeg      Kind = "neg"
	KindNot      Kind = "!"
	KindOr       Kind = "||"
	KindAnd      Kind = "&&"
	KindEq       Kind = "=="
	KindNeq      Kind = "!="
	KindLt       Kind = "<"
	KindLeq      Kind = "<="
	KindGt       Kind = ">"
	KindGeq      Kind = ">="

	// KindUninit is synthesized by the statement executor for a `vardef`
	// binding that has not yet been assigned (spec.md §4.4, §9 Open
	// Question resolved in SPEC_FULL.md §D.3: reading it is a NAME_ERROR
	// naming the variable, not a crash and not a silent sentinel value).
	KindUninit Kind = "__uninit__"
)

// Pos is the source position of a node, used only for host error messages.
// The parsing module is free to leave this zero-valued.
type Pos struct {
	Line   int
	Column int
}

// Node is the opaque tagged record described in spec.md §3: a kind tag plus
// a named-attribute mapping. Attribute values are either a primitive Go
// value (string, int64, bool), a single *Node, or a []*Node, depending on
// the attribute and kind — see the accessor methods below for the expected
// shape per attribute name.
type Node struct {
	Kind Kind
	Pos  Pos
	Attr map[string]any
}

// New builds a Node of the given kind with the supplied attributes.
func New(kind Kind, attr map[string]any) *Node {
	if attr == nil {
		attr = map[string]any{}
	}
	return &Node{Kind: kind, Attr: attr}
}

// At attaches a source position, for parsers that track one.
func (n *Node) At(line, col int) *Node {
	n.Pos = Pos{Line: line, Column: col}
	return n
}

// Str returns a string-valued attribute, or "" if absent/wrong type.
func (n *Node) Str(name string) string {
	v, _ := n.Attr[name].(string)
	return v
}

// Int returns an int64-valued attribute, or 0 if absent/wrong type.
func (n *Node) Int(name string) int64 {
	v, _ := n.Attr[name].(int64)
	return v
}

// Bool returns a bool-valued attribute.
func (n *Node) Bool(name string) bool {
	v, _ := n.Attr[name].(bool)
	return v
}

// Child returns a single *Node attribute, or nil if absent.
func (n *Node) Child(name string) *Node {
	v, _ := n.Attr[name].(*Node)
	return v
}

// List returns a []*Node attribute, or nil if absent.
func (n *Node) List(name string) []*Node {
	v, _ := n.Attr[name].([]*Node)
	return v
}

// HasChild reports whether an attribute with a non-nil *Node is present.
func (n *Node) HasChild(name string) bool {
	return n.Child(name) != nil
}

// Literal builds a node of the given kind carrying value as its `val`
// attribute. Nothing in this module calls it: forced Thunks are memoized
// by caching the value on the Thunk itself (see internal/object.Thunk),
// not by rewriting their expression node into a literal.
func Literal(kind Kind, value any) *Node {
	return New(kind, map[string]any{"val": value})
}
