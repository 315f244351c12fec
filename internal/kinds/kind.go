// Package kinds is the primitive model (spec component C2): the static
// Kind lattice, the runtime Value variants that carry data of each kind,
// and the graph/node/edge/tuple shapes built on top of them. Every other
// package — the type checker, the transformer, the builtins — is built
// against this one vocabulary.
package kinds

import "fmt"

// Kind is the static type tag assigned to every value and every
// expression. It is a closed set of cases modeled as a small interface
// hierarchy rather than a class hierarchy: exhaustive switches over the
// concrete types below are how every consumer (the type checker, the
// capability matrix, the formatter) dispatches.
type Kind interface {
	fmt.Stringer
	// Equal reports structural equality, recursing through Iterable and
	// Tuple. Any is a wildcard that compares equal to everything — it is
	// only produced by builtins whose result kind is context-dependent.
	Equal(Kind) bool
	isKind()
}

type kNumber struct{}
type kBoolean struct{}
type kString struct{}
type kGraph struct{}
type kGraphEdge struct{}
type kGraphNode struct{}
type kUndefined struct{}
type kAny struct{}

// Tuple is the kind of a fixed-arity heterogeneous group.
type Tuple struct{ Elems []Kind }

// Iterable is the kind of a homogeneous sequence of an inner kind.
// Recursive: Iterable{Iterable{Number}} is a distinct kind from
// Iterable{Number}, exactly as spec.md requires.
type Iterable struct{ Elem Kind }

var (
	Number     Kind = kNumber{}
	Boolean    Kind = kBoolean{}
	String     Kind = kString{}
	Graph      Kind = kGraph{}
	GraphEdge  Kind = kGraphEdge{}
	GraphNode  Kind = kGraphNode{}
	Undefined  Kind = kUndefined{}
	Any        Kind = kAny{}
)

func (kNumber) isKind()    {}
func (kBoolean) isKind()   {}
func (kString) isKind()    {}
func (kGraph) isKind()     {}
func (kGraphEdge) isKind() {}
func (kGraphNode) isKind() {}
func (kUndefined) isKind() {}
func (kAny) isKind()       {}
func (Tuple) isKind()      {}
func (Iterable) isKind()   {}

func (kNumber) String() string    { return "Number" }
func (kBoolean) String() string   { return "Boolean" }
func (kString) String() string    { return "String" }
func (kGraph) String() string     { return "Graph" }
func (kGraphEdge) String() string { return "GraphEdge" }
func (kGraphNode) String() string { return "GraphNode" }
func (kUndefined) String() string { return "Undefined" }
func (kAny) String() string       { return "Any" }

func (t Tuple) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

func (i Iterable) String() string { return i.Elem.String() + "[]" }

func (kNumber) Equal(other Kind) bool    { return eqWildcard(kNumber{}, other) }
func (kBoolean) Equal(other Kind) bool   { return eqWildcard(kBoolean{}, other) }
func (kString) Equal(other Kind) bool    { return eqWildcard(kString{}, other) }
func (kGraph) Equal(other Kind) bool     { return eqWildcard(kGraph{}, other) }
func (kGraphEdge) Equal(other Kind) bool { return eqWildcard(kGraphEdge{}, other) }
func (kGraphNode) Equal(other Kind) bool { return eqWildcard(kGraphNode{}, other) }
func (kUndefined) Equal(other Kind) bool { return eqWildcard(kUndefined{}, other) }
func (kAny) Equal(Kind) bool             { return true }

func (t Tuple) Equal(other Kind) bool {
	if _, ok := other.(kAny); ok {
		return true
	}
	o, ok := other.(Tuple)
	if !ok || len(o.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

func (i Iterable) Equal(other Kind) bool {
	if _, ok := other.(kAny); ok {
		return true
	}
	o, ok := other.(Iterable)
	if !ok {
		return false
	}
	return i.Elem.Equal(o.Elem)
}

func eqWildcard(self, other Kind) bool {
	if _, ok := other.(kAny); ok {
		return true
	}
	return self == other
}

// CanApplyBinaryOp is the static capability matrix referenced throughout
// the type checker: it answers whether `op` may be applied between two
// operands of the given kinds, without evaluating anything.
func CanApplyBinaryOp(op BinOp, lhs, rhs Kind) bool {
	if lhs == nil || rhs == nil {
		return false
	}
	if _, ok := lhs.(kAny); ok {
		return false
	}
	if _, ok := rhs.(kAny); ok {
		return false
	}
	_, lhsNum := lhs.(kNumber)
	_, rhsNum := rhs.(kNumber)
	if lhsNum && rhsNum {
		return true
	}
	_, lhsStr := lhs.(kString)
	_, rhsStr := rhs.(kString)
	if op == Add && lhsStr && rhsStr {
		return true
	}
	return false
}

// CanApplyUnaryOp is the unary counterpart of CanApplyBinaryOp.
func CanApplyUnaryOp(op UnOp, k Kind) bool {
	if k == nil {
		return false
	}
	_, isNum := k.(kNumber)
	return isNum
}
