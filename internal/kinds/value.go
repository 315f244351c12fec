package kinds

import (
	"fmt"
	"strconv"

	"github.com/seantiz/rooc/internal/diag"
)

// Value is the runtime counterpart of Kind: a tagged variant carrying
// concrete data. The invariant enforced by the type checker (component
// C5) is that Value.Kind() always equals the Kind computed statically
// for the expression that produced it.
type Value interface {
	fmt.Stringer
	Kind() Kind
	isValue()
}

type numberValue float64
type booleanValue bool
type stringValue string
type undefinedValue struct{}

func Num(v float64) Value   { return numberValue(v) }
func Bool(v bool) Value     { return booleanValue(v) }
func Str(v string) Value    { return stringValue(v) }
func Undef() Value          { return undefinedValue{} }

func (numberValue) isValue()    {}
func (booleanValue) isValue()   {}
func (stringValue) isValue()    {}
func (undefinedValue) isValue() {}

func (numberValue) Kind() Kind    { return Number }
func (booleanValue) Kind() Kind   { return Boolean }
func (stringValue) Kind() Kind    { return String }
func (undefinedValue) Kind() Kind { return Undefined }

func (v numberValue) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v booleanValue) String() string { return strconv.FormatBool(bool(v)) }
func (v stringValue) String() string  { return string(v) }
func (undefinedValue) String() string { return "undefined" }

// GraphValue, GraphNodeValue and GraphEdgeValue wrap the kinds.Graph/Node/Edge
// shapes as runtime values.
type GraphValue struct{ G *Graph }
type GraphNodeValue struct{ N *Node }
type GraphEdgeValue struct{ E *Edge }

func (GraphValue) isValue()     {}
func (GraphNodeValue) isValue() {}
func (GraphEdgeValue) isValue() {}

func (GraphValue) Kind() Kind     { return Graph }
func (GraphNodeValue) Kind() Kind { return GraphNode }
func (GraphEdgeValue) Kind() Kind { return GraphEdge }

func (v GraphValue) String() string     { return v.G.String() }
func (v GraphNodeValue) String() string { return v.N.String() }
func (v GraphEdgeValue) String() string { return v.E.String() }

// TupleValue is a fixed-arity heterogeneous group of values.
type TupleValue struct{ Elems []Value }

func (TupleValue) isValue() {}
func (t TupleValue) Kind() Kind {
	ks := make([]Kind, len(t.Elems))
	for i, e := range t.Elems {
		ks[i] = e.Kind()
	}
	return Tuple{Elems: ks}
}
func (t TupleValue) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// IterableValue is a homogeneous sequence of values of ElemKind. A single
// generic carrier replaces the eight parallel per-case iterable variants
// spec.md enumerates (Numbers, Strings, Edges, Nodes, Graphs, Tuples,
// Booleans, Iterables): the per-case enumeration exists in the source
// language purely so each case can be pattern-matched in Rust; Go's
// interface-typed Elems slice plus the stored ElemKind achieve the same
// homogeneity invariant (the constructors below reject mixed-kind input)
// without eight near-identical wrapper types.
type IterableValue struct {
	ElemKind Kind
	Elems    []Value
}

func (IterableValue) isValue()      {}
func (v IterableValue) Kind() Kind { return Iterable{Elem: v.ElemKind} }
func (v IterableValue) String() string {
	s := "["
	for i, e := range v.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// NewIterable builds an IterableValue, validating that every element's
// kind equals elemKind. An empty elems slice is accepted with any
// elemKind.
func NewIterable(elemKind Kind, elems []Value) (Value, error) {
	for _, e := range elems {
		if !e.Kind().Equal(elemKind) {
			return nil, &TypedError{Kind: diag.KindWrongArgument, Msg: fmt.Sprintf("expected %s, got %s", elemKind, e.Kind())}
		}
	}
	return IterableValue{ElemKind: elemKind, Elems: elems}, nil
}

// TypedError is the common accessor-failure type returned by the As*
// helpers below; it carries a diag.Kind so callers can re-tag it into a
// spanned diagnostic without losing the taxonomy classification.
type TypedError struct {
	Kind diag.Kind
	Msg  string
}

func (e *TypedError) Error() string { return string(e.Kind) + ": " + e.Msg }

func wrongArg(expected string, got Value) error {
	return &TypedError{Kind: diag.KindWrongArgument, Msg: fmt.Sprintf("expected %s, got %s (%s)", expected, got.Kind(), got)}
}

// AsNumber coerces v to a float64 or fails with WrongArgument.
func AsNumber(v Value) (float64, error) {
	n, ok := v.(numberValue)
	if !ok {
		return 0, wrongArg("Number", v)
	}
	return float64(n), nil
}

// AsBoolean coerces v to a bool or fails with WrongArgument.
func AsBoolean(v Value) (bool, error) {
	b, ok := v.(booleanValue)
	if !ok {
		return false, wrongArg("Boolean", v)
	}
	return bool(b), nil
}

// AsString coerces v to a string or fails with WrongArgument.
func AsString(v Value) (string, error) {
	s, ok := v.(stringValue)
	if !ok {
		return "", wrongArg("String", v)
	}
	return string(s), nil
}

// AsInteger requires v to be a whole Number.
func AsInteger(v Value) (int64, error) {
	n, err := AsNumber(v)
	if err != nil {
		return 0, err
	}
	if n != float64(int64(n)) {
		return 0, wrongArg("Integer", v)
	}
	return int64(n), nil
}

// AsUsize requires v to be a non-negative whole Number, the coercion
// used for every addressable-access index in the transformer.
func AsUsize(v Value) (int, error) {
	i, err := AsInteger(v)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, &TypedError{Kind: diag.KindOutOfBounds, Msg: fmt.Sprintf("expected a non-negative integer, got %d", i)}
	}
	return int(i), nil
}

// AsGraph coerces v to a *Graph or fails with WrongArgument.
func AsGraph(v Value) (*Graph, error) {
	g, ok := v.(GraphValue)
	if !ok {
		return nil, wrongArg("Graph", v)
	}
	return g.G, nil
}

// AsNode coerces v to a *Node or fails with WrongArgument.
func AsNode(v Value) (*Node, error) {
	n, ok := v.(GraphNodeValue)
	if !ok {
		return nil, wrongArg("GraphNode", v)
	}
	return n.N, nil
}

// AsEdge coerces v to a *Edge or fails with WrongArgument.
func AsEdge(v Value) (*Edge, error) {
	e, ok := v.(GraphEdgeValue)
	if !ok {
		return nil, wrongArg("GraphEdge", v)
	}
	return e.E, nil
}

// AsIterable coerces v to an IterableValue or fails with WrongArgument.
func AsIterable(v Value) (IterableValue, error) {
	it, ok := v.(IterableValue)
	if !ok {
		return IterableValue{}, wrongArg("Iterable", v)
	}
	return it, nil
}

// AsTuple coerces v to the underlying []Value of a TupleValue.
func AsTuple(v Value) ([]Value, error) {
	t, ok := v.(TupleValue)
	if !ok {
		return nil, wrongArg("Tuple", v)
	}
	return t.Elems, nil
}

// AsNumberArray requires v to be Iterable(Number) and unwraps it to a
// plain []float64, the shape most numeric builtins want to operate on.
func AsNumberArray(v Value) ([]float64, error) {
	it, err := AsIterable(v)
	if err != nil {
		return nil, err
	}
	if !it.ElemKind.Equal(Number) {
		return nil, wrongArg("Number[]", v)
	}
	out := make([]float64, len(it.Elems))
	for i, e := range it.Elems {
		n, err := AsNumber(e)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// AsNumberMatrix requires v to be Iterable(Iterable(Number)) — a
// rectangular check is intentionally not enforced here, matching the
// source language's array-of-arrays semantics (ragged arrays are legal
// values; only the consuming builtin decides whether it needs a
// rectangle).
func AsNumberMatrix(v Value) ([][]float64, error) {
	it, err := AsIterable(v)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(it.Elems))
	for i, e := range it.Elems {
		row, err := AsNumberArray(e)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}

// NameFor renders v as the name-safe fragment used by compound-variable
// flattening (spec.md section 4.3): Number becomes its decimal form,
// String is used verbatim, GraphNode becomes the node's name. Any other
// kind is a WrongArgument failure.
func NameFor(v Value) (string, error) {
	switch t := v.(type) {
	case numberValue:
		return strconv.FormatFloat(float64(t), 'f', -1, 64), nil
	case stringValue:
		return string(t), nil
	case GraphNodeValue:
		return t.N.Name, nil
	default:
		return "", wrongArg("Number, String or GraphNode", v)
	}
}
