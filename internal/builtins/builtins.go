// Package builtins is the uniform capability described in spec.md
// section 4.5: every named function validates its arity against the
// call-site AST once, then resolves each argument through a typed
// accessor at call time. There is no reflection and no hidden state — a
// read-only registry maps name to Spec, built once at init.
package builtins

import (
	"fmt"
	"math"
	"sort"

	"github.com/seantiz/rooc/internal/diag"
	"github.com/seantiz/rooc/internal/kinds"
)

// Spec is the small interface every builtin implements: from_parameters
// (here, CheckArity against the parsed call) plus Call and ArgKind/
// ReturnKind for the type checker.
type Spec struct {
	Name string
	// Arity is the fixed number of arguments, or -1 for variadic.
	Arity int
	// ArgKind returns the expected kind of argument i (only called for
	// i < Arity; variadic builtins describe their single repeated
	// element kind at index 0).
	ArgKind func(i int) kinds.Kind
	// ReturnKind computes the result kind given the (already
	// type-checked) argument kinds.
	ReturnKind func(args []kinds.Kind) kinds.Kind
	// Call evaluates the builtin given already-evaluated argument
	// values.
	Call func(args []kinds.Value) (kinds.Value, error)
}

// CheckArity validates a call site's argument count, returning
// WrongNumberOfArguments on mismatch.
func (s *Spec) CheckArity(got int) error {
	if s.Arity < 0 {
		return nil
	}
	if got != s.Arity {
		return &diag.Diagnostic{Kind: diag.KindWrongNumberOfArguments, Text: fmt.Sprintf("%s: got %d arguments, expected %d", s.Name, got, s.Arity)}
	}
	return nil
}

var registry = map[string]*Spec{}

func register(s *Spec) { registry[s.Name] = s }

// Lookup finds a builtin by name.
func Lookup(name string) (*Spec, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names returns every registered builtin name, sorted, for diagnostics
// and documentation.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func fixed1(name string, arg kinds.Kind, ret func(kinds.Kind) kinds.Kind, call func(kinds.Value) (kinds.Value, error)) {
	register(&Spec{
		Name:    name,
		Arity:   1,
		ArgKind: func(int) kinds.Kind { return arg },
		ReturnKind: func(args []kinds.Kind) kinds.Kind {
			if ret == nil {
				return kinds.Number
			}
			return ret(args[0])
		},
		Call: func(args []kinds.Value) (kinds.Value, error) { return call(args[0]) },
	})
}

func init() {
	registerGraphBuiltins()
	registerArrayBuiltins()
	registerNumericBuiltins()
	registerIterationBuiltins()
}

func registerGraphBuiltins() {
	fixed1("edges", kinds.Graph, func(kinds.Kind) kinds.Kind { return kinds.Iterable{Elem: kinds.GraphEdge} },
		func(v kinds.Value) (kinds.Value, error) {
			g, err := kinds.AsGraph(v)
			if err != nil {
				return nil, err
			}
			var elems []kinds.Value
			for _, e := range g.Edges() {
				elems = append(elems, kinds.GraphEdgeValue{E: e})
			}
			return kinds.IterableValue{ElemKind: kinds.GraphEdge, Elems: elems}, nil
		})

	fixed1("nodes", kinds.Graph, func(kinds.Kind) kinds.Kind { return kinds.Iterable{Elem: kinds.GraphNode} },
		func(v kinds.Value) (kinds.Value, error) {
			g, err := kinds.AsGraph(v)
			if err != nil {
				return nil, err
			}
			var elems []kinds.Value
			for _, n := range g.Nodes() {
				elems = append(elems, kinds.GraphNodeValue{N: n})
			}
			return kinds.IterableValue{ElemKind: kinds.GraphNode, Elems: elems}, nil
		})

	fixed1("neigh_edges", kinds.GraphNode, func(kinds.Kind) kinds.Kind { return kinds.Iterable{Elem: kinds.GraphEdge} },
		func(v kinds.Value) (kinds.Value, error) {
			n, err := kinds.AsNode(v)
			if err != nil {
				return nil, err
			}
			var elems []kinds.Value
			for _, e := range n.SortedEdges() {
				elems = append(elems, kinds.GraphEdgeValue{E: e})
			}
			return kinds.IterableValue{ElemKind: kinds.GraphEdge, Elems: elems}, nil
		})

	register(&Spec{
		Name:  "neighs_of",
		Arity: 2,
		ArgKind: func(i int) kinds.Kind {
			if i == 0 {
				return kinds.String
			}
			return kinds.Graph
		},
		ReturnKind: func([]kinds.Kind) kinds.Kind { return kinds.Iterable{Elem: kinds.GraphEdge} },
		Call: func(args []kinds.Value) (kinds.Value, error) {
			name, err := kinds.AsString(args[0])
			if err != nil {
				return nil, err
			}
			g, err := kinds.AsGraph(args[1])
			if err != nil {
				return nil, err
			}
			n, ok := g.NodeByName(name)
			if !ok {
				return nil, &diag.Diagnostic{Kind: diag.KindNotFound, Text: fmt.Sprintf("no node named %q in graph", name)}
			}
			var elems []kinds.Value
			for _, e := range n.SortedEdges() {
				elems = append(elems, kinds.GraphEdgeValue{E: e})
			}
			return kinds.IterableValue{ElemKind: kinds.GraphEdge, Elems: elems}, nil
		},
	})

	fixed1("graph_density", kinds.Graph, func(kinds.Kind) kinds.Kind { return kinds.Number },
		func(v kinds.Value) (kinds.Value, error) {
			g, err := kinds.AsGraph(v)
			if err != nil {
				return nil, err
			}
			return kinds.Num(g.Density()), nil
		})

	fixed1("order", kinds.Graph, func(kinds.Kind) kinds.Kind { return kinds.Number },
		func(v kinds.Value) (kinds.Value, error) {
			g, err := kinds.AsGraph(v)
			if err != nil {
				return nil, err
			}
			return kinds.Num(float64(g.Order())), nil
		})
}

func registerArrayBuiltins() {
	register(&Spec{
		Name:       "len",
		Arity:      1,
		ArgKind:    func(int) kinds.Kind { return kinds.Iterable{Elem: kinds.Any} },
		ReturnKind: func([]kinds.Kind) kinds.Kind { return kinds.Number },
		Call: func(args []kinds.Value) (kinds.Value, error) {
			it, err := kinds.AsIterable(args[0])
			if err != nil {
				return nil, err
			}
			return kinds.Num(float64(len(it.Elems))), nil
		},
	})

	register(&Spec{
		Name:    "enumerate",
		Arity:   1,
		ArgKind: func(int) kinds.Kind { return kinds.Iterable{Elem: kinds.Any} },
		ReturnKind: func(args []kinds.Kind) kinds.Kind {
			it, ok := args[0].(kinds.Iterable)
			elem := kinds.Any
			if ok {
				elem = it.Elem
			}
			return kinds.Iterable{Elem: kinds.Tuple{Elems: []kinds.Kind{kinds.Number, elem}}}
		},
		Call: func(args []kinds.Value) (kinds.Value, error) {
			it, err := kinds.AsIterable(args[0])
			if err != nil {
				return nil, err
			}
			var elems []kinds.Value
			for i, e := range it.Elems {
				elems = append(elems, kinds.TupleValue{Elems: []kinds.Value{kinds.Num(float64(i)), e}})
			}
			return kinds.IterableValue{ElemKind: kinds.Tuple{Elems: []kinds.Kind{kinds.Number, it.ElemKind}}, Elems: elems}, nil
		},
	})

	register(&Spec{
		Name:    "zip",
		Arity:   2,
		ArgKind: func(int) kinds.Kind { return kinds.Iterable{Elem: kinds.Any} },
		ReturnKind: func(args []kinds.Kind) kinds.Kind {
			a, _ := args[0].(kinds.Iterable)
			b, _ := args[1].(kinds.Iterable)
			ea, eb := kinds.Any, kinds.Any
			if a.Elem != nil {
				ea = a.Elem
			}
			if b.Elem != nil {
				eb = b.Elem
			}
			return kinds.Iterable{Elem: kinds.Tuple{Elems: []kinds.Kind{ea, eb}}}
		},
		Call: func(args []kinds.Value) (kinds.Value, error) {
			a, err := kinds.AsIterable(args[0])
			if err != nil {
				return nil, err
			}
			b, err := kinds.AsIterable(args[1])
			if err != nil {
				return nil, err
			}
			n := len(a.Elems)
			if len(b.Elems) < n {
				n = len(b.Elems)
			}
			var elems []kinds.Value
			for i := 0; i < n; i++ {
				elems = append(elems, kinds.TupleValue{Elems: []kinds.Value{a.Elems[i], b.Elems[i]}})
			}
			return kinds.IterableValue{ElemKind: kinds.Tuple{Elems: []kinds.Kind{a.ElemKind, b.ElemKind}}, Elems: elems}, nil
		},
	})

	register(&Spec{
		Name:    "range",
		Arity:   2,
		ArgKind: func(int) kinds.Kind { return kinds.Number },
		ReturnKind: func([]kinds.Kind) kinds.Kind {
			return kinds.Iterable{Elem: kinds.Number}
		},
		Call: func(args []kinds.Value) (kinds.Value, error) {
			a, err := kinds.AsInteger(args[0])
			if err != nil {
				return nil, err
			}
			b, err := kinds.AsInteger(args[1])
			if err != nil {
				return nil, err
			}
			var elems []kinds.Value
			for i := a; i < b; i++ {
				elems = append(elems, kinds.Num(float64(i)))
			}
			return kinds.IterableValue{ElemKind: kinds.Number, Elems: elems}, nil
		},
	})

	numberArrayReduction := func(name string, fold func([]float64) (float64, error)) {
		fixed1(name, kinds.Iterable{Elem: kinds.Number}, func(kinds.Kind) kinds.Kind { return kinds.Number },
			func(v kinds.Value) (kinds.Value, error) {
				arr, err := kinds.AsNumberArray(v)
				if err != nil {
					return nil, err
				}
				r, err := fold(arr)
				if err != nil {
					return nil, err
				}
				return kinds.Num(r), nil
			})
	}
	numberArrayReduction("sum_array", func(a []float64) (float64, error) {
		s := 0.0
		for _, v := range a {
			s += v
		}
		return s, nil
	})
	numberArrayReduction("min_array", func(a []float64) (float64, error) {
		if len(a) == 0 {
			return 0, &diag.Diagnostic{Kind: diag.KindWrongArgument, Text: "min_array: empty array"}
		}
		m := a[0]
		for _, v := range a[1:] {
			if v < m {
				m = v
			}
		}
		return m, nil
	})
	numberArrayReduction("max_array", func(a []float64) (float64, error) {
		if len(a) == 0 {
			return 0, &diag.Diagnostic{Kind: diag.KindWrongArgument, Text: "max_array: empty array"}
		}
		m := a[0]
		for _, v := range a[1:] {
			if v > m {
				m = v
			}
		}
		return m, nil
	})
	numberArrayReduction("avg_array", func(a []float64) (float64, error) {
		if len(a) == 0 {
			return 0, &diag.Diagnostic{Kind: diag.KindWrongArgument, Text: "avg_array: empty array"}
		}
		s := 0.0
		for _, v := range a {
			s += v
		}
		return s / float64(len(a)), nil
	})
}

func registerNumericBuiltins() {
	numeric := func(name string, f func(float64) float64) {
		fixed1(name, kinds.Number, func(kinds.Kind) kinds.Kind { return kinds.Number },
			func(v kinds.Value) (kinds.Value, error) {
				n, err := kinds.AsNumber(v)
				if err != nil {
					return nil, err
				}
				return kinds.Num(f(n)), nil
			})
	}
	numeric("abs", math.Abs)
	numeric("floor", math.Floor)
	numeric("ceil", math.Ceil)
	numeric("sqrt", math.Sqrt)
}

func registerIterationBuiltins() {
	// Reserved for future iteration-producing builtins beyond range/zip.
}
