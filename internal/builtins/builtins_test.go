package builtins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seantiz/rooc/internal/kinds"
)

func call(t *testing.T, name string, args ...kinds.Value) (kinds.Value, error) {
	t.Helper()
	spec, ok := Lookup(name)
	require.True(t, ok, "builtin %q not registered", name)
	require.NoError(t, spec.CheckArity(len(args)))
	return spec.Call(args)
}

func numberIterable(t *testing.T, vals ...float64) kinds.Value {
	t.Helper()
	elems := make([]kinds.Value, len(vals))
	for i, v := range vals {
		elems[i] = kinds.Num(v)
	}
	v, err := kinds.NewIterable(kinds.Number, elems)
	require.NoError(t, err)
	return v
}

func TestLookupUnknownBuiltin(t *testing.T) {
	_, ok := Lookup("not_a_builtin")
	require.False(t, ok)
}

func TestCheckArityMismatch(t *testing.T) {
	spec, ok := Lookup("len")
	require.True(t, ok)
	err := spec.CheckArity(2)
	require.Error(t, err)
}

func TestLen(t *testing.T) {
	v, err := call(t, "len", numberIterable(t, 1, 2, 3))
	require.NoError(t, err)
	n, err := kinds.AsNumber(v)
	require.NoError(t, err)
	require.Equal(t, 3.0, n)
}

func TestRangeHalfOpen(t *testing.T) {
	v, err := call(t, "range", kinds.Num(0), kinds.Num(3))
	require.NoError(t, err)
	arr, err := kinds.AsNumberArray(v)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2}, arr)
}

func TestRangeEmpty(t *testing.T) {
	v, err := call(t, "range", kinds.Num(5), kinds.Num(5))
	require.NoError(t, err)
	it, err := kinds.AsIterable(v)
	require.NoError(t, err)
	require.Empty(t, it.Elems)
}

func TestEnumerate(t *testing.T) {
	v, err := call(t, "enumerate", numberIterable(t, 10, 20))
	require.NoError(t, err)
	it, err := kinds.AsIterable(v)
	require.NoError(t, err)
	require.Len(t, it.Elems, 2)
	pair, err := kinds.AsTuple(it.Elems[0])
	require.NoError(t, err)
	idx, err := kinds.AsNumber(pair[0])
	require.NoError(t, err)
	require.Equal(t, 0.0, idx)
}

func TestZipTruncatesToShorterInput(t *testing.T) {
	v, err := call(t, "zip", numberIterable(t, 1, 2, 3), numberIterable(t, 10, 20))
	require.NoError(t, err)
	it, err := kinds.AsIterable(v)
	require.NoError(t, err)
	require.Len(t, it.Elems, 2)
}

func TestSumArray(t *testing.T) {
	v, err := call(t, "sum_array", numberIterable(t, 1, 2, 3))
	require.NoError(t, err)
	n, err := kinds.AsNumber(v)
	require.NoError(t, err)
	require.Equal(t, 6.0, n)
}

func TestAvgArrayEmptyIsWrongArgument(t *testing.T) {
	_, err := call(t, "avg_array", numberIterable(t))
	require.Error(t, err)
}

func TestMinMaxArray(t *testing.T) {
	v, err := call(t, "min_array", numberIterable(t, 5, 1, 3))
	require.NoError(t, err)
	n, err := kinds.AsNumber(v)
	require.NoError(t, err)
	require.Equal(t, 1.0, n)

	v, err = call(t, "max_array", numberIterable(t, 5, 1, 3))
	require.NoError(t, err)
	n, err = kinds.AsNumber(v)
	require.NoError(t, err)
	require.Equal(t, 5.0, n)
}
