package linear

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seantiz/rooc/internal/diag"
	"github.com/seantiz/rooc/internal/kinds"
	"github.com/seantiz/rooc/internal/span"
	"github.com/seantiz/rooc/internal/transform"
)

func TestCollectTermsLinearCombination(t *testing.T) {
	e := transform.MakeBinOp(kinds.Add,
		transform.MakeBinOp(kinds.Mul, transform.Number(3), transform.Variable("x")),
		transform.MakeBinOp(kinds.Sub, transform.Variable("y"), transform.Number(2)))
	terms, err := CollectTerms(transform.Flatten(e), span.Zero)
	require.NoError(t, err)
	require.Equal(t, 3.0, terms.Coeffs["x"])
	require.Equal(t, 1.0, terms.Coeffs["y"])
	require.Equal(t, -2.0, terms.Constant)
}

func TestCollectTermsRejectsProductOfTwoVariables(t *testing.T) {
	e := transform.MakeBinOp(kinds.Mul, transform.Variable("x"), transform.Variable("y"))
	_, err := CollectTerms(transform.Flatten(e), span.Zero)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	require.Equal(t, diag.KindOperatorError, d.Kind)
}

func TestCollectTermsRejectsNonConstantAbs(t *testing.T) {
	_, err := CollectTerms(transform.Mod{Inner: transform.Variable("x")}, span.Zero)
	require.Error(t, err)
}

func TestCollectTermsFoldsConstantMod(t *testing.T) {
	terms, err := CollectTerms(transform.Mod{Inner: transform.Number(-4)}, span.Zero)
	require.NoError(t, err)
	require.Equal(t, 4.0, terms.Constant)
	require.True(t, terms.isConstant())
}

func TestCollectTermsRejectsMinMaxOfVariables(t *testing.T) {
	_, err := CollectTerms(transform.Min{Exps: []transform.Exp{transform.Variable("x"), transform.Number(1)}}, span.Zero)
	require.Error(t, err)
}

func TestVariableVocabularyIsSortedAndDeduped(t *testing.T) {
	obj := Terms{Coeffs: map[string]float64{"y": 1, "x": 2}}
	cond := Terms{Coeffs: map[string]float64{"x": 1, "z": 1}}
	vars := VariableVocabulary(obj, []Terms{cond})
	require.Equal(t, []string{"x", "y", "z"}, vars)
}

func TestTermsVectorAlignsToVocabulary(t *testing.T) {
	terms := Terms{Coeffs: map[string]float64{"x": 2, "z": 5}}
	vars := []string{"x", "y", "z"}
	require.Equal(t, []float64{2, 0, 5}, terms.Vector(vars))
}
