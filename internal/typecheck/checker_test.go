package typecheck

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seantiz/rooc/internal/diag"
	"github.com/seantiz/rooc/internal/kinds"
	"github.com/seantiz/rooc/internal/parser"
)

func check(t *testing.T, source string) (*Result, error) {
	t.Helper()
	prob, err := parser.Parse(source)
	require.NoError(t, err)
	return Check(prob)
}

func TestCheckSimpleObjectiveOk(t *testing.T) {
	_, err := check(t, "min 3x + 4y")
	require.NoError(t, err)
}

func TestCheckUnboundNamesAreDecisionVariables(t *testing.T) {
	_, err := check(t, "min 1 s.t. x <= 2")
	require.NoError(t, err)
	_, err = check(t, "min undeclared")
	require.NoError(t, err) // bare objective references are decision vars, not required to be pre-declared
}

func TestCheckConstantsVisibleToObjective(t *testing.T) {
	res, err := check(t, "min A s.t. A <= 2 where A = 3")
	require.NoError(t, err)
	require.Equal(t, kinds.Number, res.ConstantKinds["A"])
}

func TestCheckDomainDeclarationsRecorded(t *testing.T) {
	res, err := check(t, "min x domain x : Integer")
	require.NoError(t, err)
	require.Equal(t, kinds.DomainInteger, res.Domains["x"])
}

func TestCheckConditionRequiresNumberSides(t *testing.T) {
	_, err := check(t, `min 1 s.t. "a" <= 2`)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	require.Equal(t, diag.KindOperatorError, d.Kind)
}

func TestCheckIterationProducerMustBeIterable(t *testing.T) {
	_, err := check(t, "min sum(i in 5){ i }")
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	require.Equal(t, diag.KindWrongArgument, d.Kind)
}

func TestCheckRangeProducerIsIterableOfNumber(t *testing.T) {
	_, err := check(t, "min sum(i in 0..3){ i }")
	require.NoError(t, err)
}

func TestCheckTuplePatternSpread(t *testing.T) {
	_, err := check(t, "min sum((i, v) in enumerate(A)){ v } where A = [1, 2]")
	require.NoError(t, err)
}

func TestCheckTuplePatternArityMismatch(t *testing.T) {
	_, err := check(t, "min sum((i, j, k) in enumerate(A)){ j } where A = [1, 2]")
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	require.Equal(t, diag.KindUnspreadable, d.Kind)
}

func TestCheckWrongNumberOfArgumentsPropagatesFromBuiltins(t *testing.T) {
	_, err := check(t, "min len(1, 2)")
	require.Error(t, err)
}

func TestCheckUnknownDomainTagFailsAtParse(t *testing.T) {
	_, err := parser.Parse("min x domain x : NotAKind")
	require.Error(t, err)
}
