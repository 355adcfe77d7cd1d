package formal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUnify_Variables verifies variable binding in both positions.
func TestUnify_Variables(t *testing.T) {
	bindings, err := Unify(Var("x"), Op("succ", Con("zero")))
	require.NoError(t, err)
	term, ok := bindings.Lookup("x")
	require.True(t, ok, "x should be bound")
	assert.True(t, term.Equal(Op("succ", Con("zero"))))

	bindings, err = Unify(Op("succ", Con("zero")), Var("x"))
	require.NoError(t, err)
	term, ok = bindings.Lookup("x")
	require.True(t, ok, "binding should work with the variable on either side")
	assert.True(t, term.Equal(Op("succ", Con("zero"))))
}

// TestUnify_SameVariable verifies that a variable unifies with itself
// without producing a binding.
func TestUnify_SameVariable(t *testing.T) {
	bindings, err := Unify(Var("x"), Var("x"))
	require.NoError(t, err)
	assert.Equal(t, 0, bindings.Len(), "x against x should bind nothing")
}

// TestUnify_DistinctVariables verifies that two different variables unify by
// binding the left to the right.
func TestUnify_DistinctVariables(t *testing.T) {
	bindings, err := Unify(Var("x"), Var("y"))
	require.NoError(t, err)
	term, ok := bindings.Lookup("x")
	require.True(t, ok)
	assert.True(t, term.Equal(Var("y")))
}

// TestUnify_Constants verifies constant matching.
func TestUnify_Constants(t *testing.T) {
	bindings, err := Unify(Con("zero"), Con("zero"))
	require.NoError(t, err)
	assert.Equal(t, 0, bindings.Len())

	_, err = Unify(Con("zero"), Con("one"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstantClash))

	var ue *UnificationError
	require.True(t, errors.As(err, &ue))
	assert.True(t, ue.Left.Equal(Con("zero")))
	assert.True(t, ue.Right.Equal(Con("one")))
}

// TestUnify_ConstantCompoundClash verifies that a constant never unifies
// with a compound, even when the names coincide.
func TestUnify_ConstantCompoundClash(t *testing.T) {
	_, err := Unify(Con("f"), Op("f"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompatible))

	_, err = Unify(Op("f"), Con("f"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompatible))
}

// TestUnify_Compounds verifies operator and arity discrimination.
func TestUnify_Compounds(t *testing.T) {
	_, err := Unify(Op("nat", Var("n")), Op("tree", Var("n")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOperatorClash))

	_, err = Unify(Op("f", Var("x")), Op("f", Var("x"), Var("y")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArityMismatch))
}

// TestUnify_OccursCheck verifies that cyclic bindings are rejected.
func TestUnify_OccursCheck(t *testing.T) {
	_, err := Unify(Var("x"), Op("succ", Var("x")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCyclic))

	// The same cycle buried one level down.
	_, err = Unify(Op("f", Var("x")), Op("f", Op("succ", Var("x"))))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCyclic))
}

// TestUnify_ThreadsBindings verifies that bindings discovered in earlier
// arguments constrain later arguments.
func TestUnify_ThreadsBindings(t *testing.T) {
	bindings, err := Unify(
		Op("pair", Var("x"), Op("succ", Var("x"))),
		Op("pair", Con("zero"), Var("y")))
	require.NoError(t, err)

	x, ok := bindings.Lookup("x")
	require.True(t, ok)
	assert.True(t, x.Equal(Con("zero")))

	y, ok := bindings.Lookup("y")
	require.True(t, ok)
	assert.True(t, y.Equal(Op("succ", Con("zero"))), "y should see x's binding from the first argument")
}

// TestUnify_SharedVariableConflict verifies that a variable cannot take two
// different values across argument positions.
func TestUnify_SharedVariableConflict(t *testing.T) {
	_, err := Unify(
		Op("pair", Var("x"), Var("x")),
		Op("pair", Con("zero"), Con("one")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstantClash), "the second occurrence should clash with the first binding")
}

// TestUnify_MostGeneral verifies that the computed substitution actually
// equates both sides.
func TestUnify_MostGeneral(t *testing.T) {
	cases := []struct {
		name  string
		left  Term
		right Term
	}{
		{"variable against ground", Op("nat", Var("n")), Op("nat", Op("succ", Con("zero")))},
		{"variables on both sides", Op("sum", Var("a"), Con("zero"), Var("a")), Op("sum", Var("b"), Con("zero"), Op("succ", Con("zero")))},
		{"nested sharing", Op("f", Var("x"), Op("g", Var("x"), Var("y"))), Op("f", Con("c"), Op("g", Var("z"), Con("d")))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bindings, err := Unify(tc.left, tc.right)
			require.NoError(t, err)
			assert.True(t,
				bindings.Apply(tc.left).Equal(bindings.Apply(tc.right)),
				"applying the unifier should equate both sides: %s vs %s",
				bindings.Apply(tc.left), bindings.Apply(tc.right))
		})
	}
}

// TestUnify_NilTerms verifies the nil guard.
func TestUnify_NilTerms(t *testing.T) {
	_, err := Unify(nil, Con("zero"))
	require.Error(t, err)
	_, err = Unify(Con("zero"), nil)
	require.Error(t, err)
}

// TestUnify_ErrorMessage verifies the diagnostic names the innermost
// mismatching pair, not the outer terms.
func TestUnify_ErrorMessage(t *testing.T) {
	_, err := Unify(
		Op("nat", Op("succ", Con("zero"))),
		Op("nat", Op("succ", Con("one"))))
	require.Error(t, err)

	var ue *UnificationError
	require.True(t, errors.As(err, &ue))
	assert.True(t, ue.Left.Equal(Con("zero")))
	assert.True(t, ue.Right.Equal(Con("one")))
	assert.Equal(t, "cannot unify zero with one: constant mismatch", err.Error())
}
