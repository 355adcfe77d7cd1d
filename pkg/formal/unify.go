package formal

import (
	"errors"
	"fmt"
)

// Unification failure kinds. A failed Unify call returns a *UnificationError
// wrapping exactly one of these sentinels, so callers can dispatch with
// errors.Is while still seeing the mismatching sub-term pair in the message.
var (
	// ErrCyclic reports an occurs-check failure: binding the variable would
	// construct an infinite term, as in unifying x with f(x).
	ErrCyclic = errors.New("cyclic binding")

	// ErrConstantClash reports two constants with different names.
	ErrConstantClash = errors.New("constant mismatch")

	// ErrOperatorClash reports two compounds with different operator names.
	ErrOperatorClash = errors.New("operator mismatch")

	// ErrArityMismatch reports two compounds with the same operator but
	// different argument counts.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrIncompatible reports a constant meeting a compound (or any other
	// variant pairing with no unifier).
	ErrIncompatible = errors.New("incompatible terms")
)

// UnificationError describes why two terms failed to unify. Left and Right
// are the innermost sub-term pair at which the mismatch was detected, which
// may be nested inside the terms originally passed to Unify.
//
// The error is diagnostic only: inside the search engine a failed unification
// just causes the current rule alternative to be abandoned, and the error
// never escapes Verify.
type UnificationError struct {
	Kind  error // one of the Err* sentinels above
	Left  Term
	Right Term
}

// Error returns a message naming the mismatching sub-term pair.
func (e *UnificationError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s: %s", e.Left, e.Right, e.Kind)
}

// Unwrap exposes the failure kind to errors.Is.
func (e *UnificationError) Unwrap() error {
	return e.Kind
}

// Unify computes the most general substitution that makes the two patterns
// structurally equal, or reports failure. Both sides are treated
// symmetrically: either may contain variables, although during search the
// goal side is typically ground and the rule side carries the variables.
//
// The algorithm is structural:
//   - A variable unifies with any term by binding, after an occurs check
//     that rejects cyclic bindings. When both sides are variables with the
//     same name the result is empty; with different names the left variable
//     is bound to the right.
//   - Constants unify only with identically named constants.
//   - Compounds unify when operator names and arities match; arguments are
//     unified left to right with the substitution accumulated so far applied
//     to each next pair first, so earlier bindings constrain later arguments.
//   - Any other pairing fails.
//
// On failure the returned error is a *UnificationError identifying the
// innermost mismatching pair.
func Unify(a, b Term) (*Substitution, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Unify: terms cannot be nil")
	}

	switch left := a.(type) {
	case *Variable:
		if right, ok := b.(*Variable); ok && right.name == left.name {
			return NewSubstitution(), nil
		}
		return bindVariable(left, b)

	case *Constant:
		switch right := b.(type) {
		case *Variable:
			return bindVariable(right, a)
		case *Constant:
			if left.name == right.name {
				return NewSubstitution(), nil
			}
			return nil, &UnificationError{Kind: ErrConstantClash, Left: a, Right: b}
		default:
			return nil, &UnificationError{Kind: ErrIncompatible, Left: a, Right: b}
		}

	case *Compound:
		switch right := b.(type) {
		case *Variable:
			return bindVariable(right, a)
		case *Compound:
			if left.operator != right.operator {
				return nil, &UnificationError{Kind: ErrOperatorClash, Left: a, Right: b}
			}
			if len(left.args) != len(right.args) {
				return nil, &UnificationError{Kind: ErrArityMismatch, Left: a, Right: b}
			}
			bindings := NewSubstitution()
			for i := range left.args {
				discovered, err := Unify(bindings.Apply(left.args[i]), bindings.Apply(right.args[i]))
				if err != nil {
					return nil, err
				}
				bindings = bindings.Compose(discovered)
			}
			return bindings, nil
		default:
			return nil, &UnificationError{Kind: ErrIncompatible, Left: a, Right: b}
		}
	}

	return nil, &UnificationError{Kind: ErrIncompatible, Left: a, Right: b}
}

// bindVariable binds v to t after the occurs check. Binding a variable to a
// term containing that same variable would construct an infinite term, so it
// fails with ErrCyclic instead.
func bindVariable(v *Variable, t Term) (*Substitution, error) {
	if occurs(v.name, t) {
		return nil, &UnificationError{Kind: ErrCyclic, Left: v, Right: t}
	}
	return singleton(v.name, t), nil
}
