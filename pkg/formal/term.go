// Package formal provides a brute-force derivation engine for user-declared
// inference-rule systems (natural-deduction-style formal systems, such as
// type-theoretic judgment rules).
//
// A caller declares a set of named rules, each rule being a list of hypothesis
// patterns and a conclusion pattern built from variables, constants, and
// compound operators. Given a target judgment, the engine searches for a
// finite derivation tree proving it, bounded by a maximum nesting depth so
// that search terminates even over rule sets that permit unbounded regress.
//
// The package is built from a small set of composable pieces:
//   - Terms: variables, constants, and compound operator applications
//   - Substitutions: variable-to-term mappings with apply and compose
//   - Unification: computing the most general substitution equating two patterns
//   - Rules and systems: named inference steps assembled into an ordered system
//   - Search: depth-bounded backtracking proof search over rule alternatives
//   - Derivations: self-contained proof trees with text and JSON rendering
//
// All values are immutable once constructed, and the search threads its state
// through return values rather than shared mutation, so verification is safe
// to run concurrently from multiple goroutines against the same System.
package formal

import (
	"sort"
	"strings"
)

// Term represents a judgment or expression pattern in a formal system.
// A term is a Variable, a Constant, or a Compound operator application.
// The variant set is closed: only this package implements Term.
//
// Terms are immutable value objects. Structural equality is available via
// Equal; unification (which treats variables as binding sites rather than
// atoms) is provided separately by Unify.
type Term interface {
	// String returns the text form of the term. Variables and constants
	// render as their name; compounds render as "op(arg1, arg2, ...)".
	String() string

	// Equal reports whether this term is structurally identical to other:
	// same variant, same name, and for compounds the same operator with
	// element-wise equal argument lists of the same length.
	Equal(other Term) bool

	// collectVariables accumulates the names of all variables occurring in
	// the term. It doubles as the sealing method that closes the variant set.
	collectVariables(names map[string]struct{})
}

// Variable is a placeholder term, meaningful only within the scope of one
// rule instantiation. The search engine renames rule variables freshly each
// time a rule is tried, so identically named variables in different rules
// never interfere.
type Variable struct {
	name string
}

// NewVariable creates a variable with the given name.
func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

// Name returns the variable's name.
func (v *Variable) Name() string {
	return v.name
}

// String returns the variable's name.
func (v *Variable) String() string {
	return v.name
}

// Equal reports whether other is a variable with the same name.
func (v *Variable) Equal(other Term) bool {
	o, ok := other.(*Variable)
	return ok && o.name == v.name
}

func (v *Variable) collectVariables(names map[string]struct{}) {
	names[v.name] = struct{}{}
}

// Constant is a nullary, self-evaluating symbol. Constants unify only with
// themselves (or with a variable); a constant is distinct from a compound
// with zero arguments even when the names coincide.
type Constant struct {
	name string
}

// NewConstant creates a constant with the given name.
func NewConstant(name string) *Constant {
	return &Constant{name: name}
}

// Name returns the constant's name.
func (c *Constant) Name() string {
	return c.name
}

// String returns the constant's name.
func (c *Constant) String() string {
	return c.name
}

// Equal reports whether other is a constant with the same name.
func (c *Constant) Equal(other Term) bool {
	o, ok := other.(*Constant)
	return ok && o.name == c.name
}

func (c *Constant) collectVariables(names map[string]struct{}) {}

// Compound is an operator applied to an ordered list of argument terms.
// Arity is simply the length of the argument list at each occurrence; the
// engine does not enforce a consistent arity for an operator name across
// rules, so op(x) and op(x, y) may coexist in one system.
type Compound struct {
	operator string
	args     []Term
}

// NewCompound creates a compound term from an operator name and its ordered
// arguments. The argument slice is copied, so the caller may reuse it.
func NewCompound(operator string, args []Term) *Compound {
	owned := make([]Term, len(args))
	copy(owned, args)
	return &Compound{operator: operator, args: owned}
}

// Operator returns the compound's operator name.
func (c *Compound) Operator() string {
	return c.operator
}

// Args returns a copy of the compound's argument list.
func (c *Compound) Args() []Term {
	args := make([]Term, len(c.args))
	copy(args, c.args)
	return args
}

// Arity returns the number of arguments.
func (c *Compound) Arity() int {
	return len(c.args)
}

// String renders the compound as "op(arg1, arg2, ...)". A nullary compound
// renders as "op()", which keeps it visually distinct from the constant "op".
func (c *Compound) String() string {
	var b strings.Builder
	b.WriteString(c.operator)
	b.WriteString("(")
	for i, arg := range c.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteString(")")
	return b.String()
}

// Equal reports whether other is a compound with the same operator and
// element-wise equal arguments.
func (c *Compound) Equal(other Term) bool {
	o, ok := other.(*Compound)
	if !ok || o.operator != c.operator || len(o.args) != len(c.args) {
		return false
	}
	for i, arg := range c.args {
		if !arg.Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (c *Compound) collectVariables(names map[string]struct{}) {
	for _, arg := range c.args {
		arg.collectVariables(names)
	}
}

// Var builds a Variable. It is shorthand sugar for NewVariable, convenient
// when writing rule patterns inline.
func Var(name string) *Variable {
	return NewVariable(name)
}

// Con builds a Constant. It is shorthand sugar for NewConstant.
func Con(name string) *Constant {
	return NewConstant(name)
}

// Op builds a Compound from an operator name and its arguments. It is
// shorthand sugar for NewCompound:
//
//	Op("nat", Op("succ", Con("zero")))  // nat(succ(zero))
func Op(operator string, args ...Term) *Compound {
	return NewCompound(operator, args)
}

// Variables returns the sorted, de-duplicated names of all variables
// occurring in t. A ground term yields an empty slice.
func Variables(t Term) []string {
	if t == nil {
		return nil
	}
	set := make(map[string]struct{})
	t.collectVariables(set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsGround reports whether t contains no variables. Judgments in a completed
// derivation of a ground goal are always ground.
func IsGround(t Term) bool {
	switch t := t.(type) {
	case *Variable:
		return false
	case *Constant:
		return true
	case *Compound:
		for _, arg := range t.args {
			if !IsGround(arg) {
				return false
			}
		}
		return true
	default:
		return t == nil
	}
}

// occurs reports whether a variable with the given name occurs anywhere in t.
func occurs(name string, t Term) bool {
	switch t := t.(type) {
	case *Variable:
		return t.name == name
	case *Compound:
		for _, arg := range t.args {
			if occurs(name, arg) {
				return true
			}
		}
	}
	return false
}

// renameVariables returns t with every variable whose name is a key of
// mapping replaced by a variable with the mapped name. The same source name
// is always replaced consistently, preserving sharing within one rule
// instantiation. Subterms without renamed variables are reused as-is.
func renameVariables(t Term, mapping map[string]string) Term {
	switch t := t.(type) {
	case *Variable:
		if fresh, ok := mapping[t.name]; ok {
			return &Variable{name: fresh}
		}
		return t
	case *Compound:
		args := make([]Term, len(t.args))
		changed := false
		for i, arg := range t.args {
			args[i] = renameVariables(arg, mapping)
			if args[i] != arg {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &Compound{operator: t.operator, args: args}
	default:
		return t
	}
}
