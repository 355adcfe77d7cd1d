package formal

import (
	"fmt"
	"sort"
	"strings"
)

// Substitution is a finite mapping from variable names to terms. Applying a
// substitution rewrites a term by replacing every bound variable; composing
// substitutions threads bindings discovered at different search steps into
// one mapping.
//
// Substitutions are immutable: Bind and Compose return new values and never
// mutate the receiver. This value discipline is what makes backtracking in
// the search engine correct, since abandoning a branch simply means
// discarding its local substitution, with no undo log.
type Substitution struct {
	bindings map[string]Term
}

// NewSubstitution creates an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{bindings: map[string]Term{}}
}

// singleton creates a substitution with exactly one binding. Callers are
// expected to have already run the occurs check.
func singleton(name string, term Term) *Substitution {
	return &Substitution{bindings: map[string]Term{name: term}}
}

// Len returns the number of bindings.
func (s *Substitution) Len() int {
	return len(s.bindings)
}

// Lookup returns the term bound to the named variable, if any.
func (s *Substitution) Lookup(name string) (Term, bool) {
	term, ok := s.bindings[name]
	return term, ok
}

// Names returns the sorted names of all bound variables.
func (s *Substitution) Names() []string {
	names := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind returns a new substitution extended with name bound to term.
//
// Binding is insert-only: rebinding a name to a structurally different term
// is an error (overriding happens only through explicit composition), while
// rebinding to an identical term is a no-op. Binding a variable to itself is
// also a no-op, and binding a variable to a term that contains it (directly
// or through existing bindings) is rejected, since such a mapping would make
// Apply non-terminating.
func (s *Substitution) Bind(name string, term Term) (*Substitution, error) {
	if term == nil {
		return nil, fmt.Errorf("Bind: term cannot be nil")
	}
	if existing, ok := s.bindings[name]; ok {
		if existing.Equal(term) {
			return s, nil
		}
		return nil, fmt.Errorf("Bind: %s is already bound to %s, cannot rebind to %s", name, existing, term)
	}
	if v, ok := term.(*Variable); ok && v.name == name {
		return s, nil
	}
	// The occurs check runs against the applied form so that chains through
	// existing bindings cannot smuggle in a cycle.
	if applied := s.Apply(term); occurs(name, applied) {
		return nil, fmt.Errorf("Bind: %s occurs in %s, binding would be cyclic", name, applied)
	}
	out := make(map[string]Term, len(s.bindings)+1)
	for k, v := range s.bindings {
		out[k] = v
	}
	out[name] = term
	return &Substitution{bindings: out}, nil
}

// Apply rewrites t by replacing every variable bound in the substitution,
// chasing bindings through the replacement terms until a fixpoint. Constants
// and operator names are unaffected; compound arguments are substituted
// element-wise, preserving order. Apply is total and returns subterms of t
// unchanged (and shared) wherever no binding applies.
func (s *Substitution) Apply(t Term) Term {
	switch t := t.(type) {
	case *Variable:
		if bound, ok := s.bindings[t.name]; ok {
			return s.Apply(bound)
		}
		return t
	case *Compound:
		args := make([]Term, len(t.args))
		changed := false
		for i, arg := range t.args {
			args[i] = s.Apply(arg)
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

// Compose combines the receiver with bindings discovered later: it applies
// other to every value already present, then adds other's own bindings,
// overriding on collision. The result behaves like "apply s, then apply
// other". Identity bindings (a variable mapped to itself) are dropped.
func (s *Substitution) Compose(other *Substitution) *Substitution {
	if other == nil || len(other.bindings) == 0 {
		return s
	}
	out := make(map[string]Term, len(s.bindings)+len(other.bindings))
	for name, term := range s.bindings {
		applied := other.Apply(term)
		if v, ok := applied.(*Variable); ok && v.name == name {
			continue
		}
		out[name] = applied
	}
	for name, term := range other.bindings {
		if v, ok := term.(*Variable); ok && v.name == name {
			continue
		}
		out[name] = term
	}
	return &Substitution{bindings: out}
}

// String renders the substitution as "{x→a, y→f(b)}" with names in sorted
// order, or "{}" when empty.
func (s *Substitution) String() string {
	if len(s.bindings) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	for i, name := range s.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString("→")
		b.WriteString(s.bindings[name].String())
	}
	b.WriteString("}")
	return b.String()
}
