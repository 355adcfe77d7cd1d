package formal

import (
	"sort"
	"strings"
)

// Rule is a named inference step: an ordered list of hypothesis patterns and
// one conclusion pattern. A rule with no hypotheses is an axiom. Variables in
// a rule are scoped to that rule's declaration; the search engine renames
// them freshly every time the rule is considered, so rules never capture each
// other's variables.
type Rule struct {
	name       string
	hypotheses []Term
	conclusion Term
}

// NewRule creates a rule from a name, its hypothesis patterns (in the order
// the search engine will prove them), and its conclusion pattern. The
// hypothesis slice is copied, so the caller may reuse it.
func NewRule(name string, hypotheses []Term, conclusion Term) Rule {
	owned := make([]Term, len(hypotheses))
	copy(owned, hypotheses)
	return Rule{name: name, hypotheses: owned, conclusion: conclusion}
}

// Taut creates an axiom: a rule with no hypotheses whose conclusion holds
// outright wherever it unifies with a goal.
func Taut(name string, conclusion Term) Rule {
	return NewRule(name, nil, conclusion)
}

// Name returns the rule's name, used to label derivation nodes.
func (r Rule) Name() string {
	return r.name
}

// Hypotheses returns a copy of the rule's hypothesis patterns.
func (r Rule) Hypotheses() []Term {
	hypotheses := make([]Term, len(r.hypotheses))
	copy(hypotheses, r.hypotheses)
	return hypotheses
}

// Conclusion returns the rule's conclusion pattern.
func (r Rule) Conclusion() Term {
	return r.conclusion
}

// IsAxiom reports whether the rule has no hypotheses.
func (r Rule) IsAxiom() bool {
	return len(r.hypotheses) == 0
}

// String renders the rule as "(h1, h2)->conclusion"; an axiom renders as
// "()->conclusion".
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, hypothesis := range r.hypotheses {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(hypothesis.String())
	}
	b.WriteString(")->")
	if r.conclusion != nil {
		b.WriteString(r.conclusion.String())
	}
	return b.String()
}

// collectVariables accumulates the names of all variables occurring in the
// rule's hypotheses and conclusion.
func (r Rule) collectVariables(names map[string]struct{}) {
	for _, hypothesis := range r.hypotheses {
		if hypothesis != nil {
			hypothesis.collectVariables(names)
		}
	}
	if r.conclusion != nil {
		r.conclusion.collectVariables(names)
	}
}

// variables returns the sorted names of all variables occurring in the rule.
func (r Rule) variables() []string {
	set := make(map[string]struct{})
	r.collectVariables(set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
