package formal

import (
	"context"
	"fmt"
	"time"
)

// System is an ordered collection of inference rules together with a maximum
// derivation depth. Rule order is significant: it is the order in which the
// search engine attempts alternatives, and the engine commits to the first
// rule that yields a complete derivation.
//
// A System is immutable after construction and safe for concurrent use.
type System struct {
	rules    []Rule
	maxDepth int
	ruleVars map[string]struct{}
}

// NewSystem assembles a formal system from an ordered list of rules and a
// positive maximum derivation depth. The depth bounds the height of any
// derivation tree Verify will build (an axiom-only proof has height 1), and
// is the sole termination guarantee against rules permitting unbounded
// regress.
//
// The rule slice is copied. Every rule must have a conclusion and non-nil
// hypothesis patterns; a zero-value Rule is rejected here rather than left to
// fail during search.
func NewSystem(rules []Rule, maxDepth int) (*System, error) {
	if maxDepth < 1 {
		return nil, fmt.Errorf("NewSystem: max depth must be >= 1, got %d", maxDepth)
	}
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	ruleVars := make(map[string]struct{})
	for i, rule := range owned {
		if rule.conclusion == nil {
			return nil, fmt.Errorf("NewSystem: rule %d (%q) has no conclusion", i, rule.name)
		}
		for j, hypothesis := range rule.hypotheses {
			if hypothesis == nil {
				return nil, fmt.Errorf("NewSystem: rule %d (%q) has a nil hypothesis at index %d", i, rule.name, j)
			}
		}
		rule.collectVariables(ruleVars)
	}
	return &System{rules: owned, maxDepth: maxDepth, ruleVars: ruleVars}, nil
}

// Rules returns a copy of the system's rules in declaration order.
func (s *System) Rules() []Rule {
	rules := make([]Rule, len(s.rules))
	copy(rules, s.rules)
	return rules
}

// MaxDepth returns the system's maximum derivation depth.
func (s *System) MaxDepth() int {
	return s.maxDepth
}

// NoProofError is returned by Verify when no derivation of the goal exists
// within the system's maximum depth. It deliberately conflates "no rule
// derives this" with "true but needs more depth", since the engine cannot
// tell them apart without unbounded search, but DepthExhausted reports
// whether any explored branch actually hit the depth bound, which helps
// diagnose which of the two is more likely.
type NoProofError struct {
	// Goal is the judgment that could not be proved.
	Goal Term

	// MaxDepth is the depth bound the search ran under.
	MaxDepth int

	// DepthExhausted reports whether the bound cut off at least one branch.
	DepthExhausted bool
}

// Error describes the failed goal and the depth bound.
func (e *NoProofError) Error() string {
	if e.DepthExhausted {
		return fmt.Sprintf("no proof of %s within depth %d (depth bound reached)", e.Goal, e.MaxDepth)
	}
	return fmt.Sprintf("no proof of %s within depth %d", e.Goal, e.MaxDepth)
}

// Verify searches for a derivation of the goal judgment and returns its
// proof tree, or a *NoProofError when no derivation exists within the
// system's depth bound.
//
// The search tries rules in declaration order, instantiates each with fresh
// variable names, unifies the instantiated conclusion against the goal, and
// recursively proves the rule's hypotheses left to right, backtracking to
// the next rule whenever a hypothesis cannot be proved. The first complete
// derivation wins, so the result is deterministic for a given system and
// goal.
//
// The goal is usually ground, but goals containing variables are accepted
// and answered with the first derivable instance; see Derivation.
func (s *System) Verify(goal Term) (*Derivation, error) {
	return s.VerifyContext(context.Background(), goal)
}

// VerifyContext is Verify with cancellation and per-call options. The
// context is consulted between search steps: cancelling it or exceeding its
// deadline aborts the search with the context's error rather than a
// *NoProofError. Options add a step budget, trace logging, statistics
// collection, or speculative parallel evaluation of root rule alternatives;
// with no options it behaves exactly like Verify.
func (s *System) VerifyContext(ctx context.Context, goal Term, opts ...VerifyOption) (*Derivation, error) {
	if goal == nil {
		return nil, fmt.Errorf("Verify: goal cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := newVerifyConfig(opts...)
	if cfg.stats != nil {
		*cfg.stats = Stats{}
		start := time.Now()
		defer func() { cfg.stats.Duration = time.Since(start) }()
	}

	reserved := s.reservedNames(goal)
	if cfg.workers > 1 && len(s.rules) > 1 {
		return s.verifyParallel(ctx, goal, cfg, reserved)
	}

	st := &searchState{
		ctx:       ctx,
		reserved:  reserved,
		stepLimit: cfg.stepLimit,
		logger:    cfg.logger,
		stats:     cfg.stats,
	}
	derivation, ok := s.prove(st, goal, s.maxDepth)
	if !ok {
		if st.abort != nil {
			return nil, st.abort
		}
		return nil, &NoProofError{Goal: goal, MaxDepth: s.maxDepth, DepthExhausted: st.depthExhausted}
	}
	return derivation, nil
}

// Candidate pairs a freshly instantiated rule with the bindings under which
// its conclusion unifies with a goal. Bindings refer to the renamed variable
// names of Rule, so applying Bindings to Rule's conclusion reproduces (an
// instance of) the goal, and applying them to Rule's hypotheses yields the
// subgoals that would have to be proved next.
type Candidate struct {
	Rule     Rule
	Bindings *Substitution
}

// ApplicableRules returns, in declaration order, every rule whose conclusion
// unifies with the goal, each paired with the unifying bindings. It performs
// no recursive search: it answers "which rules could derive this judgment
// directly?", the primitive an interactive assistant needs to propose next
// steps. A nil goal yields nil.
func (s *System) ApplicableRules(goal Term) []Candidate {
	if goal == nil {
		return nil
	}
	st := &searchState{reserved: s.reservedNames(goal)}
	var candidates []Candidate
	for _, rule := range s.rules {
		instance := st.freshRule(rule)
		bindings, err := Unify(instance.conclusion, goal)
		if err != nil {
			continue
		}
		candidates = append(candidates, Candidate{Rule: instance, Bindings: bindings})
	}
	return candidates
}

// reservedNames returns the set of variable names visible in the system's
// rules and the goal. Fresh renaming avoids all of them.
func (s *System) reservedNames(goal Term) map[string]struct{} {
	reserved := make(map[string]struct{}, len(s.ruleVars)+4)
	for name := range s.ruleVars {
		reserved[name] = struct{}{}
	}
	if goal != nil {
		goal.collectVariables(reserved)
	}
	return reserved
}
