package formal

// search.go: the depth-bounded backtracking proof search.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gitrdm/goformal/internal/parallel"
)

// ErrStepLimit is returned (wrapped) by VerifyContext when a step budget set
// with WithStepLimit is exhausted before the search concludes. It is distinct
// from *NoProofError: the search was cut short, not completed.
var ErrStepLimit = errors.New("step limit exceeded")

// searchState carries the bookkeeping of one search: the fresh-name counter,
// the reserved-name set it must avoid, the optional step budget, tracing and
// statistics sinks, and the sticky abort error raised by cancellation or
// budget exhaustion. Each call to VerifyContext gets its own state (one per
// speculative branch in parallel mode), so searches never share mutable
// state.
type searchState struct {
	ctx       context.Context
	reserved  map[string]struct{}
	stepLimit int
	logger    *slog.Logger
	stats     *Stats

	counter        int
	steps          int
	depthExhausted bool
	abort          error
}

// freshName generates a variable name derived from base that collides with
// nothing in the reserved set and with no name previously generated by this
// state. The counter is search-local, so identical searches produce
// identical names and therefore identical derivations.
func (st *searchState) freshName(base string) string {
	for {
		st.counter++
		name := fmt.Sprintf("%s#%d", base, st.counter)
		if _, taken := st.reserved[name]; !taken {
			return name
		}
	}
}

// freshRule instantiates a rule for one search step by consistently renaming
// every variable it mentions: the same source name maps to the same fresh
// name across all hypotheses and the conclusion, and fresh names are disjoint
// from the goal, the declared rules, and every other instantiation in this
// search. A rule without variables is returned as-is.
func (st *searchState) freshRule(r Rule) Rule {
	names := r.variables()
	if len(names) == 0 {
		return r
	}
	mapping := make(map[string]string, len(names))
	for _, name := range names {
		mapping[name] = st.freshName(name)
	}
	hypotheses := make([]Term, len(r.hypotheses))
	for i, hypothesis := range r.hypotheses {
		hypotheses[i] = renameVariables(hypothesis, mapping)
	}
	return Rule{name: r.name, hypotheses: hypotheses, conclusion: renameVariables(r.conclusion, mapping)}
}

// prove searches for a derivation of goal with at most depth levels of
// nesting remaining. It returns the derivation and true on success; on
// failure it returns false, with st.abort set when the failure was a
// cancellation or budget abort rather than an exhausted search.
func (s *System) prove(st *searchState, goal Term, depth int) (*Derivation, bool) {
	if st.abort != nil {
		return nil, false
	}
	if err := st.ctx.Err(); err != nil {
		st.abort = err
		return nil, false
	}
	st.steps++
	if st.stats != nil {
		st.stats.Steps++
	}
	if st.stepLimit > 0 && st.steps > st.stepLimit {
		st.abort = fmt.Errorf("prove %s: %w (limit %d)", goal, ErrStepLimit, st.stepLimit)
		return nil, false
	}
	if depth <= 0 {
		st.depthExhausted = true
		if st.stats != nil {
			st.stats.DepthExhaustions++
		}
		if st.logger != nil {
			st.logger.Debug("depth exhausted", "goal", goal.String())
		}
		return nil, false
	}
	if st.stats != nil {
		st.stats.NodesExplored++
		if height := s.maxDepth - depth; height > st.stats.MaxDepthReached {
			st.stats.MaxDepthReached = height
		}
	}

	for _, rule := range s.rules {
		if derivation, ok := s.applyRule(st, rule, goal, depth); ok {
			return derivation, true
		}
		if st.abort != nil {
			return nil, false
		}
	}

	if st.logger != nil {
		st.logger.Debug("no rule applies", "goal", goal.String(), "depth", depth)
	}
	return nil, false
}

// applyRule attempts to derive goal with one rule: it freshly renames the
// rule, unifies the renamed conclusion against the goal, then proves each
// hypothesis in order, threading the accumulated bindings into every
// following hypothesis. A failed hypothesis abandons the whole attempt:
// partial progress is discarded, not memoized, and no alternative proof of
// an already-proved hypothesis is ever revisited.
//
// After a hypothesis is proved, its returned judgment is unified against the
// subgoal it was asked to prove. This recovers bindings that were discovered
// deep inside the hypothesis's own proof, which is required because later
// hypotheses may share variables that only that proof determined.
func (s *System) applyRule(st *searchState, rule Rule, goal Term, depth int) (*Derivation, bool) {
	instance := st.freshRule(rule)
	if st.stats != nil {
		st.stats.RulesTried++
		st.stats.Unifications++
	}
	if st.logger != nil {
		st.logger.Debug("trying rule", "rule", rule.name, "goal", goal.String(), "depth", depth)
	}

	bindings, err := Unify(instance.conclusion, goal)
	if err != nil {
		if st.stats != nil {
			st.stats.UnificationFailures++
		}
		if st.logger != nil {
			st.logger.Debug("conclusion mismatch", "rule", rule.name, "reason", err)
		}
		return nil, false
	}

	premises := make([]*Derivation, 0, len(instance.hypotheses))
	for i, hypothesis := range instance.hypotheses {
		subgoal := bindings.Apply(hypothesis)
		premise, ok := s.prove(st, subgoal, depth-1)
		if !ok {
			if st.stats != nil {
				st.stats.Backtracks++
			}
			if st.logger != nil {
				st.logger.Debug("hypothesis failed", "rule", rule.name, "hypothesis", i, "subgoal", subgoal.String())
			}
			return nil, false
		}
		if st.stats != nil {
			st.stats.Unifications++
		}
		discovered, err := Unify(subgoal, premise.Judgment)
		if err != nil {
			// A premise proof always derives an instance of its subgoal, so
			// this unification cannot fail for proofs built by this engine.
			if st.stats != nil {
				st.stats.UnificationFailures++
				st.stats.Backtracks++
			}
			return nil, false
		}
		bindings = bindings.Compose(discovered)
		premises = append(premises, premise)
	}

	judgment := bindings.Apply(instance.conclusion)
	for i, premise := range premises {
		premises[i] = premise.resolve(bindings)
	}
	if st.logger != nil {
		st.logger.Debug("rule applied", "rule", rule.name, "judgment", judgment.String())
	}
	return &Derivation{Rule: rule.name, Judgment: judgment, Premises: premises}, true
}

// verifyParallel evaluates the root goal's rule alternatives speculatively
// on bounded goroutines and commits to the lowest-declaration-index rule
// that yields a derivation, which is exactly the rule sequential search
// would have committed to. Losing branches are cancelled through their
// contexts. Each branch runs an independent searchState (and, when a step
// limit is set, its own budget); statistics aggregate the work of every
// branch actually run.
func (s *System) verifyParallel(ctx context.Context, goal Term, cfg *verifyConfig, reserved map[string]struct{}) (*Derivation, error) {
	if cfg.stats != nil {
		cfg.stats.Steps++
		cfg.stats.NodesExplored++
	}

	states := make([]*searchState, len(s.rules))
	derivation, _, ok := parallel.FirstSuccess(ctx, len(s.rules), cfg.workers,
		func(branchCtx context.Context, i int) (*Derivation, bool) {
			st := &searchState{
				ctx:       branchCtx,
				reserved:  reserved,
				stepLimit: cfg.stepLimit,
				logger:    cfg.logger,
			}
			if cfg.stats != nil {
				st.stats = &Stats{}
			}
			states[i] = st
			d, ok := s.applyRule(st, s.rules[i], goal, s.maxDepth)
			return d, ok && st.abort == nil
		})

	exhausted := false
	var abort error
	for _, st := range states {
		if st == nil {
			continue
		}
		if cfg.stats != nil {
			cfg.stats.merge(st.stats)
		}
		exhausted = exhausted || st.depthExhausted
		if abort == nil && st.abort != nil && !errors.Is(st.abort, context.Canceled) {
			abort = st.abort
		}
	}

	if ok {
		return derivation, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if abort != nil {
		return nil, abort
	}
	return nil, &NoProofError{Goal: goal, MaxDepth: s.maxDepth, DepthExhausted: exhausted}
}
