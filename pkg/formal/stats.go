package formal

// stats.go: counters describing the work one verification performed.

import "time"

// Stats reports how much work a verification did. Populate it by passing a
// Stats pointer to Verify via WithStats; the fields are reset at the start
// of the run and safe to read once Verify returns.
//
// Under WithParallelRules the counters aggregate every speculative branch
// that actually ran, so totals can exceed those of the equivalent sequential
// search.
type Stats struct {
	// Steps counts goal expansions, the unit bounded by WithStepLimit.
	Steps int
	// NodesExplored counts goals expanded within the depth bound.
	NodesExplored int
	// RulesTried counts rule instantiations attempted against some goal.
	RulesTried int
	// Unifications counts unification attempts, successful or not.
	Unifications int
	// UnificationFailures counts unification attempts that failed.
	UnificationFailures int
	// Backtracks counts abandoned rule applications: a conclusion matched
	// but some hypothesis could not be proved.
	Backtracks int
	// MaxDepthReached is the deepest nesting level the search visited,
	// with the root goal at level zero.
	MaxDepthReached int
	// DepthExhaustions counts goals abandoned because the depth bound was
	// reached before they could be expanded.
	DepthExhaustions int
	// Duration is the wall-clock time of the whole verification.
	Duration time.Duration
}

// merge folds the counters of one speculative branch into s. Duration is
// deliberately untouched: it is measured once for the whole run.
func (s *Stats) merge(other *Stats) {
	if other == nil {
		return
	}
	s.Steps += other.Steps
	s.NodesExplored += other.NodesExplored
	s.RulesTried += other.RulesTried
	s.Unifications += other.Unifications
	s.UnificationFailures += other.UnificationFailures
	s.Backtracks += other.Backtracks
	if other.MaxDepthReached > s.MaxDepthReached {
		s.MaxDepthReached = other.MaxDepthReached
	}
	s.DepthExhaustions += other.DepthExhaustions
}
