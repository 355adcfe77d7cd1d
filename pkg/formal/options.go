package formal

// options.go: functional options accepted by Verify and VerifyContext.

import (
	"log/slog"
	"runtime"
)

// verifyConfig collects the knobs a single verification run honors. The
// zero value means: no step budget, no tracing, no statistics, sequential
// search.
type verifyConfig struct {
	stepLimit int
	logger    *slog.Logger
	stats     *Stats
	workers   int
}

func newVerifyConfig(opts ...VerifyOption) *verifyConfig {
	cfg := &verifyConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// VerifyOption configures one call to Verify or VerifyContext. Options apply
// to that call only; the System itself is never mutated.
type VerifyOption func(*verifyConfig)

// WithStepLimit bounds the number of search steps (goal expansions) the
// verification may take. When the budget is exhausted the search stops and
// VerifyContext reports an error wrapping ErrStepLimit. A limit of zero or
// less means unlimited.
func WithStepLimit(limit int) VerifyOption {
	return func(cfg *verifyConfig) {
		if limit > 0 {
			cfg.stepLimit = limit
		}
	}
}

// WithTraceLogger streams search events (rules tried, unification failures,
// depth exhaustion) to logger at Debug level. A nil logger disables tracing.
// Tracing is for diagnosing why a goal fails to verify or verifies slowly;
// it does not change the result.
func WithTraceLogger(logger *slog.Logger) VerifyOption {
	return func(cfg *verifyConfig) {
		cfg.logger = logger
	}
}

// WithStats records search counters into stats as the verification runs.
// Any previous contents of stats are overwritten. The caller must not read
// stats until VerifyContext returns.
func WithStats(stats *Stats) VerifyOption {
	return func(cfg *verifyConfig) {
		cfg.stats = stats
	}
}

// WithParallelRules evaluates the root goal's candidate rules speculatively
// on up to workers goroutines. The derivation found is the same one
// sequential search finds: the first rule in declaration order that yields a
// proof wins, regardless of which branch finishes first. Workers of zero or
// less selects runtime.NumCPU. With fewer than two rules the option is a
// no-op.
func WithParallelRules(workers int) VerifyOption {
	return func(cfg *verifyConfig) {
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		cfg.workers = workers
	}
}
