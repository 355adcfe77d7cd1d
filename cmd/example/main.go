// Package main demonstrates basic derivation-engine usage patterns.
//
// This example shows how to declare inference rules, verify judgments
// against them, and inspect the resulting proof trees.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/gitrdm/goformal/pkg/formal"
)

func main() {
	fmt.Println("=== GoFormal Examples ===")
	fmt.Println()

	basicUnification()
	firstProof()
	peanoNaturals()
	chainedHypotheses()
	inferringValues()
	inspectingSearch()
	jsonEncoding()
	parallelVerification()
}

// mustSystem builds a system from hardcoded rules, panicking on the
// malformed-rule errors that cannot happen here.
func mustSystem(rules []formal.Rule, maxDepth int) *formal.System {
	system, err := formal.NewSystem(rules, maxDepth)
	if err != nil {
		panic(err)
	}
	return system
}

// natSystem declares natural numbers, binary trees, and the sum, max and
// height relations over them. Rule order matters: the engine commits to the
// first rule that yields a proof.
func natSystem() *formal.System {
	succ := func(n formal.Term) formal.Term { return formal.Op("succ", n) }
	return mustSystem([]formal.Rule{
		formal.NewRule("succ",
			[]formal.Term{formal.Op("nat", formal.Var("n"))},
			formal.Op("nat", succ(formal.Var("n")))),
		formal.Taut("zero", formal.Op("nat", formal.Con("zero"))),
		formal.NewRule("tree",
			[]formal.Term{formal.Op("tree", formal.Var("a1")), formal.Op("tree", formal.Var("a2"))},
			formal.Op("tree", formal.Op("node", formal.Var("a1"), formal.Var("a2")))),
		formal.Taut("empty", formal.Op("tree", formal.Con("empty"))),
		formal.Taut("s1", formal.Op("sum", formal.Var("n"), formal.Con("zero"), formal.Var("n"))),
		formal.NewRule("s2",
			[]formal.Term{formal.Op("sum", formal.Var("n"), formal.Var("m"), formal.Var("p"))},
			formal.Op("sum", formal.Var("n"), succ(formal.Var("m")), succ(formal.Var("p")))),
		formal.Taut("max1", formal.Op("max", formal.Var("n"), formal.Con("zero"), formal.Var("n"))),
		formal.Taut("max2", formal.Op("max", formal.Con("zero"), formal.Var("n"), formal.Var("n"))),
		formal.NewRule("max3",
			[]formal.Term{formal.Op("max", formal.Var("n"), formal.Var("m"), formal.Var("p"))},
			formal.Op("max", succ(formal.Var("n")), succ(formal.Var("m")), succ(formal.Var("p")))),
		formal.Taut("h1", formal.Op("hgt", formal.Con("empty"), formal.Con("zero"))),
		formal.NewRule("h2",
			[]formal.Term{
				formal.Op("hgt", formal.Var("t1"), formal.Var("n1")),
				formal.Op("hgt", formal.Var("t2"), formal.Var("n2")),
				formal.Op("max", formal.Var("n1"), formal.Var("n2"), formal.Var("n")),
			},
			formal.Op("hgt", formal.Op("node", formal.Var("t1"), formal.Var("t2")), succ(formal.Var("n")))),
	}, 8)
}

// basicUnification demonstrates terms, unification, and substitutions.
func basicUnification() {
	fmt.Println("1. Terms and Unification:")

	pattern := formal.Op("pair", formal.Var("x"), formal.Op("succ", formal.Var("x")))
	value := formal.Op("pair", formal.Con("zero"), formal.Var("y"))
	fmt.Printf("   pattern = %s\n", pattern)
	fmt.Printf("   value   = %s\n", value)

	bindings, err := formal.Unify(pattern, value)
	if err != nil {
		fmt.Printf("   no unifier: %v\n", err)
		return
	}
	fmt.Printf("   unifier = %s\n", bindings)
	fmt.Printf("   applied = %s\n", bindings.Apply(pattern))

	// Incompatible constants have no unifier.
	_, err = formal.Unify(formal.Con("zero"), formal.Con("one"))
	fmt.Printf("   zero vs one => %v\n", err)
	fmt.Println()
}

// firstProof verifies a goal against a single-axiom system.
func firstProof() {
	fmt.Println("2. A First Proof:")

	system := mustSystem([]formal.Rule{
		formal.Taut("sun", formal.Op("shines", formal.Con("sun"))),
	}, 2)

	proof, err := system.Verify(formal.Op("shines", formal.Con("sun")))
	if err != nil {
		fmt.Printf("   unexpected: %v\n", err)
		return
	}
	fmt.Printf("   proved %s with rule %q%s\n", proof.Judgment, proof.Rule, proof.StringTree())

	// An underivable goal yields *NoProofError.
	_, err = system.Verify(formal.Op("shines", formal.Con("moon")))
	fmt.Printf("   shines(moon) => %v\n", err)
	fmt.Println()
}

// peanoNaturals proves a successor chain, showing how depth bounds the
// derivation height.
func peanoNaturals() {
	fmt.Println("3. Peano Naturals:")

	system := natSystem()
	two := formal.Op("nat", formal.Op("succ", formal.Op("succ", formal.Con("zero"))))

	proof, err := system.Verify(two)
	if err != nil {
		fmt.Printf("   unexpected: %v\n", err)
		return
	}
	fmt.Printf("   %s has a %d-node proof of height %d:%s\n",
		proof.Judgment, proof.Size(), proof.Height(), proof.StringTree())
	fmt.Println()
}

// chainedHypotheses proves an addition judgment. Bindings discovered while
// proving one hypothesis flow into the next.
func chainedHypotheses() {
	fmt.Println("4. Chained Hypotheses (Addition):")

	system := natSystem()
	succ := func(n formal.Term) formal.Term { return formal.Op("succ", n) }
	zero := formal.Con("zero")

	// 1 + 2 = 3
	goal := formal.Op("sum", succ(zero), succ(succ(zero)), succ(succ(succ(zero))))
	proof, err := system.Verify(goal)
	if err != nil {
		fmt.Printf("   unexpected: %v\n", err)
		return
	}
	fmt.Printf("   1 + 2 = 3:%s\n", proof.StringTree())

	// 1 + 2 = 1 has no proof.
	_, err = system.Verify(formal.Op("sum", succ(zero), succ(succ(zero)), succ(zero)))
	fmt.Printf("   1 + 2 = 1 => %v\n", err)
	fmt.Println()
}

// inferringValues verifies a goal containing a variable; the engine answers
// with the first derivable instance.
func inferringValues() {
	fmt.Println("5. Inferring Values:")

	system := natSystem()
	tree := formal.Op("node", formal.Con("empty"),
		formal.Op("node", formal.Con("empty"), formal.Con("empty")))
	goal := formal.Op("hgt", tree, formal.Var("x"))

	proof, err := system.Verify(goal)
	if err != nil {
		fmt.Printf("   unexpected: %v\n", err)
		return
	}
	fmt.Printf("   goal     = %s\n", goal)
	fmt.Printf("   answered = %s%s\n", proof.Judgment, proof.StringTree())
	fmt.Println()
}

// inspectingSearch shows the diagnostic surface: applicable rules for a
// goal, search statistics, and debug-level tracing.
func inspectingSearch() {
	fmt.Println("6. Inspecting the Search:")

	system := natSystem()
	goal := formal.Op("max",
		formal.Op("succ", formal.Con("zero")),
		formal.Op("succ", formal.Op("succ", formal.Con("zero"))),
		formal.Op("succ", formal.Op("succ", formal.Con("zero"))))

	for _, candidate := range system.ApplicableRules(goal) {
		fmt.Printf("   rule %-4s unifies under %s\n", candidate.Rule.Name(), candidate.Bindings)
	}

	var stats formal.Stats
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if _, err := system.VerifyContext(context.Background(), goal,
		formal.WithStats(&stats),
		formal.WithTraceLogger(logger)); err != nil {
		fmt.Printf("   unexpected: %v\n", err)
		return
	}
	fmt.Printf("   steps=%d rules=%d unifications=%d failures=%d backtracks=%d in %s\n",
		stats.Steps, stats.RulesTried, stats.Unifications, stats.UnificationFailures,
		stats.Backtracks, stats.Duration.Round(time.Microsecond))
	fmt.Println()
}

// jsonEncoding serializes a derivation for downstream tooling.
func jsonEncoding() {
	fmt.Println("7. JSON Encoding:")

	system := natSystem()
	proof, err := system.Verify(formal.Op("nat", formal.Op("succ", formal.Con("zero"))))
	if err != nil {
		fmt.Printf("   unexpected: %v\n", err)
		return
	}

	encoded, err := json.MarshalIndent(proof, "   ", "  ")
	if err != nil {
		fmt.Printf("   unexpected: %v\n", err)
		return
	}
	fmt.Printf("   %s\n", encoded)
	fmt.Println()
}

// parallelVerification races the root goal's rule alternatives on several
// goroutines while keeping the sequential result.
func parallelVerification() {
	fmt.Println("8. Parallel Verification:")

	system := natSystem()
	succ := func(n formal.Term) formal.Term { return formal.Op("succ", n) }
	zero := formal.Con("zero")
	goal := formal.Op("max", succ(zero), succ(succ(zero)), succ(succ(zero)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sequential, err := system.VerifyContext(ctx, goal)
	if err != nil {
		fmt.Printf("   unexpected: %v\n", err)
		return
	}
	parallel, err := system.VerifyContext(ctx, goal, formal.WithParallelRules(4))
	if err != nil {
		fmt.Printf("   unexpected: %v\n", err)
		return
	}
	fmt.Printf("   sequential rule: %s\n", sequential.Rule)
	fmt.Printf("   parallel rule:   %s (same judgment: %v)\n",
		parallel.Rule, parallel.Judgment.Equal(sequential.Judgment))
	fmt.Println()
}
