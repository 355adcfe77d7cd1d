package formal

import (
	"reflect"
	"testing"
)

// TestNewRule verifies rule construction and its accessors.
func TestNewRule(t *testing.T) {
	t.Run("carries name, hypotheses, and conclusion", func(t *testing.T) {
		rule := NewRule("s2",
			[]Term{Op("sum", Var("n"), Var("m"), Var("p"))},
			Op("sum", Op("succ", Var("n")), Var("m"), Op("succ", Var("p"))))

		if rule.Name() != "s2" {
			t.Errorf("Name() = %q, want %q", rule.Name(), "s2")
		}
		if len(rule.Hypotheses()) != 1 {
			t.Fatalf("len(Hypotheses()) = %d, want 1", len(rule.Hypotheses()))
		}
		if got := rule.Hypotheses()[0].String(); got != "sum(n, m, p)" {
			t.Errorf("hypothesis = %q, want %q", got, "sum(n, m, p)")
		}
		if got := rule.Conclusion().String(); got != "sum(succ(n), m, succ(p))" {
			t.Errorf("Conclusion() = %q, want %q", got, "sum(succ(n), m, succ(p))")
		}
		if rule.IsAxiom() {
			t.Error("a rule with hypotheses should not be an axiom")
		}
	})

	t.Run("copies the hypothesis slice", func(t *testing.T) {
		hypotheses := []Term{Op("p", Var("x"))}
		rule := NewRule("r", hypotheses, Op("q", Var("x")))

		hypotheses[0] = Op("mutated")
		if got := rule.Hypotheses()[0].String(); got != "p(x)" {
			t.Errorf("hypothesis after caller mutation = %q, want %q", got, "p(x)")
		}

		returned := rule.Hypotheses()
		returned[0] = Op("mutated")
		if got := rule.Hypotheses()[0].String(); got != "p(x)" {
			t.Errorf("hypothesis after result mutation = %q, want %q", got, "p(x)")
		}
	})
}

// TestTaut verifies that Taut builds an axiom.
func TestTaut(t *testing.T) {
	axiom := Taut("zero", Op("nat", Con("zero")))

	if !axiom.IsAxiom() {
		t.Error("Taut should produce an axiom")
	}
	if len(axiom.Hypotheses()) != 0 {
		t.Errorf("len(Hypotheses()) = %d, want 0", len(axiom.Hypotheses()))
	}
	if got := axiom.Conclusion().String(); got != "nat(zero)" {
		t.Errorf("Conclusion() = %q, want %q", got, "nat(zero)")
	}
}

// TestRuleString verifies the "(hypotheses)->conclusion" rendering.
func TestRuleString(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want string
	}{
		{
			name: "axiom",
			rule: Taut("zero", Op("nat", Con("zero"))),
			want: "()->nat(zero)",
		},
		{
			name: "single hypothesis",
			rule: NewRule("succ",
				[]Term{Op("nat", Var("n"))},
				Op("nat", Op("succ", Var("n")))),
			want: "(nat(n))->nat(succ(n))",
		},
		{
			name: "two hypotheses",
			rule: NewRule("both",
				[]Term{Op("p", Var("x")), Op("q", Var("y"))},
				Op("r", Var("x"), Var("y"))),
			want: "(p(x), q(y))->r(x, y)",
		},
		{
			name: "zero value",
			rule: Rule{},
			want: "()->",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestRuleVariables verifies the sorted variable inventory used for fresh
// renaming.
func TestRuleVariables(t *testing.T) {
	rule := NewRule("s2",
		[]Term{Op("sum", Var("n"), Var("m"), Var("p"))},
		Op("sum", Op("succ", Var("n")), Var("m"), Op("succ", Var("p"))))

	got := rule.variables()
	want := []string{"m", "n", "p"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("variables() = %v, want %v", got, want)
	}

	ground := Taut("zero", Op("nat", Con("zero")))
	if vars := ground.variables(); len(vars) != 0 {
		t.Errorf("variables() on a ground rule = %v, want none", vars)
	}
}
