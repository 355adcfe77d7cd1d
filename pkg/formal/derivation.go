package formal

// derivation.go: the proof trees produced by Verify.

import (
	"github.com/goccy/go-json"
)

// Derivation is a proof tree: one node per rule application, with the
// instantiated judgment the application established and one premise subtree
// per hypothesis, in hypothesis order. An axiom application is a leaf.
//
// Every judgment in the tree has had the search's accumulated bindings
// applied, so a derivation of a ground goal is ground throughout, and a
// derivation of a goal containing variables shows the instance that was
// actually proved.
type Derivation struct {
	// Rule is the name of the applied rule as declared in the system.
	Rule string

	// Judgment is the conclusion this node established.
	Judgment Term

	// Premises are the subproofs of the rule's hypotheses, left to right.
	// An axiom has none.
	Premises []*Derivation
}

// Size returns the number of rule applications in the tree.
func (d *Derivation) Size() int {
	if d == nil {
		return 0
	}
	size := 1
	for _, premise := range d.Premises {
		size += premise.Size()
	}
	return size
}

// Height returns the number of levels in the tree. A lone axiom has height
// 1, so a derivation's height never exceeds the system's maximum depth.
func (d *Derivation) Height() int {
	if d == nil {
		return 0
	}
	height := 0
	for _, premise := range d.Premises {
		if h := premise.Height(); h > height {
			height = h
		}
	}
	return height + 1
}

// resolve returns a copy of the tree with bindings applied to every
// judgment. Subtrees left unchanged by the bindings are shared, not copied.
func (d *Derivation) resolve(bindings *Substitution) *Derivation {
	if d == nil || bindings == nil || bindings.Len() == 0 {
		return d
	}
	judgment := bindings.Apply(d.Judgment)
	changed := !judgment.Equal(d.Judgment)
	premises := make([]*Derivation, len(d.Premises))
	for i, premise := range d.Premises {
		premises[i] = premise.resolve(bindings)
		if premises[i] != premise {
			changed = true
		}
	}
	if !changed {
		return d
	}
	return &Derivation{Rule: d.Rule, Judgment: judgment, Premises: premises}
}

type derivationJSON struct {
	Rule     string            `json:"rule"`
	Judgment string            `json:"judgment"`
	Premises []*derivationJSON `json:"premises"`
}

func (d *Derivation) toJSON() *derivationJSON {
	out := &derivationJSON{
		Rule:     d.Rule,
		Judgment: d.Judgment.String(),
		Premises: make([]*derivationJSON, 0, len(d.Premises)),
	}
	for _, premise := range d.Premises {
		out.Premises = append(out.Premises, premise.toJSON())
	}
	return out
}

// MarshalJSON encodes the tree as nested objects with "rule", "judgment"
// and "premises" keys. Judgments are encoded in their textual form, and an
// axiom's premises encode as an empty array rather than null, so the output
// round-trips through tools that distinguish the two.
func (d *Derivation) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.toJSON())
}
