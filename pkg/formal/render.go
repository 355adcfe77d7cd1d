package formal

// render.go: ASCII rendering of derivations in natural-deduction style.

import "strings"

// StringTree renders the derivation the way inference rules are drawn on
// paper: premises above a horizontal bar, the established judgment below
// it, and the rule name fused to the bar's left end. Sibling premises sit
// side by side and every subtree is centered over its place in the parent
// row. The result begins with a newline and every line ends with one, so
// the tree drops into log output unchanged.
func (d *Derivation) StringTree() string {
	if d == nil {
		return "\n"
	}
	lines := d.renderLines()
	var b strings.Builder
	b.WriteString("\n")
	for i := len(lines) - 1; i >= 0; i-- {
		b.WriteString(lines[i])
		b.WriteString("\n")
	}
	return b.String()
}

// renderLines renders the node as a rectangular block of equal-width lines,
// ordered bottom-up: conclusion line first, bar line second, then the
// merged premise rows. Keeping each block rectangular is what lets a parent
// pad and center child blocks without re-measuring them line by line.
func (d *Derivation) renderLines() []string {
	conclusion := d.Judgment.String()
	label := d.Rule
	paddedWidth := len(conclusion) + len(label)

	premiseBlocks := make([][]string, 0, len(d.Premises))
	premisesWidth := 0
	maxPremiseHeight := 0
	for i, premise := range d.Premises {
		block := premise.renderLines()
		// Two spaces of gutter after every premise but the last.
		if i != len(d.Premises)-1 {
			for j, line := range block {
				block[j] = line + "  "
			}
		}
		if len(block) > maxPremiseHeight {
			maxPremiseHeight = len(block)
		}
		premisesWidth += len(block[0])
		premiseBlocks = append(premiseBlocks, block)
	}

	maxWidth := premisesWidth
	if paddedWidth > maxWidth {
		maxWidth = paddedWidth
	}
	barWidth := maxWidth
	if w := len(conclusion) + 2; w > barWidth {
		barWidth = w
	}
	if w := barWidth + len(label); w > maxWidth {
		maxWidth = w
	}

	lines := make([]string, 0, 2+maxPremiseHeight)
	lines = append(lines, strings.Repeat(" ", len(label))+center(conclusion, maxWidth-len(label)))
	lines = append(lines, label+center(strings.Repeat("-", barWidth), maxWidth-len(label)))
	for i := 0; i < maxPremiseHeight; i++ {
		var row strings.Builder
		for _, block := range premiseBlocks {
			if i < len(block) {
				row.WriteString(block[i])
			} else {
				row.WriteString(strings.Repeat(" ", len(block[0])))
			}
		}
		lines = append(lines, center(row.String(), maxWidth))
	}
	return lines
}

// center pads s with spaces to width, splitting the padding evenly and
// giving the right side the odd space. A string already at or beyond width
// is returned unchanged.
func center(s string, width int) string {
	padding := width - len(s)
	if padding <= 0 {
		return s
	}
	left := padding / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", padding-left)
}
