package grammar

// WeightedProduction is one rule's right-hand side: an ordered sequence of
// alternatives competing by weight.
type WeightedProduction struct {
	Alts []*Alternative
}

// literalTerminals returns the literal terminals of every alternative.
func (p *WeightedProduction) literalTerminals() []string {
	var lits []string
	for _, a := range p.Alts {
		lits = append(lits, a.literalTerminals()...)
	}
	return lits
}

// producesTerminals reports whether some alternative consists of terminals
// only, i.e. the production can end recursion in one step.
func (p *WeightedProduction) producesTerminals() bool {
	for _, a := range p.Alts {
		if a.allTerminal() {
			return true
		}
	}
	return false
}

// chooseWeighted picks one alternative from candidates, honoring invoke
// limits and weights. Selection policy:
//
//  1. If any candidate is below its limit's minimum, the eligible set is
//     exactly those candidates; unmet minimums are satisfied first.
//  2. Otherwise the eligible set is every candidate whose count has not
//     reached its maximum (unlimited alternatives always qualify).
//  3. One eligible alternative is drawn with probability proportional to
//     its weight.
//
// Returns nil when no candidate is eligible.
func chooseWeighted(candidates []*Alternative, st *State) *Alternative {
	var eligible []*Alternative
	for _, a := range candidates {
		if a.belowMin(st) {
			eligible = append(eligible, a)
		}
	}
	if eligible == nil {
		for _, a := range candidates {
			if a.selectable(st) {
				eligible = append(eligible, a)
			}
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	total := 0
	for _, a := range eligible {
		total += a.Weight
	}
	n := st.Rng().Intn(total)
	for _, a := range eligible {
		n -= a.Weight
		if n < 0 {
			return a
		}
	}
	return eligible[len(eligible)-1] // unreachable
}
