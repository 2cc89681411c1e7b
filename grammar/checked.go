package grammar

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
)

// CheckedGrammar is a validated grammar, indexed for generation: every
// referenced non-terminal resolves, no invoke limit has min > max. It is
// immutable after construction and may be shared read-only across any
// number of concurrent generation runs, each run bringing its own State.
type CheckedGrammar struct {
	prods map[NonTerminal]*WeightedProduction
	names map[string][]NonTerminal // definition order per name, for untyped fan-out
	avoid []string                 // the grammar's literal terminals, sorted
}

// newCheckedGrammar indexes a validated raw grammar. The literal-terminal
// avoid set for regex synthesis is computed once, here.
func newCheckedGrammar(raw *RawGrammar) *CheckedGrammar {
	cg := &CheckedGrammar{
		prods: make(map[NonTerminal]*WeightedProduction),
		names: make(map[string][]NonTerminal),
	}
	lits := treeset.NewWithStringComparator()
	for _, r := range raw.Rules {
		prod := r.Production
		cg.prods[r.LHS] = &prod
		cg.names[r.LHS.Name] = append(cg.names[r.LHS.Name], r.LHS)
		for _, lit := range prod.literalTerminals() {
			lits.Add(lit)
		}
	}
	for _, v := range lits.Values() {
		cg.avoid = append(cg.avoid, v.(string))
	}
	return cg
}

// Production returns the production for an exact rule identity.
func (cg *CheckedGrammar) Production(nt NonTerminal) (*WeightedProduction, bool) {
	p, ok := cg.prods[nt]
	return p, ok
}

// LiteralTerminals returns the grammar's literal (non-regex) terminal set,
// sorted. Regex synthesis avoids exactly these strings.
func (cg *CheckedGrammar) LiteralTerminals() []string {
	return cg.avoid
}

// Reduction is the outcome of resolving one symbol: either a terminal
// literal, or the symbol sequence of the alternative chosen for a
// non-terminal.
type Reduction struct {
	Terminal bool
	Literal  string   // set when Terminal
	Name     string   // the expanded non-terminal's name
	Syms     []Symbol // the chosen alternative's symbols
}

// Reduce resolves one symbol against the grammar:
//
//   - a literal terminal reduces to itself;
//   - a regex terminal reduces to a fresh random member of its pattern's
//     language, never colliding with the grammar's literal terminals;
//   - a non-terminal reference selects one eligible alternative by weight
//     (see chooseWeighted) and reduces to that alternative's symbols. Typed
//     references resolve to the exact identity; untyped references compete
//     over the union of alternatives of every same-named rule.
//
// The chosen alternative's invocation counter in st is incremented. When no
// alternative is eligible, Reduce fails with an ExhaustedError, since validation
// cannot guarantee permanent eligibility, since invoke limits deplete as a
// run progresses.
func (cg *CheckedGrammar) Reduce(sym Symbol, st *State) (Reduction, error) {
	switch sym.Kind {
	case TerminalSym:
		return Reduction{Terminal: true, Literal: sym.Lit}, nil
	case RegexSym:
		s, err := sym.Re.Generate(st.Rng(), cg.avoid)
		if err != nil {
			return Reduction{}, err
		}
		return Reduction{Terminal: true, Literal: s}, nil
	case NonTermSym:
		alt := chooseWeighted(cg.candidates(sym.NT), st)
		if alt == nil {
			tracer().Debugf("production of %s exhausted", sym.NT)
			return Reduction{}, &ExhaustedError{NT: sym.NT}
		}
		if alt.Limit.Bounded {
			st.Track(alt.ID())
		}
		return Reduction{Name: sym.NT.Name, Syms: alt.Symbols}, nil
	}
	return Reduction{}, fmt.Errorf("grammar: cannot reduce invalid symbol kind %d", sym.Kind)
}

// candidates returns the alternatives a reference competes over: the exact
// identity's alternatives for typed references, the union over all
// same-named rules for untyped ones.
func (cg *CheckedGrammar) candidates(nt NonTerminal) []*Alternative {
	if nt.IsTyped() {
		if p, ok := cg.prods[nt]; ok {
			return p.Alts
		}
		return nil
	}
	var alts []*Alternative
	for _, identity := range cg.names[nt.Name] {
		alts = append(alts, cg.prods[identity].Alts...)
	}
	return alts
}
