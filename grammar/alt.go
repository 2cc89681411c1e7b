package grammar

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/bnfgen"
)

// Limit bounds how often one alternative may be selected within a single
// generation run. The zero value is unlimited.
type Limit struct {
	Min, Max int
	Bounded  bool
}

// Unlimited returns a limit that never restricts selection.
func Unlimited() Limit {
	return Limit{}
}

// Limited returns an inclusive selection bound. Validation requires
// min ≤ max.
func Limited(min, max int) Limit {
	return Limit{Min: min, Max: max, Bounded: true}
}

func (l Limit) String() string {
	if !l.Bounded {
		return "{}"
	}
	if l.Min == l.Max {
		return fmt.Sprintf("{%d}", l.Min)
	}
	return fmt.Sprintf("{%d, %d}", l.Min, l.Max)
}

// AltID identifies an alternative for invocation counting. Two alternatives
// with the same symbol sequence share one identity, and therefore one
// counter per run.
type AltID [20]byte

// Alternative is one branch of a rule's right-hand side: an ordered symbol
// sequence with a selection weight and an optional invoke limit.
type Alternative struct {
	Weight  int
	Limit   Limit
	Symbols []Symbol
	Span    bnfgen.Span

	id     AltID
	frozen bool
}

// NewAlternative assembles an alternative. A weight below 1 falls back to
// the default weight 1; the validator reports such weights separately.
func NewAlternative(weight int, limit Limit, symbols []Symbol, span bnfgen.Span) *Alternative {
	if weight < 1 {
		weight = 1
	}
	return &Alternative{Weight: weight, Limit: limit, Symbols: symbols, Span: span}
}

// altSignature is the hash input for an alternative's identity.
type altSignature struct {
	Symbols []string
}

// ID returns the alternative's identity hash. Validation freezes the hash;
// before that, concurrent callers must not share the alternative.
func (a *Alternative) ID() AltID {
	if a.frozen {
		return a.id
	}
	return a.computeID()
}

func (a *Alternative) computeID() AltID {
	sig := altSignature{Symbols: make([]string, len(a.Symbols))}
	for i, s := range a.Symbols {
		sig.Symbols[i] = s.String()
	}
	return AltID(structhash.Sha1(sig, 1))
}

// freezeID caches the identity hash. Called once during validation, before
// the grammar becomes shared.
func (a *Alternative) freezeID() {
	if !a.frozen {
		a.id = a.computeID()
		a.frozen = true
	}
}

// allTerminal reports whether every symbol of the alternative is a literal
// or regex terminal, i.e. selecting it ends recursion immediately.
func (a *Alternative) allTerminal() bool {
	for _, s := range a.Symbols {
		if !s.IsTerminal() {
			return false
		}
	}
	return true
}

// literalTerminals returns the literal (non-regex) terminals of the
// alternative.
func (a *Alternative) literalTerminals() []string {
	var lits []string
	for _, s := range a.Symbols {
		if s.Kind == TerminalSym {
			lits = append(lits, s.Lit)
		}
	}
	return lits
}

// belowMin reports whether the alternative has a bounded limit whose minimum
// has not been met yet in this run.
func (a *Alternative) belowMin(st *State) bool {
	return a.Limit.Bounded && st.Count(a.ID()) < a.Limit.Min
}

// selectable reports whether the alternative may still be selected, i.e.
// its invocation count has not reached the maximum.
func (a *Alternative) selectable(st *State) bool {
	return !a.Limit.Bounded || st.Count(a.ID()) < a.Limit.Max
}
