package grammar

import (
	"github.com/npillmayer/bnfgen"
)

// Rule maps a non-terminal identity to its weighted production.
type Rule struct {
	LHS        NonTerminal
	Production WeightedProduction
	Span       bnfgen.Span
}

// RawGrammar is an ordered, not yet validated rule list, as produced by the
// bnflang frontend (or assembled programmatically). It may be malformed;
// Validate consumes it and produces a CheckedGrammar.
type RawGrammar struct {
	Rules []*Rule
}

// AddRule appends a rule built from its parts. Mainly a convenience for
// assembling grammars in code and in tests.
func (g *RawGrammar) AddRule(lhs NonTerminal, alts ...*Alternative) *Rule {
	r := &Rule{LHS: lhs, Production: WeightedProduction{Alts: alts}}
	g.Rules = append(g.Rules, r)
	return r
}

// rulesNamed returns all rules sharing the given name, regardless of type
// tag, in definition order.
func (g *RawGrammar) rulesNamed(name string) []*Rule {
	var rules []*Rule
	for _, r := range g.Rules {
		if r.LHS.Name == name {
			rules = append(rules, r)
		}
	}
	return rules
}
