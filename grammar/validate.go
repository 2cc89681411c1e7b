package grammar

import (
	"github.com/npillmayer/bnfgen"
)

// Validate runs every static check over a raw grammar and accumulates all
// findings; it never stops at the first problem. Blocking checks are
// undefined references, duplicate rule identities and inverted invoke-limit
// ranges; trap-loop detection is advisory. The returned CheckedGrammar is
// nil iff at least one blocking error was found; the DiagnosticSet is nil
// iff there were no findings at all. A non-nil grammar may thus come with a
// non-nil set of warnings.
func Validate(raw *RawGrammar) (*CheckedGrammar, *DiagnosticSet) {
	return validate(raw, nil)
}

// ValidateWithStart is Validate plus the reachability analysis: rules not
// reachable from the start identity are reported as advisory findings. An
// unknown start identity is a blocking error.
func ValidateWithStart(raw *RawGrammar, start NonTerminal) (*CheckedGrammar, *DiagnosticSet) {
	return validate(raw, &start)
}

func validate(raw *RawGrammar, start *NonTerminal) (*CheckedGrammar, *DiagnosticSet) {
	diags := &DiagnosticSet{}
	checkDuplicates(raw, diags)
	checkUndefined(raw, diags)
	checkLimits(raw, diags)

	gg := NewGrammarGraph(raw)
	for _, scc := range gg.TrapComponents() {
		related := make([]bnfgen.Span, 0, len(scc)-1)
		for _, r := range scc[1:] {
			related = append(related, r.Span)
		}
		diags.Add(Diagnostic{
			Code:     TrapLoop,
			Severity: SevWarning,
			Span:     scc[0].Span,
			Related:  related,
			Message:  "rules may be trapped in a loop with no exit: " + ruleList(scc),
		})
	}
	if start != nil {
		unreachable, ok := gg.Unreachable(*start)
		if !ok {
			diags.AddError(UndefinedSymbol, bnfgen.Span{},
				"start symbol %s is not defined", *start)
		}
		for _, r := range unreachable {
			diags.AddWarning(UnreachableRule, r.Span,
				"rule %s is unreachable from %s", r.LHS, *start)
		}
	}

	tracer().Debugf("validated %d rules, %d findings", len(raw.Rules), len(diags.Diags))
	if diags.HasErrors() {
		return nil, diags
	}
	for _, r := range raw.Rules {
		for _, a := range r.Production.Alts {
			a.freezeID()
		}
	}
	return newCheckedGrammar(raw), diags.orNil()
}

// checkDuplicates reports every rule whose identity (name, type tag) has
// been defined before, pointing at both definitions.
func checkDuplicates(raw *RawGrammar, diags *DiagnosticSet) {
	seen := make(map[NonTerminal]*Rule)
	for _, r := range raw.Rules {
		if prev, dup := seen[r.LHS]; dup {
			diags.Add(Diagnostic{
				Code:     DuplicateRule,
				Severity: SevError,
				Span:     r.Span,
				Related:  []bnfgen.Span{prev.Span},
				Message:  "rule " + r.LHS.String() + " is already defined",
			})
			continue
		}
		seen[r.LHS] = r
	}
}

// checkUndefined reports every reference that does not resolve: typed
// references need an exact identity match, untyped references need at least
// one rule of that name.
func checkUndefined(raw *RawGrammar, diags *DiagnosticSet) {
	byKey := make(map[string]bool)
	byName := make(map[string]bool)
	for _, r := range raw.Rules {
		byKey[r.LHS.Key()] = true
		byName[r.LHS.Name] = true
	}
	for _, r := range raw.Rules {
		for _, a := range r.Production.Alts {
			for _, s := range a.Symbols {
				if s.Kind != NonTermSym {
					continue
				}
				defined := byName[s.NT.Name]
				if s.NT.IsTyped() {
					defined = byKey[s.NT.Key()]
				}
				if !defined {
					diags.AddError(UndefinedSymbol, s.Span,
						"non-terminal %s is undefined", s.NT)
				}
			}
		}
	}
}

// checkLimits reports every bounded invoke limit with min > max.
func checkLimits(raw *RawGrammar, diags *DiagnosticSet) {
	for _, r := range raw.Rules {
		for _, a := range r.Production.Alts {
			if a.Limit.Bounded && a.Limit.Min > a.Limit.Max {
				diags.AddError(InvalidLimitRange, a.Span,
					"invoke limit %s has min > max", a.Limit)
			}
		}
	}
}

func ruleList(rules []*Rule) string {
	s := ""
	for i, r := range rules {
		if i > 0 {
			s += ", "
		}
		s += r.LHS.String()
	}
	return s
}
