/*
Package grammar implements the grammar model of bnfgen, its validator, and
the checked, generation-ready grammar representation.

A grammar arrives as a RawGrammar: an ordered list of rules, each mapping a
(possibly type-qualified) non-terminal to a weighted production. Raw grammars
may be malformed in every way the grammar definition language permits:
references to undefined non-terminals, duplicate definitions, inverted invoke
limit ranges. Validate runs every check to completion, accumulates all
findings into a DiagnosticSet, and converts to a CheckedGrammar iff no
blocking error was found:

    raw, _ := bnflang.Parse(src)
    checked, diags := grammar.Validate(raw)
    if checked == nil {
        // diags lists every problem, not just the first
    }

Two structural analyses are advisory and never block conversion: trap-loop
detection (strongly connected components with no terminal-reaching exit) and,
when a start symbol is supplied, unreachable-rule detection. Both run on a
directed graph over rule identities, built on the lvlath graph module.

A CheckedGrammar is immutable and may be shared read-only between any number
of concurrently executing generation runs. All per-run mutability (the RNG
and the per-alternative invocation counters) lives in a State, which is
exclusively owned by a single run.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bnfgen.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("bnfgen.grammar")
}
