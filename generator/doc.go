/*
Package generator produces random strings and derivation trees from a
checked grammar.

Two generators cover the two output shapes. Generator derives flat text: it
expands the start symbol iteratively with an explicit work stack, emitting
terminals in left-most-derivation order and joining them with a configurable
separator. TreeGenerator derives the same language but retains the structure
of the derivation as a Tree of named branches and terminal leaves.

Both are configured with option functions:

    g := generator.New(checked, generator.WithSeed(42))
    out, err := g.Generate(grammar.Untyped("S"))

A generator owns its random number source and is therefore not safe for
concurrent use; the CheckedGrammar it draws from is, so concurrent runs
simply use one generator each. Runs are independent: invoke limit counters
reset between calls, and a failed run (an exhausted production, a step
ceiling hit) leaves neither the grammar nor subsequent runs in a degraded
state.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package generator

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bnfgen.generator'.
func tracer() tracing.Trace {
	return tracing.Select("bnfgen.generator")
}
