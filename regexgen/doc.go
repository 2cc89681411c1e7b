/*
Package regexgen synthesizes random strings matching a regular expression.

Patterns are compiled once, at grammar-validation time, into the syntax tree
provided by the standard regexp/syntax package. Generation walks the tree:
literals emit themselves, character classes draw one member uniformly,
alternations draw one branch uniformly, and repetitions draw a count
uniformly from their range. Unbounded repetition operators (`+`, `*`,
open-ended counted repeats) are capped rather than sampled over an infinite
domain.

regexgen never matches input against a pattern; it only produces members of
the pattern's language.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package regexgen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bnfgen.regexgen'.
func tracer() tracing.Trace {
	return tracing.Select("bnfgen.regexgen")
}
