/*
Package bnflang is the frontend for the grammar definition language.

The language states one rule per statement, terminated by ';'. A rule maps a
(possibly type-qualified) non-terminal to alternatives separated by '|'. An
alternative is a sequence of symbols, optionally preceded by an integer
weight and optionally followed by an invoke limit in braces:

    <sentence> ::= <greeting> "world" ;
    <greeting> ::= 4 "hello" | "hi" { 0, 2 } | re("(h+|y)o") ;

Symbols are quoted terminals, angle-bracketed references and re(…) regex
terminals. '//' starts a line comment.

Parse tokenizes and parses a source text into a grammar.RawGrammar, which
still has to pass grammar.Validate before it can generate. Scanning is done
with a DFA built by lexmachine, compiled once per process; parsing is
recursive descent with single-token lookahead. Errors do not abort the
parse: the parser records a diagnostic and resynchronizes at the next ';',
so one pass reports every malformed rule of a source.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bnflang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bnfgen.bnflang'.
func tracer() tracing.Trace {
	return tracing.Select("bnfgen.bnflang")
}
