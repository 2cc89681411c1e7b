/*
Package report renders grammar diagnostics against their source text.

The grammar package carries the taxonomy and the byte spans; report turns
them into human-readable findings with line/column positions, the offending
source line and a caret underline:

    error: rule <E> is already defined
      3 | <E> ::= "b" ;
        | ^^^^^^^^^^^^

Severity is color-coded with pterm (errors red, advisories yellow); the
Plain style renders without color codes, for tests and non-terminal output.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package report

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bnfgen.report'.
func tracer() tracing.Trace {
	return tracing.Select("bnfgen.report")
}
