/*
Package bnfgen/main provides the command line tool for the bnfgen grammar
compiler and generator. It validates grammar definition files and derives
random strings (or derivation trees) from them:

   bnfgen check -grammar g.bnf [-start S]
   bnfgen gen   -grammar g.bnf [-start S] [-n 10] [-seed 42] [-tree]

Without a subcommand the tool starts an interactive session where rules may
be entered line by line and checked or expanded on the spot.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bnfgen.cli'
func tracer() tracing.Trace {
	return tracing.Select("bnfgen.cli")
}
