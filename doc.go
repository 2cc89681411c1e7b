/*
Package bnfgen is a grammar compiler and randomized generation toolbox.

bnfgen reads extended BNF grammars (weighted alternatives, per-alternative
invoke limits, regex-defined terminals, type-qualified non-terminals),
validates them statically, and derives random strings or derivation trees
from the validated grammar. Package structure is as follows:

■ grammar: Package grammar holds the grammar model, the validator with its
diagnostics taxonomy, the graph-based structural analyses, and the checked,
generation-ready grammar representation.

■ regexgen: Package regexgen synthesizes random strings matching a regular
expression pattern.

■ generator: Package generator expands a checked grammar into flat text or
into an explicit derivation tree.

■ bnflang: Package bnflang is the frontend for the grammar definition
language, turning source text into an unvalidated rule list.

■ report: Package report pretty-prints validation diagnostics against the
grammar source.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bnfgen
