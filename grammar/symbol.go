package grammar

import (
	"fmt"

	"github.com/npillmayer/bnfgen"
	"github.com/npillmayer/bnfgen/regexgen"
)

// NonTerminal names a grammar rule. Identity is the pair (Name, Type):
// rules may share a name across different type tags, giving overload-like
// behavior for typed references. An empty Type denotes an untyped
// non-terminal.
type NonTerminal struct {
	Name string
	Type string
}

// Untyped creates a non-terminal without a type tag.
func Untyped(name string) NonTerminal {
	return NonTerminal{Name: name}
}

// Typed creates a non-terminal qualified by a type tag.
func Typed(name, typetag string) NonTerminal {
	return NonTerminal{Name: name, Type: typetag}
}

// IsTyped reports whether the non-terminal carries a type tag.
func (nt NonTerminal) IsTyped() bool {
	return nt.Type != ""
}

// Key returns the identity key used for rule indexing and graph vertices.
func (nt NonTerminal) Key() string {
	if nt.Type == "" {
		return nt.Name
	}
	return nt.Name + ":" + nt.Type
}

func (nt NonTerminal) String() string {
	if nt.Type == "" {
		return "<" + nt.Name + ">"
	}
	return fmt.Sprintf("<%s: %q>", nt.Name, nt.Type)
}

// SymbolKind discriminates the variants of Symbol.
type SymbolKind int8

// The three kinds of symbols occurring on the right-hand side of a rule.
const (
	TerminalSym SymbolKind = iota // a literal string, emitted verbatim
	NonTermSym                    // a reference to another rule
	RegexSym                      // a regex-defined terminal
)

// Symbol is one element of an alternative's right-hand side. Symbols are
// plain data; exactly one of Lit, NT, Re is meaningful, selected by Kind.
// Every symbol carries the source span it was read from.
type Symbol struct {
	Kind SymbolKind
	Lit  string            // TerminalSym: the literal text
	NT   NonTerminal       // NonTermSym: the referenced identity
	Re   *regexgen.Pattern // RegexSym: the compiled pattern
	Span bnfgen.Span
}

// Terminal creates a literal terminal symbol.
func Terminal(lit string, span bnfgen.Span) Symbol {
	return Symbol{Kind: TerminalSym, Lit: lit, Span: span}
}

// Reference creates a symbol referencing a non-terminal.
func Reference(nt NonTerminal, span bnfgen.Span) Symbol {
	return Symbol{Kind: NonTermSym, NT: nt, Span: span}
}

// RegexTerminal creates a regex-defined terminal symbol.
func RegexTerminal(p *regexgen.Pattern, span bnfgen.Span) Symbol {
	return Symbol{Kind: RegexSym, Re: p, Span: span}
}

// IsTerminal reports whether the symbol produces output directly, i.e. is a
// literal or a regex terminal.
func (s Symbol) IsTerminal() bool {
	return s.Kind == TerminalSym || s.Kind == RegexSym
}

func (s Symbol) String() string {
	switch s.Kind {
	case TerminalSym:
		return fmt.Sprintf("%q", s.Lit)
	case NonTermSym:
		return s.NT.String()
	case RegexSym:
		return fmt.Sprintf("re(%q)", s.Re.String())
	}
	return "<invalid symbol>"
}
