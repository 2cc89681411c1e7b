package bnflang

import (
	"strings"

	"github.com/npillmayer/bnfgen"
	"github.com/npillmayer/bnfgen/grammar"
	"github.com/npillmayer/bnfgen/regexgen"
)

// Parse tokenizes and parses a grammar definition source into a raw
// grammar. The returned DiagnosticSet is nil iff the source is clean; it
// accumulates every finding, since the parser resynchronizes at the next
// ';' after an error. The raw grammar contains every rule that parsed,
// even when other rules did not; callers decide via the diagnostic set
// whether to proceed to validation.
func Parse(input string) (*grammar.RawGrammar, *grammar.DiagnosticSet) {
	diags := &grammar.DiagnosticSet{}
	sc, err := newScanner(input, diags)
	if err != nil {
		diags.AddError(grammar.InvalidToken, bnfgen.Span{}, "scanner setup: %v", err)
		return &grammar.RawGrammar{}, diags
	}
	p := &parser{sc: sc, diags: diags}
	p.advance()
	raw := &grammar.RawGrammar{}
	for p.tok.kind != EOF {
		if rule, ok := p.rule(); ok {
			raw.Rules = append(raw.Rules, rule)
		} else {
			p.synchronize()
		}
	}
	tracer().Debugf("parsed %d rules, %d findings", len(raw.Rules), len(diags.Diags))
	if diags.Empty() {
		return raw, nil
	}
	return raw, diags
}

type parser struct {
	sc    *scanner
	tok   bnfToken
	diags *grammar.DiagnosticSet
}

func (p *parser) advance() {
	p.tok = p.sc.next()
}

// expect consumes a token of the given category and returns it, or fails
// with an UnexpectedToken (UnexpectedEOF at end of input) diagnostic.
func (p *parser) expect(kind bnfgen.TokType, what string) (bnfToken, bool) {
	if p.tok.kind != kind {
		p.errorAtToken(what)
		return p.tok, false
	}
	t := p.tok
	p.advance()
	return t, true
}

func (p *parser) errorAtToken(what string) {
	if p.tok.kind == EOF {
		p.diags.AddError(grammar.UnexpectedEOF, p.tok.span,
			"expected %s, found end of input", what)
		return
	}
	p.diags.AddError(grammar.UnexpectedToken, p.tok.span,
		"expected %s, found %q", what, p.tok.lexeme)
}

// synchronize skips to the token behind the next ';', the statement
// boundary of the language.
func (p *parser) synchronize() {
	for p.tok.kind != EOF && p.tok.kind != bnfgen.TokType(';') {
		p.advance()
	}
	if p.tok.kind == bnfgen.TokType(';') {
		p.advance()
	}
}

// rule parses
//
//	Rule ::= "<" id [":" string] ">" "::=" Alt ("|" Alt)* ";"
func (p *parser) rule() (*grammar.Rule, bool) {
	lhs, open, ok := p.nonterminal()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(Assign, "'::='"); !ok {
		return nil, false
	}
	var alts []*grammar.Alternative
	for {
		alt, ok := p.alternative()
		if !ok {
			return nil, false
		}
		alts = append(alts, alt)
		if p.tok.kind != bnfgen.TokType('|') {
			break
		}
		p.advance()
	}
	semi, ok := p.expect(bnfgen.TokType(';'), "';'")
	if !ok {
		return nil, false
	}
	return &grammar.Rule{
		LHS:        lhs,
		Production: grammar.WeightedProduction{Alts: alts},
		Span:       open.Extend(semi.span),
	}, true
}

// nonterminal parses "<" id [":" string] ">", shared by rule heads and
// references. The returned span covers '<' through '>'.
func (p *parser) nonterminal() (grammar.NonTerminal, bnfgen.Span, bool) {
	open, ok := p.expect(bnfgen.TokType('<'), "'<'")
	if !ok {
		return grammar.NonTerminal{}, open.span, false
	}
	name, ok := p.expect(Ident, "a rule name")
	if !ok {
		return grammar.NonTerminal{}, open.span, false
	}
	nt := grammar.Untyped(name.lexeme)
	if p.tok.kind == bnfgen.TokType(':') {
		p.advance()
		tag, ok := p.expect(String, "a type tag string")
		if !ok {
			return grammar.NonTerminal{}, open.span, false
		}
		typetag, err := unquote(tag.lexeme)
		if err != nil {
			p.diags.AddError(grammar.InvalidToken, tag.span, "%v", err)
			return grammar.NonTerminal{}, open.span, false
		}
		nt = grammar.Typed(name.lexeme, typetag)
	}
	closing, ok := p.expect(bnfgen.TokType('>'), "'>'")
	if !ok {
		return grammar.NonTerminal{}, open.span, false
	}
	return nt, open.span.Extend(closing.span), true
}

// alternative parses
//
//	Alt ::= [int] Symbol+ ["{" int ["," [int]] "}"]
func (p *parser) alternative() (*grammar.Alternative, bool) {
	span := p.tok.span
	weight := 1
	if p.tok.kind == Int {
		weight = atoi(p.tok.lexeme)
		if weight < 1 {
			p.diags.AddError(grammar.InvalidWeight, p.tok.span,
				"weight must be at least 1, got %s", p.tok.lexeme)
		}
		p.advance()
	}
	var syms []grammar.Symbol
	for p.startsSymbol() {
		sym, ok := p.symbol()
		if !ok {
			return nil, false
		}
		syms = append(syms, sym)
	}
	if len(syms) == 0 {
		p.errorAtToken("a symbol")
		return nil, false
	}
	limit := grammar.Unlimited()
	if p.tok.kind == bnfgen.TokType('{') {
		var ok bool
		if limit, ok = p.limit(); !ok {
			return nil, false
		}
	}
	span = span.Extend(syms[len(syms)-1].Span)
	return grammar.NewAlternative(weight, limit, syms, span), true
}

func (p *parser) startsSymbol() bool {
	return p.tok.kind == String || p.tok.kind == Regex ||
		p.tok.kind == bnfgen.TokType('<')
}

// symbol parses
//
//	Symbol ::= string | "<" id [":" string] ">" | "re" "(" string ")"
func (p *parser) symbol() (grammar.Symbol, bool) {
	switch p.tok.kind {
	case String:
		t := p.tok
		p.advance()
		lit, err := unquote(t.lexeme)
		if err != nil {
			p.diags.AddError(grammar.InvalidToken, t.span, "%v", err)
			return grammar.Symbol{}, false
		}
		return grammar.Terminal(lit, t.span), true
	case bnfgen.TokType('<'):
		nt, span, ok := p.nonterminal()
		if !ok {
			return grammar.Symbol{}, false
		}
		return grammar.Reference(nt, span), true
	case Regex:
		return p.regexTerminal()
	}
	p.errorAtToken("a symbol")
	return grammar.Symbol{}, false
}

// regexTerminal parses "re" "(" string ")". The pattern compiles here, at
// parse time; generation never sees an uncompiled pattern.
func (p *parser) regexTerminal() (grammar.Symbol, bool) {
	span := p.tok.span
	p.advance() // the 're' keyword
	if _, ok := p.expect(bnfgen.TokType('('), "'('"); !ok {
		return grammar.Symbol{}, false
	}
	t, ok := p.expect(String, "a pattern string")
	if !ok {
		return grammar.Symbol{}, false
	}
	closing, ok := p.expect(bnfgen.TokType(')'), "')'")
	if !ok {
		return grammar.Symbol{}, false
	}
	pattern, err := unquote(t.lexeme)
	if err != nil {
		p.diags.AddError(grammar.InvalidToken, t.span, "%v", err)
		return grammar.Symbol{}, false
	}
	re, err := regexgen.Compile(pattern)
	if err != nil {
		p.diags.AddError(grammar.RegexCompile, t.span, "%v", err)
		return grammar.Symbol{}, false
	}
	return grammar.RegexTerminal(re, span.Extend(closing.span)), true
}

// limit parses "{" int ["," [int]] "}". '{lo}' and the open-ended '{lo,}'
// both mean exactly lo; '{lo,hi}' means lo to hi inclusive.
func (p *parser) limit() (grammar.Limit, bool) {
	p.advance() // '{'
	lo, ok := p.expect(Int, "a limit bound")
	if !ok {
		return grammar.Limit{}, false
	}
	hi := lo
	if p.tok.kind == bnfgen.TokType(',') {
		p.advance()
		if p.tok.kind == Int {
			hi = p.tok
			p.advance()
		}
	}
	if _, ok := p.expect(bnfgen.TokType('}'), "'}'"); !ok {
		return grammar.Limit{}, false
	}
	return grammar.Limited(atoi(lo.lexeme), atoi(hi.lexeme)), true
}

// atoi converts a scanned Int lexeme, which is all digits by construction.
func atoi(s string) int {
	n := 0
	for _, d := range s {
		n = n*10 + int(d-'0')
	}
	return n
}

// unquote strips the quotes of a scanned string lexeme and resolves its
// escape sequences \" \\ \n \t \r.
func unquote(lexeme string) (string, error) {
	body := lexeme[1 : len(lexeme)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			return "", errBadEscape(body[i])
		}
	}
	return b.String(), nil
}

type errBadEscape byte

func (e errBadEscape) Error() string {
	return "unknown escape sequence \\" + string(byte(e))
}
