package bnflang

import (
	"sync"

	"github.com/npillmayer/bnfgen"
	"github.com/npillmayer/bnfgen/grammar"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// The named token categories of the grammar definition language. Literal
// one-char lexemes ('<', ';', …) use their code point as category, so the
// parser can match them against plain runes.
const (
	EOF bnfgen.TokType = iota
	Ident
	Int
	String
	Assign // "::="
	Regex  // keyword 're'
)

// The tokens representing literal one-char lexemes
var literals = []string{"<", ">", ":", ";", "|", "{", "}", "(", ")", ","}

var initOnce sync.Once // monitors one-time DFA compilation
var lexer *lexmachine.Lexer
var lexerErr error

// bnfLexer returns the process-wide lexer, compiling its DFA on first use.
// Tie-breaking in lexmachine is longest match first, earlier pattern on
// equal length, so 're' is added before the identifier pattern: 're' scans
// as the keyword, 'real' as an identifier.
func bnfLexer() (*lexmachine.Lexer, error) {
	initOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
		lexer.Add([]byte(`//[^\n]*`), skip)
		lexer.Add([]byte(`::=`), makeToken(Assign))
		lexer.Add([]byte(`re`), makeToken(Regex))
		lexer.Add([]byte(`"(\\.|[^"\\])*"`), makeToken(String))
		lexer.Add([]byte(`[0-9]+`), makeToken(Int))
		lexer.Add([]byte(`([a-z]|[A-Z]|[0-9]|_|-)+`), makeToken(Ident))
		for _, lit := range literals {
			lexer.Add([]byte("\\"+lit), makeToken(bnfgen.TokType(lit[0])))
		}
		lexerErr = lexer.Compile()
	})
	return lexer, lexerErr
}

// skip is an action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is an action which wraps a scanned match into a token.
func makeToken(toktype bnfgen.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(toktype), string(m.Bytes), m), nil
	}
}

// bnfToken implements bnfgen.Token with byte-offset spans.
type bnfToken struct {
	kind   bnfgen.TokType
	lexeme string
	span   bnfgen.Span
}

var _ bnfgen.Token = bnfToken{}

func (t bnfToken) TokType() bnfgen.TokType {
	return t.kind
}

func (t bnfToken) Lexeme() string {
	return t.lexeme
}

func (t bnfToken) Span() bnfgen.Span {
	return t.span
}

// scanner tokenizes one source text. Scan errors are recorded as
// diagnostics and scanning continues behind the offending input.
type scanner struct {
	lm    *lexmachine.Scanner
	diags *grammar.DiagnosticSet
	end   uint64 // length of the input, for the EOF span
}

// newScanner creates a scanner for a given input. Scan-time findings go
// into diags.
func newScanner(input string, diags *grammar.DiagnosticSet) (*scanner, error) {
	lx, err := bnfLexer()
	if err != nil {
		return nil, err
	}
	lm, err := lx.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &scanner{lm: lm, diags: diags, end: uint64(len(input))}, nil
}

// next returns the next token, an EOF token at the end of input. Invalid
// input is reported and skipped.
func (sc *scanner) next() bnfToken {
	tok, err, eof := sc.lm.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			span := bnfgen.SpanOf(uint64(ui.StartTC), uint64(ui.FailTC))
			sc.diags.AddError(grammar.InvalidToken, span,
				"invalid input %q", string(ui.Text[ui.StartTC:ui.FailTC]))
			sc.lm.TC = ui.FailTC
			if sc.lm.TC <= ui.StartTC {
				sc.lm.TC = ui.StartTC + 1 // always advance
			}
		} else {
			tracer().Errorf("scanner: %v", err)
			sc.diags.AddError(grammar.InvalidToken, bnfgen.Span{}, "%v", err)
			return bnfToken{kind: EOF, span: bnfgen.SpanOf(sc.end, sc.end)}
		}
		tok, err, eof = sc.lm.Next()
	}
	if eof {
		return bnfToken{kind: EOF, span: bnfgen.SpanOf(sc.end, sc.end)}
	}
	t := tok.(*lexmachine.Token)
	from := uint64(t.TC)
	return bnfToken{
		kind:   bnfgen.TokType(t.Type),
		lexeme: string(t.Lexeme),
		span:   bnfgen.SpanOf(from, from+uint64(len(t.Lexeme))),
	}
}
