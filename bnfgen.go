package bnfgen

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. The bnflang scanner defines the
// concrete token categories for the grammar definition language.
type TokType int

// Tokens represent input tokens of a grammar definition source. They are
// produced by a scanner and consumed by the rule-list parser.
//
// An example would be a token for a quoted terminal:
//
//    TokType = String       // identifier for this kind of tokens
//    Lexeme  = "\"while\""  // lexeme how it appeared in the input stream
//    Span    = 14…21        // occupied positions 14 to 21 of the input
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input run. Every symbol,
// alternative and rule of a grammar tracks which input positions it was read
// from, so that diagnostics can point back into the source text. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// SpanOf constructs a span from a start and end position.
func SpanOf(from, to uint64) Span {
	return Span{from, to}
}

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
