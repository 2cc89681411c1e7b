package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/bnfgen"
	"github.com/npillmayer/bnfgen/grammar"
	"github.com/pterm/pterm"
)

// Style selects how findings are decorated.
type Style int8

const (
	Plain Style = iota // no color codes
	Color              // severity coloring via pterm
)

// Reporter renders a DiagnosticSet against the source text it was produced
// from.
type Reporter struct {
	style Style
}

// NewReporter creates a reporter with the given style.
func NewReporter(style Style) *Reporter {
	return &Reporter{style: style}
}

// Render writes every finding of the set to w, each with its position in
// the source, the source line and a caret underline. Findings without a
// span render as a bare message. Related spans (the first definition of a
// duplicated rule, the other members of a trap loop) follow indented.
func (rep *Reporter) Render(w io.Writer, source string, ds *grammar.DiagnosticSet) {
	if ds.Empty() {
		return
	}
	tracer().Debugf("rendering %d findings", len(ds.Diags))
	lines := index(source)
	for _, d := range ds.Diags {
		fmt.Fprintf(w, "%s: %s\n", rep.severity(d.Severity), d.Message)
		rep.quote(w, lines, d.Span)
		for _, rel := range d.Related {
			fmt.Fprintf(w, "  related:\n")
			rep.quote(w, lines, rel)
		}
	}
}

// RenderString renders like Render, into a string.
func (rep *Reporter) RenderString(source string, ds *grammar.DiagnosticSet) string {
	var b strings.Builder
	rep.Render(&b, source, ds)
	return b.String()
}

func (rep *Reporter) severity(sev grammar.Severity) string {
	if rep.style == Plain {
		return sev.String()
	}
	if sev == grammar.SevError {
		return pterm.FgRed.Sprint(sev.String())
	}
	return pterm.FgYellow.Sprint(sev.String())
}

// quote writes the source line a span starts on, with a caret underline
// covering the span's part of that line.
func (rep *Reporter) quote(w io.Writer, lines lineIndex, span bnfgen.Span) {
	if span.IsNull() {
		return
	}
	lineno, col, text := lines.locate(span.From())
	prefix := fmt.Sprintf("  %3d | ", lineno)
	fmt.Fprintf(w, "%s%s\n", prefix, text)
	carets := int(span.Len())
	if max := len(text) - col + 1; carets > max {
		carets = max // span continues on following lines
	}
	if carets < 1 {
		carets = 1
	}
	fmt.Fprintf(w, "  %3s | %s%s\n", "",
		strings.Repeat(" ", col-1), strings.Repeat("^", carets))
}

// lineIndex maps byte offsets to line/column positions. Offsets are the
// start of each line, in order.
type lineIndex struct {
	source string
	starts []uint64
}

func index(source string) lineIndex {
	starts := []uint64{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, uint64(i)+1)
		}
	}
	return lineIndex{source: source, starts: starts}
}

// locate returns 1-based line and column of a byte offset, plus the text of
// that line without its newline.
func (li lineIndex) locate(offset uint64) (lineno, col int, text string) {
	line := 0
	for line+1 < len(li.starts) && li.starts[line+1] <= offset {
		line++
	}
	start := li.starts[line]
	end := uint64(len(li.source))
	if line+1 < len(li.starts) {
		end = li.starts[line+1] - 1 // strip the newline
	}
	if offset > end {
		offset = end
	}
	return line + 1, int(offset-start) + 1, li.source[start:end]
}
