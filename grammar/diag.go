package grammar

import (
	"fmt"

	"github.com/npillmayer/bnfgen"
)

// Code classifies a diagnostic.
type Code int

// Diagnostic codes. The first block is produced by the bnflang frontend,
// the second by the validator, the last during generation (wrapped into
// typed errors rather than diagnostics).
const (
	InvalidToken Code = iota + 1
	UnexpectedToken
	UnexpectedEOF
	InvalidWeight
	RegexCompile

	UndefinedSymbol
	DuplicateRule
	InvalidLimitRange
	TrapLoop
	UnreachableRule
)

// Severity separates blocking errors from advisory warnings.
type Severity int8

const (
	SevError   Severity = iota // blocks conversion to a CheckedGrammar
	SevWarning                 // advisory, reported but non-blocking
)

func (s Severity) String() string {
	if s == SevWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one validation or parse finding. Span points at the
// offending source region; Related carries additional regions, e.g. the
// previous definition of a duplicated rule or the other members of a trap
// loop.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Span     bnfgen.Span
	Related  []bnfgen.Span
	Message  string
}

func (d Diagnostic) String() string {
	if d.Span.IsNull() {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s %s", d.Severity, d.Message, d.Span)
}

// DiagnosticSet accumulates every finding of a validation (or parse) pass.
// Checks never short-circuit: the set lists all problems of a grammar, not
// just the first. DiagnosticSet implements error.
type DiagnosticSet struct {
	Diags []Diagnostic
}

// Add appends a finding.
func (ds *DiagnosticSet) Add(d Diagnostic) {
	ds.Diags = append(ds.Diags, d)
}

// AddError appends a blocking finding.
func (ds *DiagnosticSet) AddError(code Code, span bnfgen.Span, format string, args ...interface{}) {
	ds.Add(Diagnostic{Code: code, Severity: SevError, Span: span,
		Message: fmt.Sprintf(format, args...)})
}

// AddWarning appends an advisory finding.
func (ds *DiagnosticSet) AddWarning(code Code, span bnfgen.Span, format string, args ...interface{}) {
	ds.Add(Diagnostic{Code: code, Severity: SevWarning, Span: span,
		Message: fmt.Sprintf(format, args...)})
}

// Empty reports whether the set holds no findings at all.
func (ds *DiagnosticSet) Empty() bool {
	return ds == nil || len(ds.Diags) == 0
}

// HasErrors reports whether any finding is blocking.
func (ds *DiagnosticSet) HasErrors() bool {
	if ds == nil {
		return false
	}
	for _, d := range ds.Diags {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// WarningCount returns the number of advisory findings.
func (ds *DiagnosticSet) WarningCount() int {
	if ds == nil {
		return 0
	}
	n := 0
	for _, d := range ds.Diags {
		if d.Severity == SevWarning {
			n++
		}
	}
	return n
}

// ErrorCount returns the number of blocking findings.
func (ds *DiagnosticSet) ErrorCount() int {
	n := 0
	for _, d := range ds.Diags {
		if d.Severity == SevError {
			n++
		}
	}
	return n
}

// Error implements the error interface, summarizing the set.
func (ds *DiagnosticSet) Error() string {
	if ds.Empty() {
		return "no diagnostics"
	}
	first := ds.Diags[0]
	if len(ds.Diags) == 1 {
		return first.String()
	}
	return fmt.Sprintf("%s (and %d more)", first, len(ds.Diags)-1)
}

// orNil returns nil for an empty set, so that callers can compare the
// returned set against nil.
func (ds *DiagnosticSet) orNil() *DiagnosticSet {
	if ds.Empty() {
		return nil
	}
	return ds
}

// --- Generation-time errors ------------------------------------------------

// ExhaustedError is returned by Reduce when a non-terminal has no eligible
// alternative left: every candidate has reached its invoke limit (or the
// identity resolves to no rule at all). It aborts the current run only;
// the CheckedGrammar and sibling runs are unaffected.
type ExhaustedError struct {
	NT NonTerminal
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("grammar: no eligible alternative for %s", e.NT)
}
