package mathexpr

import (
	"fmt"
	"strings"
)

// Code classifies a diagnostic.
type Code int8

// Diagnostic codes reported by the lexer and the parser.
const (
	InvalidCharacter  Code = iota + 1 // untokenizable input character
	UnknownIdentifier                 // identifier is neither constant, function nor single letter
	UnexpectedToken                   // token cannot start an operand
	UnexpectedEnd                     // input ended where an operand was expected
	MissingDelimiter                  // missing '(' or ')'
	MalformedNumber                   // numeric literal like 1.2.3
	ArityMismatch                     // wrong number of function arguments
	TrailingToken                     // tokens left over after the top-level expression
	TooDeep                           // nesting exceeds the configured depth bound
)

var codeNames = [...]string{
	"none",
	"invalid-character",
	"unknown-identifier",
	"unexpected-token",
	"unexpected-end",
	"missing-delimiter",
	"malformed-number",
	"arity-mismatch",
	"trailing-token",
	"too-deep",
}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return "unknown"
	}
	return codeNames[c]
}

// Severity tells if a diagnostic makes the result unreliable (Error) or is
// merely worth pointing out (Warning).
type Severity int8

// Severities of diagnostics.
const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a problem found while parsing an expression.
// Index is the token index the problem was found at, -1 if unknown.
// For invalid characters Index is the byte offset in the input.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Index    int
}

func (d Diagnostic) String() string {
	if d.Index < 0 {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s at %d: %s", d.Severity, d.Index, d.Message)
}

// Diagnostics is a list of diagnostics. A non-empty list is used as an error value.
type Diagnostics []Diagnostic

func (dl Diagnostics) Error() string {
	switch len(dl) {
	case 0:
		return "no diagnostics"
	case 1:
		return dl[0].String()
	}
	var b strings.Builder
	b.WriteString(dl[0].String())
	fmt.Fprintf(&b, " (and %d more)", len(dl)-1)
	return b.String()
}

// HasErrors is true if at least one diagnostic has severity Error.
func (dl Diagnostics) HasErrors() bool {
	for _, d := range dl {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Codes returns the codes of all diagnostics, in order.
func (dl Diagnostics) Codes() []Code {
	codes := make([]Code, len(dl))
	for i, d := range dl {
		codes[i] = d.Code
	}
	return codes
}

// Contains is true if a diagnostic with code c is in the list.
func (dl Diagnostics) Contains(c Code) bool {
	for _, d := range dl {
		if d.Code == c {
			return true
		}
	}
	return false
}
