package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxDepth bounds the nesting of prims, variants, metadata blocks
// and container literals.
const DefaultMaxDepth = 256

// Sentinel errors matched with errors.Is.
var (
	ErrSyntax  = errors.New("syntax error")
	ErrTooDeep = errors.New("too deeply nested")
	ErrLiteral = errors.New("invalid literal")
)

// Position is a location in source text. Line and Column are 1-based;
// Column counts bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String formats the position as "line:col".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// SyntaxError reports that every alternative was exhausted. Position is
// the furthest offset any alternative reached and Expected lists the
// rules attempted there.
type SyntaxError struct {
	Position
	Expected []Rule
	Literals []string // punctuation and keywords attempted at Position
	Found    string   // input at Position, truncated
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at %s", e.Position)
	if want := e.expectation(); want != "" {
		b.WriteString(": expected ")
		b.WriteString(want)
	}
	if e.Found == "" {
		b.WriteString(", found end of input")
	} else {
		fmt.Fprintf(&b, ", found %q", e.Found)
	}
	return b.String()
}

func (e *SyntaxError) expectation() string {
	parts := make([]string, 0, len(e.Expected)+len(e.Literals))
	for _, r := range e.Expected {
		parts = append(parts, r.describe())
	}
	for _, lit := range e.Literals {
		parts = append(parts, strconv.Quote(lit))
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
	}
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// DepthError reports that nesting exceeded the configured limit.
type DepthError struct {
	Position
	Rule  Rule
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%s at %s: %s exceeds nesting limit %d", ErrTooDeep, e.Position, e.Rule, e.Limit)
}

// Unwrap lets errors.Is match ErrTooDeep.
func (e *DepthError) Unwrap() error { return ErrTooDeep }

// LiteralError reports a literal that the grammar accepts but that cannot
// be represented, such as an integer outside the int64 range.
type LiteralError struct {
	Position
	Rule Rule
	Text string
	Err  error
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("%s %s %q at %s: %v", ErrLiteral, e.Rule, e.Text, e.Position, e.Err)
}

// Unwrap exposes both ErrLiteral and the conversion error.
func (e *LiteralError) Unwrap() []error { return []error{ErrLiteral, e.Err} }
