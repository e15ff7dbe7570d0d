package calc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCharacter      = errors.New("invalid character")
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	ErrMalformedExpression   = errors.New("malformed expression")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrEmptyExpression       = errors.New("empty expression")
	ErrExpressionTooLong     = errors.New("expression too long")
)

// Error reports a failure at a specific position of the expression. Use
// errors.Is against the Err* values to classify it.
type Error struct {
	Kind error
	Pos  Position
	Msg  string

	source string
}

func newError(kind error, pos Position, source, msg string) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: msg, source: source}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.Line > 0 {
		fmt.Fprintf(&b, "calc error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	} else {
		fmt.Fprintf(&b, "calc error: %s", e.Msg)
	}
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Source returns the expression the error was raised for.
func (e *Error) Source() string {
	return e.source
}

func (e *Error) withSource(source string) *Error {
	if e.source == "" {
		e.source = source
	}
	return e
}
