package tagdsl

import (
	"fmt"

	"github.com/juju/errors"
)

// Phase names which stage of the pipeline produced an Error.
type Phase string

const (
	PhaseLex     Phase = "lex"
	PhaseParse   Phase = "parse"
	PhaseCompile Phase = "compile"
)

// Error is returned by every exported entry point in this package. Phase,
// Sender, and Token carry positioning detail for diagnostics, while
// OrigError is the bare cause, wrapped through github.com/juju/errors so
// call sites can Annotate without losing it.
type Error struct {
	Phase     Phase
	Sender    string
	Token     *Token
	OrigError error
}

// Error returns the bare message, undecorated: a caller across a language
// boundary sees exactly this text, with no phase, sender, or position
// wrapped around it.
func (e *Error) Error() string {
	return e.OrigError.Error()
}

// Detail renders a positioned diagnostic line for logs and editor tooling:
// phase, sender, and line/column, followed by the bare message.
func (e *Error) Detail() string {
	s := "[" + string(e.Phase)
	if e.Sender != "" {
		s += " (where: " + e.Sender + ")"
	}
	s += "]"
	if e.Token != nil {
		s += fmt.Sprintf(" | Line %d Col %d", e.Token.Line, e.Token.Col)
	}
	s += " " + e.OrigError.Error()
	return s
}

// Unwrap lets callers use errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error {
	return e.OrigError
}

func newLexError(sender string, tok *Token, format string, args ...any) *Error {
	return &Error{
		Phase:     PhaseLex,
		Sender:    sender,
		Token:     tok,
		OrigError: errors.Errorf(format, args...),
	}
}

func newParseError(sender string, tok *Token, format string, args ...any) *Error {
	return &Error{
		Phase:     PhaseParse,
		Sender:    sender,
		Token:     tok,
		OrigError: errors.Errorf(format, args...),
	}
}

func newCompileError(sender string, format string, args ...any) *Error {
	return &Error{
		Phase:     PhaseCompile,
		Sender:    sender,
		OrigError: errors.Errorf(format, args...),
	}
}

// annotate wraps err (if non-nil) with extra context, preserving its
// identity for errors.Cause while extending the printed message. Nothing in
// this package calls it at present.
func annotate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Annotatef(err, format, args...)
}
