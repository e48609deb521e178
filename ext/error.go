package ext

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind classifies a parse failure.
type Kind int

const (
	// KindLexical reports a character that cannot start or continue the
	// identifier or token expected at that position.
	KindLexical Kind = iota + 1

	// KindUnterminated reports input that ended before a closing brace or
	// closing quote.
	KindUnterminated

	// KindUnexpectedToken reports a missing or mismatched delimiter.
	KindUnexpectedToken

	// KindTrailingInput reports input left over after a complete extension.
	KindTrailingInput
)

// String returns a string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "LexicalError"

	case KindUnterminated:
		return "UnterminatedExtensionError"

	case KindUnexpectedToken:
		return "UnexpectedTokenError"

	case KindTrailingInput:
		return "TrailingInputError"

	default:
		return "Unknown"
	}
}

// Predefined errors (sentinel values).
//
// Errors returned by the parser are derived from these and match them with
// [errors.Is] regardless of offset or attributes.
var (
	ErrLexical         = NewError(KindLexical, "unrecognized character")
	ErrUnterminated    = NewError(KindUnterminated, "unterminated extension")
	ErrUnexpectedToken = NewError(KindUnexpectedToken, "unexpected token")
	ErrTrailingInput   = NewError(KindTrailingInput, "trailing input")
)

// Error is a parse failure with its location in the input and optional
// structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind     Kind
	msg      string
	err      error
	input    string
	found    string
	expected []string
	attrs    []slog.Attr
	offset   int
}

// NewError creates a new Error of the given kind with a message.
// The offset of a new Error is unknown (-1).
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg, offset: -1}
}

// Kind returns the classification of the error.
func (e *Error) Kind() Kind { return e.kind }

// Offset returns the byte offset into the input where the error was
// detected, or -1 if unknown.
func (e *Error) Offset() int { return e.offset }

// Found returns the offending text at the error offset. It is empty when the
// error was detected at the end of input.
func (e *Error) Found() string { return e.found }

// Expected returns the sorted set of tokens that would have been accepted at
// the error offset.
func (e *Error) Expected() []string { return slices.Clone(e.expected) }

// Input returns the text being parsed when the error occurred.
func (e *Error) Input() string { return e.input }

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.msg)

	if e.offset >= 0 {
		sb.WriteString(" at offset ")
		sb.WriteString(strconv.Itoa(e.offset))
	}

	if e.found != "" {
		sb.WriteString(": found ")
		sb.WriteString(strconv.Quote(e.found))
	} else if e.offset >= 0 && e.offset >= len(e.input) {
		sb.WriteString(": found end of input")
	}

	if len(e.expected) > 0 {
		sb.WriteString(", expected ")
		sb.WriteString(strings.Join(e.expected, " or "))
	}

	if e.err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.kind == e.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+6)

	attrs = append(attrs,
		slog.String("error", e.msg),
		slog.String("kind", e.kind.String()),
	)

	if e.offset >= 0 {
		attrs = append(attrs, slog.Int("offset", e.offset))
	}

	if e.found != "" {
		attrs = append(attrs, slog.String("found", e.found))
	}

	if len(e.expected) > 0 {
		attrs = append(attrs, slog.Any("expected", e.expected))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = append(slices.Clip(c.attrs), attrs...)

	return c
}

// WithOffset returns a copy of the error shifted by delta bytes, with its
// input replaced by input. It is used to rebase errors from a trimmed
// substring onto the text it was taken from.
func (e *Error) WithOffset(input string, delta int) *Error {
	c := e.clone()
	c.input = input

	if c.offset >= 0 {
		c.offset += delta
	}

	return c
}

// Explain renders the input with a caret under the error offset.
func (e *Error) Explain() string {
	if e.offset < 0 {
		return e.Error()
	}

	col := utf8.RuneCountInString(e.input[:min(e.offset, len(e.input))])

	var sb strings.Builder

	sb.WriteString(e.Error())
	sb.WriteString("\n  | ")
	sb.WriteString(e.input)
	sb.WriteString("\n  | ")
	sb.WriteString(strings.Repeat(" ", col))
	sb.WriteString("^\n")

	return sb.String()
}

func (e *Error) clone() *Error {
	c := *e

	return &c
}

// at returns a copy of the sentinel located at c.
func (e *Error) at(c cursor, expected ...string) *Error {
	n := e.clone()
	n.input = c.input
	n.offset = c.pos
	n.found = c.found()
	n.expected = slices.Compact(slices.Sorted(slices.Values(expected)))

	return n
}

// furthest returns whichever error was detected further into the input,
// merging expectations when both stopped at the same offset.
func furthest(a, b *Error) *Error {
	switch {
	case a == nil:
		return b

	case b == nil || a.offset > b.offset:
		return a

	case b.offset > a.offset:
		return b
	}

	m := a.clone()
	m.expected = slices.Compact(slices.Sorted(slices.Values(
		append(slices.Clone(a.expected), b.expected...),
	)))

	return m
}
