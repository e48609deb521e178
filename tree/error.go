package tree

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/xmark/ext"
)

// Error represents a tree error with structured logging support.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

var (
	ErrAttribute   = NewError("attribute parse error")
	ErrDecode      = NewError("decode element stream")
	ErrKeyConflict = NewError("attribute shadows reserved key")
	ErrNoElement   = NewError("no root element")
	ErrQuery       = NewError("invalid query")
)

// AttributeError reports an attribute that could not be converted: a value
// that does not parse as a markup extension, or a Key that conflicts with the
// reserved key. It matches [ErrAttribute] with [errors.Is] and unwraps to the
// underlying [*ext.Error] or [ErrKeyConflict].
type AttributeError struct {
	Path      string // element path, e.g. /Root/Child[1]; empty from Dispatch
	Attribute string
	Value     string
	Err       error
}

func (e *AttributeError) Error() string {
	var sb strings.Builder

	sb.WriteString(ErrAttribute.msg)

	if e.Path != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.Path)
	}

	sb.WriteString(": attribute ")
	sb.WriteString(e.Attribute)

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

func (e *AttributeError) Unwrap() error { return e.Err }

// Is reports whether target is [ErrAttribute].
func (e *AttributeError) Is(target error) bool { return target == ErrAttribute }

// Explain renders the error followed by a caret snippet of the raw value when
// the cause is located.
func (e *AttributeError) Explain() string {
	var perr *ext.Error
	if !errors.As(e.Err, &perr) || perr.Offset() < 0 {
		return e.Error()
	}

	msg := perr.Explain()

	return e.Error() + msg[strings.IndexByte(msg, '\n'):]
}

func (e *AttributeError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrAttribute.msg),
		slog.String("attribute", e.Attribute),
		slog.String("value", e.Value),
	}

	if e.Path != "" {
		attrs = append(attrs, slog.String("path", e.Path))
	}

	if e.Err != nil {
		attrs = append(attrs, slog.Any("cause", e.Err))
	}

	return slog.GroupValue(attrs...)
}
