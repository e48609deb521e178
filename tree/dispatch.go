package tree

import (
	"context"
	"errors"
	"strings"

	"github.com/ardnew/xmark/ext"
)

const space = " \t\r\n"

// Escape markers. A value beginning with "{}" is the literal text that
// follows; a value beginning with "{{" is the literal text after the first
// brace.
const (
	escapeEmpty  = "{}"
	escapeDouble = "{{"
)

// Dispatch classifies the raw value of the attribute named name and returns
// either a literal [ext.String] or a parsed [*ext.MarkupExtension].
//
// Leading whitespace is ignored when classifying. Values that begin with '{'
// (and are not escaped) are parsed as a markup extension after trimming;
// other values are returned verbatim. A parse failure is returned as an
// [*AttributeError] whose cause is located in raw.
func Dispatch(name, raw string) (ext.Value, error) {
	return dispatch(context.Background(), name, raw)
}

func dispatch(
	ctx context.Context,
	name, raw string,
	opts ...ext.ParseOption,
) (ext.Value, error) {
	trimmed := strings.TrimLeft(raw, space)

	switch {
	case strings.HasPrefix(trimmed, escapeEmpty):
		return ext.String{Text: trimmed[len(escapeEmpty):]}, nil

	case strings.HasPrefix(trimmed, escapeDouble):
		return ext.String{Text: trimmed[1:]}, nil

	case strings.HasPrefix(trimmed, "{"):
		lead := len(raw) - len(trimmed)

		m, err := ext.ParseString(ctx, strings.TrimRight(trimmed, space), opts...)
		if err != nil {
			var perr *ext.Error
			if errors.As(err, &perr) {
				err = perr.WithOffset(raw, lead)
			}

			return nil, &AttributeError{Attribute: name, Value: raw, Err: err}
		}

		return m, nil

	default:
		return ext.String{Text: raw}, nil
	}
}
