package ext

import (
	"strings"
	"unicode/utf8"
)

// String returns "prefix:Name", or "Name" when unprefixed.
func (id Identifier) String() string {
	if id.Prefix == "" {
		return id.Name
	}

	return id.Prefix + ":" + id.Name
}

// String returns the canonical extension syntax for m.
// Parsing the result yields an extension equal to m.
func (m *MarkupExtension) String() string {
	if m == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteByte('{')
	sb.WriteString(m.Identifier.String())

	if len(m.Options) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(m.Options.String())
	}

	sb.WriteByte('}')

	return sb.String()
}

// String returns the options joined by ", ".
func (opts Options) String() string {
	part := make([]string, 0, len(opts))

	for _, opt := range opts {
		part = append(part, opt.String())
	}

	return strings.Join(part, ", ")
}

// String returns the canonical syntax of the positional value.
func (p Positional) String() string {
	return formatValue(p.Value)
}

// String returns "Name=Value".
func (p Property) String() string {
	return p.Name + "=" + formatValue(p.Value)
}

// String returns the text quoted or escaped as needed to parse back as a
// single value.
func (s String) String() string {
	switch {
	case isBareSafe(s.Text):
		return s.Text

	case !strings.ContainsRune(s.Text, quote):
		return string(quote) + s.Text + string(quote)

	default:
		return escapeBare(s.Text)
	}
}

func formatValue(v Value) string {
	if v == nil {
		return "''"
	}

	return v.String()
}

// isBareSafe reports whether text scans back unchanged as a bare token.
func isBareSafe(text string) bool {
	if text == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(text)
	last, _ := utf8.DecodeLastRuneInString(text)

	if first == quote || isSpace(first) || isSpace(last) {
		return false
	}

	return !strings.ContainsFunc(text, func(r rune) bool {
		return isDelimiter(r) || r == escape
	})
}

// escapeBare backslash-escapes every rune that would otherwise end or
// alter a bare token.
func escapeBare(text string) string {
	var sb strings.Builder

	for i, r := range text {
		if isDelimiter(r) || r == escape || isSpace(r) || (i == 0 && r == quote) {
			sb.WriteRune(escape)
		}

		sb.WriteRune(r)
	}

	return sb.String()
}
