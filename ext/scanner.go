package ext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// cursor is a read position in an immutable input string.
// Cursors are values: advancing returns a new cursor, so a failed scan never
// disturbs the position held by its caller.
type cursor struct {
	input string
	pos   int
}

func newCursor(input string) cursor { return cursor{input: input} }

func (c cursor) eof() bool { return c.pos >= len(c.input) }

func (c cursor) peek() (rune, int) {
	if c.eof() {
		return utf8.RuneError, 0
	}

	return utf8.DecodeRuneInString(c.input[c.pos:])
}

func (c cursor) advance(n int) cursor {
	c.pos = min(c.pos+n, len(c.input))

	return c
}

// found returns the rune at the cursor as a string, or "" at end of input.
func (c cursor) found() string {
	r, size := c.peek()
	if size == 0 {
		return ""
	}

	return string(r)
}

// Character classification

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isNameContinue(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r)
}

// isDelimiter reports whether r ends a bare token.
func isDelimiter(r rune) bool {
	return r == ',' || r == '=' || r == '}' || r == '{'
}

const (
	quote  = '\''
	escape = '\\'
)

// Scanner primitives

// spaces consumes zero or more whitespace characters. It never fails.
func spaces(c cursor) (string, cursor, *Error) {
	start := c.pos

	for {
		r, size := c.peek()
		if size == 0 || !isSpace(r) {
			break
		}

		c = c.advance(size)
	}

	return c.input[start:c.pos], c, nil
}

// spaces1 consumes one or more whitespace characters.
func spaces1(c cursor) (string, cursor, *Error) {
	s, next, _ := spaces(c)
	if s == "" {
		return "", c, failAt(c, ErrUnexpectedToken, "whitespace")
	}

	return s, next, nil
}

// char returns a parser matching the literal rune want.
func char(want rune) parser[rune] {
	return func(c cursor) (rune, cursor, *Error) {
		r, size := c.peek()
		if size == 0 || r != want {
			return 0, c, failAt(c, ErrUnexpectedToken, string(want))
		}

		return r, c.advance(size), nil
	}
}

// name scans an identifier: a letter or underscore followed by letters,
// digits and underscores.
func name(c cursor) (string, cursor, *Error) {
	start := c

	r, size := c.peek()
	if size == 0 || !isNameStart(r) {
		return "", start, failAt(c, ErrLexical, "identifier")
	}

	c = c.advance(size)

	for {
		r, size = c.peek()
		if size == 0 || !isNameContinue(r) {
			break
		}

		c = c.advance(size)
	}

	return c.input[start.pos:c.pos], c, nil
}

// quoted scans a single-quoted string and returns its verbatim content.
func quoted(c cursor) (string, cursor, *Error) {
	start := c

	r, size := c.peek()
	if size == 0 || r != quote {
		return "", start, failAt(c, ErrUnexpectedToken, "'")
	}

	c = c.advance(size)

	end := strings.IndexRune(c.input[c.pos:], quote)
	if end < 0 {
		return "", start, failAt(c.advance(len(c.input)), ErrUnterminated, "'")
	}

	text := c.input[c.pos : c.pos+end]

	return text, c.advance(end + 1), nil
}

// bare scans an unquoted token. Whitespace inside the token is kept, but a
// whitespace run followed by a delimiter or the end of input terminates the
// token without being consumed. A backslash takes the next rune literally.
func bare(c cursor) (string, cursor, *Error) {
	start := c

	r, size := c.peek()
	if size == 0 || isDelimiter(r) || isSpace(r) || r == quote {
		return "", start, failAt(c, ErrLexical, "value")
	}

	var sb strings.Builder

	for {
		r, size = c.peek()
		if size == 0 || isDelimiter(r) {
			break
		}

		if isSpace(r) {
			ws, next, _ := spaces(c)

			r, size = next.peek()
			if size == 0 || isDelimiter(r) {
				break
			}

			sb.WriteString(ws)
			c = next

			continue
		}

		if r == escape {
			c = c.advance(size)

			r, size = c.peek()
			if size == 0 {
				return "", start, failAt(c, ErrUnterminated, "escaped character")
			}
		}

		sb.WriteRune(r)
		c = c.advance(size)
	}

	return sb.String(), c, nil
}

// end succeeds only at the end of input.
func end(c cursor) (struct{}, cursor, *Error) {
	if !c.eof() {
		return struct{}{}, c, failAt(c, ErrTrailingInput, "end of input")
	}

	return struct{}{}, c, nil
}

// failAt locates a copy of the sentinel at c. A delimiter or token missing at
// the end of input means the extension was never closed, so those failures
// are reported as unterminated.
func failAt(c cursor, sentinel *Error, expected ...string) *Error {
	if c.eof() && sentinel.kind != KindTrailingInput {
		sentinel = ErrUnterminated
	}

	return sentinel.at(c, expected...)
}
