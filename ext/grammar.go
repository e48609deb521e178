package ext

// Grammar:
//
//	MarkupExtension := '{' WS* Identifier (WS+ Options)? WS* '}'
//	Identifier      := (Name ':')? Name
//	Options         := Option (WS* ',' WS* Option)*
//	Option          := Assignment | Positional
//	Assignment      := Name WS* '=' WS* Value
//	Positional      := Value
//	Value           := QuotedString | MarkupExtension | BareToken
//
// Rules are plain functions so that Value and MarkupExtension may refer to
// each other without an initialization cycle.

// identifier parses an optionally prefixed name without normalizing it.
func identifier(c cursor) (Identifier, cursor, *Error) {
	prefixed := func(c cursor) (Identifier, cursor, *Error) {
		prefix, next, err := skip(name, char(':'))(c)
		if err != nil {
			return Identifier{}, c, err
		}

		local, next, err := name(next)
		if err != nil {
			return Identifier{}, c, err
		}

		return Identifier{Prefix: prefix, Name: local}, next, nil
	}

	unprefixed := mapTo(name, func(s string) Identifier {
		return Identifier{Name: s}
	})

	return or(prefixed, unprefixed)(c)
}

// extension parses a complete, possibly nested, markup extension.
func extension(c cursor) (*MarkupExtension, cursor, *Error) {
	start := c

	_, c, err := then(char('{'), spaces)(c)
	if err != nil {
		return nil, start, err
	}

	id, c, err := identifier(c)
	if err != nil {
		return nil, start, err
	}

	var (
		opts   Options
		optErr *Error
	)

	if _, next, wsErr := spaces1(c); wsErr == nil {
		var after cursor

		if opts, after, optErr = options(next); optErr == nil {
			c = after
		}
	}

	_, c, _ = spaces(c)

	_, c, err = char('}')(c)
	if err != nil {
		if len(opts) > 0 {
			err = furthest(err, failAt(c, ErrUnexpectedToken, ","))
		}

		return nil, start, furthest(err, optErr)
	}

	return &MarkupExtension{Identifier: id.Normalize(), Options: opts}, c, nil
}

// options parses a comma-separated argument list.
func options(c cursor) (Options, cursor, *Error) {
	return delimitedBy(option, token(char(',')))(c)
}

// option parses a single argument, preferring an assignment. Once "name ="
// has been read the argument is an assignment and its failure is final.
func option(c cursor) (Option, cursor, *Error) {
	prop, next, err := assignment(c)
	if err == nil {
		return prop, next, nil
	}

	if _, _, committed := skip(name, token(char('=')))(c); committed == nil {
		return nil, c, err
	}

	pos, next, perr := positional(c)
	if perr != nil {
		return nil, c, furthest(err, perr)
	}

	return pos, next, nil
}

// assignment parses name=value.
func assignment(c cursor) (Property, cursor, *Error) {
	key, next, err := skip(name, token(char('=')))(c)
	if err != nil {
		return Property{}, c, err
	}

	v, next, err := value(next)
	if err != nil {
		return Property{}, c, err
	}

	return Property{Name: key, Value: v}, next, nil
}

// positional parses an unnamed argument.
func positional(c cursor) (Positional, cursor, *Error) {
	return mapTo(value, func(v Value) Positional {
		return Positional{Value: v}
	})(c)
}

// value parses a quoted string, a nested extension, or a bare token, in that
// order.
func value(c cursor) (Value, cursor, *Error) {
	text := func(s string) Value { return String{Text: s} }

	return or(
		mapTo(quoted, text),
		mapTo(extension, func(m *MarkupExtension) Value { return m }),
		mapTo(bare, text),
	)(c)
}
