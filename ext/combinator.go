package ext

// parser is a grammar rule: given a cursor it returns the recognized value and
// the advanced cursor, or a failure. On failure the returned cursor is the one
// it was given.
type parser[T any] func(cursor) (T, cursor, *Error)

// or tries each alternative in order from the same cursor and returns the
// first success. When every alternative fails, the failure that got furthest
// into the input is reported.
func or[T any](alts ...parser[T]) parser[T] {
	return func(c cursor) (T, cursor, *Error) {
		var failure *Error

		for _, alt := range alts {
			v, next, err := alt(c)
			if err == nil {
				return v, next, nil
			}

			failure = furthest(failure, err)
		}

		var zero T

		return zero, c, failure
	}
}

// mapTo transforms the result of p with f.
func mapTo[A, B any](p parser[A], f func(A) B) parser[B] {
	return func(c cursor) (B, cursor, *Error) {
		a, next, err := p(c)
		if err != nil {
			var zero B

			return zero, c, err
		}

		return f(a), next, nil
	}
}

// then runs p followed by q and keeps the result of q.
func then[A, B any](p parser[A], q parser[B]) parser[B] {
	return func(c cursor) (B, cursor, *Error) {
		var zero B

		_, next, err := p(c)
		if err != nil {
			return zero, c, err
		}

		b, next, err := q(next)
		if err != nil {
			return zero, c, err
		}

		return b, next, nil
	}
}

// skip runs p followed by q and keeps the result of p.
func skip[A, B any](p parser[A], q parser[B]) parser[A] {
	return func(c cursor) (A, cursor, *Error) {
		var zero A

		a, next, err := p(c)
		if err != nil {
			return zero, c, err
		}

		_, next, err = q(next)
		if err != nil {
			return zero, c, err
		}

		return a, next, nil
	}
}

// delimitedBy applies p one or more times separated by sep. Once a separator
// has been consumed another p is required.
func delimitedBy[T, S any](p parser[T], sep parser[S]) parser[[]T] {
	return func(c cursor) ([]T, cursor, *Error) {
		first, next, err := p(c)
		if err != nil {
			return nil, c, err
		}

		out := []T{first}

		for {
			_, afterSep, err := sep(next)
			if err != nil {
				return out, next, nil
			}

			v, afterItem, err := p(afterSep)
			if err != nil {
				return nil, c, err
			}

			out = append(out, v)
			next = afterItem
		}
	}
}

// token surrounds p with optional whitespace.
func token[T any](p parser[T]) parser[T] {
	return then(spaces, skip(p, spaces))
}

// all requires p to consume the whole input.
func all[T any](p parser[T]) parser[T] {
	return skip(p, end)
}

// run applies p to the complete input.
func run[T any](p parser[T], input string) (T, error) {
	v, _, err := all(p)(newCursor(input))
	if err != nil {
		var zero T

		return zero, err
	}

	return v, nil
}
