// Package ext parses markup extension expressions: the curly-brace
// mini-language embedded in markup attribute values.
//
// # Grammar
//
// Informal EBNF:
//
//	MarkupExtension → '{' WS* Identifier (WS+ Options)? WS* '}'
//	Identifier      → (Name ':')? Name
//	Options         → Option (WS* ',' WS* Option)*
//	Option          → Assignment | Positional
//	Assignment      → Name WS* '=' WS* Value
//	Positional      → Value
//	Value           → QuotedString | MarkupExtension | BareToken
//
// A QuotedString is delimited by single quotes and taken verbatim. A
// BareToken runs until ',', '=', '{', '}' or a whitespace run followed by
// one of those; a backslash takes the next character literally.
//
// # Example
//
//	{Binding Width, RelativeSource={RelativeSource FindAncestor, AncestorType={x:Type Grid}}}
//
// parses to a [MarkupExtension] named "BindingExtension" with a positional
// "Width" and a property "RelativeSource" whose value is itself a
// [MarkupExtension]. Extension names are normalized by [NormalizeName];
// resolving them to types is left to the caller.
//
// # Parsers
//
// Rules are built from small parser values (functions from a cursor to a
// result and an advanced cursor) composed with a handful of combinators.
// Alternation is ordered and backtracks; the reported failure is the one that
// got furthest into the input. Parsing keeps no state between calls and is
// safe for concurrent use.
package ext
