package ext

import (
	"iter"
	"slices"
	"strings"
)

// Suffix is appended to extension names that do not already carry it.
const Suffix = "Extension"

// NormalizeName applies the extension naming convention to name.
// It is idempotent.
func NormalizeName(name string) string {
	if strings.HasSuffix(name, Suffix) {
		return name
	}

	return name + Suffix
}

// Identifier names an extension, optionally qualified by a namespace prefix.
type Identifier struct {
	Prefix string
	Name   string
}

// NewIdentifier returns an unprefixed Identifier with a normalized name.
func NewIdentifier(name string) Identifier {
	return Identifier{Name: NormalizeName(name)}
}

// NewPrefixedIdentifier returns a prefixed Identifier with a normalized name.
func NewPrefixedIdentifier(prefix, name string) Identifier {
	return Identifier{Prefix: prefix, Name: NormalizeName(name)}
}

// Normalize returns the identifier with its name normalized.
func (id Identifier) Normalize() Identifier {
	id.Name = NormalizeName(id.Name)

	return id
}

// Equal reports whether both identifiers have the same prefix and name.
func (id Identifier) Equal(other Identifier) bool {
	return id == other
}

// Value is the value of an option or attribute: either a [String] or a nested
// [*MarkupExtension].
type Value interface {
	Equal(other Value) bool
	String() string
	value()
}

// String is a literal scalar value.
type String struct {
	Text string
}

func (String) value() {}

// Equal reports whether other is a String with the same text.
func (s String) Equal(other Value) bool {
	o, ok := other.(String)

	return ok && o.Text == s.Text
}

// MarkupExtension is one parsed extension expression.
type MarkupExtension struct {
	Identifier Identifier
	Options    Options
}

// NewMarkupExtension returns an extension named by id with the given options.
func NewMarkupExtension(id Identifier, opts ...Option) *MarkupExtension {
	return &MarkupExtension{Identifier: id, Options: opts}
}

func (*MarkupExtension) value() {}

// Equal reports whether other is a MarkupExtension with an equal identifier
// and element-wise equal options.
func (m *MarkupExtension) Equal(other Value) bool {
	o, ok := other.(*MarkupExtension)
	if !ok {
		return false
	}

	if m == nil || o == nil {
		return m == o
	}

	return m.Identifier.Equal(o.Identifier) && m.Options.Equal(o.Options)
}

// Walk returns an iterator over m and every extension nested in its option
// values, depth first in source order.
func (m *MarkupExtension) Walk() iter.Seq[*MarkupExtension] {
	return func(yield func(*MarkupExtension) bool) {
		walk(m, yield)
	}
}

func walk(m *MarkupExtension, yield func(*MarkupExtension) bool) bool {
	if m == nil {
		return true
	}

	if !yield(m) {
		return false
	}

	for _, opt := range m.Options {
		var v Value

		switch o := opt.(type) {
		case Positional:
			v = o.Value

		case Property:
			v = o.Value
		}

		if nested, ok := v.(*MarkupExtension); ok {
			if !walk(nested, yield) {
				return false
			}
		}
	}

	return true
}

// Option is an argument of an extension: either a [Positional] or a
// [Property].
type Option interface {
	Equal(other Option) bool
	String() string
	option()
}

// Positional is an unnamed argument, significant by position.
type Positional struct {
	Value Value
}

// NewPositional returns a Positional holding a literal string.
func NewPositional(text string) Positional {
	return Positional{Value: String{Text: text}}
}

func (Positional) option() {}

// Equal reports whether other is a Positional with an equal value.
func (p Positional) Equal(other Option) bool {
	o, ok := other.(Positional)

	return ok && valuesEqual(p.Value, o.Value)
}

// Property is a named argument.
type Property struct {
	Name  string
	Value Value
}

// NewProperty returns a Property named name holding v.
func NewProperty(name string, v Value) Property {
	return Property{Name: name, Value: v}
}

func (Property) option() {}

// Equal reports whether other is a Property with the same name and an equal
// value.
func (p Property) Equal(other Option) bool {
	o, ok := other.(Property)

	return ok && o.Name == p.Name && valuesEqual(p.Value, o.Value)
}

// Options is the ordered argument list of an extension.
type Options []Option

// Equal reports whether both collections hold equal options in the same
// order.
func (opts Options) Equal(other Options) bool {
	return slices.EqualFunc(opts, other, func(a, b Option) bool {
		if a == nil || b == nil {
			return a == b
		}

		return a.Equal(b)
	})
}

// Positionals returns the positional options in order.
func (opts Options) Positionals() []Positional {
	var out []Positional

	for _, opt := range opts {
		if p, ok := opt.(Positional); ok {
			out = append(out, p)
		}
	}

	return out
}

// Property returns the value of the first property named name.
func (opts Options) Property(name string) (Value, bool) {
	for _, opt := range opts {
		if p, ok := opt.(Property); ok && p.Name == name {
			return p.Value, true
		}
	}

	return nil, false
}

func valuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.Equal(b)
}
