package ext

import "encoding/json"

type (
	extensionDoc struct {
		Extension string `json:"extension"         yaml:"extension"`
		Options   []any  `json:"options,omitempty" yaml:"options,omitempty"`
	}

	positionalDoc struct {
		Positional any `json:"positional" yaml:"positional"`
	}

	propertyDoc struct {
		Property string `json:"property" yaml:"property"`
		Value    any    `json:"value"    yaml:"value"`
	}
)

// ToNative converts v to plain Go values suitable for JSON or YAML encoding.
// Strings stay strings; extensions become ordered documents of the form
// {extension, options: [{positional} | {property, value}]}.
func ToNative(v Value) any {
	switch v := v.(type) {
	case String:
		return v.Text

	case *MarkupExtension:
		if v == nil {
			return nil
		}

		doc := extensionDoc{Extension: v.Identifier.String()}

		for _, opt := range v.Options {
			switch o := opt.(type) {
			case Positional:
				doc.Options = append(doc.Options,
					positionalDoc{Positional: ToNative(o.Value)})

			case Property:
				doc.Options = append(doc.Options,
					propertyDoc{Property: o.Name, Value: ToNative(o.Value)})
			}
		}

		return doc

	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (m *MarkupExtension) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToNative(m))
}

// MarshalYAML implements the goccy/go-yaml InterfaceMarshaler.
func (m *MarkupExtension) MarshalYAML() (any, error) {
	return ToNative(m), nil
}
