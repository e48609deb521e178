package tree

import (
	"encoding/json"

	"github.com/ardnew/xmark/ext"
)

type (
	nodeDoc struct {
		Type       string         `json:"type"                 yaml:"type"`
		Key        *string        `json:"key,omitempty"        yaml:"key,omitempty"`
		Attributes []attributeDoc `json:"attributes,omitempty" yaml:"attributes,omitempty"`
		Children   []nodeDoc      `json:"children,omitempty"   yaml:"children,omitempty"`
	}

	attributeDoc struct {
		Name  string `json:"name"  yaml:"name"`
		Value any    `json:"value" yaml:"value"`
	}
)

// ToNative converts the tree rooted at n to plain Go values suitable for
// JSON or YAML encoding. Attributes and children keep their order.
func ToNative(n *Node) any {
	if n == nil {
		return nil
	}

	return toDoc(n)
}

func toDoc(n *Node) nodeDoc {
	doc := nodeDoc{Type: n.Type, Key: n.Key}

	for _, a := range n.Attributes {
		doc.Attributes = append(doc.Attributes, attributeDoc{
			Name:  a.Name,
			Value: ext.ToNative(a.Value),
		})
	}

	for _, c := range n.Children {
		if c != nil {
			doc.Children = append(doc.Children, toDoc(c))
		}
	}

	return doc
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToNative(n))
}

// MarshalYAML implements the goccy/go-yaml InterfaceMarshaler.
func (n *Node) MarshalYAML() (any, error) {
	return ToNative(n), nil
}
