package tree

import (
	"iter"
	"slices"
	"strconv"

	"github.com/ardnew/xmark/ext"
)

// Attribute is a named, dispatched attribute value of a construction node.
type Attribute struct {
	Name  string
	Value ext.Value
}

// Equal reports whether both attributes have the same name and equal values.
func (a Attribute) Equal(other Attribute) bool {
	if a.Name != other.Name {
		return false
	}

	if a.Value == nil || other.Value == nil {
		return a.Value == nil && other.Value == nil
	}

	return a.Value.Equal(other.Value)
}

// Attributes holds a node's attributes in source order. Names are not
// deduplicated.
type Attributes []Attribute

// Get returns the value of the first attribute named name.
func (a Attributes) Get(name string) (ext.Value, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}

	return nil, false
}

// Names returns the attribute names in order.
func (a Attributes) Names() []string {
	names := make([]string, len(a))

	for i, attr := range a {
		names[i] = attr.Name
	}

	return names
}

// Equal reports whether both hold equal attributes in the same order.
func (a Attributes) Equal(other Attributes) bool {
	return slices.EqualFunc(a, other, Attribute.Equal)
}

// Node is one element of the construction tree.
//
// Key holds the value of the reserved-namespace Key attribute, which is then
// absent from Attributes. Nodes are not modified after Build returns them.
type Node struct {
	Type       string
	Key        *string
	Attributes Attributes
	Children   []*Node
}

// HasKey reports whether the node carries a key.
func (n *Node) HasKey() bool { return n != nil && n.Key != nil }

// KeyValue returns the key, or "" if the node has none.
func (n *Node) KeyValue() string {
	if !n.HasKey() {
		return ""
	}

	return *n.Key
}

// Equal reports deep, ordered structural equality.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}

	if n.Type != other.Type || n.HasKey() != other.HasKey() ||
		n.KeyValue() != other.KeyValue() {
		return false
	}

	return n.Attributes.Equal(other.Attributes) &&
		slices.EqualFunc(n.Children, other.Children, (*Node).Equal)
}

// Visit describes a node reached while walking a tree.
type Visit struct {
	Node  *Node
	Path  string
	Depth int
}

// All returns an iterator over n and its descendants in pre-order.
func (n *Node) All() iter.Seq[Visit] {
	return func(yield func(Visit) bool) {
		if n != nil {
			visit(n, "/"+n.Type, 0, yield)
		}
	}
}

func visit(n *Node, path string, depth int, yield func(Visit) bool) bool {
	if !yield(Visit{Node: n, Path: path, Depth: depth}) {
		return false
	}

	for i, child := range n.Children {
		if !visit(child, childPath(path, child.Type, i), depth+1, yield) {
			return false
		}
	}

	return true
}

// childPath returns the path of the i'th child (zero-based) named typ.
func childPath(parent, typ string, i int) string {
	return parent + "/" + typ + "[" + strconv.Itoa(i) + "]"
}
