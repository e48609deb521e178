package tree

import (
	"bufio"
	"io"
	"strings"
)

// Style decorates the parts of a printed tree. Nil functions leave their
// part unchanged.
type Style struct {
	Type  func(string) string
	Key   func(string) string
	Attr  func(string) string
	Value func(string) string
}

func apply(f func(string) string, s string) string {
	if f == nil {
		return s
	}

	return f(s)
}

const indent = "  "

// Print writes an indented text rendering of the tree to w:
//
//	ResourceDictionary
//	  TextBlock #MyKey
//	    Text = {BindingExtension Name}
func (n *Node) Print(w io.Writer) error {
	return Fprint(w, n, Style{})
}

// String returns the text rendering of the tree.
func (n *Node) String() string {
	var sb strings.Builder

	_ = n.Print(&sb)

	return sb.String()
}

// Fprint writes the text rendering of n to w, decorated by style.
func Fprint(w io.Writer, n *Node, style Style) error {
	bw := bufio.NewWriter(w)

	if n != nil {
		fprint(bw, n, style, 0)
	}

	return bw.Flush()
}

func fprint(w *bufio.Writer, n *Node, style Style, depth int) {
	pad := strings.Repeat(indent, depth)

	_, _ = w.WriteString(pad)
	_, _ = w.WriteString(apply(style.Type, n.Type))

	if n.Key != nil {
		_, _ = w.WriteString(" ")
		_, _ = w.WriteString(apply(style.Key, "#"+*n.Key))
	}

	_ = w.WriteByte('\n')

	for _, a := range n.Attributes {
		_, _ = w.WriteString(pad + indent)
		_, _ = w.WriteString(apply(style.Attr, a.Name))
		_, _ = w.WriteString(" = ")
		_, _ = w.WriteString(apply(style.Value, valueText(a.Value)))
		_ = w.WriteByte('\n')
	}

	for _, c := range n.Children {
		fprint(w, c, style, depth+1)
	}
}
