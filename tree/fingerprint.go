package tree

import (
	"encoding/binary"
	"io"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/xmark/ext"
)

// Fingerprint returns a 64-bit structural hash of the tree rooted at n.
// Trees that are Equal have equal fingerprints.
func (n *Node) Fingerprint() uint64 {
	h := xxh3.New()
	writeNode(h, n)

	return h.Sum64()
}

// Record tags for the canonical encoding.
const (
	tagNode      = 'N'
	tagNil       = '0'
	tagKey       = 'K'
	tagString    = 'S'
	tagExtension = 'E'
	tagPos       = 'P'
	tagProp      = 'A'
)

func writeNode(w io.Writer, n *Node) {
	if n == nil {
		writeTag(w, tagNil)

		return
	}

	writeTag(w, tagNode)
	writeString(w, n.Type)

	if n.Key != nil {
		writeTag(w, tagKey)
		writeString(w, *n.Key)
	}

	writeLen(w, len(n.Attributes))

	for _, a := range n.Attributes {
		writeString(w, a.Name)
		writeValue(w, a.Value)
	}

	writeLen(w, len(n.Children))

	for _, c := range n.Children {
		writeNode(w, c)
	}
}

func writeValue(w io.Writer, v ext.Value) {
	switch v := v.(type) {
	case ext.String:
		writeTag(w, tagString)
		writeString(w, v.Text)

	case *ext.MarkupExtension:
		if v == nil {
			writeTag(w, tagNil)

			return
		}

		writeTag(w, tagExtension)
		writeString(w, v.Identifier.Prefix)
		writeString(w, v.Identifier.Name)
		writeLen(w, len(v.Options))

		for _, opt := range v.Options {
			switch o := opt.(type) {
			case ext.Positional:
				writeTag(w, tagPos)
				writeValue(w, o.Value)

			case ext.Property:
				writeTag(w, tagProp)
				writeString(w, o.Name)
				writeValue(w, o.Value)
			}
		}

	default:
		writeTag(w, tagNil)
	}
}

func writeTag(w io.Writer, tag byte) { _, _ = w.Write([]byte{tag}) }

func writeLen(w io.Writer, n int) {
	_, _ = w.Write(binary.AppendUvarint(nil, uint64(n)))
}

func writeString(w io.Writer, s string) {
	writeLen(w, len(s))
	_, _ = io.WriteString(w, s)
}
