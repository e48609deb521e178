package tree

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"
)

// Decode reads one XML document from r and returns its root element.
//
// Names are namespace-resolved: an attribute written x:Key with
// xmlns:x="uri" arrives as Name{Space: "uri", Local: "Key"}. Namespace
// declarations are kept as attributes for the builder to skip. Character
// data, comments, processing instructions and directives are ignored.
func Decode(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)
	d.Strict = true

	var (
		root  *Element
		stack []*Element
	)

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, ErrDecode.Wrap(err).
				With(slog.Int64("offset", d.InputOffset()))
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: Name{Space: t.Name.Space, Local: t.Name.Local}}

			if len(t.Attr) > 0 {
				el.Attrs = make([]Attr, len(t.Attr))

				for i, a := range t.Attr {
					el.Attrs[i] = NewAttr(a.Name.Space, a.Name.Local, a.Value)
				}
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, ErrDecode.
						Wrap(errors.New("multiple root elements")).
						With(slog.Int64("offset", d.InputOffset()))
				}

				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}

			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, ErrNoElement
	}

	return root, nil
}

// ParseReader decodes an XML document from r and builds its construction
// tree. The reader is consumed through an asynchronous read-ahead buffer.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Node, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	b := NewBuilder(opts...)

	el, err := Decode(ra)
	if err != nil {
		b.logger.DebugContext(ctx, "decode failed", slog.Any("error", err))

		return nil, err
	}

	return b.Build(ctx, el)
}
