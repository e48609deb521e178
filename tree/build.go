package tree

import (
	"context"
	"log/slog"

	"github.com/ardnew/xmark/ext"
	"github.com/ardnew/xmark/log"
)

// DefaultReservedNamespace is the namespace whose Key attribute names a node.
const DefaultReservedNamespace = "http://schemas.microsoft.com/winfx/2006/xaml"

// KeyAttribute is the local name of the reserved key attribute.
const KeyAttribute = "Key"

// Builder converts element trees into construction trees.
// A Builder is immutable and safe for concurrent use.
type Builder struct {
	reserved string
	logger   log.Logger
}

// Option configures a [Builder].
type Option func(*Builder)

// WithReservedNamespace sets the namespace URI of the Key attribute.
func WithReservedNamespace(uri string) Option {
	return func(b *Builder) {
		b.reserved = uri
	}
}

// WithLogger sets the logger used to trace construction.
func WithLogger(logger log.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder returns a Builder with the given options applied.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{reserved: DefaultReservedNamespace}

	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	return b
}

// ReservedNamespace returns the namespace URI of the Key attribute.
func (b *Builder) ReservedNamespace() string { return b.reserved }

// Build converts el and its descendants using a Builder configured by opts.
func Build(ctx context.Context, el *Element, opts ...Option) (*Node, error) {
	return NewBuilder(opts...).Build(ctx, el)
}

// Build converts el and its descendants into a construction tree.
//
// Namespace declarations are skipped. The reserved Key attribute becomes
// [Node.Key]. Every other attribute is dispatched and stored under its local
// name in source order. A keyed element may not carry another attribute whose
// local name is [KeyAttribute]; that fails with [ErrKeyConflict]. The first
// attribute that fails aborts the build with an [*AttributeError] and no tree
// is returned.
func (b *Builder) Build(ctx context.Context, el *Element) (*Node, error) {
	if el == nil {
		return nil, ErrNoElement
	}

	n, err := b.build(ctx, el, "/"+el.Name.Local)
	if err != nil {
		b.logger.DebugContext(ctx, "build failed", slog.Any("error", err))

		return nil, err
	}

	return n, nil
}

func (b *Builder) build(ctx context.Context, el *Element, path string) (*Node, error) {
	n := &Node{Type: el.Name.Local, Key: b.key(el)}

	opts := []ext.ParseOption{ext.WithLogger(b.logger)}

	for _, attr := range el.Attrs {
		switch {
		case attr.isNamespaceDecl(), b.isKey(attr):
			continue

		case n.Key != nil && attr.Name.Local == KeyAttribute:
			return nil, &AttributeError{
				Path:      path,
				Attribute: attr.Name.String(),
				Value:     attr.Value,
				Err:       ErrKeyConflict,
			}
		}

		v, err := dispatch(ctx, attr.Name.Local, attr.Value, opts...)
		if err != nil {
			if aerr, ok := err.(*AttributeError); ok {
				aerr.Path = path
			}

			return nil, err
		}

		n.Attributes = append(n.Attributes, Attribute{
			Name:  attr.Name.Local,
			Value: v,
		})
	}

	b.logger.TraceContext(ctx, "element",
		slog.String("path", path),
		slog.Int("attributes", len(n.Attributes)),
		slog.Bool("keyed", n.Key != nil))

	if len(el.Children) > 0 {
		n.Children = make([]*Node, 0, len(el.Children))
	}

	for _, child := range el.Children {
		if child == nil {
			continue
		}

		c, err := b.build(ctx, child,
			childPath(path, child.Name.Local, len(n.Children)))
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, c)
	}

	return n, nil
}

func (b *Builder) isKey(attr Attr) bool {
	return attr.Name.Space == b.reserved && attr.Name.Local == KeyAttribute
}

// key returns the value of the last reserved Key attribute of el, or nil.
func (b *Builder) key(el *Element) *string {
	var key *string

	for _, attr := range el.Attrs {
		if b.isKey(attr) {
			v := attr.Value
			key = &v
		}
	}

	return key
}
