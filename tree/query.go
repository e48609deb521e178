package tree

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/xmark/ext"
)

// Env is the environment a query predicate is evaluated against, once per
// node.
type Env struct {
	Type       string
	Key        string
	HasKey     bool
	Depth      int
	Path       string
	Attrs      map[string]string // first value per name, in canonical syntax
	Extensions []string          // every extension named in attribute values
	Children   int
}

// Query is a compiled boolean node predicate.
type Query struct {
	source  string
	program *vm.Program
}

// Compile compiles an expr-lang predicate such as
//
//	Type == "TextBlock" && HasKey
//	"BindingExtension" in Extensions
//	Attrs.Text startsWith "Hello"
func Compile(predicate string) (*Query, error) {
	program, err := expr.Compile(predicate, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("predicate", predicate))
	}

	return &Query{source: predicate, program: program}, nil
}

// String returns the predicate source.
func (q *Query) String() string { return q.source }

// Match reports whether the predicate holds for v.
func (q *Query) Match(v Visit) (bool, error) {
	out, err := expr.Run(q.program, NewEnv(v))
	if err != nil {
		return false, ErrQuery.Wrap(err).
			With(slog.String("predicate", q.source), slog.String("path", v.Path))
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Select returns the nodes of root, in pre-order, for which the query holds.
func (q *Query) Select(root *Node) ([]Visit, error) {
	var out []Visit

	for v := range root.All() {
		ok, err := q.Match(v)
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, v)
		}
	}

	return out, nil
}

// Select compiles predicate and applies it to root.
func Select(root *Node, predicate string) ([]Visit, error) {
	q, err := Compile(predicate)
	if err != nil {
		return nil, err
	}

	return q.Select(root)
}

// NewEnv returns the query environment for v.
func NewEnv(v Visit) Env {
	n := v.Node
	env := Env{
		Type:     n.Type,
		Key:      n.KeyValue(),
		HasKey:   n.HasKey(),
		Depth:    v.Depth,
		Path:     v.Path,
		Attrs:    make(map[string]string, len(n.Attributes)),
		Children: len(n.Children),
	}

	for _, a := range n.Attributes {
		if _, ok := env.Attrs[a.Name]; !ok {
			env.Attrs[a.Name] = valueText(a.Value)
		}

		if m, ok := a.Value.(*ext.MarkupExtension); ok {
			for e := range m.Walk() {
				env.Extensions = append(env.Extensions, e.Identifier.String())
			}
		}
	}

	return env
}

// valueText returns a literal's text or an extension's canonical syntax.
func valueText(v ext.Value) string {
	switch v := v.(type) {
	case ext.String:
		return v.Text

	case *ext.MarkupExtension:
		return v.String()

	default:
		return ""
	}
}
