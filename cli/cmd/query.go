package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/xmark/log"
	"github.com/ardnew/xmark/tree"
)

// Query prints the nodes of a document matching an expr predicate.
//
// The predicate is evaluated once per node, in document order, against the
// fields of [tree.Env].
type Query struct {
	Output `embed:""`

	Predicate string `arg:"" help:"Boolean expr predicate, e.g. 'Type == \"TextBlock\" && HasKey'." name:"predicate"`
	Source    string `arg:"" help:"Source XML file or '-' for stdin."                               name:"source"    default:"-" optional:""`
}

type queryResult struct {
	Path string     `json:"path" yaml:"path"`
	Node *tree.Node `json:"node" yaml:"node"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	query, err := tree.Compile(q.Predicate)
	if err != nil {
		return err
	}

	root, err := loadTree(ctx, q.Source)
	if err != nil {
		return err
	}

	visits, err := query.Select(root)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "query complete",
		slog.String("predicate", query.String()),
		slog.Int("matches", len(visits)),
	)

	w := outputFrom(ctx)

	if q.Format == formatText {
		for _, v := range visits {
			_, err := fmt.Fprintf(w, "%s %s\n",
				pathStyle.Render(v.Path), typeStyle.Render(tree.Label(v.Node)))
			if err != nil {
				return err
			}
		}

		return nil
	}

	results := make([]queryResult, len(visits))
	for i, v := range visits {
		results[i] = queryResult{Path: v.Path, Node: v.Node}
	}

	return q.encode(ctx, w, results)
}
