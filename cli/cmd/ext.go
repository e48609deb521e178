package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/xmark/ext"
	"github.com/ardnew/xmark/log"
)

// Ext parses markup extension expressions given on the command line.
type Ext struct {
	Output `embed:""`

	Expressions []string `arg:"" help:"Markup extension expression, e.g. '{Binding Path=Name}'." name:"expression"`
}

// Run executes the ext command.
func (e *Ext) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	parsed := make([]*ext.MarkupExtension, 0, len(e.Expressions))

	for _, s := range e.Expressions {
		m, err := ext.ParseString(ctx, s, ext.WithLogger(log.Default()))
		if err != nil {
			return ErrParse.
				With(slog.String("expression", s)).
				Wrap(err)
		}

		parsed = append(parsed, m)
	}

	w := outputFrom(ctx)

	if e.Format == formatText {
		for _, m := range parsed {
			if _, err := fmt.Fprintln(w, m); err != nil {
				return err
			}
		}

		return nil
	}

	if len(parsed) == 1 {
		return e.encode(ctx, w, ext.ToNative(parsed[0]))
	}

	docs := make([]any, len(parsed))
	for i, m := range parsed {
		docs[i] = ext.ToNative(m)
	}

	return e.encode(ctx, w, docs)
}
