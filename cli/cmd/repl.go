package cmd

import (
	"context"
	"io"
	"os"

	"github.com/ardnew/xmark/cli/cmd/repl"
	"github.com/ardnew/xmark/log"
)

// Repl starts an interactive markup extension parser.
type Repl struct {
	Source string `arg:"" help:"Optional XML document providing extension names for completion, or '-' for stdin." name:"source" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache directory undefined")
	}

	var source io.Reader

	switch r.Source {
	case "":
		// completion uses the built-in extension names only

	case stdinSource:
		source = os.Stdin

	default:
		rc, err := openSource(r.Source)
		if err != nil {
			return err
		}
		defer rc.Close()

		source = rc
	}

	return repl.Run(ctx, source, cacheDir, log.Default(), buildOptionsFrom(ctx)...)
}
