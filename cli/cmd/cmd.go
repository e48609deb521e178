package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/xmark/log"
	"github.com/ardnew/xmark/tree"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	buildOptionsKey struct{}
	outputKey       struct{}
)

// WithBuildOptions returns a new context.Context carrying the options used
// by every command that builds a construction tree.
func WithBuildOptions(ctx context.Context, opts ...tree.Option) context.Context {
	return context.WithValue(ctx, buildOptionsKey{}, opts)
}

func buildOptionsFrom(ctx context.Context) []tree.Option {
	opts, _ := ctx.Value(buildOptionsKey{}).([]tree.Option)

	return opts
}

// WithOutput returns a new context.Context whose commands write to w instead
// of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens path for reading. An empty path or "-" reads stdin.
func openSource(path string) (io.ReadCloser, error) {
	if path == "" || path == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenSource.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return file, nil
}

// loadTree reads the XML document at source and builds its construction
// tree with the options carried by ctx.
func loadTree(ctx context.Context, source string) (*tree.Node, error) {
	r, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	root, err := tree.ParseReader(ctx, r, buildOptionsFrom(ctx)...)
	if err != nil {
		return nil, ErrBuild.
			With(slog.String("source", source)).
			Wrap(err)
	}

	log.TraceContext(ctx, "tree loaded",
		slog.String("source", source),
		slog.String("root", root.Type),
		slog.Int("children", len(root.Children)),
	)

	return root, nil
}
