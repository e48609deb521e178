package ext

import (
	"context"
	"log/slog"

	"github.com/ardnew/xmark/log"
)

// ParseOption configures ParseString.
type ParseOption func(*parseConfig)

type parseConfig struct {
	logger log.Logger
}

// WithLogger sets the logger used to trace parse results.
func WithLogger(logger log.Logger) ParseOption {
	return func(c *parseConfig) {
		c.logger = logger
	}
}

// ParseString parses a complete markup extension expression such as
// "{Binding Path=Name, Mode=TwoWay}". The whole input must be consumed.
//
// Extension names are normalized with [NormalizeName].
// Errors are of type [*Error].
func ParseString(
	ctx context.Context,
	s string,
	opts ...ParseOption,
) (*MarkupExtension, error) {
	var cfg parseConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	m, err := run(extension, s)
	if err != nil {
		cfg.logger.TraceContext(ctx, "parse extension failed",
			slog.String("input", s),
			slog.Any("error", err))

		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse extension",
		slog.String("identifier", m.Identifier.String()),
		slog.Int("option_count", len(m.Options)))

	return m, nil
}

// ParseIdentifier parses an optionally prefixed identifier. The name is
// returned exactly as written.
func ParseIdentifier(s string) (Identifier, error) {
	return run(identifier, s)
}

// ParseAssignment parses a single name=value argument.
func ParseAssignment(s string) (Property, error) {
	return run(assignment, s)
}

// ParsePositional parses a single unnamed argument.
func ParsePositional(s string) (Positional, error) {
	return run(positional, s)
}

// ParseOptions parses a comma-separated argument list.
func ParseOptions(s string) (Options, error) {
	return run(options, s)
}
