package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/xmark/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML configuration files.
// Flag values are read from the mapping under the top-level key name:
//
//	config:
//	  log-level: debug
//	  log_format: json
//	  reserved-namespace: urn:example
//
// Flag names may use hyphens or underscores. Numbers are passed to kong as
// strings and sequences as comma-separated lists. A file that does not parse,
// or has no such mapping, configures nothing.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).DecodeContext(ctx, &doc); err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignoring invalid configuration",
					slog.String("section", name),
					slog.Any("error", err))
			}

			return config{}, nil
		}

		section, ok := doc[name].(map[string]any)
		if !ok {
			return config{}, nil
		}

		conf := make(config, len(section))
		for key, val := range section {
			conf[key] = flagInput(val)
		}

		log.TraceContext(ctx, "configuration loaded",
			slog.String("section", name),
			slog.Int("values", len(conf)))

		return conf, nil
	}
}

// flagInput converts a decoded YAML value to a form kong's mappers accept.
func flagInput(val any) any {
	switch v := val.(type) {
	case nil, bool, string:
		return v

	case []any:
		part := make([]string, len(v))
		for i, e := range v {
			part[i] = fmt.Sprint(flagInput(e))
		}

		return strings.Join(part, ",")

	default:
		return fmt.Sprint(v)
	}
}

// config implements [kong.Resolver] for a decoded configuration section.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. Unknown flags resolve to nil so that
// kong falls back to their defaults.
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}
