package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/xmark/log"
	"github.com/ardnew/xmark/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, configDocument(ktx),
		yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrYAMLMarshal.Wrap(err))
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// configDocument returns the configuration file contents for the current flag
// values: a single ConfigIdentifier section mapping flag names to values, in
// model order. Help, version and profiling flags are left out.
func configDocument(ktx *kong.Context) yaml.MapSlice {
	var section yaml.MapSlice

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val, ok := flagValue(ktx.FlagValue(flag)); ok {
			section = append(section, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return yaml.MapSlice{{Key: ConfigIdentifier, Value: section}}
}

// flagValue converts a parsed flag value to a YAML scalar or sequence.
// Empty strings and empty slices report false.
func flagValue(val any) (any, bool) {
	switch v := val.(type) {
	case nil:
		return nil, false

	case bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, true

	case string:
		return v, v != ""

	case []string:
		return v, len(v) > 0

	case []int:
		return v, len(v) > 0

	case []bool:
		return v, len(v) > 0

	case fmt.Stringer:
		return v.String(), true

	default:
		s := fmt.Sprint(v)

		return s, s != ""
	}
}
