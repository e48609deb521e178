package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/xmark/tree"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// Output selects how a command renders its result.
type Output struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})."                short:"o"`
	Indent int    `default:"2"                           help:"Indent width for JSON and YAML; 0 is compact." short:"i"`
}

// encode writes v to w as JSON or YAML. Text output is rendered by each
// command itself.
func (o Output) encode(ctx context.Context, w io.Writer, v any) error {
	switch o.Format {
	case formatJSON:
		return formatJSONTo(w, v, o.Indent)

	case formatYAML:
		return formatYAMLTo(ctx, w, v, o.Indent)

	default:
		return ErrFormat.With(slog.String("format", o.Format))
	}
}

func formatJSONTo(w io.Writer, v any, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

func formatYAMLTo(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	_, err = w.Write(data)

	return err
}

// Styles.
var (
	typeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	attrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

func render(s lipgloss.Style) func(string) string {
	return func(text string) string { return s.Render(text) }
}

// treeStyle decorates printed trees for the terminal. lipgloss drops the
// colors when output is not a terminal.
func treeStyle() tree.Style {
	return tree.Style{
		Type:  render(typeStyle),
		Key:   render(keyStyle),
		Attr:  render(attrStyle),
		Value: render(valueStyle),
	}
}
