package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/xmark/ext"
	"github.com/ardnew/xmark/tree"
)

const window = `<Window xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml">
  <TextBlock x:Key="Title" Text="{Binding Path=Name}"/>
  <Button Content="OK"/>
</Window>`

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

// writeSource writes content to a temp XML file and returns its path.
func writeSource(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "source.xml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

// capture returns a context whose commands write to the returned buffer.
func capture(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer

	ctx := WithOutput(context.Background(), &buf)
	ctx = WithBuildOptions(ctx, tree.WithReservedNamespace(tree.DefaultReservedNamespace))

	return ctx, &buf
}

func plain(buf *bytes.Buffer) string {
	return ansi.ReplaceAllString(buf.String(), "")
}

func TestExtRun(t *testing.T) {
	t.Parallel()

	ctx, buf := capture(t)

	e := &Ext{
		Output:      Output{Format: formatText},
		Expressions: []string{"{Binding Path=Name}", "{x:Null}"},
	}

	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}

	want := "{BindingExtension Path=Name}\n{x:NullExtension}\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestExtRun_JSON(t *testing.T) {
	t.Parallel()

	ctx, buf := capture(t)

	e := &Ext{
		Output:      Output{Format: formatJSON},
		Expressions: []string{"{StaticResource Brush}"},
	}

	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf)
	}

	want := map[string]any{
		"extension": "StaticResourceExtension",
		"options":   []any{map[string]any{"positional": "Brush"}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestExtRun_Error(t *testing.T) {
	t.Parallel()

	ctx, _ := capture(t)

	err := (&Ext{
		Output:      Output{Format: formatText},
		Expressions: []string{"{Binding"},
	}).Run(ctx)

	if !errors.Is(err, ErrParse) {
		t.Fatalf("error = %v, want ErrParse", err)
	}

	var perr *ext.Error
	if !errors.As(err, &perr) || perr.Kind() != ext.KindUnterminated {
		t.Errorf("cause = %v, want unterminated extension", err)
	}
}

func TestTreeRun(t *testing.T) {
	t.Parallel()

	ctx, buf := capture(t)

	tr := &Tree{Output: Output{Format: formatText}, Source: writeSource(t, window)}
	if err := tr.Run(ctx); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"Window",
		"  TextBlock #Title",
		"    Text = {BindingExtension Path=Name}",
		"  Button",
		"    Content = OK",
		"",
	}, "\n")

	if diff := cmp.Diff(want, plain(buf)); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestTreeRun_Fingerprint(t *testing.T) {
	t.Parallel()

	ctx, buf := capture(t)

	tr := &Tree{Fingerprint: true, Source: writeSource(t, window)}
	if err := tr.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if !regexp.MustCompile(`^[0-9a-f]{16}\n$`).MatchString(buf.String()) {
		t.Errorf("fingerprint output = %q", buf.String())
	}
}

func TestTreeRun_YAML(t *testing.T) {
	t.Parallel()

	ctx, buf := capture(t)

	tr := &Tree{Output: Output{Format: formatYAML, Indent: 2}, Source: writeSource(t, window)}
	if err := tr.Run(ctx); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"type: Window", "key: Title", "extension: BindingExtension"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf)
		}
	}
}

func TestTreeRun_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source func(t *testing.T) string
		want   error
	}{
		{
			name:   "missing file",
			source: func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.xml") },
			want:   ErrOpenSource,
		},
		{
			name: "bad extension",
			source: func(t *testing.T) string {
				return writeSource(t, `<Root A="{Binding"/>`)
			},
			want: ErrBuild,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, _ := capture(t)

			err := (&Tree{Output: Output{Format: formatText}, Source: tt.source(t)}).Run(ctx)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestQueryRun(t *testing.T) {
	t.Parallel()

	ctx, buf := capture(t)

	q := &Query{
		Output:    Output{Format: formatText},
		Predicate: `HasKey && "BindingExtension" in Extensions`,
		Source:    writeSource(t, window),
	}

	if err := q.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff("/Window/TextBlock[0] TextBlock#Title\n", plain(buf)); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestQueryRun_InvalidPredicate(t *testing.T) {
	t.Parallel()

	ctx, _ := capture(t)

	q := &Query{Output: Output{Format: formatText}, Predicate: "Type +", Source: writeSource(t, window)}
	if err := q.Run(ctx); err == nil {
		t.Error("expected compile error")
	}
}

func TestFindRun(t *testing.T) {
	t.Parallel()

	ctx, buf := capture(t)

	f := &Find{
		Output:  Output{Format: formatJSON, Indent: 0},
		Pattern: "btn",
		Source:  writeSource(t, window),
	}

	if err := f.Run(ctx); err != nil {
		t.Fatal(err)
	}

	var got []findResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf)
	}

	if len(got) != 1 || got[0].Label != "Button" || got[0].Path != "/Window/Button[1]" {
		t.Errorf("results = %+v", got)
	}
}

func TestFindRun_Limit(t *testing.T) {
	t.Parallel()

	ctx, buf := capture(t)

	f := &Find{
		Output:  Output{Format: formatText},
		Limit:   1,
		Pattern: "t",
		Source:  writeSource(t, window),
	}

	if err := f.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("printed %d lines, want 1:\n%s", n, buf)
	}
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	got := ansi.ReplaceAllString(highlight("Button", []int{0, 2, 5}), "")
	if got != "Button" {
		t.Errorf("highlight text = %q", got)
	}
}

func TestOutputEncode_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Output{Format: "xml"}.encode(context.Background(), &bytes.Buffer{}, 1)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("error = %v, want ErrFormat", err)
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := ErrBuild.With(slog.String("source", "a.xml")).Wrap(cause)

	if !errors.Is(err, ErrBuild) {
		t.Error("wrapped error does not match its sentinel")
	}

	if errors.Is(err, ErrParse) {
		t.Error("wrapped error matches another sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("wrapped error does not match its cause")
	}

	if got, want := err.Error(), "build tree: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	attrs := err.LogValue().Group()
	if len(attrs) != 3 || attrs[2].Key != "source" {
		t.Errorf("LogValue() = %v", attrs)
	}
}
