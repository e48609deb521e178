package repl

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sahilm/fuzzy"
)

const testDocument = `<Window xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml">
  <TextBlock Text="{Binding Path=Name, Mode=OneWay}" Tag="{Localize Key=Greeting}"/>
  <TextBlock Text="{Binding Source={StaticResource Data}, Path=Title}"/>
</Window>`

func loadTestDocument(t *testing.T) *document {
	t.Helper()

	doc, err := loadDocument(t.Context(), []byte(testDocument))
	if err != nil {
		t.Fatal(err)
	}

	return doc
}

func TestNewCatalog(t *testing.T) {
	c := newCatalog(loadTestDocument(t).root)

	for _, name := range []string{"Binding", "Localize", "StaticResource", "x:Type"} {
		if !contains(c.names, name) {
			t.Errorf("catalog missing %q: %v", name, c.names)
		}
	}

	if diff := cmp.Diff([]string{"Path", "Mode", "Source"}, c.properties("Binding")); diff != "" {
		t.Errorf("Binding properties (-want +got):\n%s", diff)
	}

	// Lookups accept either spelling of the name.
	if diff := cmp.Diff([]string{"Key"}, c.properties("LocalizeExtension")); diff != "" {
		t.Errorf("Localize properties (-want +got):\n%s", diff)
	}

	if got := c.properties("not an identifier"); got != nil {
		t.Errorf("expected no properties, got %v", got)
	}
}

func TestNewCatalog_NoDocument(t *testing.T) {
	c := newCatalog(nil)

	if len(c.names) != len(builtinExtensions) {
		t.Errorf("names = %v", c.names)
	}

	if !slicesSorted(c.names) {
		t.Errorf("names not sorted: %v", c.names)
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}

func slicesSorted(names []string) bool {
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			return false
		}
	}

	return true
}

func TestDetectExtension(t *testing.T) {
	tests := []struct {
		input        string
		ok           bool
		name         string
		inArgs       bool
		wantAssigned []string
	}{
		{"plain", false, "", false, nil},
		{"{Bind", true, "Bind", false, nil},
		{"{Binding Pa", true, "Binding", true, nil},
		{"{Binding Path=Name, Mode=OneWay, So", true, "Binding", true, []string{"Path", "Mode"}},
		{"{Binding Path={x:Type Gr", true, "x:Type", true, nil},
		{"{Binding Path={x:Type Grid}, Mo", true, "Binding", true, []string{"Path"}},
		{"{Binding '{' , Mo", true, "Binding", true, nil},
		{`{Binding a\{, Mo`, true, "Binding", true, nil},
		{"{Binding}", false, "", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			call, ok := detectExtension(tt.input, len(tt.input))
			if ok != tt.ok || call.name != tt.name || call.inArgs != tt.inArgs {
				t.Errorf("detectExtension(%q) = %+v, %v", tt.input, call, ok)
			}

			if diff := cmp.Diff(tt.wantAssigned, call.assigned()); diff != "" {
				t.Errorf("assigned (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShortName(t *testing.T) {
	c := newCatalog(nil)

	for _, name := range c.names {
		if strings.HasSuffix(name, "Extension") {
			t.Errorf("name %q keeps the suffix", name)
		}
	}
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		input  string
		format string
		want   string
	}{
		{"{Binding Path=Name}", formatText, "{BindingExtension Path=Name}"},
		{"{x:Type Grid }", formatText, "{x:TypeExtension Grid}"},
		{"Hello", formatText, `literal "Hello"`},
		{"{}{Binding}", formatText, `literal "{Binding}"`},
		{"{Null}", formatJSON, `"extension": "NullExtension"`},
		{"{A B}", formatYAML, "positional: B"},
	}

	for _, tt := range tests {
		t.Run(tt.format+" "+tt.input, func(t *testing.T) {
			got, err := evaluate(ctx, tt.input, tt.format)
			if err != nil {
				t.Fatal(err)
			}

			if !strings.Contains(got, tt.want) {
				t.Errorf("evaluate(%q, %s) = %q, want it to contain %q",
					tt.input, tt.format, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Error(t *testing.T) {
	_, err := evaluate(context.Background(), "{Binding Path", formatText)
	if err == nil {
		t.Fatal("expected error")
	}

	msg := explain(err)
	if !strings.Contains(msg, "unterminated") || !strings.Contains(msg, "^") {
		t.Errorf("explain = %q", msg)
	}
}

func TestSetFormat(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = m.setFormat([]string{"JSON"})
	if m.format != formatJSON {
		t.Errorf("format = %q", m.format)
	}

	m, msg := m.setFormat([]string{"xml"})
	if m.format != formatJSON || !strings.Contains(msg, "unknown format") {
		t.Errorf("format = %q, msg = %q", m.format, msg)
	}

	if _, msg := m.setFormat(nil); !strings.Contains(msg, "json") {
		t.Errorf("msg = %q", msg)
	}
}

func TestListExtensions(t *testing.T) {
	m := newTestModel(t, loadTestDocument(t))

	out := m.listExtensions()
	for _, want := range []string{"Binding", "Path, Mode, Source", "Localize"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryStep(t *testing.T) {
	m := newTestModel(t, nil)

	for _, e := range []HistoryEntry{
		{"{A}", modeEval},
		{"help", modeCtrl},
		{"{B}", modeEval},
	} {
		if err := m.history.Write(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	m.historyIdx = m.history.Len()

	m, _ = m.historyStep(-1, false)
	if m.input.Value() != "{B}" || m.mode != modeEval {
		t.Errorf("step 1: %q mode %d", m.input.Value(), m.mode)
	}

	m, _ = m.historyStep(-1, false)
	if m.input.Value() != "help" || m.mode != modeCtrl {
		t.Errorf("step 2: %q mode %d", m.input.Value(), m.mode)
	}

	// Within ctrl mode there is nothing older.
	m, _ = m.historyStep(-1, true)
	if m.input.Value() != "help" {
		t.Errorf("in-mode step: %q", m.input.Value())
	}

	m, _ = m.historyStep(1, false)
	m, _ = m.historyStep(1, false)
	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("past newest: %q idx %d", m.input.Value(), m.historyIdx)
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Matches{
		{Str: "Binding"},
		{Str: "StaticResource"},
		{Str: "TemplateBinding"},
	}

	if got := renderCandidateBar(nil, 0, false, 80); got != "" {
		t.Errorf("empty matches = %q", got)
	}

	full := renderCandidateBar(matches, -1, false, 80)
	for _, m := range matches {
		if !strings.Contains(stripANSI(full), m.Str) {
			t.Errorf("bar missing %q: %q", m.Str, full)
		}
	}

	narrow := stripANSI(renderCandidateBar(matches, -1, false, 20))
	if !strings.HasPrefix(narrow, "Binding") || !strings.HasSuffix(narrow, "...") {
		t.Errorf("narrow bar = %q", narrow)
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}

			continue
		}

		b.WriteByte(s[i])
	}

	return b.String()
}
