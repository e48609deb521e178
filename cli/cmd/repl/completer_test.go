package repl

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/xmark/log"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after brace", "{Bin", 4, "Bin", 1, 4},
		{"prefixed", "{x:Ty", 5, "x:Ty", 1, 5},
		{"after space", "{Binding Pa", 11, "Pa", 9, 11},
		{"after comma", "{Binding Path=Name,Mo", 21, "Mo", 19, 21},
		{"after equals", "{Binding Path=Na", 16, "Na", 14, 16},
		{"mid word", "{Binding}", 3, "Binding", 1, 8},
		{"empty at boundary", "{Binding ", 9, "", 9, 9},
		{"cursor past end", "ab", 10, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		want     completionKind
		wantName string
	}{
		{"Bin", completeNone, ""},
		{"{Bin", completeExtension, ""},
		{"{ Bin", completeExtension, ""},
		{"{Binding Pa", completeProperty, "Binding"},
		{"{Binding Path=Name, Mo", completeProperty, "Binding"},
		{"{Binding Path=Na", completeNone, "Binding"},
		{"{Binding Name Mo", completeNone, "Binding"},
		{"{Binding Path={StaticResource K}, Mo", completeProperty, "Binding"},
		{"{Binding Path={Static", completeExtension, ""},
		{"{Binding RelativeSource={RelativeSource Fi", completeProperty, "RelativeSource"},
		{"{Binding 'a, b", completeNone, "Binding"},
		{"{Binding} x", completeNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, start, _ := wordBounds(tt.input, len(tt.input))

			kind, call := classify(tt.input, start)
			if kind != tt.want {
				t.Errorf("classify(%q) = %d, want %d", tt.input, kind, tt.want)
			}

			if call.name != tt.wantName {
				t.Errorf("classify(%q) name = %q, want %q", tt.input, call.name, tt.wantName)
			}
		})
	}
}

func newTestModel(t *testing.T, doc *document) model {
	t.Helper()

	return newModel(context.Background(), doc, NewHistory(""), log.Logger{}, nil)
}

func typeInto(m model, s string) model {
	m.input.SetValue(s)
	m.input.SetCursor(len(s))
	refreshMatches(&m, false)

	return m
}

func matchStrings(m model) []string {
	var out []string
	for _, match := range m.matches {
		out = append(out, match.Str)
	}

	return out
}

func TestComputeMatches(t *testing.T) {
	doc := loadTestDocument(t)

	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
	}{
		{"extension names", modeEval, "{StatRes", []string{"StaticResource"}},
		{"prefixed names", modeEval, "{x:Typ", []string{"x:Type"}},
		{"document extension", modeEval, "{Local", []string{"Localize"}},
		{"properties", modeEval, "{Binding Mo", []string{"Mode"}},
		{"no properties known", modeEval, "{x:Null A", nil},
		{"value position", modeEval, "{Binding Path=Mo", nil},
		{"literal", modeEval, "Bind", nil},
		{"commands", modeCtrl, "qu", []string{"quit"}},
		{"command argument", modeCtrl, "format js", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, doc)
			m.mode = tt.mode
			m = typeInto(m, tt.input)

			if diff := cmp.Diff(tt.want, matchStrings(m)); diff != "" {
				t.Errorf("matches for %q (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestComputeMatches_EmptyWordListsAll(t *testing.T) {
	m := typeInto(newTestModel(t, nil), "{")

	if diff := cmp.Diff(m.catalog.names, matchStrings(m)); diff != "" {
		t.Errorf("matches after '{' (-want +got):\n%s", diff)
	}

	m = typeInto(m, "{Binding ")
	if len(m.matches) != 0 {
		t.Errorf("expected no property matches without a document, got %v", matchStrings(m))
	}
}

func TestCycle(t *testing.T) {
	m := typeInto(newTestModel(t, nil), "{x:")
	if len(m.matches) < 2 {
		t.Fatalf("expected several x: matches, got %v", matchStrings(m))
	}

	first := m.matches[0].Str
	last := m.matches[len(m.matches)-1].Str

	m, _ = m.cycle(1)
	if got := m.input.Value(); got != "{"+first {
		t.Errorf("after Tab input = %q, want %q", got, "{"+first)
	}

	m, _ = m.cycle(-1)
	if got := m.input.Value(); got != "{"+last {
		t.Errorf("after Shift-Tab input = %q, want %q", got, "{"+last)
	}

	if !m.tabActive {
		t.Error("expected tab cycling to be active")
	}
}

func TestCycle_SingleCandidate(t *testing.T) {
	m := typeInto(newTestModel(t, nil), "{TemplateB")

	m, _ = m.cycle(1)
	if got := m.input.Value(); got != "{TemplateBinding" {
		t.Errorf("input = %q", got)
	}

	if m.tabActive || m.matches != nil {
		t.Error("a single candidate should complete immediately")
	}
}
