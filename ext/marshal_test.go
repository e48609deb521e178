package ext

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestMarkupExtension_MarshalJSON(t *testing.T) {
	m, err := ParseString(t.Context(), "{Binding Path=Name, {x:Type Grid}, Mode}")
	if err != nil {
		t.Fatal(err)
	}

	got, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"extension":"BindingExtension","options":[` +
		`{"property":"Path","value":"Name"},` +
		`{"positional":{"extension":"x:TypeExtension","options":[{"positional":"Grid"}]}},` +
		`{"positional":"Mode"}]}`

	if string(got) != want {
		t.Errorf("MarshalJSON:\n got %s\nwant %s", got, want)
	}
}

func TestMarkupExtension_MarshalJSON_NoOptions(t *testing.T) {
	got, err := json.Marshal(ext("Dummy"))
	if err != nil {
		t.Fatal(err)
	}

	if string(got) != `{"extension":"DummyExtension"}` {
		t.Errorf("MarshalJSON = %s", got)
	}
}

func TestMarkupExtension_MarshalYAML(t *testing.T) {
	m := ext("Dummy", pos("A"), prop("B", "C"))

	out, err := yaml.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}

	got := string(out)
	for _, want := range []string{
		"extension: DummyExtension",
		"positional: A",
		"property: B",
		"value: C",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("MarshalYAML missing %q:\n%s", want, got)
		}
	}

	if strings.Index(got, "positional: A") > strings.Index(got, "property: B") {
		t.Errorf("option order not preserved:\n%s", got)
	}
}

func TestToNative(t *testing.T) {
	if got := ToNative(String{Text: "x"}); got != "x" {
		t.Errorf("ToNative(String) = %v", got)
	}
	if got := ToNative(nil); got != nil {
		t.Errorf("ToNative(nil) = %v", got)
	}
	if got := ToNative((*MarkupExtension)(nil)); got != nil {
		t.Errorf("ToNative(nil extension) = %v", got)
	}
}
