package tree

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/xmark/ext"
)

func TestFind(t *testing.T) {
	root := parseWindow(t)

	matches := Find(root, "Heading")
	if len(matches) == 0 {
		t.Fatal("expected a match")
	}

	if matches[0].Label != "Style#Heading" {
		t.Errorf("best match = %q", matches[0].Label)
	}
	if matches[0].Path != "/Window/Window.Resources[0]/Style[1]" {
		t.Errorf("best match path = %q", matches[0].Path)
	}

	if got := Find(root, "zzzz"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}

	blocks := Find(root, "txtblk")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 TextBlock matches, got %d", len(blocks))
	}

	for _, m := range blocks {
		if m.Node.Type != "TextBlock" {
			t.Errorf("unexpected match %q", m.Label)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(&Node{Type: "A"}); got != "A" {
		t.Errorf("Label = %q", got)
	}
	if got := Label(&Node{Type: "A", Key: key("k")}); got != "A#k" {
		t.Errorf("Label = %q", got)
	}
}

func TestFingerprint(t *testing.T) {
	a := parseWindow(t)
	b := parseWindow(t)

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal trees have different fingerprints")
	}

	variants := []*Node{
		{Type: "A"},
		{Type: "A", Key: key("")},
		{Type: "A", Attributes: Attributes{{Name: "X", Value: ext.String{Text: "{Y}"}}}},
		{Type: "A", Attributes: Attributes{{Name: "X", Value: ext.NewMarkupExtension(ext.NewIdentifier("Y"))}}},
		{Type: "A", Attributes: Attributes{{Name: "X", Value: ext.NewMarkupExtension(
			ext.NewIdentifier("Y"), ext.NewPositional("Z"))}}},
		{Type: "A", Attributes: Attributes{{Name: "X", Value: ext.NewMarkupExtension(
			ext.NewIdentifier("Y"), ext.NewProperty("Z", ext.String{}))}}},
		{Type: "A", Children: []*Node{{Type: "B"}}},
		{Type: "AB"},
	}

	seen := make(map[uint64]int, len(variants))

	for i, n := range variants {
		fp := n.Fingerprint()
		if j, ok := seen[fp]; ok {
			t.Errorf("variants %d and %d collide", j, i)
		}

		seen[fp] = i
	}
}

func TestNode_Print(t *testing.T) {
	n := &Node{
		Type: "ResourceDictionary",
		Children: []*Node{
			{
				Type: "TextBlock",
				Key:  key("MyKey"),
				Attributes: Attributes{
					{Name: "Text", Value: ext.NewMarkupExtension(
						ext.NewIdentifier("Binding"), ext.NewPositional("Name"))},
					{Name: "Tag", Value: ext.String{Text: "plain"}},
				},
			},
		},
	}

	want := "ResourceDictionary\n" +
		"  TextBlock #MyKey\n" +
		"    Text = {BindingExtension Name}\n" +
		"    Tag = plain\n"

	if got := n.String(); got != want {
		t.Errorf("String():\n%s\nwant:\n%s", got, want)
	}

	var sb strings.Builder

	style := Style{Type: strings.ToUpper}
	if err := Fprint(&sb, n, style); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(sb.String(), "RESOURCEDICTIONARY\n  TEXTBLOCK #MyKey\n") {
		t.Errorf("styled output:\n%s", sb.String())
	}
}

func TestNode_MarshalJSON(t *testing.T) {
	n := &Node{
		Type: "Root",
		Children: []*Node{
			{
				Type: "Item",
				Key:  key("k"),
				Attributes: Attributes{
					{Name: "B", Value: ext.String{Text: "1"}},
					{Name: "A", Value: ext.NewMarkupExtension(ext.NewIdentifier("X"))},
				},
			},
		},
	}

	got, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"type":"Root","children":[{"type":"Item","key":"k","attributes":[` +
		`{"name":"B","value":"1"},{"name":"A","value":{"extension":"XExtension"}}]}]}`

	if string(got) != want {
		t.Errorf("MarshalJSON:\n got %s\nwant %s", got, want)
	}
}

func TestNode_MarshalYAML(t *testing.T) {
	root := parseWindow(t)

	out, err := yaml.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}

	got := string(out)
	for _, want := range []string{
		"type: Window",
		"key: Accent",
		"name: TargetType",
		"x:TypeExtension",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("MarshalYAML missing %q:\n%s", want, got)
		}
	}

	if strings.Index(got, "name: Text") > strings.Index(got, "name: Style") {
		t.Errorf("attribute order not preserved:\n%s", got)
	}
}
