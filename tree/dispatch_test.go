package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/xmark/ext"
)

func TestDispatch(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ext.Value
	}{
		{"plain", "Hello", ext.String{Text: "Hello"}},
		{"untrimmed literal", "  Hello World ", ext.String{Text: "  Hello World "}},
		{"empty", "", ext.String{Text: ""}},
		{"brace inside", "a {b}", ext.String{Text: "a {b}"}},
		{"empty escape", "{}{Binding}", ext.String{Text: "{Binding}"}},
		{"double escape", "{{Binding}", ext.String{Text: "{Binding}"}},
		{"padded escape", "  {}text", ext.String{Text: "text"}},
		{
			"extension",
			"{Binding Path=Name}",
			ext.NewMarkupExtension(ext.NewIdentifier("Binding"),
				ext.NewProperty("Path", ext.String{Text: "Name"})),
		},
		{
			"padded extension",
			"\t {x:Null} \n",
			ext.NewMarkupExtension(ext.NewPrefixedIdentifier("x", "Null")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dispatch("Attr", tt.raw)
			if err != nil {
				t.Fatalf("Dispatch(%q): %v", tt.raw, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Dispatch(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestDispatch_Error(t *testing.T) {
	_, err := Dispatch("Text", "  {Binding Path")
	if err == nil {
		t.Fatal("expected error")
	}

	var aerr *AttributeError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *AttributeError, got %T", err)
	}

	if aerr.Attribute != "Text" || aerr.Value != "  {Binding Path" {
		t.Errorf("unexpected attribute error %+v", aerr)
	}

	if !errors.Is(err, ErrAttribute) {
		t.Error("expected errors.Is(err, ErrAttribute)")
	}
	if !errors.Is(err, ext.ErrUnterminated) {
		t.Errorf("expected unterminated cause, got %v", err)
	}

	var perr *ext.Error
	if !errors.As(err, &perr) {
		t.Fatal("expected *ext.Error cause")
	}

	// Offset is relative to the raw value, including leading whitespace.
	if perr.Offset() != 15 || perr.Input() != "  {Binding Path" {
		t.Errorf("offset = %d input = %q", perr.Offset(), perr.Input())
	}
}
