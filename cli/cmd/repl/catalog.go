package repl

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/xmark/ext"
	"github.com/ardnew/xmark/tree"
)

// builtinExtensions are offered for completion with or without a document.
var builtinExtensions = []string{
	"Binding",
	"DynamicResource",
	"RelativeSource",
	"StaticResource",
	"TemplateBinding",
	"x:Array",
	"x:Null",
	"x:Reference",
	"x:Static",
	"x:Type",
}

// catalog indexes the extension names and property names known to the REPL.
type catalog struct {
	names []string            // completion names, sorted
	props map[string][]string // normalized identifier -> property names, first use first
}

// newCatalog returns the built-in names plus every extension, nested ones
// included, used by an attribute of root. root may be nil.
func newCatalog(root *tree.Node) *catalog {
	c := &catalog{props: make(map[string][]string)}

	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			c.names = append(c.names, name)
		}
	}

	for _, name := range builtinExtensions {
		add(name)
	}

	if root != nil {
		for v := range root.All() {
			for _, a := range v.Node.Attributes {
				m, ok := a.Value.(*ext.MarkupExtension)
				if !ok {
					continue
				}

				for e := range m.Walk() {
					add(shortName(e.Identifier))
					c.addProperties(e)
				}
			}
		}
	}

	slices.Sort(c.names)

	return c
}

func (c *catalog) addProperties(m *ext.MarkupExtension) {
	key := m.Identifier.String()

	for _, opt := range m.Options {
		p, ok := opt.(ext.Property)
		if ok && !slices.Contains(c.props[key], p.Name) {
			c.props[key] = append(c.props[key], p.Name)
		}
	}
}

// properties returns the property names seen with the extension written as
// name, e.g. "Binding" or "x:Type".
func (c *catalog) properties(name string) []string {
	id, err := ext.ParseIdentifier(name)
	if err != nil {
		return nil
	}

	return c.props[id.Normalize().String()]
}

// shortName is the identifier as usually written, without the name suffix.
func shortName(id ext.Identifier) string {
	name := id.Name
	if trimmed := strings.TrimSuffix(name, ext.Suffix); trimmed != "" {
		name = trimmed
	}

	if id.Prefix == "" {
		return name
	}

	return id.Prefix + ":" + name
}

// extensionCall describes the innermost unclosed extension before the
// cursor.
type extensionCall struct {
	name     string // identifier as typed
	inArgs   bool   // cursor is past the identifier
	quoted   bool   // cursor is inside a quoted string
	complete string // options before the last top-level comma
}

// detectExtension scans input up to cursor for the innermost '{' that is not
// yet closed. Quoted text and backslash escapes are skipped.
func detectExtension(input string, cursor int) (extensionCall, bool) {
	cursor = min(max(cursor, 0), len(input))

	type frame struct{ open, comma int }

	var (
		stack  []frame
		quoted bool
	)

	for i := 0; i < cursor; i++ {
		switch ch := input[i]; {
		case quoted:
			quoted = ch != '\''
		case ch == '\\':
			i++
		case ch == '\'':
			quoted = true
		case ch == '{':
			stack = append(stack, frame{open: i, comma: -1})
		case ch == '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case ch == ',':
			if len(stack) > 0 {
				stack[len(stack)-1].comma = i
			}
		}
	}

	if len(stack) == 0 {
		return extensionCall{}, false
	}

	top := stack[len(stack)-1]
	body := input[top.open+1 : cursor]
	lead := len(body) - len(strings.TrimLeft(body, " \t"))
	body = body[lead:]

	end := strings.IndexAny(body, " \t,}")
	if end < 0 {
		return extensionCall{name: body, quoted: quoted}, true
	}

	call := extensionCall{name: body[:end], inArgs: true, quoted: quoted}

	if from := top.open + 1 + lead + end; top.comma > from {
		call.complete = input[from:top.comma]
	}

	return call, true
}

// assigned returns the property names of the completed options of c.
// Incomplete input yields nil.
func (c extensionCall) assigned() []string {
	opts, err := ext.ParseOptions(strings.TrimSpace(c.complete))
	if err != nil {
		return nil
	}

	var names []string

	for _, opt := range opts {
		if p, ok := opt.(ext.Property); ok {
			names = append(names, p.Name)
		}
	}

	return names
}

var (
	hintNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	hintPropStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintUsedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)
)

// renderPropertyHint lists the known properties of an extension, marking
// those already assigned in the current expression.
func renderPropertyHint(name string, props, used []string) string {
	var b strings.Builder

	b.WriteString(hintNameStyle.Render(name))
	b.WriteString(hintPropStyle.Render(":"))

	for _, p := range props {
		b.WriteString(" ")

		if slices.Contains(used, p) {
			b.WriteString(hintUsedStyle.Render(p + "="))
		} else {
			b.WriteString(hintPropStyle.Render(p + "="))
		}
	}

	return b.String()
}
