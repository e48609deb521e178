//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version embedded at build time.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the command name. It appears in help text and names the
	// configuration and cache directories.
	Name = "xmark"
	// Description is a short summary used in help output.
	Description = "Markup extension parser and construction tree builder"
)
