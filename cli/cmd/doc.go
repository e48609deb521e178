// Package cmd implements the xmark subcommands.
//
// Commands that read a document accept a source path argument, where "-"
// (the default) reads standard input. Build options shared by all commands,
// such as the reserved namespace, are carried in the [context.Context] passed
// to each Run method.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file. It is also the name of the top-level
	// section of that file holding flag values.
	ConfigIdentifier = "config"

	// ReservedIdentifier is the kong variable identifier containing the
	// default reserved namespace URI.
	ReservedIdentifier = "reservedNamespace"
)
