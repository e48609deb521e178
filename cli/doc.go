// Package cli contains the command line interface for xmark.
//
// # Commands
//
//	xmark ext '{Binding Path=Name, Mode=OneWay}'
//	xmark tree window.xml
//	xmark query 'HasKey && "BindingExtension" in Extensions' window.xml
//	xmark find txtblk window.xml
//	xmark repl window.xml
//	xmark init
//
// tree is the default command, so "xmark window.xml" prints the tree.
// Commands that read a document accept '-' for stdin. ext, tree, query and
// find take --format=text|json|yaml.
//
// # Configuration
//
// Flag defaults may be set in config.yaml under the user configuration
// directory (e.g. ~/.config/xmark/config.yaml), in a top-level "config"
// mapping keyed by flag name. "xmark init" writes one from the current flags.
// A config.json next to it is read with kong's JSON loader first.
//
//	config:
//	  log-level: debug
//	  reserved-namespace: http://schemas.microsoft.com/winfx/2006/xaml
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o xmark .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/xmark/pprof)
package cli
