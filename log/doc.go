// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("document parsed", slog.Int("nodes", 12))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("Kitchen"))
//
// Options never mutate an existing Logger; [Logger.Wrap] returns a new one.
//
// # Levels
//
// In addition to the slog levels, [LevelTrace] sits below [LevelDebug] and is
// used by the parsers to report per-expression and per-element progress.
//
// # Zero Value
//
// The zero Logger discards everything. Library packages accept a Logger via
// a WithLogger option and log unconditionally; callers that pass nothing get
// silence.
//
// # Package-Level Logger
//
// [Config], [Info], [Error] and friends operate on a package-level Logger
// writing to standard error. The CLI reconfigures it from flags.
package log
