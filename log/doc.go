// Package log wraps [log/slog] with a small, concurrency-safe logger used by
// every t-cli command for progress and diagnostic output.
//
// Loggers are created with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339"))
//
// Attributes are passed as [slog.Attr] values:
//
//	logger.Warn("skipping invalid key file", slog.String("path", path))
//
// A package-level default logger writes to [os.Stderr]. [Config] replaces its
// options, and the package-level functions ([Debug], [Info], [Warn], [Error])
// forward to it.
//
// Pretty output (the default) styles keys and values with lipgloss. Styles
// degrade to plain text when the writer is not a terminal.
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Timestamps are disabled unless a layout is
// set with [WithTimeLayout].
package log
