// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The zero Logger discards everything, so components can hold one without
// checking whether logging was configured.
//
// # Levels
//
// In addition to the four slog levels, [LevelTrace] sits below
// [LevelDebug] for step-by-step output such as the expansion of every loop.
//
// # Attributes
//
// [Logger.With] attaches attributes to one logger. [WithAttrs] attaches them
// to the configuration, so they survive [Logger.Wrap] and [Config]:
//
//	log.Config(log.WithAttrs(slog.String("run", id)))
//
// # Default Logger
//
// The package-level functions write through a default logger on standard
// error that [Config] reconfigures in place. Context-unaware functions use
// [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText] are supported. With [WithPretty]
// enabled both are colorized: text output flattens groups into dotted keys
// and JSON output prints one unquoted field per line.
package log
