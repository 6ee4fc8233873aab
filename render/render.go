package render

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/traj/expand"
	"github.com/ardnew/traj/log"
)

// DefaultIndent is the indent width of JSON and YAML output.
const DefaultIndent = 2

// Option configures [Write].
type Option func(*config)

type config struct {
	indent int
	logger log.Logger
}

// WithIndent sets the indent width of JSON and YAML output.
// Zero selects compact JSON and flow-style YAML.
func WithIndent(indent int) Option {
	return func(c *config) {
		c.indent = max(indent, 0)
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Write presents the points of res to w in format f.
//
// Table and CSV output is columnated with the constants of res removed and
// fails with [expand.ErrEmptyPointSequence] when there are no points. JSON and
// YAML output holds every field of every point.
func Write(
	ctx context.Context,
	w io.Writer,
	f Format,
	res *expand.Result,
	opts ...Option,
) error {
	cfg := config{indent: DefaultIndent}
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.logger.TraceContext(ctx, "render",
		slogFormat(f),
		slog.Int("points", len(res.Points)))

	switch f {
	case FormatJSON:
		return JSON(ctx, w, res.Points, cfg.indent)

	case FormatYAML:
		return YAML(ctx, w, res.Points, cfg.indent)

	case FormatCSV, FormatTable:
		cols, err := expand.Columnate(res.Points, res.Constants)
		if err != nil {
			return err
		}

		cfg.logger.TraceContext(ctx, "columnate",
			slog.Int("columns", len(cols.Names())),
			slog.Int("rows", cols.Len()))

		if f == FormatCSV {
			return CSV(w, cols)
		}

		return Table(w, cols)

	default:
		return ErrUnknownFormat.With(slogFormat(f))
	}
}

func slogFormat(f Format) slog.Attr { return slog.String("format", f.String()) }
