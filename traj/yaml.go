package traj

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/traj/lang"
)

// ParseYAML decodes a YAML document into the same value model as
// [ParseJSON]: mappings become *[Map] in document order, integers int and
// other numbers float64.
func ParseYAML(ctx context.Context, data []byte, opts ...Option) (any, error) {
	var cfg config

	cfg.apply(opts...)

	var raw any

	err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap())
	if err != nil {
		return nil, ErrSyntax.Wrap(err).
			With(slog.String("format", "yaml"))
	}

	value, err := fromYAML(raw)
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("source_bytes", len(data)),
		slog.String("format", "yaml"),
		slog.String("type", TypeName(value)))

	return value, nil
}

// fromYAML converts a value decoded by go-yaml into the document model.
func fromYAML(v any) (any, error) {
	switch val := v.(type) {
	case nil, string, bool:
		return val, nil

	case float32:
		return float64(val), nil

	case float64:
		return val, nil

	case yaml.MapSlice:
		m := &Map{}

		for _, item := range val {
			value, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}

			m.Set(fmt.Sprint(item.Key), value)
		}

		return m, nil

	case map[string]any:
		m := &Map{}

		for _, k := range slices.Sorted(maps.Keys(val)) {
			value, err := fromYAML(val[k])
			if err != nil {
				return nil, err
			}

			m.Set(k, value)
		}

		return m, nil

	case []any:
		out := make([]any, len(val))

		for i, elem := range val {
			value, err := fromYAML(elem)
			if err != nil {
				return nil, err
			}

			out[i] = value
		}

		return out, nil
	}

	if lang.IsInt(v) {
		n, _ := lang.Int(v)

		return n, nil
	}

	return nil, ErrInvalidValueType.With(
		slog.String("format", "yaml"),
		slog.String("type", fmt.Sprintf("%T", v)),
	)
}
