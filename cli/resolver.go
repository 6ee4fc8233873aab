package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/traj/lang"
	"github.com/ardnew/traj/traj"
)

// ErrConfig indicates a configuration file that could not be used.
var ErrConfig = lang.NewError("invalid configuration file")

// resolve is a [kong.ConfigurationLoader] for configuration files written in
// either of the trajectory file syntaxes: relaxed JSON, or YAML.
//
// The document must be a mapping. Nested mappings join their keys with "-",
// so both of these set --log-level:
//
//	{log_level: "debug"}
//	log:
//	  level: debug
//
// Command-line flags override configuration values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	ctx := context.Background()

	doc, err := traj.ParseJSON(ctx, data)
	if err != nil {
		doc, err = traj.ParseYAML(ctx, data)
	}

	if err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	if doc == nil {
		return config{}, nil
	}

	m, ok := doc.(*traj.Map)
	if !ok {
		return nil, ErrConfig.With(
			slog.String("issue", "expected a mapping"),
			slog.String("type", traj.TypeName(doc)),
		)
	}

	cfg := config{}
	cfg.flatten("", m)

	return cfg, nil
}

// config implements [kong.Resolver] over flattened configuration values.
type config map[string]any

// flatten records every value of m under its key, prefixed by prefix.
func (c config) flatten(prefix string, m *traj.Map) {
	for key, value := range m.All() {
		key = strings.ReplaceAll(prefix+key, "_", "-")

		if sub, ok := value.(*traj.Map); ok {
			c.flatten(key+"-", sub)

			continue
		}

		// kong parses numbers from strings
		switch v := value.(type) {
		case int:
			c[key] = strconv.Itoa(v)
		case float64:
			c[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			c[key] = v
		}
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}
