package traj

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/ardnew/traj/lang"
)

//go:embed examples/*.json
var examples embed.FS

// Examples returns the names of the built-in demonstration trajectories.
func Examples() []string {
	entries, err := fs.ReadDir(examples, "examples")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}

	slices.Sort(names)

	return names
}

// IsExample reports whether name is a built-in demonstration trajectory.
func IsExample(name string) bool {
	return slices.Contains(Examples(), name)
}

// ExampleSource returns the source text of the named demonstration.
func ExampleSource(name string) ([]byte, error) {
	data, err := examples.ReadFile(path.Join("examples", name+".json"))
	if err != nil {
		e := ErrUnknownExample.With(slog.String("name", name))
		if hint := lang.Suggest(name, Examples()); len(hint) > 0 {
			e = e.With(slog.Any("suggest", hint))
		}

		return nil, e
	}

	return data, nil
}

// Example decodes the named demonstration trajectory.
func Example(ctx context.Context, name string, opts ...Option) (*Trajectory, error) {
	data, err := ExampleSource(name)
	if err != nil {
		return nil, err
	}

	return Parse(ctx, data, FormatJSON, opts...)
}
