package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/traj/render"
	"github.com/ardnew/traj/traj"
)

// contextKey stores a [kong.Context] in a [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer for command output: the standard output of the
// kong application stored in ctx, or [os.Stdout].
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// Vars returns the kong variables referenced by the command help strings.
func Vars() kong.Vars {
	return kong.Vars{
		"examples": strings.Join(traj.Examples(), ", "),
		"formats":  strings.Join(render.Formats(), ", "),
	}
}
