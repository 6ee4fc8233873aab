package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/traj/expand"
	"github.com/ardnew/traj/log"
	"github.com/ardnew/traj/render"
	"github.com/ardnew/traj/traj"
)

// DryRun expands a trajectory and prints the points it visits.
type DryRun struct {
	Format render.Format `default:"table" help:"Output format (${formats})."                      short:"f"`
	Indent int           `default:"2"     help:"Indent width of json and yaml output, 0 for compact." short:"i"`
	Count  bool          `                help:"Print the number of points only."                      short:"c"`

	Source string `arg:"" help:"Trajectory file (.json or .yaml) or example name (${examples})." name:"source"`
}

// Run executes the dryrun command.
func (d *DryRun) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	logger := log.Default()

	t, err := load(ctx, d.Source, traj.WithLogger(logger))
	if err != nil {
		return ErrLoad.Wrap(err).With(slog.String("source", d.Source))
	}

	x := expand.New(expand.WithLogger(logger))

	if d.Count {
		return d.count(ctx, x, t)
	}

	res, err := x.DryRun(ctx, t)
	if err != nil {
		return ErrDryRun.Wrap(err).With(slog.String("source", d.Source))
	}

	err = render.Write(ctx, stdout(ctx), d.Format, res,
		render.WithIndent(d.Indent),
		render.WithLogger(logger))
	if err != nil {
		return ErrOutput.Wrap(err).With(slog.String("format", d.Format.String()))
	}

	return nil
}

// count prints the number of points without keeping them.
func (d *DryRun) count(ctx context.Context, x *expand.Expander, t *traj.Trajectory) error {
	n := 0

	for _, err := range x.Points(ctx, t) {
		if err != nil {
			return ErrDryRun.Wrap(err).With(slog.String("source", d.Source))
		}

		n++
	}

	if _, err := fmt.Fprintln(stdout(ctx), n); err != nil {
		return ErrOutput.Wrap(err)
	}

	return nil
}

// load reads the named built-in example, or else the trajectory file at
// source.
func load(ctx context.Context, source string, opts ...traj.Option) (*traj.Trajectory, error) {
	if traj.IsExample(source) {
		return traj.Example(ctx, source, opts...)
	}

	return traj.Load(ctx, source, opts...)
}
