package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/traj/traj"
)

// Examples lists the built-in trajectories or prints the source of one.
type Examples struct {
	Name string `arg:"" help:"Example to print (${examples})." name:"name" optional:""`
}

// Run executes the examples command.
func (e *Examples) Run(ctx context.Context) error {
	w := stdout(ctx)

	if e.Name == "" {
		for _, name := range traj.Examples() {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return ErrOutput.Wrap(err)
			}
		}

		return nil
	}

	src, err := traj.ExampleSource(e.Name)
	if err != nil {
		return err
	}

	if _, err := w.Write(src); err != nil {
		return ErrOutput.Wrap(err).With(slog.String("example", e.Name))
	}

	return nil
}
