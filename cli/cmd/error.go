package cmd

import "github.com/ardnew/traj/lang"

// Predefined errors (sentinel values).
var (
	ErrLoad   = lang.NewError("load trajectory")
	ErrDryRun = lang.NewError("dry run")
	ErrOutput = lang.NewError("write output")
)
