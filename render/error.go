package render

import "github.com/ardnew/traj/lang"

// Predefined errors (sentinel values).
var (
	ErrUnknownFormat = lang.NewError("unknown output format")
	ErrWrite         = lang.NewError("failed to write output")
)
