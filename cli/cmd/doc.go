// Package cmd implements the traj subcommands.
//
// [DryRun] expands a trajectory file or built-in example and prints its
// points. [Examples] lists the built-in examples or prints the source of
// one of them.
package cmd
