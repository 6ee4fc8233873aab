// Package pkg holds the identity of the traj command: its name, version and
// authors.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version read from the VERSION file at build time.
var Version = strings.TrimSpace(version)

const (
	// Name names the command, its configuration directory and its cache
	// directory.
	Name = "traj"

	// Description summarizes the command in help output.
	Description = "Expand a nested-loop trajectory into the points it visits"
)

// AuthorInfo identifies one author.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the authors of traj.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
