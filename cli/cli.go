package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/ardnew/traj/cli/cmd"
	"github.com/ardnew/traj/pkg"
)

// CLI is the top-level command-line interface for traj.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Config  kong.ConfigFlag  `help:"Read flag defaults from a JSON or YAML file." placeholder:"FILE"`
	Version kong.VersionFlag `help:"Print the version and exit."                   short:"V"`

	DryRun   cmd.DryRun   `cmd:"" default:"withargs" help:"Expand a trajectory and print its points." name:"dryrun"`
	Examples cmd.Examples `cmd:""                    help:"List or print the built-in example trajectories."`
}

// Run executes the traj CLI with the given context and arguments, writing
// command output to standard output and usage and logs to standard error.
// The exit function is called when a flag such as --help ends the run early.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, exit, os.Stdout, os.Stderr, args...)
}

func run(
	ctx context.Context,
	exit func(code int),
	stdout, stderr io.Writer,
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{"version": pkg.Version}.
		CloneWith(cmd.Vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags take effect before parsing so that parse errors are
	// reported the way the user asked.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		// Resolved on first use, after ctx holds the kong context.
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve,
			configPath(baseConfig+".json"),
			configPath(baseConfig+".yaml"),
		),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		usage(err, stderr)

		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx, stderr, uuid.NewString())

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(&cli)
}

// usage prints the compact usage of the command that failed to parse.
func usage(err error, w io.Writer) {
	var perr *kong.ParseError
	if !errors.As(err, &perr) || perr.Context == nil {
		return
	}

	perr.Context.Stdout = w
	_ = perr.Context.PrintUsage(true)
}
