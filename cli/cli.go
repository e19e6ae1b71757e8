package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/nuclenergy/t-cli/cli/cmd"
	"github.com/nuclenergy/t-cli/config"
	"github.com/nuclenergy/t-cli/log"
	"github.com/nuclenergy/t-cli/pkg"
)

// baseConfig is the base name of the flag defaults file in the user
// configuration directory.
const baseConfig = "config.yaml"

// envFile is loaded into the environment, if present, before flags are
// resolved.
const envFile = ".env"

// CLI is the top-level command-line interface for t-cli.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Dir     string           `default:"${dir}" help:"Project directory include patterns are relative to." placeholder:"DIR" short:"C" type:"existingdir"`
	Version kong.VersionFlag `help:"Print version and exit."`

	Init      cmd.Init      `cmd:"" help:"Write a configuration file template."`
	Collect   cmd.Collect   `aliases:"c"  cmd:"" help:"Add the keys used in source files to the key files."`
	Generate  cmd.Generate  `aliases:"g"  cmd:"" help:"Generate the translation module of every output directory."`
	Clean     cmd.Clean     `cmd:"" help:"Remove unused keys from the key files."`
	Cg        cmd.Cg        `cmd:"" help:"Collect, then generate."`
	Gc        cmd.Gc        `cmd:"" help:"Collect, generate, then clean."`
	Languages cmd.Languages `aliases:"ls" cmd:"" help:"Print the language inheritance tree."`
}

// Run executes the t-cli CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	loadEnv(ctx, envFile)

	vars := kong.Vars{
		cmd.ConfigIdentifier: config.DefaultFile,
		cmd.DirIdentifier:    ".",
		"version":            pkg.Name + " " + pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	groups := []kong.Group{cli.Log.group()}
	if g := cli.Pprof.group(); g.Key != "" {
		groups = append(groups, g)
	}

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(cmd.Stdout(ctx), os.Stderr),
		kong.ExplicitGroups(groups),
		kong.DefaultEnvars(pkg.EnvPrefix()),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, filepath.Join(pkg.ConfigDir(), baseConfig)),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithDir(ctx, cli.Dir)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx)
}

// loadEnv adds the variables of a dotenv file to the environment without
// overriding variables already set.
func loadEnv(ctx context.Context, path string) {
	err := godotenv.Load(path)

	switch {
	case err == nil:
		log.DebugContext(ctx, "loaded environment", slog.String("path", path))

	case !errors.Is(err, fs.ErrNotExist):
		log.WarnContext(ctx, "ignoring environment file",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}
