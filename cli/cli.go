package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/xmark/cli/cmd"
	"github.com/ardnew/xmark/log"
	"github.com/ardnew/xmark/pkg"
	"github.com/ardnew/xmark/tree"
)

// CLI is the top-level command-line interface for xmark.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	ReservedNamespace string `default:"${reservedNamespace}" help:"Namespace whose Key attribute names a node." name:"reserved-namespace"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Ext   cmd.Ext   `cmd:"" help:"Parse markup extension expressions"`
	Tree  cmd.Tree  `cmd:"" default:"withargs" help:"Build the construction tree of an XML document"`
	Query cmd.Query `cmd:"" help:"Select nodes of a document with an expr predicate"`
	Find  cmd.Find  `cmd:"" help:"Fuzzy-find nodes of a document by label"`
	Repl  cmd.Repl  `cmd:"" help:"Start an interactive extension parser"`
	Init  cmd.Init  `cmd:"" help:"Initialize configuration file"`
}

// Run executes the xmark CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier:   configFilePath,
		cmd.CacheIdentifier:    cacheDir(),
		cmd.ReservedIdentifier: tree.DefaultReservedNamespace,
		"version":              pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure the logger before kong reports anything.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseJSONConfig)),
		kong.Configuration(resolve(ctx, cmd.ConfigIdentifier), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithBuildOptions(ctx,
		tree.WithReservedNamespace(cli.ReservedNamespace),
		tree.WithLogger(log.Default()),
	)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
