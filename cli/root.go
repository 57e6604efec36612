package cli

import (
	"fmt"
	"slices"
	"strconv"

	"content-provider/app"
	"content-provider/config"
	"content-provider/config/setup"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath  string
	Format  string // "text" | "json" | "yaml"
	Verbose bool
	Seed    bool
	Watch   bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command of the content-provider CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "content-provider",
		Short: "Query and modify the cheeses table through content addresses",
		Long: `content-provider exposes a local SQLite cheeses table through content
addresses:

  content://<authority>/cheeses        the whole table
  content://<authority>/cheeses/<id>   one record`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path (default from DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every provider call")
	cmd.PersistentFlags().BoolVar(&opts.Seed, "seed", true, "seed an empty database with sample cheeses (default from SEED_DATA)")
	cmd.PersistentFlags().BoolVar(&opts.Watch, "watch", false, "print change notifications to stderr")

	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewInsertCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewBulkInsertCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewTypeCommand(opts))

	return cmd
}

// withApp opens the configured database, runs fn and closes it again
func withApp(opts *RootOptions, cmd *cobra.Command, fn func(*app.App, *OutputFormatter) error) error {
	cfg, err := config.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	if cmd.Flags().Changed("seed") {
		cfg.SeedData = opts.Seed
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}

	logger := setup.NewLogger(cfg, cmd.ErrOrStderr())

	db, err := setup.InitDatabase(cfg.DBPath, logger)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open database", err)
	}

	application, err := setup.InitApp(cfg, db, logger)
	if err != nil {
		db.Close()
		return WrapExitError(ExitFailure, "failed to initialize provider", err)
	}
	defer setup.Shutdown(application, logger)

	if opts.Watch {
		root := "content://" + cfg.Authority
		application.Resolver.Register(root, true, func(address string) {
			fmt.Fprintf(cmd.ErrOrStderr(), "changed %s\n", address)
		})
	}

	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
	return fn(application, out)
}

// addressArg expands a bare record id into the item address of the
// configured table. Anything else is passed through as an address.
func addressArg(a *app.App, arg string) string {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return arg
	}
	return a.Provider.Router().ItemAddress(id)
}
