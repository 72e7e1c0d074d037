package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/app"
	"github.com/joseph-ayodele/catalog-cms/internal/catalog"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/server"
)

type rootOptions struct {
	dsn      string
	logLevel string
}

// cmdEnv is what every subcommand gets after the shared setup.
type cmdEnv struct {
	cfg    *common.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	env := &cmdEnv{}

	root := &cobra.Command{
		Use:   "cmsctl",
		Short: "Operate the catalog CMS database from the terminal",
		Long: `cmsctl runs migrations, lists and exports catalog entities and
issues admin tokens for local testing.

Configuration comes from the same environment variables as cmsd
(DB_URL, JWT_SECRET, ...). Flags override them.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := common.LoadConfig()
			if err != nil {
				return err
			}
			if opts.dsn != "" {
				cfg.Database.DSN = opts.dsn
			}
			if opts.logLevel != "" {
				cfg.Log.Level = opts.logLevel
			}
			env.cfg = cfg
			env.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelOf(cfg.Log.Level)}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.dsn, "db", "", "database URL (overrides DB_URL)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error)")

	root.AddCommand(
		newMigrateCmd(env),
		newListCmd(env),
		newExportCmd(env),
		newTokenCmd(env),
	)
	return root
}

func levelOf(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// open connects to the configured database and builds the services.
func (e *cmdEnv) open(ctx context.Context) (*app.App, func(), error) {
	if e.cfg.Database.DSN == "" {
		return nil, nil, fmt.Errorf("no database configured: set DB_URL or pass --db")
	}
	store, err := server.ConnectDB(ctx, e.cfg.Database, e.logger)
	if err != nil {
		return nil, nil, err
	}
	options, err := catalog.Load(e.cfg.Catalog.OptionsFile, e.logger)
	if err != nil {
		server.CloseDB(store, e.logger)
		return nil, nil, err
	}
	return app.New(store, options, e.logger), func() { server.CloseDB(store, e.logger) }, nil
}

func entityArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if _, ok := constants.CanonicalizeEntity(args[0]); !ok {
		return fmt.Errorf("unknown entity %q (want one of %v)", args[0], constants.EntitiesAsStringSlice())
	}
	return nil
}
