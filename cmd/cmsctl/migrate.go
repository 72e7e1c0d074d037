package main

import (
	"fmt"

	"github.com/spf13/cobra"

	repo "github.com/joseph-ayodele/catalog-cms/internal/repository"
)

func newMigrateCmd(env *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			env.cfg.Database.AutoMigrate = true
			a, closeFn, err := env.open(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			version, err := repo.MigrationVersion(ctx, a.Store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
			return nil
		},
	}
}
