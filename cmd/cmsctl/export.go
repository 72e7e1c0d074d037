package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/export"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
)

func newExportCmd(env *cmdEnv) *cobra.Command {
	var (
		outDir string
		search string
		status string
	)
	cmd := &cobra.Command{
		Use:     "export <categories|storages|displays>",
		Short:   "Write an entity list to an XLSX workbook",
		Example: `  cmsctl export displays --search lg --out ./exports`,
		Args:    entityArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _ := constants.CanonicalizeEntity(args[0])
			params, err := pagination.ParseParams(url.Values{
				"search": {search},
				"status": {status},
			}, pagination.DefaultConfig)
			if err != nil {
				return err
			}

			a, closeFn, err := env.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			xlsx, err := a.Export.ExportXLSX(cmd.Context(), e, params)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			path := filepath.Join(outDir, export.Filename(e, time.Now()))
			if err := os.WriteFile(path, xlsx, 0o644); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&status, "status", "", "status filter (-2, -1, 0, 1)")
	return cmd
}
