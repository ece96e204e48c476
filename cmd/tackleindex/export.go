package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poku-e/tackleindex/internal/export"
	"github.com/poku-e/tackleindex/internal/table"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		outPath string
		sheet   string
	)

	cmd := &cobra.Command{
		Use:   "export <page.html|url> --out catalog.xlsx",
		Short: "Export the grouped catalog of a page to CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadCatalog(cmd, a, args[0])
			if err != nil {
				return err
			}
			if sheet == "" {
				sheet = a.cfg.Export.Sheet
			}
			records := export.Records(c, table.SearchLink(a.cfg.SearchURL))
			if err := export.WriteFile(outPath, sheet, records); err != nil {
				return err
			}
			a.log.WithField("rows", len(records)).WithField("out", outPath).Info("exported catalog")
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d rows -> %s\n", len(records), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (.csv or .xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "XLSX sheet name (default from config export.sheet)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
