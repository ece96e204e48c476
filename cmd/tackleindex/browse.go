package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/poku-e/tackleindex/internal/table"
	"github.com/poku-e/tackleindex/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <page.html|url>",
		Short: "Browse a catalog table in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, title, err := loadCatalog(cmd, a, args[0])
			if err != nil {
				return err
			}
			m := tui.New(title, c, table.SearchLink(a.cfg.SearchURL), a.cfg.SearchPlaceholder)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}
