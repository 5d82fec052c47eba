package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kudobolivia/frontdesk/internal/conf"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and print the effective catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, path, err := conf.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if path == "" {
			path = "(built-in)"
		}
		fmt.Fprintf(out, "Catalog: %s\n\n", path)
		for _, opt := range catalog.Options {
			fmt.Fprintf(out, "[%s] %s\n", opt.ID, opt.Label)
			fmt.Fprintf(out, "    triggers: %s\n", strings.Join(opt.Triggers, ", "))
		}
		fmt.Fprintf(out, "\nHandoff phrases: %s\n", strings.Join(catalog.HandoffPhrases, ", "))
		fmt.Fprintf(out, "Admins notified: %s\n", strings.Join(cfg.AdminNumbers, ", "))
		return nil
	},
}
