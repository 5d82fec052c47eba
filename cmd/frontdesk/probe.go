package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kudobolivia/frontdesk/internal/data"
	"github.com/kudobolivia/frontdesk/internal/service"
)

var auditProbeCmd = &cobra.Command{
	Use:   "audit-probe",
	Short: "Append a test row to the interest log",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateAudit(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		auditRepo, err := data.NewAuditRepo(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer auditRepo.Close()

		if err := service.NewAuditProbe(auditRepo).Probe(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Escritura exitosa")
		return nil
	},
}
