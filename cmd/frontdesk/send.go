package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kudobolivia/frontdesk/internal/data"
)

var (
	sendTo   string
	sendText string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one text message through the configured delivery provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateDelivery(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		messageRepo, err := data.NewMessageRepo(cfg, logger)
		if err != nil {
			return err
		}
		if err := messageRepo.SendText(cmd.Context(), sendTo, sendText); err != nil {
			return fmt.Errorf("send: %w", err)
		}
		logger.Info("message sent", zap.String("to", sendTo))
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendTo, "to", "", "destination phone number")
	sendCmd.Flags().StringVar(&sendText, "text", "", "message text")
	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("text")
}
