package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kudobolivia/frontdesk/internal/conf"
)

var (
	logger *zap.Logger
	cfg    *conf.Config
	debug  bool
)

var rootCmd = &cobra.Command{
	Use:   "frontdesk",
	Short: "WhatsApp front-desk responder for KUDO Bolivia",
	Long: `Answers WhatsApp inquiries from a fixed menu, hands off to the team on
request and falls back to a generative model for everything else.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file
		envErr := godotenv.Load()

		cfg = conf.LoadFromEnv()
		if debug {
			cfg.Debug = true
		}

		// Initialize logger
		config := zap.NewProductionConfig()
		if cfg.Debug {
			config = zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if envErr != nil {
			logger.Debug("no .env file found, using environment variables")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, catalogCmd, sendCmd, auditProbeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
