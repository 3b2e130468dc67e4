package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/se-builders/crm-sync/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "crm-sync",
	Short: "HubSpot CRM synchronization for the SE Builders AI platform",
	Long:  "Turns application events (chat transcripts, cost estimates, safety hazards) into deduplicated HubSpot contacts, deals, tasks, and notes.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
