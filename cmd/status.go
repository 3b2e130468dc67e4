package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/se-builders/crm-sync/internal/model"
)

var statusLookbackDays int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show integration status and recent sync counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.Syncer.Enabled() {
			fmt.Println("HubSpot: connected")
		} else {
			fmt.Println("HubSpot: not configured (set SEB_HUBSPOT_TOKEN)")
		}

		if env.Journal == nil {
			fmt.Println("Journal: disabled")
			return nil
		}

		since := time.Now().AddDate(0, 0, -statusLookbackDays)
		counts, err := env.Journal.CountByKind(ctx, since)
		if err != nil {
			return err
		}

		fmt.Printf("Activity (last %d days):\n", statusLookbackDays)
		for _, kind := range []model.ActivityKind{
			model.ActivityContactUpserted,
			model.ActivityDealCreated,
			model.ActivityTaskCreated,
			model.ActivityConversationLogged,
		} {
			fmt.Printf("  %-22s %d\n", kind, counts[kind])
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusLookbackDays, "days", 7, "lookback window for counters")
	rootCmd.AddCommand(statusCmd)
}
