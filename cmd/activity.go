package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/se-builders/crm-sync/internal/model"
	"github.com/se-builders/crm-sync/internal/store"
)

var (
	activityKind   string
	activitySource string
	activityLimit  int
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "List recent sync activity from the local journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.Journal == nil {
			return eris.New("journal is disabled (store.driver is none)")
		}

		activities, err := env.Journal.ListActivities(ctx, store.ActivityFilter{
			Kind:   model.ActivityKind(activityKind),
			Source: activitySource,
			Limit:  activityLimit,
		})
		if err != nil {
			return err
		}

		if len(activities) == 0 {
			fmt.Println("no activity recorded")
			return nil
		}
		for _, a := range activities {
			fmt.Printf("%s  %-22s %-14s %s  %s\n",
				a.CreatedAt.Local().Format("2006-01-02 15:04"),
				a.Kind, a.Source, a.ObjectID, a.Detail,
			)
		}
		return nil
	},
}

func init() {
	activityCmd.Flags().StringVar(&activityKind, "kind", "", "filter by activity kind")
	activityCmd.Flags().StringVar(&activitySource, "source", "", "filter by source")
	activityCmd.Flags().IntVar(&activityLimit, "limit", 20, "max entries to show")
	rootCmd.AddCommand(activityCmd)
}
