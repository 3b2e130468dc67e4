package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/se-builders/crm-sync/internal/extract"
	"github.com/se-builders/crm-sync/internal/model"
	syncer "github.com/se-builders/crm-sync/internal/sync"
)

var (
	chatEmail      string
	chatTranscript string
	chatSummary    string

	estEmail    string
	estFacility string
	estLocation string
	estSqft     int
	estTimeline string
	estQuality  string
	estFile     string
	estAmount   float64
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log application events to HubSpot",
}

var logChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Save a chat transcript as a contact note",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		raw, err := os.ReadFile(chatTranscript)
		if err != nil {
			return eris.Wrapf(err, "read transcript %s", chatTranscript)
		}
		var turns []model.Turn
		if err := json.Unmarshal(raw, &turns); err != nil {
			return eris.Wrapf(err, "parse transcript %s", chatTranscript)
		}

		ok, err := env.Syncer.LogConversation(ctx, chatEmail, turns, chatSummary)
		if err != nil {
			if errors.Is(err, syncer.ErrDisabled) {
				return eris.New("hubspot integration is not configured")
			}
			return err
		}
		if ok {
			fmt.Printf("conversation logged for %s (%d turns)\n", chatEmail, len(turns))
		}
		return nil
	},
}

var logEstimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Record a generated cost estimate as a deal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		raw, err := os.ReadFile(estFile)
		if err != nil {
			return eris.Wrapf(err, "read estimate %s", estFile)
		}
		text := string(raw)

		amount := estAmount
		if amount == 0 {
			amount = extract.EstimatedCost(text)
		}

		dealID, err := env.Syncer.LogCostEstimate(ctx, estEmail, model.EstimateFields{
			FacilityType:  estFacility,
			SquareFootage: estSqft,
			Location:      estLocation,
			Timeline:      estTimeline,
			QualityLevel:  estQuality,
		}, text, amount)
		if err != nil {
			if errors.Is(err, syncer.ErrDisabled) {
				return eris.New("hubspot integration is not configured")
			}
			return err
		}

		fmt.Printf("deal created (id %s, amount %s)\n", dealID, money.Sprintf("$%.2f", amount))
		return nil
	},
}

func init() {
	logChatCmd.Flags().StringVar(&chatEmail, "email", "", "contact email (required)")
	logChatCmd.Flags().StringVar(&chatTranscript, "transcript", "", "JSON transcript file (required)")
	logChatCmd.Flags().StringVar(&chatSummary, "summary", "", "conversation summary")
	_ = logChatCmd.MarkFlagRequired("email")
	_ = logChatCmd.MarkFlagRequired("transcript")

	logEstimateCmd.Flags().StringVar(&estEmail, "email", "", "contact email (required)")
	logEstimateCmd.Flags().StringVar(&estFacility, "facility", "", "facility type")
	logEstimateCmd.Flags().StringVar(&estLocation, "location", "", "project location")
	logEstimateCmd.Flags().IntVar(&estSqft, "sqft", 0, "square footage")
	logEstimateCmd.Flags().StringVar(&estTimeline, "timeline", "", "project timeline")
	logEstimateCmd.Flags().StringVar(&estQuality, "quality", "", "quality level")
	logEstimateCmd.Flags().StringVar(&estFile, "file", "", "estimate text file (required)")
	logEstimateCmd.Flags().Float64Var(&estAmount, "amount", 0, "deal amount (default: extracted from the estimate text)")
	_ = logEstimateCmd.MarkFlagRequired("email")
	_ = logEstimateCmd.MarkFlagRequired("file")

	logCmd.AddCommand(logChatCmd)
	logCmd.AddCommand(logEstimateCmd)
	rootCmd.AddCommand(logCmd)
}
