package main

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/se-builders/crm-sync/internal/model"
	syncer "github.com/se-builders/crm-sync/internal/sync"
)

var (
	dealName    string
	dealAmount  float64
	dealStage   string
	dealContact string
	dealProps   []string
)

// money renders dollar amounts with thousands grouping for CLI output.
var money = message.NewPrinter(language.AmericanEnglish)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Manage HubSpot deals",
}

var dealCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a deal, optionally associated with a contact",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		stage := model.StageAppointmentScheduled
		if dealStage != "" {
			parsed, ok := model.ParseDealStage(dealStage)
			if !ok {
				return eris.Errorf("unknown deal stage %q", dealStage)
			}
			stage = parsed
		}

		extra, err := parseProps(dealProps)
		if err != nil {
			return err
		}

		outcome, err := env.Syncer.CreateDeal(ctx, model.DealFields{
			Name:   dealName,
			Amount: dealAmount,
			Stage:  stage,
			Extra:  extra,
		}, dealContact)
		if err != nil {
			if errors.Is(err, syncer.ErrDisabled) {
				return eris.New("hubspot integration is not configured")
			}
			return err
		}

		fmt.Printf("deal created (id %s, amount %s)\n", outcome.ID, money.Sprintf("$%.2f", dealAmount))
		if !outcome.AssociationOK {
			fmt.Println("warning: contact association failed, deal is unlinked")
		}
		return nil
	},
}

func init() {
	dealCreateCmd.Flags().StringVar(&dealName, "name", "", "deal name (required)")
	dealCreateCmd.Flags().Float64Var(&dealAmount, "amount", 0, "deal amount in USD")
	dealCreateCmd.Flags().StringVar(&dealStage, "stage", "", "pipeline stage (default appointmentscheduled)")
	dealCreateCmd.Flags().StringVar(&dealContact, "contact-email", "", "associate deal with this contact")
	dealCreateCmd.Flags().StringArrayVar(&dealProps, "prop", nil, "additional property key=value (repeatable)")
	_ = dealCreateCmd.MarkFlagRequired("name")

	dealCmd.AddCommand(dealCreateCmd)
	rootCmd.AddCommand(dealCmd)
}
