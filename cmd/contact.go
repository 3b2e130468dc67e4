package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/se-builders/crm-sync/internal/model"
	syncer "github.com/se-builders/crm-sync/internal/sync"
)

var (
	contactEmail     string
	contactFirstName string
	contactLastName  string
	contactPhone     string
	contactCompany   string
	contactProps     []string
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage HubSpot contacts",
}

var contactCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create or update a contact keyed by email",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		extra, err := parseProps(contactProps)
		if err != nil {
			return err
		}

		id, err := env.Syncer.UpsertContact(ctx, model.ContactFields{
			Email:     contactEmail,
			FirstName: contactFirstName,
			LastName:  contactLastName,
			Phone:     contactPhone,
			Company:   contactCompany,
			Extra:     extra,
		})
		if err != nil {
			if errors.Is(err, syncer.ErrDisabled) {
				return eris.New("hubspot integration is not configured")
			}
			return err
		}

		fmt.Printf("contact upserted (id %s)\n", id)
		return nil
	},
}

// parseProps converts repeated key=value flags to a property map.
func parseProps(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	props := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, eris.Errorf("invalid property %q, expected key=value", pair)
		}
		props[k] = v
	}
	return props, nil
}

func init() {
	contactCreateCmd.Flags().StringVar(&contactEmail, "email", "", "contact email (required)")
	contactCreateCmd.Flags().StringVar(&contactFirstName, "first", "", "first name")
	contactCreateCmd.Flags().StringVar(&contactLastName, "last", "", "last name")
	contactCreateCmd.Flags().StringVar(&contactPhone, "phone", "", "phone number")
	contactCreateCmd.Flags().StringVar(&contactCompany, "company", "", "company name")
	contactCreateCmd.Flags().StringArrayVar(&contactProps, "prop", nil, "additional property key=value (repeatable)")
	_ = contactCreateCmd.MarkFlagRequired("email")

	contactCmd.AddCommand(contactCreateCmd)
	rootCmd.AddCommand(contactCmd)
}
