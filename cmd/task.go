package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/se-builders/crm-sync/internal/model"
	syncer "github.com/se-builders/crm-sync/internal/sync"
)

var (
	taskSubject  string
	taskNotes    string
	taskPriority string
	taskDue      string
	taskContact  string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage HubSpot tasks",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a follow-up task",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		priority := model.PriorityMedium
		if taskPriority != "" {
			parsed, ok := model.ParsePriority(taskPriority)
			if !ok {
				return eris.Errorf("unknown priority %q, expected HIGH, MEDIUM, or LOW", taskPriority)
			}
			priority = parsed
		}

		var due time.Time
		if taskDue != "" {
			parsed, err := time.Parse("2006-01-02", taskDue)
			if err != nil {
				return eris.Wrapf(err, "parse due date %q", taskDue)
			}
			due = parsed
		}

		outcome, err := env.Syncer.CreateTask(ctx, model.TaskFields{
			Subject:  taskSubject,
			Body:     taskNotes,
			Priority: priority,
			DueDate:  due,
		}, taskContact)
		if err != nil {
			if errors.Is(err, syncer.ErrDisabled) {
				return eris.New("hubspot integration is not configured")
			}
			return err
		}

		fmt.Printf("task created (id %s)\n", outcome.ID)
		if !outcome.AssociationOK {
			fmt.Println("warning: contact association failed, task is unlinked")
		}
		return nil
	},
}

func init() {
	taskCreateCmd.Flags().StringVar(&taskSubject, "subject", "", "task subject (required)")
	taskCreateCmd.Flags().StringVar(&taskNotes, "notes", "", "task description")
	taskCreateCmd.Flags().StringVar(&taskPriority, "priority", "", "HIGH, MEDIUM, or LOW (default MEDIUM)")
	taskCreateCmd.Flags().StringVar(&taskDue, "due", "", "due date YYYY-MM-DD (default one week out)")
	taskCreateCmd.Flags().StringVar(&taskContact, "contact-email", "", "associate task with this contact")
	_ = taskCreateCmd.MarkFlagRequired("subject")

	taskCmd.AddCommand(taskCreateCmd)
	rootCmd.AddCommand(taskCmd)
}
