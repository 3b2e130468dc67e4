package main

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/se-builders/crm-sync/internal/extract"
)

var (
	hazardsFile        string
	hazardsContact     string
	hazardsConcurrency int
)

// hazardReport is one entry in the scan input file.
type hazardReport struct {
	Project      string `yaml:"project"`
	Location     string `yaml:"location"`
	Analysis     string `yaml:"analysis"`
	ContactEmail string `yaml:"contact_email"`
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Batch-process safety scanner output",
}

var scanHazardsCmd = &cobra.Command{
	Use:   "hazards",
	Short: "Create follow-up tasks from hazard analysis reports",
	Long:  "Reads a YAML file of hazard analyses, classifies each by severity marker, and logs a task per classified hazard. Entries with no recognizable severity are skipped.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if !env.Syncer.Enabled() {
			return eris.New("hubspot integration is not configured")
		}

		raw, err := os.ReadFile(hazardsFile)
		if err != nil {
			return eris.Wrapf(err, "read hazard reports %s", hazardsFile)
		}
		var reports []hazardReport
		if err := yaml.Unmarshal(raw, &reports); err != nil {
			return eris.Wrapf(err, "parse hazard reports %s", hazardsFile)
		}

		var created, skipped atomic.Int64
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(hazardsConcurrency, 1))

		for _, report := range reports {
			g.Go(func() error {
				severity, ok := extract.Severity(report.Analysis)
				if !ok {
					// No severity marker means the analysis was
					// inconclusive; it never reaches the scheduler.
					skipped.Add(1)
					zap.L().Debug("hazard skipped, no severity marker",
						zap.String("project", report.Project),
					)
					return nil
				}

				email := report.ContactEmail
				if email == "" {
					email = hazardsContact
				}

				taskID, err := env.Syncer.LogSafetyIssue(gctx, report.Project, report.Location, severity, report.Analysis, email)
				if err != nil {
					zap.L().Error("hazard task failed",
						zap.String("project", report.Project),
						zap.Error(err),
					)
					return nil // keep processing the rest of the batch
				}

				created.Add(1)
				zap.L().Info("hazard task created",
					zap.String("task_id", taskID),
					zap.String("project", report.Project),
					zap.String("severity", string(severity)),
				)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("hazard scan complete: %d tasks created, %d skipped (no severity)\n",
			created.Load(), skipped.Load())
		return nil
	},
}

func init() {
	scanHazardsCmd.Flags().StringVar(&hazardsFile, "file", "", "YAML file of hazard reports (required)")
	scanHazardsCmd.Flags().StringVar(&hazardsContact, "contact-email", "", "default contact for task assignment")
	scanHazardsCmd.Flags().IntVar(&hazardsConcurrency, "concurrency", 3, "max concurrent task creations")
	_ = scanHazardsCmd.MarkFlagRequired("file")

	scanCmd.AddCommand(scanHazardsCmd)
	rootCmd.AddCommand(scanCmd)
}
