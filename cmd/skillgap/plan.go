package main

import (
	"context"
	"fmt"

	"github.com/jonathan/skill-gap-advisor/internal/advisor"
	"github.com/jonathan/skill-gap-advisor/internal/observability"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a 12-week learning plan for a list of missing skills",
	Long: `Build a 12-week learning plan for the given skills. The configured text
generation provider is used when available; otherwise a deterministic plan
rotates through the skills week by week.`,
	RunE: runPlan,
}

var (
	planSkills     string
	planJobTitle   string
	planLevel      string
	planHours      float64
	planOutputFile string
	planJSON       bool
)

func init() {
	planCmd.Flags().StringVarP(&planSkills, "skills", "s", "", "Comma-separated missing skills in priority order")
	planCmd.Flags().StringVar(&planJobTitle, "job-title", "", "Target job title")
	planCmd.Flags().StringVar(&planLevel, "level", "", "Current level: Beginner, Intermediate, or Advanced")
	planCmd.Flags().Float64Var(&planHours, "hours", 0, "Weekly study hours")
	planCmd.Flags().StringVarP(&planOutputFile, "out", "o", "", "Path to output JSON file (implies --json)")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print JSON instead of a summary")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if planHours < 0 {
		return fmt.Errorf("--hours must be non-negative")
	}

	ctx := context.Background()

	a, cfg, closeFn, err := openAdvisor(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	var onProgress advisor.ProgressCallback
	if cfg.Verbose {
		onProgress = func(event advisor.ProgressEvent) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", event.Step, event.Message)
		}
	}

	learningPlan := a.Plan(ctx, advisor.PlanRequest{
		MissingSkills: splitCSV(planSkills),
		JobTitle:      planJobTitle,
		Level:         planLevel,
		WeeklyHours:   planHours,
		OnProgress:    onProgress,
	})

	if planJSON || planOutputFile != "" {
		return writeJSON(cmd.OutOrStdout(), planOutputFile, learningPlan)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintLearningPlan(learningPlan)
	return nil
}
