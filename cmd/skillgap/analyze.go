package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/skill-gap-advisor/internal/advisor"
	"github.com/jonathan/skill-gap-advisor/internal/ingestion"
	"github.com/jonathan/skill-gap-advisor/internal/observability"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Match a candidate against a job role and report the skill gaps",
	Long: `Extract the candidate's skills from a resume file and/or --skills, match them
against a job template (--template) or an explicit target list (--targets),
and print the ranked gap report. With --plan a learning plan is built for the
missing skills as well.`,
	RunE: runAnalyze,
}

var (
	analyzeResume     string
	analyzeSkills     string
	analyzeTemplate   string
	analyzeTargets    string
	analyzePlan       bool
	analyzeLevel      string
	analyzeHours      float64
	analyzeOutputFile string
	analyzeJSON       bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume file")
	analyzeCmd.Flags().StringVarP(&analyzeSkills, "skills", "s", "", "Comma-separated candidate skills")
	analyzeCmd.Flags().StringVarP(&analyzeTemplate, "template", "t", "", "Job template key (see 'skillgap templates list')")
	analyzeCmd.Flags().StringVar(&analyzeTargets, "targets", "", "Comma-separated target skills (overrides --template)")
	analyzeCmd.Flags().BoolVar(&analyzePlan, "plan", false, "Also build a learning plan for the missing skills")
	analyzeCmd.Flags().StringVar(&analyzeLevel, "level", "", "Current level: Beginner, Intermediate, or Advanced")
	analyzeCmd.Flags().Float64Var(&analyzeHours, "hours", 0, "Weekly study hours")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (implies --json)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print JSON instead of a summary")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeResume == "" && analyzeSkills == "" {
		return fmt.Errorf("either --resume or --skills must be provided")
	}
	if analyzeTemplate == "" && analyzeTargets == "" {
		return fmt.Errorf("either --template or --targets must be provided")
	}

	ctx := context.Background()

	a, cfg, closeFn, err := openAdvisor(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	var resumeText string
	if analyzeResume != "" {
		doc, err := ingestion.ReadFile(analyzeResume, &ingestion.Options{
			MaxBytes: cfg.MaxUploadBytes,
			Formats:  cfg.AllowedFormats,
		})
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		if doc.LowQuality {
			slog.Warn("resume text could not be extracted, using --skills only", slog.String("file", doc.FileName))
		}
		resumeText = advisor.ResumeText(doc)
	}

	var onProgress advisor.ProgressCallback
	if cfg.Verbose {
		onProgress = func(event advisor.ProgressEvent) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", event.Step, event.Message)
		}
	}

	analysis, err := a.Analyze(ctx, advisor.Request{
		ResumeText:   resumeText,
		ManualSkills: splitCSV(analyzeSkills),
		TemplateKey:  analyzeTemplate,
		TargetSkills: splitCSV(analyzeTargets),
		OnProgress:   onProgress,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	resp := advisor.Result{Analysis: analysis}
	if analyzePlan {
		resp.Plan = a.PlanFor(ctx, analysis, analyzeLevel, analyzeHours, onProgress)
	}

	if analyzeJSON || analyzeOutputFile != "" {
		return writeJSON(cmd.OutOrStdout(), analyzeOutputFile, resp)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintSkills("Candidate Skills", analysis.CandidateSkills)
	printer.PrintMatchResult(analysis.Match)
	printer.PrintGapReport(analysis.Report)
	if resp.Plan != nil {
		printer.PrintLearningPlan(resp.Plan)
	}
	return nil
}
