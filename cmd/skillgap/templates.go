package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/skill-gap-advisor/internal/advisor"
	"github.com/jonathan/skill-gap-advisor/internal/db"
	"github.com/jonathan/skill-gap-advisor/internal/templates"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and manage job templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesList,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show KEY",
	Short: "Show one job template with skill categories",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

var templatesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write job templates to the database",
	Long: `Create the job_templates table if needed and upsert every template from
job_templates_path (or the built-in templates) into it.`,
	Args: cobra.NoArgs,
	RunE: runTemplatesSeed,
}

var (
	templatesJSON  bool
	templatesDBURL string
)

func init() {
	templatesCmd.PersistentFlags().BoolVar(&templatesJSON, "json", false, "Print JSON instead of a table")
	templatesSeedCmd.Flags().StringVar(&templatesDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd, templatesSeedCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry, err := advisor.LoadTemplates(context.Background(), cfg, newLogger(cfg.Verbose))
	if err != nil {
		return err
	}

	list := registry.List()
	if templatesJSON {
		return writeJSON(cmd.OutOrStdout(), "", map[string]any{"templates": list})
	}

	out := cmd.OutOrStdout()
	for _, t := range list {
		_, _ = fmt.Fprintf(out, "%-20s %-28s %d skills\n", t.Key, t.Title, len(t.RequiredSkills))
	}
	return nil
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	a, _, closeFn, err := openAdvisor(context.Background())
	if err != nil {
		return err
	}
	defer closeFn()

	tpl, err := a.Templates().Get(args[0])
	if err != nil {
		return err
	}

	if templatesJSON {
		categories := make(map[string]string, len(tpl.RequiredSkills))
		for _, skill := range tpl.RequiredSkills {
			categories[skill] = a.Category(skill)
		}
		return writeJSON(cmd.OutOrStdout(), "", map[string]any{
			"key":             tpl.Key,
			"title":           tpl.Title,
			"required_skills": tpl.RequiredSkills,
			"categories":      categories,
		})
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s (%s)\n", tpl.Title, tpl.Key)
	for _, skill := range tpl.RequiredSkills {
		_, _ = fmt.Fprintf(out, "  - %-24s %s\n", skill, a.Category(skill))
	}
	return nil
}

func runTemplatesSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = templatesDBURL
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	registry := templates.Default()
	if cfg.JobTemplatesPath != "" {
		if registry, err = templates.LoadFile(cfg.JobTemplatesPath); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := database.SeedJobTemplates(ctx, registry.List()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d job templates\n", registry.Len())
	return nil
}
