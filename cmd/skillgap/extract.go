package main

import (
	"context"
	"fmt"

	"github.com/jonathan/skill-gap-advisor/internal/ingestion"
	"github.com/jonathan/skill-gap-advisor/internal/observability"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract text, contact details, and skills from a resume file",
	Long:  "Read a PDF, DOCX, DOC, TXT, MD, or HTML resume and print its text, contact details, and normalized skills.",
	RunE:  runExtract,
}

var (
	extractInputFile  string
	extractOutputFile string
	extractSkills     string
	extractJSON       bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to resume file (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (implies --json)")
	extractCmd.Flags().StringVarP(&extractSkills, "skills", "s", "", "Comma-separated skills to merge with the extracted ones")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print JSON instead of a summary")

	if err := extractCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, cfg, closeFn, err := openAdvisor(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	doc, err := ingestion.ReadFile(extractInputFile, &ingestion.Options{
		MaxBytes: cfg.MaxUploadBytes,
		Formats:  cfg.AllowedFormats,
	})
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	resp := a.ExtractDocument(doc, splitCSV(extractSkills))

	if extractJSON || extractOutputFile != "" {
		return writeJSON(cmd.OutOrStdout(), extractOutputFile, resp)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if cfg.Verbose {
		printer.PrintDocument(doc, resp.ContactInfo)
	}
	printer.PrintSkills("Extracted Skills", resp.Skills)
	return nil
}
