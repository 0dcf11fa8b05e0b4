package main

import (
	"context"

	"github.com/jonathan/skill-gap-advisor/internal/observability"
	"github.com/spf13/cobra"
)

var llmStatusJSON bool

var llmStatusCmd = &cobra.Command{
	Use:   "llm-status",
	Short: "Report whether learning plans come from the text generation provider",
	Args:  cobra.NoArgs,
	RunE:  runLLMStatus,
}

func init() {
	llmStatusCmd.Flags().BoolVar(&llmStatusJSON, "json", false, "Print JSON instead of a summary")
	rootCmd.AddCommand(llmStatusCmd)
}

func runLLMStatus(cmd *cobra.Command, _ []string) error {
	a, _, closeFn, err := openAdvisor(context.Background())
	if err != nil {
		return err
	}
	defer closeFn()

	if llmStatusJSON {
		return writeJSON(cmd.OutOrStdout(), "", a.LLMStatus())
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintLLMStatus(a.LLMStatus())
	return nil
}
