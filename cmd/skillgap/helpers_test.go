package main

import (
	"bytes"
	"io"
	"testing"
)

// isolateEnv keeps the tests offline and on built-in data
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "none")
	t.Setenv("EMBEDDINGS_PROVIDER", "none")
	for _, key := range []string{
		"DATABASE_URL", "JOB_TEMPLATES_PATH", "SKILL_TAXONOMY_PATH",
		"YOUTUBE_API_KEY", "WEEKLY_HOURS",
	} {
		t.Setenv(key, "")
	}
}

// resetFlags restores every flag variable to its default; cobra keeps
// values between Execute calls
func resetFlags() {
	rootConfigPath, rootVerbose = "", false
	extractInputFile, extractOutputFile, extractSkills, extractJSON = "", "", "", false
	analyzeResume, analyzeSkills, analyzeTemplate, analyzeTargets = "", "", "", ""
	analyzePlan, analyzeLevel, analyzeHours = false, "", 0
	analyzeOutputFile, analyzeJSON = "", false
	planSkills, planJobTitle, planLevel, planHours, planOutputFile, planJSON = "", "", "", 0, "", false
	templatesJSON, templatesDBURL = false, ""
	llmStatusJSON = false
}

// execute runs the root command with args and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}
