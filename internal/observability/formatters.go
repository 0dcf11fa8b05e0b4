// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skill-gap-advisor/internal/llm"
	"github.com/jonathan/skill-gap-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs what was extracted from an uploaded resume.
func (p *Printer) PrintDocument(doc *types.Document, contact types.ContactInfo) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", doc.FileName))
	sb.WriteString(fmt.Sprintf("Format:   %s\n", doc.FileFormat))
	sb.WriteString(fmt.Sprintf("Length:   %d characters\n", len(doc.RawText)))
	if doc.LowQuality {
		sb.WriteString("Warning:  no text could be extracted\n")
	}
	if contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", contact.Email))
	}
	if contact.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", contact.Phone))
	}
	if contact.LinkedIn != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", contact.LinkedIn))
	}

	p.printBox("EXTRACTED DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs a titled skill list.
func (p *Printer) PrintSkills(title string, skills []string) {
	if len(skills) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d skills:\n", len(skills)))
	for _, line := range wrapList(skills, boxWidth-6) {
		sb.WriteString(fmt.Sprintf("  %s\n", line))
	}

	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs confirmed and weak matches.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match: %.2f%%\n\n", result.MatchPercentage))

	if len(result.Matched) > 0 {
		sb.WriteString("Matched:\n")
		count := min(len(result.Matched), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := result.Matched[i]
			sb.WriteString(fmt.Sprintf("  ✓ %s → %s (%s %.2f)\n", m.Skill, m.MatchedTo, m.Method, m.Score))
		}
		if len(result.Matched) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Matched)-maxItemsToShow))
		}
	}

	if len(result.WeakMatches) > 0 {
		sb.WriteString("Weak:\n")
		count := min(len(result.WeakMatches), 3)
		for i := 0; i < count; i++ {
			w := result.WeakMatches[i]
			sb.WriteString(fmt.Sprintf("  ~ %s ≈ %s\n", w.Skill, w.PotentialMatch))
		}
		if len(result.WeakMatches) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.WeakMatches)-3))
		}
	}

	p.printBox("SKILL MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGapReport outputs the summary, ranked missing skills and clusters.
func (p *Printer) PrintGapReport(report *types.GapReport) {
	if report == nil {
		return
	}

	s := report.Summary
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Required: %d  Matched: %d  Missing: %d  Weak: %d\n",
		s.TotalRequired, s.Matched, s.Missing, s.Weak))
	sb.WriteString(fmt.Sprintf("Completion: %.2f%%\n", s.CompletionPercentage))

	if len(report.MissingSkills) > 0 {
		sb.WriteString("\nMissing skills:\n")
		count := min(len(report.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			r := report.MissingSkills[i]
			sb.WriteString(fmt.Sprintf("  %d. %s [%s, %.0f]", i+1, r.Skill, r.Priority, r.Importance))
			if len(r.Dependencies) > 0 {
				sb.WriteString(fmt.Sprintf(" needs %s", strings.Join(r.Dependencies, ", ")))
			}
			sb.WriteString("\n")
		}
		if len(report.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.MissingSkills)-maxItemsToShow))
		}
	}

	if report.SkillClusters != nil && len(report.SkillClusters.Clusters) > 0 {
		sb.WriteString("\nGroups:\n")
		for _, c := range report.SkillClusters.Clusters {
			sb.WriteString(fmt.Sprintf("  %d: %s\n", c.ClusterID+1, strings.Join(c.Skills, ", ")))
		}
	}

	p.printBox("GAP REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLearningPlan outputs one line per week plus the plan totals.
func (p *Printer) PrintLearningPlan(plan *types.LearningPlan) {
	if plan == nil || len(plan.Weeks) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s  Total: %.1f hours\n\n", plan.Source, plan.TotalTimeHours))
	for _, w := range plan.Weeks {
		sb.WriteString(fmt.Sprintf("Week %2d  %-28s %4.1fh", w.Week, w.FocusSkill, w.Hours))
		if len(w.Videos) > 0 {
			sb.WriteString(fmt.Sprintf("  %d videos", len(w.Videos)))
		}
		sb.WriteString("\n")
	}

	if len(plan.SuccessMetrics) > 0 {
		sb.WriteString("\nSuccess metrics:\n")
		for _, m := range plan.SuccessMetrics {
			sb.WriteString(fmt.Sprintf("  • %s\n", m))
		}
	}

	p.printBox("LEARNING PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLLMStatus outputs text generation availability.
func (p *Printer) PrintLLMStatus(status llm.Status) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Provider:  %s\n", status.Provider))
	sb.WriteString(fmt.Sprintf("Available: %t", status.Available))
	if status.InitError != "" {
		sb.WriteString(fmt.Sprintf("\nError:     %s", status.InitError))
	}
	p.printBox("TEXT GENERATION", sb.String())
}

// wrapList joins items with ", " into lines no wider than width
func wrapList(items []string, width int) []string {
	var lines []string
	var current string
	for _, item := range items {
		switch {
		case current == "":
			current = item
		case len(current)+2+len(item) > width:
			lines = append(lines, current+",")
			current = item
		default:
			current += ", " + item
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
