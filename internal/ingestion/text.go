package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpace     = regexp.MustCompile(`\s+`)
	excessiveBlank = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes extracted text while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\f", "\n")

	// 2. Clean each line
	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	// 3. Join and collapse blank runs (max 2 consecutive newlines)
	result := excessiveBlank.ReplaceAllString(strings.Join(cleanedLines, "\n"), "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	// Markdown headings lose their indentation
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullets are kept verbatim after their indentation
	leadingSpace := len(line) - len(trimmed)
	content := trimmed
	if !isBulletLine(line) {
		content = multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
	}
	if leadingSpace > 0 {
		return strings.Repeat(" ", leadingSpace) + content
	}
	return content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}
