package ingestion

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors are tried in order; the body is used when none match
var contentSelectors = []string{
	"main",
	"article",
	".resume",
	"#resume",
	".content",
	"#content",
}

// readHTML parses HTML and returns the main body text, one block per line.
func readHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &ReadError{Reader: "html", Message: "failed to parse HTML", Cause: err}
	}

	// Remove elements that never carry resume content
	doc.Find("script, style, noscript, nav, iframe").Remove()

	// Block elements end a line so sections do not run together
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, section").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("br").ReplaceWithHtml("\n")

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	return cleanWhitespace(mainContent.Text()), nil
}

// cleanWhitespace trims each line and drops empty ones
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
