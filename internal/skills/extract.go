package skills

import (
	"regexp"
	"sort"
	"strings"
)

const maxTokenLength = 30

var skillTokenPattern = regexp.MustCompile(`[A-Za-z+#.]{2,}`)

// Extractor pulls candidate skill tokens out of free text
type Extractor struct {
	normalizer *Normalizer
}

// NewExtractor creates an extractor that normalizes what it finds
func NewExtractor(normalizer *Normalizer) *Extractor {
	return &Extractor{normalizer: normalizer}
}

// Tokens returns distinct skill-like tokens ordered longest first, ties broken lexically
func Tokens(text string) []string {
	matches := skillTokenPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if len(m) < 2 || len(m) > maxTokenLength {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		tokens = append(tokens, m)
	}

	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}

// Extract returns the normalized, deduplicated skills found in text
func (e *Extractor) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	return e.normalizer.NormalizeList(Tokens(text))
}

// Merge appends manually entered skills after extracted ones and normalizes the union
func (e *Extractor) Merge(extracted, manual []string) []string {
	all := make([]string, 0, len(extracted)+len(manual))
	all = append(all, extracted...)
	for _, m := range manual {
		if strings.TrimSpace(m) != "" {
			all = append(all, m)
		}
	}
	return e.normalizer.NormalizeList(all)
}
