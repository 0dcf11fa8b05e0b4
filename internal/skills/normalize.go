// Package skills canonicalizes skill labels, extracts them from resume text and
// matches candidate skills against a role's required skills.
package skills

import (
	"strings"

	"github.com/jonathan/skill-gap-advisor/internal/fuzzy"
	"github.com/jonathan/skill-gap-advisor/internal/taxonomy"
)

// NormalizeThreshold is the minimum fuzzy ratio for an alias to claim an input
const NormalizeThreshold = 85.0

// Normalizer maps surface-form skill labels to canonical names.
// It is read-only after construction and safe for concurrent use.
type Normalizer struct {
	aliases    *taxonomy.AliasTable
	categories *taxonomy.CategoryTable
}

// NewNormalizer creates a normalizer over the taxonomy's alias and category tables
func NewNormalizer(tax *taxonomy.Taxonomy) *Normalizer {
	return &Normalizer{
		aliases:    tax.Aliases,
		categories: tax.Categories,
	}
}

// Normalize returns the canonical form of raw.
//
// Resolution order: canonical key, then exact alias anywhere in the table,
// then the first entry (in table order) whose alias or canonical name scores
// at least NormalizeThreshold. Unresolved input is returned trimmed with its
// original casing.
func (n *Normalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	if lower == "" {
		return ""
	}

	if n.aliases.IsCanonical(lower) {
		return lower
	}

	entries := n.aliases.Entries()
	for _, e := range entries {
		for _, alias := range e.Aliases {
			if alias == lower {
				return e.Canonical
			}
		}
	}

	for _, e := range entries {
		for _, alias := range e.Aliases {
			if fuzzy.Ratio(lower, alias) >= NormalizeThreshold {
				return e.Canonical
			}
		}
		if fuzzy.Ratio(lower, e.Canonical) >= NormalizeThreshold {
			return e.Canonical
		}
	}

	return trimmed
}

// NormalizeList normalizes each label and drops duplicates, keeping first occurrence order
func (n *Normalizer) NormalizeList(raws []string) []string {
	out := make([]string, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		skill := n.Normalize(raw)
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	return out
}

// Category returns the category of the normalized skill, or "other"
func (n *Normalizer) Category(skill string) string {
	return n.categories.Category(n.Normalize(skill))
}
