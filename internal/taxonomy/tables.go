// Package taxonomy holds the static skill tables: aliases, importance weights,
// prerequisite dependencies and categories. Tables are immutable once built and
// safe to share across goroutines.
package taxonomy

import (
	"fmt"
	"strings"
)

// DefaultKey is the importance entry used for skills absent from the table
const DefaultKey = "default"

// OtherCategory is returned for skills that belong to no category
const OtherCategory = "other"

// AliasEntry is one canonical skill and its known surface forms
type AliasEntry struct {
	Canonical string
	Aliases   []string
}

// AliasTable maps canonical skill names to alias lists, preserving entry order
type AliasTable struct {
	entries   []AliasEntry
	canonical map[string]struct{}
}

// NewAliasTable builds an alias table. Names are lower-cased and trimmed.
// An alias that equals a different canonical name is rejected.
func NewAliasTable(entries []AliasEntry) (*AliasTable, error) {
	t := &AliasTable{
		entries:   make([]AliasEntry, 0, len(entries)),
		canonical: make(map[string]struct{}, len(entries)),
	}

	for _, e := range entries {
		name := normalizeKey(e.Canonical)
		if name == "" {
			return nil, fmt.Errorf("alias table: empty canonical name")
		}
		if _, dup := t.canonical[name]; dup {
			return nil, fmt.Errorf("alias table: duplicate canonical name %q", name)
		}
		t.canonical[name] = struct{}{}

		aliases := make([]string, 0, len(e.Aliases))
		for _, a := range e.Aliases {
			if a = normalizeKey(a); a != "" {
				aliases = append(aliases, a)
			}
		}
		t.entries = append(t.entries, AliasEntry{Canonical: name, Aliases: aliases})
	}

	for _, e := range t.entries {
		for _, a := range e.Aliases {
			if _, ok := t.canonical[a]; ok && a != e.Canonical {
				return nil, fmt.Errorf("alias table: alias %q of %q is itself a canonical name", a, e.Canonical)
			}
		}
	}

	return t, nil
}

// Entries returns the table entries in table order. Callers must not modify them.
func (t *AliasTable) Entries() []AliasEntry {
	return t.entries
}

// IsCanonical reports whether key is a canonical name
func (t *AliasTable) IsCanonical(key string) bool {
	_, ok := t.canonical[key]
	return ok
}

// Len returns the number of canonical entries
func (t *AliasTable) Len() int {
	return len(t.entries)
}

// ImportanceTable maps lower-cased skill names to numeric weights
type ImportanceTable struct {
	weights  map[string]float64
	fallback float64
}

// NewImportanceTable builds an importance table; the "default" entry is required
func NewImportanceTable(weights map[string]float64) (*ImportanceTable, error) {
	t := &ImportanceTable{weights: make(map[string]float64, len(weights))}
	for k, v := range weights {
		t.weights[normalizeKey(k)] = v
	}
	def, ok := t.weights[DefaultKey]
	if !ok {
		return nil, fmt.Errorf("importance table: missing %q entry", DefaultKey)
	}
	t.fallback = def
	return t, nil
}

// Lookup returns the weight for skill, or the default weight when absent
func (t *ImportanceTable) Lookup(skill string) float64 {
	if w, ok := t.weights[normalizeKey(skill)]; ok {
		return w
	}
	return t.fallback
}

// Default returns the default weight
func (t *ImportanceTable) Default() float64 {
	return t.fallback
}

// DependencyTable maps lower-cased skill names to prerequisite skills
type DependencyTable struct {
	deps map[string][]string
}

// NewDependencyTable builds a dependency table
func NewDependencyTable(deps map[string][]string) *DependencyTable {
	t := &DependencyTable{deps: make(map[string][]string, len(deps))}
	for k, v := range deps {
		t.deps[normalizeKey(k)] = append([]string(nil), v...)
	}
	return t
}

// Lookup returns a copy of the prerequisites for skill. Absent skills yield an empty, non-nil slice.
func (t *DependencyTable) Lookup(skill string) []string {
	deps := t.deps[normalizeKey(skill)]
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// CategoryEntry is one category and its member skills
type CategoryEntry struct {
	Name   string
	Skills []string
}

// CategoryTable assigns skills to categories; the first category listing a skill wins
type CategoryTable struct {
	entries []CategoryEntry
}

// NewCategoryTable builds a category table
func NewCategoryTable(entries []CategoryEntry) *CategoryTable {
	t := &CategoryTable{entries: make([]CategoryEntry, 0, len(entries))}
	for _, e := range entries {
		skills := make([]string, len(e.Skills))
		for i, s := range e.Skills {
			skills[i] = normalizeKey(s)
		}
		t.entries = append(t.entries, CategoryEntry{Name: e.Name, Skills: skills})
	}
	return t
}

// Category returns the category of skill, or "other"
func (t *CategoryTable) Category(skill string) string {
	key := normalizeKey(skill)
	for _, e := range t.entries {
		for _, s := range e.Skills {
			if s == key {
				return e.Name
			}
		}
	}
	return OtherCategory
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
