// Package types provides type definitions for structured data used throughout the skill-gap advisor.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MatchMethod identifies which signal confirmed a match
type MatchMethod string

const (
	// MatchMethodFuzzy means the token-set ratio cleared the confirm threshold
	MatchMethodFuzzy MatchMethod = "fuzzy"
	// MatchMethodSemantic means embedding cosine similarity cleared the confirm threshold
	MatchMethodSemantic MatchMethod = "semantic"
)

// SkillMatch is a confirmed association between a candidate skill and a target skill
type SkillMatch struct {
	Skill     string      `json:"skill"`
	MatchedTo string      `json:"matched_to"`
	Score     float64     `json:"score"`
	Method    MatchMethod `json:"method"`
}

// WeakMatch is an informational association below the confirm threshold.
// It never resolves the target requirement.
type WeakMatch struct {
	Skill          string  `json:"skill"`
	PotentialMatch string  `json:"potential_match"`
	FuzzyScore     float64 `json:"fuzzy_score"`
	SemanticScore  float64 `json:"semantic_score"`
}

// MatchResult is the outcome of matching candidate skills against a target list
type MatchResult struct {
	Matched         []SkillMatch `json:"matched"`
	WeakMatches     []WeakMatch  `json:"weak_matches"`
	Missing         []string     `json:"missing"`
	MatchPercentage float64      `json:"match_percentage"`
}
