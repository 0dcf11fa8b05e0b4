package skills

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/jonathan/skill-gap-advisor/internal/fuzzy"
	"github.com/jonathan/skill-gap-advisor/internal/llm"
	"github.com/jonathan/skill-gap-advisor/internal/types"
)

// Matching thresholds. Fuzzy scores are 0-100, semantic scores are cosine similarities.
const (
	FuzzyMatchThreshold    = 80.0
	SemanticMatchThreshold = 0.65
	FuzzyWeakThreshold     = 60.0
	SemanticWeakThreshold  = 0.5
)

// Matcher partitions target skills into matched, weak and missing buckets.
// The embedder is optional; without it matching is lexical only.
type Matcher struct {
	embedder llm.Embedder
	logger   *slog.Logger
}

// NewMatcher creates a matcher. A nil embedder disables semantic scoring.
func NewMatcher(embedder llm.Embedder, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{embedder: embedder, logger: logger}
}

type scored struct {
	target string
	score  float64
}

// MatchAll scores every candidate against the full target list.
//
// A candidate confirms its best target when the fuzzy score reaches
// FuzzyMatchThreshold, otherwise when the semantic score reaches
// SemanticMatchThreshold. Candidates above either weak threshold are reported
// as weak matches and leave the target missing. A target is resolved at most
// once per occurrence in targets, so len(Matched)+len(Missing) == len(targets).
func (m *Matcher) MatchAll(ctx context.Context, candidates, targets []string) *types.MatchResult {
	result := &types.MatchResult{
		Matched:     []types.SkillMatch{},
		WeakMatches: []types.WeakMatch{},
		Missing:     []string{},
	}
	if len(targets) == 0 {
		return result
	}

	lowerTargets := make([]string, len(targets))
	for i, t := range targets {
		lowerTargets[i] = strings.ToLower(strings.TrimSpace(t))
	}

	candidateVecs, targetVecs := m.embedAll(ctx, candidates, targets)

	pending := make([]bool, len(targets))
	for i := range pending {
		pending[i] = true
	}

	for ci, candidate := range candidates {
		lower := strings.ToLower(strings.TrimSpace(candidate))

		bestFuzzy := scored{score: -1}
		for ti, t := range lowerTargets {
			s := fuzzy.TokenSetRatio(lower, t)
			if s > bestFuzzy.score {
				bestFuzzy = scored{target: targets[ti], score: s}
			}
		}

		bestSemantic := scored{}
		if targetVecs != nil && candidateVecs[ci] != nil {
			bestSemantic.score = math.Inf(-1)
			for ti, tv := range targetVecs {
				s := cosineSimilarity(candidateVecs[ci], tv)
				if s > bestSemantic.score {
					bestSemantic = scored{target: targets[ti], score: s}
				}
			}
		}

		switch {
		case bestFuzzy.score >= FuzzyMatchThreshold:
			if resolve(pending, targets, bestFuzzy.target) {
				result.Matched = append(result.Matched, types.SkillMatch{
					Skill:     candidate,
					MatchedTo: bestFuzzy.target,
					Score:     bestFuzzy.score,
					Method:    types.MatchMethodFuzzy,
				})
			}
		case bestSemantic.score >= SemanticMatchThreshold:
			if resolve(pending, targets, bestSemantic.target) {
				result.Matched = append(result.Matched, types.SkillMatch{
					Skill:     candidate,
					MatchedTo: bestSemantic.target,
					Score:     bestSemantic.score,
					Method:    types.MatchMethodSemantic,
				})
			}
		case bestFuzzy.score >= FuzzyWeakThreshold || bestSemantic.score >= SemanticWeakThreshold:
			potential := bestSemantic.target
			if bestFuzzy.score >= FuzzyWeakThreshold {
				potential = bestFuzzy.target
			}
			result.WeakMatches = append(result.WeakMatches, types.WeakMatch{
				Skill:          candidate,
				PotentialMatch: potential,
				FuzzyScore:     bestFuzzy.score,
				SemanticScore:  bestSemantic.score,
			})
		}
	}

	for i, t := range targets {
		if pending[i] {
			result.Missing = append(result.Missing, t)
		}
	}
	result.MatchPercentage = roundTo(float64(len(result.Matched))/float64(len(targets))*100, 2)
	return result
}

// embedAll returns per-candidate and per-target vectors. Target vectors are
// nil when semantic scoring is unavailable; a nil candidate vector disables
// semantic scoring for that candidate only.
func (m *Matcher) embedAll(ctx context.Context, candidates, targets []string) ([][]float64, [][]float64) {
	candidateVecs := make([][]float64, len(candidates))
	if m.embedder == nil || len(candidates) == 0 {
		return candidateVecs, nil
	}

	targetVecs, err := m.embedder.Embed(ctx, targets)
	if err != nil || len(targetVecs) != len(targets) {
		m.logger.Warn("semantic matching disabled for this run",
			slog.Int("targets", len(targets)),
			slog.Any("error", err))
		return candidateVecs, nil
	}

	vecs, err := m.embedder.Embed(ctx, candidates)
	if err == nil && len(vecs) == len(candidates) {
		return vecs, targetVecs
	}

	// batch failed; retry one by one so a single bad input only affects itself
	for i, c := range candidates {
		v, err := m.embedder.Embed(ctx, []string{c})
		if err != nil || len(v) != 1 {
			m.logger.Warn("embedding failed for candidate skill",
				slog.String("skill", c),
				slog.Any("error", err))
			continue
		}
		candidateVecs[i] = v[0]
	}
	return candidateVecs, targetVecs
}

// resolve clears the first pending occurrence of target and reports whether one existed
func resolve(pending []bool, targets []string, target string) bool {
	for i, t := range targets {
		if pending[i] && t == target {
			pending[i] = false
			return true
		}
	}
	return false
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
