// Package gaps turns a match result into a ranked, optionally clustered gap report.
package gaps

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/jonathan/skill-gap-advisor/internal/taxonomy"
	"github.com/jonathan/skill-gap-advisor/internal/types"
)

// Priority cut-offs on the importance scale
const (
	HighPriorityImportance   = 8.0
	MediumPriorityImportance = 6.0
)

// DefaultClusters is the number of thematic groups requested by Analyze
const DefaultClusters = 3

// Clusterer assigns a group label to each skill
type Clusterer interface {
	Cluster(ctx context.Context, skills []string, k int) ([]int, error)
}

// Analyzer ranks and groups missing skills. It holds only read-only tables.
type Analyzer struct {
	importance   *taxonomy.ImportanceTable
	dependencies *taxonomy.DependencyTable
	clusterer    Clusterer
	nClusters    int
	logger       *slog.Logger
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithClusterer enables thematic grouping of missing skills
func WithClusterer(c Clusterer) Option {
	return func(a *Analyzer) { a.clusterer = c }
}

// WithClusters sets the number of groups requested by Analyze
func WithClusters(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.nClusters = n
		}
	}
}

// WithLogger sets the logger for degraded paths
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer creates an analyzer over the taxonomy's importance and dependency tables
func NewAnalyzer(tax *taxonomy.Taxonomy, opts ...Option) *Analyzer {
	a := &Analyzer{
		importance:   tax.Importance,
		dependencies: tax.Dependencies,
		nClusters:    DefaultClusters,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze builds the gap report for a match result
func (a *Analyzer) Analyze(ctx context.Context, result *types.MatchResult) *types.GapReport {
	matched, missing, weak := len(result.Matched), len(result.Missing), len(result.WeakMatches)
	total := matched + missing + weak

	completion := 0.0
	if total > 0 {
		completion = roundTo(float64(matched)/float64(total)*100, 2)
	}

	weakSkills := make([]types.WeakMatch, weak)
	copy(weakSkills, result.WeakMatches)

	return &types.GapReport{
		Summary: types.GapSummary{
			TotalRequired:        total,
			Matched:              matched,
			Missing:              missing,
			Weak:                 weak,
			CompletionPercentage: completion,
		},
		MissingSkills: a.RankMissing(result.Missing),
		WeakSkills:    weakSkills,
		SkillClusters: a.ClusterMissing(ctx, result.Missing, a.nClusters),
	}
}

// RankMissing orders missing skills by importance, highest first.
// Equal importance keeps input order.
func (a *Analyzer) RankMissing(missing []string) []types.RankedSkill {
	ranked := make([]types.RankedSkill, 0, len(missing))
	for _, skill := range missing {
		importance := a.importance.Lookup(skill)
		ranked = append(ranked, types.RankedSkill{
			Skill:        skill,
			Importance:   importance,
			Priority:     PriorityFor(importance),
			Dependencies: a.dependencies.Lookup(skill),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Importance > ranked[j].Importance
	})
	return ranked
}

// PriorityFor buckets an importance weight
func PriorityFor(importance float64) types.Priority {
	switch {
	case importance >= HighPriorityImportance:
		return types.PriorityHigh
	case importance >= MediumPriorityImportance:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

// ClusterMissing groups missing skills into at most n clusters.
//
// Fewer skills than n reduces the count to max(1, len-1). An empty input
// yields no clusters. Any clustering failure yields one cluster holding every
// skill, with NClusters 1 and Error set to the reason.
func (a *Analyzer) ClusterMissing(ctx context.Context, missing []string, n int) *types.ClusterResult {
	if len(missing) < n {
		n = max(1, len(missing)-1)
	}
	if n == 0 || len(missing) == 0 {
		return &types.ClusterResult{Clusters: []types.SkillCluster{}}
	}

	labels, err := a.cluster(ctx, missing, n)
	if err == nil && len(labels) != len(missing) {
		err = fmt.Errorf("clusterer returned %d labels for %d skills", len(labels), len(missing))
	}
	if err != nil {
		a.logger.Warn("clustering missing skills failed",
			slog.Int("skills", len(missing)),
			slog.Any("error", err))
		return &types.ClusterResult{
			Clusters:  []types.SkillCluster{{ClusterID: 0, Skills: append([]string(nil), missing...)}},
			NClusters: 1,
			Error:     err.Error(),
		}
	}

	// number clusters by first appearance so output is stable regardless of label values
	ids := make(map[int]int)
	var clusters []types.SkillCluster
	for i, label := range labels {
		id, ok := ids[label]
		if !ok {
			id = len(clusters)
			ids[label] = id
			clusters = append(clusters, types.SkillCluster{ClusterID: id})
		}
		clusters[id].Skills = append(clusters[id].Skills, missing[i])
	}

	return &types.ClusterResult{Clusters: clusters, NClusters: n}
}

func (a *Analyzer) cluster(ctx context.Context, skills []string, n int) (labels []int, err error) {
	if a.clusterer == nil {
		return nil, fmt.Errorf("clustering unavailable")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clusterer panicked: %v", r)
		}
	}()
	return a.clusterer.Cluster(ctx, skills, n)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
