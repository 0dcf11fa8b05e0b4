package skills

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/skill-gap-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder returns fixed vectors; unknown texts map to the zero vector
type fakeEmbedder struct {
	vectors map[string][]float64
	failOn  map[string]bool
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		if f.failOn[t] {
			return nil, errors.New("embed failed: " + t)
		}
		v, ok := f.vectors[t]
		if !ok {
			v = []float64{0, 0, 0}
		}
		out[i] = v
	}
	return out, nil
}

func TestMatchAll_EndToEndScenario(t *testing.T) {
	m := NewMatcher(nil, nil)

	result := m.MatchAll(context.Background(), []string{"python", "django"}, []string{"python", "sql", "leadership"})

	require.Len(t, result.Matched, 1)
	assert.Equal(t, "python", result.Matched[0].Skill)
	assert.Equal(t, "python", result.Matched[0].MatchedTo)
	assert.Equal(t, types.MatchMethodFuzzy, result.Matched[0].Method)
	assert.Equal(t, 100.0, result.Matched[0].Score)
	assert.Equal(t, []string{"sql", "leadership"}, result.Missing)
	assert.Empty(t, result.WeakMatches)
	assert.InDelta(t, 33.33, result.MatchPercentage, 0.001)
}

func TestMatchAll_EmptyTargets(t *testing.T) {
	m := NewMatcher(&fakeEmbedder{}, nil)

	result := m.MatchAll(context.Background(), []string{"python"}, nil)
	assert.Equal(t, 0.0, result.MatchPercentage)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.WeakMatches)
	assert.NotNil(t, result.Missing)
	assert.Empty(t, result.Missing)
}

func TestMatchAll_NoCandidates(t *testing.T) {
	m := NewMatcher(nil, nil)

	result := m.MatchAll(context.Background(), nil, []string{"python", "sql"})
	assert.Equal(t, []string{"python", "sql"}, result.Missing)
	assert.Equal(t, 0.0, result.MatchPercentage)
}

func TestMatchAll_WeakMatchLeavesTargetMissing(t *testing.T) {
	m := NewMatcher(nil, nil)

	// ratio("mysql", "sql") = 75: above the weak bar, below the confirm bar
	result := m.MatchAll(context.Background(), []string{"mysql"}, []string{"sql"})

	assert.Empty(t, result.Matched)
	require.Len(t, result.WeakMatches, 1)
	assert.Equal(t, "mysql", result.WeakMatches[0].Skill)
	assert.Equal(t, "sql", result.WeakMatches[0].PotentialMatch)
	assert.InDelta(t, 75.0, result.WeakMatches[0].FuzzyScore, 1e-9)
	assert.Equal(t, []string{"sql"}, result.Missing)
}

func TestMatchAll_SemanticMatch(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"kubernetes":              {1, 0, 0},
		"sql":                     {0, 1, 0},
		"container orchestration": {0.9, 0.1, 0},
	}}
	m := NewMatcher(emb, nil)

	result := m.MatchAll(context.Background(), []string{"container orchestration"}, []string{"kubernetes", "sql"})

	require.Len(t, result.Matched, 1)
	assert.Equal(t, "kubernetes", result.Matched[0].MatchedTo)
	assert.Equal(t, types.MatchMethodSemantic, result.Matched[0].Method)
	assert.Greater(t, result.Matched[0].Score, SemanticMatchThreshold)
	assert.Equal(t, []string{"sql"}, result.Missing)
	assert.Equal(t, 50.0, result.MatchPercentage)
}

func TestMatchAll_SemanticWeakMatch(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"kubernetes":  {1, 0, 0},
		"sql":         {0, 1, 0},
		"cloud infra": {0.55, 0, 0.835},
	}}
	m := NewMatcher(emb, nil)

	result := m.MatchAll(context.Background(), []string{"cloud infra"}, []string{"kubernetes", "sql"})

	assert.Empty(t, result.Matched)
	require.Len(t, result.WeakMatches, 1)
	assert.Equal(t, "kubernetes", result.WeakMatches[0].PotentialMatch)
	assert.InDelta(t, 0.55, result.WeakMatches[0].SemanticScore, 0.01)
	assert.Equal(t, []string{"kubernetes", "sql"}, result.Missing)
}

func TestMatchAll_FailingEmbedderEqualsFuzzyOnly(t *testing.T) {
	candidates := []string{"python", "mysql", "container orchestration", "react.js"}
	targets := []string{"python", "sql", "kubernetes", "react"}

	fuzzyOnly := NewMatcher(nil, nil).MatchAll(context.Background(), candidates, targets)
	failing := NewMatcher(&fakeEmbedder{err: errors.New("service down")}, nil).MatchAll(context.Background(), candidates, targets)

	assert.Equal(t, fuzzyOnly, failing)
}

func TestMatchAll_CandidateEmbeddingFailureIsIsolated(t *testing.T) {
	emb := &fakeEmbedder{
		vectors: map[string][]float64{
			"kubernetes":              {1, 0, 0},
			"container orchestration": {1, 0, 0},
			"relational stores":       {0, 1, 0},
			"sql":                     {0, 1, 0},
		},
		failOn: map[string]bool{"relational stores": true},
	}
	m := NewMatcher(emb, nil)

	result := m.MatchAll(context.Background(),
		[]string{"container orchestration", "relational stores"},
		[]string{"kubernetes", "sql"})

	require.Len(t, result.Matched, 1)
	assert.Equal(t, "kubernetes", result.Matched[0].MatchedTo)
	assert.Equal(t, []string{"sql"}, result.Missing)
	// target batch, candidate batch, then one call per candidate
	assert.Equal(t, 4, emb.calls)
}

func TestMatchAll_TargetResolvedOncePerOccurrence(t *testing.T) {
	m := NewMatcher(nil, nil)

	single := m.MatchAll(context.Background(), []string{"python", "Python"}, []string{"python"})
	assert.Len(t, single.Matched, 1)
	assert.Empty(t, single.Missing)
	assert.Equal(t, 100.0, single.MatchPercentage)

	double := m.MatchAll(context.Background(), []string{"python", "Python"}, []string{"python", "python"})
	assert.Len(t, double.Matched, 2)
	assert.Empty(t, double.Missing)
}

func TestMatchAll_PartitionInvariant(t *testing.T) {
	m := NewMatcher(nil, nil)

	cases := []struct {
		candidates []string
		targets    []string
	}{
		{[]string{"python", "django"}, []string{"python", "sql", "leadership"}},
		{[]string{"mysql", "postgres", "sql"}, []string{"sql", "postgresql"}},
		{[]string{"react", "reactjs", "react native"}, []string{"react", "react"}},
		{[]string{}, []string{"a", "b", "c"}},
		{[]string{"machine learning", "learning"}, []string{"machine learning", "deep learning", "ml"}},
	}

	for _, c := range cases {
		t.Run(strings.Join(c.targets, ","), func(t *testing.T) {
			result := m.MatchAll(context.Background(), c.candidates, c.targets)
			assert.Equal(t, len(c.targets), len(result.Matched)+len(result.Missing))
			assert.LessOrEqual(t, result.MatchPercentage, 100.0)
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2}, []float64{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
	assert.Equal(t, 0.0, cosineSimilarity([]float64{1}, []float64{1, 1}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
}
