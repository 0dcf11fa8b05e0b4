package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchResult_JSONMarshaling(t *testing.T) {
	result := MatchResult{
		Matched: []SkillMatch{
			{Skill: "python", MatchedTo: "python", Score: 100, Method: MatchMethodFuzzy},
		},
		WeakMatches: []WeakMatch{
			{Skill: "sqlite", PotentialMatch: "sql", FuzzyScore: 66.67},
		},
		Missing:         []string{"sql"},
		MatchPercentage: 50,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"matched_to": "python"`)
	assert.Contains(t, string(jsonBytes), `"method": "fuzzy"`)
	assert.Contains(t, string(jsonBytes), `"potential_match": "sql"`)
	assert.Contains(t, string(jsonBytes), `"match_percentage": 50`)
}

func TestGapReport_MissingNames(t *testing.T) {
	report := GapReport{
		MissingSkills: []RankedSkill{
			{Skill: "sql", Importance: 9, Priority: PriorityHigh},
			{Skill: "leadership", Importance: 7, Priority: PriorityMedium},
		},
	}
	assert.Equal(t, []string{"sql", "leadership"}, report.MissingNames())

	empty := GapReport{}
	assert.Empty(t, empty.MissingNames())
}

func TestGapReport_OmitsClustersWhenAbsent(t *testing.T) {
	jsonBytes, err := json.Marshal(GapReport{})
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "skill_clusters")
}

func TestLearningPlan_JSONUnmarshaling(t *testing.T) {
	input := `{
		"weeks": [
			{"week": 1, "focus_skill": "python", "topics": ["Intro to python"], "hours": 5,
			 "resources": [{"name": "python tutorial", "type": "video", "url": "", "duration": "30-90m"}]}
		],
		"total_time_hours": 5,
		"success_metrics": ["Complete weekly milestones"],
		"prerequisites": [],
		"source": "fallback"
	}`

	var plan LearningPlan
	require.NoError(t, json.Unmarshal([]byte(input), &plan))
	require.Len(t, plan.Weeks, 1)
	assert.Equal(t, "python", plan.Weeks[0].FocusSkill)
	assert.Equal(t, 5.0, plan.Weeks[0].Hours)
	assert.Equal(t, "30-90m", plan.Weeks[0].Resources[0].Duration)
	assert.Equal(t, PlanSourceFallback, plan.Source)
}
