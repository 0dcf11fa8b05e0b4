package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_LearningPlan(t *testing.T) {
	prompt, err := Render(LearningPlan, PlanData{
		JobTitle:    "DevOps Engineer",
		Skills:      "kubernetes, terraform",
		Level:       "Intermediate",
		WeeklyHours: "7.5",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "12-week learning plan for the target job: DevOps Engineer.")
	assert.Contains(t, prompt, "Missing skills: kubernetes, terraform\n")
	assert.Contains(t, prompt, "Current level: Intermediate\n")
	assert.Contains(t, prompt, "Weekly hours: 7.5\n")
	assert.NotContains(t, prompt, "{{")
}

func TestRender_VideoQuery(t *testing.T) {
	query, err := Render(VideoQuery, VideoData{Skill: "docker", Level: "Beginner"})
	require.NoError(t, err)
	assert.Equal(t, "docker tutorial for Beginner", query)
}

func TestRender_MapData(t *testing.T) {
	query, err := Render(VideoQuery, map[string]string{"Skill": "sql", "Level": "Advanced"})
	require.NoError(t, err)
	assert.Equal(t, "sql tutorial for Advanced", query)
}

func TestRender_MissingField(t *testing.T) {
	_, err := Render(VideoQuery, map[string]string{"Skill": "sql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "video-query")
}

func TestRender_UnknownKey(t *testing.T) {
	_, err := Render("nonexistent-key", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestKeys(t *testing.T) {
	keys, err := Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{LearningPlan, VideoQuery}, keys)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := parse("nonexistent.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}
