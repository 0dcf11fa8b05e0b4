package plan

import (
	"fmt"

	"github.com/jonathan/skill-gap-advisor/internal/types"
)

// BuildFallbackPlan distributes skills over the plan weeks round-robin.
// It never fails and always returns exactly PlanWeeks weeks.
func BuildFallbackPlan(missingSkills []string, weeklyHours float64) *types.LearningPlan {
	skills := make([]string, 0, len(missingSkills))
	for _, s := range missingSkills {
		if s != "" {
			skills = append(skills, s)
		}
	}
	if len(skills) == 0 {
		skills = []string{PlaceholderSkill}
	}

	weeks := make([]types.WeekPlan, 0, PlanWeeks)
	for i := 0; i < PlanWeeks; i++ {
		weeks = append(weeks, fallbackWeek(i+1, skills[i%len(skills)], weeklyHours))
	}

	return &types.LearningPlan{
		Weeks:          weeks,
		TotalTimeHours: totalHours(weeks),
		SuccessMetrics: []string{"Complete weekly milestones", "Build final projects"},
		Prerequisites:  []string{},
		Source:         types.PlanSourceFallback,
	}
}

func fallbackWeek(index int, focus string, hours float64) types.WeekPlan {
	return types.WeekPlan{
		Week:       index,
		FocusSkill: focus,
		Topics: []string{
			fmt.Sprintf("Intro to %s", focus),
			fmt.Sprintf("Core concepts of %s", focus),
			fmt.Sprintf("Practice: %s exercises", focus),
		},
		Resources: []types.Resource{
			{Name: fmt.Sprintf("%s tutorial", focus), Type: "video", URL: "", Duration: "30-90m"},
		},
		PracticeProject: fmt.Sprintf("Build a small %s mini-project", focus),
		Milestone:       fmt.Sprintf("Understand core %s concepts", focus),
		Hours:           hours,
		Videos:          []types.Video{},
	}
}

func totalHours(weeks []types.WeekPlan) float64 {
	var total float64
	for _, w := range weeks {
		total += w.Hours
	}
	return total
}
