package plan

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jonathan/skill-gap-advisor/internal/llm"
	"github.com/jonathan/skill-gap-advisor/internal/schemas"
	"github.com/jonathan/skill-gap-advisor/internal/types"
)

// rawPlan is the loosely-typed shape providers return
type rawPlan struct {
	Weeks          []rawWeek `json:"weeks"`
	TotalTimeHours *float64  `json:"total_time_hours"`
	SuccessMetrics []string  `json:"success_metrics"`
	Prerequisites  []string  `json:"prerequisites"`
}

type rawWeek struct {
	FocusSkill      string        `json:"focus_skill"`
	Focus           string        `json:"focus"`
	Topics          []string      `json:"topics"`
	Resources       []rawResource `json:"resources"`
	PracticeProject string        `json:"practice_project"`
	Milestone       string        `json:"milestone"`
	Hours           *float64      `json:"hours"`
}

// rawResource accepts either a bare name or a resource object
type rawResource types.Resource

func (r *rawResource) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*r = rawResource{Name: name}
		return nil
	}
	var res types.Resource
	if err := json.Unmarshal(data, &res); err != nil {
		return err
	}
	*r = rawResource(res)
	return nil
}

// parsePlan turns a provider response into a plan. Any response without a
// usable weeks list is a ParseError.
func parsePlan(response string) (*rawPlan, error) {
	cleaned := llm.CleanJSONBlock(response)
	if strings.TrimSpace(cleaned) == "" {
		return nil, &llm.ParseError{Message: "empty response"}
	}

	if err := schemas.ValidateLearningPlan(cleaned); err != nil {
		return nil, &llm.ParseError{Message: "response does not match learning plan schema", Cause: err}
	}

	var raw rawPlan
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &llm.ParseError{Message: "failed to unmarshal learning plan", Cause: err}
	}
	if len(raw.Weeks) == 0 {
		return nil, &llm.ParseError{Message: "response has no weeks"}
	}
	return &raw, nil
}

// toLearningPlan coerces a parsed response to exactly PlanWeeks weeks,
// padding from the fallback plan and renumbering from 1.
func (raw *rawPlan) toLearningPlan(missingSkills []string, weeklyHours float64) *types.LearningPlan {
	fallback := BuildFallbackPlan(missingSkills, weeklyHours)

	weeks := make([]types.WeekPlan, 0, PlanWeeks)
	for _, rw := range raw.Weeks {
		if len(weeks) == PlanWeeks {
			break
		}
		weeks = append(weeks, rw.toWeekPlan(weeklyHours))
	}
	for i := len(weeks); i < PlanWeeks; i++ {
		weeks = append(weeks, fallback.Weeks[i])
	}
	for i := range weeks {
		weeks[i].Week = i + 1
	}

	plan := &types.LearningPlan{
		Weeks:          weeks,
		SuccessMetrics: raw.SuccessMetrics,
		Prerequisites:  raw.Prerequisites,
		Source:         types.PlanSourcePrimary,
	}
	if plan.SuccessMetrics == nil {
		plan.SuccessMetrics = fallback.SuccessMetrics
	}
	if plan.Prerequisites == nil {
		plan.Prerequisites = []string{}
	}
	if raw.TotalTimeHours != nil {
		plan.TotalTimeHours = *raw.TotalTimeHours
	} else {
		plan.TotalTimeHours = totalHours(weeks)
	}
	return plan
}

func (rw rawWeek) toWeekPlan(weeklyHours float64) types.WeekPlan {
	focus := rw.FocusSkill
	if focus == "" {
		focus = rw.Focus
	}

	w := types.WeekPlan{
		FocusSkill:      focus,
		Topics:          rw.Topics,
		Resources:       make([]types.Resource, 0, len(rw.Resources)),
		PracticeProject: rw.PracticeProject,
		Milestone:       rw.Milestone,
		Hours:           weeklyHours,
		Videos:          []types.Video{},
	}
	if w.Topics == nil {
		w.Topics = []string{}
	}
	for _, r := range rw.Resources {
		w.Resources = append(w.Resources, types.Resource(r))
	}
	if rw.Hours != nil {
		w.Hours = *rw.Hours
	}
	return w
}
