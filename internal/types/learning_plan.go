package types

// Resource is a suggested study resource for a week
type Resource struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
}

// Video is a video lookup result attached to a week
type Video struct {
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// WeekPlan is a single week of a learning plan
type WeekPlan struct {
	Week            int        `json:"week"`
	FocusSkill      string     `json:"focus_skill"`
	Topics          []string   `json:"topics"`
	Resources       []Resource `json:"resources"`
	PracticeProject string     `json:"practice_project"`
	Milestone       string     `json:"milestone"`
	Hours           float64    `json:"hours"`
	Videos          []Video    `json:"videos"`
}

// PlanSource records which path produced a plan
type PlanSource string

// Plan sources
const (
	PlanSourcePrimary  PlanSource = "primary"
	PlanSourceFallback PlanSource = "fallback"
)

// LearningPlan is a fixed-length weekly curriculum
type LearningPlan struct {
	Weeks          []WeekPlan `json:"weeks"`
	TotalTimeHours float64    `json:"total_time_hours"`
	SuccessMetrics []string   `json:"success_metrics"`
	Prerequisites  []string   `json:"prerequisites"`
	Source         PlanSource `json:"source"`
}
