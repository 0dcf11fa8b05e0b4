package types

// Priority buckets a missing skill by importance
type Priority string

// Priority levels
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// GapSummary holds the headline counts of a gap report
type GapSummary struct {
	TotalRequired        int     `json:"total_required"`
	Matched              int     `json:"matched"`
	Missing              int     `json:"missing"`
	Weak                 int     `json:"weak"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// RankedSkill is a missing skill annotated with importance and prerequisites
type RankedSkill struct {
	Skill        string   `json:"skill"`
	Importance   float64  `json:"importance"`
	Priority     Priority `json:"priority"`
	Dependencies []string `json:"dependencies"`
}

// SkillCluster groups thematically related missing skills
type SkillCluster struct {
	ClusterID int      `json:"cluster_id"`
	Skills    []string `json:"skills"`
}

// ClusterResult is the output of clustering missing skills.
// Error is set when clustering degraded to a single group.
type ClusterResult struct {
	Clusters  []SkillCluster `json:"clusters"`
	NClusters int            `json:"n_clusters,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// GapReport is the read-only view derived from a MatchResult
type GapReport struct {
	Summary       GapSummary     `json:"summary"`
	MissingSkills []RankedSkill  `json:"missing_skills"`
	WeakSkills    []WeakMatch    `json:"weak_skills"`
	SkillClusters *ClusterResult `json:"skill_clusters,omitempty"`
}

// MissingNames returns the ranked missing skill names in rank order
func (r *GapReport) MissingNames() []string {
	names := make([]string, len(r.MissingSkills))
	for i, s := range r.MissingSkills {
		names[i] = s.Skill
	}
	return names
}
