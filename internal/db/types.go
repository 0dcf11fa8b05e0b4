package db

import (
	"time"

	"github.com/jonathan/skill-gap-advisor/internal/types"
)

// JobTemplateRecord is a row of the job_templates table
type JobTemplateRecord struct {
	Key            string    `json:"key"`
	Title          string    `json:"title"`
	RequiredSkills []string  `json:"required_skills"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToJobTemplate drops the bookkeeping columns
func (r JobTemplateRecord) ToJobTemplate() types.JobTemplate {
	skills := r.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return types.JobTemplate{Key: r.Key, Title: r.Title, RequiredSkills: skills}
}
