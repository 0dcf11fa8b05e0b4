// Package plan builds 12-week learning plans from a list of missing skills.
//
// A text-generation provider is tried first. When it is unavailable or its
// response cannot be used, a deterministic round-robin plan is built instead.
// Every week of the chosen plan is then enriched with tutorial videos.
package plan

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/skill-gap-advisor/internal/llm"
	"github.com/jonathan/skill-gap-advisor/internal/prompts"
	"github.com/jonathan/skill-gap-advisor/internal/types"
	"github.com/jonathan/skill-gap-advisor/internal/videos"
)

// Plan shape constants
const (
	PlanWeeks        = 12
	PlaceholderSkill = "Core fundamentals"
	VideosPerWeek    = 2
)

// Request defaults
const (
	DefaultLevel       = "Beginner"
	DefaultWeeklyHours = 5.0
	// DefaultConcurrency bounds parallel video lookups during enrichment
	DefaultConcurrency = 4
)

// Request describes the plan to generate
type Request struct {
	MissingSkills []string
	JobTitle      string
	Level         string
	WeeklyHours   float64
}

func (r Request) withDefaults() Request {
	if strings.TrimSpace(r.Level) == "" {
		r.Level = DefaultLevel
	}
	if r.WeeklyHours <= 0 {
		r.WeeklyHours = DefaultWeeklyHours
	}
	return r
}

// Generator produces learning plans. It is safe for concurrent use as long
// as its client and searcher are.
type Generator struct {
	client      llm.Client
	searcher    videos.Searcher
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithClient enables the primary generation path
func WithClient(c llm.Client) Option {
	return func(g *Generator) { g.client = c }
}

// WithSearcher enables video enrichment
func WithSearcher(s videos.Searcher) Option {
	return func(g *Generator) {
		if s != nil {
			g.searcher = s
		}
	}
}

// WithTimeout bounds the generation call
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithConcurrency bounds parallel video lookups
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// WithLogger sets the logger for degraded paths
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a generator. Without options it produces fallback
// plans with no videos.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		searcher:    videos.Nop(),
		timeout:     llm.DefaultTimeout,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a complete plan. It never fails: provider errors and
// malformed responses fall back to the deterministic plan.
func (g *Generator) Generate(ctx context.Context, req Request) *types.LearningPlan {
	req = req.withDefaults()

	plan, err := g.generatePrimary(ctx, req)
	if err != nil {
		g.logger.Warn("using fallback learning plan", slog.Any("error", err))
		plan = BuildFallbackPlan(req.MissingSkills, req.WeeklyHours)
	}

	g.enrich(ctx, plan, req.Level)
	return plan
}

func (g *Generator) generatePrimary(ctx context.Context, req Request) (*types.LearningPlan, error) {
	if g.client == nil {
		return nil, fmt.Errorf("text generation unavailable")
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := g.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	raw, err := parsePlan(response)
	if err != nil {
		return nil, err
	}
	return raw.toLearningPlan(req.MissingSkills, req.WeeklyHours), nil
}

// BuildPrompt renders the plan prompt for a request
func BuildPrompt(req Request) (string, error) {
	req = req.withDefaults()
	skills := "general"
	if len(req.MissingSkills) > 0 {
		skills = strings.Join(req.MissingSkills, ", ")
	}
	return prompts.Render(prompts.LearningPlan, prompts.PlanData{
		JobTitle:    req.JobTitle,
		Skills:      skills,
		Level:       req.Level,
		WeeklyHours: strconv.FormatFloat(req.WeeklyHours, 'f', -1, 64),
	})
}
