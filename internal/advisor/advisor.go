// Package advisor provides the high-level orchestration of a skill-gap
// analysis: skill extraction, matching against a role, gap ranking and
// learning plan generation.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skill-gap-advisor/internal/cluster"
	"github.com/jonathan/skill-gap-advisor/internal/gaps"
	"github.com/jonathan/skill-gap-advisor/internal/llm"
	"github.com/jonathan/skill-gap-advisor/internal/plan"
	"github.com/jonathan/skill-gap-advisor/internal/skills"
	"github.com/jonathan/skill-gap-advisor/internal/taxonomy"
	"github.com/jonathan/skill-gap-advisor/internal/templates"
	"github.com/jonathan/skill-gap-advisor/internal/types"
	"github.com/jonathan/skill-gap-advisor/internal/videos"
)

// ErrNoTargetSkills is returned when an analysis has nothing to match against
var ErrNoTargetSkills = errors.New("no target skills to analyze")

// Step names reported through ProgressCallback
const (
	StepExtract = "extract_skills"
	StepMatch   = "match_skills"
	StepGaps    = "analyze_gaps"
	StepPlan    = "generate_plan"
)

// ProgressEvent represents a progress update during an analysis
type ProgressEvent struct {
	Step       string `json:"step"`
	Message    string `json:"message"`
	AnalysisID string `json:"analysis_id,omitempty"`
	Content    any    `json:"content,omitempty"`
}

// ProgressCallback is called when analysis progress occurs
type ProgressCallback func(event ProgressEvent)

// Deps holds the collaborators an Advisor is built from. Only Taxonomy is
// loaded when missing; every capability may be nil.
type Deps struct {
	Taxonomy  *taxonomy.Taxonomy
	Templates *templates.Registry
	Client    llm.Client
	LLMStatus llm.Status
	Embedder  llm.Embedder
	Searcher  videos.Searcher

	Clusters           int
	Concurrency        int
	GenerationTimeout  time.Duration
	DefaultLevel       string
	DefaultWeeklyHours float64

	Logger *slog.Logger
}

// Advisor runs analyses. It holds only read-only state and is safe for
// concurrent use.
type Advisor struct {
	normalizer *skills.Normalizer
	extractor  *skills.Extractor
	matcher    *skills.Matcher
	analyzer   *gaps.Analyzer
	planner    *plan.Generator
	templates  *templates.Registry
	status     llm.Status

	defaultLevel string
	defaultHours float64
	logger       *slog.Logger
}

// New assembles an Advisor
func New(deps Deps) (*Advisor, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tax := deps.Taxonomy
	if tax == nil {
		var err error
		tax, err = taxonomy.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load default taxonomy: %w", err)
		}
	}

	registry := deps.Templates
	if registry == nil {
		registry = templates.Default()
	}

	analyzerOpts := []gaps.Option{gaps.WithClusters(deps.Clusters), gaps.WithLogger(logger)}
	if deps.Embedder != nil {
		analyzerOpts = append(analyzerOpts, gaps.WithClusterer(cluster.NewEmbeddingClusterer(deps.Embedder, cluster.DefaultOptions())))
	}

	status := deps.LLMStatus
	if status.Provider == "" && deps.Client != nil {
		status = llm.Status{Available: true, Provider: deps.Client.Provider()}
	}

	normalizer := skills.NewNormalizer(tax)
	return &Advisor{
		normalizer: normalizer,
		extractor:  skills.NewExtractor(normalizer),
		matcher:    skills.NewMatcher(deps.Embedder, logger),
		analyzer:   gaps.NewAnalyzer(tax, analyzerOpts...),
		planner: plan.NewGenerator(
			plan.WithClient(deps.Client),
			plan.WithSearcher(deps.Searcher),
			plan.WithTimeout(deps.GenerationTimeout),
			plan.WithConcurrency(deps.Concurrency),
			plan.WithLogger(logger),
		),
		templates:    registry,
		status:       status,
		defaultLevel: deps.DefaultLevel,
		defaultHours: deps.DefaultWeeklyHours,
		logger:       logger,
	}, nil
}

// Request describes one analysis. Explicit TargetSkills take precedence
// over TemplateKey.
type Request struct {
	ResumeText   string
	ManualSkills []string
	TemplateKey  string
	TargetSkills []string
	OnProgress   ProgressCallback
}

// Analysis is the outcome of matching a candidate against a role
type Analysis struct {
	ID              uuid.UUID          `json:"analysis_id"`
	TemplateKey     string             `json:"template_key,omitempty"`
	JobTitle        string             `json:"job_title,omitempty"`
	CandidateSkills []string           `json:"candidate_skills"`
	TargetSkills    []string           `json:"target_skills"`
	Match           *types.MatchResult `json:"match"`
	Report          *types.GapReport   `json:"report"`
}

// Templates returns the job template registry
func (a *Advisor) Templates() *templates.Registry {
	return a.templates
}

// LLMStatus reports whether the primary plan path is available
func (a *Advisor) LLMStatus() llm.Status {
	return a.status
}

// Category returns the category of a skill, or "other"
func (a *Advisor) Category(skill string) string {
	return a.normalizer.Category(skill)
}

// ExtractSkills returns the normalized skills found in text merged with the
// manually entered ones
func (a *Advisor) ExtractSkills(text string, manual []string) []string {
	return a.extractor.Merge(a.extractor.Extract(text), manual)
}

// ResolveTargets returns the job title and normalized target skills of a
// request. Explicit targets win; otherwise the template is looked up.
func (a *Advisor) ResolveTargets(templateKey string, explicit []string) (string, []string, error) {
	title := ""
	raw := explicit
	if !hasSkills(explicit) {
		if strings.TrimSpace(templateKey) == "" {
			return "", nil, ErrNoTargetSkills
		}
		tpl, err := a.templates.Get(templateKey)
		if err != nil {
			return "", nil, err
		}
		raw, err = a.templates.RequiredSkills(templateKey)
		if err != nil {
			return "", nil, err
		}
		title = tpl.Title
	}

	targets := make([]string, 0, len(raw))
	for _, s := range a.normalizer.NormalizeList(raw) {
		if s != "" {
			targets = append(targets, s)
		}
	}
	if len(targets) == 0 {
		return "", nil, ErrNoTargetSkills
	}
	return title, targets, nil
}

// Analyze runs extraction, matching and gap analysis for one request.
// Capability failures degrade inside the stages; only missing targets are
// returned as errors.
func (a *Advisor) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	title, targets, err := a.ResolveTargets(req.TemplateKey, req.TargetSkills)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		ID:           uuid.New(),
		TemplateKey:  strings.TrimSpace(req.TemplateKey),
		JobTitle:     title,
		TargetSkills: targets,
	}
	if hasSkills(req.TargetSkills) {
		analysis.TemplateKey = ""
	}

	analysis.CandidateSkills = a.ExtractSkills(req.ResumeText, req.ManualSkills)
	a.emit(req.OnProgress, analysis, StepExtract,
		fmt.Sprintf("Found %d candidate skills", len(analysis.CandidateSkills)), analysis.CandidateSkills)

	a.runMatch(ctx, analysis, req.OnProgress)
	return analysis, nil
}

// AnalyzeAgainst matches already-extracted candidate skills against an
// explicit target list
func (a *Advisor) AnalyzeAgainst(ctx context.Context, candidates, targets []string) (*Analysis, error) {
	_, normalized, err := a.ResolveTargets("", targets)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		ID:              uuid.New(),
		CandidateSkills: a.extractor.Merge(nil, candidates),
		TargetSkills:    normalized,
	}
	a.runMatch(ctx, analysis, nil)
	return analysis, nil
}

func (a *Advisor) runMatch(ctx context.Context, analysis *Analysis, onProgress ProgressCallback) {
	analysis.Match = a.matcher.MatchAll(ctx, analysis.CandidateSkills, analysis.TargetSkills)
	a.emit(onProgress, analysis, StepMatch,
		fmt.Sprintf("Matched %d of %d target skills", len(analysis.Match.Matched), len(analysis.TargetSkills)), analysis.Match)

	analysis.Report = a.analyzer.Analyze(ctx, analysis.Match)
	a.emit(onProgress, analysis, StepGaps,
		fmt.Sprintf("%d missing skills, %.2f%% complete", analysis.Report.Summary.Missing, analysis.Report.Summary.CompletionPercentage), analysis.Report)
}

// PlanRequest describes a plan outside of an analysis
type PlanRequest struct {
	MissingSkills []string
	JobTitle      string
	Level         string
	WeeklyHours   float64
	OnProgress    ProgressCallback
}

// Plan builds a learning plan for a list of missing skills. It always
// returns a plan.
func (a *Advisor) Plan(ctx context.Context, req PlanRequest) *types.LearningPlan {
	missing := make([]string, 0, len(req.MissingSkills))
	for _, s := range a.normalizer.NormalizeList(req.MissingSkills) {
		if s != "" {
			missing = append(missing, s)
		}
	}
	return a.generate(ctx, missing, req, nil)
}

// PlanFor builds a learning plan for the ranked missing skills of an analysis
func (a *Advisor) PlanFor(ctx context.Context, analysis *Analysis, level string, weeklyHours float64, onProgress ProgressCallback) *types.LearningPlan {
	var missing []string
	switch {
	case analysis == nil:
	case analysis.Report != nil:
		missing = analysis.Report.MissingNames()
	case analysis.Match != nil:
		missing = analysis.Match.Missing
	}

	req := PlanRequest{Level: level, WeeklyHours: weeklyHours, OnProgress: onProgress}
	if analysis != nil {
		req.JobTitle = analysis.JobTitle
	}
	return a.generate(ctx, missing, req, analysis)
}

func (a *Advisor) generate(ctx context.Context, missing []string, req PlanRequest, analysis *Analysis) *types.LearningPlan {
	level := req.Level
	if strings.TrimSpace(level) == "" {
		level = a.defaultLevel
	}
	hours := req.WeeklyHours
	if hours <= 0 {
		hours = a.defaultHours
	}

	learningPlan := a.planner.Generate(ctx, plan.Request{
		MissingSkills: missing,
		JobTitle:      req.JobTitle,
		Level:         level,
		WeeklyHours:   hours,
	})
	a.emit(req.OnProgress, analysis, StepPlan,
		fmt.Sprintf("Built %d-week plan (%s, %.1f hours)", len(learningPlan.Weeks), learningPlan.Source, learningPlan.TotalTimeHours), learningPlan)
	return learningPlan
}

// emit calls the progress callback if configured
func (a *Advisor) emit(cb ProgressCallback, analysis *Analysis, step, message string, content any) {
	if cb == nil {
		return
	}
	event := ProgressEvent{Step: step, Message: message, Content: content}
	if analysis != nil {
		event.AnalysisID = analysis.ID.String()
	}
	cb(event)
}

func hasSkills(list []string) bool {
	for _, s := range list {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
