package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jonathan/skill-gap-advisor/internal/advisor"
	"github.com/jonathan/skill-gap-advisor/internal/ingestion"
	"github.com/jonathan/skill-gap-advisor/internal/types"
)

// maxJSONBody bounds JSON request bodies
const maxJSONBody = 1 << 20

// AnalyzeRequest represents the request body for /analyze
type AnalyzeRequest struct {
	ResumeText      string   `json:"resume_text,omitempty" validate:"max=200000"`
	CandidateSkills []string `json:"candidate_skills,omitempty" validate:"max=500,dive,max=100"`
	TemplateKey     string   `json:"template_key,omitempty" validate:"max=100"`
	TargetSkills    []string `json:"target_skills,omitempty" validate:"max=500,dive,max=100"`
	// IncludePlan also builds a learning plan for the missing skills
	IncludePlan bool    `json:"include_plan,omitempty"`
	Level       string  `json:"level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	WeeklyHours float64 `json:"weekly_hours,omitempty" validate:"gte=0,lte=168"`
}

// PlanRequest represents the request body for /plan
type PlanRequest struct {
	MissingSkills []string `json:"missing_skills" validate:"max=200,dive,max=100"`
	JobTitle      string   `json:"job_title,omitempty" validate:"max=200"`
	Level         string   `json:"level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	WeeklyHours   float64  `json:"weekly_hours,omitempty" validate:"gte=0,lte=168"`
}

// TemplateResponse is a template with per-skill categories
type TemplateResponse struct {
	types.JobTemplate
	Categories map[string]string `json:"categories"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLLMStatus reports whether plans come from the text generation provider
func (s *Server) handleLLMStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.advisor.LLMStatus())
}

// handleListTemplates lists every job template
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": s.advisor.Templates().List(),
	})
}

// handleGetTemplate returns one job template
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.advisor.Templates().Get(r.PathValue("key"))
	if err != nil {
		s.errorFor(w, err)
		return
	}

	categories := make(map[string]string, len(tpl.RequiredSkills))
	for _, skill := range tpl.RequiredSkills {
		categories[skill] = s.advisor.Category(skill)
	}
	s.jsonResponse(w, http.StatusOK, TemplateResponse{JobTemplate: tpl, Categories: categories})
}

// handleExtract reads an uploaded resume and returns its text and skills.
// The file is sent as multipart field "file"; "manual_skills" is an optional
// comma-separated list merged into the result.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	// leave room for multipart framing around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, s.extractOpts.MaxBytes+maxJSONBody)
	if err := r.ParseMultipartForm(s.extractOpts.MaxBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.errorFor(w, err)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorFor(w, &ErrValidation{Field: "file", Message: "is required"})
		return
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(file, s.extractOpts.MaxBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	doc, err := ingestion.Extract(data, header.Filename, &s.extractOpts)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.advisor.ExtractDocument(doc, splitList(r.FormValue("manual_skills"))))
}

// handleAnalyze matches a candidate against a template or explicit targets
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}

	analysis, err := s.advisor.Analyze(r.Context(), advisor.Request{
		ResumeText:   req.ResumeText,
		ManualSkills: req.CandidateSkills,
		TemplateKey:  req.TemplateKey,
		TargetSkills: req.TargetSkills,
	})
	if err != nil {
		s.errorFor(w, err)
		return
	}

	resp := advisor.Result{Analysis: analysis}
	if req.IncludePlan {
		resp.Plan = s.advisor.PlanFor(r.Context(), analysis, req.Level, req.WeeklyHours, nil)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyzeStream runs an analysis and streams progress via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	onProgress := func(event advisor.ProgressEvent) {
		if err := sse.WriteStep(event); err != nil {
			s.logger.Warn("failed to write SSE event", slog.Any("error", err))
		}
	}

	analysis, err := s.advisor.Analyze(r.Context(), advisor.Request{
		ResumeText:   req.ResumeText,
		ManualSkills: req.CandidateSkills,
		TemplateKey:  req.TemplateKey,
		TargetSkills: req.TargetSkills,
		OnProgress:   onProgress,
	})
	if err != nil {
		if HTTPStatus(err) == http.StatusInternalServerError {
			s.logger.Error("streamed analysis failed", slog.Any("error", err))
		}
		sse.WriteError(err)
		return
	}

	resp := advisor.Result{Analysis: analysis}
	if req.IncludePlan {
		resp.Plan = s.advisor.PlanFor(r.Context(), analysis, req.Level, req.WeeklyHours, onProgress)
	}
	if err := sse.WriteEvent(EventResult, resp); err != nil {
		s.logger.Warn("failed to write SSE result", slog.Any("error", err))
		return
	}
	sse.WriteComplete(analysis.ID.String())
}

// handlePlan builds a learning plan for a list of missing skills
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorFor(w, err)
		return
	}

	plan := s.advisor.Plan(r.Context(), advisor.PlanRequest{
		MissingSkills: req.MissingSkills,
		JobTitle:      req.JobTitle,
		Level:         req.Level,
		WeeklyHours:   req.WeeklyHours,
	})
	s.jsonResponse(w, http.StatusOK, plan)
}

// decode reads and validates a JSON request body
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// splitList splits a comma-separated form value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
