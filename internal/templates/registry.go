// Package templates provides the job template registry: template key to the
// skills a role requires. A registry is read-only once loaded.
package templates

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/skill-gap-advisor/internal/schemas"
	"github.com/jonathan/skill-gap-advisor/internal/types"
)

//go:embed default_templates.json
var defaultTemplates []byte

// ErrNoRequiredSkills is returned when a template exists but lists no skills
var ErrNoRequiredSkills = errors.New("job template has no required skills")

// NotFoundError is returned for unknown template keys
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("job template %q not found", e.Key)
}

// LoadError represents a failure to read or decode a registry source
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load job templates from %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load job templates from %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Store lists templates from a persistent backend
type Store interface {
	ListJobTemplates(ctx context.Context) ([]types.JobTemplate, error)
}

// Registry maps template keys to job templates
type Registry struct {
	templates map[string]types.JobTemplate
}

// entry accepts both registry value shapes: a bare skill list or an object
type entry struct {
	Title          string   `json:"title"`
	RequiredSkills []string `json:"required_skills"`
	Required       []string `json:"required"`
}

func (e *entry) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*e = entry{RequiredSkills: list}
		return nil
	}
	type plain entry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = entry(p)
	return nil
}

func (e entry) skills() []string {
	if len(e.RequiredSkills) > 0 {
		return e.RequiredSkills
	}
	return e.Required
}

// Default returns the built-in registry
func Default() *Registry {
	r, err := Parse(defaultTemplates)
	if err != nil {
		panic(fmt.Sprintf("embedded job templates are invalid: %v", err))
	}
	return r
}

// LoadFile reads a registry from a JSON file
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	r, err := Parse(data)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Source = path
		}
		return nil, err
	}
	return r, nil
}

// Parse decodes a registry document after validating it against its schema
func Parse(data []byte) (*Registry, error) {
	if err := schemas.ValidateJobTemplates(string(data)); err != nil {
		return nil, &LoadError{Source: "document", Message: "invalid job templates", Cause: err}
	}

	var raw map[string]entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Source: "document", Message: "failed to decode job templates", Cause: err}
	}

	list := make([]types.JobTemplate, 0, len(raw))
	for key, e := range raw {
		list = append(list, types.JobTemplate{Key: key, Title: e.Title, RequiredSkills: e.skills()})
	}
	return FromTemplates(list), nil
}

// LoadFromStore reads every template from a persistent store
func LoadFromStore(ctx context.Context, store Store) (*Registry, error) {
	list, err := store.ListJobTemplates(ctx)
	if err != nil {
		return nil, &LoadError{Source: "database", Message: "failed to list job templates", Cause: err}
	}
	return FromTemplates(list), nil
}

// FromTemplates builds a registry from a list. Later duplicates win.
func FromTemplates(list []types.JobTemplate) *Registry {
	r := &Registry{templates: make(map[string]types.JobTemplate, len(list))}
	for _, t := range list {
		key := strings.TrimSpace(t.Key)
		if key == "" {
			continue
		}
		t.Key = key
		if t.Title == "" {
			t.Title = TitleFromKey(key)
		}
		skills := make([]string, 0, len(t.RequiredSkills))
		for _, s := range t.RequiredSkills {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
		t.RequiredSkills = skills
		r.templates[key] = t
	}
	return r
}

// Get returns a template by key
func (r *Registry) Get(key string) (types.JobTemplate, error) {
	t, ok := r.templates[key]
	if !ok {
		return types.JobTemplate{}, &NotFoundError{Key: key}
	}
	return copyTemplate(t), nil
}

// RequiredSkills returns the skills a template requires. A template without
// skills is ErrNoRequiredSkills.
func (r *Registry) RequiredSkills(key string) ([]string, error) {
	t, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	if len(t.RequiredSkills) == 0 {
		return nil, fmt.Errorf("%s: %w", key, ErrNoRequiredSkills)
	}
	return t.RequiredSkills, nil
}

// Keys returns all template keys, sorted
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns all templates ordered by key
func (r *Registry) List() []types.JobTemplate {
	keys := r.Keys()
	out := make([]types.JobTemplate, 0, len(keys))
	for _, k := range keys {
		out = append(out, copyTemplate(r.templates[k]))
	}
	return out
}

// Len returns the number of templates
func (r *Registry) Len() int {
	return len(r.templates)
}

// TitleFromKey turns "data_scientist" into "Data Scientist"
func TitleFromKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func copyTemplate(t types.JobTemplate) types.JobTemplate {
	skills := make([]string, len(t.RequiredSkills))
	copy(skills, t.RequiredSkills)
	t.RequiredSkills = skills
	return t
}
