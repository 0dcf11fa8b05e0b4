// Package prompts holds the embedded text templates used to ask a provider for a
// learning plan and to build video search queries.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"
)

//go:embed plan.json
var files embed.FS

// Prompt keys in plan.json
const (
	File         = "plan.json"
	LearningPlan = "learning-plan"
	VideoQuery   = "video-query"
)

// PlanData fills the learning-plan prompt
type PlanData struct {
	JobTitle    string
	Skills      string
	Level       string
	WeeklyHours string
}

// VideoData fills the video-query prompt
type VideoData struct {
	Skill string
	Level string
}

var load = sync.OnceValues(func() (*template.Template, error) {
	return parse(File)
})

// parse reads a JSON object of key to template text and parses every entry
// as a named template. Unknown fields are an execution error.
func parse(name string) (*template.Template, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
	}

	root := template.New(name).Option("missingkey=error")
	for key, text := range raw {
		if _, err := root.New(key).Parse(text); err != nil {
			return nil, fmt.Errorf("failed to parse prompt %q in %s: %w", key, name, err)
		}
	}
	return root, nil
}

// Render executes the prompt stored under key with data
func Render(key string, data any) (string, error) {
	root, err := load()
	if err != nil {
		return "", err
	}

	tmpl := root.Lookup(key)
	if tmpl == nil {
		return "", fmt.Errorf("prompt key %q not found in %s", key, File)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", key, err)
	}
	return sb.String(), nil
}

// Keys returns the available prompt keys, sorted
func Keys() ([]string, error) {
	root, err := load()
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, t := range root.Templates() {
		if t.Name() != File {
			keys = append(keys, t.Name())
		}
	}
	sort.Strings(keys)
	return keys, nil
}
