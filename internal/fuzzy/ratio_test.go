package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "identical", a: "python", b: "python", expected: 100},
		{name: "prefix", a: "reactjs", b: "react", expected: 83},
		{name: "contained", a: "mysql", b: "sql", expected: 75},
		{name: "shared prefix", a: "javascript", b: "java", expected: 57},
		{name: "disjoint", a: "python", b: "sql", expected: 0},
		{name: "empty left", a: "", b: "sql", expected: 0},
		{name: "empty right", a: "sql", b: "", expected: 0},
		{name: "both empty", a: "", b: "", expected: 0},
		{name: "single edit", a: "kubernetes", b: "kubernete", expected: 95},
		{name: "punctuation", a: "c#", b: "c++", expected: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Ratio(tt.a, tt.b))
		})
	}
}

func TestRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"postgresql", "postgres"},
		{"machine learning", "machine-learning"},
		{"docker", "dockerization"},
	}
	for _, p := range pairs {
		assert.Equal(t, Ratio(p[0], p[1]), Ratio(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestRatio_NormalizeThresholdCases(t *testing.T) {
	// aliases one edit away clear 85; prefixes of longer names do not
	assert.GreaterOrEqual(t, Ratio("golangs", "golang"), 85.0)
	assert.GreaterOrEqual(t, Ratio("kubernete", "kubernetess"), 85.0)
	assert.Less(t, Ratio("reactjs", "react"), 85.0)
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "identical", a: "python", b: "python", expected: 100},
		{name: "reordered tokens", a: "machine learning", b: "learning machine", expected: 100},
		{name: "subset", a: "python", b: "python programming", expected: 100},
		{name: "subset of target", a: "sql server", b: "sql", expected: 100},
		{name: "duplicate tokens", a: "sql sql", b: "sql", expected: 100},
		{name: "single tokens fall back to ratio", a: "mysql", b: "sql", expected: 75},
		{name: "prefix token", a: "reactjs", b: "react", expected: 83},
		{name: "punctuation kept", a: "c#", b: "c++", expected: 40},
		{name: "disjoint", a: "python", b: "sql", expected: 0},
		{name: "empty", a: "", b: "python", expected: 0},
		{name: "whitespace only", a: "   ", b: "python", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenSetRatio(tt.a, tt.b))
		})
	}
}

func TestTokenSetRatio_PartialOverlap(t *testing.T) {
	// sect="data", t1="data science", t2="data engineering"
	score := TokenSetRatio("data science", "data engineering")
	assert.Greater(t, score, 50.0)
	assert.Less(t, score, 100.0)
	assert.Equal(t, score, TokenSetRatio("data engineering", "data science"))
}
