package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "   \n  \n  ", want: ""},
		{name: "line endings and form feeds", input: "SUMMARY\r\nGo developer\rSKILLS\fPython", want: "SUMMARY\nGo developer\nSKILLS\nPython"},
		{name: "inner whitespace collapsed", input: "Senior    Engineer\tat   Acme", want: "Senior Engineer at Acme"},
		{name: "blank runs capped at one", input: "EXPERIENCE\n\n\n\n\nEDUCATION", want: "EXPERIENCE\n\nEDUCATION"},
		{name: "whitespace lines are blank", input: "A\n   \n\t\nB", want: "A\n\nB"},
		{name: "heading loses indentation", input: "   ## Skills  \nPython", want: "## Skills\nPython"},
		{name: "bullet keeps inner spacing", input: "Tools\n  -  Docker   and  K8s", want: "Tools\n  -  Docker   and  K8s"},
		{name: "indented prose collapsed", input: "Role\n    Led   the   team", want: "Role\n    Led the team"},
		{name: "non-ascii text", input: "Café    résumé 🚀", want: "Café résumé 🚀"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_ResumeFormatting(t *testing.T) {
	input := "JANE DOE\r\n\r\n\r\n\r\nSKILLS\n• Python   ,  Go\n  - Docker\n\fEXPERIENCE   \nSenior    Engineer  at  Acme"
	result := CleanText(input)

	assert.Equal(t, "JANE DOE\n\nSKILLS\n• Python   ,  Go\n  - Docker\n\nEXPERIENCE\nSenior Engineer at Acme", result)
}

func TestIsBulletLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"- item", true},
		{"  * item", true},
		{"• item", true},
		{"· item", true},
		{"-item", false},
		{"plain text", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isBulletLine(tt.line))
		})
	}
}
