package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens_OrderedLongestFirst(t *testing.T) {
	got := Tokens("Python, SQL, C++ and Docker")
	assert.Equal(t, []string{"Docker", "Python", "C++", "SQL", "and"}, got)
}

func TestTokens_DropsShortAndLongTokens(t *testing.T) {
	long := strings.Repeat("a", 31)
	got := Tokens("x " + long + " Go Go")
	assert.Equal(t, []string{"Go"}, got)
}

func TestTokens_Empty(t *testing.T) {
	assert.Empty(t, Tokens(""))
	assert.Empty(t, Tokens("1234 5678"))
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor(defaultNormalizer(t))

	got := e.Extract("Python, SQL, C++ and Docker")
	assert.Equal(t, []string{"docker", "python", "cpp", "sql", "and"}, got)

	assert.Equal(t, []string{}, e.Extract("   "))
}

func TestExtractor_Merge(t *testing.T) {
	e := NewExtractor(defaultNormalizer(t))

	got := e.Merge([]string{"python", "sql"}, []string{"Python3", "Kubernetes", " "})
	assert.Equal(t, []string{"python", "sql", "kubernetes"}, got)
}
