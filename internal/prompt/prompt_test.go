package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsComparison(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"Compare model A vs model B", true},
		{"comparison of ScanJet and DocMate", true},
		{"ScanJet VERSUS DocMate", true},
		{"scanjet vs docmate", true},
		{"How do I clean the scanner?", false},
		{"What resolution does the ScanJet support?", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, IsComparison(tt.query))
		})
	}
}

func TestCompose_TemplatesAreMutuallyExclusive(t *testing.T) {
	comparison := Compose("ctx", "compare X vs Y", true)
	assert.Contains(t, comparison, "<table>")
	assert.Contains(t, comparison, "comparison table")
	assert.NotContains(t, comparison, "bullet points")

	regular := Compose("ctx", "how do I scan?", false)
	assert.Contains(t, regular, "bullet points")
	assert.NotContains(t, regular, "<table>")
}

func TestCompose_EmbedsContextAndQuery(t *testing.T) {
	p := Compose("the scanner supports 600 dpi", "what resolution?", false)
	assert.Contains(t, p, "Context:\nthe scanner supports 600 dpi")
	assert.Contains(t, p, "User Query: what resolution?")

	p = Compose("spec sheet text", "compare X vs Y", true)
	assert.Contains(t, p, "Context:\nspec sheet text")
	assert.Contains(t, p, "User Query: compare X vs Y")
}

func TestBuildContext(t *testing.T) {
	assert.Equal(t, "a\nb\nc", BuildContext([]string{"a", "b", "c"}))
	assert.Equal(t, "", BuildContext(nil))
}
