// Package sanitize strips model meta-narration from generated answers.
// Prompt instructions already forbid commentary; this is the defensive pass
// for models that narrate anyway.
package sanitize

import (
	"regexp"
	"strings"

	"scanner-rag/internal/models"
)

var (
	thinkTagRe = regexp.MustCompile(models.ThinkTag)

	// Lines opening like reasoning or intro/summary statements. Prefix
	// matching accepts false positives (an answer legitimately starting
	// with "First,") as the cost of catching most narration.
	metaLineRe = regexp.MustCompile(`^(Okay|Let me|Looking at|I should|So, |First,|Wait,|Based on|In summary|To answer|I don't see|Just the facts|I also need|I'll|\s*$)`)
)

// Clean removes <think> blocks, drops meta-commentary and blank lines, and
// trims the result. Best effort, never fails.
func Clean(text string) string {
	text = thinkTagRe.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		if metaLineRe.MatchString(strings.TrimSpace(line)) {
			continue
		}
		filtered = append(filtered, line)
	}
	return strings.TrimSpace(strings.Join(filtered, "\n"))
}
