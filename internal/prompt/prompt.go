// Package prompt builds the provider-agnostic instruction prompt from
// retrieved context and classifies comparison queries.
package prompt

import (
	"fmt"
	"strings"
)

// comparisonKeywords mark a query as asking to contrast multiple items.
var comparisonKeywords = []string{"compare", "comparison", "vs", "versus"}

// IsComparison reports whether the query asks for a multi-item comparison.
// Keyword heuristic only, case-insensitive.
func IsComparison(query string) bool {
	q := strings.ToLower(query)
	for _, word := range comparisonKeywords {
		if strings.Contains(q, word) {
			return true
		}
	}
	return false
}

const comparisonTemplate = `Context:
%s

User Query: %s

INSTRUCTIONS:
1. Create a comparison table with clear headers and rows.
2. Format as an HTML table with <table>, <tr>, <th>, and <td> tags.
3. Include key differences and similarities.
4. Do NOT include any reasoning, thought process, or explanations.
5. Do NOT include any introductory or summary statements.
6. Cite sources at the end.
7. ONLY output the table and sources.`

const defaultTemplate = `Context:
%s

User Query: %s

INSTRUCTIONS:
1. Format your response with bullet points (using - or * symbols) for clarity.
2. Keep each point brief and concise.
3. Do NOT include any reasoning, thought process, or explanation.
4. Do NOT include any introductory or summary statements.
5. If the answer is a list, use bullet points.
6. Cite sources at the end.
7. ONLY provide the final answer based on the context.`

// Compose formats the instruction prompt. The two templates are mutually
// exclusive: table output for comparison queries, bullet points otherwise.
func Compose(context, query string, isComparison bool) string {
	if isComparison {
		return fmt.Sprintf(comparisonTemplate, context, query)
	}
	return fmt.Sprintf(defaultTemplate, context, query)
}

// BuildContext joins retrieved chunk contents with newlines, ranked order.
func BuildContext(contents []string) string {
	return strings.Join(contents, "\n")
}
