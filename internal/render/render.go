// Package render turns sanitized answers into displayable output: markdown
// to HTML for bullet answers, and a best-effort table extraction for
// comparison answers.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// ToHTML converts a markdown/bullet answer to HTML.
func ToHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

var (
	trRe   = regexp.MustCompile(`(?s)<tr[^>]*>(.*?)</tr>`)
	cellRe = regexp.MustCompile(`(?s)<t[hd][^>]*>(.*?)</t[hd]>`)
	tagRe  = regexp.MustCompile(`<[^>]+>`)
)

// ParseTable extracts tabular data from a comparison answer. It first looks
// for an HTML table, then falls back to pipe-delimited lines. Returns false
// when neither heuristic applies; the caller renders the text as-is.
// The pipe fallback can misfire on non-tabular text containing '|'.
func ParseTable(text string) ([][]string, bool) {
	if rows, ok := parseHTMLTable(text); ok {
		return rows, true
	}
	return parsePipeTable(text)
}

func parseHTMLTable(text string) ([][]string, bool) {
	if !strings.Contains(text, "<table") {
		return nil, false
	}
	var rows [][]string
	for _, tr := range trRe.FindAllStringSubmatch(text, -1) {
		var row []string
		for _, cell := range cellRe.FindAllStringSubmatch(tr[1], -1) {
			row = append(row, strings.TrimSpace(tagRe.ReplaceAllString(cell[1], "")))
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, len(rows) > 0
}

func parsePipeTable(text string) ([][]string, bool) {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		if isSeparatorLine(line) {
			continue
		}
		var row []string
		for _, cell := range strings.Split(line, "|") {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				row = append(row, cell)
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, len(rows) > 1
}

// isSeparatorLine matches markdown table rules like |---|---|.
func isSeparatorLine(line string) bool {
	trimmed := strings.Trim(strings.TrimSpace(line), "|")
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r != '-' && r != ':' && r != '|' && r != ' ' {
			return false
		}
	}
	return true
}

// FormatTable renders rows as aligned plain-text columns for terminal output.
func FormatTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, 0)
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for rowIdx, row := range rows {
		for i, cell := range row {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
		if rowIdx == 0 {
			for i, w := range widths {
				b.WriteString(strings.Repeat("-", w))
				if i < len(widths)-1 {
					b.WriteString("  ")
				}
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
