package chunker

import (
	"strconv"
	"strings"

	"scanner-rag/internal/models"
)

const (
	DefaultMaxChars = 500
	DefaultOverlap  = 50
)

// Chunker splits extracted document text into bounded overlapping segments.
type Chunker struct {
	maxChars int
	overlap  int
}

func New(maxChars, overlap int) *Chunker {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChars {
		// avoid a non-advancing window
		overlap = maxChars / 2
	}
	return &Chunker{maxChars: maxChars, overlap: overlap}
}

// Split cuts page text into chunks of at most maxChars characters where
// consecutive chunks share exactly overlap characters. The final chunk may be
// shorter. Whitespace-only input yields no chunks.
func (c *Chunker) Split(text, source string, pageNum int) []models.Chunk {
	content := strings.TrimSpace(text)
	if content == "" {
		return nil
	}

	var chunks []models.Chunk
	for _, part := range c.split(content) {
		chunks = append(chunks, models.Chunk{
			Content:  part,
			Source:   source,
			PageNum:  pageNum,
			Metadata: map[string]string{},
		})
	}
	return chunks
}

func (c *Chunker) split(content string) []string {
	if len(content) <= c.maxChars {
		return []string{content}
	}

	var parts []string
	step := c.maxChars - c.overlap
	for start := 0; start < len(content); start += step {
		end := start + c.maxChars
		if end >= len(content) {
			parts = append(parts, content[start:])
			break
		}
		parts = append(parts, content[start:end])
	}
	return parts
}

// FromRow builds a single chunk from one spreadsheet row by joining non-empty
// cells with the cell delimiter. Rows are never length-split; provenance is the
// 0-based row index rather than a page number.
func FromRow(cells []string, source string, rowIdx int) (models.Chunk, bool) {
	var filled []string
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			filled = append(filled, cell)
		}
	}
	if len(filled) == 0 {
		return models.Chunk{}, false
	}
	return models.Chunk{
		Content: strings.Join(filled, models.CellDelimiter),
		Source:  source,
		Metadata: map[string]string{
			"row": strconv.Itoa(rowIdx),
		},
	}, true
}
