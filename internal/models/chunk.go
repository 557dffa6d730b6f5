package models

// Chunk is one bounded slice of source document text with provenance metadata.
type Chunk struct {
	Content  string
	Source   string
	PageNum  int // 1-based, 0 when the source has no pages
	Metadata map[string]string
}

// RetrievedChunk is a chunk returned by a similarity search, best match first.
type RetrievedChunk struct {
	Chunk
	Similarity float32
}

// ChatMessage is one turn of a session's conversation history.
type ChatMessage struct {
	Role    string // "user" or "assistant"
	Content string
	Sources string
	IsTable bool
}

// PromptResponse is the answer produced for one query.
type PromptResponse struct {
	Query   string
	Content string
	Sources string
	IsTable bool
}
