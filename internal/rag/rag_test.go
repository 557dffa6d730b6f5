package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanner-rag/internal/config"
	"scanner-rag/internal/models"
	"scanner-rag/internal/session"
)

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return f.vec, f.err
}

type fakeStore struct {
	results  []models.RetrievedChunk
	lastVec  []float32
	lastTopK int
}

func (f *fakeStore) Upsert(ctx context.Context, chunk models.Chunk, embedding []float32) error {
	return nil
}
func (f *fakeStore) ClearAll(ctx context.Context) error { return nil }
func (f *fakeStore) Search(ctx context.Context, queryEmbedding []float32, topK int) []models.RetrievedChunk {
	f.lastVec = queryEmbedding
	f.lastTopK = topK
	return f.results
}
func (f *fakeStore) Close() error { return nil }

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}
func (f *fakeGenerator) Provider() string { return "Groq" }
func (f *fakeGenerator) Model() string    { return "test-model" }

func retrieved(content, source string) models.RetrievedChunk {
	return models.RetrievedChunk{
		Chunk:      models.Chunk{Content: content, Source: source},
		Similarity: 0.9,
	}
}

func newTestRAG(st *fakeStore, gen *fakeGenerator) (*RAG, *fakeEmbedder) {
	emb := &fakeEmbedder{vec: []float32{1, 0}}
	cfg := &config.Config{}
	cfg.RAG.TopK = 5
	return NewRAG(emb, st, gen, cfg), emb
}

func TestAsk_FullPipeline(t *testing.T) {
	st := &fakeStore{results: []models.RetrievedChunk{
		retrieved("the ScanJet supports 600 dpi", "brochure.pdf"),
		retrieved("cleaning requires a microfiber cloth", "manual.pdf"),
		retrieved("more ScanJet details", "brochure.pdf"),
	}}
	gen := &fakeGenerator{reply: "Okay, here is the answer\n- 600 dpi\n- use a microfiber cloth"}
	r, _ := newTestRAG(st, gen)
	sess := session.New()

	resp := r.Ask(context.Background(), sess, "What resolution does the ScanJet support?")

	// sanitized answer, no narration line
	assert.Equal(t, "- 600 dpi\n- use a microfiber cloth", resp.Content)
	assert.False(t, resp.IsTable)
	assert.Equal(t, "Sources: brochure.pdf, manual.pdf", resp.Sources)
	assert.Equal(t, 5, st.lastTopK)

	// prompt carried the retrieved context in ranked order
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "the ScanJet supports 600 dpi\ncleaning requires a microfiber cloth")
	assert.Contains(t, gen.prompts[0], "What resolution does the ScanJet support?")

	// both turns recorded
	require.Len(t, sess.History, 2)
	assert.Equal(t, models.RoleUser, sess.History[0].Role)
	assert.Equal(t, models.RoleAssistant, sess.History[1].Role)
	assert.Equal(t, resp.Content, sess.History[1].Content)
	assert.Equal(t, resp.Sources, sess.History[1].Sources)
}

func TestAsk_ComparisonQuerySetsTableFlag(t *testing.T) {
	st := &fakeStore{results: []models.RetrievedChunk{retrieved("specs", "sheet.xlsx")}}
	gen := &fakeGenerator{reply: "<table><tr><th>A</th><th>B</th></tr></table>"}
	r, _ := newTestRAG(st, gen)

	resp := r.Ask(context.Background(), session.New(), "Compare model A vs model B")

	assert.True(t, resp.IsTable)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "<table>")
	assert.NotContains(t, gen.prompts[0], "bullet points")
}

func TestAsk_EmptyRetrievalStillAnswers(t *testing.T) {
	st := &fakeStore{}
	gen := &fakeGenerator{reply: "- no relevant information found in the context"}
	r, _ := newTestRAG(st, gen)

	resp := r.Ask(context.Background(), session.New(), "something obscure")

	assert.Equal(t, "- no relevant information found in the context", resp.Content)
	assert.Empty(t, resp.Sources)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Context:\n\n")
}

func TestAsk_EmbeddingFailureDegradesToEmptyContext(t *testing.T) {
	st := &fakeStore{results: []models.RetrievedChunk{retrieved("never used", "doc.pdf")}}
	gen := &fakeGenerator{reply: "- answer without grounding"}
	r, emb := newTestRAG(st, gen)
	emb.err = errors.New("model unavailable")

	resp := r.Ask(context.Background(), session.New(), "query")

	// search was skipped, so no sources and an empty context
	assert.Empty(t, resp.Sources)
	assert.Nil(t, st.lastVec)
	assert.Equal(t, "- answer without grounding", resp.Content)
}

func TestAsk_ResponseAndEmbeddingCaches(t *testing.T) {
	st := &fakeStore{results: []models.RetrievedChunk{retrieved("ctx", "doc.pdf")}}
	gen := &fakeGenerator{reply: "- cached answer"}
	r, emb := newTestRAG(st, gen)
	sess := session.New()

	first := r.Ask(context.Background(), sess, "repeat me")
	second := r.Ask(context.Background(), sess, "repeat me")

	assert.Equal(t, first.Content, second.Content)
	assert.Len(t, gen.prompts, 1, "identical prompt+model should be served from cache")
	assert.Equal(t, 1, emb.calls, "query embedding should be cached per session")
	assert.Len(t, sess.History, 4)
}

func TestAsk_GenerationFailureIsVisibleAndUncached(t *testing.T) {
	st := &fakeStore{results: []models.RetrievedChunk{retrieved("ctx", "doc.pdf")}}
	gen := &fakeGenerator{reply: "[Groq API Error] request failed: 500", err: errors.New("request failed: 500")}
	r, _ := newTestRAG(st, gen)
	sess := session.New()

	first := r.Ask(context.Background(), sess, "query")
	assert.Contains(t, first.Content, "[Groq API Error]")

	// failed responses are not cached; a retry reaches the generator again
	r.Ask(context.Background(), sess, "query")
	assert.Len(t, gen.prompts, 2)
}

func TestFormatSources(t *testing.T) {
	assert.Empty(t, FormatSources(nil))

	results := []models.RetrievedChunk{
		retrieved("a", "doc1.pdf"),
		retrieved("b", "doc2.pdf"),
		retrieved("c", "doc1.pdf"),
		retrieved("d", ""),
	}
	assert.Equal(t, "Sources: doc1.pdf, doc2.pdf", FormatSources(results))
}
