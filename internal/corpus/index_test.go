package corpus

import (
	"context"
	"strings"
	"testing"

	"jamesfarrell.me/youtube-rag/internal/embeddings"
	"jamesfarrell.me/youtube-rag/internal/enrich"
)

func TestMergeDocument(t *testing.T) {
	enriched := map[enrich.Strategy]string{
		enrich.Discussions: "a discussion thread",
		enrich.Background:  "background info",
	}

	doc := MergeDocument("the transcript", enriched)

	if !strings.HasPrefix(doc, "=== VIDEO TRANSCRIPT ===\nthe transcript") {
		t.Errorf("document does not start with the transcript section:\n%s", doc)
	}
	bgIdx := strings.Index(doc, "=== WEB CONTEXT: BACKGROUND ===\nbackground info")
	discIdx := strings.Index(doc, "=== WEB CONTEXT: DISCUSSIONS ===\na discussion thread")
	if bgIdx < 0 || discIdx < 0 {
		t.Fatalf("document missing enrichment sections:\n%s", doc)
	}
	// Sections appear in fixed strategy order, not map order.
	if bgIdx > discIdx {
		t.Errorf("background section should precede discussions")
	}
}

func TestMergeDocumentTranscriptOnly(t *testing.T) {
	doc := MergeDocument("just the transcript", nil)
	if doc != "=== VIDEO TRANSCRIPT ===\njust the transcript" {
		t.Errorf("unexpected document: %q", doc)
	}
}

func TestIndexSearch(t *testing.T) {
	chunks := []Chunk{
		{Text: "quantum computing uses qubits and superposition", Ordinal: 0},
		{Text: "gardening tips for growing tomatoes in summer", Ordinal: 1},
		{Text: "qubits entanglement and quantum gates explained", Ordinal: 2},
	}

	index, err := BuildIndex(context.Background(), chunks, embeddings.NewSynthetic())
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	if index.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", index.Len())
	}

	results, err := index.Search(context.Background(), "quantum qubits", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	for _, r := range results {
		if r.Chunk.Ordinal == 1 {
			t.Errorf("gardening chunk ranked in top 2 for a quantum query")
		}
	}
	if results[0].Score < results[1].Score {
		t.Errorf("results not ordered by descending score: %f then %f", results[0].Score, results[1].Score)
	}
}

func TestIndexSearchKLargerThanCorpus(t *testing.T) {
	chunks := []Chunk{{Text: "only one chunk", Ordinal: 0}}
	index, err := BuildIndex(context.Background(), chunks, embeddings.NewSynthetic())
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	results, err := index.Search(context.Background(), "anything", 6)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("len(results) = %d, want 1", len(results))
	}
}
