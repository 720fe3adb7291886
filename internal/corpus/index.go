package corpus

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"jamesfarrell.me/youtube-rag/internal/embeddings"
)

// Scored pairs a chunk with its similarity to a query.
type Scored struct {
	Chunk Chunk
	Score float64
}

// Index is the in-memory vector index over a document's chunks.
// chunks[i] corresponds to vectors[i]. Built once per session, never
// updated incrementally.
type Index struct {
	chunks   []Chunk
	vectors  [][]float32
	embedder embeddings.Embedder
}

// BuildIndex embeds every chunk with the given embedder.
func BuildIndex(ctx context.Context, chunks []Chunk, embedder embeddings.Embedder) (*Index, error) {
	index := &Index{
		chunks:   chunks,
		vectors:  make([][]float32, len(chunks)),
		embedder: embedder,
	}
	for i, chunk := range chunks {
		vec, err := embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return nil, fmt.Errorf("error embedding chunk %d: %w", chunk.Ordinal, err)
		}
		index.vectors[i] = vec
	}

	logrus.WithFields(logrus.Fields{
		"component": "corpus",
		"chunks":    len(chunks),
		"embedder":  embedder.Name(),
	}).Info("vector index built")
	return index, nil
}

// Len reports the number of indexed chunks.
func (ix *Index) Len() int { return len(ix.chunks) }

// Search returns the k chunks nearest the query by cosine similarity,
// most similar first.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]Scored, error) {
	queryVec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error embedding query: %w", err)
	}

	scored := make([]Scored, len(ix.chunks))
	for i, chunk := range ix.chunks {
		scored[i] = Scored{Chunk: chunk, Score: cosine(queryVec, ix.vectors[i])}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k < len(scored) {
		scored = scored[:k]
	}
	return scored, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
