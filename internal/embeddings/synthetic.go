package embeddings

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

const syntheticDim = 384

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Synthetic is the last-resort embedder: it hashes word tokens into a
// fixed number of buckets and normalizes the result. Not semantically
// meaningful, but deterministic and dependency-free, so retrieval
// still works on shared vocabulary.
type Synthetic struct {
	dim int
}

func NewSynthetic() *Synthetic {
	return &Synthetic{dim: syntheticDim}
}

func (s *Synthetic) Name() string { return "synthetic" }

func (s *Synthetic) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, s.dim)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%uint32(s.dim)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}
