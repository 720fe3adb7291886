// Package embeddings turns text into fixed-dimension vectors through a
// prioritized chain of providers. The chain always terminates in a
// deterministic synthetic embedder so the pipeline never fails purely
// for lack of an embedding backend.
package embeddings

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Factory constructs an embedder, failing when its backend is not
// usable (e.g. no API key).
type Factory struct {
	Name string
	New  func() (Embedder, error)
}

// NoProviderAvailableError means every factory in the chain failed.
type NoProviderAvailableError struct {
	Reasons []string
}

func (e *NoProviderAvailableError) Error() string {
	return "no embedding provider available: " + strings.Join(e.Reasons, "; ")
}

// FirstAvailable returns the first embedder whose factory succeeds.
func FirstAvailable(factories []Factory) (Embedder, error) {
	log := logrus.WithField("component", "embeddings")

	var reasons []string
	for _, factory := range factories {
		embedder, err := factory.New()
		if err != nil {
			log.Warnf("embedder %s unavailable: %v", factory.Name, err)
			reasons = append(reasons, fmt.Sprintf("%s: %v", factory.Name, err))
			continue
		}
		log.WithField("provider", embedder.Name()).Info("embedding provider selected")
		return embedder, nil
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "empty provider chain")
	}
	return nil, &NoProviderAvailableError{Reasons: reasons}
}

// DefaultChain returns the standard provider priority: OpenAI when a
// key is present, then the synthetic fallback.
func DefaultChain(openAIKey string) []Factory {
	return []Factory{
		{Name: "openai", New: func() (Embedder, error) { return NewOpenAI(openAIKey) }},
		{Name: "synthetic", New: func() (Embedder, error) { return NewSynthetic(), nil }},
	}
}
