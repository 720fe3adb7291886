package embeddings

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestSyntheticDeterministic(t *testing.T) {
	embedder := NewSynthetic()

	first, err := embedder.Embed(context.Background(), "neural networks explained")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(first) != syntheticDim {
		t.Fatalf("len(vector) = %d, want %d", len(first), syntheticDim)
	}

	second, _ := embedder.Embed(context.Background(), "neural networks explained")
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("vectors differ at index %d", i)
		}
	}
}

func TestSyntheticNormalized(t *testing.T) {
	embedder := NewSynthetic()
	vec, err := embedder.Embed(context.Background(), "some text with several words")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1) > 1e-5 {
		t.Errorf("vector norm = %f, want 1", norm)
	}
}

func TestSyntheticEmptyText(t *testing.T) {
	vec, err := NewSynthetic().Embed(context.Background(), "")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vec) != syntheticDim {
		t.Errorf("len(vector) = %d, want %d", len(vec), syntheticDim)
	}
}

func TestFirstAvailable(t *testing.T) {
	chain := []Factory{
		{Name: "broken", New: func() (Embedder, error) { return nil, errors.New("no key") }},
		{Name: "synthetic", New: func() (Embedder, error) { return NewSynthetic(), nil }},
	}

	embedder, err := FirstAvailable(chain)
	if err != nil {
		t.Fatalf("FirstAvailable() error = %v", err)
	}
	if embedder.Name() != "synthetic" {
		t.Errorf("selected %q, want synthetic", embedder.Name())
	}
}

func TestFirstAvailableAllFail(t *testing.T) {
	chain := []Factory{
		{Name: "a", New: func() (Embedder, error) { return nil, errors.New("down") }},
		{Name: "b", New: func() (Embedder, error) { return nil, errors.New("also down") }},
	}

	_, err := FirstAvailable(chain)
	var noProvider *NoProviderAvailableError
	if !errors.As(err, &noProvider) {
		t.Fatalf("error = %v, want NoProviderAvailableError", err)
	}
	if len(noProvider.Reasons) != 2 {
		t.Errorf("len(Reasons) = %d, want 2", len(noProvider.Reasons))
	}
}

func TestDefaultChainFallsBackToSynthetic(t *testing.T) {
	embedder, err := FirstAvailable(DefaultChain(""))
	if err != nil {
		t.Fatalf("FirstAvailable() error = %v", err)
	}
	if embedder.Name() != "synthetic" {
		t.Errorf("selected %q, want synthetic when no OpenAI key", embedder.Name())
	}
}
