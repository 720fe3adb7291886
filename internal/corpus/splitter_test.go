package corpus

import (
	"strings"
	"testing"
)

func buildDocument() string {
	var b strings.Builder
	paragraphs := []string{
		"Machine learning systems transform raw observations into predictions.",
		"Neural networks stack layers of differentiable transformations. Each layer learns increasingly abstract features from its inputs.",
		"Training proceeds by gradient descent over a loss surface. Convergence depends on the learning rate, the batch size and the architecture itself.",
	}
	for i := 0; i < 40; i++ {
		b.WriteString(paragraphs[i%len(paragraphs)])
		b.WriteString("\n\n")
	}
	return b.String()
}

func TestSplitRoundTrip(t *testing.T) {
	splitter := NewSplitter()
	doc := buildDocument()
	chunks := splitter.Split(doc)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for %d chars, got %d", len(doc), len(chunks))
	}

	// Concatenating each chunk minus its leading overlap reconstructs
	// the original document.
	var b strings.Builder
	for i, chunk := range chunks {
		b.WriteString(chunk.Text[splitter.OverlapLen(chunks, i):])
	}
	if b.String() != doc {
		t.Errorf("round trip failed: got %d chars, want %d", b.Len(), len(doc))
	}
}

func TestSplitSizeBounds(t *testing.T) {
	splitter := NewSplitter()
	chunks := splitter.Split(buildDocument())

	for _, chunk := range chunks {
		if len(chunk.Text) > splitter.ChunkSize {
			t.Errorf("chunk %d has %d chars, exceeds max %d", chunk.Ordinal, len(chunk.Text), splitter.ChunkSize)
		}
	}
}

func TestSplitOverlap(t *testing.T) {
	splitter := NewSplitter()
	chunks := splitter.Split(buildDocument())

	for i := 1; i < len(chunks); i++ {
		overlap := splitter.OverlapLen(chunks, i)
		prevTail := chunks[i-1].Text[len(chunks[i-1].Text)-overlap:]
		if !strings.HasPrefix(chunks[i].Text, prevTail) {
			t.Errorf("chunk %d does not start with the tail of chunk %d", i, i-1)
		}
	}
}

func TestSplitOrdinals(t *testing.T) {
	chunks := NewSplitter().Split(buildDocument())
	for i, chunk := range chunks {
		if chunk.Ordinal != i {
			t.Errorf("chunk at position %d has ordinal %d", i, chunk.Ordinal)
		}
	}
}

func TestSplitShortDocument(t *testing.T) {
	chunks := NewSplitter().Split("a short document")
	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0].Text != "a short document" {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
}

func TestSplitEmptyDocument(t *testing.T) {
	if chunks := NewSplitter().Split(""); chunks != nil {
		t.Errorf("Split(\"\") = %v, want nil", chunks)
	}
}

func TestSplitUnbrokenText(t *testing.T) {
	// No separators at all forces character-level splitting.
	splitter := &Splitter{ChunkSize: 100, Overlap: 20}
	doc := strings.Repeat("x", 500)
	chunks := splitter.Split(doc)

	for _, chunk := range chunks {
		if len(chunk.Text) > splitter.ChunkSize {
			t.Errorf("chunk %d has %d chars, exceeds max %d", chunk.Ordinal, len(chunk.Text), splitter.ChunkSize)
		}
	}

	var b strings.Builder
	for i, chunk := range chunks {
		b.WriteString(chunk.Text[splitter.OverlapLen(chunks, i):])
	}
	if b.String() != doc {
		t.Errorf("round trip failed for unbroken text")
	}
}
