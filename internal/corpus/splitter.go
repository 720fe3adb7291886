package corpus

import "strings"

// Chunk is the unit of retrieval. Ordinal is the chunk's position in
// the split document.
type Chunk struct {
	Text    string
	Ordinal int
}

const (
	defaultChunkSize = 1500
	defaultOverlap   = 300
)

// separators are tried in priority order; a piece that still exceeds
// the budget is split again with the next separator, down to raw
// character splitting.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter performs recursive character splitting with overlap carried
// from the tail of the previous chunk.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

func NewSplitter() *Splitter {
	return &Splitter{ChunkSize: defaultChunkSize, Overlap: defaultOverlap}
}

// Split breaks the document into chunks of at most ChunkSize
// characters. Each chunk after the first starts with the last Overlap
// characters of the previous chunk; the remainder of the chunks
// concatenate back into the original document.
func (s *Splitter) Split(document string) []Chunk {
	if document == "" {
		return nil
	}

	budget := s.ChunkSize - s.Overlap
	pieces := split(document, separators, budget)

	// Greedily pack pieces up to the content budget.
	var contents []string
	var current strings.Builder
	for _, piece := range pieces {
		if current.Len() > 0 && current.Len()+len(piece) > budget {
			contents = append(contents, current.String())
			current.Reset()
		}
		current.WriteString(piece)
	}
	if current.Len() > 0 {
		contents = append(contents, current.String())
	}

	chunks := make([]Chunk, len(contents))
	tail := ""
	for i, content := range contents {
		text := tail + content
		chunks[i] = Chunk{Text: text, Ordinal: i}
		if len(text) > s.Overlap {
			tail = text[len(text)-s.Overlap:]
		} else {
			tail = text
		}
	}
	return chunks
}

// OverlapLen reports how many leading characters of chunk i repeat the
// tail of the previous chunk.
func (s *Splitter) OverlapLen(chunks []Chunk, i int) int {
	if i == 0 {
		return 0
	}
	prev := len(chunks[i-1].Text)
	if prev < s.Overlap {
		return prev
	}
	return s.Overlap
}

// split recursively breaks text into pieces no longer than budget,
// keeping separators attached so no characters are lost.
func split(text string, seps []string, budget int) []string {
	if len(text) <= budget {
		return []string{text}
	}
	if len(seps) == 0 || seps[0] == "" {
		// Character-level split, the last resort.
		var out []string
		for len(text) > budget {
			out = append(out, text[:budget])
			text = text[budget:]
		}
		if text != "" {
			out = append(out, text)
		}
		return out
	}

	parts := strings.SplitAfter(text, seps[0])
	if len(parts) == 1 {
		return split(text, seps[1:], budget)
	}

	var out []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if len(part) > budget {
			out = append(out, split(part, seps[1:], budget)...)
		} else {
			out = append(out, part)
		}
	}
	return out
}
