// Package transcript fetches video transcripts with ordered fallback
// strategies and normalizes the provider's payload into plain text.
package transcript

import (
	"context"
	"strings"
)

// Snippet is one timed caption segment.
type Snippet struct {
	Text     string
	Start    float64
	Duration float64
}

// Entry is an opaque transcript item that only promises a text field.
type Entry struct {
	Text string
}

// Payload is the variant shape a provider may return: a structured
// snippet list, an opaque entry list, or raw text. Extraction tries
// the shapes in that order and the first that yields text wins.
type Payload struct {
	Snippets []Snippet
	Entries  []Entry
	Raw      string
}

// Available describes one transcript track a video offers.
type Available struct {
	LanguageCode string
	Fetch        func(ctx context.Context) (Payload, error)
}

// Provider is the external transcript source. Fetch with no languages
// requests the video's default transcript.
type Provider interface {
	Fetch(ctx context.Context, videoID string, languages ...string) (Payload, error)
	List(ctx context.Context, videoID string) ([]Available, error)
}

// extractionStrategies are tried in rank order; the first non-empty
// result wins.
var extractionStrategies = []func(Payload) string{
	snippetText,
	entryText,
	rawText,
}

func extractText(p Payload) string {
	for _, strategy := range extractionStrategies {
		if text := strategy(p); text != "" {
			return text
		}
	}
	return ""
}

func snippetText(p Payload) string {
	if len(p.Snippets) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.Snippets))
	for _, s := range p.Snippets {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

func entryText(p Payload) string {
	if len(p.Entries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		if e.Text != "" {
			parts = append(parts, e.Text)
		}
	}
	return strings.Join(parts, " ")
}

func rawText(p Payload) string {
	return p.Raw
}
