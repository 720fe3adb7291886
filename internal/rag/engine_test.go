package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"jamesfarrell.me/youtube-rag/internal/embeddings"
	"jamesfarrell.me/youtube-rag/internal/enrich"
	"jamesfarrell.me/youtube-rag/internal/sources"
	"jamesfarrell.me/youtube-rag/internal/transcript"
)

// fakeTranscripts always returns the same English transcript.
type fakeTranscripts struct {
	text string
}

func (f *fakeTranscripts) Fetch(ctx context.Context, videoID string, languages ...string) (transcript.Payload, error) {
	return transcript.Payload{Snippets: []transcript.Snippet{{Text: f.text}}}, nil
}

func (f *fakeTranscripts) List(ctx context.Context, videoID string) ([]transcript.Available, error) {
	return nil, errors.New("not needed")
}

type fakeTitles struct{}

func (fakeTitles) Resolve(ctx context.Context, videoID string) string {
	return "Test Video " + videoID
}

type fakeSearcher struct {
	calls int
}

func (f *fakeSearcher) Search(ctx context.Context, query string) (string, error) {
	f.calls++
	return "web result for " + query, nil
}

// fakeGenerator replies with a fixed answer or a scripted error.
type fakeGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

const testURL = "https://www.youtube.com/watch?v=abc123XYZ00"

func newTestSession(t *testing.T, cfg enrich.Config, generator *fakeGenerator) *Session {
	t.Helper()
	session, err := CreateSession(context.Background(), testURL, cfg, Deps{
		Transcripts: &fakeTranscripts{text: strings.Repeat("neural network training gradient descent ", 50)},
		Titles:      fakeTitles{},
		Searcher:    &fakeSearcher{},
		Embedder:    embeddings.NewSynthetic(),
		Generator:   generator,
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	return session
}

func TestCreateSession(t *testing.T) {
	session := newTestSession(t, enrich.PresetBalanced(), &fakeGenerator{answer: "ok"})

	if session.Metadata.VideoID != "abc123XYZ00" {
		t.Errorf("VideoID = %q", session.Metadata.VideoID)
	}
	if session.Metadata.Title != "Test Video abc123XYZ00" {
		t.Errorf("Title = %q", session.Metadata.Title)
	}
	if len(session.Metadata.EnrichmentSources) != 2 {
		t.Errorf("EnrichmentSources = %v, want background and discussions", session.Metadata.EnrichmentSources)
	}

	// Transcript + 2 background + 1 discussions, all marked used.
	s := session.Ledger.Summary()
	if s.TotalSources != 4 {
		t.Errorf("TotalSources = %d, want 4", s.TotalSources)
	}
	if s.UsedSources != s.TotalSources {
		t.Errorf("UsedSources = %d, want all %d used", s.UsedSources, s.TotalSources)
	}
}

func TestCreateSessionInvalidURL(t *testing.T) {
	_, err := CreateSession(context.Background(), "https://example.com/nope", enrich.TranscriptOnly(), Deps{})
	if err == nil {
		t.Fatal("CreateSession() with a bad URL should fail")
	}
}

func TestAskLogsQuery(t *testing.T) {
	generator := &fakeGenerator{answer: "the video covers neural networks"}
	session := newTestSession(t, enrich.PresetBalanced(), generator)

	answer, err := session.Engine.Ask(context.Background(), "what is this about?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer != "the video covers neural networks" {
		t.Errorf("Ask() = %q", answer)
	}

	history := session.Ledger.QueryHistory()
	if len(history) != 1 {
		t.Fatalf("len(history) = %d, want 1", len(history))
	}
	entry := history[0]
	if entry.SourcesUsed[0] != sources.Transcript {
		t.Errorf("first source used = %v, want transcript", entry.SourcesUsed[0])
	}
	if len(entry.SourcesUsed) != 3 {
		t.Errorf("SourcesUsed = %v, want transcript plus 2 strategies", entry.SourcesUsed)
	}

	// The prompt instructs transcript priority and names the strategies.
	prompt := generator.prompts[len(generator.prompts)-1]
	if !strings.Contains(prompt, "Prioritize transcript information") {
		t.Errorf("prompt missing transcript priority instruction")
	}
	if !strings.Contains(prompt, "web enrichment (background, discussions)") {
		t.Errorf("prompt missing enrichment note: %s", prompt)
	}
}

func TestAskFailureLogsNothing(t *testing.T) {
	session := newTestSession(t, enrich.TranscriptOnly(), &fakeGenerator{err: errors.New("backend down")})
	if _, err := session.Engine.Ask(context.Background(), "anything"); err == nil {
		t.Fatal("Ask() should surface the backend error")
	}
	if got := len(session.Ledger.QueryHistory()); got != 0 {
		t.Errorf("failed query must not be logged, history has %d entries", got)
	}
}

func TestAskWithSources(t *testing.T) {
	session := newTestSession(t, enrich.PresetBalanced(), &fakeGenerator{answer: "answer"})

	result, err := session.Engine.AskWithSources(context.Background(), "question?")
	if err != nil {
		t.Fatalf("AskWithSources() error = %v", err)
	}
	if result.Answer != "answer" {
		t.Errorf("Answer = %q", result.Answer)
	}
	if result.Sources.TotalSources == 0 {
		t.Errorf("Sources snapshot should not be empty")
	}
	if result.Metadata.VideoID != session.Metadata.VideoID {
		t.Errorf("Metadata mismatch")
	}
}

func TestSummarize(t *testing.T) {
	session := newTestSession(t, enrich.TranscriptOnly(), &fakeGenerator{answer: "a summary"})

	result, err := session.Engine.Summarize(context.Background(), BulletPoints)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if result.Text != "a summary" {
		t.Errorf("Text = %q", result.Text)
	}
	if result.GeneratedAt.IsZero() {
		t.Errorf("GeneratedAt should be set")
	}
}

func TestSummarizeUnknownGranularity(t *testing.T) {
	session := newTestSession(t, enrich.TranscriptOnly(), &fakeGenerator{answer: "x"})

	_, err := session.Engine.Summarize(context.Background(), Granularity("novella"))
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidArgumentError", err)
	}
}

func TestGenerateAllSummaries(t *testing.T) {
	session := newTestSession(t, enrich.TranscriptOnly(), &fakeGenerator{answer: "s"})

	results, err := session.Engine.GenerateAllSummaries(context.Background())
	if err != nil {
		t.Fatalf("GenerateAllSummaries() error = %v", err)
	}
	if len(results) != len(Granularities) {
		t.Errorf("len(results) = %d, want %d", len(results), len(Granularities))
	}
	for _, g := range Granularities {
		if _, ok := results[g]; !ok {
			t.Errorf("missing granularity %s", g)
		}
	}
}

func TestGenerateAllSummariesFailFast(t *testing.T) {
	session := newTestSession(t, enrich.TranscriptOnly(), &fakeGenerator{err: errors.New("rate limited")})

	results, err := session.Engine.GenerateAllSummaries(context.Background())
	if err == nil {
		t.Fatal("GenerateAllSummaries() should fail when any granularity fails")
	}
	if results != nil {
		t.Errorf("partial results returned: %v", results)
	}
}

func TestGenerateAutoQA(t *testing.T) {
	var reply strings.Builder
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&reply, "Q: question %d?\nA: answer %d.\n\n", i, i)
	}
	session := newTestSession(t, enrich.TranscriptOnly(), &fakeGenerator{answer: reply.String()})

	pairs, err := session.Engine.GenerateAutoQA(context.Background(), 5)
	if err != nil {
		t.Fatalf("GenerateAutoQA() error = %v", err)
	}
	if len(pairs) != 5 {
		t.Fatalf("len(pairs) = %d, want 5", len(pairs))
	}
	if pairs[0].Question != "question 1?" || pairs[0].Answer != "answer 1." {
		t.Errorf("first pair = %+v", pairs[0])
	}
	if pairs[4].Question != "question 5?" {
		t.Errorf("pairs out of order: %+v", pairs[4])
	}
}

func TestGenerateAutoQAOutOfRange(t *testing.T) {
	session := newTestSession(t, enrich.TranscriptOnly(), &fakeGenerator{answer: "x"})

	for _, n := range []int{0, -1, 11} {
		_, err := session.Engine.GenerateAutoQA(context.Background(), n)
		var invalid *InvalidArgumentError
		if !errors.As(err, &invalid) {
			t.Errorf("GenerateAutoQA(%d) error = %v, want InvalidArgumentError", n, err)
		}
	}
}

func TestParseQAPairs(t *testing.T) {
	raw := `Here are the pairs:

Q: What is covered?
A: Neural networks and how they train
across many iterations.

Q: Who is it for?
A: Beginners.`

	pairs := parseQAPairs(raw)
	if len(pairs) != 2 {
		t.Fatalf("len(pairs) = %d, want 2", len(pairs))
	}
	if !strings.Contains(pairs[0].Answer, "across many iterations") {
		t.Errorf("multi-line answer not joined: %q", pairs[0].Answer)
	}
	if pairs[1].Question != "Who is it for?" {
		t.Errorf("second question = %q", pairs[1].Question)
	}
}
