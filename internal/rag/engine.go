package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"jamesfarrell.me/youtube-rag/internal/corpus"
	"jamesfarrell.me/youtube-rag/internal/llm"
	"jamesfarrell.me/youtube-rag/internal/sources"
)

// retrievalK is how many chunks each retrieval pass pulls into context.
const retrievalK = 6

// InvalidArgumentError reports an out-of-range argument.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string { return e.Msg }

// Granularity selects a summary verbosity level.
type Granularity string

const (
	TLDR          Granularity = "tldr"
	Brief         Granularity = "brief"
	BulletPoints  Granularity = "bullet_points"
	Detailed      Granularity = "detailed"
	Comprehensive Granularity = "comprehensive"
)

// Granularities lists every summary level in generation order.
var Granularities = []Granularity{TLDR, Brief, BulletPoints, Detailed, Comprehensive}

var summaryInstructions = map[Granularity]string{
	TLDR:          "Write a single-sentence TL;DR of the video.",
	Brief:         "Write a brief summary of the video in 2-3 sentences.",
	BulletPoints:  "Summarize the video as 5-8 concise bullet points.",
	Detailed:      "Write a detailed summary of the video in 2-3 paragraphs covering the main arguments.",
	Comprehensive: "Write a comprehensive summary of the video covering every major topic, argument and conclusion.",
}

// SummaryResult is one generated summary. The engine does not cache
// results; repeat calls regenerate.
type SummaryResult struct {
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
}

// QAPair is one auto-generated question with its answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ProvenancedAnswer is an answer plus a snapshot of the source ledger.
type ProvenancedAnswer struct {
	Answer   string          `json:"answer"`
	Sources  sources.Summary `json:"sources_summary"`
	Metadata Metadata        `json:"metadata"`
}

// Engine answers questions against a session's corpus index and logs
// every answered query to the source ledger.
type Engine struct {
	index     *corpus.Index
	ledger    *sources.Ledger
	metadata  Metadata
	generator llm.Generator
	log       *logrus.Entry
}

func NewEngine(index *corpus.Index, ledger *sources.Ledger, metadata Metadata, generator llm.Generator) *Engine {
	return &Engine{
		index:     index,
		ledger:    ledger,
		metadata:  metadata,
		generator: generator,
		log:       logrus.WithField("component", "answering"),
	}
}

// Ask retrieves the most relevant chunks, generates an answer that
// prioritizes transcript content, and logs the query. A failed
// generation logs nothing.
func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	contextText, err := e.retrieve(ctx, question)
	if err != nil {
		return "", err
	}

	answer, err := e.generator.Generate(ctx, answerPrompt(contextText, question, e.metadata.EnrichmentSources))
	if err != nil {
		return "", err
	}

	used := []sources.Type{sources.Transcript}
	for _, strategy := range e.metadata.EnrichmentSources {
		used = append(used, sources.Type(strategy))
	}
	e.ledger.LogQuery(question, answer, used)

	e.log.WithField("question", question).Info("question answered")
	return answer, nil
}

// AskWithSources answers a question and attaches the current ledger
// summary and session metadata.
func (e *Engine) AskWithSources(ctx context.Context, question string) (ProvenancedAnswer, error) {
	answer, err := e.Ask(ctx, question)
	if err != nil {
		return ProvenancedAnswer{}, err
	}
	return ProvenancedAnswer{
		Answer:   answer,
		Sources:  e.ledger.Summary(),
		Metadata: e.metadata,
	}, nil
}

// Summarize generates one summary at the given granularity.
func (e *Engine) Summarize(ctx context.Context, granularity Granularity) (SummaryResult, error) {
	instruction, ok := summaryInstructions[granularity]
	if !ok {
		return SummaryResult{}, &InvalidArgumentError{Msg: fmt.Sprintf("unknown summary granularity %q", granularity)}
	}

	contextText, err := e.retrieve(ctx, "main topics key points conclusions")
	if err != nil {
		return SummaryResult{}, err
	}

	text, err := e.generator.Generate(ctx, summaryPrompt(contextText, instruction))
	if err != nil {
		return SummaryResult{}, err
	}
	return SummaryResult{Text: text, GeneratedAt: time.Now()}, nil
}

// GenerateAllSummaries produces every granularity. The batch fails as
// a whole on the first error so the caller can retry explicitly.
func (e *Engine) GenerateAllSummaries(ctx context.Context) (map[Granularity]SummaryResult, error) {
	results := make(map[Granularity]SummaryResult, len(Granularities))
	for _, granularity := range Granularities {
		result, err := e.Summarize(ctx, granularity)
		if err != nil {
			return nil, fmt.Errorf("error generating %s summary: %w", granularity, err)
		}
		results[granularity] = result
	}
	return results, nil
}

// GenerateAutoQA asks the backend for n grounded question/answer pairs
// in a single generation call. n must be between 1 and 10.
func (e *Engine) GenerateAutoQA(ctx context.Context, n int) ([]QAPair, error) {
	if n < 1 || n > 10 {
		return nil, &InvalidArgumentError{Msg: fmt.Sprintf("auto-QA count must be between 1 and 10, got %d", n)}
	}

	contextText, err := e.retrieve(ctx, "important facts concepts explained")
	if err != nil {
		return nil, err
	}

	raw, err := e.generator.Generate(ctx, autoQAPrompt(contextText, n))
	if err != nil {
		return nil, err
	}

	pairs := parseQAPairs(raw)
	if len(pairs) == 0 {
		return nil, fmt.Errorf("backend returned no parseable Q&A pairs")
	}
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs, nil
}

// retrieve pulls the top-k chunks for a query and joins them into one
// context block.
func (e *Engine) retrieve(ctx context.Context, query string) (string, error) {
	scored, err := e.index.Search(ctx, query, retrievalK)
	if err != nil {
		return "", fmt.Errorf("error retrieving context: %w", err)
	}

	parts := make([]string, len(scored))
	for i, s := range scored {
		parts[i] = s.Chunk.Text
	}
	return strings.Join(parts, "\n\n"), nil
}

// parseQAPairs reads "Q: ...\nA: ..." blocks, tolerating extra blank
// lines and multi-line answers.
func parseQAPairs(raw string) []QAPair {
	var pairs []QAPair
	var current *QAPair

	flush := func() {
		if current != nil && current.Question != "" && current.Answer != "" {
			current.Question = strings.TrimSpace(current.Question)
			current.Answer = strings.TrimSpace(current.Answer)
			pairs = append(pairs, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Q:"):
			flush()
			current = &QAPair{Question: strings.TrimSpace(trimmed[2:])}
		case strings.HasPrefix(trimmed, "A:"):
			if current != nil {
				current.Answer = strings.TrimSpace(trimmed[2:])
			}
		default:
			if current != nil && current.Answer != "" && trimmed != "" {
				current.Answer += " " + trimmed
			}
		}
	}
	flush()
	return pairs
}
