package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"jamesfarrell.me/youtube-rag/internal/search"
	"jamesfarrell.me/youtube-rag/internal/sources"
	"jamesfarrell.me/youtube-rag/internal/topics"
)

// Engine runs the configured enrichment strategies against a web
// searcher and records every fetched result in the source ledger.
// A nil searcher disables enrichment without error.
type Engine struct {
	cfg      Config
	ledger   *sources.Ledger
	searcher search.Searcher
	log      *logrus.Entry
}

func NewEngine(cfg Config, ledger *sources.Ledger, searcher search.Searcher) *Engine {
	return &Engine{
		cfg:      cfg,
		ledger:   ledger,
		searcher: searcher,
		log:      logrus.WithField("component", "enrich"),
	}
}

// Enrich runs the configured strategies in fixed order and returns a
// labeled text block per strategy that produced content. Strategies
// that yield nothing are omitted.
func (e *Engine) Enrich(ctx context.Context, videoTitle, transcript string) map[Strategy]string {
	if !e.cfg.Enabled || e.searcher == nil {
		e.log.Info("enrichment disabled or search unavailable")
		return map[Strategy]string{}
	}

	keyTopics := topics.Extract(transcript, 3)
	e.log.WithField("topics", keyTopics).Info("key topics identified")

	enriched := make(map[Strategy]string)
	for _, strategy := range strategyOrder {
		if !e.cfg.has(strategy) {
			continue
		}
		var result string
		switch strategy {
		case Background:
			result = e.backgroundContext(ctx, keyTopics)
		case Discussions:
			result = e.relatedDiscussions(ctx, videoTitle)
		case Academic:
			result = e.academicContext(ctx, videoTitle, keyTopics)
		case Current:
			result = e.currentInfo(ctx, videoTitle, keyTopics)
		}
		if result != "" {
			enriched[strategy] = result
		}
	}

	e.log.WithField("strategies", len(enriched)).Info("enrichment complete")
	return enriched
}

// backgroundContext searches for background on the top two topics and
// joins the results under topic-labeled headers.
func (e *Engine) backgroundContext(ctx context.Context, keyTopics []string) string {
	var parts []string
	for i, topic := range keyTopics {
		if i == 2 {
			break
		}
		result := e.safeSearch(ctx, topic+" overview explanation", Background)
		if result != "" {
			parts = append(parts, fmt.Sprintf("Background on '%s':\n%s", topic, result))
		}
	}
	return strings.Join(parts, "\n\n")
}

func (e *Engine) relatedDiscussions(ctx context.Context, videoTitle string) string {
	query := fmt.Sprintf("\"%s\" discussion analysis review", videoTitle)
	return e.safeSearch(ctx, query, Discussions)
}

func (e *Engine) academicContext(ctx context.Context, videoTitle string, keyTopics []string) string {
	query := primaryTopic(keyTopics, videoTitle) + " research paper study academic"
	return e.safeSearch(ctx, query, Academic)
}

func (e *Engine) currentInfo(ctx context.Context, videoTitle string, keyTopics []string) string {
	query := primaryTopic(keyTopics, videoTitle) + " latest 2025 updates news"
	return e.safeSearch(ctx, query, Current)
}

// safeSearch runs one bounded search. Failures degrade to an empty
// result and are logged, never surfaced.
func (e *Engine) safeSearch(ctx context.Context, query string, strategy Strategy) string {
	result, err := e.searcher.Search(ctx, query)
	if err != nil {
		e.log.WithFields(logrus.Fields{"query": query, "strategy": strategy}).Warnf("search failed: %v", err)
		return ""
	}

	if len(result) > e.cfg.MaxResultChars {
		result = result[:e.cfg.MaxResultChars]
	}

	if e.cfg.TrackSources && result != "" {
		e.ledger.Add(sources.Type(strategy), result, 0.8)
	}
	return result
}

func primaryTopic(keyTopics []string, videoTitle string) string {
	if len(keyTopics) > 0 {
		return keyTopics[0]
	}
	return videoTitle
}
