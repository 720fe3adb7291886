// Package rag wires the full pipeline: resolve a video reference,
// acquire its transcript, enrich it with web context, index the merged
// corpus and answer questions against it with full source tracking.
package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"jamesfarrell.me/youtube-rag/internal/corpus"
	"jamesfarrell.me/youtube-rag/internal/embeddings"
	"jamesfarrell.me/youtube-rag/internal/enrich"
	"jamesfarrell.me/youtube-rag/internal/llm"
	"jamesfarrell.me/youtube-rag/internal/search"
	"jamesfarrell.me/youtube-rag/internal/sources"
	"jamesfarrell.me/youtube-rag/internal/transcript"
	"jamesfarrell.me/youtube-rag/internal/video"
)

// TitleResolver resolves a video ID to a display title; implementations
// must fall back to a placeholder rather than fail.
type TitleResolver interface {
	Resolve(ctx context.Context, videoID string) string
}

// Deps are the external capabilities a session is built from. Searcher
// may be nil, which disables enrichment.
type Deps struct {
	Transcripts transcript.Provider
	Titles      TitleResolver
	Searcher    search.Searcher
	Embedder    embeddings.Embedder
	Generator   llm.Generator
}

// Metadata describes one processed video. Immutable after the corpus
// is built.
type Metadata struct {
	Title             string            `json:"title"`
	VideoID           string            `json:"video_id"`
	SourceURL         string            `json:"source_url"`
	Config            enrich.Config     `json:"config"`
	EnrichmentSources []enrich.Strategy `json:"enrichment_sources"`
	ProcessedAt       time.Time         `json:"processed_at"`
}

// Session bundles everything that exists for one processed video. A
// new session for the same video rebuilds ledger and index from
// scratch.
type Session struct {
	Engine   *Engine
	Ledger   *sources.Ledger
	Metadata Metadata
}

// CreateSession runs the full processing pipeline for a video URL.
func CreateSession(ctx context.Context, rawURL string, cfg enrich.Config, deps Deps) (*Session, error) {
	log := logrus.WithField("component", "rag")

	videoID, err := video.ResolveVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	log.WithField("video_id", videoID).Info("processing video")

	ledger := sources.NewLedger()
	acquirer := transcript.NewAcquirer(deps.Transcripts, ledger)
	transcriptText, language, err := acquirer.Acquire(ctx, videoID)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"language": language, "chars": len(transcriptText)}).Info("transcript acquired")

	title := deps.Titles.Resolve(ctx, videoID)

	enricher := enrich.NewEngine(cfg, ledger, deps.Searcher)
	enriched := enricher.Enrich(ctx, title, transcriptText)

	var used []enrich.Strategy
	for _, strategy := range enrich.StrategyOrder() {
		if _, ok := enriched[strategy]; ok {
			ledger.MarkUsed(sources.Type(strategy))
			used = append(used, strategy)
		}
	}

	document := corpus.MergeDocument(transcriptText, enriched)
	chunks := corpus.NewSplitter().Split(document)
	index, err := corpus.BuildIndex(ctx, chunks, deps.Embedder)
	if err != nil {
		return nil, fmt.Errorf("error building corpus index: %w", err)
	}

	metadata := Metadata{
		Title:             title,
		VideoID:           videoID,
		SourceURL:         rawURL,
		Config:            cfg,
		EnrichmentSources: used,
		ProcessedAt:       time.Now(),
	}

	return &Session{
		Engine:   NewEngine(index, ledger, metadata, deps.Generator),
		Ledger:   ledger,
		Metadata: metadata,
	}, nil
}
