package api

import (
	"jamesfarrell.me/youtube-rag/internal/rag"
	"jamesfarrell.me/youtube-rag/internal/sources"
)

type ProcessRequest struct {
	URL    string         `json:"url"`
	Preset string         `json:"preset,omitempty"`
	Config *ConfigRequest `json:"config,omitempty"`
}

// ConfigRequest is a custom enrichment configuration; used when no
// preset is named.
type ConfigRequest struct {
	Enabled        bool     `json:"enabled"`
	Strategies     []string `json:"strategies"`
	MaxResultChars int      `json:"maxResultChars"`
	TrackSources   bool     `json:"trackSources"`
}

type ProcessResponse struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	VideoID           string   `json:"videoId"`
	EnrichmentSources []string `json:"enrichmentSources"`
	TotalSources      int      `json:"totalSources"`
}

type AskRequest struct {
	Question    string `json:"question"`
	WithSources bool   `json:"withSources"`
}

type AskResponse struct {
	Answer   string           `json:"answer"`
	Sources  *sources.Summary `json:"sourcesSummary,omitempty"`
	Metadata *rag.Metadata    `json:"metadata,omitempty"`
}

type QARequest struct {
	Count int `json:"count"`
}

type ExportRequest struct {
	Path string `json:"path"`
}

type ExportResponse struct {
	Path string `json:"path"`
}

type ErrorResponse struct {
	Error    string `json:"error"`
	Guidance string `json:"guidance,omitempty"`
}
