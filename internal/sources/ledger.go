// Package sources tracks every piece of content that feeds a video
// session, plus the history of questions answered against it.
package sources

import (
	"sync"
	"time"
)

// Type identifies where a tracked source came from.
type Type string

const (
	Transcript  Type = "transcript"
	Background  Type = "background"
	Discussions Type = "discussions"
	Academic    Type = "academic"
	Current     Type = "current"
)

const previewLimit = 200

// Record is one tracked source. ContentPreview holds at most 200
// characters of the original content.
type Record struct {
	SourceType     Type      `json:"source_type"`
	ContentPreview string    `json:"content_preview"`
	RelevanceScore float64   `json:"relevance_score"`
	UsedInContext  bool      `json:"used_in_context"`
	CreatedAt      time.Time `json:"created_at"`
}

// QueryLogEntry records one answered question.
type QueryLogEntry struct {
	Timestamp     time.Time `json:"timestamp"`
	Question      string    `json:"question"`
	AnswerPreview string    `json:"answer_preview"`
	SourcesUsed   []Type    `json:"sources_used"`
}

// Summary aggregates the ledger's records.
type Summary struct {
	TotalSources  int          `json:"total_sources"`
	UsedSources   int          `json:"used_sources"`
	SourcesByType map[Type]int `json:"sources_by_type"`
	Sources       []Record     `json:"sources"`
}

// Ledger is an append-only record of sources and queries for one video
// session. Entries are never removed or reordered. Appends are guarded
// by a mutex so enrichment strategies could run concurrently.
type Ledger struct {
	mu      sync.Mutex
	records []Record
	queries []QueryLogEntry
	now     func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// Add appends a record for the given source. Content longer than 200
// characters is truncated with an ellipsis marker.
func (l *Ledger) Add(sourceType Type, content string, relevance float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, Record{
		SourceType:     sourceType,
		ContentPreview: preview(content),
		RelevanceScore: relevance,
		CreatedAt:      l.now(),
	})
}

// MarkUsed flips UsedInContext on every existing record of the given
// type. Records added later are unaffected until the next call.
func (l *Ledger) MarkUsed(sourceType Type) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].SourceType == sourceType {
			l.records[i].UsedInContext = true
		}
	}
}

// Summary returns aggregate counts plus a copy of every record.
func (l *Ledger) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := Summary{
		TotalSources:  len(l.records),
		SourcesByType: make(map[Type]int),
		Sources:       append([]Record(nil), l.records...),
	}
	for _, r := range l.records {
		summary.SourcesByType[r.SourceType]++
		if r.UsedInContext {
			summary.UsedSources++
		}
	}
	return summary
}

// LogQuery appends a query log entry. The answer is reduced to a
// 200-character preview.
func (l *Ledger) LogQuery(question, answer string, sourcesUsed []Type) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.queries = append(l.queries, QueryLogEntry{
		Timestamp:     l.now(),
		Question:      question,
		AnswerPreview: preview(answer),
		SourcesUsed:   append([]Type(nil), sourcesUsed...),
	})
}

// QueryHistory returns a copy of all logged queries in order.
func (l *Ledger) QueryHistory() []QueryLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]QueryLogEntry(nil), l.queries...)
}

func preview(content string) string {
	if len(content) > previewLimit {
		return content[:previewLimit] + "..."
	}
	return content
}
