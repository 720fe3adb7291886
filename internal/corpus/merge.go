// Package corpus merges the transcript and enrichment blocks into one
// annotated document, splits it into overlapping chunks and builds an
// in-memory vector index over them.
package corpus

import (
	"fmt"
	"strings"

	"jamesfarrell.me/youtube-rag/internal/enrich"
)

// MergeDocument assembles the annotated corpus document: the transcript
// first, then one labeled section per enrichment strategy, in the fixed
// strategy order.
func MergeDocument(transcript string, enriched map[enrich.Strategy]string) string {
	var b strings.Builder
	b.WriteString("=== VIDEO TRANSCRIPT ===\n")
	b.WriteString(transcript)

	for _, strategy := range enrich.StrategyOrder() {
		content, ok := enriched[strategy]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n\n=== WEB CONTEXT: %s ===\n%s", strings.ToUpper(string(strategy)), content)
	}
	return b.String()
}
