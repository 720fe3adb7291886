package rag

import (
	"fmt"
	"strings"

	"jamesfarrell.me/youtube-rag/internal/enrich"
)

const answerTemplate = `You are an expert assistant analyzing YouTube video content.

SOURCES IN CONTEXT:
1. VIDEO TRANSCRIPT (primary source - most reliable)
2. WEB CONTEXT (background, discussions, research - supporting info)%s

INSTRUCTIONS:
- Answer based on the context below
- Prioritize transcript information
- Use web context for additional background
- If info not in context, state clearly
- Cite source type when relevant (e.g., "According to the transcript..." or "Web sources suggest...")

CONTEXT:
%s

QUESTION:
%s

ANSWER:`

func answerPrompt(contextText, question string, enrichmentSources []enrich.Strategy) string {
	return fmt.Sprintf(answerTemplate, enrichmentNote(enrichmentSources), contextText, question)
}

// enrichmentNote names the strategies present in the corpus, so the
// backend knows the context is not transcript-only.
func enrichmentNote(strategies []enrich.Strategy) string {
	if len(strategies) == 0 {
		return ""
	}
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = string(s)
	}
	return fmt.Sprintf("\n\nNOTE: Context includes video transcript + web enrichment (%s).", strings.Join(names, ", "))
}

const summaryTemplate = `You are summarizing a YouTube video from its transcript and supporting web context.

%s

CONTEXT:
%s

SUMMARY:`

func summaryPrompt(contextText, instruction string) string {
	return fmt.Sprintf(summaryTemplate, instruction, contextText)
}

const autoQATemplate = `Based on the video content below, write exactly %d question and answer pairs that a viewer might ask. Ground every answer in the content.

Format each pair exactly as:
Q: <question>
A: <answer>

CONTENT:
%s`

func autoQAPrompt(contextText string, n int) string {
	return fmt.Sprintf(autoQATemplate, n, contextText)
}
