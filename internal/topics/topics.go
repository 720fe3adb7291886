// Package topics derives salient keywords from transcript text using
// word frequency over a stopword-filtered vocabulary.
package topics

import (
	"regexp"
	"sort"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z]{4,}`)

// stopwords holds common English function and pronoun words that carry
// no topical signal.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "were", "been",
		"be", "have", "has", "had", "do", "does", "did", "will", "would",
		"could", "should", "may", "might", "can", "this", "that", "these",
		"those", "i", "you", "he", "she", "it", "we", "they", "what", "which",
		"who", "when", "where", "why", "how", "so", "than", "too", "very",
		"just", "now", "get", "got", "like", "know", "think", "going", "want",
	} {
		stopwords[w] = struct{}{}
	}
}

// Extract returns up to maxTopics keywords ordered by descending
// frequency. Ties keep first-encountered order, so the result is
// deterministic for a given input.
func Extract(text string, maxTopics int) []string {
	if maxTopics <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string

	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, skip := stopwords[word]; skip {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	// Stable sort preserves encounter order between equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxTopics {
		order = order[:maxTopics]
	}
	return order
}
