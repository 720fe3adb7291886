// Package search provides the optional web search capability used by
// content enrichment. Absence of a searcher degrades enrichment, it
// never aborts a session.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const serperEndpoint = "https://google.serper.dev/search"

// SearchError wraps a failed web search.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed for %q: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// Searcher runs a web search and returns a flattened text result.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// SerperClient queries the Serper search API. Results are cached with a
// short TTL so repeated strategy runs don't burn quota.
type SerperClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	results    *cache.Cache
	log        *logrus.Entry
}

func NewSerperClient(apiKey string) *SerperClient {
	return &SerperClient{
		apiKey:     apiKey,
		endpoint:   serperEndpoint,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		results:    cache.New(15*time.Minute, 5*time.Minute),
		log:        logrus.WithField("component", "search"),
	}
}

type serperResponse struct {
	AnswerBox struct {
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
	} `json:"answerBox"`
	Organic []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic"`
}

// Search runs one query and flattens the organic results into text.
func (c *SerperClient) Search(ctx context.Context, query string) (string, error) {
	if cached, ok := c.results.Get(query); ok {
		return cached.(string), nil
	}

	payload, err := json.Marshal(map[string]string{"q": query})
	if err != nil {
		return "", &SearchError{Query: query, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &SearchError{Query: query, Err: err}
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &SearchError{Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &SearchError{Query: query, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &SearchError{Query: query, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	var parsed serperResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &SearchError{Query: query, Err: err}
	}

	result := flatten(parsed)
	c.results.Set(query, result, cache.DefaultExpiration)
	c.log.WithFields(logrus.Fields{"query": query, "chars": len(result)}).Debug("search completed")
	return result, nil
}

func flatten(resp serperResponse) string {
	var parts []string
	if resp.AnswerBox.Answer != "" {
		parts = append(parts, resp.AnswerBox.Answer)
	} else if resp.AnswerBox.Snippet != "" {
		parts = append(parts, resp.AnswerBox.Snippet)
	}
	for _, item := range resp.Organic {
		switch {
		case item.Title != "" && item.Snippet != "":
			parts = append(parts, item.Title+": "+item.Snippet)
		case item.Snippet != "":
			parts = append(parts, item.Snippet)
		case item.Title != "":
			parts = append(parts, item.Title)
		}
	}
	return strings.Join(parts, "\n")
}
