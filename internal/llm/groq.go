// Package llm wraps the chat completion backend behind a plain
// Generator contract.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// candidateModels are tried in priority order until one responds.
var candidateModels = []string{
	"llama-3.3-70b-versatile",
	"llama3-70b-8192",
	"mixtral-8x7b-32768",
	"gemma2-9b-it",
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// completionAPI is the slice of the OpenAI-compatible client the
// backend needs; narrowed for tests.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GroqClient generates text through Groq's OpenAI-compatible API,
// pinned to the first candidate model that answers a probe.
type GroqClient struct {
	api   completionAPI
	model string
	log   *logrus.Entry
}

// Options configures the Groq client. BaseURL defaults to the public
// Groq endpoint.
type Options struct {
	APIKey  string
	BaseURL string
}

// NewGroqClient selects a model by probing the candidates in priority
// order. Returns NoModelAvailableError when none respond.
func NewGroqClient(ctx context.Context, opts Options) (*GroqClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is not set")
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = defaultGroqBaseURL
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return newGroqClient(ctx, openai.NewClientWithConfig(cfg))
}

func newGroqClient(ctx context.Context, api completionAPI) (*GroqClient, error) {
	log := logrus.WithField("component", "llm")

	var attempts []string
	for _, model := range candidateModels {
		if err := probe(ctx, api, model); err != nil {
			log.Warnf("model %s not available: %v", model, err)
			attempts = append(attempts, fmt.Sprintf("%s: %v", model, err))
			continue
		}
		log.WithField("model", model).Info("generation model selected")
		return &GroqClient{api: api, model: model, log: log}, nil
	}
	return nil, &NoModelAvailableError{Attempts: attempts}
}

// probe issues a one-token request to verify the model responds.
func probe(ctx context.Context, api completionAPI, model string) error {
	_, err := api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: 1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "ping"},
		},
	})
	return err
}

// Model reports the selected model identifier.
func (c *GroqClient) Model() string { return c.model }

func (c *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", wrapBackendError(c.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", &BackendError{Kind: Unavailable, Model: c.model, Err: fmt.Errorf("backend returned no choices")}
	}
	return resp.Choices[0].Message.Content, nil
}
