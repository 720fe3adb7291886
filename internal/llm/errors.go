package llm

import (
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrorKind classifies a generation backend failure.
type ErrorKind int

const (
	// Unavailable covers every backend failure that is not a rate limit.
	Unavailable ErrorKind = iota
	// RateLimited means the backend rejected the call for quota reasons;
	// callers should back off before retrying.
	RateLimited
)

// BackendError wraps a failed generation call. The core never retries;
// retry policy belongs to the caller.
type BackendError struct {
	Kind  ErrorKind
	Model string
	Err   error
}

func (e *BackendError) Error() string {
	if e.Kind == RateLimited {
		return fmt.Sprintf("generation backend rate limited (model %s): %v", e.Model, e.Err)
	}
	return fmt.Sprintf("generation backend unavailable (model %s): %v", e.Model, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Guidance returns a human-readable hint for the caller.
func (e *BackendError) Guidance() string {
	if e.Kind == RateLimited {
		return "rate limit hit; wait a minute before retrying"
	}
	return "backend unavailable; check API key and service status"
}

// NoModelAvailableError means every candidate model failed to
// initialize.
type NoModelAvailableError struct {
	Attempts []string
}

func (e *NoModelAvailableError) Error() string {
	return "no generation model available: " + strings.Join(e.Attempts, "; ")
}

// wrapBackendError classifies an API failure by its HTTP status.
func wrapBackendError(model string, err error) *BackendError {
	kind := Unavailable

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		kind = RateLimited
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == 429 {
		kind = RateLimited
	}

	return &BackendError{Kind: kind, Model: model, Err: err}
}
