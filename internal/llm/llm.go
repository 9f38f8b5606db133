package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for resume transformations.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a single prompt/response exchange.
type Request struct {
	// Name identifies the catalog prompt, used for logs and metrics.
	Name   string
	System string
	Prompt string
	// JSON asks the provider for a JSON object response when it supports it.
	JSON        bool
	Temperature *float64
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}

// Float returns a pointer to v, for Request.Temperature.
func Float(v float64) *float64 {
	return &v
}
