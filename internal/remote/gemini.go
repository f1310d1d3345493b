// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned when a generator is constructed without a key.
var ErrMissingAPIKey = errors.New("Gemini API key is required")

const statusResourceExhausted = "RESOURCE_EXHAUSTED"

// GeminiGenerator generates text with Google's Gemini API.
type GeminiGenerator struct {
	client *genai.Client
}

// GeminiOption adjusts the genai client configuration.
type GeminiOption func(*genai.ClientConfig)

// WithBaseURL points the client at a different endpoint. Tests use it to
// talk to an httptest server.
func WithBaseURL(url string) GeminiOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) GeminiOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPClient = c
	}
}

// NewGeminiGenerator creates a Gemini client authenticated with apiKey.
func NewGeminiGenerator(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

// Generate sends prompt to model and returns the response text. A response
// without text (for example a blocked prompt) yields ("", nil).
func (g *GeminiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", wrapGenAIError(err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

// wrapGenAIError attaches a Kind to errors from the genai SDK. Any error
// whose text mentions a rate limit is retryable, whatever its status code.
func wrapGenAIError(err error) error {
	if hasRateLimitMarker(err) {
		return &Error{Kind: KindRateLimited, Err: err}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: kindForAPIError(apiErr.Code, apiErr.Status), Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &Error{Kind: kindForAPIError(apiErrPtr.Code, apiErrPtr.Status), Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &Error{Kind: KindTransport, Err: err}
	}

	return &Error{Kind: Classify(err), Err: err}
}

func kindForAPIError(code int, status string) Kind {
	if code == http.StatusTooManyRequests || status == statusResourceExhausted {
		return KindRateLimited
	}
	return KindOther
}
