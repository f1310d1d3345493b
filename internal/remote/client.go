// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package remote sends prompts to a text-generation service and absorbs
// transient rate-limit failures with bounded exponential backoff.
package remote

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

const (
	DefaultMaxRetries     = 5
	DefaultInitialBackoff = 10 * time.Second
	DefaultMaxBackoff     = 120 * time.Second
	DefaultMaxJitter      = 3 * time.Second
)

// Generator is the single operation the client needs from an inference
// endpoint. Implementations should return *Error so failures classify
// without string matching. A blocked response is ("", nil).
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Policy bounds the retry loop of a Client.
type Policy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxJitter      time.Duration
}

// DefaultPolicy returns 5 attempts with a 10s initial backoff capped at 120s
// plus up to 3s of jitter.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:     DefaultMaxRetries,
		InitialBackoff: DefaultInitialBackoff,
		MaxBackoff:     DefaultMaxBackoff,
		MaxJitter:      DefaultMaxJitter,
	}
}

// PolicyFromConfig builds a Policy from cfg, falling back to the defaults for
// zero fields.
func PolicyFromConfig(cfg types.RetryConfig) Policy {
	return Policy{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		MaxJitter:      cfg.MaxJitter,
	}.withDefaults()
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.MaxRetries <= 0 {
		p.MaxRetries = d.MaxRetries
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = d.InitialBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = d.MaxBackoff
	}
	// A negative jitter disables it; zero means the default.
	switch {
	case p.MaxJitter < 0:
		p.MaxJitter = 0
	case p.MaxJitter == 0:
		p.MaxJitter = d.MaxJitter
	}
	return p
}

// Backoff returns min(InitialBackoff * 2^attempt, MaxBackoff), without jitter.
func (p Policy) Backoff(attempt int) time.Duration {
	d := p.InitialBackoff
	for i := 0; i < attempt && d < p.MaxBackoff; i++ {
		d *= 2
	}
	if d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

// Client calls a Generator with the configured model and retry policy.
// The zero value is not usable; construct with NewClient.
type Client struct {
	gen    Generator
	model  string
	policy Policy
	logger *zap.Logger

	// sleep and jitter are replaced in tests to avoid real waits.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() float64
}

// NewClient returns a Client for model. Zero fields of policy take their
// defaults; a nil logger discards output.
func NewClient(gen Generator, model string, policy Policy, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		gen:    gen,
		model:  model,
		policy: policy.withDefaults(),
		logger: logger,
		sleep:  sleepContext,
		jitter: rand.Float64,
	}
}

// Model returns the model identifier sent with every call.
func (c *Client) Model() string { return c.model }

// Call sends prompt and returns the trimmed response text. It never fails:
// the empty string means there is no usable answer and the caller should
// skip the item. Only rate-limit failures are retried; blocked responses and
// every other failure end the call at once.
func (c *Client) Call(ctx context.Context, prompt string) string {
	limit := c.policy.MaxRetries
	c.logger.Debug("sending prompt", zap.String("model", c.model), zap.Int("max_attempts", limit))

	for attempt := 0; attempt < limit; attempt++ {
		n := attempt + 1
		c.logger.Debug("calling model", zap.Int("attempt", n), zap.Int("max_attempts", limit))

		text, err := c.gen.Generate(ctx, c.model, prompt)
		if err == nil {
			text = strings.TrimSpace(text)
			if text == "" {
				c.logger.Warn("response contains no text, it may have been blocked", zap.Int("attempt", n))
			}
			return text
		}

		kind := Classify(err)
		if kind != KindRateLimited {
			c.logger.Error("non-recoverable error from model",
				zap.Int("attempt", n), zap.Stringer("kind", kind), zap.Error(err))
			return ""
		}

		if n >= limit {
			c.logger.Error("giving up after persistent rate limiting", zap.Int("attempts", n), zap.Error(err))
			return ""
		}

		wait := c.policy.Backoff(attempt) + c.jitterDuration()
		c.logger.Warn("rate limited, backing off",
			zap.Int("attempt", n), zap.Int("max_attempts", limit), zap.Duration("wait", wait))

		if err := c.sleep(ctx, wait); err != nil {
			c.logger.Warn("backoff interrupted", zap.Error(err))
			return ""
		}
	}

	c.logger.Error("no response after all attempts", zap.Int("attempts", limit))
	return ""
}

func (c *Client) jitterDuration() time.Duration {
	if c.policy.MaxJitter <= 0 {
		return 0
	}
	return time.Duration(c.jitter() * float64(c.policy.MaxJitter))
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
