package ai

import (
	"context"
	"time"
)

// Request describes a single text-completion call.
type Request struct {
	Prompt          string
	MaxOutputTokens int
	// Timeout bounds the outbound call. Zero means the provider default.
	Timeout time.Duration
}

// Completer is a stateless text-completion backend. Complete returns the raw
// generated text; callers parse and validate it.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	// Configured reports whether a credential is available. An unconfigured
	// completer fails every call with ErrNotConfigured.
	Configured() bool
	Provider() string
	Model() string
}
