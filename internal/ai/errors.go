package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when no API credential is available.
	ErrNotConfigured = errors.New("ai credential is not configured")
	// ErrEmptyContent is returned when the provider answered without text.
	ErrEmptyContent = errors.New("ai provider returned empty content")
	// ErrDeadlineExceeded is returned when a completion loses the race against
	// its hard deadline.
	ErrDeadlineExceeded = errors.New("ai completion deadline exceeded")
)

// UpstreamError wraps transport failures, non-success statuses and empty
// responses from the provider.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s upstream error (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s upstream error: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedResponseError reports content that is not parseable JSON or that
// fails shape validation.
type MalformedResponseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed ai response: %s: %v", e.Reason, e.Err)
	}
	return "malformed ai response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Malformed builds a MalformedResponseError.
func Malformed(reason, raw string, err error) error {
	return &MalformedResponseError{Reason: reason, Raw: raw, Err: err}
}

// OutcomeKind tags the result of an AI attempt.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeNotConfigured
	OutcomeUpstream
	OutcomeMalformed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeNotConfigured:
		return "not_configured"
	case OutcomeUpstream:
		return "upstream_error"
	case OutcomeMalformed:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by the AI path to its outcome kind.
// Unknown errors are treated as upstream failures.
func Classify(err error) OutcomeKind {
	if err == nil {
		return OutcomeOK
	}

	if errors.Is(err, ErrNotConfigured) {
		return OutcomeNotConfigured
	}

	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return OutcomeMalformed
	}

	return OutcomeUpstream
}
