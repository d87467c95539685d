package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"matchScore": 80}`,
			want:  `{"matchScore": 80}`,
		},
		{
			name:  "surrounding prose",
			input: "Here is the analysis:\n{\"a\": 1}\nLet me know if you need more.",
			want:  `{"a": 1}`,
		},
		{
			name:  "code fence",
			input: "```json\n{\"a\": {\"b\": 2}}\n```",
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "braces inside strings",
			input: `note {"explanation": "uses {curly} and \"quoted }\" text", "x": 1} trailing {"y": 2}`,
			want:  `{"explanation": "uses {curly} and \"quoted }\" text", "x": 1}`,
		},
		{
			name:  "unbalanced first candidate",
			input: `{ broken {"ok": true}`,
			want:  `{"ok": true}`,
		},
		{
			name:    "no object",
			input:   "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExtractJSONObject(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if Classify(err) != OutcomeMalformed {
					t.Fatalf("expected malformed classification, got %s", Classify(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDecodeObjectRejectsInvalidJSON(t *testing.T) {
	_, err := DecodeObject(`{"matchScore": 80,}`)
	if err == nil {
		t.Fatal("expected decode error")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T", err)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want OutcomeKind
	}{
		{name: "nil", err: nil, want: OutcomeOK},
		{name: "not configured", err: fmt.Errorf("call: %w", ErrNotConfigured), want: OutcomeNotConfigured},
		{name: "upstream", err: &UpstreamError{Provider: "gemini", StatusCode: 503, Err: errors.New("unavailable")}, want: OutcomeUpstream},
		{name: "malformed", err: Malformed("shape", "{}", nil), want: OutcomeMalformed},
		{name: "deadline", err: context.DeadlineExceeded, want: OutcomeUpstream},
		{name: "unknown", err: errors.New("boom"), want: OutcomeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.err); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCoerceHelpers(t *testing.T) {
	if got := CoerceFloat("85"); got != 85 {
		t.Fatalf("expected 85, got %v", got)
	}
	if got := CoerceFloat(" 72% "); got != 72 {
		t.Fatalf("expected 72, got %v", got)
	}
	if !math.IsNaN(CoerceFloat("high")) {
		t.Fatalf("expected NaN for non-numeric string")
	}
	if !math.IsNaN(CoerceFloat(nil)) {
		t.Fatalf("expected NaN for nil")
	}

	if got := CoerceString("  hi "); got != "hi" {
		t.Fatalf("unexpected string: %q", got)
	}
	if got := CoerceString(12.0); got != "12" {
		t.Fatalf("unexpected number string: %q", got)
	}

	list := CoerceStrings([]any{" Go ", "", 3.0, nil})
	if len(list) != 2 || list[0] != "Go" || list[1] != "3" {
		t.Fatalf("unexpected list: %#v", list)
	}
	if got := CoerceStrings(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}
