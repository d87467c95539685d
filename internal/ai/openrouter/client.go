package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/campus-match/internal/ai"
	"github.com/spigell/campus-match/internal/logger"
	"github.com/spigell/campus-match/internal/ratelimit"
)

const (
	providerName   = "openrouter"
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "qwen/qwen2.5-32b-instruct"
	defaultTimeout = 30 * time.Second
	maxLogLength   = 200
	maxErrorBody   = 4096
	temperature    = 0.2
)

// Client is an ai.Completer for OpenAI-compatible chat completion endpoints.
type Client struct {
	apiKey    string
	baseURL   string
	modelName string
	appTitle  string
	http      *http.Client
	limiter   *ratelimit.Limiter
	logger    *zap.Logger
	maxLogLen int
}

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	// AppTitle is sent as X-Title for OpenRouter attribution.
	AppTitle     string
	HTTPClient   *http.Client
	Limiter      *ratelimit.Limiter
	Logger       *zap.Logger
	MaxLogLength int
}

// New creates a client. An empty API key yields an unconfigured client.
func New(opts Options) *Client {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	maxLog := opts.MaxLogLength
	if maxLog <= 0 {
		maxLog = maxLogLength
	}

	c := &Client{
		apiKey:    strings.TrimSpace(opts.APIKey),
		baseURL:   baseURL,
		modelName: model,
		appTitle:  opts.AppTitle,
		http:      httpClient,
		limiter:   opts.Limiter,
		logger:    logger.WithCommonFields(opts.Logger, providerName, model),
		maxLogLen: maxLog,
	}
	if c.apiKey == "" {
		c.logger.Info("openrouter api key is not configured; ai path disabled")
	}
	return c
}

func (c *Client) Configured() bool { return c != nil && c.apiKey != "" }

func (c *Client) Provider() string { return providerName }

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete posts a single user message and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, req ai.Request) (string, error) {
	if !c.Configured() {
		return "", ai.ErrNotConfigured
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.modelName,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   req.MaxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	previousCall := c.limiter.LastCallAt()
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &ai.UpstreamError{Provider: providerName, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.appTitle != "" {
		httpReq.Header.Set("X-Title", c.appTitle)
	}

	c.logger.Debug("openrouter chat completion request",
		zap.Time("previous_call_at", previousCall),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.Int("max_output_tokens", req.MaxOutputTokens),
		zap.Duration("timeout", timeout),
		zap.String("prompt_preview", logger.Truncate(prompt, c.maxLogLen)),
	)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &ai.UpstreamError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &ai.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(snippet))),
		}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &ai.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode envelope: %w", err)}
	}

	var output string
	if len(out.Choices) > 0 {
		output = strings.TrimSpace(out.Choices[0].Message.Content)
	}
	if output == "" {
		return "", &ai.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode, Err: ai.ErrEmptyContent}
	}

	c.logger.Debug("openrouter chat completion response",
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", logger.Truncate(output, c.maxLogLen)),
	)

	return output, nil
}
