package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/campus-match/internal/ai"
	"github.com/spigell/campus-match/internal/logger"
	"github.com/spigell/campus-match/internal/ratelimit"
)

const (
	providerName   = "gemini"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
	maxLogLength   = 200
)

// contentModel is the subset of *genai.Models used by the client.
type contentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps the Google GenAI SDK as an ai.Completer.
type Client struct {
	models    contentModel
	modelName string
	limiter   *ratelimit.Limiter
	logger    *zap.Logger
	maxLogLen int
}

// Options configures a Client.
type Options struct {
	APIKey       string
	Model        string
	Limiter      *ratelimit.Limiter
	Logger       *zap.Logger
	MaxLogLength int
}

// New creates a Gemini completer. An empty API key yields an unconfigured
// client whose calls fail with ai.ErrNotConfigured.
func New(ctx context.Context, opts Options) (*Client, error) {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	maxLog := opts.MaxLogLength
	if maxLog <= 0 {
		maxLog = maxLogLength
	}

	c := &Client{
		modelName: model,
		limiter:   opts.Limiter,
		logger:    logger.WithCommonFields(opts.Logger, providerName, model),
		maxLogLen: maxLog,
	}

	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		c.logger.Info("gemini api key is not configured; ai path disabled")
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c.models = client.Models
	return c, nil
}

func (c *Client) Configured() bool {
	return c != nil && c.models != nil
}

func (c *Client) Provider() string { return providerName }

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}

// Complete issues exactly one generation request and returns the text of the
// first candidate.
func (c *Client) Complete(ctx context.Context, req ai.Request) (string, error) {
	if !c.Configured() {
		return "", ai.ErrNotConfigured
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
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

	config := &genai.GenerateContentConfig{}
	if req.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxOutputTokens)
	}

	c.logger.Debug("gemini generate content request",
		zap.Time("previous_call_at", previousCall),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.Int("max_output_tokens", req.MaxOutputTokens),
		zap.Duration("timeout", timeout),
		zap.String("prompt_preview", logger.Truncate(prompt, c.maxLogLen)),
	)

	start := time.Now()
	resp, err := c.models.GenerateContent(callCtx, c.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", c.upstreamError(err)
	}

	output := firstCandidateText(resp)
	if output == "" {
		return "", &ai.UpstreamError{Provider: providerName, Err: ai.ErrEmptyContent}
	}

	c.logger.Debug("gemini generate content response",
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", logger.Truncate(output, c.maxLogLen)),
	)

	return output, nil
}

func (c *Client) upstreamError(err error) error {
	upstream := &ai.UpstreamError{Provider: providerName, Err: err}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		upstream.StatusCode = apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		upstream.StatusCode = apiErrPtr.Code
	}

	return upstream
}

// firstCandidateText joins the text parts of the first candidate that has any.
func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}

		var builder strings.Builder
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}

		if output := strings.TrimSpace(builder.String()); output != "" {
			return output
		}
	}

	return ""
}
