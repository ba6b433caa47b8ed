package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/longkey1/mahjong-chat/internal/mahjong"
	"github.com/rs/zerolog"
)

const (
	ProviderName       = "remote"
	DefaultEndpointURL = "http://localhost:8081/mahjong.ai.v1.MahjongAIService/AskMahjongAI"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7
	DefaultReplyQuery  = ".response"
	DefaultErrorQuery  = ".error.message // empty"
)

// maxErrorBodyLength bounds how much of a failed response ends up in errors.
const maxErrorBodyLength = 512

// AskRequest represents the request body sent to the AI endpoint
type AskRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// Config defines the configuration interface for the remote provider
type Config interface {
	GetEndpointURL() string
	GetEndpointToken() string
	GetMaxTokens() int
	GetTemperature() float64
	GetReplyQuery() string
	GetErrorQuery() string
}

// Provider implements the mahjong.Provider interface over one HTTP POST per reply.
// There is no retry and no timeout beyond the caller's context.
type Provider struct {
	config     Config
	client     *http.Client
	replyQuery *gojq.Code
	errorQuery *gojq.Code
	logger     zerolog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.client = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider creates a new remote provider instance.
// It fails if the reply or error query does not compile.
func NewProvider(config Config, opts ...Option) (*Provider, error) {
	replyQuery, err := CompileQuery(config.GetReplyQuery())
	if err != nil {
		return nil, fmt.Errorf("compiling reply query: %w", err)
	}

	var errorQuery *gojq.Code
	if strings.TrimSpace(config.GetErrorQuery()) != "" {
		errorQuery, err = CompileQuery(config.GetErrorQuery())
		if err != nil {
			return nil, fmt.Errorf("compiling error query: %w", err)
		}
	}

	p := &Provider{
		config:     config,
		client:     &http.Client{},
		replyQuery: replyQuery,
		errorQuery: errorQuery,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// CompileQuery parses and compiles a jq expression.
func CompileQuery(src string) (*gojq.Code, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	query, err := gojq.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", src, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", src, err)
	}
	return code, nil
}

// Name implements mahjong.Provider.
func (p *Provider) Name() string {
	return ProviderName
}

// Reply posts the prompt to the endpoint and extracts the reply text.
func (p *Provider) Reply(ctx context.Context, prompt string) (string, error) {
	reqBody := AskRequest{
		Prompt:      prompt,
		MaxTokens:   p.config.GetMaxTokens(),
		Temperature: p.config.GetTemperature(),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.GetEndpointURL(), bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := p.config.GetEndpointToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	p.logger.Debug().
		Str("url", req.URL.String()).
		Int("prompt_length", len(prompt)).
		Int("max_tokens", reqBody.MaxTokens).
		Float64("temperature", reqBody.Temperature).
		Msg("sending request to AI service")

	resp, err := p.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("error sending request: %w", ctxErr)
		}
		return "", fmt.Errorf("%w: error sending request: %v", mahjong.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: error reading response: %v", mahjong.ErrProviderUnavailable, err)
	}

	p.logger.Debug().
		Int("status", resp.StatusCode).
		Int("body_length", len(body)).
		Msg("received response from AI service")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", mahjong.ErrProviderError, resp.StatusCode, truncate(string(body)))
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: error parsing response: %v", mahjong.ErrMalformedResponse, err)
	}

	if p.errorQuery != nil {
		if msg, ok := firstValue(ctx, p.errorQuery, payload); ok && isErrorMessage(msg) {
			return "", fmt.Errorf("%w: %v", mahjong.ErrProviderError, msg)
		}
	}

	value, ok := firstValue(ctx, p.replyQuery, payload)
	if !ok {
		return "", fmt.Errorf("%w: no reply in response: %s", mahjong.ErrMalformedResponse, truncate(string(body)))
	}
	if qerr, isErr := value.(error); isErr {
		return "", fmt.Errorf("%w: evaluating reply query: %v", mahjong.ErrMalformedResponse, qerr)
	}
	text, isString := value.(string)
	if !isString {
		return "", fmt.Errorf("%w: reply is %T, not a string", mahjong.ErrMalformedResponse, value)
	}

	return text, nil
}

// firstValue returns the first output of code run against payload.
// Query evaluation errors come back as the value itself.
func firstValue(ctx context.Context, code *gojq.Code, payload any) (any, bool) {
	iter := code.RunWithContext(ctx, payload)
	return iter.Next()
}

// isErrorMessage reports whether an error query result signals a failure.
// Null, false, empty strings and evaluation errors do not.
func isErrorMessage(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case error:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		return true
	}
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrorBodyLength {
		return s[:maxErrorBodyLength] + "..."
	}
	return s
}
