package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent returns a text reply with any surrounding code fence removed
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON returns a reply holding one JSON value
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the model name used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// ResponseError is returned when the provider answers without a usable reply:
// a blocked prompt, a reply stopped by a safety filter or cut at the token limit.
type ResponseError struct {
	Model  string
	Reason string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("model %s returned no usable reply: %s", e.Model, e.Reason)
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model configuration: %w", err)
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, config: config}, nil
}

// generate sends one prompt to the model of tier. jsonReply asks for application/json.
func (c *GeminiClient) generate(ctx context.Context, prompt string, tier ModelTier, jsonReply bool) (string, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(name)
	model.SetTemperature(positiveOr(c.config.Temperature, DefaultTemperature))
	model.SetMaxOutputTokens(positiveOr(c.config.MaxOutputTokens, DefaultMaxOutputTokens))
	if jsonReply {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with %s: %w", name, err)
	}
	return replyText(name, resp)
}

// GenerateContent generates text content using the specified model tier.
// A surrounding markdown code fence is removed from the reply.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, prompt, tier, false)
	if err != nil {
		return "", err
	}
	return CleanCodeFence(text), nil
}

// GenerateJSON generates JSON content using the specified model tier
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, prompt, tier, true)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// replyText joins the text parts of the first candidate. A document cut at the
// token limit is refused rather than returned half-written.
func replyText(model string, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", &ResponseError{Model: model, Reason: "empty response"}
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != genai.BlockReasonUnspecified {
		return "", &ResponseError{Model: model, Reason: "prompt blocked (" + fb.BlockReason.String() + ")"}
	}
	if len(resp.Candidates) == 0 {
		return "", &ResponseError{Model: model, Reason: "no candidates"}
	}

	candidate := resp.Candidates[0]
	switch candidate.FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonRecitation:
		return "", &ResponseError{Model: model, Reason: "stopped by " + candidate.FinishReason.String()}
	case genai.FinishReasonMaxTokens:
		return "", &ResponseError{Model: model, Reason: "reply exceeded the output token limit"}
	}
	if candidate.Content == nil {
		return "", &ResponseError{Model: model, Reason: "no content"}
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", &ResponseError{Model: model, Reason: "no text in reply"}
	}
	return sb.String(), nil
}

func positiveOr[T float32 | int32](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}
