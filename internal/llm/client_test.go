package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), DefaultConfig().withProvider("openai"), "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: ProviderGemini}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model configuration")
}

func (c *Config) withProvider(p Provider) *Config {
	cfg := c.clone()
	cfg.Provider = p
	return cfg
}

func textCandidate(reason genai.FinishReason, parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: reason, Content: &genai.Content{Parts: parts}}},
	}
}

func TestReplyText(t *testing.T) {
	text, err := replyText("m", textCandidate(genai.FinishReasonStop, genai.Text("# Jane"), genai.Text(" Doe")))
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe", text)
}

func TestReplyText_Unusable(t *testing.T) {
	tests := []struct {
		name   string
		resp   *genai.GenerateContentResponse
		reason string
	}{
		{"nil response", nil, "empty response"},
		{"no candidates", &genai.GenerateContentResponse{}, "no candidates"},
		{"blocked prompt", &genai.GenerateContentResponse{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}, "prompt blocked"},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, "no content"},
		{"safety stop", textCandidate(genai.FinishReasonSafety, genai.Text("partial")), "stopped by"},
		{"truncated", textCandidate(genai.FinishReasonMaxTokens, genai.Text("# Jane\n\n## Exper")), "token limit"},
		{"no text parts", textCandidate(genai.FinishReasonStop, genai.Blob{MIMEType: "image/png"}), "no text"},
		{"blank text", textCandidate(genai.FinishReasonStop, genai.Text("  \n")), "no text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := replyText("gemini-test", tt.resp)
			var respErr *ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.Equal(t, "gemini-test", respErr.Model)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestPositiveOr(t *testing.T) {
	assert.Equal(t, float32(0.3), positiveOr(float32(0.3), DefaultTemperature))
	assert.Equal(t, DefaultTemperature, positiveOr(float32(0), DefaultTemperature))
	assert.Equal(t, DefaultMaxOutputTokens, positiveOr(int32(-5), DefaultMaxOutputTokens))
}
