// Package llm provides the generative-AI client used by the AI tools, with model
// tiers and generation settings kept in one Config.
package llm

import "fmt"

// ModelTier picks a model by how much work a tool asks of it
type ModelTier string

const (
	// TierLite is for translation
	TierLite ModelTier = "lite"
	// TierStandard is for rewriting and job analysis
	TierStandard ModelTier = "standard"
	// TierAdvanced is for building a whole document from a brief
	TierAdvanced ModelTier = "advanced"
)

// Tiers lists every tier, cheapest first
var Tiers = []ModelTier{TierLite, TierStandard, TierAdvanced}

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Generation defaults
const (
	DefaultTemperature     float32 = 0.7
	DefaultMaxOutputTokens int32   = 2048
	MaxTemperature         float32 = 2
)

// Config holds the model configuration for the application
type Config struct {
	Provider        Provider
	Models          map[ModelTier]string
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.0-flash-lite",
			TierStandard: "gemini-2.0-flash-001",
			TierAdvanced: "gemini-2.5-flash",
		},
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// GetModel returns the model for tier. A tier without a model falls back to the
// standard model, then the lite one; "" means nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model := c.Models[t]; model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy with model assigned to tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	cfg := c.clone()
	cfg.Models[tier] = model
	return cfg
}

// WithModels returns a copy that uses model for every tier
func (c *Config) WithModels(model string) *Config {
	cfg := c.clone()
	for _, tier := range Tiers {
		cfg.Models[tier] = model
	}
	return cfg
}

// WithGeneration returns a copy with the given sampling settings.
// Non-positive values keep the current setting.
func (c *Config) WithGeneration(temperature float32, maxOutputTokens int32) *Config {
	cfg := c.clone()
	if temperature > 0 {
		cfg.Temperature = temperature
	}
	if maxOutputTokens > 0 {
		cfg.MaxOutputTokens = maxOutputTokens
	}
	return cfg
}

// Validate reports settings the provider would reject
func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > MaxTemperature {
		return fmt.Errorf("temperature %.2f out of range [0, %.0f]", c.Temperature, MaxTemperature)
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("max output tokens must not be negative, got %d", c.MaxOutputTokens)
	}
	for _, tier := range Tiers {
		if c.GetModel(tier) == "" {
			return fmt.Errorf("no model configured for tier %s", tier)
		}
	}
	return nil
}

func (c *Config) clone() *Config {
	cfg := *c
	cfg.Models = make(map[ModelTier]string, len(c.Models))
	for k, v := range c.Models {
		cfg.Models[k] = v
	}
	return &cfg
}
