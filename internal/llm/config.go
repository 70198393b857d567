// Package llm provides the language-model client abstraction and retry policy
// shared by the extraction pipeline and the interview API.
package llm

import "os"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short answers
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction and generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model configuration for the application
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model configuration. The standard
// tier can be overridden with GEMINI_MODEL.
func DefaultConfig() *Config {
	cfg := &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Models[TierStandard] = model
	}
	return cfg
}

// GetModel returns the model name for a given tier, falling back through
// standard and lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
