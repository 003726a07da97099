// Package llm wraps the Gemini API behind a small tiered client interface.
package llm

// ModelTier is the capability level requested for a call.
type ModelTier string

const (
	// TierLite serves classification and short structured answers.
	TierLite ModelTier = "lite"
	// TierStandard serves longer structured output.
	TierStandard ModelTier = "standard"
)

// DefaultTemperature keeps role predictions stable across calls.
const DefaultTemperature = 0.1

// Config maps tiers to model names.
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model for tier, falling back to the standard and then
// the lite model. It returns "" when nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok && model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c using model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
