package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a provider from configuration. An empty provider name
// means narration is disabled and returns (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config, "openai")

	case "ollama":
		// Ollama exposes an OpenAI-compatible endpoint.
		if config.BaseURL == "" {
			config.BaseURL = "http://localhost:11434/v1"
		}
		return NewOpenAIProvider(config, "ollama")

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}
