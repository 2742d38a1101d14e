package infrastructure

import (
	"context"
	"fmt"
)

// CompletionRequest is a single rendered prompt sent to a text model.
type CompletionRequest struct {
	Flow        string  // flow name, for logs and offline providers
	Input       string  // raw flow input the prompt was rendered from
	Prompt      string  // rendered prompt
	Model       string  // overrides the client's default model when set
	Temperature float64 // zero leaves the provider default
	MaxTokens   int     // zero leaves the provider default
	JSONMode    bool    // ask the provider for a JSON object
}

// AIResponse represents the response from an AI service
type AIResponse struct {
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// AIClient defines a generic interface for hosted text-generation services
type AIClient interface {
	// Generate sends one rendered prompt and returns the model's text.
	Generate(ctx context.Context, req CompletionRequest) (*AIResponse, error)

	// Close closes the client and cleans up resources
	Close() error
}

// AIConfig holds configuration for AI clients
type AIConfig struct {
	Provider string `json:"provider"` // "openai", "openai-sdk", "stub"
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
	BaseURL  string `json:"base_url,omitempty"`
}

// AIClientFactory creates AI clients based on configuration
type AIClientFactory interface {
	CreateClient(config AIConfig) (AIClient, error)
}

type aiClientFactory struct{}

// NewAIClientFactory returns the factory for the providers this service supports.
func NewAIClientFactory() AIClientFactory {
	return aiClientFactory{}
}

func (aiClientFactory) CreateClient(config AIConfig) (AIClient, error) {
	switch config.Provider {
	case "openai", "":
		return NewOpenAIClient(config)
	case "openai-sdk":
		return NewOpenAISDKClient(config)
	case "stub":
		return NewStubClient(), nil
	default:
		return nil, fmt.Errorf("ai provider %s not supported", config.Provider)
	}
}
