package domain

import "errors"

// ErrInvalidConfig is returned when an AppConfig fails validation.
var ErrInvalidConfig = errors.New("invalid app config")

// AppConfig represents the flow configuration: prompt templates and model parameters.
type AppConfig struct {
	InterpretPrompt string      `json:"interpret_prompt"`
	VisualizePrompt string      `json:"visualize_prompt"`
	ModelParams     ModelParams `json:"model_params"`
}

// ModelParams defines the parameters for the AI model.
// An empty Model falls back to the client's default model.
type ModelParams struct {
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}
