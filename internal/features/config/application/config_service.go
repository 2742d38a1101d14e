package application

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"dream-canvas/backend/internal/features/config/domain"
)

// ConfigService defines the interface for checking flow configuration before it is saved.
type ConfigService interface {
	ValidateConfig(config *domain.AppConfig) error
}

// configService is the implementation of ConfigService.
type configService struct{}

// NewConfigService creates a new instance of configService.
func NewConfigService() ConfigService {
	return &configService{}
}

// ValidateConfig checks that both prompt templates parse and execute against
// the fields the flows provide, and that model parameters are in range.
// The interpret prompt runs in JSON mode, which OpenAI only accepts when the
// prompt itself mentions JSON.
func (s *configService) ValidateConfig(config *domain.AppConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", domain.ErrInvalidConfig)
	}

	if err := checkTemplate("interpret_prompt", config.InterpretPrompt, struct{ DreamDescription string }{"sample"}); err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(config.InterpretPrompt), "json") {
		return fmt.Errorf("%w: interpret_prompt must ask for JSON output", domain.ErrInvalidConfig)
	}
	if err := checkTemplate("visualize_prompt", config.VisualizePrompt, struct{ DreamInterpretation string }{"sample"}); err != nil {
		return err
	}

	if config.ModelParams.Temperature < 0 || config.ModelParams.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be between 0 and 2, got %v", domain.ErrInvalidConfig, config.ModelParams.Temperature)
	}
	if config.ModelParams.MaxTokens < 0 {
		return fmt.Errorf("%w: max_tokens must not be negative, got %d", domain.ErrInvalidConfig, config.ModelParams.MaxTokens)
	}

	return nil
}

func checkTemplate(name, text string, data any) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: %s is empty", domain.ErrInvalidConfig, name)
	}
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Errorf("%w: %s does not parse: %v", domain.ErrInvalidConfig, name, err)
	}
	if err := tmpl.Execute(io.Discard, data); err != nil {
		return fmt.Errorf("%w: %s does not render: %v", domain.ErrInvalidConfig, name, err)
	}
	return nil
}
