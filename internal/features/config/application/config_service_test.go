package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dream-canvas/backend/internal/features/config/application"
	"dream-canvas/backend/internal/features/config/domain"
)

func validConfig() *domain.AppConfig {
	return &domain.AppConfig{
		InterpretPrompt: "Dream Description: {{.DreamDescription}}\nAnswer as a JSON object.",
		VisualizePrompt: "Dream Interpretation: {{.DreamInterpretation}}",
		ModelParams:     domain.ModelParams{Temperature: 0.8, MaxTokens: 800},
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	assert.NoError(t, application.NewConfigService().ValidateConfig(validConfig()))
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.AppConfig)
	}{
		{"empty interpret prompt", func(c *domain.AppConfig) { c.InterpretPrompt = "  " }},
		{"unparsable template", func(c *domain.AppConfig) { c.InterpretPrompt = "{{.DreamDescription" }},
		{"interpret prompt without json", func(c *domain.AppConfig) { c.InterpretPrompt = "Interpret: {{.DreamDescription}}" }},
		{"unknown field", func(c *domain.AppConfig) { c.VisualizePrompt = "{{.DreamDescription}}" }},
		{"temperature too high", func(c *domain.AppConfig) { c.ModelParams.Temperature = 2.5 }},
		{"negative max tokens", func(c *domain.AppConfig) { c.ModelParams.MaxTokens = -1 }},
	}

	svc := application.NewConfigService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, svc.ValidateConfig(cfg), domain.ErrInvalidConfig)
		})
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	assert.ErrorIs(t, application.NewConfigService().ValidateConfig(nil), domain.ErrInvalidConfig)
}
