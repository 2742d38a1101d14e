package application

import (
	"context"

	"dream-canvas/backend/internal/features/config/domain"
	"dream-canvas/backend/internal/features/dream/infrastructure"
)

type mockAIClient struct {
	generate func(ctx context.Context, req infrastructure.CompletionRequest) (*infrastructure.AIResponse, error)
	requests []infrastructure.CompletionRequest
}

func (m *mockAIClient) Generate(ctx context.Context, req infrastructure.CompletionRequest) (*infrastructure.AIResponse, error) {
	m.requests = append(m.requests, req)
	return m.generate(ctx, req)
}

func (m *mockAIClient) Close() error { return nil }

func replyWith(content string) *mockAIClient {
	return &mockAIClient{generate: func(context.Context, infrastructure.CompletionRequest) (*infrastructure.AIResponse, error) {
		return &infrastructure.AIResponse{Content: content}, nil
	}}
}

type mockAppConfigService struct {
	cfg *domain.AppConfig
	err error
}

func (m *mockAppConfigService) LoadAppConfig() (*domain.AppConfig, error) { return m.cfg, m.err }

func (m *mockAppConfigService) SaveAppConfig(cfg *domain.AppConfig) error {
	m.cfg = cfg
	return nil
}

func testAppConfig() *mockAppConfigService {
	return &mockAppConfigService{cfg: &domain.AppConfig{
		InterpretPrompt: "Interpret: {{.DreamDescription}}",
		VisualizePrompt: "Visualize: {{.DreamInterpretation}}",
		ModelParams:     domain.ModelParams{Model: "test-model", Temperature: 0.8, MaxTokens: 800},
	}}
}

type mockImageGenerator struct {
	generate func(ctx context.Context, prompt string) (string, error)
	prompts  []string
}

func (m *mockImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.generate(ctx, prompt)
}

func imageAt(url string) *mockImageGenerator {
	return &mockImageGenerator{generate: func(context.Context, string) (string, error) { return url, nil }}
}
