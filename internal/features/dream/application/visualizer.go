package application

import (
	"context"
	"fmt"

	"dream-canvas/backend/internal/config"
	"dream-canvas/backend/internal/features/dream/domain"
	"dream-canvas/backend/internal/features/dream/infrastructure"
)

// Visualizer turns an interpretation into an image prompt and resolves it to an image.
type Visualizer interface {
	// Compose asks the model for an image-generation prompt.
	Compose(ctx context.Context, dreamInterpretation string) (string, error)
	// Resolve passes the prompt to the generateImage tool.
	Resolve(ctx context.Context, imagePrompt string) (*domain.GeneratedImage, error)
	// Visualize runs Compose then Resolve.
	Visualize(ctx context.Context, dreamInterpretation string) (*domain.GeneratedImage, error)
}

// visualizer is the implementation of Visualizer.
type visualizer struct {
	aiClient         infrastructure.AIClient
	appConfigService config.AppConfigService
	imageTool        *GenerateImageTool
}

// NewVisualizer creates a new instance of visualizer.
func NewVisualizer(aiClient infrastructure.AIClient, appConfigService config.AppConfigService, imageTool *GenerateImageTool) Visualizer {
	return &visualizer{
		aiClient:         aiClient,
		appConfigService: appConfigService,
		imageTool:        imageTool,
	}
}

func (s *visualizer) Compose(ctx context.Context, dreamInterpretation string) (string, error) {
	appConfig, err := s.appConfigService.LoadAppConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load app config: %w", err)
	}

	prompt, err := renderPrompt("visualize_prompt", appConfig.VisualizePrompt, visualizePromptData{DreamInterpretation: dreamInterpretation})
	if err != nil {
		return "", err
	}

	resp, err := s.aiClient.Generate(ctx, infrastructure.CompletionRequest{
		Flow:        domain.FlowVisualizeDream,
		Input:       dreamInterpretation,
		Prompt:      prompt,
		Model:       appConfig.ModelParams.Model,
		Temperature: appConfig.ModelParams.Temperature,
		MaxTokens:   appConfig.ModelParams.MaxTokens,
	})
	if err != nil {
		return "", &domain.ModelInvocationError{Flow: domain.FlowVisualizeDream, Err: err}
	}

	imagePrompt := unwrapSingleField(resp.Content)
	if imagePrompt == "" {
		return "", &domain.ModelInvocationError{Flow: domain.FlowVisualizeDream, Err: domain.ErrEmptyModelResponse}
	}
	return imagePrompt, nil
}

func (s *visualizer) Resolve(ctx context.Context, imagePrompt string) (*domain.GeneratedImage, error) {
	imageURL, err := s.imageTool.Invoke(ctx, GenerateImageInput{Prompt: imagePrompt})
	if err != nil {
		return nil, err
	}
	return &domain.GeneratedImage{ImageURL: imageURL}, nil
}

func (s *visualizer) Visualize(ctx context.Context, dreamInterpretation string) (*domain.GeneratedImage, error) {
	imagePrompt, err := s.Compose(ctx, dreamInterpretation)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ctx, imagePrompt)
}
