package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"dream-canvas/backend/internal/features/dream/infrastructure/fusionbrain"
)

// ImageGenerator is the image-generation capability behind the generateImage tool.
type ImageGenerator interface {
	// Generate returns a URL for an image rendered from prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageConfig selects and configures an image backend.
type ImageConfig struct {
	Backend string // "placeholder", "openai", "fusionbrain"

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	Width  int
	Height int

	FusionBrainBaseURL       string
	FusionBrainAPIKey        string
	FusionBrainSecretKey     string
	FusionBrainCheckInterval time.Duration
	FusionBrainMaxAttempts   int
}

// NewImageGenerator builds the backend named in config.
func NewImageGenerator(config ImageConfig) (ImageGenerator, error) {
	switch config.Backend {
	case "placeholder", "":
		return NewPlaceholderImageGenerator(), nil
	case "openai":
		return NewOpenAIImageGenerator(config)
	case "fusionbrain":
		client := fusionbrain.NewClient(config.FusionBrainBaseURL, config.FusionBrainAPIKey, config.FusionBrainSecretKey, &http.Client{Timeout: 30 * time.Second})
		return fusionbrain.NewImageGenerator(client, config.Width, config.Height, config.FusionBrainCheckInterval, config.FusionBrainMaxAttempts), nil
	default:
		return nil, fmt.Errorf("image backend %s not supported", config.Backend)
	}
}

const placeholderBaseURL = "https://via.placeholder.com/512x512?text="

// placeholderImageGenerator derives a placeholder image URL from the prompt text.
// No image is rendered.
type placeholderImageGenerator struct{}

// NewPlaceholderImageGenerator returns the default, network-free backend.
func NewPlaceholderImageGenerator() ImageGenerator {
	return placeholderImageGenerator{}
}

func (placeholderImageGenerator) Generate(_ context.Context, prompt string) (string, error) {
	// QueryEscape encodes a literal '+' as %2B, so the remaining '+' are spaces.
	return placeholderBaseURL + strings.ReplaceAll(url.QueryEscape(prompt), "+", "%20"), nil
}

// openAIImageGenerator renders images with the OpenAI images endpoint.
type openAIImageGenerator struct {
	client *openai.Client
	model  string
	size   string
}

// NewOpenAIImageGenerator creates a DALL-E backed generator, requires an API key.
func NewOpenAIImageGenerator(config ImageConfig) (ImageGenerator, error) {
	if config.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	clientConfig := openai.DefaultConfig(config.OpenAIAPIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}
	model := config.OpenAIModel
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	return &openAIImageGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		size:   imageSize(config.Width, config.Height),
	}, nil
}

func (g *openAIImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		N:              1,
		Size:           g.size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create image: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", errors.New("openai: no image data returned")
	}
	return resp.Data[0].URL, nil
}

// imageSize maps the configured dimensions onto a size the images endpoint accepts.
func imageSize(width, height int) string {
	switch {
	case width > height:
		return openai.CreateImageSize1792x1024
	case height > width:
		return openai.CreateImageSize1024x1792
	default:
		return openai.CreateImageSize1024x1024
	}
}
