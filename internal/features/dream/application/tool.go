package application

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"

	"dream-canvas/backend/internal/features/dream/domain"
	"dream-canvas/backend/internal/features/dream/infrastructure"
)

// GenerateImageToolName is the name the image tool is declared under.
const GenerateImageToolName = "generateImage"

// GenerateImageInput is the tool's input schema.
type GenerateImageInput struct {
	Prompt string `json:"prompt"`
}

// GenerateImageTool is the named image capability the visualize flow invokes.
// The backend is swapped by injecting another ImageGenerator.
type GenerateImageTool struct {
	generator infrastructure.ImageGenerator
}

// NewGenerateImageTool declares the tool over generator.
func NewGenerateImageTool(generator infrastructure.ImageGenerator) *GenerateImageTool {
	return &GenerateImageTool{generator: generator}
}

func (t *GenerateImageTool) Name() string { return GenerateImageToolName }

func (t *GenerateImageTool) Description() string {
	return "Generates an image based on a text prompt using Stable Diffusion."
}

// Invoke returns the URL of the generated image. Backend failures and URLs
// that are not http(s) or data:image/ are reported as ImageGenerationError.
func (t *GenerateImageTool) Invoke(ctx context.Context, input GenerateImageInput) (string, error) {
	log.Printf("[ImageTool] %s called with prompt: %s", t.Name(), input.Prompt)

	imageURL, err := t.generator.Generate(ctx, input.Prompt)
	if err != nil {
		return "", &domain.ImageGenerationError{Tool: t.Name(), Err: err}
	}

	u, err := url.Parse(imageURL)
	if err != nil {
		return "", &domain.ImageGenerationError{Tool: t.Name(), Err: errors.Join(domain.ErrInvalidImageURL, err)}
	}
	if !allowedImageURL(u, imageURL) {
		return "", &domain.ImageGenerationError{Tool: t.Name(), Err: domain.ErrInvalidImageURL}
	}

	return imageURL, nil
}

// allowedImageURL accepts http(s) URLs with a host and inline data:image/ URLs.
// The page embeds the URL as trusted, so nothing else may pass.
func allowedImageURL(u *url.URL, raw string) bool {
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "data":
		return strings.HasPrefix(strings.ToLower(raw), "data:image/")
	default:
		return false
	}
}
