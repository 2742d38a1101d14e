package fusionbrain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ImageGenerator turns a prompt into a data URL through a Fusion Brain run.
type ImageGenerator struct {
	client        *Client
	width         int
	height        int
	checkInterval time.Duration
	maxAttempts   int
}

// NewImageGenerator wraps client with the run size and polling settings.
func NewImageGenerator(client *Client, width, height int, checkInterval time.Duration, maxAttempts int) *ImageGenerator {
	return &ImageGenerator{
		client:        client,
		width:         width,
		height:        height,
		checkInterval: checkInterval,
		maxAttempts:   maxAttempts,
	}
}

// Generate starts a run for prompt, waits for it and returns the first image
// as a data:image/png;base64 URL.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	started, err := g.client.StartGeneration(ctx, GenerationRequest{
		Prompt:    prompt,
		Width:     g.width,
		Height:    g.height,
		NumImages: 1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start generation: %w", err)
	}
	if started.UUID == "" {
		return "", errors.New("fusion brain returned no run uuid")
	}

	done, err := g.client.WaitForGeneration(ctx, started.UUID, g.checkInterval, g.maxAttempts)
	if err != nil {
		return "", err
	}
	if done.Censored {
		return "", errors.New("generated image was censored")
	}
	if len(done.Files) == 0 {
		return "", errors.New("generation finished without files")
	}

	return "data:image/png;base64," + done.Files[0], nil
}
