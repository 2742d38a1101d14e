package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient implements AIClient with go-openai chat completions.
type openAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client, requires an API key.
func NewOpenAIClient(config AIConfig) (AIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &openAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  config.Model,
	}, nil
}

// Generate sends the rendered prompt as a single user message.
func (c *openAIClient) Generate(ctx context.Context, req CompletionRequest) (*AIResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.Printf("[OpenAI] %s: API error status=%d: %s", req.Flow, apiErr.HTTPStatusCode, apiErr.Message)
		} else {
			log.Printf("[OpenAI] %s: CreateChatCompletion error: %+v", req.Flow, err)
		}
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: empty choices")
	}

	return &AIResponse{Content: resp.Choices[0].Message.Content, Model: resp.Model}, nil
}

func (c *openAIClient) Close() error { return nil }
