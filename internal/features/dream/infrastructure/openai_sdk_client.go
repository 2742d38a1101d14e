package infrastructure

import (
	"context"
	"errors"
	"fmt"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// openAISDKClient implements AIClient using the official openai-go SDK.
// With a base URL it serves any OpenAI-compatible endpoint, e.g. DeepSeek.
type openAISDKClient struct {
	client openaisdk.Client
	model  string
}

// NewOpenAISDKClient creates a client on the official SDK. SDK-level retries
// are disabled: a failed call fails the request.
func NewOpenAISDKClient(config AIConfig) (AIClient, error) {
	if config.APIKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	if config.Model == "" {
		return nil, errors.New("llm model is required; set AI_MODEL")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	return &openAISDKClient{
		client: openaisdk.NewClient(opts...),
		model:  config.Model,
	}, nil
}

// Generate sends the rendered prompt as a single user message.
func (c *openAISDKClient) Generate(ctx context.Context, req CompletionRequest) (*AIResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	params := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(req.Prompt),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = openaisdk.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openaisdk.Int(int64(req.MaxTokens))
	}

	if req.JSONMode {
		params.ResponseFormat = openaisdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: empty choices")
	}
	return &AIResponse{Content: resp.Choices[0].Message.Content, Model: resp.Model}, nil
}

func (c *openAISDKClient) Close() error { return nil }
