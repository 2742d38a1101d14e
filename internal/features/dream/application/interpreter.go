package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"dream-canvas/backend/internal/config"
	"dream-canvas/backend/internal/features/dream/domain"
	"dream-canvas/backend/internal/features/dream/infrastructure"
)

// Interpreter extracts themes, visual elements and a short interpretation from a dream.
type Interpreter interface {
	Interpret(ctx context.Context, dreamDescription string) (*domain.DreamInterpretation, error)
}

// interpreter is the implementation of Interpreter.
type interpreter struct {
	aiClient         infrastructure.AIClient
	appConfigService config.AppConfigService
	validate         *validator.Validate
}

// NewInterpreter creates a new instance of interpreter.
func NewInterpreter(aiClient infrastructure.AIClient, appConfigService config.AppConfigService) Interpreter {
	return &interpreter{
		aiClient:         aiClient,
		appConfigService: appConfigService,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Interpret renders the interpret prompt, calls the model in JSON mode and
// validates the answer. Any model or schema failure is a ModelInvocationError;
// there is no retry and no partial result.
func (s *interpreter) Interpret(ctx context.Context, dreamDescription string) (*domain.DreamInterpretation, error) {
	appConfig, err := s.appConfigService.LoadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	prompt, err := renderPrompt("interpret_prompt", appConfig.InterpretPrompt, interpretPromptData{DreamDescription: dreamDescription})
	if err != nil {
		return nil, err
	}

	resp, err := s.aiClient.Generate(ctx, infrastructure.CompletionRequest{
		Flow:        domain.FlowInterpretDream,
		Input:       dreamDescription,
		Prompt:      prompt,
		Model:       appConfig.ModelParams.Model,
		Temperature: appConfig.ModelParams.Temperature,
		MaxTokens:   appConfig.ModelParams.MaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		return nil, &domain.ModelInvocationError{Flow: domain.FlowInterpretDream, Err: err}
	}

	rawJSON := stripCodeFence(resp.Content)
	if rawJSON == "" {
		return nil, &domain.ModelInvocationError{Flow: domain.FlowInterpretDream, Err: domain.ErrEmptyModelResponse}
	}
	log.Println("[DEBUG] interpretDreamFlow raw response:", rawJSON)

	var out domain.DreamInterpretation
	if err := json.Unmarshal([]byte(rawJSON), &out); err != nil {
		return nil, &domain.ModelInvocationError{
			Flow: domain.FlowInterpretDream,
			Err:  fmt.Errorf("%w: %v", domain.ErrSchemaViolation, err),
		}
	}
	out.Interpretation = strings.TrimSpace(out.Interpretation)

	if err := s.validate.Struct(&out); err != nil {
		return nil, &domain.ModelInvocationError{
			Flow: domain.FlowInterpretDream,
			Err:  fmt.Errorf("%w: %v", domain.ErrSchemaViolation, err),
		}
	}

	return &out, nil
}
