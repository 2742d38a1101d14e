package application

import (
	"context"
	"log"

	"dream-canvas/backend/internal/features/dream/domain"
)

// DreamService defines the interface for the interpret-then-visualize pipeline.
type DreamService interface {
	Interpret(ctx context.Context, dreamDescription string) (*domain.DreamInterpretation, error)
	Visualize(ctx context.Context, dreamInterpretation string) (*domain.GeneratedImage, error)
	// Analyze interprets the dream, then visualizes the interpretation. When a
	// visualize step fails, the returned result still carries what was computed.
	Analyze(ctx context.Context, dreamDescription string) (*domain.AnalysisResult, error)
}

// dreamService is the implementation of DreamService.
type dreamService struct {
	interpreter Interpreter
	visualizer  Visualizer
}

// NewDreamService creates a new instance of dreamService.
func NewDreamService(interpreter Interpreter, visualizer Visualizer) DreamService {
	return &dreamService{interpreter: interpreter, visualizer: visualizer}
}

func (s *dreamService) Interpret(ctx context.Context, dreamDescription string) (*domain.DreamInterpretation, error) {
	return s.interpreter.Interpret(ctx, dreamDescription)
}

func (s *dreamService) Visualize(ctx context.Context, dreamInterpretation string) (*domain.GeneratedImage, error) {
	return s.visualizer.Visualize(ctx, dreamInterpretation)
}

func (s *dreamService) Analyze(ctx context.Context, dreamDescription string) (*domain.AnalysisResult, error) {
	log.Println("Analyze: Received dream description.")

	interpretation, err := s.interpreter.Interpret(ctx, dreamDescription)
	if err != nil {
		return nil, err
	}
	result := &domain.AnalysisResult{
		DreamDescription: dreamDescription,
		Interpretation:   interpretation,
	}

	// Only the interpretation text is forwarded to the visualizer.
	imagePrompt, err := s.visualizer.Compose(ctx, interpretation.Interpretation)
	if err != nil {
		return result, err
	}
	result.ImagePrompt = imagePrompt

	image, err := s.visualizer.Resolve(ctx, imagePrompt)
	if err != nil {
		return result, err
	}
	result.Image = image

	log.Println("Analyze: Returning result.")
	return result, nil
}
