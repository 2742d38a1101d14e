package domain

// Flow names identify the prompt-driven units of work sent to the model.
const (
	FlowInterpretDream = "interpretDreamFlow"
	FlowVisualizeDream = "visualizeDreamFlow"
)

// DreamInterpretation is the structured output of the interpreter flow.
// The validate tags are the schema the model output must satisfy.
type DreamInterpretation struct {
	Themes         []string `json:"themes" validate:"required,min=1,dive,required"`
	VisualElements []string `json:"visualElements" validate:"required,min=1,dive,required"`
	Interpretation string   `json:"interpretation" validate:"required"`
}

// GeneratedImage references the image produced for a dream.
type GeneratedImage struct {
	ImageURL string `json:"imageUrl"`
}

// AnalysisResult is the record produced by one pass of the interpret-then-visualize pipeline.
// When visualization fails, Interpretation is set and Image is nil.
type AnalysisResult struct {
	DreamDescription string               `json:"dream_description"`
	Interpretation   *DreamInterpretation `json:"interpretation,omitempty"`
	ImagePrompt      string               `json:"image_prompt,omitempty"`
	Image            *GeneratedImage      `json:"image,omitempty"`
}

// InterpretRequest is the request body for the interpreter flow.
type InterpretRequest struct {
	DreamDescription string `json:"dream_description"`
}

// VisualizeRequest is the request body for the visualizer flow.
type VisualizeRequest struct {
	DreamInterpretation string `json:"dream_interpretation"`
}

// AnalyzeRequest is the request body for the full pipeline.
type AnalyzeRequest struct {
	DreamDescription string `json:"dream_description"`
}
