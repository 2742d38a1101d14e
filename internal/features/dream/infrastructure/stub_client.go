package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"dream-canvas/backend/internal/features/dream/domain"
)

// stubClient answers both dream flows locally without calling a model.
// Useful for running the page without credentials.
type stubClient struct{}

// NewStubClient returns the offline AIClient.
func NewStubClient() AIClient {
	return stubClient{}
}

func (stubClient) Generate(_ context.Context, req CompletionRequest) (*AIResponse, error) {
	switch req.Flow {
	case domain.FlowInterpretDream:
		keywords := stubKeywords(req.Input, 3)
		out := domain.DreamInterpretation{
			Themes:         keywords,
			VisualElements: append(append([]string{}, keywords...), "dreamlike haze"),
			Interpretation: fmt.Sprintf("This dream seems to revolve around themes of %s. It suggests a need for deeper exploration.", prefix(req.Input, 20)),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return nil, err
		}
		return &AIResponse{Content: string(b), Model: "stub"}, nil
	case domain.FlowVisualizeDream:
		content := fmt.Sprintf("Surreal dreamscape depicting %s, soft volumetric lighting, wide-angle shot, digital painting",
			strings.TrimSpace(prefix(req.Input, 200)))
		return &AIResponse{Content: content, Model: "stub"}, nil
	default:
		return nil, fmt.Errorf("stub: unknown flow %q", req.Flow)
	}
}

func (stubClient) Close() error { return nil }

// stubKeywords picks up to n distinct lowercased words longer than three letters.
func stubKeywords(text string, n int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) }) {
		w = strings.ToLower(w)
		if utf8.RuneCountInString(w) <= 3 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == n {
			break
		}
	}
	if len(out) == 0 {
		out = []string{"mystery"}
	}
	return out
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
