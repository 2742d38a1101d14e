package application

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/tidwall/gjson"
)

type interpretPromptData struct {
	DreamDescription string
}

type visualizePromptData struct {
	DreamInterpretation string
}

// renderPrompt executes a configured prompt template against data.
func renderPrompt(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return sb.String(), nil
}

// stripCodeFence removes a surrounding markdown code block such as ```json ... ```.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	return strings.TrimSpace(s)
}

// unwrapSingleField returns the string value of a one-field JSON object, e.g.
// {"prompt": "..."}; any other text is returned as it was.
func unwrapSingleField(raw string) string {
	s := stripCodeFence(raw)
	if !strings.HasPrefix(s, "{") || !gjson.Valid(s) {
		return s
	}

	var (
		fields int
		value  gjson.Result
	)
	gjson.Parse(s).ForEach(func(_, v gjson.Result) bool {
		fields++
		value = v
		return fields < 2
	})
	if fields == 1 && value.Type == gjson.String {
		return strings.TrimSpace(value.String())
	}
	return s
}
