package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPrompt(t *testing.T) {
	got, err := renderPrompt("interpret_prompt", "Dream Description: {{.DreamDescription}}", interpretPromptData{DreamDescription: "I was flying"})
	require.NoError(t, err)
	assert.Equal(t, "Dream Description: I was flying", got)

	_, err = renderPrompt("bad", "{{.DreamDescription", interpretPromptData{})
	assert.Error(t, err)

	_, err = renderPrompt("wrong_field", "{{.DreamDescription}}", visualizePromptData{})
	assert.Error(t, err)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line fence", "```{\"a\":1}```", `{"a":1}`},
		{"whitespace", "  \n{\"a\":1}\n ", `{"a":1}`},
		{"only backticks", "```", "```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

func TestUnwrapSingleField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"raw text", "A surreal glass city", "A surreal glass city"},
		{"single string field", `{"prompt": " A surreal glass city "}`, "A surreal glass city"},
		{"fenced object", "```json\n{\"imagePrompt\":\"glass city\"}\n```", "glass city"},
		{"two fields", `{"prompt":"a","style":"b"}`, `{"prompt":"a","style":"b"}`},
		{"non string field", `{"prompt":3}`, `{"prompt":3}`},
		{"invalid json", `{prompt`, `{prompt`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unwrapSingleField(tt.in))
		})
	}
}
