package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyModelResponse = errors.New("model returned an empty response")
	ErrSchemaViolation    = errors.New("model output does not match the declared schema")
	ErrInvalidImageURL    = errors.New("image generator returned an invalid URL")
)

// ModelInvocationError reports a failed hosted-model call or an unusable model response.
type ModelInvocationError struct {
	Flow string
	Err  error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed in %s: %v", e.Flow, e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// ImageGenerationError reports a failure of the image generation tool.
type ImageGenerationError struct {
	Tool string
	Err  error
}

func (e *ImageGenerationError) Error() string {
	return fmt.Sprintf("image generation failed in %s: %v", e.Tool, e.Err)
}

func (e *ImageGenerationError) Unwrap() error { return e.Err }
