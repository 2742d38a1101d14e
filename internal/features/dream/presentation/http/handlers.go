package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dream-canvas/backend/internal/features/dream/application"
	"dream-canvas/backend/internal/features/dream/domain"
)

// DreamHandler exposes the dream flows as a JSON API.
type DreamHandler struct {
	dreamService application.DreamService
	timeout      time.Duration
}

// NewDreamHandler creates a new DreamHandler. Each flow call runs under timeout.
func NewDreamHandler(dreamService application.DreamService, timeout time.Duration) *DreamHandler {
	return &DreamHandler{dreamService: dreamService, timeout: timeout}
}

// InterpretHandler handles the request to interpret a dream description.
func (h *DreamHandler) InterpretHandler(c *gin.Context) {
	var req domain.InterpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	interpretation, err := h.dreamService.Interpret(ctx, req.DreamDescription)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, interpretation)
}

// VisualizeHandler handles the request to turn an interpretation into an image.
func (h *DreamHandler) VisualizeHandler(c *gin.Context) {
	var req domain.VisualizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	image, err := h.dreamService.Visualize(ctx, req.DreamInterpretation)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, image)
}

// AnalyzeHandler handles the request to run the full pipeline.
func (h *DreamHandler) AnalyzeHandler(c *gin.Context) {
	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.dreamService.Analyze(ctx, req.DreamDescription)
	if err != nil {
		respondError(c, err, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps flow errors to status codes. A partial result with an
// interpretation is returned alongside the error.
func respondError(c *gin.Context, err error, partial *domain.AnalysisResult) {
	log.Println("[ERROR] Dream flow failed:", err)

	status := http.StatusInternalServerError
	var modelErr *domain.ModelInvocationError
	var imageErr *domain.ImageGenerationError
	switch {
	// Flow errors wrap the transport error, so a timeout is checked first.
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.As(err, &modelErr), errors.As(err, &imageErr):
		status = http.StatusBadGateway
	}

	body := gin.H{"error": err.Error()}
	if partial != nil && partial.Interpretation != nil {
		body["interpretation"] = partial.Interpretation
		if partial.ImagePrompt != "" {
			body["image_prompt"] = partial.ImagePrompt
		}
	}
	c.JSON(status, body)
}
