package fusionbrain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public Fusion Brain API endpoint.
const DefaultBaseURL = "https://api-key.fusionbrain.ai"

// Generation statuses reported by the API.
const (
	StatusInitial    = "INITIAL"
	StatusProcessing = "PROCESSING"
	StatusDone       = "DONE"
	StatusFail       = "FAIL"
)

// GenerationRequest represents the parameters for a text-to-image run.
type GenerationRequest struct {
	Prompt         string
	Width          int
	Height         int
	NumImages      int
	Style          string
	NegativePrompt string
}

// GenerationStatus represents the state of a run.
type GenerationStatus struct {
	UUID             string
	Status           string
	Files            []string // base64-encoded images once DONE
	Censored         bool
	ErrorDescription string
}

// Client represents the Fusion Brain API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	secretKey  string
}

// NewClient creates a new Fusion Brain API client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL, apiKey, secretKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		secretKey:  secretKey,
	}
}

// StartGeneration submits a run and returns its initial status.
func (c *Client) StartGeneration(ctx context.Context, req GenerationRequest) (*GenerationStatus, error) {
	pipelineID, err := c.getPipelineID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pipeline ID: %w", err)
	}

	params := map[string]interface{}{
		"type":      "GENERATE",
		"width":     req.Width,
		"height":    req.Height,
		"numImages": req.NumImages,
		"generateParams": map[string]string{
			"query": req.Prompt,
		},
	}
	if req.Style != "" {
		params["style"] = req.Style
	}
	if req.NegativePrompt != "" {
		params["negativePromptDecoder"] = req.NegativePrompt
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("pipeline_id", pipelineID); err != nil {
		return nil, fmt.Errorf("failed to write pipeline_id: %w", err)
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}
	if err := writer.WriteField("params", string(paramsJSON)); err != nil {
		return nil, fmt.Errorf("failed to write params: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/key/api/v1/pipeline/run", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	var result struct {
		UUID   string `json:"uuid"`
		Status string `json:"status"`
	}
	if err := c.do(httpReq, &result); err != nil {
		return nil, err
	}

	return &GenerationStatus{UUID: result.UUID, Status: result.Status}, nil
}

// CheckGenerationStatus checks the status of a run.
func (c *Client) CheckGenerationStatus(ctx context.Context, uuid string) (*GenerationStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/key/api/v1/pipeline/status/%s", c.baseURL, uuid), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result struct {
		UUID             string `json:"uuid"`
		Status           string `json:"status"`
		ErrorDescription string `json:"errorDescription"`
		Result           struct {
			Files    []string `json:"files"`
			Censored bool     `json:"censored"`
		} `json:"result"`
	}
	if err := c.do(httpReq, &result); err != nil {
		return nil, err
	}

	return &GenerationStatus{
		UUID:             result.UUID,
		Status:           result.Status,
		Files:            result.Result.Files,
		Censored:         result.Result.Censored,
		ErrorDescription: result.ErrorDescription,
	}, nil
}

// WaitForGeneration polls a run every interval until it is DONE, fails, or
// maxAttempts checks have been made.
func (c *Client) WaitForGeneration(ctx context.Context, uuid string, interval time.Duration, maxAttempts int) (*GenerationStatus, error) {
	for i := 0; i < maxAttempts; i++ {
		status, err := c.CheckGenerationStatus(ctx, uuid)
		if err != nil {
			return nil, fmt.Errorf("failed to check generation status: %w", err)
		}

		switch status.Status {
		case StatusDone:
			return status, nil
		case StatusFail:
			return nil, fmt.Errorf("generation failed: %s", status.ErrorDescription)
		case StatusInitial, StatusProcessing:
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interval):
			}
		default:
			return nil, fmt.Errorf("unknown status: %s", status.Status)
		}
	}

	return nil, errors.New("max attempts reached waiting for generation")
}

// getPipelineID retrieves the ID of the first (Kandinsky) pipeline.
func (c *Client) getPipelineID(ctx context.Context) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/key/api/v1/pipelines", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	var pipelines []struct {
		ID string `json:"id"`
	}
	if err := c.do(httpReq, &pipelines); err != nil {
		return "", err
	}
	if len(pipelines) == 0 {
		return "", errors.New("no pipelines found")
	}

	return pipelines[0].ID, nil
}

// do authenticates req, sends it and decodes a 200 JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("X-Key", "Key "+c.apiKey)
	req.Header.Set("X-Secret", "Secret "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
