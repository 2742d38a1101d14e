package fusionbrain_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dream-canvas/backend/internal/features/dream/infrastructure/fusionbrain"
)

// newFusionBrainServer fakes the pipelines, run and status endpoints. The run
// reports PROCESSING for the first pendingChecks status calls.
func newFusionBrainServer(t *testing.T, pendingChecks int32, final map[string]any) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var checks atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/key/api/v1/pipelines", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Key test-key", r.Header.Get("X-Key"))
		assert.Equal(t, "Secret test-secret", r.Header.Get("X-Secret"))
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": "pipeline-1", "name": "Kandinsky"}})
	})
	mux.HandleFunc("/key/api/v1/pipeline/run", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "pipeline-1", r.FormValue("pipeline_id"))

		var params map[string]any
		assert.NoError(t, json.Unmarshal([]byte(r.FormValue("params")), &params))
		assert.Equal(t, "GENERATE", params["type"])
		assert.Equal(t, map[string]any{"query": "a glass city"}, params["generateParams"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"uuid": "run-42", "status": "INITIAL"})
	})
	mux.HandleFunc("/key/api/v1/pipeline/status/run-42", func(w http.ResponseWriter, _ *http.Request) {
		if checks.Add(1) <= pendingChecks {
			_ = json.NewEncoder(w).Encode(map[string]any{"uuid": "run-42", "status": "PROCESSING"})
			return
		}
		_ = json.NewEncoder(w).Encode(final)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &checks
}

func TestImageGenerator_Generate(t *testing.T) {
	srv, checks := newFusionBrainServer(t, 2, map[string]any{
		"uuid":   "run-42",
		"status": "DONE",
		"result": map[string]any{"files": []string{"aGVsbG8="}, "censored": false},
	})

	client := fusionbrain.NewClient(srv.URL, "test-key", "test-secret", srv.Client())
	gen := fusionbrain.NewImageGenerator(client, 1024, 1024, time.Millisecond, 5)

	got, err := gen.Generate(context.Background(), "a glass city")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", got)
	assert.Equal(t, int32(3), checks.Load())
}

func TestImageGenerator_Censored(t *testing.T) {
	srv, _ := newFusionBrainServer(t, 0, map[string]any{
		"uuid":   "run-42",
		"status": "DONE",
		"result": map[string]any{"files": []string{"aGVsbG8="}, "censored": true},
	})

	gen := fusionbrain.NewImageGenerator(fusionbrain.NewClient(srv.URL, "test-key", "test-secret", nil), 1024, 1024, time.Millisecond, 5)
	_, err := gen.Generate(context.Background(), "a glass city")
	assert.ErrorContains(t, err, "censored")
}

func TestImageGenerator_RunFailed(t *testing.T) {
	srv, _ := newFusionBrainServer(t, 0, map[string]any{
		"uuid":             "run-42",
		"status":           "FAIL",
		"errorDescription": "model overloaded",
	})

	gen := fusionbrain.NewImageGenerator(fusionbrain.NewClient(srv.URL, "test-key", "test-secret", nil), 1024, 1024, time.Millisecond, 5)
	_, err := gen.Generate(context.Background(), "a glass city")
	assert.ErrorContains(t, err, "model overloaded")
}

func TestWaitForGeneration_MaxAttempts(t *testing.T) {
	srv, checks := newFusionBrainServer(t, 100, nil)

	client := fusionbrain.NewClient(srv.URL, "test-key", "test-secret", nil)
	_, err := client.WaitForGeneration(context.Background(), "run-42", time.Millisecond, 3)
	assert.ErrorContains(t, err, "max attempts")
	assert.Equal(t, int32(3), checks.Load())
}

func TestWaitForGeneration_ContextCancelled(t *testing.T) {
	srv, _ := newFusionBrainServer(t, 100, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := fusionbrain.NewClient(srv.URL, "test-key", "test-secret", nil)
	_, err := client.WaitForGeneration(ctx, "run-42", time.Hour, 3)
	assert.Error(t, err)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	client := fusionbrain.NewClient(srv.URL, "k", "s", nil)
	_, err := client.StartGeneration(context.Background(), fusionbrain.GenerationRequest{Prompt: "p"})
	assert.ErrorContains(t, err, "401")
}
