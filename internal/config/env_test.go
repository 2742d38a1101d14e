package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dream-canvas/backend/internal/config"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "APP_CONFIG_PATH", "PIPELINE_TIMEOUT", "AI_PROVIDER", "AI_MODEL",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "IMAGE_BACKEND", "OPENAI_IMAGE_MODEL",
		"IMAGE_WIDTH", "IMAGE_HEIGHT", "FUSION_BRAIN_API_KEY", "FUSION_BRAIN_SECRET_KEY",
		"FUSION_BRAIN_CHECK_INTERVAL", "FUSION_BRAIN_MAX_ATTEMPTS",
		"SESSION_IDLE_TIMEOUT", "MAX_SESSIONS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadEnvConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadEnvConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "config/app_config.json", cfg.AppConfigPath)
	assert.Equal(t, 90*time.Second, cfg.PipelineTimeout)
	assert.Equal(t, config.ProviderOpenAI, cfg.AIProvider)
	assert.Equal(t, config.ImageBackendPlaceholder, cfg.ImageBackend)
	assert.Equal(t, 1024, cfg.ImageWidth)
	assert.Equal(t, 2*time.Second, cfg.FusionBrainCheckInterval)
	assert.Equal(t, 30, cfg.FusionBrainMaxAttempts)
	assert.Equal(t, 24*time.Hour, cfg.SessionIdleTimeout)
	assert.Equal(t, 10000, cfg.MaxSessions)
}

func TestLoadEnvConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("PIPELINE_TIMEOUT", "15s")
	t.Setenv("AI_PROVIDER", "stub")
	t.Setenv("IMAGE_WIDTH", "768")
	t.Setenv("IMAGE_HEIGHT", "not-a-number")
	t.Setenv("SESSION_IDLE_TIMEOUT", "30m")
	t.Setenv("MAX_SESSIONS", "50")

	cfg, err := config.LoadEnvConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.PipelineTimeout)
	assert.Equal(t, config.ProviderStub, cfg.AIProvider)
	assert.Equal(t, 768, cfg.ImageWidth)
	assert.Equal(t, 1024, cfg.ImageHeight)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 50, cfg.MaxSessions)
}

func TestLoadEnvConfig_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("PIPELINE_TIMEOUT", "soon")

	_, err := config.LoadEnvConfig()
	assert.Error(t, err)
}

func TestLoadEnvConfig_InvalidSessionIdleTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_IDLE_TIMEOUT", "-1h")

	_, err := config.LoadEnvConfig()
	assert.ErrorContains(t, err, "SESSION_IDLE_TIMEOUT")
}

func TestLoadEnvConfig_UnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "gemini")

	_, err := config.LoadEnvConfig()
	assert.Error(t, err)
}

func TestLoadEnvConfig_FusionBrainRequiresKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMAGE_BACKEND", "fusionbrain")

	_, err := config.LoadEnvConfig()
	assert.ErrorContains(t, err, "FUSION_BRAIN_API_KEY")

	t.Setenv("FUSION_BRAIN_API_KEY", "key")
	_, err = config.LoadEnvConfig()
	assert.ErrorContains(t, err, "FUSION_BRAIN_SECRET_KEY")

	t.Setenv("FUSION_BRAIN_SECRET_KEY", "secret")
	cfg, err := config.LoadEnvConfig()
	require.NoError(t, err)
	assert.Equal(t, config.ImageBackendFusionBrain, cfg.ImageBackend)
}
