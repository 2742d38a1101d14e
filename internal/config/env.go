package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider and backend names accepted in the environment.
const (
	ProviderOpenAI    = "openai"
	ProviderOpenAISDK = "openai-sdk"
	ProviderStub      = "stub"

	ImageBackendPlaceholder = "placeholder"
	ImageBackendOpenAI      = "openai"
	ImageBackendFusionBrain = "fusionbrain"
)

// EnvConfig holds the process configuration read from the environment.
type EnvConfig struct {
	Port            string
	AppConfigPath   string
	PipelineTimeout time.Duration

	SessionIdleTimeout time.Duration
	MaxSessions        int

	AIProvider    string
	AIModel       string
	OpenAIAPIKey  string
	OpenAIBaseURL string

	ImageBackend             string
	OpenAIImageModel         string
	ImageWidth               int
	ImageHeight              int
	FusionBrainAPIKey        string
	FusionBrainSecretKey     string
	FusionBrainCheckInterval time.Duration
	FusionBrainMaxAttempts   int
}

// LoadEnvConfig reads the process configuration from environment variables.
// Call godotenv.Load beforehand to pick up a .env file.
func LoadEnvConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{
		Port:                 envOr("PORT", "8080"),
		AppConfigPath:        envOr("APP_CONFIG_PATH", "config/app_config.json"),
		AIProvider:           envOr("AI_PROVIDER", ProviderOpenAI),
		AIModel:              envOr("AI_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:        os.Getenv("OPENAI_BASE_URL"),
		ImageBackend:         envOr("IMAGE_BACKEND", ImageBackendPlaceholder),
		OpenAIImageModel:     envOr("OPENAI_IMAGE_MODEL", "dall-e-3"),
		FusionBrainAPIKey:    os.Getenv("FUSION_BRAIN_API_KEY"),
		FusionBrainSecretKey: os.Getenv("FUSION_BRAIN_SECRET_KEY"),
	}

	cfg.PipelineTimeout = 90 * time.Second
	if v := os.Getenv("PIPELINE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PIPELINE_TIMEOUT %q: %w", v, err)
		}
		cfg.PipelineTimeout = d
	}

	cfg.SessionIdleTimeout = 24 * time.Hour
	if v := os.Getenv("SESSION_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT %q", v)
		}
		cfg.SessionIdleTimeout = d
	}
	cfg.MaxSessions = intOr("MAX_SESSIONS", 10000)

	cfg.ImageWidth = intOr("IMAGE_WIDTH", 1024)
	cfg.ImageHeight = intOr("IMAGE_HEIGHT", 1024)
	cfg.FusionBrainCheckInterval = time.Duration(intOr("FUSION_BRAIN_CHECK_INTERVAL", 2)) * time.Second
	cfg.FusionBrainMaxAttempts = intOr("FUSION_BRAIN_MAX_ATTEMPTS", 30)

	switch cfg.AIProvider {
	case ProviderOpenAI, ProviderOpenAISDK, ProviderStub:
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER %q", cfg.AIProvider)
	}

	switch cfg.ImageBackend {
	case ImageBackendPlaceholder, ImageBackendOpenAI:
	case ImageBackendFusionBrain:
		if cfg.FusionBrainAPIKey == "" {
			return nil, fmt.Errorf("FUSION_BRAIN_API_KEY is required when IMAGE_BACKEND=fusionbrain")
		}
		if cfg.FusionBrainSecretKey == "" {
			return nil, fmt.Errorf("FUSION_BRAIN_SECRET_KEY is required when IMAGE_BACKEND=fusionbrain")
		}
	default:
		return nil, fmt.Errorf("unsupported IMAGE_BACKEND %q", cfg.ImageBackend)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// intOr parses key as a positive integer, falling back on absent or malformed values.
func intOr(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}
