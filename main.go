package main

import (
	"log"
	"net/http"

	"dream-canvas/backend/internal/config"
	config_application "dream-canvas/backend/internal/features/config/application"
	config_http "dream-canvas/backend/internal/features/config/presentation/http"
	"dream-canvas/backend/internal/features/dream/application"
	"dream-canvas/backend/internal/features/dream/infrastructure"
	dream_http "dream-canvas/backend/internal/features/dream/presentation/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	envConfig, err := config.LoadEnvConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize AI client and image backend
	aiClient, err := infrastructure.NewAIClientFactory().CreateClient(infrastructure.AIConfig{
		Provider: envConfig.AIProvider,
		APIKey:   envConfig.OpenAIAPIKey,
		Model:    envConfig.AIModel,
		BaseURL:  envConfig.OpenAIBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}
	defer aiClient.Close()

	imageGenerator, err := infrastructure.NewImageGenerator(infrastructure.ImageConfig{
		Backend:                  envConfig.ImageBackend,
		OpenAIAPIKey:             envConfig.OpenAIAPIKey,
		OpenAIBaseURL:            envConfig.OpenAIBaseURL,
		OpenAIModel:              envConfig.OpenAIImageModel,
		Width:                    envConfig.ImageWidth,
		Height:                   envConfig.ImageHeight,
		FusionBrainAPIKey:        envConfig.FusionBrainAPIKey,
		FusionBrainSecretKey:     envConfig.FusionBrainSecretKey,
		FusionBrainCheckInterval: envConfig.FusionBrainCheckInterval,
		FusionBrainMaxAttempts:   envConfig.FusionBrainMaxAttempts,
	})
	if err != nil {
		log.Fatalf("Failed to create image generator: %v", err)
	}

	// Initialize services
	appConfigService := config.NewAppConfigService(envConfig.AppConfigPath)
	interpreter := application.NewInterpreter(aiClient, appConfigService)
	visualizer := application.NewVisualizer(aiClient, appConfigService, application.NewGenerateImageTool(imageGenerator))
	dreamService := application.NewDreamService(interpreter, visualizer)

	r := gin.Default()
	r.SetHTMLTemplate(dream_http.PageTemplate())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Page routes
	pageHandler := dream_http.NewPageHandler(dreamService, application.NewCanvasStore(envConfig.SessionIdleTimeout, envConfig.MaxSessions), envConfig.PipelineTimeout)
	r.GET("/", pageHandler.IndexHandler)
	r.POST("/analyze", pageHandler.AnalyzeHandler)

	// Dream API routes
	dreamGroup := r.Group("/api/dreams")
	{
		handler := dream_http.NewDreamHandler(dreamService, envConfig.PipelineTimeout)
		dreamGroup.POST("/interpret", handler.InterpretHandler)
		dreamGroup.POST("/visualize", handler.VisualizeHandler)
		dreamGroup.POST("/analyze", handler.AnalyzeHandler)
	}

	// Config API routes
	configGroup := r.Group("/api/config")
	{
		handler := config_http.NewAppConfigHandler(appConfigService, config_application.NewConfigService())
		configGroup.GET("/app", handler.GetAppConfigHandler)
		configGroup.POST("/app", handler.SaveAppConfigHandler)
	}

	log.Printf("Dream Canvas listening on :%s (ai=%s, images=%s)", envConfig.Port, envConfig.AIProvider, envConfig.ImageBackend)
	if err := r.Run(":" + envConfig.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
