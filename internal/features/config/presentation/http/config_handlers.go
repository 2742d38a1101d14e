package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dream-canvas/backend/internal/config"
	"dream-canvas/backend/internal/features/config/application"
	"dream-canvas/backend/internal/features/config/domain"
)

// AppConfigHandler holds the app config and validation services.
type AppConfigHandler struct {
	appConfigService config.AppConfigService
	configService    application.ConfigService
}

// NewAppConfigHandler creates a new AppConfigHandler.
func NewAppConfigHandler(appConfigService config.AppConfigService, configService application.ConfigService) *AppConfigHandler {
	return &AppConfigHandler{
		appConfigService: appConfigService,
		configService:    configService,
	}
}

// GetAppConfigHandler handles fetching the flow configuration.
func (h *AppConfigHandler) GetAppConfigHandler(c *gin.Context) {
	appConfig, err := h.appConfigService.LoadAppConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load app config: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, appConfig)
}

// SaveAppConfigHandler handles validating and saving the flow configuration.
func (h *AppConfigHandler) SaveAppConfigHandler(c *gin.Context) {
	var appConfig domain.AppConfig
	if err := c.ShouldBindJSON(&appConfig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.configService.ValidateConfig(&appConfig); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidConfig) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := h.appConfigService.SaveAppConfig(&appConfig); err != nil {
		log.Println("[ERROR] Failed to save app config:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save app config: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "App config saved successfully"})
}
