package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/services"
)

// HealthChecker reports storage connectivity for the health endpoint.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// APIHandler handles all API requests.
type APIHandler struct {
	recommendations *services.RecommendationService
	imports         *services.ImportService
	health          HealthChecker
	logger          zerolog.Logger
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(rec *services.RecommendationService, imp *services.ImportService, health HealthChecker, logger zerolog.Logger) *APIHandler {
	return &APIHandler{
		recommendations: rec,
		imports:         imp,
		health:          health,
		logger:          logger.With().Str("component", "api").Logger(),
	}
}

// SetupRoutes configures all API routes.
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/recommendations/food", h.RecommendFood)
		api.POST("/recommendations/drink", h.RecommendDrinks)
		api.POST("/recommendations/both", h.RecommendBoth)
		api.POST("/menu/import", h.ImportMenu)
		api.GET("/health", h.Health)
	}
}

type foodRequest struct {
	SessionID   string                 `json:"session_id"`
	Preferences models.FoodPreferences `json:"preferences"`
	Limit       int                    `json:"limit" binding:"omitempty,min=1,max=20"`
}

type drinkRequest struct {
	SessionID   string                  `json:"session_id"`
	Preferences models.DrinkPreferences `json:"preferences"`
	Limit       int                     `json:"limit" binding:"omitempty,min=1,max=20"`
}

type bothRequest struct {
	SessionID string                  `json:"session_id"`
	Food      models.FoodPreferences  `json:"food"`
	Drink     models.DrinkPreferences `json:"drink"`
	Limit     int                     `json:"limit" binding:"omitempty,min=1,max=20"`
}

// RecommendFood handles food questionnaire submissions.
func (h *APIHandler) RecommendFood(c *gin.Context) {
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sessionID, result, err := h.recommendations.RecommendFood(c.Request.Context(), req.SessionID, req.Preferences, req.Limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("food recommendation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"result":     result,
	})
}

// RecommendDrinks handles drink questionnaire submissions. Strength is the
// mandatory first question.
func (h *APIHandler) RecommendDrinks(c *gin.Context) {
	var req drinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Preferences.Strength == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "drink strength is required"})
		return
	}

	sessionID, result, err := h.recommendations.RecommendDrinks(c.Request.Context(), req.SessionID, req.Preferences, req.Limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("drink recommendation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"result":     result,
	})
}

// RecommendBoth runs the combined food and drink flow for one session.
func (h *APIHandler) RecommendBoth(c *gin.Context) {
	var req bothRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Drink.Strength == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "drink strength is required"})
		return
	}

	result, err := h.recommendations.RecommendBoth(c.Request.Context(), req.SessionID, req.Food, req.Drink, req.Limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("combined recommendation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recommendations"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ImportMenu accepts a CSV upload, either as a multipart "file" field or as
// the raw request body. With ?persist=true the valid rows are stored.
func (h *APIHandler) ImportMenu(c *gin.Context) {
	var reader io.Reader
	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		reader = file
	} else {
		reader = c.Request.Body
	}

	persist, _ := strconv.ParseBool(c.Query("persist"))

	report, err := h.imports.Import(c.Request.Context(), reader, persist)
	if err != nil {
		h.logger.Error().Err(err).Msg("menu import failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read csv file"})
		return
	}
	if len(report.GlobalErrors) > 0 {
		c.JSON(http.StatusBadRequest, report)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Health reports storage connectivity.
func (h *APIHandler) Health(c *gin.Context) {
	if err := h.health.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
