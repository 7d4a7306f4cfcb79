package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/services"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

type stubMenu struct{}

func (stubMenu) FetchMenu(_ context.Context, itemType models.ItemType) ([]models.MenuItem, error) {
	switch itemType {
	case models.TypeFood:
		return []models.MenuItem{
			{
				ID: "stew", Name: "Stew", Type: models.TypeFood, IsAvailable: true,
				Tags: []taxonomy.Tag{taxonomy.MoodComfort, taxonomy.PortionStandard, taxonomy.TempHot},
			},
		}, nil
	default:
		return []models.MenuItem{
			{
				ID: "lemonade", Name: "Lemonade", Type: models.TypeDrink, Category: "Soft Drinks", IsAvailable: true,
				Tags: []taxonomy.Tag{taxonomy.ABVZero, taxonomy.FeelCrispCold},
			},
		}, nil
	}
}

type stubRecorder struct{}

func (stubRecorder) RecordSession(context.Context, string, any) error { return nil }

func (stubRecorder) RecordShown(context.Context, []models.ShownRecommendation) error { return nil }

func (stubRecorder) RecordEvent(context.Context, models.Event) error { return nil }

type stubSaver struct{}

func (stubSaver) SaveImportedRows(_ context.Context, rows []models.ImportRow) (int, error) {
	return len(rows), nil
}

type stubHealth struct{ err error }

func (s stubHealth) Health(context.Context) error { return s.err }

func testRouter(health HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zerolog.Nop()
	rec := services.NewRecommendationService(stubMenu{}, stubRecorder{}, logger)
	imp := services.NewImportService(stubSaver{}, stubRecorder{}, logger)
	router := gin.New()
	NewAPIHandler(rec, imp, health, logger).SetupRoutes(router)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRecommendFoodEndpoint(t *testing.T) {
	router := testRouter(stubHealth{})

	w := postJSON(t, router, "/api/recommendations/food", gin.H{
		"preferences": gin.H{"mood": "comfort"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		SessionID string                      `json:"session_id"`
		Result    models.RecommendationResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	require.NotEmpty(t, resp.Result.Primary)
	assert.Equal(t, "stew", resp.Result.Primary[0].Item.ID)
}

func TestRecommendFoodBadBody(t *testing.T) {
	router := testRouter(stubHealth{})

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations/food", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendDrinksRequiresStrength(t *testing.T) {
	router := testRouter(stubHealth{})

	w := postJSON(t, router, "/api/recommendations/drink", gin.H{
		"preferences": gin.H{"feel": "crisp-cold"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "strength is required")
}

func TestRecommendDrinksEndpoint(t *testing.T) {
	router := testRouter(stubHealth{})

	w := postJSON(t, router, "/api/recommendations/drink", gin.H{
		"preferences": gin.H{"strength": "zero", "feel": "crisp-cold"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lemonade")
}

func TestRecommendBothEndpoint(t *testing.T) {
	router := testRouter(stubHealth{})

	w := postJSON(t, router, "/api/recommendations/both", gin.H{
		"food":  gin.H{"mood": "comfort"},
		"drink": gin.H{"strength": "zero"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp services.BothResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.Food.Primary)
	assert.NotEmpty(t, resp.Drink.Primary)
}

func TestImportEndpoint(t *testing.T) {
	router := testRouter(stubHealth{})

	csv := "name,price,category\nMargherita,11.50,Pizza\n"
	req := httptest.NewRequest(http.MethodPost, "/api/menu/import", bytes.NewReader([]byte(csv)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var report models.ImportReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Summary.Total)
}

func TestImportEndpointMissingColumns(t *testing.T) {
	router := testRouter(stubHealth{})

	req := httptest.NewRequest(http.MethodPost, "/api/menu/import", bytes.NewReader([]byte("name,category\nNo Price,Pizza\n")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price")
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		router := testRouter(stubHealth{})
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("degraded", func(t *testing.T) {
		router := testRouter(stubHealth{err: errors.New("neo4j unreachable")})
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
