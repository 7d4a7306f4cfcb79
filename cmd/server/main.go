package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/database"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/handlers"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/services"
	"github.com/Justusveijk/mesa-eatsight-sub000/pkg/helper"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Warn().Err(err).Msg("no .env file loaded")
	}

	config := helper.LoadConfigFromEnv()
	if level, err := zerolog.ParseLevel(config.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	// Initialize Neo4j client
	neo4jClient, err := database.NewNeo4jClient(config.Neo4j)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Neo4j")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := neo4jClient.Close(ctx); err != nil {
			logger.Error().Err(err).Msg("error closing Neo4j connection")
		}
	}()
	logger.Info().Msg("connected to Neo4j")

	// Initialize storage collaborators
	menuStore := database.NewMenuStore(neo4jClient)
	recorder := database.NewEventRecorder(neo4jClient)

	// Initialize services
	recommendationService := services.NewRecommendationService(menuStore, recorder, logger)
	importService := services.NewImportService(menuStore, recorder, logger)

	// Initialize API handlers
	apiHandler := handlers.NewAPIHandler(recommendationService, importService, neo4jClient, logger)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Setup API routes
	apiHandler.SetupRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	})

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("port", config.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	// Gracefully shutdown with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited properly")
}
