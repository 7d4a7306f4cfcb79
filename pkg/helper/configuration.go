package helper

import (
	"os"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/database"
)

// AppConfig holds everything the server needs from the environment.
type AppConfig struct {
	Port     string
	LogLevel string
	Neo4j    database.Config
}

// LoadConfigFromEnv loads the application configuration from environment
// variables.
func LoadConfigFromEnv() AppConfig {
	return AppConfig{
		Port:     getEnvOrDefault("APP_PORT", "8080"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		Neo4j: database.Config{
			URI:      getEnvOrDefault("NEO4J_URI", ""),
			Username: getEnvOrDefault("NEO4J_USERNAME", "neo4j"),
			Password: getEnvOrDefault("NEO4J_PASSWORD", ""),
			Database: getEnvOrDefault("NEO4J_DATABASE", "neo4j"),
		},
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
