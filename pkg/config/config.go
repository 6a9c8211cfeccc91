package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// JWT
	JWTSecret    string
	JWTExpiresIn string

	// GCP Storage (optional; local uploads fallback when unset)
	GCPBucketName                string
	GoogleApplicationCredentials string

	// Local upload fallback
	UploadDir string
	BaseURL   string

	// Allowed Origins
	AllowedOrigins string

	// Metrics
	MetricsPrefix string
}

var AppConfig *Config

// LoadConfig loads environment variables into Config struct
func LoadConfig() {
	// Load .env file if it exists (optional in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:                         getEnv("PORT", "5000"),
		Environment:                  getEnv("APP_ENV", "development"),
		DatabaseURL:                  getEnv("DATABASE_URL", ""),
		JWTSecret:                    getEnv("JWT_SECRET", ""),
		JWTExpiresIn:                 getEnv("JWT_EXPIRES_IN", "30d"),
		GCPBucketName:                getEnv("GCP_BUCKET_NAME", ""),
		GoogleApplicationCredentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		UploadDir:                    getEnv("UPLOAD_DIR", "./uploads"),
		BaseURL:                      getEnv("BASE_URL", "http://localhost:5000"),
		AllowedOrigins:               getEnv("ALLOWED_ORIGINS", ""),
		MetricsPrefix:                getEnv("METRICS_PREFIX", "omnidash"),
	}

	// Validate required config
	if AppConfig.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsProduction returns true if running in production mode
func IsProduction() bool {
	return AppConfig.Environment == "production"
}

// IsDevelopment returns true if running in development mode
func IsDevelopment() bool {
	return AppConfig.Environment == "development" || AppConfig.Environment == ""
}
