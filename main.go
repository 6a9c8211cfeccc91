package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/TharakaGamage830/OmniDash/pkg/config"
	"github.com/TharakaGamage830/OmniDash/pkg/database"
	"github.com/TharakaGamage830/OmniDash/pkg/logger"
	"github.com/TharakaGamage830/OmniDash/pkg/metrics"
	"github.com/TharakaGamage830/OmniDash/pkg/middleware"
	"github.com/TharakaGamage830/OmniDash/pkg/routes"
	"github.com/TharakaGamage830/OmniDash/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	config.LoadConfig()

	log := logger.GetLogger()
	defer log.Sync()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.CloseDatabase()

	if err := database.AutoMigrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Prometheus collectors
	metrics.InitMetrics()

	// Image storage (GCS when configured, local uploads otherwise)
	if err := services.InitStorage(); err != nil {
		log.Warn("storage initialization failed, uploads disabled", zap.Error(err))
	}

	// Set Gin mode based on environment
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())

	setupCORS(router)

	router.MaxMultipartMemory = 10 << 20 // 10 MB

	// Locally stored uploads are served as static files
	if config.AppConfig.GCPBucketName == "" {
		router.Static("/uploads", config.AppConfig.UploadDir)
	}

	setupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening",
			zap.String("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited gracefully")
}

// setupCORS configures CORS middleware
func setupCORS(router *gin.Engine) {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if config.IsProduction() && config.AppConfig.AllowedOrigins != "" {
		corsConfig.AllowOrigins = parseOrigins(config.AppConfig.AllowedOrigins)
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}

	router.Use(cors.New(corsConfig))
}

// parseOrigins splits a comma-separated origin string
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setupRoutes sets up all application routes
func setupRoutes(router *gin.Engine) {
	// Root route
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Anu Creation API is running...")
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes group
	api := router.Group("/api")
	{
		routes.RegisterAdminRoutes(api)
		routes.RegisterProductRoutes(api)
		routes.RegisterOrderRoutes(api)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":      "ok",
				"environment": config.AppConfig.Environment,
				"database":    "connected",
			})
		})
	}
}
