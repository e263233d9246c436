package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"lala-site-api/internal/cache"
	"lala-site-api/internal/config"
	"lala-site-api/internal/instagram"
	"lala-site-api/internal/logger"
	"lala-site-api/internal/telemetry"
	"lala-site-api/middleware"
	"lala-site-api/routes"
	"lala-site-api/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// Telemetry is opt-in; the site runs fine without a collector.
	var metrics *telemetry.Metrics
	if cfg.OTelEnabled {
		shutdown, err := telemetry.InitTracer("lala-site-api", cfg.OTelEndpoint)
		if err != nil {
			log.Fatal("Failed to init tracer:", err)
		}
		defer shutdown()

		metrics, err = telemetry.InitMetrics()
		if err != nil {
			log.Fatal("Failed to init metrics:", err)
		}
	}

	// Feed cache: shared Redis when configured, in-process otherwise.
	var store cache.PostStore = cache.NewMemoryStore()
	if cfg.RedisURL != "" {
		rdb, err := config.NewRedisClient(cfg)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer rdb.Close()
		store = cache.NewRedisStore(rdb)
	}

	igClient := instagram.NewClient(cfg.InstagramAccessToken, cfg.InstagramUserID, cfg.InstagramPostLimit)
	feedTTL := time.Duration(cfg.FeedCacheTTL) * time.Second
	feedService := services.NewFeedService(igClient, store, feedTTL, metrics)

	mailer := services.NewResendMailer(cfg.ResendAPIKey)
	contactService := services.NewContactService(cfg, mailer, metrics)

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	if cfg.OTelEnabled {
		router.Use(middleware.TracingMiddleware())
		router.Use(middleware.EnrichTrace())
		router.Use(middleware.MetricsMiddleware(metrics))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	// Setup routes
	routes.SetupContactRoutes(router, cfg, contactService)
	routes.SetupInstagramRoutes(router, cfg, feedService)

	// Background feed prefetch so page loads hit a warm cache.
	if cfg.FeedPrefetch && cfg.InstagramConfigured() {
		prefetcher, err := services.NewFeedPrefetcher(feedService, feedTTL)
		if err != nil {
			log.Fatal("Failed to schedule feed prefetch:", err)
		}
		prefetcher.Start()
		defer prefetcher.Stop()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
