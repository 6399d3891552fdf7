package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/itamarh/voicedca/internal/api"
	"github.com/itamarh/voicedca/internal/api/handlers"
	"github.com/itamarh/voicedca/internal/config"
	"github.com/itamarh/voicedca/internal/logging"
	"github.com/itamarh/voicedca/internal/marketdata"
	"github.com/itamarh/voicedca/internal/reference"
	"github.com/itamarh/voicedca/internal/services"
	"github.com/itamarh/voicedca/internal/speech"
	"github.com/itamarh/voicedca/internal/yemot"
)

func main() {
	// Load .env if present (local development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.Environment)

	// Load the security reference table once; it is read-only for the life
	// of the process.
	entries, err := reference.LoadTable(cfg.Reference.CSVPath, logger)
	if err != nil {
		log.Fatalf("Failed to load security reference table: %v", err)
	}
	logger.WithField("entries", len(entries)).Info("security reference table loaded")
	resolver := reference.NewResolver(entries)

	// Market data source with bounded retry
	yahooClient := marketdata.NewYahooClient(&cfg.MarketData)
	source := marketdata.NewRetryingSource(yahooClient, cfg.MarketData.MaxRetries, cfg.MarketData.RetryDelayDuration(), logger)

	// External collaborators
	store := yemot.NewClient(&cfg.Yemot)
	speechClient := speech.NewClient(&cfg.Speech)

	// Core services
	simulator := services.NewSimulatorService(source, logger)
	pipeline := services.NewPipelineService(store, speechClient, speechClient, resolver, simulator, logger)

	// Setup Gin router
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	ivrHandler := handlers.NewIVRHandler(pipeline, cfg.Yemot.ResponseExt, logger)
	api.SetupRoutes(router, ivrHandler, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline for completion. A pipeline mid
	// retry-loop can legitimately take tens of seconds.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
