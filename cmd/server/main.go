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
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/api"
	"github.com/scoutlens/scoutlens/internal/api/handlers"
	"github.com/scoutlens/scoutlens/internal/api/middleware"
	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/internal/storage"
	"github.com/scoutlens/scoutlens/pkg/config"
	"github.com/scoutlens/scoutlens/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger("", cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Resolve storage mode once for the process lifetime. Missing Supabase
	// credentials are not an error, they just mean local mode.
	localStore := storage.NewLocalStore(cfg.DataDir, log)
	var remote *storage.RemoteTable
	if cfg.RemoteConfigured() {
		remote = storage.NewRemoteTable(cfg.SupabaseURL, cfg.SupabaseAnonKey, "players", cfg.RemoteTimeout, cfg.RemoteRateRPS, log)
		log.Info("Supabase configured, running in remote mode")
	} else {
		log.WithField("data_dir", cfg.DataDir).Info("Supabase not configured, running in local mode")
	}

	// Optional redis-backed player list cache
	var cache storage.ListCache
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("Redis unreachable, player list cache disabled")
		} else {
			cache = services.NewPlayerCache(redisClient, cfg.CacheTTL, log)
		}
		cancel()
		defer redisClient.Close()
	}

	adapter := storage.NewAdapter(cfg, localStore, remote, cache, log)

	// Initialize services
	shortlistService := services.NewShortlistService(cfg.DataDir, adapter, log)
	noteService := services.NewNoteService(cfg.DataDir, log)
	reportService := services.NewReportService(cfg.DataDir, log)
	syncService := services.NewSyncService(localStore, remote, log)
	if err := syncService.StartSchedule(cfg.SyncSchedule); err != nil {
		log.WithError(err).Error("Failed to start sync schedule")
	}
	defer syncService.Stop()

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	healthHandler := handlers.NewHealthHandler(adapter)
	router.GET("/health", healthHandler.GetHealth)

	v1 := router.Group("/api/v1")
	api.SetupRoutes(v1, adapter, shortlistService, noteService, reportService, syncService, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":         cfg.Port,
			"storage_mode": string(adapter.Mode()),
		}).Info("ScoutLens server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Info("Server exited")
}
