package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/predicting"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/model"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/config"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/logger"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/interfaces/http/handler"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/interfaces/http/middleware"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/interfaces/http/router"
)

func main() {
	var modelPath string
	flag.StringVar(&modelPath, "model", "", "Model artifact path (default: configured paths.model_path)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if modelPath == "" {
		modelPath = cfg.Paths.ModelPath
	}

	log.Info("Starting serving endpoint",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.HTTP.Port),
		zap.String("model", modelPath),
	)

	// The artifact must load before any route is registered; a server that
	// cannot score must not come up.
	artifact, err := model.LoadArtifact(modelPath)
	if err != nil {
		log.Fatal("Failed to load model artifact", zap.Error(err))
	}
	predictor := predicting.NewPredictor(artifact, log)
	log.Info("Model artifact loaded",
		zap.String("algorithm", artifact.Algorithm),
		zap.Int("categories", len(artifact.Schema.Categories)),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	r := router.NewRouter(engine)
	r.Register(handler.NewHealthHandler()).
		Register(handler.NewPredictionHandler(predictor, log))
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
