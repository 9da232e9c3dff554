package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/feedback-analyzer/internal/application"
	appai "github.com/bryanwahyu/feedback-analyzer/internal/application/ai"
	appfeedback "github.com/bryanwahyu/feedback-analyzer/internal/application/feedback"
	"github.com/bryanwahyu/feedback-analyzer/internal/config"
	"github.com/bryanwahyu/feedback-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/ai/provider"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/db"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/httpserver"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/report"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/sentiment/vader"
	minioStore "github.com/bryanwahyu/feedback-analyzer/internal/infra/storage"
	"github.com/bryanwahyu/feedback-analyzer/internal/logger"
	"github.com/bryanwahyu/feedback-analyzer/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	lg, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()
	metrics := middleware.NewMetrics()
	clock := application.SystemClock{}
	sources := map[feedback.SourceKind]feedback.Source{}
	checks := map[string]middleware.HealthChecker{}

	// SQL source (opsional)
	if cfg.Database.Driver != "" {
		conn, err := db.Connect(ctx, cfg.Database.Driver, cfg.DatabaseDSN())
		if err != nil {
			lg.Fatal("database connect error", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		}
		defer conn.Close()
		reader := db.NewColumnReader(conn, cfg.Database.Driver, cfg.Database.MaxRows)
		sources[feedback.SourceSQL] = reader
		checks["database"] = &middleware.PingChecker{Target: reader}
	}

	// object storage source (opsional)
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			lg.Fatal("minio init error", zap.Error(err))
		}
		sources[feedback.SourceObject] = store
		checks["object_store"] = &middleware.PingChecker{Target: store}
	}

	// AI generator; tanpa API key generator nil dan analisis mengembalikan pesan konfigurasi
	gen, desc, err := provider.New(ctx, provider.Config{
		Name:    cfg.AI.Provider,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
	})
	if err != nil {
		lg.Fatal("ai provider init error", zap.Error(err))
	}
	analyst := appai.NewService(gen, appai.Options{
		Provider: desc,
		Timeout:  cfg.AI.Timeout,
		Logger:   lg.Named("ai"),
		Observe:  metrics.ObserveAnalysis,
	})
	checks["ai"] = middleware.CheckFunc(func(context.Context) error {
		if !analyst.Configured() {
			return fmt.Errorf("%w: set %s", middleware.ErrCheckDisabled, desc.EnvVar)
		}
		return nil
	})
	if !analyst.Configured() {
		lg.Warn("ai analysis disabled", zap.String("provider", desc.Name), zap.String("env", desc.EnvVar), zap.Error(ai.ErrMissingCredential))
	}

	svc := &appfeedback.Service{
		Classifier:    feedback.NewClassifier(vader.NewScorer()),
		Analyst:       analyst,
		Renderer:      report.NewRenderer(clock.Now),
		Sources:       sources,
		Clock:         clock,
		MaxReportRows: cfg.Report.MaxRows,
		Log:           lg,
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer limiter.Stop()

	handler := httpserver.NewRouter(httpserver.Deps{
		Feedback:       svc,
		Metrics:        metrics,
		Limiter:        limiter,
		Health:         checks,
		Log:            lg.Named("http"),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// run server
	go func() {
		lg.Info("server listening",
			zap.String("addr", addr),
			zap.String("ai_provider", desc.Name),
			zap.String("ai_model", desc.Model),
			zap.Int("sources", len(sources)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	lg.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		lg.Error("shutdown error", zap.Error(err))
	}
}
