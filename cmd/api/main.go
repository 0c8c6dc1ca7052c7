package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/disaster-predict/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/disaster-predict/internal/adapter/kafka"
	"github.com/couchcryptid/disaster-predict/internal/config"
	"github.com/couchcryptid/disaster-predict/internal/observability"
	"github.com/couchcryptid/disaster-predict/internal/predict"
	"github.com/couchcryptid/disaster-predict/internal/registry"
)

func main() {
	// Optional .env for local development; the environment wins when both set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	reg, err := registry.Load(cfg.ModelManifest)
	if err != nil {
		logger.Error("failed to load model registry", "manifest", cfg.ModelManifest, "error", err)
		os.Exit(1)
	}
	metrics.ModelsLoaded.Set(float64(reg.Len()))
	logger.Info("model registry loaded", "models", reg.Names())

	// Audit trail is feature-flagged via AUDIT_ENABLED.
	var audit predict.AuditPublisher
	var auditWriter *kafkaadapter.AuditWriter
	if cfg.AuditEnabled {
		auditWriter = kafkaadapter.NewAuditWriter(cfg, logger)
		audit = auditWriter
		logger.Info("prediction audit trail enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAuditTopic)
	} else {
		logger.Info("prediction audit trail disabled")
	}

	svc := predict.NewService(reg, audit, logger, metrics, cfg.ReconstructionThreshold)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, cfg.CORSAllowedOrigin, logger, clockwork.NewRealClock())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if auditWriter != nil {
		if err := auditWriter.Close(); err != nil {
			logger.Error("audit writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
