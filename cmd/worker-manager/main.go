// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"story-workers/internal/common/camunda"
	"story-workers/internal/common/config"
	apperrors "story-workers/internal/common/errors"
	"story-workers/internal/common/logger"
	"story-workers/internal/common/observability"
	"story-workers/pkg/registry"

	gus "story-workers/internal/workers/story/generate-user-story"
	rus "story-workers/internal/workers/story/render-user-story"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})
	log.Info("Starting worker manager...", nil)

	var obsOpts []observability.Option
	if cfg.Observability.TracingEnabled {
		obsOpts = append(obsOpts, observability.WithTracing(cfg.Observability.TraceSampleRatio))
	}
	obs := observability.New(cfg.Observability.ServiceName, obsOpts...)
	defer obs.Shutdown()

	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed",
			zap.Error(apperrors.NewRegistryLoadFailedError(cfg.Registry.Path, err)))
	}
	log.Info("activity registry loaded", map[string]interface{}{
		"path":       cfg.Registry.Path,
		"version":    reg.Version,
		"activities": len(reg.Activities),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := camunda.Connect(ctx, camunda.ConfigFrom(cfg.Camunda), log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer client.Close()
	log.Info("Zeebe client connected successfully", map[string]interface{}{
		"gateway": cfg.Camunda.BrokerAddress,
	})

	pool := &camunda.Pool{}
	if err := registerWorkers(pool, client, cfg, reg, log, obs); err != nil {
		zapLog.Fatal("worker registration failed", zap.Error(err))
	}
	log.Info("workers registered", map[string]interface{}{"taskTypes": pool.TaskTypes()})

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           newServeMux(client.HealthCheck, pool.TaskTypes),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	pool.StopAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped", nil)
}

// registerWorkers starts every enabled story worker on pool.
func registerWorkers(pool *camunda.Pool, client *camunda.Client, cfg *config.Config, reg *registry.ActivityRegistry, log logger.Logger, obs *observability.Observability) error {
	genCfg, err := gus.NewConfig(cfg, reg)
	if err != nil {
		return err
	}
	pool.Start(client.GetClient(), gus.TaskType, config.GetWorkerConfig(cfg, gus.TaskType),
		gus.NewHandler(genCfg, log, obs), log)

	renderCfg, err := rus.NewConfig(cfg, reg)
	if err != nil {
		return err
	}
	pool.Start(client.GetClient(), rus.TaskType, config.GetWorkerConfig(cfg, rus.TaskType),
		rus.NewHandler(renderCfg, log, obs), log)

	return nil
}
