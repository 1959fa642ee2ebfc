package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angeloszaimis/ticket-classifier/config"
	"github.com/angeloszaimis/ticket-classifier/internal/circuitbreaker"
	"github.com/angeloszaimis/ticket-classifier/internal/classifier"
	"github.com/angeloszaimis/ticket-classifier/internal/handler"
	"github.com/angeloszaimis/ticket-classifier/internal/health"
	"github.com/angeloszaimis/ticket-classifier/internal/httpserver"
	"github.com/angeloszaimis/ticket-classifier/internal/metrics"
	"github.com/angeloszaimis/ticket-classifier/internal/provider"
	"github.com/angeloszaimis/ticket-classifier/pkg/logger"
)

const version = "2.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry, err := createRegistry(cfg.CircuitBreaker)
	if err != nil {
		log.Error("Failed to create breaker registry", slog.Any("err", err))
		os.Exit(1)
	}

	providers, err := initializeProviders(cfg, registry, log)
	if err != nil {
		log.Error("Failed to initialize providers", slog.Any("err", err))
		os.Exit(1)
	}

	cls := classifier.NewClassifier(providers, log)
	for _, p := range cls.Providers() {
		log.Info("Provider registered",
			slog.String("provider", p.Name()),
			slog.Int("priority", p.Priority()),
			slog.Bool("enabled", p.IsEnabled()))
	}

	collector := metrics.NewCollector(1024, log)
	collector.Start(ctx)
	cls.SetEventChannel(collector.EventChannel())

	watchInterval, err := time.ParseDuration(cfg.HealthWatch.Interval)
	if err != nil {
		log.Error("Invalid health watch interval", slog.Any("err", err))
		os.Exit(1)
	}
	go health.Watch(ctx, cls, watchInterval, log, collector.EventChannel())

	classifierHandler := handler.NewClassifierHandler(log, cls, collector, version)

	srv, err := httpserver.New(cfg.Server.Address, classifierHandler.Routes())
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("Ticket classifier starting",
		slog.String("address", cfg.Server.Address),
		slog.Int("providers", len(providers)))

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting classifier service", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func createRegistry(cfg config.CircuitBreakerConfig) (*circuitbreaker.Registry, error) {
	resetTimeout, err := time.ParseDuration(cfg.ResetTimeout)
	if err != nil {
		return nil, err
	}

	return circuitbreaker.NewRegistry(cfg.FailureThreshold, resetTimeout, cfg.HalfOpenAttempts), nil
}

func initializeProviders(cfg *config.Config, registry *circuitbreaker.Registry, log *slog.Logger) ([]*provider.Provider, error) {
	var providers []*provider.Provider

	for _, pc := range cfg.Providers {
		timeout, err := time.ParseDuration(pc.Timeout)
		if err != nil {
			return nil, err
		}

		adapter, err := createAdapter(pc)
		if err != nil {
			log.Warn("Skipping provider",
				slog.String("provider", pc.Name),
				slog.Any("err", err))
			continue
		}

		providers = append(providers, provider.New(provider.Config{
			Name:     pc.Name,
			Type:     pc.Type,
			Model:    pc.Model,
			Priority: pc.Priority,
			Enabled:  pc.Enabled,
			Timeout:  timeout,
		}, adapter, registry.GetBreaker(pc.Name)))
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers available, check API keys and configuration")
	}

	return providers, nil
}

func createAdapter(pc config.ProviderConfig) (provider.Adapter, error) {
	switch pc.Type {
	case provider.TypeGemini:
		return provider.NewGeminiAdapter(pc.Name, os.Getenv(pc.APIKeyEnv), pc.Model)
	case provider.TypeOpenAI:
		return provider.NewOpenAIAdapter(pc.Name, os.Getenv(pc.APIKeyEnv), pc.Model)
	case provider.TypeAnthropic:
		return provider.NewAnthropicAdapter(pc.Name, os.Getenv(pc.APIKeyEnv), pc.Model)
	case provider.TypeMock:
		return provider.NewMockAdapter(pc.Name), nil
	default:
		return nil, fmt.Errorf("unknown provider type %q", pc.Type)
	}
}
