package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/trace"

	"github.com/sundayezeilo/shortlink/internal/config"
	"github.com/sundayezeilo/shortlink/internal/logx"
	"github.com/sundayezeilo/shortlink/internal/shortener"
	"github.com/sundayezeilo/shortlink/sluggen"
)

// App holds the application dependencies and configuration.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Tracer   trace.TracerProvider
	Store    *shortener.MemoryStore
	Service  *shortener.Service

	shutdownTracing func(context.Context) error
}

// New initializes and returns a new App instance with all dependencies wired up.
func New(ctx context.Context) (*App, error) {
	if err := loadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg, logx.New(cfg.App.LogLevel))
}

// NewWithConfig wires the registry from an already loaded configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.Info("starting application",
		"env", cfg.App.Environment,
		"version", cfg.Observability.ServiceVersion,
	)

	tp, shutdownTracing, err := setupTracing(ctx, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("failed to setup tracing: %w", err)
	}

	slugGen, err := sluggen.NewWithAlphabet(cfg.Shortener.Alphabet())
	if err != nil {
		return nil, fmt.Errorf("failed to create slug generator: %w", err)
	}

	reg := prometheus.NewRegistry()
	store := shortener.NewMemoryStore(nil)
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "shortlink",
		Name:      "links",
		Help:      "Short links currently registered.",
	}, func() float64 { return float64(store.Len()) })

	svc := shortener.NewService(store, &shortener.ServiceConfig{
		SlugGenerator:  slugGen,
		SlugLength:     cfg.Shortener.SlugLength,
		Logger:         logger,
		TracerProvider: tp,
		Metrics:        shortener.NewMetrics(reg),
	})

	logger.Info("application initialized",
		"slug_length", cfg.Shortener.SlugLength,
		"slug_alphabet", cfg.Shortener.SlugAlphabet,
		"tracing", cfg.Observability.Enabled,
	)

	return &App{
		Config:          cfg,
		Logger:          logger,
		Registry:        reg,
		Tracer:          tp,
		Store:           store,
		Service:         svc,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("shutting down application")

	if err := a.shutdownTracing(ctx); err != nil {
		return fmt.Errorf("failed to flush traces: %w", err)
	}

	return nil
}

// loadEnv loads .env file only in non-production environments.
func loadEnv() error {
	env := os.Getenv("APP_ENV")
	if env == "development" || env == "test" {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found.")
		}
	}
	return nil
}
