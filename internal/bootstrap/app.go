package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cassiomorais/checkout/internal/config"
	"github.com/cassiomorais/checkout/internal/infrastructure/observability"
	"github.com/cassiomorais/checkout/internal/payclient"
	"github.com/cassiomorais/checkout/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// App owns everything that lives for one application session: the payment
// client built from the configured backend URL and the session store.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Metrics *observability.Metrics
	Client  *payclient.Client
	Store   *session.Store

	tracer      *sdktrace.TracerProvider
	unsubscribe func()
}

// Options overrides process-wide defaults, mainly for tests.
type Options struct {
	Registerer prometheus.Registerer
	LogOutput  io.Writer
}

func New(ctx context.Context, serviceName string, metricsNamespace string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewFromConfig(ctx, cfg, serviceName, metricsNamespace, Options{})
}

func NewFromConfig(ctx context.Context, cfg *config.Config, serviceName string, metricsNamespace string, opts Options) (*App, error) {
	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logger := observability.InitLogger(cfg.Observability.LogLevel, out).
		With().Str("service", serviceName).Logger()
	logger.Info().Msg("Starting")

	var tp *sdktrace.TracerProvider
	if cfg.Observability.EnableTracing {
		var err error
		tp, err = observability.InitTracer(serviceName, cfg.Observability.JaegerEndpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			logger.Info().Msg("Tracing enabled")
		}
	}

	metrics := observability.NewMetrics(metricsNamespace, opts.Registerer)
	logger.Info().Msg("Metrics initialized")

	client, err := payclient.New(cfg.API.URL)
	if err != nil {
		observability.Shutdown(ctx, tp)
		return nil, fmt.Errorf("create payment client: %w", err)
	}
	logger.Info().Str("backend", client.BaseURL()).Msg("Payment client ready")

	store := session.NewStore()
	sessionLogger := observability.WithContext(logger, map[string]any{"session_id": store.ID()})
	unsubscribe := store.Subscribe(func(c session.Change) {
		metrics.SessionUpdatesTotal.WithLabelValues(string(c.Field)).Inc()
		sessionLogger.Debug().
			Str("field", string(c.Field)).
			Str("value", c.Value).
			Msg("Session updated")
	})

	return &App{
		Config:      cfg,
		Logger:      logger,
		Metrics:     metrics,
		Client:      client,
		Store:       store,
		tracer:      tp,
		unsubscribe: unsubscribe,
	}, nil
}

// Close detaches the store observers and flushes pending spans.
func (a *App) Close(ctx context.Context) {
	a.unsubscribe()
	if err := observability.Shutdown(ctx, a.tracer); err != nil {
		a.Logger.Warn().Err(err).Msg("Tracer shutdown failed")
	}
}
