package controller

import (
	"fmt"
	"time"

	"github.com/cassiomorais/checkout/internal/config"
	"github.com/cassiomorais/checkout/internal/infrastructure/observability"
	customMW "github.com/cassiomorais/checkout/internal/middleware"
	"github.com/cassiomorais/checkout/internal/navigation"
	"github.com/cassiomorais/checkout/internal/session"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type RouterDeps struct {
	ServiceName     string
	Client          PaymentSubmitter
	BackendURL      string
	Store           *session.Store
	DefaultAuthCode string
	Metrics         *observability.Metrics
	// ExposeMetrics mounts /metrics. Gatherer backs it; nil serves the
	// default registry.
	ExposeMetrics bool
	Gatherer      prometheus.Gatherer
	Logger        zerolog.Logger
	CORSConfig    config.CORSConfig
}

func NewRouter(deps RouterDeps) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing(deps.ServiceName))
	r.Use(chimw.RealIP)
	r.Use(customMW.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(customMW.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	viewH, err := NewViewController(deps.Store, deps.DefaultAuthCode)
	if err != nil {
		return nil, err
	}
	healthH := NewHealthController(deps.BackendURL)
	checkoutH := NewCheckoutController(deps.Client, deps.Store, deps.Metrics, deps.Logger)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	if deps.ExposeMetrics {
		if deps.Gatherer != nil {
			r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
		} else {
			r.Handle("/metrics", promhttp.Handler())
		}
	}

	if err := navigation.Mount(r, viewH.Handlers()); err != nil {
		return nil, fmt.Errorf("mount views: %w", err)
	}

	paymentPath := navigation.MustPath(navigation.ViewPayment)
	r.Post(paymentPath, checkoutH.Submit)
	r.Get(paymentPath+"/status", checkoutH.Status)

	return r, nil
}
