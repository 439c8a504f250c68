package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/gpu-atlas/pkg/handlers/estimate"
	"github.com/de-tools/gpu-atlas/pkg/server/metrics"
	"github.com/de-tools/gpu-atlas/pkg/services/cost"

	gpuatlasmiddleware "github.com/de-tools/gpu-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Estimator cost.Estimator
	// Registry receives the server's collectors and backs /metrics.
	// A private registry is created when nil.
	Registry *prometheus.Registry
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) (*WebAPI, error) {
	registry := config.Dependencies.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m, err := metrics.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	estimateHandler := handlers.NewHandler(config.Dependencies.Estimator, m)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(gpuatlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)
	router.Use(m.Middleware)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/estimate/training", estimateHandler.EstimateTraining)
		r.Post("/estimate/inference", estimateHandler.EstimateInference)
		r.Get("/compare", estimateHandler.Compare)
		r.Get("/hours", estimateHandler.ConvertBudget)
		r.Get("/catalog", estimateHandler.Catalog)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: timeout,
	}, nil
}

func (w *WebAPI) Handler() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
