package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "gpucost"

	LabelKind    = "kind"
	LabelOutcome = "outcome"
	LabelRoute   = "route"
	LabelMethod  = "method"
	LabelStatus  = "status"

	OutcomeOK              = "ok"
	OutcomeValidationError = "validation_error"
	OutcomeLookupError     = "lookup_error"
	OutcomeError           = "error"
)

// Metrics holds the collectors of one server instance.
type Metrics struct {
	estimatesTotal  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		estimatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "estimates_total",
				Help:      "Total number of estimates served, by kind and outcome",
			},
			[]string{LabelKind, LabelOutcome},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency of HTTP requests by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{LabelRoute, LabelMethod, LabelStatus},
		),
	}

	if err := registry.Register(m.estimatesTotal); err != nil {
		return nil, fmt.Errorf("failed to register estimatesTotal metric: %w", err)
	}
	if err := registry.Register(m.requestDuration); err != nil {
		return nil, fmt.Errorf("failed to register requestDuration metric: %w", err)
	}
	return m, nil
}

// Outcome classifies an estimate error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrValidation):
		return OutcomeValidationError
	case errors.Is(err, domain.ErrLookup):
		return OutcomeLookupError
	default:
		return OutcomeError
	}
}

func (m *Metrics) ObserveEstimate(kind string, err error) {
	m.estimatesTotal.WithLabelValues(kind, Outcome(err)).Inc()
}

// Middleware records request latency labelled with the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
