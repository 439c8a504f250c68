package estimate

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/gpu-atlas/pkg/adapters"
	"github.com/de-tools/gpu-atlas/pkg/models/api"
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/services/cost"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	KindTraining   = "training"
	KindInference  = "inference"
	KindComparison = "comparison"
	KindHours      = "hours"
)

// Recorder counts served estimates.
type Recorder interface {
	ObserveEstimate(kind string, err error)
}

type Handler struct {
	estimator cost.Estimator
	recorder  Recorder
}

func NewHandler(estimator cost.Estimator, recorder Recorder) *Handler {
	return &Handler{
		estimator: estimator,
		recorder:  recorder,
	}
}

func (h *Handler) EstimateTraining(w http.ResponseWriter, r *http.Request) {
	var req api.TrainingRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, KindTraining, err)
		return
	}

	est, err := h.estimator.EstimateTraining(adapters.MapTrainingRequestApiToDomain(req))
	if err != nil {
		h.fail(w, r, KindTraining, err)
		return
	}
	h.observe(KindTraining, nil)
	writeJSON(w, r, http.StatusOK, adapters.MapTrainingEstimateDomainToApi(est))
}

func (h *Handler) EstimateInference(w http.ResponseWriter, r *http.Request) {
	var req api.InferenceRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, KindInference, err)
		return
	}

	est, err := h.estimator.EstimateInference(adapters.MapInferenceRequestApiToDomain(req))
	if err != nil {
		h.fail(w, r, KindInference, err)
		return
	}
	h.observe(KindInference, nil)
	writeJSON(w, r, http.StatusOK, adapters.MapInferenceEstimateDomainToApi(est))
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	hours, err := decimalParam(r, "hours")
	if err != nil {
		h.fail(w, r, KindComparison, err)
		return
	}

	res, err := h.estimator.Compare(hours, r.URL.Query().Get("gpu"))
	if err != nil {
		h.fail(w, r, KindComparison, err)
		return
	}
	h.observe(KindComparison, nil)
	writeJSON(w, r, http.StatusOK, adapters.MapComparisonDomainToApi(res))
}

func (h *Handler) ConvertBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := decimalParam(r, "budget")
	if err != nil {
		h.fail(w, r, KindHours, err)
		return
	}

	conv, err := h.estimator.ConvertBudget(budget, r.URL.Query().Get("gpu"))
	if err != nil {
		h.fail(w, r, KindHours, err)
		return
	}
	h.observe(KindHours, nil)
	writeJSON(w, r, http.StatusOK, adapters.MapHoursConversionDomainToApi(conv))
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapCatalogToApi(h.estimator.Catalog(), h.estimator.Throughput()))
}

func (h *Handler) observe(kind string, err error) {
	if h.recorder != nil {
		h.recorder.ObserveEstimate(kind, err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, kind string, err error) {
	h.observe(kind, err)

	status := StatusFor(err)
	event := zerolog.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = zerolog.Ctx(r.Context()).Error()
	}
	event.Err(err).Str("kind", kind).Int("status", status).Msg("estimate failed")

	writeJSON(w, r, status, api.Error{Error: err.Error()})
}

// StatusFor maps the engine error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLookup):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &domain.ValidationError{Field: "request", Value: "body", Reason: err.Error()}
	}
	return nil
}

func decimalParam(r *http.Request, name string) (decimal.Decimal, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return decimal.Zero, &domain.ValidationError{Field: name, Value: `""`, Reason: "is required"}
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &domain.ValidationError{Field: name, Value: raw, Reason: "must be a number"}
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
