package estimate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-tools/gpu-atlas/pkg/models/api"
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/services/cost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	kind string
	err  error
}

type fakeRecorder struct {
	calls []recorded
}

func (f *fakeRecorder) ObserveEstimate(kind string, err error) {
	f.calls = append(f.calls, recorded{kind: kind, err: err})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&domain.ValidationError{Field: "epochs", Value: 0, Reason: "must be positive"}, http.StatusBadRequest},
		{fmt.Errorf("lookup: %w", &domain.LookupError{GPU: "tpu", Reason: "unknown gpu"}), http.StatusNotFound},
		{&domain.ComputationError{Quantity: "throughput", Reason: "zero"}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestEstimateTraining_WithDefaultEngine(t *testing.T) {
	// Given
	recorder := &fakeRecorder{}
	h := NewHandler(cost.NewDefaultEngine(), recorder)
	body := `{"model_size":"7B","dataset_size":10000,"epochs":3,"gpu":"t4","platform":"modal","peft":true}`

	// When
	rec := httptest.NewRecorder()
	h.EstimateTraining(rec, httptest.NewRequest(http.MethodPost, "/api/v1/estimate/training", strings.NewReader(body)))

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	var est api.TrainingEstimate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &est))
	assert.InDelta(t, 2.0986, est.CostBreakdown.TotalCost, 1e-4)
	assert.Equal(t, []recorded{{kind: KindTraining}}, recorder.calls)
}

func TestEstimateInference_BatchOnDedicated(t *testing.T) {
	// Given
	h := NewHandler(cost.NewDefaultEngine(), nil)
	body := `{"requests_per_day":1000,"avg_latency_seconds":2,"gpu":"a10g","platform":"lambda","deployment":"dedicated","batch_inference":true}`

	// When
	rec := httptest.NewRecorder()
	h.EstimateInference(rec, httptest.NewRequest(http.MethodPost, "/api/v1/estimate/inference", strings.NewReader(body)))

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	var est api.InferenceEstimate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &est))
	assert.InDelta(t, 540.0, est.CostBreakdown.MonthlyCost, 1e-9)
	assert.InDelta(t, 230.0, est.CostBreakdown.DailyComputeSeconds, 1e-9)
	assert.Nil(t, est.DedicatedAlternative.BreakEvenRequestsDay)
}

func TestCompare_UnknownGPU_RecordsLookupError(t *testing.T) {
	// Given
	recorder := &fakeRecorder{}
	h := NewHandler(cost.NewDefaultEngine(), recorder)

	// When
	rec := httptest.NewRecorder()
	h.Compare(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compare?hours=4&gpu=tpu", nil))

	// Then
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.Len(t, recorder.calls, 1)
	assert.ErrorIs(t, recorder.calls[0].err, domain.ErrLookup)
}

func TestConvertBudget_NegativeBudget(t *testing.T) {
	h := NewHandler(cost.NewDefaultEngine(), nil)

	rec := httptest.NewRecorder()
	h.ConvertBudget(rec, httptest.NewRequest(http.MethodGet, "/api/v1/hours?budget=-5&gpu=t4", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body api.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "budget")
}
