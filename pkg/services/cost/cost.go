package cost

import (
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/store/pricing"
	"github.com/de-tools/gpu-atlas/pkg/store/throughput"
	"github.com/shopspring/decimal"
)

// Estimator converts workload descriptions into cost estimates.
// Every method is a pure function of its input and the catalogs.
type Estimator interface {
	EstimateTraining(w domain.TrainingWorkload) (*domain.TrainingEstimate, error)
	EstimateInference(w domain.InferenceWorkload) (*domain.InferenceEstimate, error)
	// Compare prices the same GPU-hours on every platform in catalog order
	Compare(hours decimal.Decimal, gpu string) (*domain.ComparisonResult, error)
	// ConvertBudget returns how many GPU-hours a budget buys on each platform
	ConvertBudget(budget decimal.Decimal, gpu string) (*domain.HoursConversion, error)
	Catalog() pricing.Store
	Throughput() throughput.Model
}

// Engine is the Estimator backed by a rate catalog and a throughput table.
// It holds no mutable state and may be shared between goroutines.
type Engine struct {
	rates      pricing.Store
	throughput throughput.Model
}

func NewEngine(rates pricing.Store, tp throughput.Model) *Engine {
	return &Engine{rates: rates, throughput: tp}
}

// NewDefaultEngine uses the built-in catalogs.
func NewDefaultEngine() *Engine {
	return NewEngine(pricing.NewDefaultStore(), throughput.NewDefaultModel())
}

func (e *Engine) Catalog() pricing.Store {
	return e.rates
}

func (e *Engine) Throughput() throughput.Model {
	return e.throughput
}
