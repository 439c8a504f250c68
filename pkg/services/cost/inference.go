package cost

import (
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const (
	// BatchSize is the number of requests grouped into one batched forward pass.
	BatchSize = 10
)

// BatchOverhead is the latency penalty of a batched pass over a single request.
var BatchOverhead = decimal.New(115, -2)

// scalingVolumes are the request rates used for scaling projections.
var scalingVolumes = [...]int64{10_000, 100_000}

func (e *Engine) EstimateInference(w domain.InferenceWorkload) (*domain.InferenceEstimate, error) {
	w.GPU = domain.NormalizeID(w.GPU)
	w.Platform = domain.NormalizeID(w.Platform)
	if d, err := domain.ParseDeployment(string(w.Deployment)); err == nil {
		w.Deployment = d
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	latency := effectiveLatency(decimal.NewFromFloat(w.AvgLatencySeconds), w.BatchInference)
	requests := decimal.NewFromInt(w.RequestsPerDay)
	dailySeconds := requests.Mul(latency)
	days := decimal.NewFromInt(daysPerMonth)

	estimate := &domain.InferenceEstimate{
		Workload:         w,
		EffectiveLatency: latency,
	}

	var cost domain.InferenceCost
	switch w.Deployment {
	case domain.DeployServerless:
		rate, err := perSecondRate(e.rates, w.Platform, w.GPU)
		if err != nil {
			return nil, err
		}
		estimate.Rate = domain.Price{Amount: rate, Per: domain.PerSecond}

		daily := dailySeconds.Mul(rate)
		cost = domain.InferenceCost{
			DailyComputeSeconds: dailySeconds,
			DailyCost:           daily,
			MonthlyCost:         daily.Mul(days),
			CostPerRequest:      daily.Div(requests),
		}
		estimate.DedicatedAlternative = e.dedicatedAlternative(w, latency, rate)

	case domain.DeployDedicated:
		rate, err := hourlyRate(e.rates, w.Platform, w.GPU)
		if err != nil {
			return nil, err
		}
		estimate.Rate = domain.Price{Amount: rate, Per: domain.PerHour}

		monthly := rate.Mul(decimal.NewFromInt(hoursPerDay)).Mul(days)
		daily := monthly.Div(days)
		cost = domain.InferenceCost{
			DailyComputeSeconds: dailySeconds,
			DailyCost:           daily,
			MonthlyCost:         monthly,
			CostPerRequest:      daily.Div(requests),
		}
		estimate.DedicatedAlternative = domain.DedicatedAlternative{Available: true, MonthlyCost: monthly}
	}

	estimate.Cost = cost
	estimate.Scaling = scalingProjections(cost.CostPerRequest)
	return estimate, nil
}

// effectiveLatency models per-request compute time. Batched requests share
// one pass of BatchSize requests that runs BatchOverhead slower.
func effectiveLatency(latency decimal.Decimal, batch bool) decimal.Decimal {
	if !batch {
		return latency
	}
	return latency.Mul(BatchOverhead).Div(decimal.NewFromInt(BatchSize))
}

func scalingProjections(costPerRequest decimal.Decimal) []domain.ScalingPoint {
	points := make([]domain.ScalingPoint, 0, len(scalingVolumes))
	for _, volume := range scalingVolumes {
		daily := costPerRequest.Mul(decimal.NewFromInt(volume))
		points = append(points, domain.ScalingPoint{
			RequestsPerDay: volume,
			DailyCost:      daily,
			MonthlyCost:    daily.Mul(decimal.NewFromInt(daysPerMonth)),
		})
	}
	return points
}

// dedicatedAlternative prices an always-on instance of the same GPU on the
// same platform and the request volume above which it becomes cheaper.
func (e *Engine) dedicatedAlternative(w domain.InferenceWorkload, latency, perSecond decimal.Decimal) domain.DedicatedAlternative {
	price, ok := e.rates.Price(w.Platform, w.GPU, domain.PerHour)
	if !ok {
		return domain.DedicatedAlternative{}
	}

	days := decimal.NewFromInt(daysPerMonth)
	monthly := price.Amount.Mul(decimal.NewFromInt(hoursPerDay)).Mul(days)
	alt := domain.DedicatedAlternative{Available: true, MonthlyCost: monthly}

	costPerRequestMonth := days.Mul(latency).Mul(perSecond)
	if costPerRequestMonth.IsPositive() {
		breakEven := monthly.Div(costPerRequestMonth)
		alt.BreakEvenRequestsPerDay = &breakEven
	}
	return alt
}
