package adapters

import (
	"fmt"

	"github.com/de-tools/gpu-atlas/pkg/models/api"
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/store/pricing"
	"github.com/de-tools/gpu-atlas/pkg/store/throughput"
	"github.com/shopspring/decimal"
)

// wirePrecision is the number of decimal places kept when leaving the engine.
const wirePrecision = 8

func toFloat(d decimal.Decimal) float64 {
	return d.Round(wirePrecision).InexactFloat64()
}

func toFloatPtr(d decimal.Decimal) *float64 {
	f := toFloat(d)
	return &f
}

func MapTrainingRequestApiToDomain(req api.TrainingRequest) domain.TrainingWorkload {
	w := domain.NewTrainingWorkload(domain.ModelSize(req.ModelSize), req.DatasetSize, req.Epochs, req.GPU, req.Platform)
	w.PEFT = req.PEFT
	if req.MixedPrecision != nil {
		w.MixedPrecision = *req.MixedPrecision
	}
	return w
}

func MapInferenceRequestApiToDomain(req api.InferenceRequest) domain.InferenceWorkload {
	return domain.InferenceWorkload{
		RequestsPerDay:    req.RequestsPerDay,
		AvgLatencySeconds: req.AvgLatencySeconds,
		GPU:               domain.NormalizeID(req.GPU),
		Platform:          domain.NormalizeID(req.Platform),
		Deployment:        domain.Deployment(req.Deployment),
		BatchInference:    req.BatchInference,
	}
}

func MapTrainingEstimateDomainToApi(est *domain.TrainingEstimate) api.TrainingEstimate {
	mp := est.Workload.MixedPrecision
	out := api.TrainingEstimate{
		Workload: api.TrainingRequest{
			ModelSize:      string(est.Workload.ModelSize),
			DatasetSize:    est.Workload.DatasetSize,
			Epochs:         est.Workload.Epochs,
			GPU:            est.Workload.GPU,
			Platform:       est.Workload.Platform,
			PEFT:           est.Workload.PEFT,
			MixedPrecision: &mp,
		},
		TotalTokens:     est.TotalTokens,
		TokensPerSecond: toFloat(est.Throughput),
		EstimatedHours:  toFloat(est.EstimatedHours),
		HourlyRate:      toFloat(est.HourlyRate),
		CostBreakdown: api.CostBreakdown{
			ComputeCost: toFloat(est.Cost.ComputeCost),
			StorageCost: toFloat(est.Cost.StorageCost),
			TotalCost:   toFloat(est.Cost.TotalCost),
		},
		CostOptimizations: api.CostOptimizations{
			WithPEFT: toFloat(est.Optimizations.WithPEFT),
			Savings:  toFloat(est.Optimizations.Savings),
		},
		AlternativePlatforms: make(map[string]float64, len(est.AlternativePlatforms)),
		CoveredByFreeCredits: est.CoveredByFreeCredits,
		Warnings:             est.Warnings,
	}
	for _, alt := range est.AlternativePlatforms {
		out.AlternativePlatforms[alt.Platform] = toFloat(alt.Cost)
	}
	return out
}

// ScalingKey names a scaling projection in the wire format.
func ScalingKey(requestsPerDay int64) string {
	return fmt.Sprintf("%d_requests_day", requestsPerDay)
}

func MapInferenceEstimateDomainToApi(est *domain.InferenceEstimate) api.InferenceEstimate {
	out := api.InferenceEstimate{
		Workload: api.InferenceRequest{
			RequestsPerDay:    est.Workload.RequestsPerDay,
			AvgLatencySeconds: est.Workload.AvgLatencySeconds,
			GPU:               est.Workload.GPU,
			Platform:          est.Workload.Platform,
			Deployment:        string(est.Workload.Deployment),
			BatchInference:    est.Workload.BatchInference,
		},
		EffectiveLatency: toFloat(est.EffectiveLatency),
		Rate:             toFloat(est.Rate.Amount),
		RateUnit:         string(est.Rate.Per),
		CostBreakdown: api.InferenceCostBreakdown{
			DailyComputeSeconds: toFloat(est.Cost.DailyComputeSeconds),
			DailyCost:           toFloat(est.Cost.DailyCost),
			MonthlyCost:         toFloat(est.Cost.MonthlyCost),
			CostPerRequest:      toFloat(est.Cost.CostPerRequest),
		},
		ScalingAnalysis: make(map[string]api.ScalingPoint, len(est.Scaling)),
	}
	for _, p := range est.Scaling {
		out.ScalingAnalysis[ScalingKey(p.RequestsPerDay)] = api.ScalingPoint{
			DailyCost:   toFloat(p.DailyCost),
			MonthlyCost: toFloat(p.MonthlyCost),
		}
	}
	if alt := est.DedicatedAlternative; alt.Available {
		out.DedicatedAlternative.MonthlyCost = toFloatPtr(alt.MonthlyCost)
		if alt.BreakEvenRequestsPerDay != nil {
			out.DedicatedAlternative.BreakEvenRequestsDay = toFloatPtr(*alt.BreakEvenRequestsPerDay)
		}
	}
	return out
}

func MapComparisonDomainToApi(res *domain.ComparisonResult) api.ComparisonResult {
	out := api.ComparisonResult{
		GPU:   res.GPU,
		Hours: toFloat(res.Hours),
		Cheapest: api.CheapestPlatform{
			Platform: res.Cheapest.Platform,
			Cost:     toFloat(res.Cheapest.Cost),
		},
	}
	for _, p := range res.Platforms {
		line := api.PlatformCost{Platform: p.Platform, Available: p.Available}
		if p.Available {
			line.HourlyRate = toFloatPtr(p.HourlyRate)
			line.Cost = toFloatPtr(p.Cost)
			line.Savings = toFloatPtr(p.Savings)
			line.SavingsPercentage = toFloatPtr(p.SavingsPercentage)
		}
		out.Platforms = append(out.Platforms, line)
	}
	return out
}

func MapHoursConversionDomainToApi(conv *domain.HoursConversion) api.HoursConversion {
	out := api.HoursConversion{GPU: conv.GPU, Budget: toFloat(conv.Budget)}
	for _, p := range conv.Platforms {
		out.Platforms = append(out.Platforms, api.PlatformHours{
			Platform:        p.Platform,
			HourlyRate:      toFloat(p.HourlyRate),
			Hours:           toFloat(p.Hours),
			FreeCreditHours: toFloat(p.FreeCreditHours),
		})
	}
	return out
}

func MapCatalogToApi(store pricing.Store, tp throughput.Model) api.Catalog {
	var out api.Catalog
	for _, p := range store.Platforms() {
		out.Platforms = append(out.Platforms, api.Platform{
			ID:          p.ID,
			Billing:     string(p.Billing),
			Granularity: string(p.Granularity),
			FreeCredits: toFloat(p.FreeCredits),
		})
	}
	for _, g := range store.GPUs() {
		out.GPUs = append(out.GPUs, api.GPU{ID: g.ID, VRAMGB: g.VRAMGB})
	}
	for _, r := range store.Rates() {
		rate := api.Rate{Platform: r.Platform, GPU: r.GPU}
		if r.PerSecond != nil {
			rate.PerSecond = toFloatPtr(*r.PerSecond)
		}
		if r.PerHour != nil {
			rate.PerHour = toFloatPtr(*r.PerHour)
		}
		out.Rates = append(out.Rates, rate)
	}
	for _, e := range tp.Entries() {
		out.Throughput = append(out.Throughput, api.Throughput{
			GPU:             e.GPU,
			ModelSize:       string(e.ModelSize),
			Tier:            string(e.Tier),
			TokensPerSecond: toFloat(e.TokensPerSecond),
		})
	}
	return out
}
