package cost

import (
	"fmt"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/store/throughput"
	"github.com/shopspring/decimal"
)

// PEFTCostReduction is the flat share of total cost assumed to be saved by
// enabling PEFT. It only feeds the what-if figure and is independent of the
// throughput-based PEFT fallback used for elapsed time.
var PEFTCostReduction = decimal.New(5, -1)

const (
	fullFineTuneBytesPerParam = 16
	peftBytesPerParam         = 1
)

var vramOverhead = decimal.New(12, -1)

func (e *Engine) EstimateTraining(w domain.TrainingWorkload) (*domain.TrainingEstimate, error) {
	w.GPU = domain.NormalizeID(w.GPU)
	w.Platform = domain.NormalizeID(w.Platform)
	if size, err := domain.ParseModelSize(string(w.ModelSize)); err == nil {
		w.ModelSize = size
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	platform, err := lookupPlatform(e.rates, w.Platform)
	if err != nil {
		return nil, err
	}

	totalTokens := w.TotalTokens()
	res, tokensPerSecond := effectiveThroughput(e.throughput, w)
	if !tokensPerSecond.IsPositive() {
		return nil, &domain.ComputationError{
			Quantity: "training time",
			Reason:   fmt.Sprintf("throughput for %s/%s is %s tokens/sec", w.GPU, w.ModelSize, tokensPerSecond),
		}
	}

	seconds := decimal.NewFromInt(totalTokens).Div(tokensPerSecond)
	hours := seconds.Div(decimal.NewFromInt(secondsPerHour))

	rate, err := hourlyRate(e.rates, w.Platform, w.GPU)
	if err != nil {
		return nil, err
	}

	computeCost := hours.Mul(rate)
	breakdown := domain.CostBreakdown{
		ComputeCost: computeCost,
		StorageCost: domain.StorageCost,
		TotalCost:   computeCost.Add(domain.StorageCost),
	}

	estimate := &domain.TrainingEstimate{
		Workload:             w,
		TotalTokens:          totalTokens,
		Throughput:           tokensPerSecond,
		TrainingSeconds:      seconds,
		EstimatedHours:       hours,
		HourlyRate:           rate,
		Cost:                 breakdown,
		Optimizations:        peftWhatIf(breakdown.TotalCost, w.PEFT),
		AlternativePlatforms: e.alternativePlatforms(hours, w),
		CoveredByFreeCredits: platform.HasFreeCredits() && breakdown.TotalCost.LessThanOrEqual(platform.FreeCredits),
		Warnings:             e.trainingWarnings(w, res),
	}

	return estimate, nil
}

// peftWhatIf applies the flat reduction heuristic. When PEFT is already on
// there is nothing left to save.
func peftWhatIf(totalCost decimal.Decimal, peft bool) domain.PEFTComparison {
	if peft {
		return domain.PEFTComparison{WithPEFT: totalCost, Savings: decimal.Zero}
	}
	withPEFT := totalCost.Mul(decimal.NewFromInt(1).Sub(PEFTCostReduction))
	return domain.PEFTComparison{WithPEFT: withPEFT, Savings: totalCost.Sub(withPEFT)}
}

func (e *Engine) alternativePlatforms(hours decimal.Decimal, w domain.TrainingWorkload) []domain.PlatformCost {
	if !hours.IsPositive() {
		return nil
	}
	result, err := e.Compare(hours, w.GPU)
	if err != nil {
		return nil
	}

	var alternatives []domain.PlatformCost
	for _, p := range result.Available() {
		if p.Platform == w.Platform {
			continue
		}
		p.Cost = p.Cost.Add(domain.StorageCost)
		alternatives = append(alternatives, p)
	}
	return alternatives
}

func (e *Engine) trainingWarnings(w domain.TrainingWorkload, res throughput.Resolution) []string {
	var warnings []string

	switch res.Source {
	case throughput.SourceDefault:
		warnings = append(warnings, fmt.Sprintf(
			"no throughput measurement for %s on %s; assuming %d tokens/sec",
			w.ModelSize, w.GPU, throughput.DefaultTokensPerSecond))
	case throughput.SourcePEFTFallback:
		warnings = append(warnings, fmt.Sprintf(
			"no PEFT throughput measurement for %s on %s; using %dx the full fine-tuning rate",
			w.ModelSize, w.GPU, throughput.PEFTFallbackFactor))
	}

	if gpu, ok := e.rates.GPU(w.GPU); ok {
		bytesPerParam := int64(fullFineTuneBytesPerParam)
		if w.PEFT {
			bytesPerParam = peftBytesPerParam
		}
		required := w.ModelSize.ParamsBillions().Mul(decimal.NewFromInt(bytesPerParam)).Mul(vramOverhead)
		if required.GreaterThan(decimal.NewFromInt(int64(gpu.VRAMGB))) {
			warnings = append(warnings, fmt.Sprintf(
				"%s needs about %s GB of GPU memory but %s has %d GB",
				w.ModelSize, required.Round(1), gpu.ID, gpu.VRAMGB))
		}
	}

	return warnings
}
