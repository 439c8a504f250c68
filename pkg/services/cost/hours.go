package cost

import (
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// ConvertBudget turns a budget into GPU-hours on every platform offering the GPU.
func (e *Engine) ConvertBudget(budget decimal.Decimal, gpu string) (*domain.HoursConversion, error) {
	gpu = domain.NormalizeID(gpu)
	if !budget.IsPositive() {
		return nil, &domain.ValidationError{Field: "budget", Value: budget, Reason: "must be positive"}
	}

	conversion := &domain.HoursConversion{GPU: gpu, Budget: budget}
	for _, p := range e.rates.Platforms() {
		rate, err := hourlyRate(e.rates, p.ID, gpu)
		if err != nil || !rate.IsPositive() {
			continue
		}

		line := domain.PlatformHours{
			Platform:   p.ID,
			HourlyRate: rate,
			Hours:      budget.Div(rate),
		}
		if p.HasFreeCredits() {
			line.FreeCreditHours = p.FreeCredits.Div(rate)
		}
		conversion.Platforms = append(conversion.Platforms, line)
	}

	if len(conversion.Platforms) == 0 {
		return nil, &domain.LookupError{GPU: gpu, Reason: "gpu not offered by any platform"}
	}
	return conversion, nil
}
