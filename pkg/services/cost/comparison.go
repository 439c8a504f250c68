package cost

import (
	"errors"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Compare ranks every platform by the cost of running the GPU for the given
// hours. Platforms that do not offer the GPU are kept as unavailable and
// excluded from ranking. Ties go to the platform listed first in the catalog.
func (e *Engine) Compare(hours decimal.Decimal, gpu string) (*domain.ComparisonResult, error) {
	gpu = domain.NormalizeID(gpu)
	if !hours.IsPositive() {
		return nil, &domain.ValidationError{Field: "training_hours", Value: hours, Reason: "must be positive"}
	}
	if gpu == "" {
		return nil, &domain.ValidationError{Field: "gpu", Value: `""`, Reason: "is required"}
	}

	result := &domain.ComparisonResult{GPU: gpu, Hours: hours}
	cheapest := -1

	for _, p := range e.rates.Platforms() {
		line := domain.PlatformCost{Platform: p.ID}

		rate, err := hourlyRate(e.rates, p.ID, gpu)
		switch {
		case errors.Is(err, domain.ErrLookup):
			result.Platforms = append(result.Platforms, line)
			continue
		case err != nil:
			return nil, err
		}

		line.Available = true
		line.HourlyRate = rate
		line.Cost = rate.Mul(hours)
		result.Platforms = append(result.Platforms, line)

		if cheapest < 0 || line.Cost.LessThan(result.Platforms[cheapest].Cost) {
			cheapest = len(result.Platforms) - 1
		}
	}

	if cheapest < 0 {
		return nil, &domain.LookupError{GPU: gpu, Reason: "gpu not offered by any platform"}
	}

	best := result.Platforms[cheapest].Cost
	for i := range result.Platforms {
		line := &result.Platforms[i]
		if !line.Available {
			continue
		}
		line.Savings = line.Cost.Sub(best)
		if line.Cost.IsPositive() {
			line.SavingsPercentage = line.Savings.Div(line.Cost).Mul(hundred)
		}
	}
	result.Cheapest = result.Platforms[cheapest]

	return result, nil
}
