package cost

import (
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/store/pricing"
	"github.com/shopspring/decimal"
)

const (
	secondsPerHour = 3600
	hoursPerDay    = 24
	daysPerMonth   = 30
)

func lookupPlatform(rates pricing.Store, id string) (domain.Platform, error) {
	p, ok := rates.Platform(id)
	if !ok {
		return domain.Platform{}, &domain.LookupError{Platform: id, Reason: "unknown platform"}
	}
	return p, nil
}

// hourlyRate converts whatever the platform publishes into a per-hour rate.
func hourlyRate(rates pricing.Store, platform, gpu string) (decimal.Decimal, error) {
	if _, err := lookupPlatform(rates, platform); err != nil {
		return decimal.Zero, err
	}
	if price, ok := rates.Price(platform, gpu, domain.PerHour); ok {
		return price.Amount, nil
	}
	if price, ok := rates.Price(platform, gpu, domain.PerSecond); ok {
		return price.Amount.Mul(decimal.NewFromInt(secondsPerHour)), nil
	}
	return decimal.Zero, &domain.LookupError{Platform: platform, GPU: gpu, Reason: "gpu not available on platform"}
}

// perSecondRate returns the serverless per-second price. Only serverless
// platforms publishing a per-second price qualify.
func perSecondRate(rates pricing.Store, platform, gpu string) (decimal.Decimal, error) {
	p, err := lookupPlatform(rates, platform)
	if err != nil {
		return decimal.Zero, err
	}
	if p.Billing != domain.Serverless {
		return decimal.Zero, &domain.ValidationError{
			Field:  "deployment",
			Value:  domain.DeployServerless,
			Reason: "platform " + p.ID + " only offers dedicated instances",
		}
	}
	if _, ok := rates.Rate(platform, gpu); !ok {
		return decimal.Zero, &domain.LookupError{Platform: platform, GPU: gpu, Reason: "gpu not available on platform"}
	}
	price, ok := rates.Price(platform, gpu, domain.PerSecond)
	if !ok {
		return decimal.Zero, &domain.ValidationError{
			Field:  "deployment",
			Value:  domain.DeployServerless,
			Reason: "platform " + p.ID + " has no per-second price for " + gpu,
		}
	}
	return price.Amount, nil
}
