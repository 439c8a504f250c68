package domain

import "github.com/shopspring/decimal"

// StorageCost is the flat checkpoint storage charge added to every training estimate.
var StorageCost = decimal.New(5, -2)

// Price is an amount of currency per billing increment.
type Price struct {
	Amount decimal.Decimal
	Per    Granularity
}

// RateEntry lists the prices a platform publishes for one GPU.
// Either price may be absent; a platform can publish both.
type RateEntry struct {
	Platform  string
	GPU       string
	PerSecond *decimal.Decimal
	PerHour   *decimal.Decimal
}

// Prices returns the published prices, per-second first.
func (r RateEntry) Prices() []Price {
	var prices []Price
	if r.PerSecond != nil {
		prices = append(prices, Price{Amount: *r.PerSecond, Per: PerSecond})
	}
	if r.PerHour != nil {
		prices = append(prices, Price{Amount: *r.PerHour, Per: PerHour})
	}
	return prices
}

// CostBreakdown splits an estimate into compute and storage parts.
type CostBreakdown struct {
	ComputeCost decimal.Decimal
	StorageCost decimal.Decimal
	TotalCost   decimal.Decimal
}

// PEFTComparison is the flat-heuristic what-if figure for enabling PEFT.
type PEFTComparison struct {
	WithPEFT decimal.Decimal
	Savings  decimal.Decimal
}

// TrainingEstimate is the result of estimating one training workload.
type TrainingEstimate struct {
	Workload             TrainingWorkload
	TotalTokens          int64
	Throughput           decimal.Decimal // tokens/sec after modifiers
	TrainingSeconds      decimal.Decimal
	EstimatedHours       decimal.Decimal
	HourlyRate           decimal.Decimal
	Cost                 CostBreakdown
	Optimizations        PEFTComparison
	AlternativePlatforms []PlatformCost
	CoveredByFreeCredits bool
	Warnings             []string
}

// InferenceCost is the per-day and per-month cost of serving a request volume.
type InferenceCost struct {
	DailyComputeSeconds decimal.Decimal
	DailyCost           decimal.Decimal
	MonthlyCost         decimal.Decimal
	CostPerRequest      decimal.Decimal
}

// ScalingPoint projects cost at another request volume.
type ScalingPoint struct {
	RequestsPerDay int64
	DailyCost      decimal.Decimal
	MonthlyCost    decimal.Decimal
}

// DedicatedAlternative compares a serverless deployment with an always-on instance.
// BreakEvenRequestsPerDay is nil when no dedicated price exists or the workload is already dedicated.
type DedicatedAlternative struct {
	Available               bool
	MonthlyCost             decimal.Decimal
	BreakEvenRequestsPerDay *decimal.Decimal
}

// InferenceEstimate is the result of estimating one inference workload.
type InferenceEstimate struct {
	Workload             InferenceWorkload
	EffectiveLatency     decimal.Decimal // seconds per request after batching
	Rate                 Price
	Cost                 InferenceCost
	Scaling              []ScalingPoint
	DedicatedAlternative DedicatedAlternative
}

// PlatformCost is one platform's line in a comparison.
type PlatformCost struct {
	Platform          string
	Available         bool
	HourlyRate        decimal.Decimal
	Cost              decimal.Decimal
	Savings           decimal.Decimal // relative to the cheapest platform
	SavingsPercentage decimal.Decimal
}

// ComparisonResult ranks platforms for the same GPU-hours.
type ComparisonResult struct {
	GPU       string
	Hours     decimal.Decimal
	Platforms []PlatformCost // catalog order, unavailable platforms included
	Cheapest  PlatformCost
}

// Available returns the platforms that offer the GPU, in catalog order.
func (c ComparisonResult) Available() []PlatformCost {
	var out []PlatformCost
	for _, p := range c.Platforms {
		if p.Available {
			out = append(out, p)
		}
	}
	return out
}

// PlatformHours is how long a budget lasts on one platform.
type PlatformHours struct {
	Platform        string
	HourlyRate      decimal.Decimal
	Hours           decimal.Decimal
	FreeCreditHours decimal.Decimal
}

// HoursConversion converts a budget into GPU-hours per platform.
type HoursConversion struct {
	GPU       string
	Budget    decimal.Decimal
	Platforms []PlatformHours
}
