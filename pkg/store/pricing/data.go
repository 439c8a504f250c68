package pricing

import (
	"fmt"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Data is the raw catalog table. Amounts are decimal strings so that
// values read from a config file keep their exact representation.
type Data struct {
	GPUs      []GPUData      `mapstructure:"gpus" yaml:"gpus"`
	Platforms []PlatformData `mapstructure:"platforms" yaml:"platforms"`
}

type GPUData struct {
	ID     string `mapstructure:"id" yaml:"id"`
	VRAMGB int    `mapstructure:"vram_gb" yaml:"vram_gb"`
}

type PlatformData struct {
	ID          string              `mapstructure:"id" yaml:"id"`
	Granularity string              `mapstructure:"granularity" yaml:"granularity"`
	Billing     string              `mapstructure:"billing" yaml:"billing"`
	FreeCredits string              `mapstructure:"free_credits" yaml:"free_credits,omitempty"`
	Rates       map[string]RateData `mapstructure:"rates" yaml:"rates"`
}

type RateData struct {
	PerSecond string `mapstructure:"per_second" yaml:"per_second,omitempty"`
	PerHour   string `mapstructure:"per_hour" yaml:"per_hour,omitempty"`
}

// DefaultData returns a fresh copy of the built-in tables.
func DefaultData() Data {
	return Data{
		GPUs: []GPUData{
			{ID: "t4", VRAMGB: 16},
			{ID: "l4", VRAMGB: 24},
			{ID: "a10g", VRAMGB: 24},
			{ID: "a100-40gb", VRAMGB: 40},
			{ID: "a100-80gb", VRAMGB: 80},
			{ID: "h100", VRAMGB: 80},
		},
		Platforms: []PlatformData{
			{
				ID:          "modal",
				Granularity: string(domain.PerSecond),
				Billing:     string(domain.Serverless),
				FreeCredits: "30",
				Rates: map[string]RateData{
					"t4":        {PerSecond: "0.000164", PerHour: "0.59"},
					"l4":        {PerSecond: "0.000222", PerHour: "0.80"},
					"a10g":      {PerSecond: "0.000306", PerHour: "1.10"},
					"a100-40gb": {PerSecond: "0.000583", PerHour: "2.10"},
					"a100-80gb": {PerSecond: "0.000694", PerHour: "2.50"},
					"h100":      {PerSecond: "0.001097", PerHour: "3.95"},
				},
			},
			{
				ID:          "lambda",
				Granularity: string(domain.PerHour),
				Billing:     string(domain.Dedicated),
				Rates: map[string]RateData{
					"a10g":      {PerHour: "0.75"},
					"a100-40gb": {PerHour: "1.29"},
					"a100-80gb": {PerHour: "1.79"},
					"h100":      {PerHour: "2.49"},
				},
			},
			{
				ID:          "runpod",
				Granularity: string(domain.PerMinute),
				Billing:     string(domain.Dedicated),
				Rates: map[string]RateData{
					"t4":        {PerHour: "0.40"},
					"l4":        {PerHour: "0.69"},
					"a100-40gb": {PerHour: "2.00"},
					"a100-80gb": {PerHour: "2.29"},
					"h100":      {PerHour: "3.29"},
				},
			},
		},
	}
}

func (p PlatformData) toDomain() (domain.Platform, error) {
	id := domain.NormalizeID(p.ID)
	if id == "" {
		return domain.Platform{}, fmt.Errorf("platform id cannot be empty")
	}

	granularity := domain.Granularity(p.Granularity)
	if granularity.Seconds() == 0 {
		return domain.Platform{}, fmt.Errorf("platform %s: unsupported granularity %q", id, p.Granularity)
	}

	billing := domain.BillingModel(p.Billing)
	if billing != domain.Serverless && billing != domain.Dedicated {
		return domain.Platform{}, fmt.Errorf("platform %s: unsupported billing model %q", id, p.Billing)
	}

	credits := decimal.Zero
	if p.FreeCredits != "" {
		c, err := parseAmount(p.FreeCredits)
		if err != nil {
			return domain.Platform{}, fmt.Errorf("platform %s: free credits: %w", id, err)
		}
		credits = c
	}

	return domain.Platform{
		ID:          id,
		Granularity: granularity,
		Billing:     billing,
		FreeCredits: credits,
	}, nil
}

func (r RateData) toDomain(platform, gpu string) (domain.RateEntry, error) {
	entry := domain.RateEntry{Platform: platform, GPU: gpu}
	if r.PerSecond == "" && r.PerHour == "" {
		return entry, fmt.Errorf("platform %s: gpu %s has no price", platform, gpu)
	}
	if r.PerSecond != "" {
		v, err := parseAmount(r.PerSecond)
		if err != nil {
			return entry, fmt.Errorf("platform %s: gpu %s per-second price: %w", platform, gpu, err)
		}
		entry.PerSecond = &v
	}
	if r.PerHour != "" {
		v, err := parseAmount(r.PerHour)
		if err != nil {
			return entry, fmt.Errorf("platform %s: gpu %s per-hour price: %w", platform, gpu, err)
		}
		entry.PerHour = &v
	}
	return entry, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative, got %s", s)
	}
	return v, nil
}
