package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// GPU is an accelerator type offered by one or more platforms.
type GPU struct {
	ID     string // a100-40gb
	VRAMGB int    // 40
}

// Granularity is the billing increment a price is expressed in.
type Granularity string

const (
	PerSecond Granularity = "per-second"
	PerMinute Granularity = "per-minute"
	PerHour   Granularity = "per-hour"
)

// Seconds returns the length of one billing increment.
func (g Granularity) Seconds() int64 {
	switch g {
	case PerSecond:
		return 1
	case PerMinute:
		return 60
	case PerHour:
		return 3600
	default:
		return 0
	}
}

// BillingModel tells whether a platform bills per compute used or per reserved instance time.
type BillingModel string

const (
	Serverless BillingModel = "serverless"
	Dedicated  BillingModel = "dedicated"
)

// Platform is a cloud GPU provider.
type Platform struct {
	ID          string          // modal
	Granularity Granularity     // per-second
	Billing     BillingModel    // serverless
	FreeCredits decimal.Decimal // monthly allowance, zero when none
}

// HasFreeCredits reports whether the platform grants a free-credit allowance.
func (p Platform) HasFreeCredits() bool {
	return p.FreeCredits.IsPositive()
}

// ModelSize is the parameter count class of the model being trained.
type ModelSize string

const (
	Size125M ModelSize = "125M"
	Size350M ModelSize = "350M"
	Size1B   ModelSize = "1B"
	Size3B   ModelSize = "3B"
	Size7B   ModelSize = "7B"
	Size13B  ModelSize = "13B"
	Size30B  ModelSize = "30B"
	Size70B  ModelSize = "70B"
)

// ModelSizes lists the supported sizes, smallest first.
func ModelSizes() []ModelSize {
	return []ModelSize{Size125M, Size350M, Size1B, Size3B, Size7B, Size13B, Size30B, Size70B}
}

// ParseModelSize accepts sizes like "7B" or "7b".
func ParseModelSize(s string) (ModelSize, error) {
	size := ModelSize(strings.ToUpper(strings.TrimSpace(s)))
	if !slices.Contains(ModelSizes(), size) {
		return "", &ValidationError{
			Field:  "model_size",
			Value:  s,
			Reason: fmt.Sprintf("unsupported model size, expected one of %v", ModelSizes()),
		}
	}
	return size, nil
}

// ParamsBillions returns the parameter count in billions, zero for unknown sizes.
func (m ModelSize) ParamsBillions() decimal.Decimal {
	switch m {
	case Size125M:
		return decimal.New(125, -3)
	case Size350M:
		return decimal.New(35, -2)
	case Size1B:
		return decimal.NewFromInt(1)
	case Size3B:
		return decimal.NewFromInt(3)
	case Size7B:
		return decimal.NewFromInt(7)
	case Size13B:
		return decimal.NewFromInt(13)
	case Size30B:
		return decimal.NewFromInt(30)
	case Size70B:
		return decimal.NewFromInt(70)
	default:
		return decimal.Zero
	}
}

// Deployment is how an inference workload is served.
type Deployment string

const (
	DeployServerless Deployment = "serverless"
	DeployDedicated  Deployment = "dedicated"
)

// ParseDeployment accepts "serverless" or "dedicated".
func ParseDeployment(s string) (Deployment, error) {
	switch d := Deployment(strings.ToLower(strings.TrimSpace(s))); d {
	case DeployServerless, DeployDedicated:
		return d, nil
	default:
		return "", &ValidationError{
			Field:  "deployment",
			Value:  s,
			Reason: "expected serverless or dedicated",
		}
	}
}
