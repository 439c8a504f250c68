package cost

import (
	"testing"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/store/pricing"
	"github.com/de-tools/gpu-atlas/pkg/store/throughput"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_A100Scenario(t *testing.T) {
	// Given
	engine := NewDefaultEngine()

	// When
	result, err := engine.Compare(decimal.NewFromInt(4), "a100-40gb")

	// Then
	require.NoError(t, err)
	require.Len(t, result.Platforms, 3)

	costs := map[string]string{}
	for _, p := range result.Platforms {
		require.True(t, p.Available, p.Platform)
		costs[p.Platform] = p.Cost.StringFixed(2)
	}
	assert.Equal(t, map[string]string{"modal": "8.40", "lambda": "5.16", "runpod": "8.00"}, costs)

	assert.Equal(t, "lambda", result.Cheapest.Platform)
	assert.True(t, result.Cheapest.Savings.IsZero())
	assertDecimal(t, 38.5714, result.Platforms[0].SavingsPercentage, 1e-4)
	assertDecimal(t, 3.24, result.Platforms[0].Savings, 1e-12)
}

func TestCompare_SkipsUnavailablePlatforms(t *testing.T) {
	engine := NewDefaultEngine()

	result, err := engine.Compare(decimal.NewFromInt(10), "t4")

	require.NoError(t, err)
	require.Len(t, result.Platforms, 3)
	assert.False(t, result.Platforms[1].Available)
	assert.Equal(t, "lambda", result.Platforms[1].Platform)
	assert.Len(t, result.Available(), 2)
	assert.Equal(t, "runpod", result.Cheapest.Platform)
}

func TestCompare_TieGoesToFirstPlatform(t *testing.T) {
	data := pricing.Data{
		GPUs: []pricing.GPUData{{ID: "h100", VRAMGB: 80}},
		Platforms: []pricing.PlatformData{
			{ID: "zeta", Granularity: "per-hour", Billing: "dedicated", Rates: map[string]pricing.RateData{"h100": {PerHour: "2.00"}}},
			{ID: "alpha", Granularity: "per-hour", Billing: "dedicated", Rates: map[string]pricing.RateData{"h100": {PerHour: "2.00"}}},
		},
	}
	store, err := pricing.NewStore(data)
	require.NoError(t, err)
	engine := NewEngine(store, throughput.NewDefaultModel())

	result, err := engine.Compare(decimal.NewFromInt(3), "h100")

	require.NoError(t, err)
	assert.Equal(t, "zeta", result.Cheapest.Platform)
	assert.True(t, result.Platforms[1].SavingsPercentage.IsZero())
}

func TestCompare_Errors(t *testing.T) {
	engine := NewDefaultEngine()

	_, err := engine.Compare(decimal.NewFromInt(4), "v100")
	assert.ErrorIs(t, err, domain.ErrLookup)

	_, err = engine.Compare(decimal.Zero, "t4")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = engine.Compare(decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConvertBudget(t *testing.T) {
	engine := NewDefaultEngine()

	conv, err := engine.ConvertBudget(decimal.NewFromInt(100), "a100-40gb")

	require.NoError(t, err)
	require.Len(t, conv.Platforms, 3)
	assert.Equal(t, "modal", conv.Platforms[0].Platform)
	assertDecimal(t, 100/2.10, conv.Platforms[0].Hours, 1e-9)
	assertDecimal(t, 30/2.10, conv.Platforms[0].FreeCreditHours, 1e-9)
	assertDecimal(t, 100/1.29, conv.Platforms[1].Hours, 1e-9)
	assert.True(t, conv.Platforms[1].FreeCreditHours.IsZero())
	assertDecimal(t, 50, conv.Platforms[2].Hours, 1e-12)
}

func TestConvertBudget_Errors(t *testing.T) {
	engine := NewDefaultEngine()

	_, err := engine.ConvertBudget(decimal.NewFromInt(-5), "t4")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = engine.ConvertBudget(decimal.NewFromInt(5), "tpu-v5")
	assert.ErrorIs(t, err, domain.ErrLookup)
}
