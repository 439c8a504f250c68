package cost

import (
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/store/throughput"
	"github.com/shopspring/decimal"
)

// MixedPrecisionFactor scales throughput when FP16/BF16 training is enabled.
const MixedPrecisionFactor = 2

// effectiveThroughput applies the modifiers in order: PEFT tier selection
// inside the throughput model first, then mixed precision scaling.
func effectiveThroughput(tp throughput.Model, w domain.TrainingWorkload) (throughput.Resolution, decimal.Decimal) {
	res := tp.Resolve(w.GPU, w.ModelSize, w.PEFT)
	return res, applyMixedPrecision(res.TokensPerSecond, w.MixedPrecision)
}

func applyMixedPrecision(tokensPerSecond decimal.Decimal, enabled bool) decimal.Decimal {
	if !enabled {
		return tokensPerSecond
	}
	return tokensPerSecond.Mul(decimal.NewFromInt(MixedPrecisionFactor))
}
