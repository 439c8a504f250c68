package cost

import (
	"math"
	"testing"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

// offeredPairs lists every (platform, gpu) pair the default catalog prices.
func offeredPairs(e *Engine) [][2]string {
	var pairs [][2]string
	for _, r := range e.Catalog().Rates() {
		pairs = append(pairs, [2]string{r.Platform, r.GPU})
	}
	return pairs
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestTrainingProperties(t *testing.T) {
	engine := NewDefaultEngine()
	pairs := offeredPairs(engine)
	sizes := domain.ModelSizes()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	workload := func(pair, size int, dataset, epochs int64, peft, mp bool) domain.TrainingWorkload {
		w := domain.NewTrainingWorkload(sizes[size], dataset, epochs, pairs[pair][1], pairs[pair][0])
		w.PEFT = peft
		w.MixedPrecision = mp
		return w
	}

	properties.Property("total cost never drops below the storage floor", prop.ForAll(
		func(pair, size int, dataset, epochs int64, peft, mp bool) bool {
			est, err := engine.EstimateTraining(workload(pair, size, dataset, epochs, peft, mp))
			return err == nil && est.Cost.TotalCost.GreaterThanOrEqual(domain.StorageCost)
		},
		gen.IntRange(0, len(pairs)-1),
		gen.IntRange(0, len(sizes)-1),
		gen.Int64Range(1, 1_000_000),
		gen.Int64Range(1, 20),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("scaling epochs by k scales compute cost by k", prop.ForAll(
		func(pair, size int, dataset, epochs, k int64) bool {
			base, err := engine.EstimateTraining(workload(pair, size, dataset, epochs, true, true))
			if err != nil {
				return false
			}
			scaled, err := engine.EstimateTraining(workload(pair, size, dataset, epochs*k, true, true))
			if err != nil {
				return false
			}
			want := base.Cost.ComputeCost.Mul(decimal.NewFromInt(k)).InexactFloat64()
			return closeEnough(want, scaled.Cost.ComputeCost.InexactFloat64())
		},
		gen.IntRange(0, len(pairs)-1),
		gen.IntRange(0, len(sizes)-1),
		gen.Int64Range(1, 100_000),
		gen.Int64Range(1, 10),
		gen.Int64Range(1, 8),
	))

	properties.Property("estimates are idempotent", prop.ForAll(
		func(pair, size int, dataset int64) bool {
			w := workload(pair, size, dataset, 2, false, true)
			a, errA := engine.EstimateTraining(w)
			b, errB := engine.EstimateTraining(w)
			return errA == nil && errB == nil &&
				a.Cost.TotalCost.Equal(b.Cost.TotalCost) &&
				a.EstimatedHours.Equal(b.EstimatedHours) &&
				a.Optimizations.WithPEFT.Equal(b.Optimizations.WithPEFT)
		},
		gen.IntRange(0, len(pairs)-1),
		gen.IntRange(0, len(sizes)-1),
		gen.Int64Range(1, 1_000_000),
	))

	properties.TestingRun(t)
}

func TestInferenceBatchLaw(t *testing.T) {
	engine := NewDefaultEngine()
	pairs := offeredPairs(engine)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("batching never raises monthly cost", prop.ForAll(
		func(pair int, requests int64, latency float64, dedicated bool) bool {
			w := domain.InferenceWorkload{
				RequestsPerDay:    requests,
				AvgLatencySeconds: latency,
				GPU:               pairs[pair][1],
				Platform:          pairs[pair][0],
				Deployment:        domain.DeployServerless,
			}
			if dedicated {
				w.Deployment = domain.DeployDedicated
			}

			single, err := engine.EstimateInference(w)
			if err != nil {
				// serverless on a dedicated-only platform
				return w.Deployment == domain.DeployServerless
			}
			w.BatchInference = true
			batched, err := engine.EstimateInference(w)
			if err != nil {
				return false
			}
			return batched.Cost.MonthlyCost.LessThanOrEqual(single.Cost.MonthlyCost)
		},
		gen.IntRange(0, len(pairs)-1),
		gen.Int64Range(1, 1_000_000),
		gen.Float64Range(0.01, 30),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestComparisonProperties(t *testing.T) {
	engine := NewDefaultEngine()
	gpus := engine.Catalog().GPUs()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("cheapest is the minimum and savings percentages hold", prop.ForAll(
		func(gpu int, hours float64) bool {
			result, err := engine.Compare(decimal.NewFromFloat(hours), gpus[gpu].ID)
			if err != nil {
				return false
			}
			best := result.Cheapest.Cost
			for _, p := range result.Available() {
				if p.Cost.LessThan(best) {
					return false
				}
				if !p.Cost.IsPositive() {
					continue
				}
				want := p.Cost.Sub(best).InexactFloat64() / p.Cost.InexactFloat64() * 100
				if math.Abs(want-p.SavingsPercentage.InexactFloat64()) > 1e-6 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(gpus)-1),
		gen.Float64Range(0.1, 10_000),
	))

	properties.TestingRun(t)
}
