package terminal

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/gpu-atlas/pkg/models/api"
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	err    error
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	// keep the user's settings and profiles out of the test
	t.Setenv("HOME", t.TempDir())

	res := result{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	cli := NewCLI(Options{Output: res.stdout, ErrOutput: res.stderr})
	cli.SetArgs(args)
	res.err = cli.Execute()
	return res
}

func decode[T any](t *testing.T, b *bytes.Buffer) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b.Bytes(), &v))
	return v
}

func TestTrain_WorkedExample_JSON(t *testing.T) {
	// When
	res := run(t, "train",
		"--model-size", "7B", "--dataset-size", "10000", "--epochs", "3",
		"--gpu", "t4", "--platform", "modal", "--peft", "--output", "json")

	// Then
	require.NoError(t, res.err)
	est := decode[api.TrainingEstimate](t, res.stdout)
	assert.Equal(t, int64(15_000_000), est.TotalTokens)
	assert.Equal(t, 1200.0, est.TokensPerSecond)
	assert.InDelta(t, 3.4722, est.EstimatedHours, 1e-4)
	assert.InDelta(t, 2.0986, est.CostBreakdown.TotalCost, 1e-4)
	assert.True(t, est.CoveredByFreeCredits)
}

func TestTrain_DefaultOutputIsTable(t *testing.T) {
	res := run(t, "train",
		"--model-size", "1b", "--dataset-size", "5000", "--epochs", "2",
		"--gpu", "A100-40GB", "--platform", "lambda")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout.String(), "Training Cost Estimate")
	assert.Contains(t, res.stdout.String(), "=== Cost Optimizations ===")
}

func TestTrain_InvalidInput_WritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "unknown model size",
			args:    []string{"train", "--model-size", "5B", "--dataset-size", "10", "--gpu", "t4", "--platform", "modal"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing dataset size",
			args:    []string{"train", "--model-size", "7B", "--gpu", "t4", "--platform", "modal"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "gpu not on platform",
			args:    []string{"train", "--model-size", "7B", "--dataset-size", "10", "--gpu", "t4", "--platform", "lambda"},
			wantErr: domain.ErrLookup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.args...)

			assert.ErrorIs(t, res.err, tt.wantErr)
			assert.Empty(t, res.stdout.String())
		})
	}
}

func TestNonFiniteFlags_ReturnValidationError(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "NaN latency",
			args: []string{"infer", "--requests-per-day", "100", "--latency", "NaN", "--gpu", "t4", "--platform", "modal"},
		},
		{
			name: "infinite latency",
			args: []string{"infer", "--requests-per-day", "100", "--latency", "Inf", "--gpu", "t4", "--platform", "modal"},
		},
		{
			name: "NaN training hours",
			args: []string{"compare", "--training-hours", "NaN", "--gpu-type", "t4"},
		},
		{
			name: "infinite budget",
			args: []string{"hours", "--budget", "+Inf", "--gpu-type", "t4"},
		},
		{
			name: "dataset overflowing the token count",
			args: []string{"train", "--model-size", "7B", "--dataset-size", "36028797018963968", "--epochs", "2", "--gpu", "t4", "--platform", "modal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res result
			require.NotPanics(t, func() { res = run(t, tt.args...) })

			assert.ErrorIs(t, res.err, domain.ErrValidation)
			assert.Empty(t, res.stdout.String())
		})
	}
}

func TestInfer_Serverless_Markdown(t *testing.T) {
	res := run(t, "infer",
		"--requests-per-day", "1000", "--latency", "2",
		"--gpu", "t4", "--platform", "modal", "--output", "markdown")

	require.NoError(t, res.err)
	out := res.stdout.String()
	assert.Contains(t, out, "# Inference Cost Estimate")
	assert.Contains(t, out, "| Monthly Cost | 9.84 | USD | 30 days |")
	assert.Contains(t, out, "## Scaling Analysis")
}

func TestInfer_UnknownDeployment(t *testing.T) {
	res := run(t, "infer",
		"--requests-per-day", "1000", "--latency", "2",
		"--gpu", "t4", "--platform", "modal", "--deployment", "edge")

	assert.ErrorIs(t, res.err, domain.ErrValidation)
	assert.Empty(t, res.stdout.String())
}

func TestCompare_CheapestPlatform(t *testing.T) {
	res := run(t, "compare", "--training-hours", "4", "--gpu-type", "a100-40gb", "-o", "json")

	require.NoError(t, res.err)
	cmp := decode[api.ComparisonResult](t, res.stdout)
	assert.Equal(t, "lambda", cmp.Cheapest.Platform)
	assert.InDelta(t, 5.16, cmp.Cheapest.Cost, 1e-9)
	require.Len(t, cmp.Platforms, 3)
	require.NotNil(t, cmp.Platforms[0].SavingsPercentage)
	assert.InDelta(t, 38.5714, *cmp.Platforms[0].SavingsPercentage, 1e-4)
}

func TestCompare_UnknownGPU(t *testing.T) {
	res := run(t, "compare", "--training-hours", "4", "--gpu-type", "tpu")

	assert.ErrorIs(t, res.err, domain.ErrLookup)
}

func TestHours_YAML(t *testing.T) {
	res := run(t, "hours", "--budget", "100", "--gpu-type", "h100", "-o", "yaml")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout.String(), "gpu: h100")
	assert.Contains(t, res.stdout.String(), "platform: lambda")
}

func TestCatalog_JSON(t *testing.T) {
	res := run(t, "catalog", "-o", "json")

	require.NoError(t, res.err)
	catalog := decode[api.Catalog](t, res.stdout)
	assert.Len(t, catalog.Platforms, 3)
	assert.Len(t, catalog.Rates, 15)
	assert.NotEmpty(t, catalog.Throughput)
}

func TestRoot_InvalidOutputFormat(t *testing.T) {
	res := run(t, "catalog", "-o", "csv")

	assert.ErrorContains(t, res.err, `unsupported output format "csv"`)
	assert.Empty(t, res.stdout.String())
}

func TestRoot_SettingsFileSelectsOutput(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\nlog_level: debug\n"), 0o644))

	// When
	res := run(t, "--config", path, "catalog")

	// Then
	require.NoError(t, res.err)
	assert.True(t, json.Valid(res.stdout.Bytes()))
	assert.Contains(t, res.stderr.String(), `"level":"debug"`)
}

func TestRoot_MissingExplicitSettingsFile(t *testing.T) {
	res := run(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "catalog")

	assert.Error(t, res.err)
}

func TestRoot_CatalogOverride(t *testing.T) {
	// Given
	catalog := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(`platforms:
  - id: acme
    granularity: per-hour
    billing: dedicated
    rates:
      h100:
        per_hour: "1.00"
`), 0o644))
	t.Setenv("GPUCOST_CATALOG_FILE", catalog)

	// When
	res := run(t, "compare", "--training-hours", "10", "--gpu-type", "h100", "-o", "json")

	// Then
	require.NoError(t, res.err)
	cmp := decode[api.ComparisonResult](t, res.stdout)
	require.Len(t, cmp.Platforms, 1)
	assert.Equal(t, "acme", cmp.Cheapest.Platform)
	assert.Equal(t, 10.0, cmp.Cheapest.Cost)
}

const profiles = `[cheap-train]
type       = training
model_size = 7B
gpu        = t4
platform   = modal
peft       = true

[chatbot]
type       = inference
gpu        = a10g
platform   = modal
`

func writeProfiles(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles")
	require.NoError(t, os.WriteFile(path, []byte(profiles), 0o644))
	return path
}

func TestProfile_FillsUnsetFlags(t *testing.T) {
	// Given
	path := writeProfiles(t)

	// When
	res := run(t, "--profiles", path, "--profile", "cheap-train",
		"train", "--dataset-size", "10000", "--epochs", "3", "-o", "json")

	// Then
	require.NoError(t, res.err)
	est := decode[api.TrainingEstimate](t, res.stdout)
	assert.Equal(t, "7B", est.Workload.ModelSize)
	assert.True(t, est.Workload.PEFT)
	assert.InDelta(t, 2.0986, est.CostBreakdown.TotalCost, 1e-4)
}

func TestProfile_ExplicitFlagWins(t *testing.T) {
	path := writeProfiles(t)

	res := run(t, "--profiles", path, "--profile", "cheap-train",
		"train", "--dataset-size", "10000", "--platform", "runpod", "-o", "json")

	require.NoError(t, res.err)
	est := decode[api.TrainingEstimate](t, res.stdout)
	assert.Equal(t, "runpod", est.Workload.Platform)
	assert.Equal(t, "t4", est.Workload.GPU)
}

func TestProfile_WrongType(t *testing.T) {
	path := writeProfiles(t)

	res := run(t, "--profiles", path, "--profile", "chatbot",
		"train", "--dataset-size", "10000")

	assert.ErrorContains(t, res.err, "cannot be used for training estimates")
	assert.Empty(t, res.stdout.String())
}

func TestProfile_Unknown(t *testing.T) {
	path := writeProfiles(t)

	res := run(t, "--profiles", path, "--profile", "nope",
		"infer", "--requests-per-day", "10", "--latency", "1")

	assert.EqualError(t, res.err, "profile nope not found")
}
