package commands

import (
	"fmt"

	"github.com/de-tools/gpu-atlas/pkg/adapters"
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type InferCmd struct {
	requestsPerDay int64
	latency        float64
	gpu            string
	platform       string
	deployment     string
	batch          bool
	runtime        Runtime
}

func NewInferCmd(rt Runtime) *cobra.Command {
	ic := &InferCmd{runtime: rt}
	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Estimate the cost of serving inference traffic",
		Args:  cobra.NoArgs,
		RunE:  ic.run,
	}

	cmd.Flags().Int64Var(&ic.requestsPerDay, "requests-per-day", 0, "Requests served per day")
	cmd.Flags().Float64Var(&ic.latency, "latency", 0, "Average GPU seconds per request")
	cmd.Flags().StringVar(&ic.gpu, "gpu", "", "GPU type (e.g., t4, a10g)")
	cmd.Flags().StringVar(&ic.platform, "platform", "", "Platform (e.g., modal, lambda, runpod)")
	cmd.Flags().StringVar(&ic.deployment, "deployment", string(domain.DeployServerless), "Deployment (serverless or dedicated)")
	cmd.Flags().BoolVar(&ic.batch, "batch", false, "Group requests into batches")

	return cmd
}

func (ic *InferCmd) run(cmd *cobra.Command, _ []string) error {
	if err := ic.runtime.ApplyProfile(cmd, domain.ProfileTypeInference); err != nil {
		return err
	}

	deployment, err := domain.ParseDeployment(ic.deployment)
	if err != nil {
		return err
	}
	w := domain.InferenceWorkload{
		RequestsPerDay:    ic.requestsPerDay,
		AvgLatencySeconds: ic.latency,
		GPU:               domain.NormalizeID(ic.gpu),
		Platform:          domain.NormalizeID(ic.platform),
		Deployment:        deployment,
		BatchInference:    ic.batch,
	}

	zerolog.Ctx(cmd.Context()).Debug().
		Int64("requests_per_day", w.RequestsPerDay).
		Float64("latency", w.AvgLatencySeconds).
		Str("gpu", w.GPU).
		Str("platform", w.Platform).
		Str("deployment", string(w.Deployment)).
		Bool("batch", w.BatchInference).
		Msg("estimating inference cost")

	est, err := ic.runtime.Estimator().EstimateInference(w)
	if err != nil {
		return fmt.Errorf("failed to estimate inference cost: %w", err)
	}

	return ic.runtime.Render(cmd, export.Output{
		Report: adapters.MapInferenceEstimateToReport(est),
		Record: adapters.MapInferenceEstimateDomainToApi(est),
	})
}
