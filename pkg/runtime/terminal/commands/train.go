package commands

import (
	"fmt"

	"github.com/de-tools/gpu-atlas/pkg/adapters"
	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type TrainCmd struct {
	modelSize      string
	datasetSize    int64
	epochs         int64
	gpu            string
	platform       string
	peft           bool
	mixedPrecision bool
	runtime        Runtime
}

func NewTrainCmd(rt Runtime) *cobra.Command {
	tc := &TrainCmd{runtime: rt}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Estimate the cost of a fine-tuning run",
		Args:  cobra.NoArgs,
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.modelSize, "model-size", "", "Model size (125M, 350M, 1B, 3B, 7B, 13B, 30B, 70B)")
	cmd.Flags().Int64Var(&tc.datasetSize, "dataset-size", 0, "Number of training samples")
	cmd.Flags().Int64Var(&tc.epochs, "epochs", 1, "Passes over the dataset")
	cmd.Flags().StringVar(&tc.gpu, "gpu", "", "GPU type (e.g., t4, a100-40gb)")
	cmd.Flags().StringVar(&tc.platform, "platform", "", "Platform (e.g., modal, lambda, runpod)")
	cmd.Flags().BoolVar(&tc.peft, "peft", false, "Use parameter-efficient fine-tuning")
	cmd.Flags().BoolVar(&tc.mixedPrecision, "mixed-precision", true, "Train with mixed precision")

	return cmd
}

func (tc *TrainCmd) run(cmd *cobra.Command, _ []string) error {
	if err := tc.runtime.ApplyProfile(cmd, domain.ProfileTypeTraining); err != nil {
		return err
	}

	size, err := domain.ParseModelSize(tc.modelSize)
	if err != nil {
		return err
	}
	w := domain.NewTrainingWorkload(size, tc.datasetSize, tc.epochs, tc.gpu, tc.platform)
	w.PEFT = tc.peft
	w.MixedPrecision = tc.mixedPrecision

	zerolog.Ctx(cmd.Context()).Debug().
		Str("model_size", string(w.ModelSize)).
		Int64("dataset_size", w.DatasetSize).
		Int64("epochs", w.Epochs).
		Str("gpu", w.GPU).
		Str("platform", w.Platform).
		Bool("peft", w.PEFT).
		Bool("mixed_precision", w.MixedPrecision).
		Msg("estimating training cost")

	est, err := tc.runtime.Estimator().EstimateTraining(w)
	if err != nil {
		return fmt.Errorf("failed to estimate training cost: %w", err)
	}

	return tc.runtime.Render(cmd, export.Output{
		Report: adapters.MapTrainingEstimateToReport(est),
		Record: adapters.MapTrainingEstimateDomainToApi(est),
	})
}
