package commands

import (
	"fmt"

	"github.com/de-tools/gpu-atlas/pkg/adapters"
	"github.com/de-tools/gpu-atlas/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type CompareCmd struct {
	hours   float64
	gpu     string
	runtime Runtime
}

func NewCompareCmd(rt Runtime) *cobra.Command {
	cc := &CompareCmd{runtime: rt}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the cost of the same GPU-hours across platforms",
		Args:  cobra.NoArgs,
		RunE:  cc.run,
	}

	cmd.Flags().Float64Var(&cc.hours, "training-hours", 0, "GPU-hours to price")
	cmd.Flags().StringVar(&cc.gpu, "gpu-type", "", "GPU type (e.g., a100-40gb)")

	return cmd
}

func (cc *CompareCmd) run(cmd *cobra.Command, _ []string) error {
	zerolog.Ctx(cmd.Context()).Debug().
		Float64("hours", cc.hours).
		Str("gpu", cc.gpu).
		Msg("comparing platforms")

	hours, err := decimalFlag("hours", cc.hours)
	if err != nil {
		return fmt.Errorf("failed to compare platforms: %w", err)
	}

	res, err := cc.runtime.Estimator().Compare(hours, cc.gpu)
	if err != nil {
		return fmt.Errorf("failed to compare platforms: %w", err)
	}

	return cc.runtime.Render(cmd, export.Output{
		Report: adapters.MapComparisonToReport(res),
		Record: adapters.MapComparisonDomainToApi(res),
	})
}
