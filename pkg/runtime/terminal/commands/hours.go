package commands

import (
	"fmt"

	"github.com/de-tools/gpu-atlas/pkg/adapters"
	"github.com/de-tools/gpu-atlas/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type HoursCmd struct {
	budget  float64
	gpu     string
	runtime Runtime
}

func NewHoursCmd(rt Runtime) *cobra.Command {
	hc := &HoursCmd{runtime: rt}
	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Convert a budget into GPU-hours on each platform",
		Args:  cobra.NoArgs,
		RunE:  hc.run,
	}

	cmd.Flags().Float64Var(&hc.budget, "budget", 0, "Budget in USD")
	cmd.Flags().StringVar(&hc.gpu, "gpu-type", "", "GPU type (e.g., h100)")

	return cmd
}

func (hc *HoursCmd) run(cmd *cobra.Command, _ []string) error {
	zerolog.Ctx(cmd.Context()).Debug().
		Float64("budget", hc.budget).
		Str("gpu", hc.gpu).
		Msg("converting budget")

	budget, err := decimalFlag("budget", hc.budget)
	if err != nil {
		return fmt.Errorf("failed to convert budget: %w", err)
	}

	conv, err := hc.runtime.Estimator().ConvertBudget(budget, hc.gpu)
	if err != nil {
		return fmt.Errorf("failed to convert budget: %w", err)
	}

	return hc.runtime.Render(cmd, export.Output{
		Report: adapters.MapHoursConversionToReport(conv),
		Record: adapters.MapHoursConversionDomainToApi(conv),
	})
}
