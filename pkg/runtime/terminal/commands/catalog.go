package commands

import (
	"github.com/de-tools/gpu-atlas/pkg/adapters"
	"github.com/de-tools/gpu-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewCatalogCmd(rt Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List platforms, GPUs, rates and throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			estimator := rt.Estimator()
			return rt.Render(cmd, export.Output{
				Report: adapters.MapCatalogToReport(estimator.Catalog(), estimator.Throughput()),
				Record: adapters.MapCatalogToApi(estimator.Catalog(), estimator.Throughput()),
			})
		},
	}
}
