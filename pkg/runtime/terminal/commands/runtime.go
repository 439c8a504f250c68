package commands

import (
	"math"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/gpu-atlas/pkg/services/cost"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Runtime is what commands need from the CLI hosting them.
// Estimator is only valid once the root command's pre-run hook has completed.
type Runtime interface {
	Estimator() cost.Estimator
	// ApplyProfile fills flags the user did not set from the selected profile
	ApplyProfile(cmd *cobra.Command, t domain.ProfileType) error
	// Render writes the output in the configured format, all or nothing
	Render(cmd *cobra.Command, out export.Output) error
}

// decimalFlag converts a float flag, rejecting values a decimal cannot hold.
func decimalFlag(name string, v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, &domain.ValidationError{Field: name, Value: v, Reason: "must be a finite number"}
	}
	return decimal.NewFromFloat(v), nil
}
