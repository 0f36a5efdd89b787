package commands

import (
	"github.com/spf13/cobra"

	"github.com/clotmeter/clotmeter/pkg/clot"
	"github.com/clotmeter/clotmeter/pkg/types"
)

// invalidInputError carries the user-facing message and unwraps to
// clot.ErrInvalidInput.
type invalidInputError struct{}

func (invalidInputError) Error() string { return types.InvalidInputMessage }
func (invalidInputError) Unwrap() error { return clot.ErrInvalidInput }

// Execute runs the clotcalc root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clotcalc",
		Short:         "Measurable clot probability calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(calcCmd(), gaugeCmd())
	return root
}
