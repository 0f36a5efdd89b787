package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clotmeter/clotmeter/pkg/gauge"
)

// textCells is the --text bar width when --width is not given.
const textCells = 40

func gaugeCmd() *cobra.Command {
	var (
		probability   float64
		width, height int
		text          bool
	)
	cmd := &cobra.Command{
		Use:   "gauge",
		Short: "Draw the probability gauge as SVG (default) or text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if probability < 0 || probability > 1 {
				return fmt.Errorf("probability %v is outside [0, 1]", probability)
			}
			if text {
				cells := textCells
				if cmd.Flags().Changed("width") {
					cells = width
				}
				return gauge.New(probability, gauge.Options{}).WriteText(cmd.OutOrStdout(), cells)
			}
			bar := gauge.New(probability, gauge.Options{Width: width, Height: height})
			if err := bar.WriteSVG(cmd.OutOrStdout()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout())
			return err
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&probability, "probability", "p", 0, "probability in [0, 1]")
	f.IntVar(&width, "width", gauge.DefaultWidth, "bar width in pixels for SVG, or characters for --text (default 40)")
	f.IntVar(&height, "height", gauge.DefaultHeight, "plot height in pixels")
	f.BoolVar(&text, "text", false, "draw a text bar instead of SVG")
	_ = cmd.MarkFlagRequired("probability")
	return cmd
}
