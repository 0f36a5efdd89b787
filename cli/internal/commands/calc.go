package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clotmeter/clotmeter/pkg/clot"
	"github.com/clotmeter/clotmeter/pkg/gauge"
	"github.com/clotmeter/clotmeter/pkg/types"
)

func calcCmd() *cobra.Command {
	var (
		req    types.AssessmentRequest
		asJSON bool
		cells  int
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the probability of a measurable clot",
		Example: "  clotcalc calc --hct-initial 40 --hct-nadir 30 " +
			"--plt-initial 200 --plt-nadir 100 --gh-days 5",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := clot.Calculate(req.Input())
			if errors.Is(err, clot.ErrInvalidInput) {
				return invalidInputError{}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(types.NewAssessment("", res))
			}

			s := types.Summarize(res)
			fmt.Fprintln(out, s.Probability)
			fmt.Fprintln(out, s.Hematocrit)
			fmt.Fprintln(out, s.Platelets)
			return gauge.New(res.Probability, gauge.Options{}).WriteText(out, cells)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&req.HctInitial, "hct-initial", 0, "hematocrit at GH onset")
	f.Float64Var(&req.HctNadir, "hct-nadir", 0, "hematocrit nadir")
	f.Float64Var(&req.PltInitial, "plt-initial", 0, "platelet count at GH onset")
	f.Float64Var(&req.PltNadir, "plt-nadir", 0, "platelet count nadir")
	f.IntVar(&req.GHDays, "gh-days", 1, "duration of gross hematuria in days")
	f.BoolVar(&asJSON, "json", false, "print the assessment as JSON")
	f.IntVar(&cells, "width", 40, "text gauge width in characters")

	for _, name := range []string{"hct-initial", "hct-nadir", "plt-initial", "plt-nadir"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
