package types

import (
	"fmt"

	"github.com/clotmeter/clotmeter/pkg/clot"
	"github.com/clotmeter/clotmeter/pkg/gauge"
)

// InvalidInputMessage is shown to the user whenever a calculation is rejected.
const InvalidInputMessage = "Invalid input values. Please ensure all inputs are positive and GH duration is at least 1 day."

// AssessmentRequest is the payload for POST /api/v1/probability and for each
// WebSocket frame sent by a client.
type AssessmentRequest struct {
	HctInitial float64 `json:"hct_initial"`
	HctNadir   float64 `json:"hct_nadir"`
	PltInitial float64 `json:"plt_initial"`
	PltNadir   float64 `json:"plt_nadir"`
	GHDays     int     `json:"gh_days"`
}

// Input converts the request into calculator input.
func (r AssessmentRequest) Input() clot.Input {
	return clot.Input{
		HctInitial: r.HctInitial,
		HctNadir:   r.HctNadir,
		PltInitial: r.PltInitial,
		PltNadir:   r.PltNadir,
		GHDays:     r.GHDays,
	}
}

// Assessment is one calculator result as returned to clients.
type Assessment struct {
	ID             string  `json:"assessment_id,omitempty"`
	Probability    float64 `json:"probability"`
	ProbabilityPct float64 `json:"probability_pct"`
	PctChangeHct   float64 `json:"pct_change_hct"`
	PctChangePlt   float64 `json:"pct_change_plt"`
	Logit          float64 `json:"logit"`
	Color          string  `json:"color"`
	Summary        Summary `json:"summary"`
}

// Summary holds the three result lines displayed under the form.
type Summary struct {
	Probability string `json:"probability"`
	Hematocrit  string `json:"hematocrit"`
	Platelets   string `json:"platelets"`
}

// NewAssessment builds the client view of res. id may be empty.
func NewAssessment(id string, res clot.Result) Assessment {
	return Assessment{
		ID:             id,
		Probability:    res.Probability,
		ProbabilityPct: res.Probability * 100,
		PctChangeHct:   res.PctChangeHct,
		PctChangePlt:   res.PctChangePlt,
		Logit:          res.Logit,
		Color:          string(gauge.ColorFor(res.Probability)),
		Summary:        Summarize(res),
	}
}

// Summarize formats the three display lines for res.
func Summarize(res clot.Result) Summary {
	return Summary{
		Probability: fmt.Sprintf("Probability of Measurable Clot: %.2f%%", res.Probability*100),
		Hematocrit:  fmt.Sprintf("Percent Decrease in Hematocrit per Day: %.2f%%", res.PctChangeHct),
		Platelets:   fmt.Sprintf("Percent Decrease in Platelet Count per Day: %.2f%%", res.PctChangePlt),
	}
}
