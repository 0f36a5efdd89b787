package clot

import (
	"errors"
	"math"
)

// Regression coefficients for the measurable-clot model.
const (
	intercept = -1.994634
	coefPlt   = 0.663276
	coefHct   = 0.769649
)

// ErrInvalidInput is returned when GH duration or either initial value is not
// positive, or when any input or derived value is not a finite number.
var ErrInvalidInput = errors.New("invalid input values")

// Input holds the lab values entered for one patient.
type Input struct {
	// HctInitial is the hematocrit at GH onset. Must be > 0.
	HctInitial float64

	// HctNadir is the lowest hematocrit observed since onset.
	HctNadir float64

	// PltInitial is the platelet count at GH onset. Must be > 0.
	PltInitial float64

	// PltNadir is the lowest platelet count observed since onset.
	PltNadir float64

	// GHDays is the duration of gross hematuria in days. Must be >= 1.
	GHDays int
}

// Result is the output of one calculation.
type Result struct {
	// Probability of a measurable clot, in [0, 1].
	Probability float64

	// PctChangeHct is the percent decrease in hematocrit per day.
	PctChangeHct float64

	// PctChangePlt is the percent decrease in platelet count per day.
	PctChangePlt float64

	// Logit is the linear predictor before the logistic transform.
	Logit float64
}

// Calculate validates in and applies the logistic regression.
//
// Each arithmetic step is rounded to float64 on its own (the explicit
// conversions stop the compiler from fusing multiply-add pairs), so results
// are identical on every architecture.
func Calculate(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	days := float64(in.GHDays)
	pctHct := percentPerDay(in.HctInitial, in.HctNadir, days)
	pctPlt := percentPerDay(in.PltInitial, in.PltNadir, days)

	logit := float64(intercept+float64(coefPlt*pctPlt)) - float64(coefHct*pctHct)
	prob := sigmoid(logit)

	// Extreme finite inputs can still overflow an intermediate step.
	if !finite(pctHct, pctPlt, logit, prob) {
		return Result{}, ErrInvalidInput
	}

	return Result{
		Probability:  prob,
		PctChangeHct: pctHct,
		PctChangePlt: pctPlt,
		Logit:        logit,
	}, nil
}

// validate reports ErrInvalidInput for values the formula cannot accept.
func validate(in Input) error {
	if in.GHDays <= 0 || in.HctInitial <= 0 || in.PltInitial <= 0 {
		return ErrInvalidInput
	}
	if !finite(in.HctInitial, in.HctNadir, in.PltInitial, in.PltNadir) {
		return ErrInvalidInput
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// percentPerDay returns ((initial - nadir) / (initial * days)) * 100.
func percentPerDay(initial, nadir, days float64) float64 {
	return float64((initial-nadir)/float64(initial*days)) * 100
}

// sigmoid is the logistic function 1 / (1 + e^-x).
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
