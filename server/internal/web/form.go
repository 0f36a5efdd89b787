package web

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/clotmeter/clotmeter/pkg/clot"
)

// errField reports a form value that could not be turned into calculator input.
var errField = errors.New("invalid form field")

// formValues holds the raw strings typed into the form, echoed back on render.
type formValues struct {
	HctInitial string
	HctNadir   string
	PltInitial string
	PltNadir   string
	GHDays     string
}

// defaultValues mirrors the widgets' minimums on first load.
func defaultValues() formValues {
	return formValues{
		HctInitial: "0.00",
		HctNadir:   "0.00",
		PltInitial: "0",
		PltNadir:   "0",
		GHDays:     "1",
	}
}

func readValues(form url.Values) formValues {
	return formValues{
		HctInitial: strings.TrimSpace(form.Get("hct_initial")),
		HctNadir:   strings.TrimSpace(form.Get("hct_nadir")),
		PltInitial: strings.TrimSpace(form.Get("plt_initial")),
		PltNadir:   strings.TrimSpace(form.Get("plt_nadir")),
		GHDays:     strings.TrimSpace(form.Get("gh_days")),
	}
}

// input parses v. Every field must be a finite number no smaller than the
// widget minimum (0 for lab values, 1 for days); platelet counts and GH days
// must be whole numbers.
func (v formValues) input() (clot.Input, error) {
	var (
		in  clot.Input
		err error
	)
	if in.HctInitial, err = nonNegative(v.HctInitial); err != nil {
		return clot.Input{}, err
	}
	if in.HctNadir, err = nonNegative(v.HctNadir); err != nil {
		return clot.Input{}, err
	}
	if in.PltInitial, err = count(v.PltInitial); err != nil {
		return clot.Input{}, err
	}
	if in.PltNadir, err = count(v.PltNadir); err != nil {
		return clot.Input{}, err
	}
	if in.GHDays, err = strconv.Atoi(v.GHDays); err != nil || in.GHDays < 1 {
		return clot.Input{}, errField
	}
	return in, nil
}

func nonNegative(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, errField
	}
	return f, nil
}

// count parses a whole, non-negative platelet count.
func count(s string) (float64, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errField
	}
	return float64(n), nil
}
