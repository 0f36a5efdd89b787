package clot

import (
	"errors"
	"math"
	"testing"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func reference() Input {
	return Input{HctInitial: 40, HctNadir: 30, PltInitial: 200, PltNadir: 100, GHDays: 5}
}

// --- Calculate() ---

func TestCalculate_ReferenceCase(t *testing.T) {
	res, err := Calculate(reference())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !almostEqual(res.PctChangeHct, 5.0, 1e-12) {
		t.Errorf("PctChangeHct = %.12f, want 5.0", res.PctChangeHct)
	}
	if !almostEqual(res.PctChangePlt, 10.0, 1e-12) {
		t.Errorf("PctChangePlt = %.12f, want 10.0", res.PctChangePlt)
	}
	// -1.994634 + 6.63276 - 3.848245 = 0.789881
	if !almostEqual(res.Logit, 0.789881, 1e-9) {
		t.Errorf("Logit = %.9f, want 0.789881", res.Logit)
	}
	if !almostEqual(res.Probability, 0.6878, 1e-4) {
		t.Errorf("Probability = %.6f, want ≈0.6878", res.Probability)
	}
}

func TestCalculate_MatchesStepwiseFormula(t *testing.T) {
	cases := []Input{
		reference(),
		{HctInitial: 42.5, HctNadir: 31.25, PltInitial: 250, PltNadir: 180, GHDays: 3},
		{HctInitial: 38, HctNadir: 38, PltInitial: 150, PltNadir: 150, GHDays: 1},
		{HctInitial: 30, HctNadir: 35, PltInitial: 120, PltNadir: 300, GHDays: 2},
		{HctInitial: 0.5, HctNadir: 0, PltInitial: 1, PltNadir: 0, GHDays: 10},
	}
	for _, in := range cases {
		res, err := Calculate(in)
		if err != nil {
			t.Fatalf("Calculate(%+v): %v", in, err)
		}

		d := float64(in.GHDays)
		hct := float64(float64(in.HctInitial-in.HctNadir)/float64(in.HctInitial*d)) * 100
		plt := float64(float64(in.PltInitial-in.PltNadir)/float64(in.PltInitial*d)) * 100
		a := float64(0.663276 * plt)
		b := float64(0.769649 * hct)
		logit := float64(-1.994634+a) - b
		p := 1 / (1 + math.Exp(-logit))

		if res.PctChangeHct != hct || res.PctChangePlt != plt {
			t.Errorf("%+v: rates = (%v, %v), want (%v, %v)", in, res.PctChangeHct, res.PctChangePlt, hct, plt)
		}
		if res.Logit != logit {
			t.Errorf("%+v: Logit = %v, want %v", in, res.Logit, logit)
		}
		if res.Probability != p {
			t.Errorf("%+v: Probability = %v, want %v", in, res.Probability, p)
		}
	}
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"zero GH days", Input{HctInitial: 40, HctNadir: 30, PltInitial: 200, PltNadir: 100, GHDays: 0}},
		{"negative GH days", Input{HctInitial: 40, HctNadir: 30, PltInitial: 200, PltNadir: 100, GHDays: -2}},
		{"zero GH days, zero initials", Input{GHDays: 0}},
		{"zero Hct initial", Input{HctInitial: 0, HctNadir: 0, PltInitial: 200, PltNadir: 100, GHDays: 5}},
		{"negative Hct initial", Input{HctInitial: -1, PltInitial: 200, GHDays: 5}},
		{"zero Plt initial", Input{HctInitial: 40, HctNadir: 30, PltInitial: 0, PltNadir: 0, GHDays: 5}},
		{"NaN nadir", Input{HctInitial: 40, HctNadir: math.NaN(), PltInitial: 200, PltNadir: 100, GHDays: 5}},
		{"infinite initial", Input{HctInitial: math.Inf(1), PltInitial: 200, GHDays: 5}},
		{"Hct rate overflows", Input{HctInitial: 1e308, HctNadir: -1e308, PltInitial: 200, PltNadir: 100, GHDays: 2}},
		{"Plt rate overflows", Input{HctInitial: 40, HctNadir: 30, PltInitial: 1e308, PltNadir: -1e308, GHDays: 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Calculate(tc.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			if res != (Result{}) {
				t.Errorf("result = %+v, want zero value", res)
			}
		})
	}
}

func TestCalculate_NadirMayExceedInitial(t *testing.T) {
	// A rise since onset gives a negative decrease rate, not an error.
	res, err := Calculate(Input{HctInitial: 30, HctNadir: 36, PltInitial: 100, PltNadir: 150, GHDays: 2})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.PctChangeHct >= 0 || res.PctChangePlt >= 0 {
		t.Errorf("rates = (%v, %v), want both negative", res.PctChangeHct, res.PctChangePlt)
	}
}

// --- properties ---

func TestCalculate_MonotonicInPlateletDecrease(t *testing.T) {
	prev := -1.0
	for nadir := 300.0; nadir >= 0; nadir -= 12.5 {
		res, err := Calculate(Input{HctInitial: 40, HctNadir: 34, PltInitial: 250, PltNadir: nadir, GHDays: 4})
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if res.Probability < prev {
			t.Fatalf("probability decreased to %v at Plt nadir %v (previous %v)", res.Probability, nadir, prev)
		}
		prev = res.Probability
	}
}

func TestCalculate_AntitonicInHematocritDecrease(t *testing.T) {
	prev := 2.0
	for nadir := 50.0; nadir >= 0; nadir -= 2.5 {
		res, err := Calculate(Input{HctInitial: 40, HctNadir: nadir, PltInitial: 250, PltNadir: 200, GHDays: 4})
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if res.Probability > prev {
			t.Fatalf("probability increased to %v at Hct nadir %v (previous %v)", res.Probability, nadir, prev)
		}
		prev = res.Probability
	}
}

func TestCalculate_ProbabilityInOpenUnitInterval(t *testing.T) {
	for _, days := range []int{5, 7, 30} {
		for hn := 0.0; hn <= 60; hn += 15 {
			for pn := 0.0; pn <= 400; pn += 100 {
				res, err := Calculate(Input{HctInitial: 40, HctNadir: hn, PltInitial: 200, PltNadir: pn, GHDays: days})
				if err != nil {
					t.Fatalf("Calculate: %v", err)
				}
				if res.Probability <= 0 || res.Probability >= 1 {
					t.Errorf("Probability %v out of (0,1) for days=%d hn=%v pn=%v", res.Probability, days, hn, pn)
				}
			}
		}
	}
}

// --- sigmoid ---

func TestSigmoid(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0.5},
		{math.Log(3), 0.75},
		{-math.Log(3), 0.25},
	}
	for _, tc := range tests {
		if got := sigmoid(tc.in); !almostEqual(got, tc.want, 1e-12) {
			t.Errorf("sigmoid(%.4f) = %.6f, want %.6f", tc.in, got, tc.want)
		}
	}
}
