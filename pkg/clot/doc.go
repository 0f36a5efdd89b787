// Package clot computes the probability of a measurable bladder clot in a
// patient with gross hematuria (GH).
//
// Calculate(Input) derives the per-day percent decrease of hematocrit and
// platelet count between GH onset and nadir, then feeds both into a fixed
// logistic regression:
//
//	logit       = -1.994634 + 0.663276*pct_plt - 0.769649*pct_hct
//	probability = 1 / (1 + exp(-logit))
//
// Inputs with a non-positive GH duration or a non-positive initial value
// return ErrInvalidInput. The function is pure; nothing is retained between
// calls.
package clot
