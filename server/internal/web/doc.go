// Package web serves the calculator as a plain HTML form.
//
//	GET  /  — the form: five numeric inputs and a "Calculate Probability" button
//	POST /  — the same form plus either the three result lines and the gauge,
//	          or the invalid-input message
//
// Unparsable numbers, a fractional or sub-1 GH duration and negative values
// are reported with the same message as calculator rejections. The entered
// values are echoed back so the form stays usable for a new attempt.
//
// Title, subtitle and gauge size come from config.UIConfig and can be swapped
// at runtime with SetUI.
package web
