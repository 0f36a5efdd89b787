// Package commands defines the clotcalc CLI.
//
// Commands
//
//   - calc    Compute the measurable-clot probability from five lab values
//     and print the three result lines and a text gauge (or JSON)
//   - gauge   Draw the gauge for a probability as SVG or as a text bar
//
// Invalid input prints the same message the web form shows and exits 1.
package commands
