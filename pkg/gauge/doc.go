// Package gauge renders a probability as a horizontal bar on a fixed 0–100
// scale, coloured by a three-tier policy:
//
//	probability*100 > 70  → red
//	probability*100 > 30  → yellow
//	otherwise             → green
//
// Both boundaries are exclusive: exactly 70% is yellow and exactly 30% is
// green.
//
// New(probability, Options) lays the bar out once; WriteSVG draws it for the
// web form and API, WriteText draws it for terminals.
package gauge
