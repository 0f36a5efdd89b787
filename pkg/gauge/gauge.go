package gauge

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Color is the tier a probability falls into.
type Color string

// Tier colours. The values double as SVG fill names.
const (
	Red    Color = "red"
	Yellow Color = "yellow"
	Green  Color = "green"
)

// Tier thresholds on the 0–100 percentage scale. Comparisons are strict.
const (
	ThresholdRed    = 70.0
	ThresholdYellow = 30.0
)

// Default geometry, in pixels.
const (
	DefaultWidth     = 500
	DefaultHeight    = 50
	DefaultThickness = 30

	// axisHeight is the space below the plot for ticks and the axis title.
	axisHeight = 36
	// margin keeps the first and last tick labels inside the viewport.
	margin = 16
)

// ColorFor maps a probability in [0, 1] to its tier colour.
func ColorFor(probability float64) Color {
	pct := probability * 100
	switch {
	case pct > ThresholdRed:
		return Red
	case pct > ThresholdYellow:
		return Yellow
	default:
		return Green
	}
}

// Options controls bar geometry. Zero fields fall back to the defaults.
type Options struct {
	Width     int
	Height    int
	Thickness int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Thickness <= 0 {
		o.Thickness = DefaultThickness
	}
	if o.Thickness > o.Height {
		o.Thickness = o.Height
	}
	return o
}

// Bar is a laid-out gauge ready to draw.
type Bar struct {
	// Percent is the probability on the 0–100 scale, clamped for drawing.
	Percent float64

	// Color is the tier of the unclamped probability.
	Color Color

	// Fill is the drawn bar length in pixels.
	Fill float64

	opts Options
}

// New lays out a bar for probability using opts.
func New(probability float64, opts Options) Bar {
	opts = opts.withDefaults()
	pct := clamp(probability*100, 0, 100)
	return Bar{
		Percent: pct,
		Color:   ColorFor(probability),
		Fill:    pct / 100 * float64(opts.Width),
		opts:    opts,
	}
}

// WriteSVG draws the bar as a standalone SVG element with an x axis titled
// "Probability (%)" and ticks every 20%.
func (b Bar) WriteSVG(w io.Writer) error {
	o := b.opts
	totalW := o.Width + 2*margin
	totalH := o.Height + axisHeight
	barY := float64(o.Height-o.Thickness) / 2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" role="img" aria-label="Probability %.2f%%">`,
		totalW, totalH, totalW, totalH, b.Percent)
	fmt.Fprintf(&sb, `<g transform="translate(%d,0)">`, margin)
	fmt.Fprintf(&sb, `<rect class="track" x="0" y="%.1f" width="%d" height="%d" fill="#eeeeee"/>`, barY, o.Width, o.Thickness)
	fmt.Fprintf(&sb, `<rect class="bar" x="0" y="%.1f" width="%.2f" height="%d" fill="%s"/>`, barY, b.Fill, o.Thickness, b.Color)
	fmt.Fprintf(&sb, `<line x1="0" y1="%d" x2="%d" y2="%d" stroke="#888888"/>`, o.Height, o.Width, o.Height)
	for tick := 0; tick <= 100; tick += 20 {
		x := float64(tick) / 100 * float64(o.Width)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="#888888"/>`, x, o.Height, x, o.Height+5)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%d" font-size="10" text-anchor="middle">%d</text>`, x, o.Height+16, tick)
	}
	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="11" font-weight="bold" text-anchor="middle">Probability (%%)</text>`,
		o.Width/2, o.Height+axisHeight-4)
	sb.WriteString(`</g></svg>`)

	_, err := io.WriteString(w, sb.String())
	return err
}

// SVG returns the bar drawn by WriteSVG as a string.
func (b Bar) SVG() string {
	var sb strings.Builder
	b.WriteSVG(&sb) //nolint:errcheck // strings.Builder never fails
	return sb.String()
}

// WriteText draws the bar as a single terminal line, e.g.
//
//	[###########################-------------] 68.78% yellow
//
// cells is the bar length in characters; values below 1 use 40.
func (b Bar) WriteText(w io.Writer, cells int) error {
	if cells < 1 {
		cells = 40
	}
	filled := int(math.Round(b.Percent / 100 * float64(cells)))
	_, err := fmt.Fprintf(w, "[%s%s] %.2f%% %s\n",
		strings.Repeat("#", filled), strings.Repeat("-", cells-filled), b.Percent, b.Color)
	return err
}

// clamp restricts v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
