package chart

import (
	"bufio"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"sync"
)

// ErrDisposed is returned when rendering a chart that has been destroyed.
var ErrDisposed = errors.New("chart has been disposed")

// Chart is a rendered visualization attached to a Surface.
type Chart interface {
	Render(w io.Writer) error
	Destroy()
}

// Factory constructs a chart for a breakdown on a surface. On error nothing
// stays attached to the surface.
type Factory func(surface Surface, data Breakdown) (Chart, error)

const (
	legendHeight = 56
	padding      = 10
	cutout       = 0.5
	borderColor  = "#ffffff"
	emptyColor   = "#e5e7eb"
	textColor    = "#374151"
)

// Donut is a doughnut chart of a risk breakdown with the legend underneath.
type Donut struct {
	surface Surface
	data    Breakdown
	width   int
	height  int

	mu        sync.Mutex
	destroyed bool
	once      sync.Once
}

// NewDonut attaches a doughnut chart to surface. It is the default Factory.
func NewDonut(surface Surface, data Breakdown) (Chart, error) {
	if surface == nil {
		return nil, errors.New("no surface")
	}
	if err := surface.Acquire(); err != nil {
		return nil, fmt.Errorf("acquire surface: %w", err)
	}

	w, h := surface.Size()
	if h <= legendHeight+2*padding {
		surface.Release()
		return nil, fmt.Errorf("%w: height %d leaves no room for the chart", ErrSurfaceSize, h)
	}
	return &Donut{surface: surface, data: data, width: w, height: h}, nil
}

// Destroy detaches the chart from its surface. Repeated calls are no-ops.
func (d *Donut) Destroy() {
	d.once.Do(func() {
		d.mu.Lock()
		d.destroyed = true
		d.mu.Unlock()
		d.surface.Release()
	})
}

// Render writes the chart as an SVG document.
func (d *Donut) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return ErrDisposed
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		d.width, d.height, d.width, d.height)
	fmt.Fprintf(bw, `<title>%s</title>`, html.EscapeString(titleFor(d.data)))

	plotH := float64(d.height - legendHeight)
	cx, cy := float64(d.width)/2, plotH/2
	outer := math.Min(float64(d.width), plotH)/2 - padding
	inner := outer * cutout

	sum := d.data.Sum()
	if sum <= 0 || math.IsNaN(sum) {
		writeRing(bw, cx, cy, outer, inner, emptyColor)
	} else {
		start := -math.Pi / 2
		for _, c := range d.data.Categories {
			if c.Area <= 0 {
				continue
			}
			frac := c.Area / sum
			if frac >= 0.9999 {
				writeRing(bw, cx, cy, outer, inner, c.Color)
				break
			}
			end := start + frac*2*math.Pi
			writeSegment(bw, cx, cy, outer, inner, start, end, c.Color)
			start = end
		}
	}

	d.writeLegend(bw, plotH)
	bw.WriteString(`</svg>`)
	return bw.Flush()
}

func titleFor(b Breakdown) string {
	if b.Region == "" {
		return "Risk Distribution"
	}
	return "Risk Distribution: " + b.Region
}

func writeSegment(w *bufio.Writer, cx, cy, outer, inner, start, end float64, color string) {
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	x0, y0 := polar(cx, cy, outer, start)
	x1, y1 := polar(cx, cy, outer, end)
	x2, y2 := polar(cx, cy, inner, end)
	x3, y3 := polar(cx, cy, inner, start)
	fmt.Fprintf(w,
		`<path d="M%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 0 %.2f %.2f Z" fill="%s" stroke="%s" stroke-width="2"/>`,
		x0, y0, outer, outer, large, x1, y1, x2, y2, inner, inner, large, x3, y3, color, borderColor)
}

func writeRing(w *bufio.Writer, cx, cy, outer, inner float64, color string) {
	fmt.Fprintf(w,
		`<path fill-rule="evenodd" d="M%.2f %.2f a%.2f %.2f 0 1 0 %.2f 0 a%.2f %.2f 0 1 0 %.2f 0 Z M%.2f %.2f a%.2f %.2f 0 1 0 %.2f 0 a%.2f %.2f 0 1 0 %.2f 0 Z" fill="%s" stroke="%s" stroke-width="2"/>`,
		cx-outer, cy, outer, outer, 2*outer, outer, outer, -2*outer,
		cx-inner, cy, inner, inner, 2*inner, inner, inner, -2*inner,
		color, borderColor)
}

func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

func (d *Donut) writeLegend(w *bufio.Writer, top float64) {
	n := len(d.data.Categories)
	if n == 0 {
		return
	}
	slot := float64(d.width) / float64(n)
	y := top + legendHeight/2
	for i, c := range d.data.Categories {
		x := slot*float64(i) + 12
		fmt.Fprintf(w, `<circle cx="%.2f" cy="%.2f" r="5" fill="%s"/>`, x, y, c.Color)
		fmt.Fprintf(w, `<text x="%.2f" y="%.2f" font-size="11" fill="%s" dominant-baseline="middle">%s %s</text>`,
			x+9, y, textColor, html.EscapeString(c.Label), c.PercentText)
	}
}

// writePlaceholder renders the prompt shown when no chart is bound.
func writePlaceholder(w io.Writer, width, height int, message string) error {
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d"><rect width="100%%" height="100%%" fill="#f9fafb"/><text x="50%%" y="50%%" text-anchor="middle" dominant-baseline="middle" font-size="13" fill="#6b7280">%s</text></svg>`,
		width, height, width, height, html.EscapeString(message))
	return err
}
