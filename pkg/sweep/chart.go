package sweep

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series one labelled curve
type Series struct {
	Label  string
	Points plotter.XYs
}

// Chart logical content of a single plot: curves, axes and legend
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	// LogY draws the y axis on a logarithmic scale
	LogY bool
	// Markers draws a glyph at every sample in addition to the line
	Markers bool
	Series  []Series
}

// NewXYs pairs xs and ys into plotter points; extra values of the longer slice are ignored
func NewXYs(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, n)
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

// Legend labels in the order they are drawn
func (c *Chart) Legend() []string {
	labels := make([]string, len(c.Series))
	for i, s := range c.Series {
		labels[i] = s.Label
	}
	return labels
}

// Render builds the gonum plot with one styled line per series, a legend and a grid.
func (c *Chart) Render() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true

	if c.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	for i, s := range c.Series {
		pts := s.Points
		if c.LogY {
			pts = positiveY(pts)
		}
		if len(pts) == 0 {
			log.Debugf("series %q has no drawable points", s.Label)
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %v", s.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		line.Width = vg.Points(1.5)
		p.Add(line)

		if !c.Markers {
			p.Legend.Add(s.Label, line)
			continue
		}
		points, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %v", s.Label, err)
		}
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(points)
		p.Legend.Add(s.Label, line, points)
	}
	return p, nil
}

// Save renders the chart and writes it to path; the image format follows the file extension.
func (c *Chart) Save(path string, width, height vg.Length) error {
	p, err := c.Render()
	if err != nil {
		return fmt.Errorf("failed to render chart %s: %v", path, err)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %v", path, err)
	}
	log.Infof("Chart saved to %s", path)
	return nil
}

// log scales cannot place y <= 0
func positiveY(pts plotter.XYs) plotter.XYs {
	kept := make(plotter.XYs, 0, len(pts))
	for _, pt := range pts {
		if pt.Y > 0 {
			kept = append(kept, pt)
		}
	}
	return kept
}
