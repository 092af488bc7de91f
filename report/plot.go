package report

import (
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/insurecost/pkg/errors"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 6 * vg.Inch
)

// newScatter builds an actual-vs-predicted scatter with the y = x reference line.
func newScatter(actual, predicted []float64) (*plot.Plot, error) {
	const op = "report.Plot"
	if len(actual) == 0 {
		return nil, errors.NewInsufficientDataError(op)
	}
	if len(actual) != len(predicted) {
		return nil, errors.NewDimensionError(op, len(actual), len(predicted), 0)
	}

	pts := make(plotter.XYs, len(actual))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range actual {
		pts[i].X = actual[i]
		pts[i].Y = predicted[i]
		lo = math.Min(lo, math.Min(actual[i], predicted[i]))
		hi = math.Max(hi, math.Max(actual[i], predicted[i]))
	}

	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	p := plot.New()
	p.Title.Text = "Actual vs predicted charges"
	p.X.Label.Text = "Actual"
	p.Y.Label.Text = "Predicted"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "building scatter")
	}
	scatter.GlyphStyle.Radius = vg.Points(2)

	identity := plotter.NewFunction(func(x float64) float64 { return x })
	identity.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(plotter.NewGrid(), scatter, identity)
	p.X.Min, p.X.Max = lo, hi
	p.Y.Min, p.Y.Max = lo, hi
	return p, nil
}

// SavePlot writes the scatter to path. The image format follows the extension
// (png, svg, pdf, ...).
func SavePlot(path string, actual, predicted []float64) error {
	p, err := newScatter(actual, predicted)
	if err != nil {
		return err
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return errors.Wrapf(err, "saving plot to %s", path)
	}
	return nil
}

// WritePlot encodes the scatter to w in the given format, e.g. "png" or "svg".
func WritePlot(w io.Writer, format string, actual, predicted []float64) error {
	p, err := newScatter(actual, predicted)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return errors.Wrapf(err, "encoding %s plot", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing plot")
	}
	return nil
}
