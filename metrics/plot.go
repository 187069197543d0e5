package metrics

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// PlotPredictions は実測値と予測値の散布図を y = x の参照線付きで保存する。
// 拡張子（.png, .svg, .pdf）で形式が決まる。
func PlotPredictions(yTrue, yPred []float64, title, filename string) error {
	if len(yTrue) != len(yPred) {
		return errors.NewDimensionError("PlotPredictions", len(yTrue), len(yPred), 0)
	}
	if len(yTrue) == 0 {
		return errors.NewModelError("PlotPredictions", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"

	pts := make(plotter.XYs, len(yTrue))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range yTrue {
		pts[i].X, pts[i].Y = yTrue[i], yPred[i]
		lo = math.Min(lo, math.Min(yTrue[i], yPred[i]))
		hi = math.Max(hi, math.Max(yTrue[i], yPred[i]))
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "create scatter")
	}
	s.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(s)

	ref, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return errors.Wrap(err, "create reference line")
	}
	ref.LineStyle.Color = color.RGBA{R: 200, A: 255}
	ref.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(ref)

	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "save plot %s", filename)
	}
	return nil
}
