package render

import (
	"fmt"
	"io"

	"github.com/RMahshie/coilsim/pkg/coil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure writes the three panels stacked vertically as a PNG image.
func (r *Renderer) Figure(w io.Writer, res *coil.Result) error {
	plots := make([][]*plot.Plot, len(panels))
	for i, pn := range panels {
		p, err := pn.plot(res)
		if err != nil {
			return fmt.Errorf("failed to build %q plot: %w", pn.title, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(r.Width, r.Height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(12),
		PadY:      vg.Points(12),
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode figure: %w", err)
	}
	return nil
}

func (pn panel) plot(res *coil.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pn.title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = pn.yLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	xys := finiteXYs(res.AngularVelocity, pn.values(res))
	if len(xys) == 0 {
		return p, nil
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = pn.color
	line.Width = vg.Points(1.5)

	p.Add(line)
	p.Legend.Add(pn.legend, line)

	ys := make([]float64, len(xys))
	for i, xy := range xys {
		ys[i] = xy.Y
	}
	if lo, hi, ok := flatRange(ys); ok {
		p.Y.Min, p.Y.Max = lo, hi
	}
	return p, nil
}

// finiteXYs pairs x and y, dropping points where either is NaN or infinite.
func finiteXYs(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(x))
	for i := range x {
		if i >= len(y) {
			break
		}
		if coil.IsFinite(x[i]) && coil.IsFinite(y[i]) {
			xys = append(xys, plotter.XY{X: x[i], Y: y[i]})
		}
	}
	return xys
}
