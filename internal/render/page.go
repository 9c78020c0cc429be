package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/RMahshie/coilsim/pkg/coil"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// missing is how echarts marks an absent data point.
const missing = "-"

// Page writes an HTML document with one interactive line chart per panel.
func (r *Renderer) Page(w io.Writer, res *coil.Result) error {
	page := components.NewPage()
	page.PageTitle = "Coil Simulation"

	xAxis := make([]string, res.Len())
	for i, omega := range res.AngularVelocity {
		xAxis[i] = strconv.FormatFloat(omega, 'g', 6, 64)
	}

	for _, pn := range panels {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{
				Theme: types.ThemeWesteros,
			}),
			charts.WithTitleOpts(opts.Title{
				Title:    pn.title,
				Subtitle: fmt.Sprintf("N=%d, %d samples", res.Parameters.Turns, res.Len()),
			}),
			charts.WithTooltipOpts(opts.Tooltip{
				Show:    opts.Bool(true),
				Trigger: "axis",
			}),
			charts.WithLegendOpts(opts.Legend{
				Show:  opts.Bool(true),
				Right: "10",
			}),
			charts.WithXAxisOpts(opts.XAxis{
				Name:        XLabel,
				SplitNumber: 20,
			}),
			charts.WithYAxisOpts(pn.yAxis(res)),
			charts.WithDataZoomOpts(opts.DataZoom{
				Type:       "inside",
				Start:      0,
				End:        100,
				XAxisIndex: []int{0},
			}),
		)

		line.SetXAxis(xAxis).AddSeries(pn.legend, lineData(pn.values(res)),
			charts.WithLineStyleOpts(opts.LineStyle{Color: pn.hex}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: pn.hex}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		)

		page.AddCharts(line)
	}

	return page.Render(w)
}

func (pn panel) yAxis(res *coil.Result) opts.YAxis {
	axis := opts.YAxis{
		Name:      pn.yLabel,
		Scale:     opts.Bool(true),
		SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
	}
	if lo, hi, ok := flatRange(pn.values(res)); ok {
		axis.Min, axis.Max = lo, hi
	}
	return axis
}

func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		if coil.IsFinite(v) {
			items[i].Value = v
		} else {
			items[i].Value = missing
		}
	}
	return items
}
