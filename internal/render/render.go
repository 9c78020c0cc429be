// Package render turns a coil sweep into the three presentation artifacts:
// a static PNG figure, an interactive HTML page and an XLSX workbook.
//
// All three plot magnetic field, magnetic flux and EMF against angular
// velocity. Samples whose values are NaN or infinite are left out of the
// plots and spelled out as text in the workbook.
package render

import (
	"image/color"
	"math"

	"github.com/RMahshie/coilsim/pkg/coil"
	"gonum.org/v1/plot/vg"
)

// Content types of the rendered artifacts
const (
	FigureContentType   = "image/png"
	PageContentType     = "text/html"
	WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// XLabel is shared by every panel.
const XLabel = "Angular Velocity (rad/s)"

// Renderer renders sweep results. The zero value is not usable; call New.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// New returns a Renderer producing figures of the given size in inches.
func New(widthInches, heightInches float64) *Renderer {
	if widthInches <= 0 {
		widthInches = 14
	}
	if heightInches <= 0 {
		heightInches = 8
	}
	return &Renderer{
		Width:  vg.Length(widthInches) * vg.Inch,
		Height: vg.Length(heightInches) * vg.Inch,
	}
}

type panel struct {
	title  string
	yLabel string
	legend string
	color  color.RGBA
	hex    string
	values func(*coil.Result) []float64
}

var panels = []panel{
	{
		title:  "Magnetic Field vs Angular Velocity",
		yLabel: "Magnetic Field (T)",
		legend: "Magnetic Field (B)",
		color:  color.RGBA{B: 255, A: 255},
		hex:    "#0000ff",
		values: func(r *coil.Result) []float64 { return r.MagneticField },
	},
	{
		title:  "Magnetic Flux vs Angular Velocity",
		yLabel: "Magnetic Flux (Wb)",
		legend: "Magnetic Flux (Φ)",
		color:  color.RGBA{G: 128, A: 255},
		hex:    "#008000",
		values: func(r *coil.Result) []float64 { return r.MagneticFlux },
	},
	{
		title:  "Electromotive Force vs Angular Velocity",
		yLabel: "Electromotive Force (V)",
		legend: "Electromotive Force (EMF)",
		color:  color.RGBA{R: 255, A: 255},
		hex:    "#ff0000",
		values: func(r *coil.Result) []float64 { return r.EMF },
	},
}

// flatRange returns an axis range of ±5% around v when every finite value
// equals v.
func flatRange(values []float64) (lo, hi float64, ok bool) {
	var v float64
	seen := false
	for _, y := range values {
		if !coil.IsFinite(y) {
			continue
		}
		if !seen {
			v, seen = y, true
			continue
		}
		if y != v {
			return 0, 0, false
		}
	}
	if !seen {
		return 0, 0, false
	}

	pad := 0.05 * math.Abs(v)
	if pad == 0 {
		pad = 0.05
	}
	return v - pad, v + pad, true
}
