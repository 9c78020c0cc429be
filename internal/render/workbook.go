package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/RMahshie/coilsim/pkg/coil"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	samplesSheet = "Samples"
)

var sampleHeaders = []interface{}{
	"No",
	"t [s]",
	"ω [rad/s]",
	"θ [rad]",
	"B [T]",
	"Φ [Wb]",
	"EMF [V]",
}

// Workbook writes an XLSX file with a parameter summary sheet and one row per
// sample. Values are stored in SI units.
func (r *Renderer) Workbook(w io.Writer, res *coil.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	p := res.Parameters
	summary := [][]interface{}{
		{"Parameter", "Value"},
		{"Turns", p.Turns},
		{"Coil length [m]", p.CoilLength},
		{"Applied voltage [V]", p.AppliedVoltage},
		{"Wire area [m²]", p.WireArea},
		{"Wire length [m]", p.WireLength},
		{"Resistivity [Ω·m]", p.Resistivity},
		{"ω start [°/s]", p.OmegaStartDeg},
		{"ω end [°/s]", p.OmegaEndDeg},
		{"End time [s]", p.EndTime},
		{"Samples", res.Len()},
		{"Resistance [Ω]", cellValue(res.Resistance)},
		{"Current [A]", cellValue(res.Current)},
		{"Coil area [m²]", cellValue(res.Area)},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 22); err != nil {
		return err
	}

	idx, err := f.NewSheet(samplesSheet)
	if err != nil {
		return err
	}
	if err := setRow(f, samplesSheet, 1, sampleHeaders); err != nil {
		return err
	}
	for i := 0; i < res.Len(); i++ {
		s := res.Sample(i)
		row := []interface{}{
			i + 1,
			cellValue(s.Time),
			cellValue(s.AngularVelocity),
			cellValue(s.Angle),
			cellValue(s.MagneticField),
			cellValue(s.MagneticFlux),
			cellValue(s.EMF),
		}
		if err := setRow(f, samplesSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(samplesSheet, "A", "G", 16); err != nil {
		return err
	}

	f.SetActiveSheet(idx)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// cellValue keeps finite floats numeric and spells out NaN and infinities,
// which the xlsx number format cannot hold.
func cellValue(v float64) interface{} {
	if coil.IsFinite(v) {
		return v
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
