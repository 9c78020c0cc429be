package coil

import "gonum.org/v1/gonum/floats"

// Linspace returns n evenly spaced values from start to end inclusive.
// n == 1 yields [start] and n <= 0 yields an empty slice.
func Linspace(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, end)
}

// TimeSeries returns SampleCount instants from 0 to EndTime.
func TimeSeries(p Parameters) []float64 {
	return Linspace(0, p.EndTime, p.SampleCount)
}

// AngularVelocitySeries interpolates the angular velocity bounds, converted
// to radians per second, over SampleCount samples.
func AngularVelocitySeries(p Parameters) []float64 {
	return Linspace(Radians(p.OmegaStartDeg), Radians(p.OmegaEndDeg), p.SampleCount)
}
