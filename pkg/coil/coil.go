// Package coil evaluates the field, flux and electromotive force of a single
// rotating coil over a fixed time series.
//
// The formulas follow a classroom model with two quirks that do not match
// textbook electromagnetism:
//
//   - the instantaneous angle is the ratio θ = ω/t rather than an integrated
//     phase, so the first sample (t = 0) has an infinite angle and NaN flux
//     and EMF;
//   - the EMF is N·(N·B·A·sin θ), i.e. it carries N² rather than N·ω.
//
// Numeric faults are never reported as errors. They propagate into the output
// sequences as NaN or ±Inf and it is up to the consumer to skip them.
package coil

import "math"

// Mu0 is the vacuum permeability in T·m/A.
const Mu0 = 4 * math.Pi * 1e-7

// MagneticField returns B = μ₀·N·I / L in tesla.
func MagneticField(turns int, current, coilLength float64) float64 {
	return Mu0 * float64(turns) * current / coilLength
}

// MagneticFlux returns Φ = B·A·cos θ in weber.
func MagneticFlux(field, area, theta float64) float64 {
	return field * area * math.Cos(theta)
}

// ElectromotiveForce returns N·(N·B·A·sin θ) in volts.
func ElectromotiveForce(turns int, field, area, theta float64) float64 {
	n := float64(turns)
	dFlux := n * field * area * math.Sin(theta)
	return n * dFlux
}

// Resistance returns wireLength / (resistivity · wireArea) in ohms.
func Resistance(wireArea, wireLength, resistivity float64) float64 {
	return wireLength / (resistivity * wireArea)
}

// CoilArea treats the coil length as the circumference of a circular loop
// and returns π·(L/2π)².
func CoilArea(coilLength float64) float64 {
	r := coilLength / (2 * math.Pi)
	return math.Pi * r * r
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
