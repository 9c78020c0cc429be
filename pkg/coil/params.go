package coil

import (
	"errors"
	"fmt"
)

// ErrInvalidParameters is wrapped by every error returned from Validate.
var ErrInvalidParameters = errors.New("coil: invalid parameters")

// Parameters is the immutable input record of a sweep.
type Parameters struct {
	Turns          int     `json:"turns" doc:"Number of turns"`
	CoilLength     float64 `json:"coil_length" doc:"Coil length in meters"`
	AppliedVoltage float64 `json:"applied_voltage" doc:"Applied voltage in volts"`
	WireArea       float64 `json:"wire_area" doc:"Wire cross-sectional area in square meters"`
	WireLength     float64 `json:"wire_length" doc:"Wire length in meters"`
	Resistivity    float64 `json:"resistivity" doc:"Wire resistivity in ohm meters"`
	OmegaStartDeg  float64 `json:"omega_start_deg" doc:"Initial angular velocity in degrees per second"`
	OmegaEndDeg    float64 `json:"omega_end_deg" doc:"Final angular velocity in degrees per second"`
	EndTime        float64 `json:"end_time" doc:"Last time sample in seconds"`
	SampleCount    int     `json:"sample_count" doc:"Number of time samples"`
}

// DefaultParameters returns the reference copper coil: 1000 turns driven at
// 20 V, swept from 60 to 90 degrees per second over one second.
func DefaultParameters() Parameters {
	return Parameters{
		Turns:          1000,
		CoilLength:     2.0,
		AppliedVoltage: 20.0,
		WireArea:       5.3476e-5,
		WireLength:     25.9,
		Resistivity:    1.68e-8,
		OmegaStartDeg:  60.0,
		OmegaEndDeg:    90.0,
		EndTime:        1.0,
		SampleCount:    1000,
	}
}

// Validate checks the positivity guarantees the formulas rely on. Sweep does
// not call it.
func (p Parameters) Validate() error {
	switch {
	case p.Turns <= 0:
		return fmt.Errorf("%w: turns must be positive, got %d", ErrInvalidParameters, p.Turns)
	case p.CoilLength <= 0:
		return fmt.Errorf("%w: coil length must be positive, got %g", ErrInvalidParameters, p.CoilLength)
	case p.WireArea <= 0:
		return fmt.Errorf("%w: wire area must be positive, got %g", ErrInvalidParameters, p.WireArea)
	case p.WireLength <= 0:
		return fmt.Errorf("%w: wire length must be positive, got %g", ErrInvalidParameters, p.WireLength)
	case p.Resistivity <= 0:
		return fmt.Errorf("%w: resistivity must be positive, got %g", ErrInvalidParameters, p.Resistivity)
	case p.EndTime <= 0:
		return fmt.Errorf("%w: end time must be positive, got %g", ErrInvalidParameters, p.EndTime)
	case p.SampleCount < 2:
		return fmt.Errorf("%w: sample count must be at least 2, got %d", ErrInvalidParameters, p.SampleCount)
	}
	for _, v := range []float64{p.CoilLength, p.AppliedVoltage, p.WireArea, p.WireLength, p.Resistivity, p.OmegaStartDeg, p.OmegaEndDeg, p.EndTime} {
		if !IsFinite(v) {
			return fmt.Errorf("%w: non-finite value %g", ErrInvalidParameters, v)
		}
	}
	return nil
}
