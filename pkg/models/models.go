package models

import (
	"time"

	"github.com/RMahshie/coilsim/pkg/coil"
)

// Simulation statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// Simulation represents a single sweep run (for internal use)
type Simulation struct {
	ID          string           `json:"id"`
	Label       string           `json:"label,omitempty"`
	Status      string           `json:"status"`
	Progress    int              `json:"progress"`
	Parameters  *coil.Parameters `json:"parameters,omitempty"`
	Resistance  *float64         `json:"resistance,omitempty"`
	Current     *float64         `json:"current,omitempty"`
	Area        *float64         `json:"area,omitempty"`
	SampleCount int              `json:"sample_count"`
	FigureKey   *string          `json:"figure_key,omitempty"`
	PageKey     *string          `json:"page_key,omitempty"`
	WorkbookKey *string          `json:"workbook_key,omitempty"`
	ErrorMsg    *string          `json:"error_message,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

// SimulationSample is one stored time index of a sweep. Values may be NaN or
// infinite.
type SimulationSample struct {
	SimulationID    string
	Index           int
	Time            float64
	AngularVelocity float64
	Angle           float64
	MagneticField   float64
	MagneticFlux    float64
	EMF             float64
}

// SamplesFromResult flattens a sweep result into storable rows.
func SamplesFromResult(simulationID string, res *coil.Result) []SimulationSample {
	samples := make([]SimulationSample, res.Len())
	for i := range samples {
		s := res.Sample(i)
		samples[i] = SimulationSample{
			SimulationID:    simulationID,
			Index:           i,
			Time:            s.Time,
			AngularVelocity: s.AngularVelocity,
			Angle:           s.Angle,
			MagneticField:   s.MagneticField,
			MagneticFlux:    s.MagneticFlux,
			EMF:             s.EMF,
		}
	}
	return samples
}

// Artifacts holds the object keys of the rendered outputs
type Artifacts struct {
	FigureKey   string
	PageKey     string
	WorkbookKey string
}

// FiniteOrNil returns nil for NaN and infinities so the value can be encoded
// as JSON null.
func FiniteOrNil(v float64) *float64 {
	if !coil.IsFinite(v) {
		return nil
	}
	return &v
}
