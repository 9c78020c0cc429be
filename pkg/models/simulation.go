package models

import (
	"time"

	"github.com/RMahshie/coilsim/pkg/coil"
)

// CreateSimulationRequest represents a request to run the reference sweep
type CreateSimulationRequest struct {
	Body struct {
		Label string `json:"label,omitempty" maxLength:"100" doc:"Optional human-readable label"`
	}
}

// CreateSimulationResponseBody is the body of the create simulation response
type CreateSimulationResponseBody struct {
	ID     string `json:"id" doc:"Simulation unique identifier"`
	Status string `json:"status" doc:"Initial simulation status"`
}

// CreateSimulationResponse represents the response from creating a simulation
type CreateSimulationResponse struct {
	Body CreateSimulationResponseBody
}

// ListSimulationsRequest represents a request to list recent simulations
type ListSimulationsRequest struct {
	Limit int `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum number of simulations to return"`
}

// SimulationSummary is one entry of the simulation list
type SimulationSummary struct {
	ID        string    `json:"id" doc:"Simulation ID"`
	Label     string    `json:"label,omitempty" doc:"Simulation label"`
	Status    string    `json:"status" enum:"pending,processing,completed,failed" doc:"Simulation status"`
	Progress  int       `json:"progress" minimum:"0" maximum:"100" doc:"Progress percentage"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
}

// ListSimulationsResponseBody is the body of the list response
type ListSimulationsResponseBody struct {
	Simulations []SimulationSummary `json:"simulations" doc:"Simulations, newest first"`
}

// ListSimulationsResponse represents a list of simulations
type ListSimulationsResponse struct {
	Body ListSimulationsResponseBody
}

// GetSimulationStatusRequest represents a request to get simulation status
type GetSimulationStatusRequest struct {
	ID string `path:"id" doc:"Simulation ID"`
}

// GetSimulationStatusResponseBody is the body of the status response
type GetSimulationStatusResponseBody struct {
	ID       string `json:"id" doc:"Simulation ID"`
	Status   string `json:"status" enum:"pending,processing,completed,failed" doc:"Simulation status"`
	Progress int    `json:"progress" minimum:"0" maximum:"100" doc:"Progress percentage"`
	Message  string `json:"message,omitempty" doc:"Human-readable status message"`
	Error    string `json:"error,omitempty" doc:"Failure reason when status is failed"`
}

// GetSimulationStatusResponse represents the current status of a simulation
type GetSimulationStatusResponse struct {
	Body GetSimulationStatusResponseBody
}

// GetSimulationResultsRequest represents a request to get simulation results
type GetSimulationResultsRequest struct {
	ID string `path:"id" doc:"Simulation ID"`
}

// SamplePoint is a sample as exposed over the API. Non-finite values are null.
type SamplePoint struct {
	Index           int      `json:"index" doc:"Time index"`
	Time            float64  `json:"time" doc:"Time in seconds"`
	AngularVelocity float64  `json:"angular_velocity" doc:"Angular velocity in rad/s"`
	Angle           *float64 `json:"angle" doc:"Angle in radians (omega / t)"`
	MagneticField   *float64 `json:"magnetic_field" doc:"Magnetic field in tesla"`
	MagneticFlux    *float64 `json:"magnetic_flux" doc:"Magnetic flux in weber"`
	EMF             *float64 `json:"emf" doc:"Electromotive force in volts"`
}

// NewSamplePoint converts a stored sample into its API form
func NewSamplePoint(s SimulationSample) SamplePoint {
	return SamplePoint{
		Index:           s.Index,
		Time:            s.Time,
		AngularVelocity: s.AngularVelocity,
		Angle:           FiniteOrNil(s.Angle),
		MagneticField:   FiniteOrNil(s.MagneticField),
		MagneticFlux:    FiniteOrNil(s.MagneticFlux),
		EMF:             FiniteOrNil(s.EMF),
	}
}

// GetSimulationResultsResponseBody is the body of the results response
type GetSimulationResultsResponseBody struct {
	ID          string          `json:"id" doc:"Simulation ID"`
	Parameters  coil.Parameters `json:"parameters" doc:"Parameters the sweep ran with"`
	Resistance  *float64        `json:"resistance" doc:"Coil resistance in ohms"`
	Current     *float64        `json:"current" doc:"Coil current in amperes"`
	Area        *float64        `json:"area" doc:"Coil loop area in square meters"`
	SampleCount int             `json:"sample_count" doc:"Number of samples"`
	Samples     []SamplePoint   `json:"samples" doc:"Per-sample values"`
	CreatedAt   time.Time       `json:"created_at" doc:"Simulation creation timestamp"`
}

// GetSimulationResultsResponse represents the complete simulation results
type GetSimulationResultsResponse struct {
	Body GetSimulationResultsResponseBody
}

// GetSimulationArtifactsRequest represents a request for artifact download URLs
type GetSimulationArtifactsRequest struct {
	ID string `path:"id" doc:"Simulation ID"`
}

// GetSimulationArtifactsResponseBody is the body of the artifacts response
type GetSimulationArtifactsResponseBody struct {
	FigureURL   string `json:"figure_url" doc:"Pre-signed URL of the PNG figure"`
	PageURL     string `json:"page_url" doc:"Pre-signed URL of the interactive HTML charts"`
	WorkbookURL string `json:"workbook_url" doc:"Pre-signed URL of the XLSX workbook"`
	ExpiresIn   int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// GetSimulationArtifactsResponse represents artifact download URLs
type GetSimulationArtifactsResponse struct {
	Body GetSimulationArtifactsResponseBody
}

// DownloadArtifactRequest represents a request to fetch one artifact through the API
type DownloadArtifactRequest struct {
	ID   string `path:"id" doc:"Simulation ID"`
	Name string `path:"name" enum:"figure,page,workbook" doc:"Artifact name"`
}

// DownloadArtifactResponse carries the raw artifact bytes
type DownloadArtifactResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// GetParametersResponse returns the fixed parameter set
type GetParametersResponse struct {
	Body coil.Parameters
}
