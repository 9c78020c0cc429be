package handlers

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/RMahshie/coilsim/internal/render"
	"github.com/RMahshie/coilsim/internal/repository"
	"github.com/RMahshie/coilsim/internal/simulation"
	"github.com/RMahshie/coilsim/internal/storage"
	"github.com/RMahshie/coilsim/pkg/coil"
	"github.com/RMahshie/coilsim/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SimulationHandler handles simulation-related HTTP requests
type SimulationHandler struct {
	repo          repository.SimulationRepository
	s3Service     storage.S3Service
	simulationSvc simulation.SimulationService
	params        coil.Parameters
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(repo repository.SimulationRepository, s3Service storage.S3Service, simulationSvc simulation.SimulationService, params coil.Parameters) *SimulationHandler {
	return &SimulationHandler{
		repo:          repo,
		s3Service:     s3Service,
		simulationSvc: simulationSvc,
		params:        params,
	}
}

// CreateSimulation records a new run of the reference sweep and starts it in the background
func (h *SimulationHandler) CreateSimulation(ctx context.Context, req *models.CreateSimulationRequest) (*models.CreateSimulationResponse, error) {
	simulationID := uuid.New()
	params := h.params

	sim := &models.Simulation{
		ID:          simulationID.String(),
		Label:       req.Body.Label,
		Status:      models.StatusPending,
		Progress:    0,
		Parameters:  &params,
		SampleCount: params.SampleCount,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	log.Info().Str("simulationID", sim.ID).Str("label", sim.Label).Msg("Creating simulation record")
	if err := h.repo.Create(ctx, sim); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create simulation", err)
	}

	// Run in background (don't wait for completion)
	go func() {
		if err := h.simulationSvc.RunSimulation(context.Background(), simulationID); err != nil {
			log.Error().Err(err).Str("simulationID", simulationID.String()).Msg("Simulation failed")
			h.repo.UpdateError(context.Background(), simulationID, fmt.Sprintf("Simulation failed: %v", err))
		}
	}()

	return &models.CreateSimulationResponse{
		Body: models.CreateSimulationResponseBody{
			ID:     sim.ID,
			Status: sim.Status,
		},
	}, nil
}

// ListSimulations returns the most recent simulations
func (h *SimulationHandler) ListSimulations(ctx context.Context, req *models.ListSimulationsRequest) (*models.ListSimulationsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}

	sims, err := h.repo.List(ctx, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list simulations", err)
	}

	resp := &models.ListSimulationsResponse{}
	resp.Body.Simulations = make([]models.SimulationSummary, 0, len(sims))
	for _, sim := range sims {
		resp.Body.Simulations = append(resp.Body.Simulations, models.SimulationSummary{
			ID:        sim.ID,
			Label:     sim.Label,
			Status:    sim.Status,
			Progress:  sim.Progress,
			CreatedAt: sim.CreatedAt,
		})
	}
	return resp, nil
}

// GetSimulationStatus returns the current status of a simulation
func (h *SimulationHandler) GetSimulationStatus(ctx context.Context, req *models.GetSimulationStatusRequest) (*models.GetSimulationStatusResponse, error) {
	sim, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	body := models.GetSimulationStatusResponseBody{
		ID:       sim.ID,
		Status:   sim.Status,
		Progress: sim.Progress,
		Message:  statusMessage(sim.Status, sim.Progress),
	}
	if sim.ErrorMsg != nil {
		body.Error = *sim.ErrorMsg
	}

	return &models.GetSimulationStatusResponse{Body: body}, nil
}

// GetSimulationResults returns the derived scalars and every sample
func (h *SimulationHandler) GetSimulationResults(ctx context.Context, req *models.GetSimulationResultsRequest) (*models.GetSimulationResultsResponse, error) {
	sim, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if sim.Status != models.StatusCompleted {
		return nil, huma.Error409Conflict("Simulation not yet completed",
			fmt.Errorf("simulation status is %s", sim.Status))
	}

	samples, err := h.repo.GetSamples(ctx, uuid.MustParse(sim.ID))
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to get samples", err)
	}

	body := models.GetSimulationResultsResponseBody{
		ID:          sim.ID,
		Resistance:  finitePtr(sim.Resistance),
		Current:     finitePtr(sim.Current),
		Area:        finitePtr(sim.Area),
		SampleCount: len(samples),
		Samples:     make([]models.SamplePoint, len(samples)),
		CreatedAt:   sim.CreatedAt,
	}
	if sim.Parameters != nil {
		body.Parameters = *sim.Parameters
	}
	for i, s := range samples {
		body.Samples[i] = models.NewSamplePoint(s)
	}

	return &models.GetSimulationResultsResponse{Body: body}, nil
}

// GetSimulationArtifacts returns pre-signed download URLs for the rendered outputs
func (h *SimulationHandler) GetSimulationArtifacts(ctx context.Context, req *models.GetSimulationArtifactsRequest) (*models.GetSimulationArtifactsResponse, error) {
	sim, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if sim.Status != models.StatusCompleted || sim.FigureKey == nil || sim.PageKey == nil || sim.WorkbookKey == nil {
		return nil, huma.Error409Conflict("Simulation artifacts not available",
			fmt.Errorf("simulation status is %s", sim.Status))
	}

	urls := make([]string, 3)
	for i, key := range []string{*sim.FigureKey, *sim.PageKey, *sim.WorkbookKey} {
		url, err := h.s3Service.GenerateDownloadURL(ctx, key)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to generate download URL", err)
		}
		urls[i] = url
	}

	return &models.GetSimulationArtifactsResponse{
		Body: models.GetSimulationArtifactsResponseBody{
			FigureURL:   urls[0],
			PageURL:     urls[1],
			WorkbookURL: urls[2],
			ExpiresIn:   int(storage.DownloadURLExpiry.Seconds()),
		},
	}, nil
}

// DownloadArtifact proxies one rendered artifact out of storage
func (h *SimulationHandler) DownloadArtifact(ctx context.Context, req *models.DownloadArtifactRequest) (*models.DownloadArtifactResponse, error) {
	sim, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	key, contentType := artifactFor(sim, req.Name)
	if contentType == "" {
		return nil, huma.Error404NotFound("Unknown artifact", fmt.Errorf("artifact %q", req.Name))
	}
	if key == nil {
		return nil, huma.Error409Conflict("Simulation artifacts not available",
			fmt.Errorf("simulation status is %s", sim.Status))
	}

	data, err := h.s3Service.DownloadFile(ctx, *key)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to download artifact", err)
	}

	return &models.DownloadArtifactResponse{
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", path.Base(*key)),
		Body:               data,
	}, nil
}

// GetParameters returns the fixed parameter set every simulation runs with
func (h *SimulationHandler) GetParameters(ctx context.Context, _ *struct{}) (*models.GetParametersResponse, error) {
	return &models.GetParametersResponse{Body: h.params}, nil
}

// lookup parses id and loads the simulation, mapping failures to HTTP errors
func (h *SimulationHandler) lookup(ctx context.Context, id string) (*models.Simulation, error) {
	simulationID, err := uuid.Parse(id)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid simulation ID", err)
	}

	sim, err := h.repo.GetByID(ctx, simulationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, huma.Error404NotFound("Simulation not found", err)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to get simulation", err)
	}
	return sim, nil
}

func artifactFor(sim *models.Simulation, name string) (*string, string) {
	switch name {
	case "figure":
		return sim.FigureKey, render.FigureContentType
	case "page":
		return sim.PageKey, render.PageContentType
	case "workbook":
		return sim.WorkbookKey, render.WorkbookContentType
	}
	return nil, ""
}

func finitePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return models.FiniteOrNil(*v)
}

// statusMessage creates a human-readable status message
func statusMessage(status string, progress int) string {
	switch status {
	case models.StatusPending:
		return "Simulation queued..."
	case models.StatusProcessing:
		if progress < 30 {
			return "Sweeping angular velocity..."
		} else if progress < 50 {
			return "Storing samples..."
		} else if progress < 70 {
			return "Rendering plots..."
		} else {
			return "Uploading artifacts..."
		}
	case models.StatusCompleted:
		return "Simulation complete!"
	case models.StatusFailed:
		return "Simulation failed."
	default:
		return "Unknown status"
	}
}
