package simulation

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/RMahshie/coilsim/internal/render"
	"github.com/RMahshie/coilsim/internal/repository"
	"github.com/RMahshie/coilsim/internal/storage"
	"github.com/RMahshie/coilsim/pkg/coil"
	"github.com/RMahshie/coilsim/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SimulationService runs the sweep for a stored simulation record
type SimulationService interface {
	RunSimulation(ctx context.Context, simulationID uuid.UUID) error
}

type simulationService struct {
	repository repository.SimulationRepository
	s3         storage.S3Service
	renderer   *render.Renderer
	params     coil.Parameters
}

// NewSimulationService creates a service that always sweeps params
func NewSimulationService(repo repository.SimulationRepository, s3Service storage.S3Service, renderer *render.Renderer, params coil.Parameters) SimulationService {
	return &simulationService{
		repository: repo,
		s3:         s3Service,
		renderer:   renderer,
		params:     params,
	}
}

// ArtifactKeys returns the object keys used for a simulation's outputs
func ArtifactKeys(simulationID uuid.UUID) models.Artifacts {
	prefix := fmt.Sprintf("simulations/%s/", simulationID)
	return models.Artifacts{
		FigureKey:   prefix + "figure.png",
		PageKey:     prefix + "chart.html",
		WorkbookKey: prefix + "samples.xlsx",
	}
}

func (s *simulationService) RunSimulation(ctx context.Context, simulationID uuid.UUID) error {
	logger := log.With().Str("simulationID", simulationID.String()).Logger()

	// Step 1: Update to processing status
	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusProcessing, 10); err != nil {
		return err
	}

	sim, err := s.repository.GetByID(ctx, simulationID)
	if err != nil {
		return err
	}

	// Step 2: Sweep
	if err := s.params.Validate(); err != nil {
		s.repository.UpdateError(ctx, simulationID, err.Error())
		return nil // Don't return error, status is updated to failed
	}
	res := coil.Sweep(s.params)
	logger.Info().
		Int("samples", res.Len()).
		Float64("resistance", res.Resistance).
		Float64("current", res.Current).
		Float64("area", res.Area).
		Msg("Sweep finished")

	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusProcessing, 30); err != nil {
		return err
	}

	// Step 3: Store samples
	sim.Resistance = &res.Resistance
	sim.Current = &res.Current
	sim.Area = &res.Area
	if err := s.repository.StoreResult(ctx, sim, models.SamplesFromResult(sim.ID, res)); err != nil {
		return fmt.Errorf("failed to store results: %w", err)
	}

	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusProcessing, 50); err != nil {
		return err
	}

	// Step 4: Render artifacts
	keys := ArtifactKeys(simulationID)
	artifacts := []struct {
		key         string
		contentType string
		render      func(io.Writer, *coil.Result) error
	}{
		{keys.FigureKey, render.FigureContentType, s.renderer.Figure},
		{keys.PageKey, render.PageContentType, s.renderer.Page},
		{keys.WorkbookKey, render.WorkbookContentType, s.renderer.Workbook},
	}

	rendered := make([][]byte, len(artifacts))
	for i, a := range artifacts {
		var buf bytes.Buffer
		if err := a.render(&buf, res); err != nil {
			logger.Error().Err(err).Str("key", a.key).Msg("Rendering failed")
			s.repository.UpdateError(ctx, simulationID, fmt.Sprintf("Failed to render %s", a.key))
			return nil
		}
		rendered[i] = buf.Bytes()
	}

	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusProcessing, 70); err != nil {
		return err
	}

	// Step 5: Upload
	uploaded := make([]string, 0, len(artifacts))
	for i, a := range artifacts {
		if err := s.s3.UploadFile(ctx, a.key, a.contentType, rendered[i]); err != nil {
			logger.Error().Err(err).Str("key", a.key).Msg("Upload failed")
			s.discard(ctx, uploaded)
			s.repository.UpdateError(ctx, simulationID, "Failed to upload simulation artifacts")
			return nil
		}
		uploaded = append(uploaded, a.key)
	}

	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusProcessing, 90); err != nil {
		s.discard(ctx, uploaded)
		return err
	}

	if err := s.repository.SetArtifacts(ctx, simulationID, keys); err != nil {
		s.discard(ctx, uploaded)
		return err
	}

	// Step 6: Mark complete
	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusCompleted, 100); err != nil {
		return err
	}

	logger.Info().Msg("Simulation completed")
	return nil
}

// discard removes artifacts of a run that did not complete. Failures are
// logged only; the run is already being marked failed.
func (s *simulationService) discard(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to delete partial artifact")
		}
	}
}
