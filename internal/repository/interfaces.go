package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/coilsim/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a simulation does not exist
var ErrNotFound = errors.New("simulation not found")

// SimulationRepository defines the interface for simulation data operations
type SimulationRepository interface {
	Create(ctx context.Context, sim *models.Simulation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Simulation, error)
	List(ctx context.Context, limit int) ([]*models.Simulation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	StoreResult(ctx context.Context, sim *models.Simulation, samples []models.SimulationSample) error
	SetArtifacts(ctx context.Context, id uuid.UUID, artifacts models.Artifacts) error
	GetSamples(ctx context.Context, id uuid.UUID) ([]models.SimulationSample, error)
}
