package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RMahshie/coilsim/internal/repository"
	"github.com/RMahshie/coilsim/pkg/coil"
	"github.com/RMahshie/coilsim/pkg/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const simulationColumns = `id, label, status, progress, parameters, resistance, coil_current, area, sample_count,
		figure_key, page_key, workbook_key, error_message, created_at, updated_at, completed_at`

// PostgresSimulationRepository implements SimulationRepository for PostgreSQL
type PostgresSimulationRepository struct {
	db *sql.DB
}

// NewPostgresSimulationRepository creates a new PostgreSQL simulation repository
func NewPostgresSimulationRepository(db *sql.DB) repository.SimulationRepository {
	return &PostgresSimulationRepository{db: db}
}

// Create inserts a new simulation record
func (r *PostgresSimulationRepository) Create(ctx context.Context, sim *models.Simulation) error {
	params, err := marshalParameters(sim.Parameters)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO simulations (id, label, status, progress, parameters, sample_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		sim.ID,
		sim.Label,
		sim.Status,
		sim.Progress,
		params,
		sim.SampleCount,
		sim.CreatedAt,
		sim.UpdatedAt)

	return err
}

// GetByID retrieves a simulation by ID
func (r *PostgresSimulationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Simulation, error) {
	query := `SELECT ` + simulationColumns + `
		FROM simulations
		WHERE id = $1`

	sim, err := scanSimulation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sim, nil
}

// List returns the most recent simulations, newest first
func (r *PostgresSimulationRepository) List(ctx context.Context, limit int) ([]*models.Simulation, error) {
	query := `SELECT ` + simulationColumns + `
		FROM simulations
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sims []*models.Simulation
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}

	return sims, rows.Err()
}

// UpdateStatus updates the status and progress of a simulation
func (r *PostgresSimulationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE simulations
		SET status = $1, progress = $2, updated_at = NOW(),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $3`

	return r.execOne(ctx, query, status, progress, id)
}

// UpdateError marks a simulation failed with a message
func (r *PostgresSimulationRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE simulations
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	return r.execOne(ctx, query, errorMsg, id)
}

// StoreResult saves the derived scalars and every sample in one transaction.
// NaN and infinite values are stored as float8 NaN/Infinity.
func (r *PostgresSimulationRepository) StoreResult(ctx context.Context, sim *models.Simulation, samples []models.SimulationSample) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE simulations
		SET resistance = $1, coil_current = $2, area = $3, sample_count = $4, updated_at = NOW()
		WHERE id = $5`,
		sim.Resistance,
		sim.Current,
		sim.Area,
		len(samples),
		sim.ID)
	if err != nil {
		return fmt.Errorf("failed to update simulation: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("simulation_samples",
		"simulation_id", "idx", "t", "angular_velocity", "angle", "magnetic_field", "magnetic_flux", "emf"))
	if err != nil {
		return fmt.Errorf("failed to prepare sample copy: %w", err)
	}

	for _, s := range samples {
		if _, err := stmt.ExecContext(ctx,
			sim.ID,
			s.Index,
			s.Time,
			s.AngularVelocity,
			s.Angle,
			s.MagneticField,
			s.MagneticFlux,
			s.EMF); err != nil {
			stmt.Close()
			return fmt.Errorf("failed to copy sample %d: %w", s.Index, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush samples: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close sample copy: %w", err)
	}

	return tx.Commit()
}

// SetArtifacts records the object keys of the rendered outputs
func (r *PostgresSimulationRepository) SetArtifacts(ctx context.Context, id uuid.UUID, artifacts models.Artifacts) error {
	query := `
		UPDATE simulations
		SET figure_key = $1, page_key = $2, workbook_key = $3, updated_at = NOW()
		WHERE id = $4`

	return r.execOne(ctx, query, artifacts.FigureKey, artifacts.PageKey, artifacts.WorkbookKey, id)
}

// GetSamples retrieves the samples of a simulation in index order
func (r *PostgresSimulationRepository) GetSamples(ctx context.Context, id uuid.UUID) ([]models.SimulationSample, error) {
	query := `
		SELECT simulation_id, idx, t, angular_velocity, angle, magnetic_field, magnetic_flux, emf
		FROM simulation_samples
		WHERE simulation_id = $1
		ORDER BY idx`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.SimulationSample
	for rows.Next() {
		var s models.SimulationSample
		if err := rows.Scan(
			&s.SimulationID,
			&s.Index,
			&s.Time,
			&s.AngularVelocity,
			&s.Angle,
			&s.MagneticField,
			&s.MagneticFlux,
			&s.EMF); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

func (r *PostgresSimulationRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSimulation(row scanner) (*models.Simulation, error) {
	var sim models.Simulation
	var params []byte
	var resistance, current, area sql.NullFloat64
	var figureKey, pageKey, workbookKey, errorMsg sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&sim.ID,
		&sim.Label,
		&sim.Status,
		&sim.Progress,
		&params,
		&resistance,
		&current,
		&area,
		&sim.SampleCount,
		&figureKey,
		&pageKey,
		&workbookKey,
		&errorMsg,
		&sim.CreatedAt,
		&sim.UpdatedAt,
		&completedAt)
	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		var p coil.Parameters
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parameters: %w", err)
		}
		sim.Parameters = &p
	}
	if resistance.Valid {
		sim.Resistance = &resistance.Float64
	}
	if current.Valid {
		sim.Current = &current.Float64
	}
	if area.Valid {
		sim.Area = &area.Float64
	}
	if figureKey.Valid {
		sim.FigureKey = &figureKey.String
	}
	if pageKey.Valid {
		sim.PageKey = &pageKey.String
	}
	if workbookKey.Valid {
		sim.WorkbookKey = &workbookKey.String
	}
	if errorMsg.Valid {
		sim.ErrorMsg = &errorMsg.String
	}
	if completedAt.Valid {
		sim.CompletedAt = &completedAt.Time
	}

	return &sim, nil
}

func marshalParameters(p *coil.Parameters) (interface{}, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameters: %w", err)
	}
	return string(data), nil
}
