package simulation

import (
	"bytes"
	"context"
	"testing"

	"github.com/RMahshie/coilsim/internal/render"
	"github.com/RMahshie/coilsim/pkg/coil"
	"github.com/RMahshie/coilsim/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSimulationRepository implements repository.SimulationRepository for testing
type MockSimulationRepository struct {
	mock.Mock
}

func (m *MockSimulationRepository) Create(ctx context.Context, sim *models.Simulation) error {
	args := m.Called(ctx, sim)
	return args.Error(0)
}

func (m *MockSimulationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Simulation, error) {
	args := m.Called(ctx, id)
	sim, _ := args.Get(0).(*models.Simulation)
	return sim, args.Error(1)
}

func (m *MockSimulationRepository) List(ctx context.Context, limit int) ([]*models.Simulation, error) {
	args := m.Called(ctx, limit)
	sims, _ := args.Get(0).([]*models.Simulation)
	return sims, args.Error(1)
}

func (m *MockSimulationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	args := m.Called(ctx, id, status, progress)
	return args.Error(0)
}

func (m *MockSimulationRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	args := m.Called(ctx, id, errorMsg)
	return args.Error(0)
}

func (m *MockSimulationRepository) StoreResult(ctx context.Context, sim *models.Simulation, samples []models.SimulationSample) error {
	args := m.Called(ctx, sim, samples)
	return args.Error(0)
}

func (m *MockSimulationRepository) SetArtifacts(ctx context.Context, id uuid.UUID, artifacts models.Artifacts) error {
	args := m.Called(ctx, id, artifacts)
	return args.Error(0)
}

func (m *MockSimulationRepository) GetSamples(ctx context.Context, id uuid.UUID) ([]models.SimulationSample, error) {
	args := m.Called(ctx, id)
	samples, _ := args.Get(0).([]models.SimulationSample)
	return samples, args.Error(1)
}

// MockS3Service implements storage.S3Service for testing
type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) UploadFile(ctx context.Context, key string, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)
	return args.Error(0)
}

func (m *MockS3Service) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func pendingSimulation(id uuid.UUID) *models.Simulation {
	params := coil.DefaultParameters()
	return &models.Simulation{
		ID:          id.String(),
		Status:      models.StatusPending,
		Parameters:  &params,
		SampleCount: params.SampleCount,
	}
}

func expectProgress(repo *MockSimulationRepository, id uuid.UUID, progress ...int) {
	for _, p := range progress {
		repo.On("UpdateStatus", mock.Anything, id, models.StatusProcessing, p).Return(nil).Once()
	}
}

func TestArtifactKeys(t *testing.T) {
	id := uuid.MustParse("6f1c8a52-2a0e-4d59-9b57-0d6b1c3f7e11")
	keys := ArtifactKeys(id)

	assert.Equal(t, "simulations/6f1c8a52-2a0e-4d59-9b57-0d6b1c3f7e11/figure.png", keys.FigureKey)
	assert.Equal(t, "simulations/6f1c8a52-2a0e-4d59-9b57-0d6b1c3f7e11/chart.html", keys.PageKey)
	assert.Equal(t, "simulations/6f1c8a52-2a0e-4d59-9b57-0d6b1c3f7e11/samples.xlsx", keys.WorkbookKey)
}

func TestRunSimulation_Success(t *testing.T) {
	id := uuid.New()
	repo := &MockSimulationRepository{}
	s3 := &MockS3Service{}
	keys := ArtifactKeys(id)

	expectProgress(repo, id, 10, 30, 50, 70, 90)
	repo.On("GetByID", mock.Anything, id).Return(pendingSimulation(id), nil)
	repo.On("StoreResult", mock.Anything, mock.AnythingOfType("*models.Simulation"), mock.MatchedBy(func(samples []models.SimulationSample) bool {
		return len(samples) == 1000 && samples[0].SimulationID == id.String()
	})).Return(nil)
	repo.On("SetArtifacts", mock.Anything, id, keys).Return(nil)
	repo.On("UpdateStatus", mock.Anything, id, models.StatusCompleted, 100).Return(nil)

	s3.On("UploadFile", mock.Anything, keys.FigureKey, render.FigureContentType, mock.MatchedBy(func(data []byte) bool {
		return bytes.HasPrefix(data, []byte("\x89PNG"))
	})).Return(nil)
	s3.On("UploadFile", mock.Anything, keys.PageKey, render.PageContentType, mock.Anything).Return(nil)
	s3.On("UploadFile", mock.Anything, keys.WorkbookKey, render.WorkbookContentType, mock.Anything).Return(nil)

	svc := NewSimulationService(repo, s3, render.New(6, 4), coil.DefaultParameters())
	err := svc.RunSimulation(context.Background(), id)
	require.NoError(t, err)

	repo.AssertExpectations(t)
	s3.AssertExpectations(t)

	var stored *models.Simulation
	for _, call := range repo.Calls {
		if call.Method == "StoreResult" {
			stored = call.Arguments.Get(1).(*models.Simulation)
		}
	}
	require.NotNil(t, stored)
	require.NotNil(t, stored.Resistance)
	assert.InEpsilon(t, 25.9/(1.68e-8*5.3476e-5), *stored.Resistance, 1e-12)
}

func TestRunSimulation_UploadFailureMarksFailed(t *testing.T) {
	id := uuid.New()
	repo := &MockSimulationRepository{}
	s3 := &MockS3Service{}

	expectProgress(repo, id, 10, 30, 50, 70)
	repo.On("GetByID", mock.Anything, id).Return(pendingSimulation(id), nil)
	repo.On("StoreResult", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("UpdateError", mock.Anything, id, "Failed to upload simulation artifacts").Return(nil)
	s3.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	svc := NewSimulationService(repo, s3, render.New(6, 4), coil.DefaultParameters())
	err := svc.RunSimulation(context.Background(), id)
	assert.NoError(t, err)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "SetArtifacts", mock.Anything, mock.Anything, mock.Anything)
	s3.AssertNumberOfCalls(t, "UploadFile", 1)
}

func TestRunSimulation_PartialUploadIsDiscarded(t *testing.T) {
	id := uuid.New()
	repo := &MockSimulationRepository{}
	s3 := &MockS3Service{}
	keys := ArtifactKeys(id)

	expectProgress(repo, id, 10, 30, 50, 70)
	repo.On("GetByID", mock.Anything, id).Return(pendingSimulation(id), nil)
	repo.On("StoreResult", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("UpdateError", mock.Anything, id, "Failed to upload simulation artifacts").Return(nil)
	s3.On("UploadFile", mock.Anything, keys.FigureKey, mock.Anything, mock.Anything).Return(nil)
	s3.On("UploadFile", mock.Anything, keys.PageKey, mock.Anything, mock.Anything).Return(nil)
	s3.On("UploadFile", mock.Anything, keys.WorkbookKey, mock.Anything, mock.Anything).Return(assert.AnError)
	s3.On("DeleteFile", mock.Anything, keys.FigureKey).Return(nil)
	s3.On("DeleteFile", mock.Anything, keys.PageKey).Return(assert.AnError)

	svc := NewSimulationService(repo, s3, render.New(6, 4), coil.DefaultParameters())
	assert.NoError(t, svc.RunSimulation(context.Background(), id))

	repo.AssertExpectations(t)
	s3.AssertExpectations(t)
	s3.AssertNotCalled(t, "DeleteFile", mock.Anything, keys.WorkbookKey)
}

func TestRunSimulation_ArtifactRecordFailureDiscardsUploads(t *testing.T) {
	id := uuid.New()
	repo := &MockSimulationRepository{}
	s3 := &MockS3Service{}
	keys := ArtifactKeys(id)

	expectProgress(repo, id, 10, 30, 50, 70, 90)
	repo.On("GetByID", mock.Anything, id).Return(pendingSimulation(id), nil)
	repo.On("StoreResult", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("SetArtifacts", mock.Anything, id, keys).Return(assert.AnError)
	s3.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	for _, key := range []string{keys.FigureKey, keys.PageKey, keys.WorkbookKey} {
		s3.On("DeleteFile", mock.Anything, key).Return(nil).Once()
	}

	svc := NewSimulationService(repo, s3, render.New(6, 4), coil.DefaultParameters())
	err := svc.RunSimulation(context.Background(), id)
	assert.ErrorIs(t, err, assert.AnError)

	repo.AssertExpectations(t)
	s3.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, id, models.StatusCompleted, 100)
}

func TestRunSimulation_InvalidParametersMarksFailed(t *testing.T) {
	id := uuid.New()
	repo := &MockSimulationRepository{}
	s3 := &MockS3Service{}

	params := coil.DefaultParameters()
	params.SampleCount = 1

	expectProgress(repo, id, 10)
	repo.On("GetByID", mock.Anything, id).Return(pendingSimulation(id), nil)
	repo.On("UpdateError", mock.Anything, id, mock.AnythingOfType("string")).Return(nil)

	svc := NewSimulationService(repo, s3, render.New(6, 4), params)
	assert.NoError(t, svc.RunSimulation(context.Background(), id))

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "StoreResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunSimulation_RepositoryErrorsPropagate(t *testing.T) {
	id := uuid.New()

	t.Run("status update", func(t *testing.T) {
		repo := &MockSimulationRepository{}
		repo.On("UpdateStatus", mock.Anything, id, models.StatusProcessing, 10).Return(assert.AnError)

		svc := NewSimulationService(repo, &MockS3Service{}, render.New(6, 4), coil.DefaultParameters())
		assert.ErrorIs(t, svc.RunSimulation(context.Background(), id), assert.AnError)
	})

	t.Run("store result", func(t *testing.T) {
		repo := &MockSimulationRepository{}
		expectProgress(repo, id, 10, 30)
		repo.On("GetByID", mock.Anything, id).Return(pendingSimulation(id), nil)
		repo.On("StoreResult", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		svc := NewSimulationService(repo, &MockS3Service{}, render.New(6, 4), coil.DefaultParameters())
		err := svc.RunSimulation(context.Background(), id)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to store results")
	})
}
