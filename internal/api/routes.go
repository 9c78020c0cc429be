package api

import (
	"net/http"

	"github.com/RMahshie/coilsim/internal/api/handlers"
	"github.com/RMahshie/coilsim/internal/repository"
	"github.com/RMahshie/coilsim/internal/simulation"
	"github.com/RMahshie/coilsim/internal/storage"
	"github.com/RMahshie/coilsim/pkg/coil"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, simulationRepo repository.SimulationRepository, s3Service storage.S3Service, simulationSvc simulation.SimulationService, params coil.Parameters) {
	simulationHandler := handlers.NewSimulationHandler(simulationRepo, s3Service, simulationSvc, params)

	huma.Register(api, huma.Operation{
		OperationID:   "createSimulation",
		Method:        http.MethodPost,
		Path:          "/api/simulations",
		Summary:       "Create a new simulation",
		Description:   "Records a run of the reference coil sweep and starts it in the background",
		Tags:          []string{"Simulation"},
		DefaultStatus: http.StatusAccepted,
	}, simulationHandler.CreateSimulation)

	huma.Register(api, huma.Operation{
		OperationID: "listSimulations",
		Method:      http.MethodGet,
		Path:        "/api/simulations",
		Summary:     "List simulations",
		Description: "Returns the most recent simulations, newest first",
		Tags:        []string{"Simulation"},
	}, simulationHandler.ListSimulations)

	huma.Register(api, huma.Operation{
		OperationID: "getSimulationStatus",
		Method:      http.MethodGet,
		Path:        "/api/simulations/{id}/status",
		Summary:     "Get simulation status",
		Description: "Returns the current status and progress of a simulation",
		Tags:        []string{"Simulation"},
	}, simulationHandler.GetSimulationStatus)

	huma.Register(api, huma.Operation{
		OperationID: "getSimulationResults",
		Method:      http.MethodGet,
		Path:        "/api/simulations/{id}/results",
		Summary:     "Get simulation results",
		Description: "Returns resistance, current, area and the field, flux and EMF of every sample",
		Tags:        []string{"Simulation"},
	}, simulationHandler.GetSimulationResults)

	huma.Register(api, huma.Operation{
		OperationID: "getSimulationArtifacts",
		Method:      http.MethodGet,
		Path:        "/api/simulations/{id}/artifacts",
		Summary:     "Get simulation artifacts",
		Description: "Returns download URLs for the figure, the interactive charts and the workbook",
		Tags:        []string{"Simulation"},
	}, simulationHandler.GetSimulationArtifacts)

	huma.Register(api, huma.Operation{
		OperationID: "downloadArtifact",
		Method:      http.MethodGet,
		Path:        "/api/simulations/{id}/artifacts/{name}",
		Summary:     "Download a simulation artifact",
		Description: "Streams the figure, the interactive charts or the workbook through the API",
		Tags:        []string{"Simulation"},
	}, simulationHandler.DownloadArtifact)

	huma.Register(api, huma.Operation{
		OperationID: "getParameters",
		Method:      http.MethodGet,
		Path:        "/api/parameters",
		Summary:     "Get coil parameters",
		Description: "Returns the fixed coil parameter set every simulation runs with",
		Tags:        []string{"Simulation"},
	}, simulationHandler.GetParameters)
}
