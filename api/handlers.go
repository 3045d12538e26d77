package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fund-sim/fund-sim/sim"
	"github.com/fund-sim/fund-sim/sim/montecarlo"
)

const (
	defaultTrials = 1000
	defaultSeed   = 42
)

// Server runs simulation batches on behalf of HTTP clients.
type Server struct {
	Runner *montecarlo.Runner
	// MaxTrials caps a single request; zero means montecarlo.MaxTrials.
	MaxTrials int
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
}

// NewServer creates a server with the given worker count and per-request trial cap.
func NewServer(workers, maxTrials int) *Server {
	return &Server{Runner: montecarlo.NewRunner(workers), MaxTrials: maxTrials}
}

func (s *Server) maxTrials() int {
	if s.MaxTrials <= 0 || s.MaxTrials > montecarlo.MaxTrials {
		return montecarlo.MaxTrials
	}
	return s.MaxTrials
}

// Health handles GET /health
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Defaults handles GET /api/v1/defaults
func (s *Server) Defaults(c *gin.Context) {
	cfg := sim.DefaultFundConfig()
	c.JSON(http.StatusOK, gin.H{
		"config":              cfg,
		"dist_params":         cfg.OutcomeSpec().Resolved(),
		"survival_thresholds": montecarlo.DefaultSurvivalThresholds,
		"max_trials":          s.maxTrials(),
	})
}

// RunSimulation handles POST /api/v1/simulations
func (s *Server) RunSimulation(c *gin.Context) {
	req := SimulationRequest{Config: sim.DefaultFundConfig()}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_REQUEST", err.Error(), nil))
		return
	}
	if req.Trials == 0 {
		req.Trials = defaultTrials
	}
	seed := int64(defaultSeed)
	if req.Seed != nil {
		seed = *req.Seed
	}
	if req.Trials < 0 || req.Trials > s.maxTrials() {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_TRIALS", "trials must be between 1 and the server limit",
			map[string]interface{}{"trials": req.Trials, "max_trials": s.maxTrials()}))
		return
	}
	if err := req.Config.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_CONFIG", err.Error(), nil))
		return
	}

	id := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"run_id": id, "trials": req.Trials, "seed": seed})
	log.Info("Simulation requested")
	start := time.Now()

	batch, err := s.Runner.Run(c.Request.Context(), req.Trials, req.Config, sim.NewSimulationKey(seed))
	if err != nil {
		log.WithError(err).Warn("Simulation failed")
		RecordSimulation("failed", req.Trials, 0, time.Since(start).Seconds())
		switch {
		case errors.Is(err, sim.ErrInvalidConfig):
			c.JSON(http.StatusBadRequest, errorResponse("INVALID_CONFIG", err.Error(), nil))
		case errors.Is(err, montecarlo.ErrTrialCount):
			c.JSON(http.StatusBadRequest, errorResponse("INVALID_TRIALS", err.Error(), nil))
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusServiceUnavailable, errorResponse("CANCELLED", err.Error(), nil))
		default:
			c.JSON(http.StatusInternalServerError, errorResponse("SIMULATION_ERROR", err.Error(), nil))
		}
		return
	}

	elapsed := time.Since(start)
	log.WithField("elapsed", elapsed).Info("Simulation complete")
	RecordSimulation("completed", req.Trials, batch.Summary.UndefinedNetIRR(), elapsed.Seconds())
	c.JSON(http.StatusOK, SimulationResponse{
		ID:        id,
		Status:    "completed",
		ElapsedMS: elapsed.Milliseconds(),
		Report:    montecarlo.NewReport(batch, req.Thresholds, req.IncludeRows),
	})
}

func errorResponse(code, message string, details map[string]interface{}) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}
