package api

import (
	"github.com/fund-sim/fund-sim/sim"
	"github.com/fund-sim/fund-sim/sim/montecarlo"
)

// SimulationRequest is the body of POST /api/v1/simulations. Config fields
// that are omitted keep their default values.
type SimulationRequest struct {
	Trials      int            `json:"trials"`
	Seed        *int64         `json:"seed,omitempty"`
	Config      sim.FundConfig `json:"config"`
	Thresholds  []float64      `json:"thresholds,omitempty"`
	IncludeRows bool           `json:"include_rows,omitempty"`
}

// SimulationResponse carries the report of one batch.
type SimulationResponse struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	ElapsedMS int64              `json:"elapsed_ms"`
	Report    *montecarlo.Report `json:"report"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
