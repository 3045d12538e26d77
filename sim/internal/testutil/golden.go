// Package testutil provides shared test infrastructure for the fund simulator.
// It holds the golden dataset types and assertion helpers used across the
// sim/returns and sim/cashflow test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	IRR       []GoldenIRRCase       `json:"irr"`
	Waterfall []GoldenWaterfallCase `json:"waterfall"`
}

// GoldenIRRCase is a cash-flow vector with its independently computed IRR.
// Each vector has a root inside the solver's search interval.
type GoldenIRRCase struct {
	Name      string    `json:"name"`
	CashFlows []float64 `json:"cash_flows"`
	IRR       float64   `json:"irr"`
}

// GoldenWaterfallCase is one carry computation with its expected outputs.
type GoldenWaterfallCase struct {
	Name         string  `json:"name"`
	Invested     float64 `json:"invested"`
	Distributed  float64 `json:"distributed"`
	HurdleRate   float64 `json:"hurdle_rate"`
	FundLife     int     `json:"fund_life"`
	CarryRate    float64 `json:"carry_rate"`
	HurdleTarget float64 `json:"hurdle_target"`
	Carry        float64 `json:"carry"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.IRR) == 0 || len(dataset.Waterfall) == 0 {
		t.Fatal("Golden dataset is empty")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
// Values near zero fall back to an absolute comparison against relTol.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == got {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if maxVal < 1 {
		if diff > relTol {
			t.Errorf("%s: got %v, want %v (diff=%v)", name, got, want, diff)
		}
		return
	}
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
