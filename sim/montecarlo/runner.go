// Package montecarlo runs many independent fund trials and reduces them into
// a per-trial summary table and distribution statistics.
//
// Each trial i draws from its own PartitionedRNG keyed by key.ForTrial(i), so a
// batch is reproducible for a given seed regardless of worker count or
// scheduling order. Trials write into their own slot of a preallocated slice;
// the summary is built by a sequential reduce after all trials finish.
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fund-sim/fund-sim/sim"
)

// MaxTrials caps the size of a single batch.
const MaxTrials = 1_000_000

// ErrTrialCount is returned for a non-positive or over-cap trial count.
var ErrTrialCount = errors.New("invalid trial count")

// Runner executes batches of trials on a bounded worker pool.
type Runner struct {
	Workers int
}

// NewRunner returns a Runner with the given worker count; workers <= 0 means
// one worker per available CPU.
func NewRunner(workers int) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{Workers: workers}
}

// Batch is the output of one Monte Carlo run.
type Batch struct {
	Key     sim.SimulationKey
	Config  sim.FundConfig
	Results []*sim.SimulationResult
	Summary *Summary
}

// Run simulates trials independent funds under cfg. Only configuration errors
// and context cancellation fail the batch; undefined IRRs are recorded per trial.
func (r *Runner) Run(ctx context.Context, trials int, cfg sim.FundConfig, key sim.SimulationKey) (*Batch, error) {
	if trials <= 0 || trials > MaxTrials {
		return nil, fmt.Errorf("%w: %d (must be in 1..%d)", ErrTrialCount, trials, MaxTrials)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	logrus.Infof("Starting %d trials with %d workers, seed=%d, dist_mode=%s, follow_on_policy=%s",
		trials, workers, int64(key), cfg.DistMode, cfg.FollowOnPolicy)
	startTime := time.Now()

	results := make([]*sim.SimulationResult, trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < trials; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := sim.SimulateFund(cfg, sim.NewPartitionedRNG(key.ForTrial(i)))
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			results[i] = res
			logrus.Debugf("trial %d: net_moic=%.3f carry=%.2f", i, res.NetMOIC, res.Carry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := Summarize(results)
	if n := summary.UndefinedNetIRR(); n > 0 {
		logrus.Warnf("%d of %d trials have an undefined net IRR; excluded from IRR statistics", n, trials)
	}
	logrus.Infof("Completed %d trials in %s", trials, time.Since(startTime))

	return &Batch{Key: key, Config: cfg, Results: results, Summary: summary}, nil
}
