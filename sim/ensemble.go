package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Ensemble runs independent replicates of one configuration; replicate i
// evolves under key SeedStart+i. Replicates run concurrently and share
// nothing - each owns its scenario, streams, and history - so the ensemble
// is deterministic replicate by replicate.
type Ensemble struct {
	Config    Config
	Runs      int
	SeedStart int64
}

// Run executes every replicate and returns their reports in replicate
// order. The first replicate error wins; a cancelled context stops every
// replicate at its next step boundary.
func (e *Ensemble) Run(ctx context.Context) ([]*Report, error) {
	if e.Runs < 1 {
		return nil, fmt.Errorf("ensemble needs at least 1 run, got %d", e.Runs)
	}
	if err := e.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	reports := make([]*Report, e.Runs)
	errs := make([]error, e.Runs)

	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := NewSimulationKey(e.SeedStart + int64(i))
			history, err := Run(ctx, e.Config, key)
			if err != nil {
				errs[i] = fmt.Errorf("replicate %d: %w", i, err)
				return
			}
			reports[i] = BuildReport(Summarize(history))
			logrus.Infof("replicate %d (key %d): attack rate %.1f%%",
				i, int64(key), 100*reports[i].AttackRate)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}

// MeanAttackRate averages the attack rate across reports.
func MeanAttackRate(reports []*Report) float64 {
	if len(reports) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range reports {
		sum += r.AttackRate
	}
	return sum / float64(len(reports))
}
