package bench

import (
	"errors"
	"fmt"

	"github.com/scigolib/initarray/internal/core"
)

// Factory builds a named Array implementation of a given length.
type Factory func(impl string, n int) (core.Array, error)

// Runner sweeps a suite: every implementation at every size over every
// scenario, repeated Reps times, appending each measurement to the CSV
// writer and, when configured, to the archive.
type Runner struct {
	Suite   Suite
	New     Factory
	Out     *CSVWriter
	Archive *Archive
	// Logf receives progress lines; nil silences them.
	Logf func(format string, args ...any)
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}

// Run executes the sweep. Size/shape mismatches (an odd size against
// variant2, say) skip that combination; every other failure aborts.
func (r *Runner) Run() error {
	sizes, err := r.Suite.Sizes()
	if err != nil {
		return err
	}
	for _, impl := range r.Suite.Impls {
		for _, n := range sizes {
			for _, scenario := range r.Suite.Scenarios {
				for rep := 1; rep <= r.Suite.Reps; rep++ {
					r.logf("running: %s %s N=%d seed=%d rep=%d", impl, scenario, n, r.Suite.Seed, rep)
					res, err := r.runOne(impl, scenario, n, rep)
					if err != nil {
						if errors.Is(err, core.ErrBadShape) {
							r.logf("skipping %s at N=%d: %v", impl, n, err)
							continue
						}
						return fmt.Errorf("%s %s N=%d rep=%d: %w", impl, scenario, n, rep, err)
					}
					if err := r.Out.Append(res); err != nil {
						return err
					}
					if r.Archive != nil {
						if _, err := r.Archive.Append(res); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

func (r *Runner) runOne(impl, scenario string, n, rep int) (Result, error) {
	var (
		res Result
		err error
	)
	if impl == DirectSliceName {
		res, err = RunDirectSlice(scenario, n, r.Suite.Seed)
	} else {
		var arr core.Array
		arr, err = r.New(impl, n)
		if err != nil {
			return Result{}, err
		}
		res, err = RunScenario(arr, scenario, r.Suite.Seed)
		res.ImplName = arr.Name()
	}
	if err != nil {
		return Result{}, err
	}
	res.TimestampISO = NowISO()
	res.RepID = rep
	return res, nil
}
