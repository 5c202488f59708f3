package bench

import (
	"fmt"
	"math/rand"
	"time"
)

// DirectSliceName is the pseudo-implementation measuring raw slice access
// with no interface dispatch. It bounds what any Array implementation can
// hope to reach.
const DirectSliceName = "slice_direct"

// RunDirectSlice runs one scenario against a bare []int64, mirroring
// RunScenario's operation streams without the Array indirection.
func RunDirectSlice(scenario string, n int, seed int64) (Result, error) {
	rng := rand.New(rand.NewSource(seed))
	randVal := func() int64 { return int64(rng.Intn(2001) - 1000) }
	mkIdx := func(m int) []int {
		idx := make([]int, m)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		return idx
	}
	fill := func(a []int64, v int64) {
		for i := range a {
			a[i] = v
		}
	}

	a := make([]int64, n)
	res := Result{ImplName: DirectSliceName, Scenario: scenario, N: n, Seed: seed}

	switch {
	case scenario == "INIT_ONLY":
		start := time.Now()
		fill(a, 42)
		el := time.Since(start).Nanoseconds()
		res.OpsInRun, res.TotalTimeNs, res.InitTimeNs = 1, el, el

	case scenario == "READ_UNWRITTEN":
		fill(a, 123)
		m := minInt(maxOps, 10*n)
		idx := mkIdx(m)
		start := time.Now()
		var s int64
		for _, j := range idx {
			s ^= a[j]
		}
		res.OpsInRun, res.TotalTimeNs = m, time.Since(start).Nanoseconds()
		sink ^= s

	case scenario == "WRITE_SEQUENTIAL":
		fill(a, 0)
		start := time.Now()
		for i := 0; i < n; i++ {
			a[i] = int64(i)
		}
		res.OpsInRun, res.TotalTimeNs = n, time.Since(start).Nanoseconds()

	case scenario == "WRITE_RANDOM":
		fill(a, 0)
		m := minInt(maxOps, n)
		idx := mkIdx(m)
		start := time.Now()
		for _, j := range idx {
			a[j] = randVal()
		}
		res.OpsInRun, res.TotalTimeNs = m, time.Since(start).Nanoseconds()

	case isMixed(scenario):
		readPct, err := mixedReadPct(scenario)
		if err != nil {
			return res, err
		}
		fill(a, 42)
		m := minInt(maxOps, n)
		idx := mkIdx(m)
		kinds := make([]uint8, m)
		for i := range kinds {
			if rng.Intn(100) >= readPct {
				kinds[i] = 1
			}
		}
		start := time.Now()
		var s int64
		for i := 0; i < m; i++ {
			if kinds[i] == 0 {
				s ^= a[idx[i]]
			} else {
				a[idx[i]] = randVal()
			}
		}
		res.OpsInRun, res.TotalTimeNs = m, time.Since(start).Nanoseconds()
		sink ^= s

	case scenario == "ADVERSARIAL_HOTSPOT":
		fill(a, 0)
		m := minInt(maxOps, n)
		hot := n / 10
		if hot < 1 {
			hot = 1
		}
		start := time.Now()
		for i := 0; i < m; i++ {
			j := rng.Intn(n)
			if rng.Intn(2) == 0 {
				j = rng.Intn(hot)
			}
			a[j] = randVal()
		}
		res.OpsInRun, res.TotalTimeNs = m, time.Since(start).Nanoseconds()

	default:
		return res, fmt.Errorf("unknown scenario %q", scenario)
	}

	if res.OpsInRun > 0 && res.InitTimeNs == 0 {
		res.NsPerOp = float64(res.TotalTimeNs) / float64(res.OpsInRun)
	}
	return res, nil
}
