// Package bench drives benchmark scenarios against initializable-array
// implementations and reports the results as CSV rows and optionally into
// a bolt archive.
package bench

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/scigolib/initarray/internal/core"
)

// Scenarios lists every benchmark scenario in suite order.
var Scenarios = []string{
	"INIT_ONLY",
	"READ_UNWRITTEN",
	"WRITE_SEQUENTIAL",
	"WRITE_RANDOM",
	"MIXED_R90W10",
	"MIXED_R80W20",
	"MIXED_R70W30",
	"MIXED_R50W50",
	"MIXED_R30W70",
	"MIXED_R10W90",
	"ADVERSARIAL_HOTSPOT",
}

// maxOps caps the operation count of a single run.
const maxOps = 1000000

// Result is one benchmark measurement, one CSV row.
type Result struct {
	TimestampISO string `json:"timestamp_iso"`
	ImplName     string `json:"impl_name"`
	Scenario     string `json:"scenario"`
	N            int    `json:"n"`
	Seed         int64  `json:"seed"`
	RepID        int    `json:"rep_id"`

	OpsInRun    int     `json:"ops_in_run"`
	TotalTimeNs int64   `json:"total_time_ns"`
	NsPerOp     float64 `json:"ns_per_op"`
	InitTimeNs  int64   `json:"init_time_ns_if_recorded"`
	Relocations uint64  `json:"relocations_count"`
	Conversions uint64  `json:"conversions_count"`
}

// sink keeps read loops from being optimized away.
var sink int64

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// RunScenario resets the array's counters, runs one scenario against it,
// and fills in the measurement fields of a Result. The identifying fields
// (timestamp, impl, rep) are left for the caller.
func RunScenario(arr core.Array, scenario string, seed int64) (Result, error) {
	n := arr.Len()
	rng := rand.New(rand.NewSource(seed))
	randVal := func() int64 { return int64(rng.Intn(2001) - 1000) }
	mkIdx := func(m int) []int {
		idx := make([]int, m)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		return idx
	}

	arr.ResetCounters()
	res := Result{Scenario: scenario, N: n, Seed: seed}

	switch {
	case scenario == "INIT_ONLY":
		start := time.Now()
		arr.Init(42)
		el := time.Since(start).Nanoseconds()
		res.OpsInRun, res.TotalTimeNs, res.InitTimeNs = 1, el, el

	case scenario == "READ_UNWRITTEN":
		arr.Init(123)
		m := minInt(maxOps, 10*n)
		idx := mkIdx(m)
		start := time.Now()
		var s int64
		for _, j := range idx {
			v, err := arr.Read(j)
			if err != nil {
				return res, err
			}
			s ^= v
		}
		res.OpsInRun, res.TotalTimeNs = m, time.Since(start).Nanoseconds()
		sink ^= s

	case scenario == "WRITE_SEQUENTIAL":
		arr.Init(0)
		start := time.Now()
		for i := 0; i < n; i++ {
			if err := arr.Write(i, int64(i)); err != nil {
				return res, err
			}
		}
		res.OpsInRun, res.TotalTimeNs = n, time.Since(start).Nanoseconds()

	case scenario == "WRITE_RANDOM":
		arr.Init(0)
		m := minInt(maxOps, n)
		idx := mkIdx(m)
		start := time.Now()
		for _, j := range idx {
			if err := arr.Write(j, randVal()); err != nil {
				return res, err
			}
		}
		res.OpsInRun, res.TotalTimeNs = m, time.Since(start).Nanoseconds()

	case isMixed(scenario):
		readPct, err := mixedReadPct(scenario)
		if err != nil {
			return res, err
		}
		arr.Init(42)
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
				v, err := arr.Read(idx[i])
				if err != nil {
					return res, err
				}
				s ^= v
			} else if err := arr.Write(idx[i], randVal()); err != nil {
				return res, err
			}
		}
		res.OpsInRun, res.TotalTimeNs = m, time.Since(start).Nanoseconds()
		sink ^= s

	case scenario == "ADVERSARIAL_HOTSPOT":
		arr.Init(0)
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
			if err := arr.Write(j, randVal()); err != nil {
				return res, err
			}
		}
		res.OpsInRun, res.TotalTimeNs = m, time.Since(start).Nanoseconds()

	default:
		return res, fmt.Errorf("unknown scenario %q", scenario)
	}

	if res.OpsInRun > 0 && res.InitTimeNs == 0 {
		res.NsPerOp = float64(res.TotalTimeNs) / float64(res.OpsInRun)
	}
	ctr := arr.Counters()
	res.Relocations = ctr.Relocations
	res.Conversions = ctr.Conversions
	return res, nil
}

func isMixed(scenario string) bool {
	return len(scenario) > 6 && scenario[:6] == "MIXED_"
}

func mixedReadPct(scenario string) (int, error) {
	var readPct, writePct int
	if _, err := fmt.Sscanf(scenario, "MIXED_R%dW%d", &readPct, &writePct); err != nil {
		return 0, fmt.Errorf("malformed mixed scenario %q: %w", scenario, err)
	}
	if readPct < 0 || readPct > 100 || readPct+writePct != 100 {
		return 0, fmt.Errorf("malformed mixed scenario %q: percentages must sum to 100", scenario)
	}
	return readPct, nil
}
