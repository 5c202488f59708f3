package verify

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/scigolib/initarray/internal/core"
)

// Defaults for differential runs, matching the historical harness.
const (
	DefaultN    = 10000
	DefaultSeed = 42
	DefaultOps  = 1000
)

// Run drives ops random operations against arr, comparing every read with
// the shadow oracle. The mix draws init, read, and write uniformly; values
// are uniform in [-1000, 1000]. After the operation stream it sweeps the
// whole array against the oracle and audits the structural invariants.
//
// On failure the container state around the offending index is dumped to
// w (pass io.Discard to suppress), and the error describes the first
// divergence.
func Run(arr core.Array, ops int, seed int64, w io.Writer) error {
	if w == nil {
		w = io.Discard
	}
	n := arr.Len()
	shadow := NewShadow(n)
	rng := rand.New(rand.NewSource(seed))
	randVal := func() int64 { return int64(rng.Intn(2001) - 1000) }

	for op := 0; op < ops; op++ {
		switch rng.Intn(3) {
		case 0:
			v := randVal()
			arr.Init(v)
			shadow.OnInit(v)
		case 1:
			i := rng.Intn(n)
			got, err := arr.Read(i)
			if err != nil {
				return fmt.Errorf("op %d: read(%d) failed: %w", op, i, err)
			}
			if want := shadow.Expected(i); got != want {
				arr.DumpState(w, i)
				return fmt.Errorf("op %d: read(%d): want %d, got %d", op, i, want, got)
			}
		default:
			i := rng.Intn(n)
			v := randVal()
			if err := arr.Write(i, v); err != nil {
				return fmt.Errorf("op %d: write(%d, %d) failed: %w", op, i, v, err)
			}
			shadow.OnWrite(i, v)
		}
	}

	if err := shadow.Check(arr.Read); err != nil {
		var mm *MismatchError
		if errors.As(err, &mm) {
			arr.DumpState(w, mm.Index)
		}
		return fmt.Errorf("final sweep: %w", err)
	}
	if err := arr.AuditInvariants(); err != nil {
		return fmt.Errorf("final audit: %w", err)
	}
	return nil
}
