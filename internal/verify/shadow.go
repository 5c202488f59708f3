// Package verify provides the correctness harness for initializable
// arrays: a shadow oracle that tracks the expected logical state, and a
// differential runner that drives random operation mixes against it.
package verify

import "fmt"

// Shadow is the expected-state oracle. It records written values together
// with the init epoch they were written in, so a cell's expected value is
// the recorded one only when its stamp matches the current epoch, and the
// current init value otherwise. Init is O(1) here too: it just bumps the
// epoch.
type Shadow struct {
	n     int
	vals  []int64
	stamp []uint32
	initv int64
	epoch uint32
}

// NewShadow creates a shadow oracle for n cells, all expected to read 0.
func NewShadow(n int) *Shadow {
	return &Shadow{
		n:     n,
		vals:  make([]int64, n),
		stamp: make([]uint32, n),
		epoch: 1,
	}
}

// OnInit records a logical re-initialization to v.
func (s *Shadow) OnInit(v int64) {
	s.initv = v
	s.epoch++
	if s.epoch == 0 {
		// Wrapped around; stale stamps would alias the new epoch.
		for i := range s.stamp {
			s.stamp[i] = 0
		}
		s.epoch = 1
	}
}

// OnWrite records a write of v at cell i.
func (s *Shadow) OnWrite(i int, v int64) {
	s.vals[i] = v
	s.stamp[i] = s.epoch
}

// Expected returns the logical value cell i must read as.
func (s *Shadow) Expected(i int) int64 {
	if s.stamp[i] == s.epoch {
		return s.vals[i]
	}
	return s.initv
}

// Len returns the number of cells tracked.
func (s *Shadow) Len() int { return s.n }

// Check sweeps every cell and compares the actual read with the expected
// value. It returns a *MismatchError for the first disagreement.
func (s *Shadow) Check(read func(int) (int64, error)) error {
	for i := 0; i < s.n; i++ {
		got, err := read(i)
		if err != nil {
			return fmt.Errorf("sweep read %d failed: %w", i, err)
		}
		if want := s.Expected(i); got != want {
			return &MismatchError{Index: i, Want: want, Got: got}
		}
	}
	return nil
}

// MismatchError reports a cell whose actual value disagrees with the
// oracle.
type MismatchError struct {
	Index int
	Want  int64
	Got   int64
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("mismatch at index %d: want %d, got %d", e.Index, e.Want, e.Got)
}
