package core

import "fmt"

// InvariantError reports a structural invariant violation found by
// AuditInvariants. It is never produced by Read or Write; a non-nil audit
// result means the container state is corrupt and the test run should
// abort.
type InvariantError struct {
	Impl   string
	Detail string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Impl, e.Detail)
}

// AuditInvariants implements Array. It scans every block and checks
// pointer alignment, pointer range, boundary crossing, and chain symmetry
// for each chain the container would accept.
func (v *Variant2) AuditInvariants() error {
	return auditChains(v.Name(), v.nBlocks, v.b, func(blk int) int { return v.chainedTo(blk) })
}

// AuditInvariants implements Array. In addition to the chain scan it
// checks the flag and, while the flag is down, the metadata slots of the
// last block.
func (v *Variant4) AuditInvariants() error {
	if got, want := v.flag, v.b >= v.nBlocks; got != want {
		return &InvariantError{Impl: v.Name(),
			Detail: fmt.Sprintf("flag=%v inconsistent with b=%d of %d blocks", got, v.b, v.nBlocks)}
	}
	if !v.flag {
		mb := v.firstOf(v.nBlocks - 1)
		if v.a[mb+1] != v.initv {
			return &InvariantError{Impl: v.Name(),
				Detail: fmt.Sprintf("metadata slot %d holds %d, want initv %d", mb+1, v.a[mb+1], v.initv)}
		}
		if v.a[mb+2] != int64(v.b) {
			return &InvariantError{Impl: v.Name(),
				Detail: fmt.Sprintf("metadata slot %d holds %d, want boundary %d", mb+2, v.a[mb+2], v.b)}
		}
	}
	return auditChains(v.Name(), v.nBlocks, v.b, func(blk int) int { return v.chainedTo(blk) })
}

// auditChains runs the O(N) symmetry scan shared by both variants.
// chainedTo already refuses misaligned, out-of-range, and non-crossing
// pointers, so the scan asserts the remaining mutual properties.
func auditChains(impl string, nBlocks, b int, chainedTo func(int) int) error {
	if b < 0 || b > nBlocks {
		return &InvariantError{Impl: impl,
			Detail: fmt.Sprintf("boundary %d outside [0, %d]", b, nBlocks)}
	}
	for u := 0; u < nBlocks; u++ {
		k := chainedTo(u)
		if k < 0 {
			continue
		}
		if k >= nBlocks {
			return &InvariantError{Impl: impl,
				Detail: fmt.Sprintf("block %d chained to nonexistent block %d", u, k)}
		}
		if back := chainedTo(k); back != u {
			return &InvariantError{Impl: impl,
				Detail: fmt.Sprintf("chain asymmetry: block %d -> %d but block %d -> %d", u, k, k, back)}
		}
		uw, kw := u < b, k < b
		if uw == kw {
			return &InvariantError{Impl: impl,
				Detail: fmt.Sprintf("chain %d <-> %d does not cross boundary %d", u, k, b)}
		}
	}
	return nil
}
