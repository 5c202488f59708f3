package core

// Reference is the trivial implementation: a plain slice with an O(N)
// Init. It is the benchmark baseline and the oracle for differential
// verification.
type Reference struct {
	n   int
	a   []int64
	ctr Counters
}

// NewReference constructs a plain-slice array of n cells. n must be
// positive, otherwise ErrBadShape is returned.
func NewReference(n int) (*Reference, error) {
	if n <= 0 {
		return nil, checkShape(n, 1)
	}
	return &Reference{n: n, a: make([]int64, n)}, nil
}

// Name implements Array.
func (r *Reference) Name() string { return "reference" }

// Len implements Array.
func (r *Reference) Len() int { return r.n }

// Init implements Array with a full fill.
func (r *Reference) Init(v int64) {
	r.ctr.Inits++
	for i := range r.a {
		r.a[i] = v
	}
}

// Read implements Array.
func (r *Reference) Read(i int) (int64, error) {
	r.ctr.Reads++
	if err := checkIndex(i, r.n); err != nil {
		return 0, err
	}
	return r.a[i], nil
}

// Write implements Array.
func (r *Reference) Write(i int, v int64) error {
	r.ctr.Writes++
	if err := checkIndex(i, r.n); err != nil {
		return err
	}
	r.a[i] = v
	return nil
}

// Counters implements Array.
func (r *Reference) Counters() Counters { return r.ctr }

// ResetCounters implements Array.
func (r *Reference) ResetCounters() { r.ctr = Counters{} }

// AuditInvariants implements Array. A plain slice has no structural
// invariants beyond its fixed length.
func (r *Reference) AuditInvariants() error { return nil }
