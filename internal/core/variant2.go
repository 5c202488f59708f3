package core

// Variant2 is the block-size-2 in-place encoding. A chain pointer is any
// stored value that is even and in [0, N); the low bit is the tag that
// separates pointers from the odd half of user values, and the full
// {alignment, range, crossing, symmetric echo} conjunction separates them
// from the rest.
//
// Layout per chained pair (w < b <= u): cell first(w) points at first(u)
// and vice versa; the single displaced user word of block u lives at
// first(w)+1, and u's second word stays in place at first(u)+1.
type Variant2 struct {
	n       int
	nBlocks int
	a       []int64
	b       int // boundary, in blocks; blocks < b are written-side
	initv   int64
	ctr     Counters
}

// NewVariant2 constructs a block-size-2 initializable array of n cells.
// n must be positive and even, otherwise ErrBadShape is returned.
// All cells initially read as 0.
func NewVariant2(n int) (*Variant2, error) {
	if err := checkShape(n, 2); err != nil {
		return nil, err
	}
	return &Variant2{
		n:       n,
		nBlocks: n / 2,
		a:       make([]int64, n),
	}, nil
}

// Name implements Array.
func (v *Variant2) Name() string { return "variant2" }

// Len implements Array.
func (v *Variant2) Len() int { return v.n }

// Init implements Array. The buffer is not touched; only the boundary and
// the initialization value change.
func (v *Variant2) Init(val int64) {
	v.ctr.Inits++
	v.initv = val
	v.b = 0
}

// Read implements Array.
func (v *Variant2) Read(i int) (int64, error) {
	v.ctr.Reads++
	if err := checkIndex(i, v.n); err != nil {
		return 0, err
	}
	return v.read(i), nil
}

// Write implements Array.
func (v *Variant2) Write(i int, val int64) error {
	v.ctr.Writes++
	if err := checkIndex(i, v.n); err != nil {
		return err
	}
	v.write(i, val)
	return nil
}

// Counters implements Array.
func (v *Variant2) Counters() Counters { return v.ctr }

// ResetCounters implements Array.
func (v *Variant2) ResetCounters() { v.ctr = Counters{} }

func (v *Variant2) blockOf(i int) int { return i >> 1 }

func (v *Variant2) firstOf(blk int) int { return blk << 1 }

// chainedTo returns the partner block of blk, or -1 when blk is not part
// of a cross-boundary chain. An unwritten-side block holds arbitrary user
// data that may coincidentally resemble a pointer, so a chain is accepted
// only when the stored value is aligned, in range, crossing the boundary,
// and echoed symmetrically by the partner.
func (v *Variant2) chainedTo(blk int) int {
	k0 := v.a[v.firstOf(blk)]
	if k0&1 != 0 {
		return -1
	}
	if k0 < 0 || k0 >= int64(v.n) {
		return -1
	}
	k := int(k0) >> 1
	cross := (blk < v.b && k >= v.b) || (k < v.b && blk >= v.b)
	if !cross {
		return -1
	}
	if v.a[int(k0)] != int64(v.firstOf(blk)) {
		return -1
	}
	return k
}

func (v *Variant2) makeChain(bi, bj int) {
	v.a[v.firstOf(bi)] = int64(v.firstOf(bj))
	v.a[v.firstOf(bj)] = int64(v.firstOf(bi))
	v.ctr.Conversions++
}

// breakChain unlinks blk's partner, if any, by turning the partner's
// pointer into a self-pointer. No counter change when blk is already
// unchained; counter-based tests rely on that.
func (v *Variant2) breakChain(blk int) {
	if k := v.chainedTo(blk); k >= 0 {
		v.a[v.firstOf(k)] = int64(v.firstOf(k))
		v.ctr.Conversions++
	}
}

func (v *Variant2) initBlock(blk int) {
	v.a[v.firstOf(blk)] = v.initv
	v.a[v.firstOf(blk)+1] = v.initv
}

// extend consumes the unwritten-side block at the boundary, advances the
// boundary by one, and returns a written-side block whose cells the caller
// may overwrite freely without losing logical data.
func (v *Variant2) extend() int {
	s := v.b
	k := v.chainedTo(s)
	v.b++
	if k < 0 {
		v.initBlock(s)
		v.breakChain(s)
		return s
	}
	// Block s sheltered its displaced word inside partner k. Pull the word
	// home, then hand k back as the freed block.
	v.a[v.firstOf(s)] = v.a[v.firstOf(k)+1]
	v.breakChain(s)
	v.initBlock(k)
	v.breakChain(k)
	v.ctr.Relocations++
	return k
}

func (v *Variant2) read(i int) int64 {
	bi := v.blockOf(i)
	k := v.chainedTo(bi)
	if bi < v.b {
		if k >= 0 {
			// Written-side but paired: logically still all initv.
			return v.initv
		}
		return v.a[i]
	}
	if k >= 0 {
		// Offset 0 holds the chain pointer; its user value is sheltered at
		// the partner's offset 1. Offset 1 is never displaced.
		if i&1 == 0 {
			return v.a[v.firstOf(k)+1]
		}
		return v.a[i]
	}
	return v.initv
}

func (v *Variant2) write(i int, val int64) {
	bi := v.blockOf(i)
	k := v.chainedTo(bi)

	if bi < v.b {
		if k < 0 {
			v.a[i] = val
			v.breakChain(bi)
			return
		}
		bj := v.extend()
		if bj == bi {
			v.a[i] = val
			v.breakChain(bi)
			return
		}
		v.a[v.firstOf(bj)], v.a[v.firstOf(bi)] = v.a[v.firstOf(bi)], v.a[v.firstOf(bj)]
		v.a[v.firstOf(bj)+1], v.a[v.firstOf(bi)+1] = v.a[v.firstOf(bi)+1], v.a[v.firstOf(bj)+1]
		v.ctr.Relocations++
		v.makeChain(bj, k)
		v.initBlock(bi)
		v.a[i] = val
		v.breakChain(bi)
		return
	}

	if k >= 0 {
		if i&1 == 0 {
			v.a[v.firstOf(k)+1] = val
		} else {
			v.a[i] = val
		}
		return
	}
	bk := v.extend()
	if bk == bi {
		// extend just initialized bi's cells while promoting it; no
		// initBlock here, the ordering matters.
		v.a[i] = val
		v.breakChain(bi)
		return
	}
	v.initBlock(bi)
	v.makeChain(bk, bi)
	if i&1 == 0 {
		v.a[v.firstOf(bk)+1] = val
	} else {
		v.a[i] = val
	}
}
