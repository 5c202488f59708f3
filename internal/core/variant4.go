package core

// Variant4 is the block-size-4 in-place encoding. Chain pointers are
// multiples of 4, leaving two low tag bits. A chained unwritten-side block
// shelters its three displaced words at the partner's offsets 1..3; its
// own last cell is never displaced.
//
// The last block doubles as out-of-band metadata while the boundary has
// not swept the whole array: offset 1 mirrors the initialization value and
// offset 2 mirrors the boundary. Those slots are provably free — the last
// block stays on the unwritten side until the boundary reaches the end,
// and an unwritten-side block never stores user data at offsets 1 and 2.
// Once the boundary covers every block the flag flips and the container
// degenerates to a plain slice.
type Variant4 struct {
	n       int
	nBlocks int
	a       []int64
	b       int // boundary, in blocks
	initv   int64
	flag    bool // true once every block is written-side
	ctr     Counters
}

// NewVariant4 constructs a block-size-4 initializable array of n cells.
// n must be positive and a multiple of 4, otherwise ErrBadShape is
// returned. All cells initially read as 0.
func NewVariant4(n int) (*Variant4, error) {
	if err := checkShape(n, 4); err != nil {
		return nil, err
	}
	return &Variant4{
		n:       n,
		nBlocks: n / 4,
		a:       make([]int64, n),
	}, nil
}

// Name implements Array.
func (v *Variant4) Name() string { return "variant4" }

// Len implements Array.
func (v *Variant4) Len() int { return v.n }

// Init implements Array. Constant work: besides the scalar fields only the
// two metadata slots of the last block are stored.
func (v *Variant4) Init(val int64) {
	v.ctr.Inits++
	v.initv = val
	v.b = 0
	v.syncMeta()
}

// Read implements Array.
func (v *Variant4) Read(i int) (int64, error) {
	v.ctr.Reads++
	if err := checkIndex(i, v.n); err != nil {
		return 0, err
	}
	return v.read(i), nil
}

// Write implements Array.
func (v *Variant4) Write(i int, val int64) error {
	v.ctr.Writes++
	if err := checkIndex(i, v.n); err != nil {
		return err
	}
	v.write(i, val)
	return nil
}

// Counters implements Array.
func (v *Variant4) Counters() Counters { return v.ctr }

// ResetCounters implements Array.
func (v *Variant4) ResetCounters() { v.ctr = Counters{} }

func (v *Variant4) blockOf(i int) int { return i >> 2 }

func (v *Variant4) firstOf(blk int) int { return blk << 2 }

// syncMeta recomputes the flag and, while bookkeeping is still needed,
// refreshes the metadata slots in the last block. Must run after every
// boundary change.
func (v *Variant4) syncMeta() {
	v.flag = v.b >= v.nBlocks
	if !v.flag {
		mb := v.firstOf(v.nBlocks - 1)
		v.a[mb+1] = v.initv
		v.a[mb+2] = int64(v.b)
	}
}

// chainedTo returns the partner block of blk, or -1 when blk is not part
// of a cross-boundary chain. Same four-way acceptance as Variant2, with a
// two-bit alignment tag.
func (v *Variant4) chainedTo(blk int) int {
	k0 := v.a[v.firstOf(blk)]
	if k0&3 != 0 {
		return -1
	}
	if k0 < 0 || k0 >= int64(v.n) {
		return -1
	}
	k := int(k0) >> 2
	cross := (blk < v.b && k >= v.b) || (k < v.b && blk >= v.b)
	if !cross {
		return -1
	}
	if v.a[int(k0)] != int64(v.firstOf(blk)) {
		return -1
	}
	return k
}

func (v *Variant4) makeChain(bi, bj int) {
	v.a[v.firstOf(bi)] = int64(v.firstOf(bj))
	v.a[v.firstOf(bj)] = int64(v.firstOf(bi))
	v.ctr.Conversions++
}

func (v *Variant4) breakChain(blk int) {
	if k := v.chainedTo(blk); k >= 0 {
		v.a[v.firstOf(k)] = int64(v.firstOf(k))
		v.ctr.Conversions++
	}
}

func (v *Variant4) initBlock(blk int) {
	f := v.firstOf(blk)
	v.a[f] = v.initv
	v.a[f+1] = v.initv
	v.a[f+2] = v.initv
	v.a[f+3] = v.initv
}

// extend consumes the unwritten-side block at the boundary, advances the
// boundary, refreshes the metadata slots, and returns a freed
// written-side block.
func (v *Variant4) extend() int {
	s := v.b
	k := v.chainedTo(s)
	v.b++
	if k < 0 {
		v.initBlock(s)
		v.breakChain(s)
		v.syncMeta()
		return s
	}
	fs, fk := v.firstOf(s), v.firstOf(k)
	v.a[fs] = v.a[fk+1]
	v.a[fs+1] = v.a[fk+2]
	v.a[fs+2] = v.a[fk+3]
	v.breakChain(s)
	v.initBlock(k)
	v.breakChain(k)
	v.ctr.Relocations++
	v.syncMeta()
	return k
}

func (v *Variant4) read(i int) int64 {
	if v.flag {
		return v.a[i]
	}
	bi := v.blockOf(i)
	k := v.chainedTo(bi)
	if bi < v.b {
		if k >= 0 {
			return v.initv
		}
		return v.a[i]
	}
	if k >= 0 {
		fk := v.firstOf(k)
		switch i & 3 {
		case 0:
			return v.a[fk+1]
		case 1:
			return v.a[fk+2]
		case 2:
			return v.a[fk+3]
		default:
			return v.a[i]
		}
	}
	return v.initv
}

func (v *Variant4) write(i int, val int64) {
	if v.flag {
		v.a[i] = val
		return
	}
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
		fj, fi := v.firstOf(bj), v.firstOf(bi)
		for t := 0; t < 4; t++ {
			v.a[fj+t], v.a[fi+t] = v.a[fi+t], v.a[fj+t]
		}
		v.ctr.Relocations++
		v.makeChain(bj, k)
		v.initBlock(bi)
		v.a[i] = val
		v.breakChain(bi)
		return
	}

	if k >= 0 {
		fk := v.firstOf(k)
		switch i & 3 {
		case 0:
			v.a[fk+1] = val
		case 1:
			v.a[fk+2] = val
		case 2:
			v.a[fk+3] = val
		default:
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
	fk := v.firstOf(bk)
	switch i & 3 {
	case 0:
		v.a[fk+1] = val
	case 1:
		v.a[fk+2] = val
	case 2:
		v.a[fk+3] = val
	default:
		v.a[i] = val
	}
	if bi == v.nBlocks-1 {
		// initBlock on the last block clobbered the metadata slots.
		v.syncMeta()
	}
}
