package core

import (
	"fmt"
	"io"
)

// Diagnostic state dumps for failed verification runs. Each prints the
// scalar fields and a window of blocks around the focus index, marking
// which side of the boundary every block sits on.

const dumpRadius = 4

func dumpWindow(focus, nBlocks int) (start, end int) {
	start = focus - dumpRadius
	if start < 0 {
		start = 0
	}
	end = focus + dumpRadius + 1
	if end > nBlocks {
		end = nBlocks
	}
	return start, end
}

func sideMark(blk, b int) string {
	if blk < b {
		return "WCA"
	}
	return "UCA"
}

// DumpState implements Array.
func (v *Variant2) DumpState(w io.Writer, focus int) {
	fmt.Fprintf(w, "[variant2] N=%d blocks=%d b=%d initv=%d focus=%d\n",
		v.n, v.nBlocks, v.b, v.initv, focus)
	start, end := dumpWindow(v.blockOf(focus), v.nBlocks)
	for blk := start; blk < end; blk++ {
		f := v.firstOf(blk)
		fmt.Fprintf(w, "  B%d [%s]: (%d, %d)\n", blk, sideMark(blk, v.b), v.a[f], v.a[f+1])
	}
}

// DumpState implements Array.
func (v *Variant4) DumpState(w io.Writer, focus int) {
	fmt.Fprintf(w, "[variant4] N=%d blocks=%d b=%d initv=%d flag=%v focus=%d\n",
		v.n, v.nBlocks, v.b, v.initv, v.flag, focus)
	start, end := dumpWindow(v.blockOf(focus), v.nBlocks)
	for blk := start; blk < end; blk++ {
		f := v.firstOf(blk)
		fmt.Fprintf(w, "  B%d [%s]: (%d, %d, %d, %d)\n",
			blk, sideMark(blk, v.b), v.a[f], v.a[f+1], v.a[f+2], v.a[f+3])
	}
}

// DumpState implements Array.
func (r *Reference) DumpState(w io.Writer, focus int) {
	val := int64(0)
	if focus >= 0 && focus < r.n {
		val = r.a[focus]
	}
	fmt.Fprintf(w, "[reference] N=%d focus=%d value=%d\n", r.n, focus, val)
}
