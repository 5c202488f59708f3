package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariant4InitOnly(t *testing.T) {
	v, err := NewVariant4(8)
	require.NoError(t, err)

	v.ResetCounters()
	v.Init(7)
	for i := 0; i < 8; i++ {
		require.Equal(t, int64(7), readAt(t, v, i))
	}
	ctr := v.Counters()
	require.Equal(t, uint64(1), ctr.Inits)
	require.Zero(t, ctr.Writes)
	require.Zero(t, ctr.Relocations)
	require.Zero(t, ctr.Conversions)
}

func TestVariant4SingleWrite(t *testing.T) {
	v, err := NewVariant4(8)
	require.NoError(t, err)

	v.Init(0)
	require.NoError(t, v.Write(5, 42))
	for i := 0; i < 8; i++ {
		want := int64(0)
		if i == 5 {
			want = 42
		}
		require.Equal(t, want, readAt(t, v, i), "cell %d", i)
	}
	require.NoError(t, v.AuditInvariants())
}

// Three writes that chain the far block, promote a middle block in place,
// and relocate through a paired block near the boundary.
func TestVariant4BoundaryAdvancingSequence(t *testing.T) {
	v, err := NewVariant4(16)
	require.NoError(t, err)

	v.Init(0)
	require.NoError(t, v.Write(12, 5))
	require.NoError(t, v.Write(4, 6))
	require.NoError(t, v.Write(0, 7))

	want := []int64{7, 0, 0, 0, 6, 0, 0, 0, 0, 0, 0, 0, 5, 0, 0, 0}
	for i, w := range want {
		require.Equal(t, w, readAt(t, v, i), "cell %d", i)
	}
	require.NoError(t, v.AuditInvariants())
}

// Overwriting every cell sweeps the boundary across the whole array and
// flips the flag; from then on the container is plain storage.
func TestVariant4FullOverwriteFlagTransition(t *testing.T) {
	v, err := NewVariant4(8)
	require.NoError(t, err)

	v.Init(0)
	for i := 0; i < 8; i++ {
		require.NoError(t, v.Write(i, int64(i+1)))
		require.NoError(t, v.AuditInvariants())
	}
	require.True(t, v.flag)
	for i := 0; i < 8; i++ {
		require.Equal(t, int64(i+1), readAt(t, v, i), "cell %d", i)
	}

	// Direct-path reads and writes still work, and a re-init drops the
	// flag again.
	require.NoError(t, v.Write(2, -9))
	require.Equal(t, int64(-9), readAt(t, v, 2))

	v.Init(5)
	require.False(t, v.flag)
	for i := 0; i < 8; i++ {
		require.Equal(t, int64(5), readAt(t, v, i), "cell %d after reinit", i)
	}
	require.NoError(t, v.AuditInvariants())
}

// The last block carries the metadata slots until the flag flips; a write
// landing in the last block itself must not corrupt them.
func TestVariant4MetadataSurvivesLastBlockWrite(t *testing.T) {
	v, err := NewVariant4(16)
	require.NoError(t, err)

	v.Init(3)
	// Block 3 is the metadata block; write into it while it is still on
	// the unwritten side.
	require.NoError(t, v.Write(13, 77))
	require.NoError(t, v.AuditInvariants())
	require.Equal(t, int64(77), readAt(t, v, 13))
	require.Equal(t, int64(3), readAt(t, v, 12))
	require.Equal(t, int64(3), readAt(t, v, 14))
	require.Equal(t, int64(3), readAt(t, v, 15))

	mb := v.firstOf(v.nBlocks - 1)
	require.Equal(t, v.initv, v.a[mb+1])
	require.Equal(t, int64(v.b), v.a[mb+2])
}

func TestVariant4ShelterMapping(t *testing.T) {
	v, err := NewVariant4(16)
	require.NoError(t, err)
	v.Init(0)

	// Chain block 2 to the freed boundary block, then exercise all four
	// offsets of the sheltered block.
	for off, val := range map[int]int64{8: 100, 9: 101, 10: 102, 11: 103} {
		require.NoError(t, v.Write(off, val))
	}
	require.NoError(t, v.AuditInvariants())
	require.Equal(t, int64(100), readAt(t, v, 8))
	require.Equal(t, int64(101), readAt(t, v, 9))
	require.Equal(t, int64(102), readAt(t, v, 10))
	require.Equal(t, int64(103), readAt(t, v, 11))

	// Everything else still reads initv.
	for _, i := range []int{0, 1, 4, 7, 12, 15} {
		require.Equal(t, int64(0), readAt(t, v, i), "cell %d", i)
	}
}

func TestVariant4SingleBlock(t *testing.T) {
	v, err := NewVariant4(4)
	require.NoError(t, err)

	v.Init(9)
	for i := 0; i < 4; i++ {
		require.Equal(t, int64(9), readAt(t, v, i))
	}
	require.NoError(t, v.Write(1, 2))
	require.True(t, v.flag)
	require.Equal(t, int64(2), readAt(t, v, 1))
	require.Equal(t, int64(9), readAt(t, v, 0))
	require.Equal(t, int64(9), readAt(t, v, 2))
	require.Equal(t, int64(9), readAt(t, v, 3))
	require.NoError(t, v.AuditInvariants())
}

func TestVariant4AuditDetectsCorruption(t *testing.T) {
	t.Run("metadata initv slot", func(t *testing.T) {
		v, err := NewVariant4(16)
		require.NoError(t, err)
		v.Init(4)
		v.a[v.firstOf(v.nBlocks-1)+1] = 5
		err = v.AuditInvariants()
		require.Error(t, err)
		var invErr *InvariantError
		require.ErrorAs(t, err, &invErr)
		require.Contains(t, invErr.Detail, "initv")
	})

	t.Run("metadata boundary slot", func(t *testing.T) {
		v, err := NewVariant4(16)
		require.NoError(t, err)
		v.Init(4)
		v.a[v.firstOf(v.nBlocks-1)+2] = 3
		err = v.AuditInvariants()
		require.Error(t, err)
		require.Contains(t, err.Error(), "boundary")
	})

	t.Run("flag", func(t *testing.T) {
		v, err := NewVariant4(16)
		require.NoError(t, err)
		v.flag = true
		err = v.AuditInvariants()
		require.Error(t, err)
		require.Contains(t, err.Error(), "flag")
	})
}

func TestVariant4DumpState(t *testing.T) {
	v, err := NewVariant4(16)
	require.NoError(t, err)
	v.Init(0)
	require.NoError(t, v.Write(12, 5))

	var buf bytes.Buffer
	v.DumpState(&buf, 12)
	out := buf.String()
	require.Contains(t, out, "[variant4]")
	require.Contains(t, out, "flag=false")
	require.Contains(t, out, "B3")
}
