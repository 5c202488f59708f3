package initarray

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scigolib/initarray/internal/verify"
	"github.com/stretchr/testify/require"
)

// Random differential run: every read of 1000 mixed operations over
// N=10000 must agree with a flat reference array.
func TestRandomDifferential(t *testing.T) {
	for _, kind := range []string{KindVariant2, KindVariant4} {
		t.Run(kind, func(t *testing.T) {
			arr, err := New(kind, 10000)
			require.NoError(t, err)
			require.NoError(t, verify.Run(arr, 1000, 42, nil))
		})
	}
}

// Longer seeded workouts comparing the full logical contents against the
// oracle after every burst of operations.
func TestDifferentialBursts(t *testing.T) {
	const n = 256
	for _, kind := range []string{KindVariant2, KindVariant4} {
		t.Run(kind, func(t *testing.T) {
			arr, err := New(kind, n)
			require.NoError(t, err)
			oracle, err := NewReference(n)
			require.NoError(t, err)

			rng := rand.New(rand.NewSource(1234))
			for burst := 0; burst < 50; burst++ {
				for op := 0; op < 40; op++ {
					switch rng.Intn(3) {
					case 0:
						v := int64(rng.Intn(2001) - 1000)
						arr.Init(v)
						oracle.Init(v)
					case 1:
						i := rng.Intn(n)
						got := read(t, arr, i)
						require.Equal(t, read(t, oracle, i), got)
					default:
						i := rng.Intn(n)
						v := int64(rng.Intn(2001) - 1000)
						require.NoError(t, arr.Write(i, v))
						require.NoError(t, oracle.Write(i, v))
					}
				}
				require.NoError(t, arr.AuditInvariants(), "burst %d", burst)
				if diff := cmp.Diff(contents(t, oracle), contents(t, arr)); diff != "" {
					t.Fatalf("burst %d: logical contents diverged (-want +got):\n%s", burst, diff)
				}
			}
		})
	}
}

func contents(t *testing.T, arr Array) []int64 {
	t.Helper()
	out := make([]int64, arr.Len())
	for i := range out {
		out[i] = read(t, arr, i)
	}
	return out
}
