package symmetry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericr/chainsat/lit"
)

func l(i int) lit.Lit { return lit.NewFromInt(i) }

func TestNewPermutationSupportAndImage(t *testing.T) {
	// 1 -> 2 -> 3 -> 1
	p := NewPermutation([][]lit.Lit{{l(1), l(2), l(3)}})

	require.Equal(t, []lit.Var{lit.NewFromInt(1).VarOf(), lit.NewFromInt(2).VarOf(), lit.NewFromInt(3).VarOf()}, p.Support)
	require.Equal(t, l(2), p.Pi(l(1)))
	require.Equal(t, l(3), p.Pi(l(2)))
	require.Equal(t, l(1), p.Pi(l(3)))
}

func TestPiRespectsSign(t *testing.T) {
	p := NewPermutation([][]lit.Lit{{l(1), l(2)}})
	require.Equal(t, l(2).Not(), p.Pi(l(1).Not()))
}

func TestPiIdentityOutsideSupport(t *testing.T) {
	p := NewPermutation([][]lit.Lit{{l(1), l(2)}})
	require.Equal(t, l(9), p.Pi(l(9)))
}

func TestCanonicalizeRotatesToLeadingLiteral(t *testing.T) {
	// 2 -> 3 -> 1 should canonicalize to lead with the smallest literal (1).
	canon := Canonicalize([][]lit.Lit{{l(2), l(3), l(1)}})
	require.Len(t, canon, 1)
	require.Equal(t, l(1), canon[0][0])
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	cycles := [][]lit.Lit{{l(3), l(1), l(2)}, {l(5), l(4)}}
	once := Canonicalize(cycles)
	twice := Canonicalize(once)
	require.Equal(t, once, twice)
}

func TestCanonicalizeDedupesByLeadingLiteral(t *testing.T) {
	canon := Canonicalize([][]lit.Lit{{l(1), l(2)}, {l(2), l(1)}})
	require.Len(t, canon, 1)
}
