package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericr/chainsat/lit"
)

func TestParseSymmetryFileSingleSwap(t *testing.T) {
	// One generator, one cycle: 1 -> 2.
	gens, err := ParseSymmetryFile(strings.NewReader("1\n1 2 0\n0\n"))
	require.NoError(t, err)
	require.Len(t, gens, 1)
	require.Equal(t, [][]lit.Lit{{lit.NewFromInt(1), lit.NewFromInt(2)}}, gens[0])
}

func TestParseSymmetryFileRejectsBadOrder(t *testing.T) {
	_, err := ParseSymmetryFile(strings.NewReader("1\n3 1 0\n0\n"))
	require.Error(t, err)
}

func TestParseSymmetryFileTruncated(t *testing.T) {
	_, err := ParseSymmetryFile(strings.NewReader("1\n1 2 0\n"))
	require.Error(t, err)
}
