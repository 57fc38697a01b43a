package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericr/chainsat/tribool"
)

func TestLubySequence(t *testing.T) {
	// Standard Luby sequence: 1 1 2 1 1 2 4 1 1 2 1 1 2 4 8 ...
	want := []float64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8}
	for i, w := range want {
		require.Equalf(t, w, luby(2, i), "luby(2, %d)", i)
	}
}

func TestVarBumpActivityRescales(t *testing.T) {
	s := newTestSolver()
	s.NewVar(tribool.Undef, true)
	s.varInc = 1e101
	s.varBumpActivity(0)
	require.InDelta(t, 10.0, s.vs.activity[0], 1e-9)
}

func TestVarDecayActivityGrowsIncrement(t *testing.T) {
	s := newTestSolver()
	before := s.varInc
	s.varDecayActivity()
	require.Greater(t, s.varInc, before)
}

func TestPickPolarityHonorsUserPolarity(t *testing.T) {
	s := newTestSolver()
	vr := s.NewVar(tribool.True, true)
	// pickPolarity returns userPol.False(); True() polarity => not false.
	require.False(t, s.pickPolarity(vr))
}

func TestPickPolarityFallsBackToSavedPolarity(t *testing.T) {
	s := newTestSolver()
	vr := s.NewVar(tribool.Undef, true)
	s.vs.savedPol[vr] = true
	require.True(t, s.pickPolarity(vr))
}
