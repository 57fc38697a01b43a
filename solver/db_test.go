package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericr/chainsat/lit"
	"github.com/ericr/chainsat/tribool"
)

func TestSimplifyDBRemovesSatisfiedClauses(t *testing.T) {
	s := newTestSolver()
	s.AddClauseInts([]int{1, 2})
	s.AddClauseInts([]int{1})

	require.True(t, s.simplifyDB())
	require.Equal(t, 0, s.NConstraints())
}

func TestAddClauseDetectsTopLevelConflict(t *testing.T) {
	s := newTestSolver()
	s.AddClauseInts([]int{1})
	s.AddClauseInts([]int{-1})

	require.False(t, s.ok)
}

func TestReduceDBKeepsLockedAndBinaryClauses(t *testing.T) {
	s := newTestSolver()
	for i := 0; i < 4; i++ {
		s.NewVar(tribool.Undef, true)
	}

	// A low-activity binary learnt clause: protected by size alone.
	binCr := s.arena.Alloc([]lit.Lit{lit.NewFromInt(1), lit.NewFromInt(2)}, true, false)
	s.arena.Clause(binCr).SetActivity(0)
	s.learnts = append(s.learnts, binCr)

	// A low-activity ternary learnt clause that is the reason for var 3's
	// current assignment: protected by being locked.
	lockedCr := s.arena.Alloc([]lit.Lit{lit.NewFromInt(3), lit.NewFromInt(-1), lit.NewFromInt(-2)}, true, false)
	s.arena.Clause(lockedCr).SetActivity(0)
	s.learnts = append(s.learnts, lockedCr)
	s.uncheckedEnqueue(lit.NewFromInt(3), lockedCr)

	// A low-activity ternary learnt clause with no protection: eligible for
	// removal.
	freeCr := s.arena.Alloc([]lit.Lit{lit.NewFromInt(-3), lit.NewFromInt(4), lit.NewFromInt(-4)}, true, false)
	s.arena.Clause(freeCr).SetActivity(0)
	s.learnts = append(s.learnts, freeCr)

	// reduceDB may compact into a fresh arena, which invalidates the refs
	// above; the old arena keeps each clause's deleted flag.
	old := s.arena
	s.reduceDB()

	require.False(t, old.Clause(binCr).Deleted(), "reduceDB deleted a binary clause")
	require.False(t, old.Clause(lockedCr).Deleted(), "reduceDB deleted a locked clause")
	require.True(t, old.Clause(freeCr).Deleted(), "reduceDB kept a removable clause")
}

func TestGarbageCollectPreservesModel(t *testing.T) {
	s := newTestSolver()
	clauses := [][]int{
		{1, 2, 3},
		{-1, 2, 4},
		{-2, 3, -4},
		{1, -3, 4},
	}
	for _, c := range clauses {
		s.AddClauseInts(c)
	}
	s.garbageCollect()

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, StatusSAT, status)
	checkModel(t, clauses, s.Model())
}
