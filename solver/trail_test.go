package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericr/chainsat/arena"
	"github.com/ericr/chainsat/lit"
	"github.com/ericr/chainsat/tribool"
)

func TestTrailLevelStartAndTruncate(t *testing.T) {
	tr := newTrail()
	tr.push(lit.NewFromInt(1))
	tr.newDecisionLevel()
	tr.push(lit.NewFromInt(2))
	tr.push(lit.NewFromInt(3))
	tr.newDecisionLevel()
	tr.push(lit.NewFromInt(4))

	require.Equal(t, 2, tr.decisionLevel())
	require.Equal(t, 0, tr.levelStart(0))
	require.Equal(t, 1, tr.levelStart(1))
	require.Equal(t, 3, tr.levelStart(2))

	var undone []lit.Lit
	tr.truncate(tr.levelStart(1), func(l lit.Lit) { undone = append(undone, l) })

	require.Equal(t, []lit.Lit{lit.NewFromInt(4), lit.NewFromInt(3), lit.NewFromInt(2)}, undone)
	require.Equal(t, 1, tr.size())
}

func TestCancelUntilRestoresOrderAndQhead(t *testing.T) {
	s := newTestSolver()
	s.NewVar(tribool.Undef, true)
	s.NewVar(tribool.Undef, true)

	s.tr.newDecisionLevel()
	s.uncheckedEnqueue(lit.NewFromInt(1), arena.Undef)
	s.propagate()

	require.Equal(t, 1, s.tr.decisionLevel())
	s.cancelUntil(0)
	require.Equal(t, 0, s.tr.decisionLevel())
	require.Equal(t, 0, s.tr.size())
	require.Equal(t, 0, s.tr.qhead)
	require.True(t, s.order.Contains(0))
}
