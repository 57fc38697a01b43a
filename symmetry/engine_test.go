package symmetry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericr/chainsat/config"
	"github.com/ericr/chainsat/lit"
	"github.com/ericr/chainsat/solver"
	"github.com/ericr/chainsat/tribool"
)

func newTestSolverWithVars(opts *config.Options, n int) *solver.Solver {
	s := solver.New(opts)
	for i := 0; i < n; i++ {
		s.NewVar(tribool.Undef, true)
	}
	return s
}

// TestSymmChainPreservesSAT checks that a chained-implication SBP for the
// swap symmetry x1<->x2, added over a formula symmetric in x1 and x2, does
// not turn a satisfiable instance unsatisfiable.
func TestSymmChainPreservesSAT(t *testing.T) {
	opts := config.Default()
	opts.RandomSeed = 1
	opts.SymmChain = true

	s := newTestSolverWithVars(opts, 2)
	s.AddClauseInts([]int{1, 2}) // symmetric under x1 <-> x2

	perm := NewPermutation([][]lit.Lit{{l(1), l(2)}})
	engine := NewEngine([]*Permutation{perm}, opts)
	s.AttachSymmetry(engine)
	engine.Setup(s)

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, solver.StatusSAT, status)
}

// TestSymmChainPreservesUNSAT checks the SBP does not turn an already
// unsatisfiable, symmetric instance into a false SAT result.
func TestSymmChainPreservesUNSAT(t *testing.T) {
	opts := config.Default()
	opts.RandomSeed = 1
	opts.SymmChain = true

	s := newTestSolverWithVars(opts, 2)
	s.AddClauseInts([]int{1, 2})
	s.AddClauseInts([]int{-1, -2})
	s.AddClauseInts([]int{1, -2})
	s.AddClauseInts([]int{-1, 2})

	perm := NewPermutation([][]lit.Lit{{l(1), l(2)}})
	engine := NewEngine([]*Permutation{perm}, opts)
	s.AttachSymmetry(engine)
	engine.Setup(s)

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, solver.StatusUNSAT, status)
}

// TestSymmDynamicEmitsChainingClauses drives a search where x1 and its
// permutation image x2 end up agreeing, and checks that the resulting
// chaining clauses are genuinely attached to the solver rather than
// discarded as already satisfied under the partial assignment that
// resolved them.
func TestSymmDynamicEmitsChainingClauses(t *testing.T) {
	opts := config.Default()
	opts.RandomSeed = 1
	opts.SymmChain = true
	opts.SymmDynamic = true

	s := newTestSolverWithVars(opts, 2)
	s.AddClauseInts([]int{1, -2}) // x1 -> x2
	s.AddClauseInts([]int{-1, 2}) // x2 -> x1

	perm := NewPermutation([][]lit.Lit{{l(1), l(2)}})
	engine := NewEngine([]*Permutation{perm}, opts)
	s.AttachSymmetry(engine)
	engine.Setup(s)

	before := s.NConstraints()
	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, solver.StatusSAT, status)

	require.True(t, engine.chains[0].added[0], "predSat never resolved agreement for index 0")
	require.Greater(t, s.NConstraints(), before, "dynamic emission never attached a clause to the solver")
}

func TestSetupChainAllocatesOnePointerPerSupportVar(t *testing.T) {
	opts := config.Default()
	s := newTestSolverWithVars(opts, 3)
	opts.SymmChain = true

	perm := NewPermutation([][]lit.Lit{{l(1), l(2), l(3)}})
	engine := NewEngine([]*Permutation{perm}, opts)
	engine.Setup(s)

	require.Len(t, engine.chains, 1)
	require.Len(t, engine.chains[0].pointers, 3)
	// Pointer variables are freshly allocated, beyond the 3 problem vars.
	require.GreaterOrEqual(t, s.NVars(), 6)
}

func TestSetupSkipsEmptySupportPermutation(t *testing.T) {
	opts := config.Default()
	opts.SymmChain = true
	s := newTestSolverWithVars(opts, 1)

	perm := &Permutation{}
	engine := NewEngine([]*Permutation{perm}, opts)
	engine.Setup(s)

	require.Empty(t, engine.chains)
}
