package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericr/chainsat/config"
	"github.com/ericr/chainsat/tribool"
)

func newTestSolver() *Solver {
	opts := config.Default()
	opts.RandomSeed = 1
	return New(opts)
}

func checkModel(t *testing.T, clauses [][]int, model []int) {
	t.Helper()
	assigned := map[int]bool{}
	for _, m := range model {
		assigned[m] = true
	}
	for _, clause := range clauses {
		ok := false
		for _, lit := range clause {
			if assigned[lit] {
				ok = true
				break
			}
		}
		require.Truef(t, ok, "clause %v not satisfied by model %v", clause, model)
	}
}

func TestSolveEmptyFormulaIsSAT(t *testing.T) {
	s := newTestSolver()
	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, StatusSAT, status)
}

func TestSolveSingleUnitClause(t *testing.T) {
	s := newTestSolver()
	s.AddClauseInts([]int{1})

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, StatusSAT, status)
	require.Equal(t, tribool.True, s.Value(1))
}

func TestSolveDirectContradictionIsUNSAT(t *testing.T) {
	s := newTestSolver()
	s.AddClauseInts([]int{1})
	s.AddClauseInts([]int{-1})

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, StatusUNSAT, status)
}

func TestSolveSatisfiableInstance(t *testing.T) {
	s := newTestSolver()
	clauses := [][]int{
		{1, 2, 3},
		{-1, 2},
		{-2, 3},
		{-3, 1},
	}
	for _, c := range clauses {
		s.AddClauseInts(c)
	}

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, StatusSAT, status)
	checkModel(t, clauses, s.Model())
}

// TestSolveDiamondUNSAT is the four-clause UNSAT instance over two
// variables: (x1 v x2), (x1 v -x2), (-x1 v x2), (-x1 v -x2). No assignment
// of x1, x2 satisfies all four.
func TestSolveDiamondUNSAT(t *testing.T) {
	s := newTestSolver()
	s.AddClauseInts([]int{1, 2})
	s.AddClauseInts([]int{1, -2})
	s.AddClauseInts([]int{-1, 2})
	s.AddClauseInts([]int{-1, -2})

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, StatusUNSAT, status)
}

// TestSolvePigeonhole32 encodes PHP(3,2): three pigeons, two holes, no
// pigeon shares a hole with another -- unsatisfiable by counting.
func TestSolvePigeonhole32(t *testing.T) {
	s := newTestSolver()
	// vars: p(i,j) = 2*i+j+1 for pigeon i in {0,1,2}, hole j in {0,1}.
	v := func(i, j int) int { return 2*i + j + 1 }

	for i := 0; i < 3; i++ {
		s.AddClauseInts([]int{v(i, 0), v(i, 1)})
	}
	for j := 0; j < 2; j++ {
		for i1 := 0; i1 < 3; i1++ {
			for i2 := i1 + 1; i2 < 3; i2++ {
				s.AddClauseInts([]int{-v(i1, j), -v(i2, j)})
			}
		}
	}

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, StatusUNSAT, status)
}

func TestSolveWithAssumptionsConflict(t *testing.T) {
	s := newTestSolver()
	s.AddClauseInts([]int{-1, -2}) // x1 -> -x2
	s.AddClauseInts([]int{1, 2})   // x1 v x2

	status, err := s.SolveWithAssumptions([]int{1, 2})
	require.NoError(t, err)
	require.Equal(t, StatusUNSAT, status)
	require.NotEmpty(t, s.ConflictSet())
}

func TestSolveWithAssumptionsSAT(t *testing.T) {
	s := newTestSolver()
	s.AddClauseInts([]int{1, 2})

	status, err := s.SolveWithAssumptions([]int{-1})
	require.NoError(t, err)
	require.Equal(t, StatusSAT, status)
	require.Equal(t, tribool.True, s.Value(2))
}

func TestSolveWithAssumptionsRejectsUndefinedVariable(t *testing.T) {
	s := newTestSolver()
	s.AddClauseInts([]int{1, 2})

	_, err := s.SolveWithAssumptions([]int{3})
	require.Error(t, err)
}

func TestAddClauseDropsTautology(t *testing.T) {
	s := newTestSolver()
	ok := s.AddClauseInts([]int{1, -1, 2})
	require.True(t, ok)
	require.Equal(t, 0, s.NConstraints())
}

func TestValueOutOfRangeIsUndef(t *testing.T) {
	s := newTestSolver()
	require.Equal(t, tribool.Undef, s.Value(42))
}
