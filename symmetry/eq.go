package symmetry

import (
	"github.com/ericr/chainsat/lit"
	"github.com/ericr/chainsat/solver"
	"github.com/ericr/chainsat/tribool"
)

// eq memoizes the equality-auxiliary encoding (symm_eq_aux) for one v -> ℓ
// mapping: a witnesses "v implies ℓ"; b is forced true whenever v holds
// or ℓ doesn't.
type eq struct {
	a, b lit.Var
}

// eqTable memoizes Eq nodes by (v, ℓ) so that repeat permutations sharing a
// mapping reuse the same auxiliary variables
// "memoizes via cnf_var_id" note.
type eqTable struct {
	nodes map[[2]lit.Lit]*eq
}

func newEqTable() *eqTable { return &eqTable{nodes: map[[2]lit.Lit]*eq{}} }

// get returns the Eq node for v -> l, allocating its two auxiliary
// variables and defining clauses on first use. Allocation only ever
// happens at decision level 0 invariant.
func (t *eqTable) get(s *solver.Solver, v lit.Lit, l lit.Lit, auxDecide bool) *eq {
	key := [2]lit.Lit{v, l}
	if n, ok := t.nodes[key]; ok {
		return n
	}
	n := &eq{
		a: s.NewVar(tribool.Undef, auxDecide),
		b: s.NewVar(tribool.Undef, auxDecide),
	}
	a := lit.FromVar(n.a, false)
	b := lit.FromVar(n.b, false)

	// a -> (v -> l): (¬a ∨ ¬v ∨ l)
	s.AddSBPClause([]lit.Lit{a.Not(), v.Not(), l})
	// (l ∨ b) and (¬v ∨ b): ¬l -> b and v -> b. Nothing forces b false,
	// so b is not a full equivalence with (v ∧ ¬l).
	s.AddSBPClause([]lit.Lit{l, b})
	s.AddSBPClause([]lit.Lit{v.Not(), b})

	t.nodes[key] = n
	return n
}
