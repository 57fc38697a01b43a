package solver

import (
	"github.com/ericr/chainsat/arena"
	"github.com/ericr/chainsat/lit"
)

// ErrBudgetExceeded is returned by SolveWithAssumptions when a configured
// conflict or propagation budget is exhausted.
type ErrBudgetExceeded struct{ Kind string }

func (e *ErrBudgetExceeded) Error() string { return "budget exceeded: " + e.Kind }

// search runs one restart's worth of decide/propagate/analyze/backtrack,
// stopping at conflictBudget conflicts (StatusUndef) or when it proves
// SAT/UNSAT outright. Adapted from EricR-saturday's solver_search.go: the
// growable maxLearnts/maxConflicts counters become explicit per-call
// budgets so restarts are driven by the caller's Luby/geometric schedule.
func (s *Solver) search(conflictBudget int, learntsBudget float64) (Status, error) {
	conflictC := 0

	for {
		confl := s.propagate()
		if confl != arena.Undef {
			s.stats.conflicts++
			conflictC++

			if s.tr.decisionLevel() == s.rootLevel {
				if s.rootLevel > 0 {
					s.lastFinal = s.analyzeFinalConflict(confl)
				}
				return StatusUNSAT, nil
			}

			learnt, backtrackLevel := s.analyze(confl)
			if backtrackLevel < s.rootLevel {
				backtrackLevel = s.rootLevel
			}

			if s.symm != nil {
				s.symm.OnBacktrack(backtrackLevel, s)
			}
			s.cancelUntil(backtrackLevel)
			s.record(learnt)
			s.decayActivities()

			if s.opts.ConflictBudget > 0 && s.stats.conflicts >= s.opts.ConflictBudget {
				return StatusUndef, &ErrBudgetExceeded{Kind: "conflicts"}
			}
			if s.opts.PropagationBudget > 0 && s.stats.propagations >= s.opts.PropagationBudget {
				return StatusUndef, &ErrBudgetExceeded{Kind: "propagations"}
			}
			continue
		}

		if s.tr.decisionLevel() == 0 {
			if !s.simplifyDB() {
				return StatusUNSAT, nil
			}
		}

		if float64(len(s.learnts)) >= learntsBudget && learntsBudget > 0 {
			s.reduceDB()
		}

		if s.tr.size() == s.vs.n() {
			return StatusSAT, nil
		}

		if conflictBudget >= 0 && conflictC >= conflictBudget {
			s.cancelUntil(s.rootLevel)
			return StatusUndef, nil
		}

		next := s.pickBranchLit()
		if next == lit.Undef {
			return StatusSAT, nil
		}

		s.tr.newDecisionLevel()
		if s.symm != nil {
			s.symm.OnNewDecisionLevel(s)
		}
		s.stats.decisions++
		s.uncheckedEnqueue(next, arena.Undef)
	}
}

// pickBranchLit chooses the next decision literal via VSIDS order, applying
// rnd-freq random decisions and the configured polarity heuristic. Returns
// lit.Undef when every variable is assigned.
func (s *Solver) pickBranchLit() lit.Lit {
	if s.opts.RandomVarFreq > 0 && s.rng.Float64() < s.opts.RandomVarFreq {
		if vr, ok := s.randomEligibleVar(); ok {
			return lit.FromVar(vr, !s.pickPolarity(vr))
		}
	}

	choice := s.order.Choose()
	if choice == 0 {
		return lit.Undef
	}
	vr := lit.Var(choice - 1)
	return lit.FromVar(vr, !s.pickPolarity(vr))
}

// randomEligibleVar picks a uniformly random unassigned, decision-eligible
// variable, implementing rnd-freq's random-decision path.
func (s *Solver) randomEligibleVar() (lit.Var, bool) {
	n := s.vs.n()
	if n == 0 {
		return 0, false
	}
	start := s.rng.Intn(n)
	for i := 0; i < n; i++ {
		vr := lit.Var((start + i) % n)
		if s.vs.eligible[vr] && s.vs.varValue(vr).Undef() {
			return vr, true
		}
	}
	return 0, false
}

// record appends a freshly-learnt clause to the arena and immediately
// enqueues its asserting literal. A unit learnt clause
// (backtrack all the way to level 0) is enqueued with no reason clause.
func (s *Solver) record(lits []lit.Lit) {
	if len(lits) == 1 {
		s.uncheckedEnqueue(lits[0], arena.Undef)
		return
	}
	cr := s.arena.Alloc(lits, true, false)
	s.watch.attach(lits[0].Not(), Watcher{Cr: cr, Blocker: lits[1]})
	s.watch.attach(lits[1].Not(), Watcher{Cr: cr, Blocker: lits[0]})
	s.learnts = append(s.learnts, cr)
	s.claBumpActivity(cr)
	s.uncheckedEnqueue(lits[0], cr)
}

// Model returns the last-found satisfying assignment as signed DIMACS
// integers, one per variable, valid only immediately after Solve* returns
// StatusSAT.
func (s *Solver) Model() []int {
	out := make([]int, s.vs.n())
	for i := 0; i < s.vs.n(); i++ {
		v := s.vs.varValue(lit.Var(i))
		if v.True() {
			out[i] = i + 1
		} else {
			out[i] = -(i + 1)
		}
	}
	return out
}

// ConflictSet returns the negations of the subset of the last
// SolveWithAssumptions call's assumptions that are together
// unsatisfiable, as signed DIMACS integers. Valid only
// after a StatusUNSAT result reached under assumptions.
func (s *Solver) ConflictSet() []int {
	if len(s.lastFinal) == 0 {
		return nil
	}
	out := make([]int, len(s.lastFinal))
	for i, l := range s.lastFinal {
		out[i] = l.Int()
	}
	return out
}
