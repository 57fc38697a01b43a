package solver

import (
	"github.com/ericr/chainsat/arena"
	"github.com/ericr/chainsat/lit"
)

// calcReason returns the literals that forced p (or, when p is lit.Undef,
// every literal of the conflicting clause itself), each negated so the
// result reads as "these facts, together, are why p holds" -- ported from
// EricR-saturday's clause.calcReason.
func (s *Solver) calcReason(cr arena.CRef, p lit.Lit) []lit.Lit {
	c := s.arena.Clause(cr)
	start := 0
	if !p.IsUndef() {
		start = 1
	}
	out := make([]lit.Lit, 0, c.Size()-start)
	for i := start; i < c.Size(); i++ {
		out = append(out, c.Lit(i).Not())
	}
	if c.Learnt() {
		s.claBumpActivity(cr)
	}
	return out
}

// analyze performs 1-UIP conflict analysis starting from confl, returning
// the learnt clause (asserting literal first) and the level to backtrack
// to. Adapted from EricR-saturday's solver_analysis.go: this
// version walks the trail by index instead of popping it, since chainsat
// defers backtracking to the caller.
func (s *Solver) analyze(confl arena.CRef) ([]lit.Lit, int) {
	seen := make([]bool, s.vs.n())
	learnt := []lit.Lit{lit.Undef}
	p := lit.Undef
	counter := 0
	btLevel := 0
	idx := s.tr.size() - 1

	for {
		reason := s.calcReason(confl, p)
		for _, q := range reason {
			vr := q.VarOf()
			if seen[vr] {
				continue
			}
			lvl := s.vs.level[vr]
			if lvl == 0 {
				continue
			}
			seen[vr] = true
			s.varBumpActivity(vr)
			if lvl == s.tr.decisionLevel() {
				counter++
			} else {
				learnt = append(learnt, q)
				if lvl > btLevel {
					btLevel = lvl
				}
			}
		}

		for !seen[s.tr.lits[idx].VarOf()] {
			idx--
		}
		p = s.tr.lits[idx]
		confl = s.vs.reason[p.VarOf()]
		seen[p.VarOf()] = false
		idx--

		counter--
		if counter == 0 {
			break
		}
	}
	learnt[0] = p.Not()

	if s.opts.CCMinMode > 0 {
		learnt = s.minimize(learnt, seen)
	}

	// Swap the literal at the second-highest decision level into position 1
	// so record's second watch tracks it -- the last one of the clause's
	// non-asserting literals to become false on the path back down.
	if len(learnt) > 1 {
		maxI := 1
		maxLvl := s.vs.level[learnt[1].VarOf()]
		for i := 2; i < len(learnt); i++ {
			lvl := s.vs.level[learnt[i].VarOf()]
			if lvl > maxLvl {
				maxLvl = lvl
				maxI = i
			}
		}
		learnt[1], learnt[maxI] = learnt[maxI], learnt[1]
	}

	return learnt, btLevel
}

// minimize drops learnt literals whose presence is redundant given the rest
// of the clause ccmin_mode. Mode 1 only strips a
// literal when every antecedent of its reason clause is already seen or
// fixed at level 0. Mode 2 additionally recurses through those antecedents
// (lit_redundant).
func (s *Solver) minimize(learnt []lit.Lit, seen []bool) []lit.Lit {
	out := make([]lit.Lit, 1, len(learnt))
	out[0] = learnt[0]

	for i := 1; i < len(learnt); i++ {
		l := learnt[i]
		vr := l.VarOf()
		reason := s.vs.reason[vr]

		redundant := false
		if reason != arena.Undef {
			if s.opts.CCMinMode == 2 {
				redundant = s.litRedundant(l, seen, make(map[lit.Var]bool))
			} else {
				redundant = s.reasonSubsumed(reason, l, seen)
			}
		}
		if !redundant {
			out = append(out, l)
		}
	}
	return out
}

// reasonSubsumed implements ccmin_mode 1: l is redundant if every other
// literal in its reason clause is already part of the seen set.
func (s *Solver) reasonSubsumed(reason arena.CRef, l lit.Lit, seen []bool) bool {
	c := s.arena.Clause(reason)
	for i := 1; i < c.Size(); i++ {
		q := c.Lit(i)
		if q.VarOf() == l.VarOf() {
			continue
		}
		if !seen[q.VarOf()] && s.vs.level[q.VarOf()] != 0 {
			return false
		}
	}
	return true
}

// litRedundant implements ccmin_mode 2's recursive redundancy check: l is
// redundant if its reason's antecedents are themselves seen, fixed at level
// 0, or transitively redundant. visiting guards against infinite recursion
// on cyclic reason chains that never occur in a well-formed proof but are
// cheap to guard against anyway.
func (s *Solver) litRedundant(l lit.Lit, seen []bool, visiting map[lit.Var]bool) bool {
	vr := l.VarOf()
	if visiting[vr] {
		return true
	}
	reason := s.vs.reason[vr]
	if reason == arena.Undef {
		return false
	}
	visiting[vr] = true
	defer delete(visiting, vr)

	c := s.arena.Clause(reason)
	for i := 1; i < c.Size(); i++ {
		q := c.Lit(i)
		qv := q.VarOf()
		if seen[qv] || s.vs.level[qv] == 0 {
			continue
		}
		if s.vs.reason[qv] == arena.Undef {
			return false
		}
		if !s.litRedundant(q, seen, visiting) {
			return false
		}
	}
	return true
}

// analyzeFinalConflict is analyzeFinal generalized to seed the backward
// walk from every literal of a conflicting clause found at the root level,
// rather than from a single failed assumption. Used when propagation
// conflicts outright while assumptions are still active.
func (s *Solver) analyzeFinalConflict(confl arena.CRef) []lit.Lit {
	var out []lit.Lit
	if s.tr.decisionLevel() == 0 {
		return out
	}

	seen := make([]bool, s.vs.n())
	c := s.arena.Clause(confl)
	for i := 0; i < c.Size(); i++ {
		vr := c.Lit(i).VarOf()
		if s.vs.level[vr] > 0 {
			seen[vr] = true
		}
	}

	for i := s.tr.size() - 1; i >= 0; i-- {
		q := s.tr.lits[i]
		vr := q.VarOf()
		if !seen[vr] {
			continue
		}
		reason := s.vs.reason[vr]
		if reason == arena.Undef {
			if s.vs.level[vr] > 0 {
				out = append(out, q.Not())
			}
		} else {
			rc := s.arena.Clause(reason)
			for j := 1; j < rc.Size(); j++ {
				rv := rc.Lit(j).VarOf()
				if s.vs.level[rv] > 0 {
					seen[rv] = true
				}
			}
		}
		seen[vr] = false
	}
	return out
}

// analyzeFinal computes the final conflict set under assumptions: the
// negations of the subset of the assumption literals that, together, are
// unsatisfiable, starting with p itself.
func (s *Solver) analyzeFinal(p lit.Lit) []lit.Lit {
	out := []lit.Lit{p}
	if s.tr.decisionLevel() == 0 {
		return out
	}

	seen := make([]bool, s.vs.n())
	seen[p.VarOf()] = true

	for i := s.tr.size() - 1; i >= 0; i-- {
		q := s.tr.lits[i]
		vr := q.VarOf()
		if !seen[vr] {
			continue
		}
		reason := s.vs.reason[vr]
		if reason == arena.Undef {
			if s.vs.level[vr] > 0 {
				out = append(out, q.Not())
			}
		} else {
			c := s.arena.Clause(reason)
			for j := 1; j < c.Size(); j++ {
				rv := c.Lit(j).VarOf()
				if s.vs.level[rv] > 0 {
					seen[rv] = true
				}
			}
		}
		seen[vr] = false
	}
	return out
}
