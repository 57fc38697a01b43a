package solver

import "github.com/ericr/chainsat/arena"

// simplifyDB propagates to a fixed point at level 0 and drops any learnt or
// original clause already satisfied by a level-0 assignment. It returns
// false if propagation reveals a top-level conflict.
func (s *Solver) simplifyDB() bool {
	if s.tr.decisionLevel() != 0 {
		return true
	}
	if confl := s.propagate(); confl != arena.Undef {
		s.ok = false
		return false
	}

	s.learnts = s.removeSatisfied(s.learnts)
	s.constrs = s.removeSatisfied(s.constrs)
	return true
}

func (s *Solver) removeSatisfied(crs []arena.CRef) []arena.CRef {
	out := crs[:0]
	for _, cr := range crs {
		if s.clauseSatisfied(cr) {
			s.removeClause(cr)
		} else {
			out = append(out, cr)
		}
	}
	return out
}

// clauseSatisfied reports whether any literal of cr's clause is fixed true
// at level 0.
func (s *Solver) clauseSatisfied(cr arena.CRef) bool {
	c := s.arena.Clause(cr)
	for i := 0; i < c.Size(); i++ {
		l := c.Lit(i)
		if s.vs.level[l.VarOf()] == 0 && s.vs.litValue(l).True() {
			return true
		}
	}
	return false
}

// removeClause detaches cr's watches and frees it in the arena.
func (s *Solver) removeClause(cr arena.CRef) {
	c := s.arena.Clause(cr)
	if c.Size() >= 2 {
		s.watch.smudge(c.Lit(0).Not())
		s.watch.smudge(c.Lit(1).Not())
	}
	s.arena.Free(cr)
}

// clauseLocked reports whether cr is the reason for some current
// assignment, which makes it unsafe to remove during reduceDB.
func (s *Solver) clauseLocked(cr arena.CRef) bool {
	c := s.arena.Clause(cr)
	if c.Size() == 0 {
		return false
	}
	v := c.Lit(0).VarOf()
	return s.vs.varValue(v).True() && s.vs.reason[v] == cr
}

// reduceDB halves the learnt-clause database, keeping binary clauses,
// locked clauses, and the more-active half. Fixes
// EricR-saturday's sortLearnts (see heuristics.go) so the trim actually orders by
// activity instead of by insertion order.
func (s *Solver) reduceDB() {
	if len(s.learnts) == 0 {
		return
	}
	s.sortLearntsByActivity()

	// sortLearntsByActivity sorts ascending, so the first n/2 entries are
	// the least-active half.
	n := len(s.learnts)
	limit := s.claInc / float64(n)

	out := s.learnts[:0]
	for i, cr := range s.learnts {
		c := s.arena.Clause(cr)
		remove := c.Size() > 2 && !s.clauseLocked(cr) && (i < n/2 || c.Activity() < limit)
		if remove {
			s.removeClause(cr)
		} else {
			out = append(out, cr)
		}
	}
	s.learnts = out
	s.watch.cleanAll(func(cr arena.CRef) bool { return s.arena.Clause(cr).Deleted() })

	if s.arena.Wasted() > int(float64(s.arena.Size())*s.opts.GCFrac) {
		s.garbageCollect()
	}
}

// garbageCollect compacts the clause arena, relocating every live clause
// into a fresh arena and rewriting watch lists and reason pointers to the
// new references.
func (s *Solver) garbageCollect() {
	dst := arenaLike(s.arena)

	relocList := func(crs []arena.CRef) []arena.CRef {
		out := make([]arena.CRef, len(crs))
		for i, cr := range crs {
			out[i] = s.arena.Relocate(cr, dst)
		}
		return out
	}
	s.constrs = relocList(s.constrs)
	s.learnts = relocList(s.learnts)

	for vr := 0; vr < s.vs.n(); vr++ {
		if s.vs.reason[vr] != arena.Undef {
			s.vs.reason[vr] = s.arena.Relocate(s.vs.reason[vr], dst)
		}
	}

	for i := range s.watch.lists {
		list := s.watch.lists[i]
		for j := range list {
			list[j].Cr = s.arena.Relocate(list[j].Cr, dst)
		}
	}

	s.arena = dst
}

func arenaLike(a *arena.Arena) *arena.Arena {
	return arena.New(a.Size() / 4)
}
