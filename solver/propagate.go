package solver

import (
	"github.com/ericr/chainsat/arena"
	"github.com/ericr/chainsat/lit"
	"github.com/ericr/chainsat/tribool"
)

// enqueue records a new fact if it is consistent with the current
// assignment, returning false on conflict. Adapted from EricR-saturday's
// solver_propagation.go, generalized to write through the arena-backed
// reason clause instead of a *Clause pointer.
func (s *Solver) enqueue(p lit.Lit, from arena.CRef) bool {
	switch s.vs.litValue(p) {
	case tribool.False:
		return false
	case tribool.True:
		return true
	}
	s.uncheckedEnqueue(p, from)
	return true
}

// propagate drains the trail through unit propagation, returning the
// conflicting clause reference (or arena.Undef if none).
// It walks each newly-assigned literal's watch list in place, compacting
// out watchers that moved to a new watched literal as it goes -- the two-watched-literal
// scheme from EricR-saturday's clause_propagation.go, adapted to the flat
// clause arena.
func (s *Solver) propagate() arena.CRef {
	if s.pendingConflict != arena.Undef {
		cr := s.pendingConflict
		s.pendingConflict = arena.Undef
		return cr
	}

	confl := arena.Undef
	s.propagating = true
	defer func() { s.propagating = false }()

	for {
		confl = s.propagateTrail()
		if confl != arena.Undef || len(s.pendingSBP) == 0 {
			break
		}
		if cr := s.drainPendingSBP(); cr != arena.Undef {
			confl = cr
		}
	}

	return confl
}

// propagateTrail is propagate's inner watch-walking loop, split out so
// propagate can re-enter it after draining SBP clauses queued mid-walk.
func (s *Solver) propagateTrail() arena.CRef {
	confl := arena.Undef

	for s.tr.qhead < s.tr.size() {
		p := s.tr.lits[s.tr.qhead]
		s.tr.qhead++
		s.stats.propagations++

		list := s.watch.list(p)
		i, j := 0, 0

		for i < len(list) {
			wr := list[i]
			if s.vs.litValue(wr.Blocker) == tribool.True {
				list[j] = wr
				i++
				j++
				continue
			}

			cr := wr.Cr
			c := s.arena.Clause(cr)
			falseLit := p.Not()
			if c.Lit(0) == falseLit {
				c.Swap(0, 1)
			}
			first := c.Lit(0)
			newWr := Watcher{Cr: cr, Blocker: first}

			if first != wr.Blocker && s.vs.litValue(first) == tribool.True {
				list[j] = newWr
				i++
				j++
				continue
			}

			found := false
			for k := 2; k < c.Size(); k++ {
				if s.vs.litValue(c.Lit(k)) != tribool.False {
					c.Swap(1, k)
					s.watch.attach(c.Lit(1).Not(), Watcher{Cr: cr, Blocker: first})
					found = true
					break
				}
			}
			if found {
				i++
				continue
			}

			list[j] = newWr
			j++

			if s.vs.litValue(first) == tribool.False {
				confl = cr
				s.tr.qhead = s.tr.size()
				i++
				for i < len(list) {
					list[j] = list[i]
					i++
					j++
				}
				break
			}
			c.SetPropagated()
			s.uncheckedEnqueue(first, cr)
			i++
		}

		s.watch.setList(p, list[:j])
		if confl != arena.Undef {
			break
		}
	}

	return confl
}

// drainPendingSBP attaches every symmetry-breaking clause an OnAssign hook
// queued while propagateTrail held a live watch-list snapshot. Attaching
// one can itself force a literal, which can queue more clauses or extend
// the trail; propagate's outer loop re-runs propagateTrail and calls this
// again until both are empty.
func (s *Solver) drainPendingSBP() arena.CRef {
	pending := s.pendingSBP
	s.pendingSBP = nil
	confl := arena.Undef
	for _, ps := range pending {
		if cr := s.attachAboveRoot(ps); cr != arena.Undef {
			confl = cr
		}
	}
	return confl
}
