package solver

import (
	"github.com/ericr/chainsat/arena"
	"github.com/ericr/chainsat/lit"
)

// trail is the append-only sequence of assigned literals with per-level
// delimiters. qhead is the propagation cursor: literals at
// indices < qhead have already been through BCP.
type trail struct {
	lits     []lit.Lit
	trailLim []int
	qhead    int
}

func newTrail() *trail {
	return &trail{}
}

func (t *trail) decisionLevel() int { return len(t.trailLim) }

func (t *trail) size() int { return len(t.lits) }

// newDecisionLevel opens a new decision level at the current trail height.
func (t *trail) newDecisionLevel() {
	t.trailLim = append(t.trailLim, len(t.lits))
}

// push appends an assigned literal to the trail. It does not touch qhead;
// callers advance qhead by draining through propagate.
func (t *trail) push(l lit.Lit) {
	t.lits = append(t.lits, l)
}

// levelStart returns the trail index at which decision level d begins.
// levelStart(0) is 0.
func (t *trail) levelStart(d int) int {
	if d == 0 {
		return 0
	}
	return t.trailLim[d-1]
}

// truncate drops every literal assigned at or above the given trail index,
// calling undo(l) for each in reverse (most-recent-first) chronological
// order, and reopens the propagation cursor at the truncation point.
func (t *trail) truncate(from int, undo func(l lit.Lit)) {
	for i := len(t.lits) - 1; i >= from; i-- {
		undo(t.lits[i])
	}
	t.lits = t.lits[:from]
	if t.qhead > from {
		t.qhead = from
	}
}

// cancelUntil pops decision levels until decisionLevel() == level.
func (s *Solver) cancelUntil(level int) {
	if s.tr.decisionLevel() <= level {
		return
	}
	top := s.tr.decisionLevel()
	from := s.tr.levelStart(level + 1)
	s.tr.truncate(from, func(l lit.Lit) {
		vr := l.VarOf()
		s.vs.unassign(vr, s.opts.PhaseSaving, top)
		if !s.order.Contains(int(vr)) {
			s.order.Push(int(vr))
		}
	})
	s.tr.trailLim = s.tr.trailLim[:level]
}

// uncheckedEnqueue records a new fact on the trail without checking for
// conflict (the caller must have already established p is consistent).
func (s *Solver) uncheckedEnqueue(p lit.Lit, reason arena.CRef) {
	s.vs.assign(p, s.tr.decisionLevel(), reason)
	s.tr.push(p)
	if s.symm != nil {
		s.symm.OnAssign(p, s)
	}
}
