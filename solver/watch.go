package solver

import (
	"github.com/ericr/chainsat/arena"
	"github.com/ericr/chainsat/lit"
)

// Watcher is one entry in a literal's watch list: the watched clause and a
// cached blocking literal used to skip re-reading the clause when the
// blocker is already satisfied.
type Watcher struct {
	Cr      arena.CRef
	Blocker lit.Lit
}

// watches holds, for every literal, the clauses that currently watch it.
// EricR-saturday keys a map[lit.Lit][]*Clause directly on the literal value;
// since a Lit is already packed as 2v|sign, that value doubles as a dense
// array index, so this is the same scheme backed by a slice instead of a
// map.
type watches struct {
	lists   [][]Watcher
	dirty   []bool
	dirties []lit.Lit
}

func newWatches() *watches {
	return &watches{}
}

func litIdx(l lit.Lit) int { return int(l) }

func (w *watches) ensure(l lit.Lit) {
	idx := litIdx(l)
	for len(w.lists) <= idx {
		w.lists = append(w.lists, nil)
		w.dirty = append(w.dirty, false)
	}
}

// initFor allocates watch-list slots for a freshly-registered variable's two
// literals.
func (w *watches) initFor(vr lit.Var) {
	w.ensure(lit.FromVar(vr, false))
	w.ensure(lit.FromVar(vr, true))
}

func (w *watches) attach(watched lit.Lit, wr Watcher) {
	idx := litIdx(watched)
	w.lists[idx] = append(w.lists[idx], wr)
}

// detach removes the (single) watcher entry pointing at cr from watched's
// list. Used off the hot path (clause removal); the hot path uses smudge
// and cleanAll's in-place compaction instead.
func (w *watches) detach(watched lit.Lit, cr arena.CRef) {
	idx := litIdx(watched)
	list := w.lists[idx]
	for i, wr := range list {
		if wr.Cr == cr {
			w.lists[idx] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// smudge marks watched's list as containing stale entries; they stay in the
// list until the next cleanAll filters them out (deferred-detach
// compaction strategy).
func (w *watches) smudge(watched lit.Lit) {
	idx := litIdx(watched)
	if !w.dirty[idx] {
		w.dirty[idx] = true
		w.dirties = append(w.dirties, watched)
	}
}

func (w *watches) list(l lit.Lit) []Watcher {
	idx := litIdx(l)
	if idx >= len(w.lists) {
		return nil
	}
	return w.lists[idx]
}

func (w *watches) setList(l lit.Lit, list []Watcher) {
	w.lists[litIdx(l)] = list
}

// cleanAll drops every watcher whose clause was freed, across every literal
// smudged since the last cleanAll.
func (w *watches) cleanAll(deleted func(arena.CRef) bool) {
	for _, l := range w.dirties {
		idx := litIdx(l)
		list := w.lists[idx]
		kept := list[:0]
		for _, wr := range list {
			if !deleted(wr.Cr) {
				kept = append(kept, wr)
			}
		}
		w.lists[idx] = kept
		w.dirty[idx] = false
	}
	w.dirties = w.dirties[:0]
}
