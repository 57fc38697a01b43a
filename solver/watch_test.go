package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericr/chainsat/arena"
	"github.com/ericr/chainsat/lit"
)

func TestWatchesAttachAndList(t *testing.T) {
	w := newWatches()
	l := lit.FromVar(0, false)
	w.ensure(l)
	w.attach(l, Watcher{Cr: arena.CRef(7), Blocker: lit.FromVar(1, false)})

	list := w.list(l)
	require.Len(t, list, 1)
	require.Equal(t, arena.CRef(7), list[0].Cr)
}

func TestWatchesDetach(t *testing.T) {
	w := newWatches()
	l := lit.FromVar(0, false)
	w.ensure(l)
	w.attach(l, Watcher{Cr: arena.CRef(1)})
	w.attach(l, Watcher{Cr: arena.CRef(2)})

	w.detach(l, arena.CRef(1))
	list := w.list(l)
	require.Len(t, list, 1)
	require.Equal(t, arena.CRef(2), list[0].Cr)
}

func TestWatchesLiteralAndNegationAreDistinct(t *testing.T) {
	w := newWatches()
	vr := lit.Var(3)
	w.initFor(vr)

	pos := lit.FromVar(vr, false)
	neg := lit.FromVar(vr, true)
	w.attach(pos, Watcher{Cr: arena.CRef(1)})

	require.Len(t, w.list(pos), 1)
	require.Len(t, w.list(neg), 0)
}

func TestWatchesCleanAllDropsDeleted(t *testing.T) {
	w := newWatches()
	l := lit.FromVar(0, false)
	w.ensure(l)
	w.attach(l, Watcher{Cr: arena.CRef(1)})
	w.attach(l, Watcher{Cr: arena.CRef(2)})
	w.smudge(l)

	w.cleanAll(func(cr arena.CRef) bool { return cr == arena.CRef(1) })

	list := w.list(l)
	require.Len(t, list, 1)
	require.Equal(t, arena.CRef(2), list[0].Cr)
}
