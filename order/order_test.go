package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericr/chainsat/tribool"
)

func newTestOrder(n int) (*Order, *[]tribool.Tribool, *[]float64, *[]bool) {
	assigns := make([]tribool.Tribool, n)
	activity := make([]float64, n)
	eligible := make([]bool, n)
	for i := range eligible {
		eligible[i] = true
	}
	o := New(&assigns, &activity, &eligible)
	for i := 0; i < n; i++ {
		o.NewVar()
		o.Push(i)
	}
	o.Init()
	return o, &assigns, &activity, &eligible
}

func TestChoosePicksHighestActivity(t *testing.T) {
	o, _, activity, _ := newTestOrder(3)
	(*activity)[0] = 1.0
	(*activity)[1] = 5.0
	(*activity)[2] = 2.0
	o.Fix(0)
	o.Fix(1)
	o.Fix(2)

	require.Equal(t, 2, o.Choose()) // 1-based: var 1 has highest activity
}

func TestChooseSkipsAssignedVars(t *testing.T) {
	o, assigns, activity, _ := newTestOrder(2)
	(*activity)[0] = 5.0
	(*activity)[1] = 1.0
	o.Fix(0)
	o.Fix(1)
	(*assigns)[0] = tribool.True

	require.Equal(t, 2, o.Choose())
}

func TestChooseSkipsIneligibleVars(t *testing.T) {
	o, _, activity, eligible := newTestOrder(2)
	(*activity)[0] = 5.0
	(*activity)[1] = 1.0
	o.Fix(0)
	o.Fix(1)
	(*eligible)[0] = false

	require.Equal(t, 2, o.Choose())
}

func TestChooseEmptyReturnsZero(t *testing.T) {
	o, assigns, _, _ := newTestOrder(1)
	(*assigns)[0] = tribool.True

	require.Equal(t, 0, o.Choose())
}

func TestPushIsIdempotent(t *testing.T) {
	o, _, _, _ := newTestOrder(1)
	before := o.len()
	o.Push(0)
	require.Equal(t, before, o.len())
}

func TestContainsAfterPop(t *testing.T) {
	o, _, _, _ := newTestOrder(1)
	require.True(t, o.Contains(0))
	o.pop()
	require.False(t, o.Contains(0))
}
