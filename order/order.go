// Package order implements the solver's decision-variable order heap: a
// max-heap over variables keyed by VSIDS activity, restricted to variables
// that are currently unassigned and decision-eligible.
package order

import "github.com/ericr/chainsat/tribool"

// Order is a max-priority queue of decision-eligible variables keyed by
// activity, adapted from Go's container/heap percolation routines.
type Order struct {
	vars     []int
	indices  []int
	assigns  *[]tribool.Tribool
	activity *[]float64
	eligible *[]bool
}

// New returns a new Order over the given (shared) assignment, activity, and
// decision-eligibility slices. All three are read by pointer so the order
// heap always sees the solver's current state.
func New(assigns *[]tribool.Tribool, activity *[]float64, eligible *[]bool) *Order {
	return &Order{
		vars:     []int{},
		indices:  []int{},
		assigns:  assigns,
		activity: activity,
		eligible: eligible,
	}
}

// NewVar registers a new variable with the heap. The variable is not placed
// on the heap until Push is called for it.
func (o *Order) NewVar() {
	o.indices = append(o.indices, -1)
}

// Init heapifies every currently-pushed variable. Call once after all
// initial variables have been Pushed.
func (o *Order) Init() {
	n := o.len()
	for i := n/2 - 1; i >= 0; i-- {
		o.down(i, n)
	}
}

// Choose pops variables off the heap until it finds one that is unassigned
// and decision-eligible, and returns its 1-based (DIMACS-style) number. It
// returns 0 if no such variable remains.
func (o *Order) Choose() int {
	a := *o.assigns
	e := *o.eligible

	for o.len() > 0 {
		v := o.pop()
		if v < len(e) && !e[v] {
			continue
		}
		if a[v].Undef() {
			return v + 1
		}
	}
	return 0
}

// Contains reports whether v (0-based) is currently on the heap.
func (o *Order) Contains(v int) bool {
	return v < len(o.indices) && o.indices[v] != -1
}

// Push pushes an element onto the heap if it is not already present.
func (o *Order) Push(v int) {
	if o.Contains(v) {
		return
	}
	o.indices[v] = len(o.vars)
	o.vars = append(o.vars, v)
	o.up(o.len() - 1)
}

// Fix re-establishes heap order around v after its activity has changed.
func (o *Order) Fix(v int) {
	if !o.Contains(v) {
		return
	}
	i := o.indices[v]
	o.down(i, o.len())
	o.up(i)
}

// len implements the sort interface.
func (o *Order) len() int {
	return len(o.vars)
}

// less implements the sort interface: higher activity sorts first.
func (o *Order) less(i, j int) bool {
	return (*o.activity)[o.vars[i]] > (*o.activity)[o.vars[j]]
}

// swap implements the sort interface.
func (o *Order) swap(i, j int) {
	vi, vj := o.vars[i], o.vars[j]
	o.vars[i], o.vars[j] = vj, vi
	o.indices[vi], o.indices[vj] = j, i
}

// pop pops the top element off the heap.
func (o *Order) pop() int {
	n := len(o.vars) - 1
	o.swap(0, n)
	o.down(0, n)
	v := o.vars[n]
	o.vars = o.vars[:n]
	o.indices[v] = -1

	return v
}

// up percolates an element from the heap up.
func (o *Order) up(j int) {
	for {
		i := (j - 1) / 2
		if i == j || !o.less(j, i) {
			break
		}
		o.swap(i, j)
		j = i
	}
}

// down percolates an element from the heap down.
func (o *Order) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1
		if j2 := j1 + 1; j2 < n && o.less(j2, j1) {
			j = j2
		}
		if !o.less(j, i) {
			break
		}
		o.swap(i, j)
		i = j
	}
	return i > i0
}
