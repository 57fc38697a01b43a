package solver

import (
	"github.com/ericr/chainsat/arena"
	"github.com/ericr/chainsat/lit"
	"github.com/ericr/chainsat/tribool"
)

// vars holds the per-variable record: value, reason, level, activity,
// saved/user polarity, and decision-eligibility. It is a struct-of-arrays,
// indexed by lit.Var, so that hot loops (propagate, analyze) touch
// tightly-packed slices instead of chasing per-variable objects.
type vars struct {
	value      []tribool.Tribool
	reason     []arena.CRef
	level      []int
	activity   []float64
	savedPol   []bool
	userPol    []tribool.Tribool
	eligible   []bool // false for SBP auxiliary vars unless symm-aux-decide
}

func newVars() *vars {
	return &vars{}
}

func (v *vars) newVar(userPolarity tribool.Tribool, decisionVar bool, initActivity float64) lit.Var {
	idx := lit.Var(len(v.value))
	v.value = append(v.value, tribool.Undef)
	v.reason = append(v.reason, arena.Undef)
	v.level = append(v.level, -1)
	v.activity = append(v.activity, initActivity)
	v.savedPol = append(v.savedPol, false)
	v.userPol = append(v.userPol, userPolarity)
	v.eligible = append(v.eligible, decisionVar)
	return idx
}

func (v *vars) n() int { return len(v.value) }

// valuesPtr exposes the assignment slice by pointer for order.New, which
// needs to observe assignment changes made after construction.
func (v *vars) valuesPtr() *[]tribool.Tribool { return &v.value }

// litValue returns the current value of literal l, taking its sign into
// account.
func (v *vars) litValue(l lit.Lit) tribool.Tribool {
	if l.IsUndef() {
		return tribool.Undef
	}
	val := v.value[l.VarOf()]
	if l.Sign() {
		return val.Not()
	}
	return val
}

func (v *vars) varValue(vr lit.Var) tribool.Tribool {
	return v.value[vr]
}

func (v *vars) assign(l lit.Lit, level int, reason arena.CRef) {
	vr := l.VarOf()
	v.value[vr] = tribool.NewFromBool(!l.Sign())
	v.level[vr] = level
	v.reason[vr] = reason
}

// unassign clears vr's assignment. topLevel is the highest decision level
// being undone by the in-progress cancelUntil; phase-saving mode 1 only
// remembers polarities for variables assigned at that topmost level, mode 2
// always remembers, mode 0 never does.
func (v *vars) unassign(vr lit.Var, phaseSaving int, topLevel int) {
	if phaseSaving == 2 || (phaseSaving == 1 && v.level[vr] == topLevel) {
		v.savedPol[vr] = v.value[vr].True()
	}
	v.value[vr] = tribool.Undef
	v.reason[vr] = arena.Undef
	v.level[vr] = -1
}
