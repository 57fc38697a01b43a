package solver

import (
	"sort"

	"github.com/ericr/chainsat/arena"
	"github.com/ericr/chainsat/lit"
)

// varBumpActivity bumps vr's VSIDS activity, rescaling every variable's
// activity if it would overflow toward the rescale threshold. Ported from
// EricR-saturday's solver_heuristics.go, generalized to operate on a lit.Var
// instead of a literal.
func (s *Solver) varBumpActivity(vr lit.Var) {
	s.vs.activity[vr] += s.varInc
	if s.vs.activity[vr] > 1e100 {
		s.varRescaleActivity()
	}
	if s.order.Contains(int(vr)) {
		s.order.Fix(int(vr))
	}
}

func (s *Solver) varDecayActivity() {
	s.varInc *= 1.0 / s.opts.VarDecay
}

func (s *Solver) varRescaleActivity() {
	for i := range s.vs.activity {
		s.vs.activity[i] *= 1e-100
	}
	s.varInc *= 1e-100
}

// claBumpActivity bumps cr's activity.
func (s *Solver) claBumpActivity(cr arena.CRef) {
	c := s.arena.Clause(cr)
	if !c.Learnt() {
		return
	}
	act := c.Activity() + s.claInc
	c.SetActivity(act)
	if act > 1e20 {
		s.claRescaleActivity()
	}
}

func (s *Solver) claDecayActivity() {
	s.claInc *= 1.0 / s.opts.ClaDecay
}

func (s *Solver) claRescaleActivity() {
	for _, cr := range s.learnts {
		c := s.arena.Clause(cr)
		c.SetActivity(c.Activity() * 1e-20)
	}
	s.claInc *= 1e-20
}

func (s *Solver) decayActivities() {
	s.varDecayActivity()
	s.claDecayActivity()
}

// sortLearntsByActivity orders the learnt-clause index by ascending
// activity, least-active first, so reduceDB can trim from the front. Fixes
// EricR-saturday's sortLearnts, whose comparator compared learnts[i] against
// itself and so never actually sorted.
func (s *Solver) sortLearntsByActivity() {
	sort.Slice(s.learnts, func(i, j int) bool {
		ci := s.arena.Clause(s.learnts[i])
		cj := s.arena.Clause(s.learnts[j])
		return ci.Activity() < cj.Activity()
	})
}

// luby computes the Luby restart sequence value at index i (0-based),
// scaled by y.
func luby(y float64, i int) float64 {
	// Find the finite subsequence that contains index i, and the size of
	// that subsequence.
	var size, seq = 1, 0
	for size < i+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != i {
		size = (size - 1) / 2
		seq--
		i = i % size
	}
	return pow(y, float64(seq))
}

func pow(base, exp float64) float64 {
	result := 1.0
	for n := int(exp); n > 0; n-- {
		result *= base
	}
	return result
}

// pickPolarity chooses the initial polarity to try for vr when it is picked
// as a decision variable, honoring rnd-pol and the saved/user polarity.
func (s *Solver) pickPolarity(vr lit.Var) bool {
	if s.opts.RandomPolar {
		return s.rng.Float64() < 0.5
	}
	if !s.vs.userPol[vr].Undef() {
		return s.vs.userPol[vr].False()
	}
	return s.vs.savedPol[vr]
}
