// Package solver implements the CDCL SAT solver: two-watched-literal unit
// propagation, 1-UIP conflict analysis with clause minimization, VSIDS
// decision ordering, Luby/geometric restarts, and a compacting clause
// arena, generalized from EricR-saturday's solver package and extended
// with a pluggable dynamic symmetry-breaking hook.
package solver

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ericr/chainsat/arena"
	"github.com/ericr/chainsat/config"
	"github.com/ericr/chainsat/lit"
	"github.com/ericr/chainsat/order"
	"github.com/ericr/chainsat/tribool"
)

// Status is the outcome of a solve attempt.
type Status int

const (
	// StatusUndef means the search stopped early (budget exhausted).
	StatusUndef Status = iota
	StatusSAT
	StatusUNSAT
)

func (st Status) String() string {
	switch st {
	case StatusSAT:
		return "SAT"
	case StatusUNSAT:
		return "UNSAT"
	default:
		return "UNDEF"
	}
}

// SymmetryEngine is the hook the symmetry package attaches to a Solver to
// emit chained-implication SBP clauses lazily as the search assigns
// literals. Kept as an interface so solver never imports
// symmetry, avoiding a package cycle.
type SymmetryEngine interface {
	OnAssign(p lit.Lit, s *Solver)
	OnNewDecisionLevel(s *Solver)
	OnBacktrack(level int, s *Solver)
}

type stats struct {
	propagations int64
	conflicts    int64
	restarts     int64
	decisions    int64
}

// Solver is the CDCL SAT solver, constructed from an explicit *config.Options
// value rather than reading global option state.
type Solver struct {
	opts *config.Options
	log  *logrus.Entry

	arena *arena.Arena

	vs    *vars
	tr    *trail
	watch *watches
	order *order.Order

	constrs []arena.CRef
	learnts []arena.CRef

	varInc  float64
	claInc  float64

	rootLevel int
	rng       *rand.Rand

	symm SymmetryEngine

	stats stats

	// lastFinal holds the conflict set computed by the most recent
	// UNSAT-under-assumptions result.
	lastFinal []lit.Lit

	// ok is false once an add-time top-level conflict has been found; the
	// solver is permanently UNSAT thereafter.
	ok bool

	// propagating is true while propagate is walking a watch list. A
	// symmetry OnAssign hook firing during that window queues its clause in
	// pendingSBP instead of attaching it immediately, since attach would
	// otherwise mutate a watch list propagate holds a live snapshot of.
	propagating bool
	pendingSBP  [][]lit.Lit

	// pendingConflict holds a clause discovered already-false at add time
	// by a hook that fired outside propagate (a decision, assumption, or
	// asserted-literal enqueue). The next propagate call surfaces it before
	// doing any further watch-list work.
	pendingConflict arena.CRef
}

// New returns a solver configured by opts. A nil opts uses config.Default().
func New(opts *config.Options) *Solver {
	if opts == nil {
		opts = config.Default()
	}
	s := &Solver{
		opts:    opts,
		arena:   arena.New(1 << 16),
		vs:      newVars(),
		tr:      newTrail(),
		watch:   newWatches(),
		varInc:  1.0,
		claInc:  1.0,
		rng:     rand.New(rand.NewSource(opts.RandomSeed)),
		ok:      true,
	}
	s.pendingConflict = arena.Undef
	if opts.Logger != nil {
		s.log = logrus.NewEntry(opts.Logger)
	} else {
		s.log = logrus.NewEntry(logrus.New())
	}
	s.order = order.New(s.vs.valuesPtr(), &s.vs.activity, &s.vs.eligible)
	return s
}

// AttachSymmetry wires a symmetry engine into the search loop. Call before
// Solve.
func (s *Solver) AttachSymmetry(e SymmetryEngine) { s.symm = e }

// NVars returns the number of registered variables.
func (s *Solver) NVars() int { return s.vs.n() }

// NAssigns returns the number of currently-assigned variables.
func (s *Solver) NAssigns() int { return s.tr.size() }

// NLearnts returns the number of learnt clauses currently kept.
func (s *Solver) NLearnts() int { return len(s.learnts) }

// NConstraints returns the number of original (non-learnt) clauses.
func (s *Solver) NConstraints() int { return len(s.constrs) }

// NConflicts, NPropagations, NRestarts, NDecisions report search
// statistics.
func (s *Solver) NConflicts() int64    { return s.stats.conflicts }
func (s *Solver) NPropagations() int64 { return s.stats.propagations }
func (s *Solver) NRestarts() int64     { return s.stats.restarts }
func (s *Solver) NDecisions() int64    { return s.stats.decisions }

// NewVar registers a fresh variable and returns its 0-based index.
// decisionVar controls whether the variable heap ever chooses it (used to
// keep SBP auxiliary variables out of the decision order unless
// symm-aux-decide is set).
func (s *Solver) NewVar(userPolarity tribool.Tribool, decisionVar bool) lit.Var {
	initActivity := 0.0
	if s.opts.RandomInit {
		initActivity = s.rng.Float64() * 0.01
	}
	vr := s.vs.newVar(userPolarity, decisionVar, initActivity)
	s.watch.initFor(vr)
	s.order.NewVar()
	if decisionVar {
		s.order.Push(int(vr))
	}
	return vr
}

// Value reports the current value of a 1-based DIMACS variable number.
func (s *Solver) Value(userVar int) tribool.Tribool {
	vr := lit.Var(userVar - 1)
	if int(vr) < 0 || int(vr) >= s.vs.n() {
		return tribool.Undef
	}
	return s.vs.varValue(vr)
}

// AddClauseInts adds a clause given as signed DIMACS integers, growing the
// variable set as needed.
func (s *Solver) AddClauseInts(ps []int) bool {
	lits := make([]lit.Lit, len(ps))
	for i, p := range ps {
		v := p
		if v < 0 {
			v = -v
		}
		for s.vs.n() < v {
			s.NewVar(tribool.Undef, true)
		}
		lits[i] = lit.NewFromInt(p)
	}
	return s.AddClause(lits)
}

// AddClause adds an original (non-learnt, non-SBP) clause: literals are
// sorted and deduped, tautologies are dropped as trivially satisfied, and a
// unit clause is enqueued immediately.
func (s *Solver) AddClause(lits []lit.Lit) bool {
	return s.addClauseWithKind(lits, false)
}

// addClauseWithKind is AddClause generalized to also accept SBP clauses,
// which are exempt from the decision_level == 0 assertion
// because dynamic symmetry breaking adds them mid-search. Structural
// simplification (tautology and duplicate-literal removal) is always safe
// and always applied; simplification against the current assignment
// (dropping false literals, treating a true literal as fully satisfying the
// clause) is only sound at decision level 0 -- an SBP clause added above
// level 0 goes through addAboveRoot instead, unsimplified against a
// partial assignment that later backtracking can undo.
func (s *Solver) addClauseWithKind(lits []lit.Lit, isSBP bool) bool {
	if !s.ok {
		return false
	}
	if !isSBP && s.tr.decisionLevel() != 0 {
		panic("AddClause called above decision level 0")
	}
	aboveRoot := isSBP && s.tr.decisionLevel() != 0

	ps := append([]lit.Lit(nil), lits...)
	sortLits(ps)

	out := ps[:0]
	var prev lit.Lit = lit.Undef
	for _, p := range ps {
		if prev != lit.Undef && p == prev.Not() {
			return true // tautological
		}
		if p == prev {
			continue // duplicate literal
		}
		if !aboveRoot {
			if s.vs.litValue(p) == tribool.True {
				return true // satisfied
			}
			if s.vs.litValue(p) == tribool.False {
				continue // falsified
			}
		}
		out = append(out, p)
		prev = p
	}
	ps = out

	if aboveRoot {
		return s.addAboveRoot(ps)
	}

	switch len(ps) {
	case 0:
		s.ok = false
		return false
	case 1:
		if !s.enqueue(ps[0], arena.Undef) {
			s.ok = false
			return false
		}
		if s.propagate() != arena.Undef {
			s.ok = false
			return false
		}
		return true
	}

	cr := s.arena.Alloc(ps, false, isSBP)
	s.watch.attach(ps[0].Not(), Watcher{Cr: cr, Blocker: ps[1]})
	s.watch.attach(ps[1].Not(), Watcher{Cr: cr, Blocker: ps[0]})
	s.constrs = append(s.constrs, cr)
	return true
}

// addAboveRoot attaches a structurally-simplified SBP clause added above
// decision level 0. If propagate is mid-walk of a watch list, attaching now
// would clobber it, so the clause is queued and picked up once that walk
// reaches a safe point; otherwise it is attached immediately and any
// resulting conflict is stashed for the next propagate call to surface,
// the same way a naturally-discovered conflict would be.
func (s *Solver) addAboveRoot(ps []lit.Lit) bool {
	if s.propagating {
		s.pendingSBP = append(s.pendingSBP, ps)
		return true
	}
	if cr := s.attachAboveRoot(ps); cr != arena.Undef {
		s.pendingConflict = cr
	}
	return true
}

// attachAboveRoot attaches ps without simplifying it against the current
// partial assignment, handling the resulting unit or conflict case like a
// backjump clause rather than an add-time simplification would. It returns
// the CRef of a clause found already fully false, or arena.Undef.
func (s *Solver) attachAboveRoot(ps []lit.Lit) arena.CRef {
	switch len(ps) {
	case 0:
		s.ok = false
		return arena.Undef
	case 1:
		// A single literal has no second position to watch, so it can't be
		// represented in the arena's two-watch scheme. A fact this clause
		// asserts must hold regardless of the branch that produced it, so
		// the only sound place to record it is decision level 0 -- exactly
		// how record handles a unit learnt clause.
		s.cancelUntil(0)
		if !s.enqueue(ps[0], arena.Undef) {
			s.ok = false
		}
		return arena.Undef
	}

	orderWatches(s, ps)
	cr := s.arena.Alloc(ps, false, true)
	s.watch.attach(ps[0].Not(), Watcher{Cr: cr, Blocker: ps[1]})
	s.watch.attach(ps[1].Not(), Watcher{Cr: cr, Blocker: ps[0]})
	s.constrs = append(s.constrs, cr)

	switch {
	case s.vs.litValue(ps[0]) == tribool.False:
		return cr
	case s.vs.litValue(ps[0]) == tribool.Undef && s.vs.litValue(ps[1]) == tribool.False:
		s.arena.Clause(cr).SetPropagated()
		s.enqueue(ps[0], cr)
	}
	return arena.Undef
}

// orderWatches moves the two literals best suited to be watched into ps[0]
// and ps[1]: unassigned beats true beats false, and among equals the one
// assigned at the higher decision level (the one backtracking undoes
// first) wins.
func orderWatches(s *Solver, ps []lit.Lit) {
	for slot := 0; slot < 2 && slot < len(ps); slot++ {
		best := slot
		for i := slot + 1; i < len(ps); i++ {
			if watchBetter(s, ps[i], ps[best]) {
				best = i
			}
		}
		ps[slot], ps[best] = ps[best], ps[slot]
	}
}

func watchBetter(s *Solver, a, b lit.Lit) bool {
	pa, pb := watchRank(s, a), watchRank(s, b)
	if pa != pb {
		return pa > pb
	}
	return s.vs.level[a.VarOf()] > s.vs.level[b.VarOf()]
}

func watchRank(s *Solver, l lit.Lit) int {
	switch s.vs.litValue(l) {
	case tribool.Undef:
		return 2
	case tribool.True:
		return 1
	default:
		return 0
	}
}

// AddSBPClause adds a dynamically-generated symmetry-breaking clause. Only
// the symmetry engine should call this.
func (s *Solver) AddSBPClause(lits []lit.Lit) bool {
	return s.addClauseWithKind(lits, true)
}

func sortLits(ls []lit.Lit) {
	for i := 1; i < len(ls); i++ {
		for j := i; j > 0 && ls[j] < ls[j-1]; j-- {
			ls[j], ls[j-1] = ls[j-1], ls[j]
		}
	}
}

// Solve runs the solver to completion (subject to configured budgets)
// under no assumptions.
func (s *Solver) Solve() (Status, error) {
	return s.SolveWithAssumptions(nil)
}

// SolveWithAssumptions runs the solver under a set of unit assumptions
// (1-based signed DIMACS integers).
func (s *Solver) SolveWithAssumptions(assumptions []int) (Status, error) {
	if err := s.opts.Validate(); err != nil {
		return StatusUndef, errors.Wrap(err, "invalid solver options")
	}
	for _, a := range assumptions {
		v := a
		if v < 0 {
			v = -v
		}
		if v < 1 || v > s.vs.n() {
			return StatusUndef, errors.Errorf("assumption %d references undefined variable", a)
		}
	}
	if !s.ok {
		return StatusUNSAT, nil
	}

	if s.propagate() != arena.Undef {
		s.ok = false
		return StatusUNSAT, nil
	}
	if !s.simplifyDB() {
		return StatusUNSAT, nil
	}
	s.order.Init()

	s.lastFinal = nil
	for _, a := range assumptions {
		assump := lit.NewFromInt(a)
		s.tr.newDecisionLevel()
		if s.symm != nil {
			s.symm.OnNewDecisionLevel(s)
		}
		if !s.enqueue(assump, arena.Undef) {
			s.lastFinal = s.analyzeFinal(assump.Not())
			s.cancelUntil(0)
			return StatusUNSAT, nil
		}
		if confl := s.propagate(); confl != arena.Undef {
			s.lastFinal = s.analyzeFinalConflict(confl)
			s.cancelUntil(0)
			return StatusUNSAT, nil
		}
	}
	s.rootLevel = s.tr.decisionLevel()

	learntsBudget := float64(len(s.constrs)) / 3.0
	if learntsBudget < float64(s.opts.MinLearnts) {
		learntsBudget = float64(s.opts.MinLearnts)
	}

	restartBase := float64(s.opts.RestartFirst)
	status := StatusUndef

	for i := 0; status == StatusUndef; i++ {
		var confBudget float64
		if s.opts.Luby {
			confBudget = luby(s.opts.RestartInc, i) * restartBase
		} else {
			confBudget = restartBase * math.Pow(s.opts.RestartInc, float64(i))
		}
		var err error
		status, err = s.search(int(confBudget), learntsBudget)
		if err != nil {
			return StatusUndef, err
		}
		learntsBudget *= 1.1
		s.stats.restarts++
	}
	s.cancelUntil(0)
	return status, nil
}
