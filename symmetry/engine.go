package symmetry

import (
	"github.com/ericr/chainsat/config"
	"github.com/ericr/chainsat/lit"
	"github.com/ericr/chainsat/solver"
	"github.com/ericr/chainsat/tribool"
)

// chain is the per-permutation chaining-implication state: one pointer
// variable per support index, plus (in dynamic mode) the current
// watched-equality frontier.
type chain struct {
	perm     *Permutation
	pointers []lit.Var // pointers[i] gates support[i]'s implication
	added    []bool    // added[i]: chaining clauses for index i emitted
	frontier int        // dynamic mode: index still being watched for equality
	broken   bool        // dynamic mode: equality failed once, chain frozen
}

// Engine attaches to a solver.Solver via AttachSymmetry and emits
// symmetry-breaking predicate clauses either eagerly at setup (symm-shatter
// / symm-chain) or lazily as the trail advances (symm-dynamic).
type Engine struct {
	opts   *config.Options
	perms  []*Permutation
	chains []*chain
	shatters []*shatter
	eqs    *eqTable
}

// shatter is the per-permutation Shatter-SBP state: one pointer variable
// p_i per support index, defined as p_i <-> p_{i-1} ∧ (x_i -> π(x_i)),
// reading "equalities up to x_{i-1} hold" as the previous pointer.
type shatter struct {
	perm     *Permutation
	pointers []lit.Var
}

var _ solver.SymmetryEngine = (*Engine)(nil)

// NewEngine builds an Engine for perms, per the flags in opts. Call Setup
// once the solver's original clauses have been added but before Solve.
func NewEngine(perms []*Permutation, opts *config.Options) *Engine {
	return &Engine{opts: opts, perms: perms, eqs: newEqTable()}
}

// Setup allocates auxiliary variables for every requested SBP kind (always
// at decision level 0 invariant) and, unless
// symm-dynamic is set, emits every chaining clause immediately. Shatter and
// Chaining SBPs are independent and additive: either, both, or neither may
// be requested.
func (e *Engine) Setup(s *solver.Solver) {
	for _, p := range e.perms {
		if len(p.Support) == 0 {
			continue
		}
		if e.opts.SymmChain {
			e.setupChain(s, p)
		}
		if e.opts.SymmShatter {
			e.setupShatter(s, p)
		}
	}
}

func (e *Engine) setupChain(s *solver.Solver, p *Permutation) {
	c := &chain{perm: p, frontier: 0}
	c.pointers = make([]lit.Var, len(p.Support))
	c.added = make([]bool, len(p.Support))
	for i := range p.Support {
		c.pointers[i] = s.NewVar(tribool.Undef, e.opts.SymmAuxDecide)
	}
	// p_0 is always active: the chain starts unconditionally.
	s.AddClause([]lit.Lit{lit.FromVar(c.pointers[0], false)})

	e.chains = append(e.chains, c)

	if !e.opts.SymmDynamic {
		for i := range p.Support {
			e.emit(s, c, i)
		}
	}
}

// setupShatter builds the p_i <-> p_{i-1} ∧ (x_i -> π(x_i)) chain, using
// the equality-auxiliary encoding's "a" literal for the implication term
// and, when symm-eq-aux is set, routing that implication through the
// shared eqTable so repeated x_i -> π(x_i) mappings across permutations
// reuse the same auxiliary variables.
func (e *Engine) setupShatter(s *solver.Solver, p *Permutation) {
	sh := &shatter{perm: p, pointers: make([]lit.Var, len(p.Support))}

	var prev lit.Lit
	for i, vr := range p.Support {
		x := lit.FromVar(vr, false)
		pix := p.Pi(x)

		var impliesTerm lit.Lit
		if e.opts.SymmEqAux {
			impliesTerm = lit.FromVar(e.eqs.get(s, x, pix, e.opts.SymmAuxDecide).a, false)
		} else {
			aux := s.NewVar(tribool.Undef, e.opts.SymmAuxDecide)
			impliesTerm = lit.FromVar(aux, false)
			s.AddSBPClause([]lit.Lit{impliesTerm.Not(), x.Not(), pix})
		}

		pv := s.NewVar(tribool.Undef, e.opts.SymmAuxDecide)
		pLit := lit.FromVar(pv, false)
		sh.pointers[i] = pv

		if i == 0 {
			// p_0 <-> a_0.
			s.AddSBPClause([]lit.Lit{pLit.Not(), impliesTerm})
			s.AddSBPClause([]lit.Lit{pLit, impliesTerm.Not()})
		} else {
			// p_i <-> p_{i-1} ∧ a_i.
			s.AddSBPClause([]lit.Lit{pLit.Not(), prev})
			s.AddSBPClause([]lit.Lit{pLit.Not(), impliesTerm})
			s.AddSBPClause([]lit.Lit{pLit, prev.Not(), impliesTerm.Not()})
		}
		prev = pLit
	}

	e.shatters = append(e.shatters, sh)
}

// emit adds the chaining clauses tying pointer i to support[i] and
// pointer i+1:
//
//	(¬p_i ∨ ¬x_i ∨ π(x_i))
//	(¬p_i ∨ π(x_i) ∨ p_{i+1})
//	(¬p_i ∨ ¬x_i ∨ p_{i+1})
//
// The last index has no successor pointer, so only the first clause is
// meaningful there.
func (e *Engine) emit(s *solver.Solver, c *chain, i int) {
	if c.added[i] {
		return
	}
	c.added[i] = true

	x := lit.FromVar(c.perm.Support[i], false)
	pix := c.perm.Pi(x)
	pi := lit.FromVar(c.pointers[i], false)

	s.AddSBPClause([]lit.Lit{pi.Not(), x.Not(), pix})

	if i+1 < len(c.pointers) {
		pNext := lit.FromVar(c.pointers[i+1], false)
		s.AddSBPClause([]lit.Lit{pi.Not(), pix, pNext})
		s.AddSBPClause([]lit.Lit{pi.Not(), x.Not(), pNext})
	}
}

// OnAssign is the search's post-uncheckedEnqueue hook. In dynamic mode it
// advances each chain's frontier whenever the assignment resolves the
// equality value(x_i) == value(π(x_i)) at that chain's current frontier,
// predSat/addSucc description.
func (e *Engine) OnAssign(p lit.Lit, s *solver.Solver) {
	if !e.opts.SymmDynamic {
		return
	}
	vr := p.VarOf()
	for _, c := range e.chains {
		if c.broken || c.frontier >= len(c.perm.Support) {
			continue
		}
		i := c.frontier
		x := lit.FromVar(c.perm.Support[i], false)
		pix := c.perm.Pi(x)
		if vr != x.VarOf() && vr != pix.VarOf() {
			continue
		}
		e.predSat(s, c, i)
	}
}

// predSat checks whether x_i and π(x_i) currently agree; if so it advances
// the frontier and materializes the chaining clauses for index i via
// addSucc. If they actively disagree, the chain is frozen at i and no SBP
// is ever emitted for it once a disagreement is found, rather than
// falling through to emit one anyway.
func (e *Engine) predSat(s *solver.Solver, c *chain, i int) bool {
	x := lit.FromVar(c.perm.Support[i], false)
	pix := c.perm.Pi(x)

	vx := s.Value(int(x.VarOf()) + 1)
	vpix := s.Value(int(pix.VarOf()) + 1)
	if vx.Undef() || vpix.Undef() {
		return false
	}

	xTrue := vx.True() != x.Sign()
	pixTrue := vpix.True() != pix.Sign()
	if xTrue != pixTrue {
		c.broken = true
		return false
	}

	e.addSucc(s, c, i)
	return true
}

// addSucc emits index i's chaining clauses (idempotently, via chain.added)
// and advances the frontier to i+1.
func (e *Engine) addSucc(s *solver.Solver, c *chain, i int) {
	e.emit(s, c, i)
	c.frontier = i + 1
}

// OnNewDecisionLevel and OnBacktrack are no-ops: emitted SBP clauses are
// monotonic and are never retracted, so there is no
// per-level state to save or restore.
func (e *Engine) OnNewDecisionLevel(s *solver.Solver) {}
func (e *Engine) OnBacktrack(level int, s *solver.Solver) {}
