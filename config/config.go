// Package config centralizes every solver-tunable option in one explicit
// value instead of a global option registry: chainsat's Solver is
// constructed once from an *Options value rather than reading
// process-global flags.
package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Options enumerates the CLI/solver options recognized by chainsat.
type Options struct {
	// Logger receives structured solver diagnostics. Defaults to a
	// logrus.Logger writing to stderr at WarnLevel.
	Logger *logrus.Logger

	// VSIDS / clause activity.
	VarDecay float64 // (0,1), default 0.95
	ClaDecay float64 // (0,1), default 0.999

	// Decision heuristic.
	RandomVarFreq float64 // [0,1], probability of a random decision
	RandomSeed    int64   // >0
	RandomInit    bool    // randomize initial activities
	RandomPolar   bool    // rnd_pol: always pick a random polarity

	// Conflict analysis.
	CCMinMode   int // {0,1,2}
	PhaseSaving int // {0,1,2}: 0=off, 1=below-last-level only, 2=always

	// Restarts.
	Luby         bool    // Luby vs geometric restart schedule
	RestartFirst int     // base restart interval, >=1
	RestartInc   float64 // restart multiplier, >1

	// Clause-DB maintenance.
	GCFrac     float64 // arena waste fraction that triggers compaction, >0
	MinLearnts int     // learnt-DB floor, >=0

	// Symmetry breaking.
	SymmetryFile  string // path to a symmetry-generator file; "" disables
	SymmShatter   bool   // emit Shatter SBPs
	SymmChain     bool   // emit Chaining SBPs
	SymmEqAux     bool   // encode equalities via auxiliary variables
	SymmDynamic   bool   // emit SBPs lazily as predecessors are satisfied
	SymmAuxDecide bool   // allow SBP auxiliary vars to be decision variables

	// Budgets: <=0 means unbounded.
	ConflictBudget    int64
	PropagationBudget int64
}

// Default returns the option set with chainsat's built-in defaults.
func Default() *Options {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return &Options{
		Logger: logger,

		VarDecay: 0.95,
		ClaDecay: 0.999,

		RandomVarFreq: 0.0,
		RandomSeed:    1,
		RandomInit:    false,
		RandomPolar:   false,

		CCMinMode:   2,
		PhaseSaving: 2,

		Luby:         true,
		RestartFirst: 100,
		RestartInc:   2.0,

		GCFrac:     0.20,
		MinLearnts: 0,

		ConflictBudget:    -1,
		PropagationBudget: -1,
	}
}

// Validate rejects option values outside their documented ranges.
func (o *Options) Validate() error {
	switch {
	case o.VarDecay <= 0 || o.VarDecay >= 1:
		return errors.Errorf("var-decay must be in (0,1), got %v", o.VarDecay)
	case o.ClaDecay <= 0 || o.ClaDecay >= 1:
		return errors.Errorf("cla-decay must be in (0,1), got %v", o.ClaDecay)
	case o.RandomVarFreq < 0 || o.RandomVarFreq > 1:
		return errors.Errorf("rnd-freq must be in [0,1], got %v", o.RandomVarFreq)
	case o.RandomSeed <= 0:
		return errors.Errorf("rnd-seed must be > 0, got %v", o.RandomSeed)
	case o.CCMinMode < 0 || o.CCMinMode > 2:
		return errors.Errorf("ccmin-mode must be one of {0,1,2}, got %v", o.CCMinMode)
	case o.PhaseSaving < 0 || o.PhaseSaving > 2:
		return errors.Errorf("phase-saving must be one of {0,1,2}, got %v", o.PhaseSaving)
	case o.RestartFirst < 1:
		return errors.Errorf("rfirst must be >= 1, got %v", o.RestartFirst)
	case o.RestartInc <= 1:
		return errors.Errorf("rinc must be > 1, got %v", o.RestartInc)
	case o.GCFrac <= 0:
		return errors.Errorf("gc-frac must be > 0, got %v", o.GCFrac)
	case o.MinLearnts < 0:
		return errors.Errorf("min-learnts must be >= 0, got %v", o.MinLearnts)
	}
	return nil
}
