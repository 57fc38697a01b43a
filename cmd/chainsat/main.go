// Command chainsat is the solver's command-line driver: read a DIMACS CNF
// file (and optionally a symmetry-generator file), solve, and report a
// model or UNSAT. Rewritten from EricR-saturday's cmd/saturday/main.go against
// cobra/pflag so every tunable is a typed, validated flag instead of
// EricR-saturday's three stdlib-flag options.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ericr/chainsat/config"
	"github.com/ericr/chainsat/encoding"
	"github.com/ericr/chainsat/solver"
	"github.com/ericr/chainsat/symmetry"
	"github.com/ericr/chainsat/tribool"
)

const (
	exitSAT   = 10
	exitUNSAT = 20
	exitUndef = 0
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := config.Default()
	var verbose bool

	cmd := &cobra.Command{
		Use:   "chainsat [flags] input.cnf",
		Short: "chainsat: a CDCL SAT solver with dynamic symmetry breaking",
		Long: "chainsat: a CDCL SAT solver with dynamic symmetry breaking.\n\n" +
			"Exit status is 10 when the formula is satisfiable, 20 when it is\n" +
			"unsatisfiable, and 0 when the search stops without an answer.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				opts.Logger.SetLevel(logrus.DebugLevel)
			}
			return run(opts, args[0])
		},
	}

	registerFlags(cmd, opts, &verbose)
	return cmd
}

func registerFlags(cmd *cobra.Command, opts *config.Options, verbose *bool) {
	f := cmd.Flags()

	f.Float64Var(&opts.VarDecay, "var-decay", opts.VarDecay, "VSIDS decay factor, (0,1)")
	f.Float64Var(&opts.ClaDecay, "cla-decay", opts.ClaDecay, "clause-activity decay, (0,1)")
	f.Float64Var(&opts.RandomVarFreq, "rnd-freq", opts.RandomVarFreq, "random-branch probability, [0,1]")
	f.Int64Var(&opts.RandomSeed, "rnd-seed", opts.RandomSeed, "RNG seed, >0")
	f.IntVar(&opts.CCMinMode, "ccmin-mode", opts.CCMinMode, "conflict-clause minimization, {0,1,2}")
	f.IntVar(&opts.PhaseSaving, "phase-saving", opts.PhaseSaving, "0=off, 1=limited, 2=always")
	f.BoolVar(&opts.RandomInit, "rnd-init", opts.RandomInit, "randomize initial activities")
	f.BoolVar(&opts.RandomPolar, "rnd-pol", opts.RandomPolar, "always pick a random polarity")
	f.BoolVar(&opts.Luby, "luby", opts.Luby, "Luby vs geometric restart schedule")
	f.IntVar(&opts.RestartFirst, "rfirst", opts.RestartFirst, "base restart interval, >=1")
	f.Float64Var(&opts.RestartInc, "rinc", opts.RestartInc, "restart multiplier, >1")
	f.Float64Var(&opts.GCFrac, "gc-frac", opts.GCFrac, "arena waste fraction that triggers compaction")
	f.IntVar(&opts.MinLearnts, "min-learnts", opts.MinLearnts, "learnt clause-DB floor, >=0")
	f.StringVar(&opts.SymmetryFile, "symm", opts.SymmetryFile, "symmetry generator file")
	f.BoolVar(&opts.SymmShatter, "symm-shatter", opts.SymmShatter, "emit Shatter SBPs")
	f.BoolVar(&opts.SymmChain, "symm-chain", opts.SymmChain, "emit Chaining SBPs")
	f.BoolVar(&opts.SymmEqAux, "symm-eq-aux", opts.SymmEqAux, "encode equalities via auxiliary variables")
	f.BoolVar(&opts.SymmDynamic, "symm-dynamic", opts.SymmDynamic, "emit SBPs lazily")
	f.BoolVar(&opts.SymmAuxDecide, "symm-aux-decide", opts.SymmAuxDecide, "allow SBP auxiliary vars as decision variables")
	f.Int64Var(&opts.ConflictBudget, "conflict-budget", opts.ConflictBudget, "<=0 means unbounded")
	f.Int64Var(&opts.PropagationBudget, "propagation-budget", opts.PropagationBudget, "<=0 means unbounded")
	f.BoolVarP(verbose, "verbose", "v", false, "log at debug level")
}

func run(opts *config.Options, path string) error {
	if err := opts.Validate(); err != nil {
		return errors.Wrap(err, "invalid options")
	}

	prob, err := readCNF(path)
	if err != nil {
		return err
	}

	s := solver.New(opts)
	for i := 0; i < prob.NVars; i++ {
		s.NewVar(tribool.Undef, true)
	}
	for _, clause := range prob.Clauses {
		s.AddClauseInts(clause)
	}

	if opts.SymmetryFile != "" {
		if err := attachSymmetry(s, opts); err != nil {
			return err
		}
	}

	opts.Logger.Infof("starting solve: %d vars, %d clauses", s.NVars(), s.NConstraints())
	start := time.Now()

	status, err := s.Solve()
	if err != nil {
		opts.Logger.WithError(err).Warn("search stopped early")
	}
	elapsed := time.Since(start)

	printStats(opts.Logger, s, elapsed)

	switch status {
	case solver.StatusSAT:
		for _, p := range s.Model() {
			fmt.Fprintf(os.Stdout, "%d ", p)
		}
		fmt.Fprintln(os.Stdout, "0")
		os.Exit(exitSAT)
	case solver.StatusUNSAT:
		fmt.Fprintln(os.Stdout, "p UNSAT")
		os.Exit(exitUNSAT)
	default:
		fmt.Fprintln(os.Stdout, "p INDETERMINATE")
		os.Exit(exitUndef)
	}
	return nil
}

func readCNF(path string) (*encoding.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	prob, err := encoding.ParseDimacs(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return prob, nil
}

func attachSymmetry(s *solver.Solver, opts *config.Options) error {
	f, err := os.Open(opts.SymmetryFile)
	if err != nil {
		return errors.Wrapf(err, "opening symmetry file %s", opts.SymmetryFile)
	}
	defer f.Close()

	generators, err := encoding.ParseSymmetryFile(f)
	if err != nil {
		return errors.Wrapf(err, "parsing symmetry file %s", opts.SymmetryFile)
	}

	perms := make([]*symmetry.Permutation, len(generators))
	for i, cycles := range generators {
		perms[i] = symmetry.NewPermutation(cycles)
	}

	engine := symmetry.NewEngine(perms, opts)
	s.AttachSymmetry(engine)
	engine.Setup(s)
	return nil
}

func printStats(log *logrus.Logger, s *solver.Solver, elapsed time.Duration) {
	log.WithFields(logrus.Fields{
		"seconds":      elapsed.Seconds(),
		"variables":    s.NVars(),
		"constraints":  s.NConstraints(),
		"conflicts":    s.NConflicts(),
		"propagations": s.NPropagations(),
		"restarts":     s.NRestarts(),
		"decisions":    s.NDecisions(),
	}).Info("solve finished")
}
