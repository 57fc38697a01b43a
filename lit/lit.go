// Package lit implements the literal and variable encoding shared by every
// other package: a variable v in [0, N) and its two literals, packed as
// 2v|sign so that a literal and its negation sort next to each other.
package lit

import "fmt"

// Var identifies a boolean variable by its 0-based index.
type Var int32

// VarUndef marks a variable slot with no owner (e.g. an unset reason
// variable).
const VarUndef = Var(-1)

// Lit is a literal: a variable together with a sign, packed as the least
// significant bit. Not is a single XOR.
//
// Undef denotes "no literal" (used for the not-yet-chosen literal that
// starts conflict analysis and the sentinel first entry of a fresh learnt
// clause).
type Lit int32

// Undef is the literal equivalent of a nil pointer.
const Undef = Lit(-1)

// New returns a new literal given a 0-indexed variable, v, and whether the
// literal is negative.
func New(v int, neg bool) Lit {
	if neg {
		return Lit(v + v + 1)
	}
	return Lit(v + v)
}

// FromVar returns the literal for v (0-based) with the given sign.
func FromVar(v Var, neg bool) Lit {
	return New(int(v), neg)
}

// NewFromInt returns the literal corresponding to a signed DIMACS integer.
// NewFromInt(0) is undefined; DIMACS clauses never carry a literal 0.
func NewFromInt(i int) Lit {
	if i < 0 {
		return New(-i-1, true)
	}
	return New(i-1, false)
}

// IsUndef reports whether l is the Undef sentinel.
func (l Lit) IsUndef() bool {
	return l == Undef
}

// Not negates a literal.
func (l Lit) Not() Lit {
	return l ^ 1
}

// Sign returns true if the literal is negative.
func (l Lit) Sign() bool {
	return l&1 == 1
}

// Index returns the literal's 0-based variable index.
func (l Lit) Index() int {
	return int(l >> 1)
}

// VarOf returns the literal's 0-based variable.
func (l Lit) VarOf() Var {
	return Var(l >> 1)
}

// Var returns the literal's 1-based (DIMACS-style) variable number.
func (l Lit) Var() int {
	return int(l>>1) + 1
}

// Int returns the literal as a signed DIMACS integer.
func (l Lit) Int() int {
	if l.Sign() {
		return -l.Var()
	}
	return l.Var()
}

// String implements the Stringer interface.
func (l Lit) String() string {
	if l == Undef {
		return "undef"
	}
	if l.Sign() {
		return fmt.Sprintf("~%d", l.Var())
	}
	return fmt.Sprintf("%d", l.Var())
}
