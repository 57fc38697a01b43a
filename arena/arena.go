// Package arena implements the clause arena: a region allocator over a flat
// word array. Clauses are addressed by CRef, an integer offset rather than a
// pointer. Compaction moves clauses into a fresh Arena via an explicit
// relocate-with-forwarding scheme; holders must switch to the forwarded
// CRef that Relocate returns.
package arena

import (
	"math"

	"github.com/ericr/chainsat/lit"
)

const literalsOffset = 3

// wordBytes is the nominal size, in bytes, that Size/Wasted account a word
// as. The arena stores int32 words; this only affects the units the
// garbage_frac policy is expressed in.
const wordBytes = 4

// Arena is a flat, growable store of clauses.
type Arena struct {
	buf    []int32
	wasted int // wasted words
}

// New returns an empty Arena with capacity for roughly capWordsHint words.
func New(capWordsHint int) *Arena {
	if capWordsHint < 64 {
		capWordsHint = 64
	}
	return &Arena{buf: make([]int32, 0, capWordsHint)}
}

// Alloc copies lits into the arena and returns a stable reference to the new
// clause. Learnt clauses start with zero activity; original clauses get an
// abstraction bitset over their variables (kept for future subsumption use,
// not otherwise consulted here).
func (a *Arena) Alloc(lits []lit.Lit, learnt, isSBP bool) CRef {
	cr := CRef(len(a.buf))
	h := makeHeader(len(lits), learnt, isSBP)

	a.buf = append(a.buf, int32(h), 0, 0)
	for _, l := range lits {
		a.buf = append(a.buf, int32(l))
	}
	if !learnt {
		a.setAbstraction(cr, abstractionOf(lits))
	}
	return cr
}

func abstractionOf(lits []lit.Lit) uint32 {
	var abs uint32
	for _, l := range lits {
		abs |= 1 << uint(int(l.VarOf())&31)
	}
	return abs
}

func (a *Arena) hd(cr CRef) header    { return header(a.buf[cr]) }
func (a *Arena) setHd(cr CRef, h header) { a.buf[cr] = int32(h) }

// Free marks cr deleted and accounts its words as wasted. The words
// themselves are only reclaimed by GC (via Relocate into a fresh Arena).
func (a *Arena) Free(cr CRef) {
	h := a.hd(cr)
	if h.deleted() {
		return
	}
	a.setHd(cr, h.withDeleted())
	a.wasted += literalsOffset + h.size()
}

// Relocate copies cr's clause into dst and returns its new reference.
// Relocate is idempotent: calling it again on an already-relocated cr
// returns the same forwarded reference.
func (a *Arena) Relocate(cr CRef, dst *Arena) CRef {
	h := a.hd(cr)
	if h.relocated() {
		return CRef(uint32(a.buf[cr+1]))
	}
	lits := make([]int32, h.size())
	copy(lits, a.buf[cr+literalsOffset:cr+literalsOffset+CRef(h.size())])

	newRef := CRef(len(dst.buf))
	dst.buf = append(dst.buf, int32(h), a.buf[cr+1], a.buf[cr+2])
	dst.buf = append(dst.buf, lits...)

	a.setHd(cr, h.withRelocated())
	a.buf[cr+1] = int32(uint32(newRef))
	return newRef
}

// Wasted returns the number of bytes marked as garbage since the last GC.
func (a *Arena) Wasted() int { return a.wasted * wordBytes }

// Size returns the arena's total footprint in bytes.
func (a *Arena) Size() int { return len(a.buf) * wordBytes }

// Clause returns an accessor for cr's clause. The accessor is a thin,
// zero-alloc view over the arena's backing storage.
func (a *Arena) Clause(cr CRef) Clause { return Clause{a: a, ref: cr} }

// Clause is a view over one clause stored in an Arena.
type Clause struct {
	a   *Arena
	ref CRef
}

// Ref returns the clause's stable handle.
func (c Clause) Ref() CRef { return c.ref }

// Size returns the number of literals in the clause.
func (c Clause) Size() int { return c.a.hd(c.ref).size() }

// Learnt reports whether the clause was learnt via conflict analysis.
func (c Clause) Learnt() bool { return c.a.hd(c.ref).learnt() }

// IsSBP reports whether the clause is a symmetry-breaking predicate clause,
// exempting it from the decision_level == 0 add-clause assertion.
func (c Clause) IsSBP() bool { return c.a.hd(c.ref).isSBP() }

// Deleted reports whether the clause has been freed.
func (c Clause) Deleted() bool { return c.a.hd(c.ref).deleted() }

// Propagated reports whether this clause has ever produced a propagation.
func (c Clause) Propagated() bool { return c.a.hd(c.ref).propagated() }

// SetPropagated flags the clause as having produced a propagation.
func (c Clause) SetPropagated() {
	c.a.setHd(c.ref, c.a.hd(c.ref).withPropagated())
}

// ResAnal reports whether the clause has participated in conflict
// resolution (provenance/statistics bit; not otherwise consulted).
func (c Clause) ResAnal() bool { return c.a.hd(c.ref).resAnal() }

// SetResAnal flags the clause as having participated in resolution.
func (c Clause) SetResAnal() {
	c.a.setHd(c.ref, c.a.hd(c.ref).withResAnal())
}

// Lit returns the i-th literal.
func (c Clause) Lit(i int) lit.Lit {
	return lit.Lit(c.a.buf[c.ref+literalsOffset+CRef(i)])
}

// SetLit overwrites the i-th literal.
func (c Clause) SetLit(i int, l lit.Lit) {
	c.a.buf[c.ref+literalsOffset+CRef(i)] = int32(l)
}

// Swap exchanges the i-th and j-th literals.
func (c Clause) Swap(i, j int) {
	base := c.ref + literalsOffset
	c.a.buf[base+CRef(i)], c.a.buf[base+CRef(j)] = c.a.buf[base+CRef(j)], c.a.buf[base+CRef(i)]
}

// Lits returns a freshly-built copy of the clause's literals.
func (c Clause) Lits() []lit.Lit {
	n := c.Size()
	out := make([]lit.Lit, n)
	for i := 0; i < n; i++ {
		out[i] = c.Lit(i)
	}
	return out
}

// Shrink reduces the clause's stored size to n (n <= current size), used by
// simplify/minimization to drop trailing literals in place without
// reallocating.
func (c Clause) Shrink(n int) {
	c.a.setHd(c.ref, c.a.hd(c.ref).withSize(n))
}

// Activity returns a learnt clause's activity.
func (c Clause) Activity() float64 {
	lo := uint32(c.a.buf[c.ref+1])
	hi := uint32(c.a.buf[c.ref+2])
	return math.Float64frombits(uint64(hi)<<32 | uint64(lo))
}

// SetActivity overwrites a learnt clause's activity.
func (c Clause) SetActivity(v float64) {
	bits := math.Float64bits(v)
	c.a.buf[c.ref+1] = int32(uint32(bits))
	c.a.buf[c.ref+2] = int32(uint32(bits >> 32))
}

// Abstraction returns an original clause's variable-abstraction bitset.
func (c Clause) Abstraction() uint32 { return uint32(c.a.buf[c.ref+1]) }

func (a *Arena) setAbstraction(cr CRef, abs uint32) {
	a.buf[cr+1] = int32(abs)
}
