// Package symmetry implements dynamic symmetry breaking via
// chained-implication SBPs, following the same idiom as the rest of the
// module: small structs, integer/handle-based state, terse comments.
package symmetry

import (
	"sort"

	"github.com/samber/lo"

	"github.com/ericr/chainsat/lit"
)

// Permutation is a symmetry generator over literals: a set of disjoint
// cycles, each cycle listing the literals it cyclically maps in order
// (l0 -> l1 -> ... -> lk-1 -> l0).
type Permutation struct {
	Cycles [][]lit.Lit

	// Support is the sorted, deduplicated set of variables touched by any
	// cycle. Chaining and Shatter SBPs are built over Support in order.
	Support []lit.Var

	image map[lit.Var]lit.Lit
}

// NewPermutation canonicalizes cycles and builds the permutation's support
// and image map three-step canonicalization: rotate
// each cycle so its smallest literal leads, negate the whole cycle if that
// literal is negative, then sort and dedupe cycles by leading literal.
func NewPermutation(cycles [][]lit.Lit) *Permutation {
	canon := Canonicalize(cycles)

	p := &Permutation{Cycles: canon, image: map[lit.Var]lit.Lit{}}
	seen := map[lit.Var]bool{}

	for _, cycle := range canon {
		n := len(cycle)
		for i, a := range cycle {
			b := cycle[(i+1)%n]
			img := b
			if a.Sign() {
				img = b.Not()
			}
			p.image[a.VarOf()] = img
			if !seen[a.VarOf()] {
				seen[a.VarOf()] = true
				p.Support = append(p.Support, a.VarOf())
			}
		}
	}
	sort.Slice(p.Support, func(i, j int) bool { return p.Support[i] < p.Support[j] })
	return p
}

// Canonicalize reduces a raw cycle list to its canonical form.
func Canonicalize(cycles [][]lit.Lit) [][]lit.Lit {
	rotated := lo.Map(cycles, func(cycle []lit.Lit, _ int) []lit.Lit {
		return canonicalizeCycle(cycle)
	})
	sort.Slice(rotated, func(i, j int) bool {
		return leadingLit(rotated[i]) < leadingLit(rotated[j])
	})
	deduped := lo.UniqBy(rotated, func(cycle []lit.Lit) lit.Lit {
		return leadingLit(cycle)
	})
	return deduped
}

func leadingLit(cycle []lit.Lit) lit.Lit {
	if len(cycle) == 0 {
		return lit.Undef
	}
	return cycle[0]
}

// canonicalizeCycle rotates cycle so its smallest literal (by raw packed
// value) leads, then negates the whole cycle if that literal is negative.
func canonicalizeCycle(cycle []lit.Lit) []lit.Lit {
	if len(cycle) == 0 {
		return cycle
	}
	minIdx := 0
	for i, l := range cycle {
		if l < cycle[minIdx] {
			minIdx = i
		}
	}
	out := make([]lit.Lit, len(cycle))
	for i := range cycle {
		out[i] = cycle[(minIdx+i)%len(cycle)]
	}
	if out[0].Sign() {
		for i, l := range out {
			out[i] = l.Not()
		}
	}
	return out
}

// Pi returns π(l): the image of literal l under the permutation, or l
// itself if its variable is outside the permutation's support.
func (p *Permutation) Pi(l lit.Lit) lit.Lit {
	img, ok := p.image[l.VarOf()]
	if !ok {
		return l
	}
	if l.Sign() {
		return img.Not()
	}
	return img
}
