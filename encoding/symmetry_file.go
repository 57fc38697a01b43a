package encoding

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ericr/chainsat/lit"
)

// ParseSymmetryFile reads a symmetry-generator file: the
// first integer is the generator count K; each generator is a sequence of
// non-zero integer pairs (l1 l2) separated by zeros delimiting cycles, and
// a generator ends when reading a zero-length ("zero") cycle. Each pair
// (l1, l2) with |l1| <= |l2| and l1 > 0 registers l1 -> l2.
//
// The result is one [][]lit.Lit per generator: a list of cycles in reading
// order, one two-literal cycle [l1, l2] per pair. Pairs that share a
// zero-delimited group are not joined into a longer cycle.
func ParseSymmetryFile(in io.Reader) ([][][]lit.Lit, error) {
	toks, err := tokenize(in)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, errors.New("empty symmetry file")
	}

	k := toks[0]
	toks = toks[1:]
	generators := make([][][]lit.Lit, 0, k)

	for g := 0; g < k; g++ {
		var cycles [][]lit.Lit
		for {
			if len(toks) == 0 {
				return nil, errors.Errorf("generator %d: truncated before its terminating zero-cycle", g)
			}
			l1 := toks[0]
			toks = toks[1:]
			if l1 == 0 {
				break // zero-cycle: this generator is done.
			}
			if len(toks) == 0 {
				return nil, errors.Errorf("generator %d: pair missing second literal", g)
			}
			l2 := toks[0]
			toks = toks[1:]

			cycle, err := pairToCycle(l1, l2)
			if err != nil {
				return nil, errors.Wrapf(err, "generator %d", g)
			}
			cycles = append(cycles, cycle)

			// A zero immediately after a pair delimits the cycle boundary,
			//; consume it if present.
			if len(toks) > 0 && toks[0] == 0 {
				toks = toks[1:]
			}
		}
		generators = append(generators, cycles)
	}
	return generators, nil
}

func pairToCycle(l1, l2 int) ([]lit.Lit, error) {
	if l1 <= 0 {
		return nil, errors.Errorf("pair (%d %d): l1 must be positive", l1, l2)
	}
	a1, a2 := l1, l2
	if a2 < 0 {
		a2 = -a2
	}
	if a1 > a2 {
		return nil, errors.Errorf("pair (%d %d): want |l1| <= |l2|", l1, l2)
	}
	return []lit.Lit{lit.NewFromInt(l1), lit.NewFromInt(l2)}, nil
}

func tokenize(in io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	var toks []int
	for scanner.Scan() {
		f := scanner.Bytes()
		if len(f) == 0 || f[0] == 'c' {
			continue
		}
		if bytes.HasPrefix(f, []byte("c")) {
			continue
		}
		n, err := strconv.Atoi(string(f))
		if err != nil {
			return nil, errors.Wrapf(err, "malformed token %q", f)
		}
		toks = append(toks, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading symmetry file")
	}
	return toks, nil
}
