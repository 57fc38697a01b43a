// Package encoding implements the byte-level DIMACS CNF reader/writer and
// the symmetry-generator-file reader. These are deliberately small,
// separately-testable leaf packages: no solver logic lives here, since a
// CNF reader is a collaborator, not part of the solver core.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Problem is a parsed DIMACS CNF instance.
type Problem struct {
	NVars    int
	NClauses int
	Clauses  [][]int
}

// ParseDimacs reads a DIMACS CNF file: a `p cnf N M` header
// followed by M zero-terminated literal lists, with `c`-prefixed comment
// lines skipped. Unlike EricR-saturday's ParseDimacs, the header is validated
// (missing/malformed headers and a clause count mismatch are errors) rather
// than silently ignored.
func ParseDimacs(in io.Reader) (*Problem, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	prob := &Problem{}
	sawHeader := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := bytes.Fields(scanner.Bytes())
		if len(fields) == 0 {
			continue
		}
		switch string(fields[0]) {
		case "c":
			continue
		case "p":
			if err := parseHeader(fields, prob); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			sawHeader = true
			continue
		}

		if !sawHeader {
			return nil, errors.Errorf("line %d: clause before p-line", lineNo)
		}

		clause, err := parseClauseLine(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		prob.Clauses = append(prob.Clauses, clause)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading dimacs input")
	}
	if !sawHeader {
		return nil, errors.New("missing p cnf header")
	}
	if len(prob.Clauses) != prob.NClauses {
		return nil, errors.Errorf("header declares %d clauses, found %d", prob.NClauses, len(prob.Clauses))
	}
	return prob, nil
}

func parseHeader(fields [][]byte, prob *Problem) error {
	if len(fields) != 4 || string(fields[1]) != "cnf" {
		return errors.New("malformed p-line, want \"p cnf N M\"")
	}
	n, err := strconv.Atoi(string(fields[2]))
	if err != nil || n < 0 {
		return errors.New("malformed variable count")
	}
	m, err := strconv.Atoi(string(fields[3]))
	if err != nil || m < 0 {
		return errors.New("malformed clause count")
	}
	prob.NVars = n
	prob.NClauses = m
	return nil
}

func parseClauseLine(fields [][]byte) ([]int, error) {
	clause := make([]int, 0, len(fields))
	for _, f := range fields {
		p, err := strconv.Atoi(string(f))
		if err != nil {
			return nil, errors.Wrapf(err, "malformed literal %q", f)
		}
		if p == 0 {
			break
		}
		clause = append(clause, p)
	}
	return clause, nil
}

// ToDimacs writes the original clause set filtered to the clauses model
// does not already satisfy, plus any assumption unit clauses, as DIMACS
// CNF: variables are renumbered densely from 1 in the order first
// encountered.
func ToDimacs(w io.Writer, clauses [][]int, model []int, assumptions []int) error {
	assign := make(map[int]bool, len(model))
	for _, p := range model {
		v := p
		if v < 0 {
			v = -v
		}
		assign[v] = p > 0
	}
	satisfied := func(c []int) bool {
		for _, p := range c {
			v := p
			if v < 0 {
				v = -v
			}
			if want, ok := assign[v]; ok && want == (p > 0) {
				return true
			}
		}
		return false
	}

	renumber := map[int]int{}
	next := 1
	remap := func(p int) int {
		v := p
		if v < 0 {
			v = -v
		}
		nv, ok := renumber[v]
		if !ok {
			nv = next
			renumber[v] = nv
			next++
		}
		if p < 0 {
			return -nv
		}
		return nv
	}

	var lines []string
	for _, c := range clauses {
		if satisfied(c) {
			continue
		}
		fields := make([]string, 0, len(c)+1)
		for _, p := range c {
			fields = append(fields, strconv.Itoa(remap(p)))
		}
		fields = append(fields, "0")
		lines = append(lines, strings.Join(fields, " "))
	}
	for _, a := range assumptions {
		lines = append(lines, fmt.Sprintf("%d 0", remap(a)))
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", next-1, len(lines)); err != nil {
		return errors.Wrap(err, "writing dimacs header")
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(bw, l); err != nil {
			return errors.Wrap(err, "writing dimacs clause")
		}
	}
	return errors.Wrap(bw.Flush(), "flushing dimacs output")
}
