// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matthewsot/bitwuzla/z"
)

// ReadCnf reads a DIMACS CNF file leniently: the problem line is
// optional, declared counts are not checked, and a missing final
// clause terminator is supplied.
func ReadCnf(r io.Reader, vis Vis) error {
	return ReadCnfStrict(r, vis, false)
}

// ReadCnfStrict reads a DIMACS CNF file.  In strict mode the problem
// line is required, the declared variable and clause counts must
// match the body, and every clause must be 0-terminated.
func ReadCnfStrict(r io.Reader, vis Vis, strict bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	hasHdr := false
	declVars, declClauses := 0, 0
	maxVar, clauses := 0, 0
	open := false

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == 'c' {
			continue
		}
		if line[0] == 'p' {
			if hasHdr || open || clauses > 0 {
				return fmt.Errorf("dimacs: misplaced problem line")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return fmt.Errorf("dimacs: bad problem line %q", line)
			}
			var e error
			if declVars, e = strconv.Atoi(fields[2]); e != nil {
				return fmt.Errorf("dimacs: bad variable count %q", fields[2])
			}
			if declClauses, e = strconv.Atoi(fields[3]); e != nil {
				return fmt.Errorf("dimacs: bad clause count %q", fields[3])
			}
			hasHdr = true
			vis.Init(declVars, declClauses)
			continue
		}
		for _, tok := range strings.Fields(line) {
			d, e := strconv.Atoi(tok)
			if e != nil {
				return fmt.Errorf("dimacs: bad token %q", tok)
			}
			if d == 0 {
				vis.Add(z.LitNull)
				open = false
				clauses++
				continue
			}
			v := d
			if v < 0 {
				v = -v
			}
			if v > maxVar {
				maxVar = v
			}
			open = true
			vis.Add(z.Dimacs2Lit(d))
		}
	}
	if e := sc.Err(); e != nil {
		return e
	}
	if open {
		if strict {
			return fmt.Errorf("dimacs: unterminated clause")
		}
		vis.Add(z.LitNull)
		clauses++
	}
	if strict {
		if !hasHdr {
			return fmt.Errorf("dimacs: missing problem line")
		}
		if maxVar > declVars {
			return fmt.Errorf("dimacs: variable %d exceeds declared %d", maxVar, declVars)
		}
		if clauses != declClauses {
			return fmt.Errorf("dimacs: %d clauses, declared %d", clauses, declClauses)
		}
	}
	vis.Eof()
	return nil
}
