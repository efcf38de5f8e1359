// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matthewsot/bitwuzla/api"
	"github.com/matthewsot/bitwuzla/node"
)

// runBtor reads the BTOR bit-vector format: one node per line,
//
//	<id> <op> <width> <args...>
//
// with negative argument ids denoting bit-wise negation, and asserts
// every root.
func runBtor(r io.Reader, opts api.Options) (*api.Bitwuzla, error) {
	b, err := api.New(opts)
	if err != nil {
		return nil, err
	}
	nodes := map[int64]api.Term{}

	get := func(id int64, width uint32) (api.Term, error) {
		neg := id < 0
		if neg {
			id = -id
		}
		t, ok := nodes[id]
		if !ok {
			return api.Term{}, fmt.Errorf("btor: undefined node %d", id)
		}
		if neg {
			k := node.KBVNot
			if t.Sort().IsBool() {
				k = node.KNot
			}
			return b.MkTerm(k, []api.Term{t})
		}
		_ = width
		return t, nil
	}

	binOps := map[string]node.Kind{
		"add": node.KBVAdd, "sub": node.KBVSub, "mul": node.KBVMul,
		"udiv": node.KBVUdiv, "urem": node.KBVUrem,
		"sdiv": node.KBVSdiv, "srem": node.KBVSrem, "smod": node.KBVSmod,
		"and": node.KBVAnd, "or": node.KBVOr, "xor": node.KBVXor,
		"nand": node.KBVNand, "nor": node.KBVNor, "xnor": node.KBVXnor,
		"sll": node.KBVShl, "srl": node.KBVShr, "sra": node.KBVAshr,
		"rol": node.KBVRol, "ror": node.KBVRor, "concat": node.KBVConcat,
		"ult": node.KBVUlt, "ulte": node.KBVUle, "ugt": node.KBVUgt, "ugte": node.KBVUge,
		"slt": node.KBVSlt, "slte": node.KBVSle, "sgt": node.KBVSgt, "sgte": node.KBVSge,
		"eq": node.KEqual, "ne": node.KDistinct,
		"uaddo": node.KBVUaddo, "saddo": node.KBVSaddo,
		"usubo": node.KBVUsubo, "ssubo": node.KBVSsubo,
		"umulo": node.KBVUmulo, "smulo": node.KBVSmulo, "sdivo": node.KBVSdivo,
	}

	var roots []api.Term
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == ';' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 3 {
			return b, fmt.Errorf("btor: short line %q", line)
		}
		id, err := strconv.ParseInt(f[0], 10, 64)
		if err != nil {
			return b, fmt.Errorf("btor: bad id %q", f[0])
		}
		op := f[1]
		w64, err := strconv.ParseUint(f[2], 10, 32)
		if err != nil {
			return b, fmt.Errorf("btor: bad width %q", f[2])
		}
		w := uint32(w64)

		argIDs := make([]int64, 0, len(f)-3)
		rest := f[3:]
		for _, a := range rest {
			if n, e := strconv.ParseInt(a, 10, 64); e == nil {
				argIDs = append(argIDs, n)
			}
		}
		args := func(n int) ([]api.Term, error) {
			out := make([]api.Term, n)
			for i := 0; i < n; i++ {
				t, err := get(argIDs[i], w)
				if err != nil {
					return nil, err
				}
				out[i] = t
			}
			return out, nil
		}

		var t api.Term
		switch op {
		case "var":
			name := ""
			if len(rest) > 0 {
				if _, e := strconv.ParseInt(rest[0], 10, 64); e != nil {
					name = rest[0]
				}
			}
			srt, err := b.MkBVSort(w)
			if err != nil {
				return b, err
			}
			t, err = b.MkConst(srt, name)
			if err != nil {
				return b, err
			}
		case "const", "constd", "consth":
			base := 2
			if op == "constd" {
				base = 10
			}
			if op == "consth" {
				base = 16
			}
			srt, err := b.MkBVSort(w)
			if err != nil {
				return b, err
			}
			t, err = b.MkBVValue(srt, rest[0], base)
			if err != nil {
				return b, err
			}
		case "zero", "one", "ones":
			srt, err := b.MkBVSort(w)
			if err != nil {
				return b, err
			}
			switch op {
			case "zero":
				t, err = b.MkBVValueUint64(srt, 0)
			case "one":
				t, err = b.MkBVValueUint64(srt, 1)
			default:
				t, err = b.MkBVValueInt64(srt, -1)
			}
			if err != nil {
				return b, err
			}
		case "not", "neg", "inc", "dec", "redand", "redor", "redxor":
			as, err := args(1)
			if err != nil {
				return b, err
			}
			kinds := map[string]node.Kind{
				"not": node.KBVNot, "neg": node.KBVNeg,
				"inc": node.KBVInc, "dec": node.KBVDec,
				"redand": node.KBVRedAnd, "redor": node.KBVRedOr, "redxor": node.KBVRedXor,
			}
			t, err = b.MkTerm(kinds[op], as)
			if err != nil {
				return b, err
			}
		case "slice":
			as, err := args(1)
			if err != nil {
				return b, err
			}
			hi := uint32(argIDs[1])
			lo := uint32(argIDs[2])
			t, err = b.MkTerm(node.KBVExtract, as, hi, lo)
			if err != nil {
				return b, err
			}
		case "sext", "uext":
			as, err := args(1)
			if err != nil {
				return b, err
			}
			k := node.KBVZeroExtend
			if op == "sext" {
				k = node.KBVSignExtend
			}
			t, err = b.MkTerm(k, as, uint32(argIDs[1]))
			if err != nil {
				return b, err
			}
		case "cond":
			as, err := args(3)
			if err != nil {
				return b, err
			}
			cond := as[0]
			if cond.Sort().IsBV() {
				one, e := b.MkBVValueUint64(cond.Sort(), 1)
				if e != nil {
					return b, e
				}
				cond, e = b.MkTerm(node.KEqual, []api.Term{cond, one})
				if e != nil {
					return b, e
				}
			}
			t, err = b.MkTerm(node.KIte, []api.Term{cond, as[1], as[2]})
			if err != nil {
				return b, err
			}
		case "root":
			as, err := args(1)
			if err != nil {
				return b, err
			}
			root := as[0]
			if root.Sort().IsBV() {
				one, e := b.MkBVValueUint64(root.Sort(), 1)
				if e != nil {
					return b, e
				}
				root, e = b.MkTerm(node.KEqual, []api.Term{root, one})
				if e != nil {
					return b, e
				}
			}
			roots = append(roots, root)
			continue
		default:
			k, ok := binOps[op]
			if !ok {
				return b, fmt.Errorf("btor: unsupported operator %q", op)
			}
			as, err := args(2)
			if err != nil {
				return b, err
			}
			t, err = b.MkTerm(k, as)
			if err != nil {
				return b, err
			}
		}
		nodes[id] = t
	}
	if err := sc.Err(); err != nil {
		return b, err
	}

	for _, root := range roots {
		if err := b.AssertFormula(root); err != nil {
			return b, err
		}
	}
	res, err := b.CheckSat()
	if err != nil {
		return b, err
	}
	fmt.Println(res)
	return b, nil
}
