// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package node

// Substitute rewrites t bottom-up, replacing every occurrence of a
// map key by its image.  Binders are respected: a binder variable is
// replaced only when the map targets that exact variable; otherwise,
// if a free occurrence of a map key would be captured by a binder
// over the same variable, the binder's variable is α-renamed first.
func (m *Manager) Substitute(t Term, subst map[Term]Term) (Term, error) {
	if len(subst) == 0 {
		return t, nil
	}
	cache := make(map[uint64]Term)
	return m.subst(t, subst, cache)
}

func (m *Manager) subst(t Term, sub map[Term]Term, cache map[uint64]Term) (Term, error) {
	if r, ok := cache[t.Id()]; ok {
		return r, nil
	}
	if r, ok := sub[t]; ok {
		cache[t.Id()] = r
		return r, nil
	}
	if t.NumChildren() == 0 {
		cache[t.Id()] = t
		return t, nil
	}

	if t.Kind().IsBinder() {
		v := t.Child(0)
		body := t.Child(1)
		// if the binder variable is itself a substitution *image*, a
		// free occurrence of some key could be captured; rename the
		// binder variable to a fresh one in that scope
		capture := false
		for _, img := range sub {
			if contains(img, v) {
				capture = true
				break
			}
		}
		if capture {
			fresh, err := m.MkVar(v.Sort(), v.Symbol())
			if err != nil {
				return Term{}, err
			}
			body, err = m.Substitute(body, map[Term]Term{v: fresh})
			if err != nil {
				return Term{}, err
			}
			v = fresh
		}
		// the binder shadows its variable: drop any mapping for it
		inner := sub
		if _, shadowed := sub[v]; shadowed {
			inner = make(map[Term]Term, len(sub))
			for k, img := range sub {
				if k != v {
					inner[k] = img
				}
			}
		}
		newBody, err := m.subst(body, inner, make(map[uint64]Term))
		if err != nil {
			return Term{}, err
		}
		r, err := m.MkTerm(t.Kind(), []Term{v, newBody}, nil)
		if err != nil {
			return Term{}, err
		}
		cache[t.Id()] = r
		return r, nil
	}

	changed := false
	childs := make([]Term, t.NumChildren())
	for i, c := range t.Children() {
		nc, err := m.subst(c, sub, cache)
		if err != nil {
			return Term{}, err
		}
		childs[i] = nc
		if !nc.Eq(c) {
			changed = true
		}
	}
	if !changed {
		cache[t.Id()] = t
		return t, nil
	}
	var r Term
	var err error
	if t.Kind() == KConstArray {
		r, err = m.MkConstArray(t.Sort(), childs[0])
	} else {
		r, err = m.MkTerm(t.Kind(), childs, t.Indices())
	}
	if err != nil {
		return Term{}, err
	}
	cache[t.Id()] = r
	return r, nil
}

// contains reports whether needle occurs in t.
func contains(t, needle Term) bool {
	seen := make(map[uint64]bool)
	var walk func(Term) bool
	walk = func(u Term) bool {
		if u.Eq(needle) {
			return true
		}
		if seen[u.Id()] {
			return false
		}
		seen[u.Id()] = true
		for _, c := range u.Children() {
			if walk(c) {
				return true
			}
		}
		return false
	}
	return walk(t)
}

// FreeConstants collects the free first-order constants of t in a
// deterministic order.
func FreeConstants(t Term, dst []Term) []Term {
	seen := make(map[uint64]bool)
	var walk func(Term)
	walk = func(u Term) {
		if seen[u.Id()] {
			return
		}
		seen[u.Id()] = true
		if u.IsConst() {
			dst = append(dst, u)
			return
		}
		for _, c := range u.Children() {
			walk(c)
		}
	}
	walk(t)
	return dst
}

// HasFreeVariable reports whether t contains a VARIABLE not bound by
// an enclosing binder, which is a well-formedness error at the
// assertion boundary.
func HasFreeVariable(t Term) bool {
	var walk func(Term, map[uint64]bool) bool
	walk = func(u Term, bound map[uint64]bool) bool {
		if u.IsVar() {
			return !bound[u.Id()]
		}
		if u.Kind().IsBinder() {
			v := u.Child(0)
			inner := make(map[uint64]bool, len(bound)+1)
			for k := range bound {
				inner[k] = true
			}
			inner[v.Id()] = true
			return walk(u.Child(1), inner)
		}
		for _, c := range u.Children() {
			if walk(c, bound) {
				return true
			}
		}
		return false
	}
	return walk(t, map[uint64]bool{})
}
