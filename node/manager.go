// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package node

import (
	"sync"

	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/fp"
	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"
)

// Manager owns the interning tables for sorts and terms.  It is the
// only cross-session mutable state: all sessions in a process share
// one manager, and every access is serialised at manager granularity.
type Manager struct {
	mu sync.Mutex

	nextSortID uint64
	nextTermID uint64

	sorts map[uint64][]*sortData
	terms map[uint64][]*termData
}

var (
	defaultMgr  *Manager
	defaultOnce sync.Once
)

// Mgr returns the process-wide manager.
func Mgr() *Manager {
	defaultOnce.Do(func() {
		defaultMgr = NewManager()
	})
	return defaultMgr
}

// NewManager creates a fresh, empty manager, for tests that need an
// isolated id space.
func NewManager() *Manager {
	return &Manager{
		sorts: make(map[uint64][]*sortData),
		terms: make(map[uint64][]*termData),
	}
}

// sortHashKey is the hashed portion of a sort's identity; child sort
// ids complete it.
type sortHashKey struct {
	Kind    int
	BVWidth uint32
	FPE     uint32
	FPS     uint32
	Child   []uint64
	Symbol  string
}

func (m *Manager) internSort(d *sortData) Sort {
	key := sortHashKey{
		Kind:    int(d.kind),
		BVWidth: d.bvWidth,
		FPE:     d.fpFmt.E,
		FPS:     d.fpFmt.S,
		Symbol:  d.symbol,
	}
	if !d.index.IsNil() {
		key.Child = append(key.Child, d.index.Id(), d.elem.Id())
	}
	for _, s := range d.domain {
		key.Child = append(key.Child, s.Id())
	}
	if !d.codomain.IsNil() {
		key.Child = append(key.Child, d.codomain.Id())
	}
	h, err := hashstructure.Hash(key, nil)
	if err != nil {
		panic(errors.Wrap(err, "sort hash"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.sorts[h] {
		if sortEqual(e, d) {
			return Sort{d: e}
		}
	}
	m.nextSortID++
	d.id = m.nextSortID
	m.sorts[h] = append(m.sorts[h], d)
	return Sort{d: d}
}

func sortEqual(a, b *sortData) bool {
	if a.kind != b.kind || a.bvWidth != b.bvWidth || a.fpFmt != b.fpFmt ||
		a.symbol != b.symbol || len(a.domain) != len(b.domain) {
		return false
	}
	if a.index.d != b.index.d || a.elem.d != b.elem.d || a.codomain.d != b.codomain.d {
		return false
	}
	for i := range a.domain {
		if a.domain[i].d != b.domain[i].d {
			return false
		}
	}
	return true
}

// BoolSort returns the Bool sort.
func (m *Manager) BoolSort() Sort {
	return m.internSort(&sortData{kind: SortBool})
}

// BVSort returns the bit-vector sort of width w; w must be >= 1.
func (m *Manager) BVSort(w uint32) (Sort, error) {
	if w < 1 {
		return Sort{}, errors.Errorf("InvalidSize: bit-vector width %d < 1", w)
	}
	return m.internSort(&sortData{kind: SortBV, bvWidth: w}), nil
}

// FPSort returns the floating-point sort (e, s).
func (m *Manager) FPSort(e, s uint32) (Sort, error) {
	f, err := fp.NewFormat(e, s)
	if err != nil {
		return Sort{}, err
	}
	return m.internSort(&sortData{kind: SortFP, fpFmt: f}), nil
}

// RMSort returns the RoundingMode sort.
func (m *Manager) RMSort() Sort {
	return m.internSort(&sortData{kind: SortRM})
}

// ArraySort returns the array sort from index to elem.
func (m *Manager) ArraySort(index, elem Sort) (Sort, error) {
	if index.IsNil() || elem.IsNil() {
		return Sort{}, errors.New("InvalidKind: nil sort in array sort")
	}
	return m.internSort(&sortData{kind: SortArray, index: index, elem: elem}), nil
}

// FunSort returns the function sort with the given domain and
// codomain; the codomain must not itself be a function sort.
func (m *Manager) FunSort(domain []Sort, codomain Sort) (Sort, error) {
	if len(domain) < 1 {
		return Sort{}, errors.New("InvalidSize: function sort needs arity >= 1")
	}
	if codomain.IsFun() {
		return Sort{}, errors.New("InvalidKind: function codomain must be first order")
	}
	d := &sortData{kind: SortFun, codomain: codomain}
	d.domain = append(d.domain, domain...)
	return m.internSort(d), nil
}

// UninterpretedSort returns a fresh or shared uninterpreted sort.
// Two calls with the same non-empty symbol share a sort; an empty
// symbol always creates a fresh sort.
func (m *Manager) UninterpretedSort(symbol string) Sort {
	if symbol == "" {
		m.mu.Lock()
		m.nextSortID++
		d := &sortData{kind: SortUninterpreted, id: m.nextSortID}
		// anonymous sorts intern under their own id so they never collide
		m.sorts[d.id] = append(m.sorts[d.id], d)
		m.mu.Unlock()
		return Sort{d: d}
	}
	return m.internSort(&sortData{kind: SortUninterpreted, symbol: symbol})
}

// termHashKey is the hashed portion of a term's identity.
type termHashKey struct {
	Kind    int
	Childs  []uint64
	Indices []uint32
	Payload string
	// leaves are fresh per construction; Nonce distinguishes them
	Nonce uint64
}

func payloadKey(d *termData) string {
	switch {
	case d.bvVal != nil:
		return "b" + d.bvVal.String() + ":" + d.sort.String()
	case d.fpVal != nil:
		return "f" + d.fpVal.Bits().String() + ":" + d.sort.String()
	case d.hasRM:
		return "r" + d.rmVal.String()
	case d.hasBool:
		if d.boolVal {
			return "t"
		}
		return "f"
	}
	return ""
}

func (m *Manager) internTerm(d *termData, fresh bool) Term {
	key := termHashKey{
		Kind:    int(d.kind),
		Indices: d.indices,
		Payload: payloadKey(d),
	}
	for _, c := range d.childs {
		key.Childs = append(key.Childs, c.Id())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if fresh {
		// constants and variables are never shared structurally
		m.nextTermID++
		d.id = m.nextTermID
		key.Nonce = d.id
		h, err := hashstructure.Hash(key, nil)
		if err != nil {
			panic(errors.Wrap(err, "term hash"))
		}
		m.terms[h] = append(m.terms[h], d)
		m.retainChildren(d)
		return Term{d: d}
	}
	h, err := hashstructure.Hash(key, nil)
	if err != nil {
		panic(errors.Wrap(err, "term hash"))
	}
	for _, e := range m.terms[h] {
		if termEqual(e, d) {
			return Term{d: e}
		}
	}
	m.nextTermID++
	d.id = m.nextTermID
	m.terms[h] = append(m.terms[h], d)
	m.retainChildren(d)
	return Term{d: d}
}

func (m *Manager) retainChildren(d *termData) {
	for _, c := range d.childs {
		c.d.refs++
	}
}

func termEqual(a, b *termData) bool {
	if a.kind != b.kind || len(a.childs) != len(b.childs) ||
		len(a.indices) != len(b.indices) || a.sort.d != b.sort.d {
		return false
	}
	for i := range a.childs {
		if a.childs[i].d != b.childs[i].d {
			return false
		}
	}
	for i := range a.indices {
		if a.indices[i] != b.indices[i] {
			return false
		}
	}
	if (a.bvVal == nil) != (b.bvVal == nil) || a.hasRM != b.hasRM ||
		a.hasBool != b.hasBool || (a.fpVal == nil) != (b.fpVal == nil) {
		return false
	}
	if a.bvVal != nil && !a.bvVal.Eq(*b.bvVal) {
		return false
	}
	if a.fpVal != nil && !a.fpVal.Eq(*b.fpVal) {
		return false
	}
	if a.hasRM && a.rmVal != b.rmVal {
		return false
	}
	if a.hasBool && a.boolVal != b.boolVal {
		return false
	}
	return true
}

// Retain increments t's external reference count.
func (m *Manager) Retain(t Term) Term {
	m.mu.Lock()
	t.d.refs++
	m.mu.Unlock()
	return t
}

// Release decrements t's external reference count.  When the count
// reaches zero the children are released recursively; the record
// itself stays in the interning tables and is not freed.
func (m *Manager) Release(t Term) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release(t.d)
}

func (m *Manager) release(d *termData) {
	if d.refs > 0 {
		d.refs--
	}
	if d.refs != 0 {
		return
	}
	for _, c := range d.childs {
		m.release(c.d)
	}
}

// MkConst creates a fresh free constant of the given sort.
func (m *Manager) MkConst(sort Sort, symbol string) (Term, error) {
	if sort.IsNil() {
		return Term{}, errors.New("InvalidKind: nil sort")
	}
	d := &termData{kind: KConstant, sort: sort, symbol: symbol}
	return m.internTerm(d, true), nil
}

// MkVar creates a fresh bound variable of the given sort.
func (m *Manager) MkVar(sort Sort, symbol string) (Term, error) {
	if sort.IsNil() {
		return Term{}, errors.New("InvalidKind: nil sort")
	}
	if sort.IsFun() {
		return Term{}, errors.New("InvalidKind: variables must be first order")
	}
	d := &termData{kind: KVariable, sort: sort, symbol: symbol}
	return m.internTerm(d, true), nil
}

// MkBVValue creates a bit-vector literal.
func (m *Manager) MkBVValue(v bv.Value) Term {
	sort, _ := m.BVSort(v.Width())
	d := &termData{kind: KValue, sort: sort, bvVal: &v}
	return m.internTerm(d, false)
}

// MkFPValue creates a floating-point literal.
func (m *Manager) MkFPValue(v fp.Value) Term {
	sort, _ := m.FPSort(v.Format().E, v.Format().S)
	d := &termData{kind: KValue, sort: sort, fpVal: &v}
	return m.internTerm(d, false)
}

// MkRMValue creates a rounding-mode literal.
func (m *Manager) MkRMValue(rm fp.RM) Term {
	d := &termData{kind: KValue, sort: m.RMSort(), rmVal: rm, hasRM: true}
	return m.internTerm(d, false)
}

// MkBoolValue creates the true or false literal.
func (m *Manager) MkBoolValue(b bool) Term {
	d := &termData{kind: KValue, sort: m.BoolSort(), boolVal: b, hasBool: true}
	return m.internTerm(d, false)
}

// True and False are the boolean literals.
func (m *Manager) True() Term  { return m.MkBoolValue(true) }
func (m *Manager) False() Term { return m.MkBoolValue(false) }

// MkConstArray creates an array value whose entries all equal elem.
func (m *Manager) MkConstArray(sort Sort, elem Term) (Term, error) {
	if !sort.IsArray() {
		return Term{}, errors.New("SortMismatch: const array needs an array sort")
	}
	if sort.Elem() != elem.Sort() {
		return Term{}, errors.Errorf("SortMismatch: element sort %s != %s", elem.Sort(), sort.Elem())
	}
	d := &termData{kind: KConstArray, sort: sort, childs: []Term{elem}}
	return m.internTerm(d, false), nil
}

// MkTerm constructs a term of the given kind over children and
// indices, type-checking per the kind's signature.  Structurally
// identical calls return the identical handle.
func (m *Manager) MkTerm(kind Kind, children []Term, indices []uint32) (Term, error) {
	sort, err := m.checkTerm(kind, children, indices)
	if err != nil {
		return Term{}, err
	}
	d := &termData{
		kind: kind,
		sort: sort,
	}
	d.childs = append(d.childs, children...)
	d.indices = append(d.indices, indices...)
	return m.internTerm(d, false), nil
}
