package engine

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// node is the engine-internal representation of one JSON value. Container
// nodes hold references, so two handles obtained from the same container
// element alias one node, matching the shared-value semantics the wrapper
// layer expects.
type node struct {
	kind Tag
	i    int64
	f    float64
	s    string
	arr  []*node
	obj  *orderedMap
}

func nullNode() *node           { return &node{kind: TagNull} }
func invalidNode() *node        { return &node{kind: TagInvalid} }
func intNode(v int64) *node     { return &node{kind: TagInt, i: v} }
func floatNode(v float64) *node { return &node{kind: TagFloat, f: v} }
func stringNode(s string) *node { return &node{kind: TagString, s: s} }
func arrayNode() *node          { return &node{kind: TagArray} }
func objectNode() *node         { return &node{kind: TagObject, obj: newOrderedMap()} }

func boolNode(b bool) *node {
	n := &node{kind: TagBool}
	if b {
		n.i = 1
	}
	return n
}

// orderedMap is an insertion-ordered string-keyed mapping with unique keys.
type orderedMap struct {
	entries []mapEntry
	index   map[string]int
}

type mapEntry struct {
	key string
	val *node
}

func newOrderedMap() *orderedMap {
	return &orderedMap{index: make(map[string]int)}
}

func (m *orderedMap) len() int {
	return len(m.entries)
}

func (m *orderedMap) get(key string) (*node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].val, true
}

// set replaces in place on collision, so insertion order is preserved for
// rewritten keys.
func (m *orderedMap) set(key string, val *node) {
	if i, ok := m.index[key]; ok {
		m.entries[i].val = val
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, mapEntry{key: key, val: val})
}

func (m *orderedMap) delete(key string) (*node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	val := m.entries[i].val
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].key] = j
	}
	return val, true
}

// popLast removes the most recently inserted pair.
func (m *orderedMap) popLast() (string, *node, bool) {
	if len(m.entries) == 0 {
		return "", nil, false
	}
	e := m.entries[len(m.entries)-1]
	m.entries = m.entries[:len(m.entries)-1]
	delete(m.index, e.key)
	return e.key, e.val, true
}

func (m *orderedMap) clear() {
	m.entries = nil
	m.index = make(map[string]int)
}

// compareNodes orders two nodes. It returns one of the Cmp constants and a
// result code; kinds with no common order report ResultTypeError.
func compareNodes(a, b *node) (int32, Result) {
	if isNumeric(a.kind) && isNumeric(b.kind) {
		return compareNumeric(a, b)
	}
	if a.kind != b.kind {
		return 0, ResultTypeError
	}

	switch a.kind {
	case TagNull, TagInvalid:
		return CmpEqual, ResultOK
	case TagString:
		switch {
		case a.s < b.s:
			return CmpLess, ResultOK
		case a.s > b.s:
			return CmpGreater, ResultOK
		}
		return CmpEqual, ResultOK
	case TagArray:
		return compareArrays(a.arr, b.arr)
	case TagObject:
		return compareObjects(a.obj, b.obj)
	}
	return 0, ResultInternalError
}

func isNumeric(t Tag) bool {
	return t == TagInt || t == TagFloat || t == TagBool
}

func numericValue(n *node) (int64, float64, bool) {
	switch n.kind {
	case TagInt:
		return n.i, 0, true
	case TagBool:
		return n.i, 0, true
	}
	return 0, n.f, false
}

func compareNumeric(a, b *node) (int32, Result) {
	ai, af, aIsInt := numericValue(a)
	bi, bf, bIsInt := numericValue(b)

	if aIsInt && bIsInt {
		switch {
		case ai < bi:
			return CmpLess, ResultOK
		case ai > bi:
			return CmpGreater, ResultOK
		}
		return CmpEqual, ResultOK
	}

	x := af
	if aIsInt {
		x = float64(ai)
	}
	y := bf
	if bIsInt {
		y = float64(bi)
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return CmpUnordered, ResultOK
	}
	switch {
	case x < y:
		return CmpLess, ResultOK
	case x > y:
		return CmpGreater, ResultOK
	}
	return CmpEqual, ResultOK
}

// compareArrays is element-wise lexicographic with shorter-is-less on a
// common-prefix tie.
func compareArrays(a, b []*node) (int32, Result) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		cmp, res := compareNodes(a[i], b[i])
		if res != ResultOK {
			return 0, res
		}
		if cmp != CmpEqual {
			return cmp, ResultOK
		}
	}
	switch {
	case len(a) < len(b):
		return CmpLess, ResultOK
	case len(a) > len(b):
		return CmpGreater, ResultOK
	}
	return CmpEqual, ResultOK
}

// compareObjects implements a structural subset order over key/value pairs:
// equal key sets with pairwise-equal values compare equal, a proper pair
// subset compares less, a proper superset greater, anything else unordered.
func compareObjects(a, b *orderedMap) (int32, Result) {
	aInB := true
	for _, e := range a.entries {
		other, ok := b.get(e.key)
		if !ok {
			aInB = false
			break
		}
		cmp, res := compareNodes(e.val, other)
		if res != ResultOK || cmp != CmpEqual {
			aInB = false
			break
		}
	}
	if aInB {
		if a.len() == b.len() {
			return CmpEqual, ResultOK
		}
		return CmpLess, ResultOK
	}

	bInA := true
	for _, e := range b.entries {
		other, ok := a.get(e.key)
		if !ok {
			bInA = false
			break
		}
		cmp, res := compareNodes(e.val, other)
		if res != ResultOK || cmp != CmpEqual {
			bInA = false
			break
		}
	}
	if bInA {
		return CmpGreater, ResultOK
	}
	return CmpUnordered, ResultOK
}

func nodesEqual(a, b *node) bool {
	cmp, res := compareNodes(a, b)
	return res == ResultOK && cmp == CmpEqual
}

// hashNode produces a kind-prefixed 64-bit content hash. Null, Bool, and
// Invalid hashes are fixed per-kind constants; mutable containers are
// unhashable.
func hashNode(n *node) (uint64, Result) {
	var d xxhash.Digest
	d.Reset()

	switch n.kind {
	case TagNull:
		return hashConst(TagNull, 0), ResultOK
	case TagInvalid:
		return hashConst(TagInvalid, 0), ResultOK
	case TagBool:
		return hashConst(TagBool, byte(n.i)), ResultOK
	case TagInt:
		writeTagged(&d, TagInt, uint64(n.i))
		return d.Sum64(), ResultOK
	case TagFloat:
		writeTagged(&d, TagFloat, math.Float64bits(n.f))
		return d.Sum64(), ResultOK
	case TagString:
		_, _ = d.Write([]byte{byte(TagString)})
		_, _ = d.WriteString(n.s)
		return d.Sum64(), ResultOK
	}
	return 0, ResultTypeError
}

func hashConst(t Tag, salt byte) uint64 {
	return xxhash.Sum64([]byte{byte(t), salt})
}

func writeTagged(d *xxhash.Digest, t Tag, bits uint64) {
	var buf [9]byte
	buf[0] = byte(t)
	for i := 0; i < 8; i++ {
		buf[1+i] = byte(bits >> (8 * i))
	}
	_, _ = d.Write(buf[:])
}
