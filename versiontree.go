// SPDX-License-Identifier: MIT

package pds

import (
	"fmt"
	"math"
)

// NoneVersion is the reserved sentinel version-key. Caller-supplied
// version identifiers passed to [VersionTree.Insert] must differ from
// it.
const NoneVersion = math.MinInt

// defaultDensityConstant is the order-maintenance overflow constant T
// from spec §4.2, a commonly cited value from the literature. It is
// exposed as a constructor option because tests (and callers with a
// different insert/tree-shape profile) should parameterize over it
// rather than assume this particular value, per the design notes.
const defaultDensityConstant = 1.3

// initialCapacity is the label-space size M a fresh VersionTree starts
// with. M=2 cannot simultaneously hold the root's open event, the
// root's close event, and the reserved sentinel at M-1, so the smallest
// workable power of two is 4.
const initialCapacity = 4

// event is one endpoint (open or close) of a registered version's
// preorder bracket.
//
// The reference design encodes open/close by storing the version id
// itself for an open event and its arithmetic negation for a close
// event. That collides for the root version, whose id is 0 and whose
// negation is also 0 — see DESIGN.md. This implementation instead tags
// each event explicitly, which sidesteps the collision while leaving
// every externally observable operation and invariant unchanged.
type event struct {
	version int
	isOpen  bool
	label   int
	prev    *event
	next    *event
}

// VersionTree is an order-maintenance index over a tree of
// caller-supplied version identifiers. It answers "does a precede b in
// the tree's preorder" in expected O(1) by keeping each version's
// preorder bracket as two labeled events in a doubly-linked list, dense
// enough that integer comparison of labels decides precedence.
//
// The zero value is not ready to use; construct one with
// [NewVersionTree]. A VersionTree must not be copied by value after
// first use.
type VersionTree struct {
	_ noCopy

	head            *event // root's open event; always label 0
	slotEvent       []*event
	openLabel       map[int]int // version id -> label of its open event
	closeLabel      map[int]int // version id -> label of its close event
	m               int         // current label-space capacity, a power of two
	size            int         // registered versions, including the root
	densityConstant float64
}

// Option configures a [VersionTree] at construction.
type Option func(*VersionTree)

// WithDensityConstant overrides the order-maintenance overflow constant
// T (spec §4.2), which must lie strictly between 1 and 2. Higher values
// lower the density threshold T^-s, so fewer windows qualify for a local
// relabel and the label space grows globally more often.
func WithDensityConstant(t float64) Option {
	return func(vt *VersionTree) {
		vt.densityConstant = t
	}
}

// NewVersionTree returns a VersionTree holding only the root version,
// identifier 0.
func NewVersionTree(opts ...Option) *VersionTree {
	t := &VersionTree{densityConstant: defaultDensityConstant}
	for _, opt := range opts {
		opt(t)
	}
	t.reset()
	return t
}

func (t *VersionTree) reset() {
	t.m = initialCapacity
	t.slotEvent = make([]*event, t.m)
	t.openLabel = make(map[int]int)
	t.closeLabel = make(map[int]int)
	t.size = 1

	root := &event{version: 0, isOpen: true}
	t.head = root
	t.commitLabel(root, 0)

	rootClose := &event{version: 0, isOpen: false}
	spliceAfter(root, rootClose)
	t.allocateLabel(rootClose)
}

// Clear resets the tree to its initial state: only the root version
// present, at the initial label-space capacity.
func (t *VersionTree) Clear() {
	if t == nil {
		panic("pds: method called on nil *VersionTree")
	}
	t.reset()
}

// Empty reports whether only the root version is present.
func (t *VersionTree) Empty() bool {
	if t == nil {
		panic("pds: method called on nil *VersionTree")
	}
	return t.size == 1
}

// Size returns the number of registered versions, including the root.
func (t *VersionTree) Size() int {
	if t == nil {
		panic("pds: method called on nil *VersionTree")
	}
	return t.size
}

// Capacity returns the current label-space size M. It is exposed for
// tests that need to observe a global grow (spec §8, scenario D).
func (t *VersionTree) Capacity() int {
	if t == nil {
		panic("pds: method called on nil *VersionTree")
	}
	return t.m
}

func (t *VersionTree) findOpen(v int) (*event, bool) {
	label, ok := t.openLabel[v]
	if !ok {
		return nil, false
	}
	return t.slotEvent[label], true
}

// Insert registers v as a child of parent, placing v's bracket at the
// very start of parent's subtree (the leftmost valid preorder
// position). It fails, registering nothing, if parent is unknown, if v
// equals [NoneVersion], or if v is already registered.
func (t *VersionTree) Insert(v, parent int) error {
	if t == nil {
		panic("pds: method called on nil *VersionTree")
	}
	if v == NoneVersion {
		return fmt.Errorf("%w: version id must not equal NoneVersion", ErrOutOfRange)
	}
	if _, exists := t.openLabel[v]; exists {
		return fmt.Errorf("%w: duplicate version id %d", ErrOutOfRange, v)
	}
	parentOpen, ok := t.findOpen(parent)
	if !ok {
		return fmt.Errorf("%w: unknown parent version %d", ErrOutOfRange, parent)
	}

	openEv := &event{version: v, isOpen: true}
	closeEv := &event{version: v, isOpen: false}

	spliceAfter(parentOpen, openEv)
	t.allocateLabel(openEv)

	spliceAfter(openEv, closeEv)
	t.allocateLabel(closeEv)

	t.size++
	return nil
}

// Before returns true iff a equals b or a is an ancestor of b in the
// version tree, i.e. b's bracket lies inside a's. It is not a total
// order: Before(a, b) and Before(b, a) are both false for siblings.
func (t *VersionTree) Before(a, b int) (bool, error) {
	if t == nil {
		panic("pds: method called on nil *VersionTree")
	}
	aOpen, ok := t.openLabel[a]
	if !ok {
		return false, fmt.Errorf("%w: unknown version %d", ErrOutOfRange, a)
	}
	bOpen, ok := t.openLabel[b]
	if !ok {
		return false, fmt.Errorf("%w: unknown version %d", ErrOutOfRange, b)
	}
	aClose := t.closeLabel[a]
	bClose := t.closeLabel[b]
	return aOpen <= bOpen && bClose <= aClose, nil
}

func spliceAfter(left, ev *event) {
	ev.prev = left
	ev.next = left.next
	if left.next != nil {
		left.next.prev = ev
	}
	left.next = ev
}

func (t *VersionTree) commitLabel(ev *event, label int) {
	ev.label = label
	t.slotEvent[label] = ev
	if ev.isOpen {
		t.openLabel[ev.version] = label
	} else {
		t.closeLabel[ev.version] = label
	}
}
