// SPDX-License-Identifier: MIT

package pds

import "fmt"

// Node is one immutable element of a List's backing chain. Nodes are
// shared between versions and between iterators and are never mutated
// after construction; a node is collected by the garbage collector once
// no version descriptor nor iterator references it any longer.
type Node[T any] struct {
	Value T
	next  *Node[T]
}

// Next returns the node following n, or nil at the end of the chain.
func (n *Node[T]) Next() *Node[T] {
	if n == nil {
		return nil
	}
	return n.next
}

// version is an immutable snapshot: a head pointer and the length of
// the chain reachable from it.
type version[T any] struct {
	head *Node[T]
	size int
}

// List is a fully persistent singly-linked sequence. Every mutating
// method other than Clear leaves the receiver's existing versions
// untouched and appends exactly one new version descriptor to the
// registry (a no-op [List.Erase] appends none); the new version's id is
// always Versions()-1 immediately after the call returns without error.
// Nodes are shared between versions by path copying: only the
// nodes from a version's head to the edit point are copied, the suffix
// is reused.
//
// The zero value is not ready to use; construct one with [NewList].
// A List must not be copied by value after first use.
type List[T any] struct {
	_ noCopy

	versions []version[T]
}

// NewList returns a List holding a single version, 0, the empty
// sequence.
func NewList[T any]() *List[T] {
	return &List[T]{versions: []version[T]{{}}}
}

// Iterator is a cursor into one node of a List's chain. The zero value
// is the terminal cursor, [End]. An Iterator holds a strong reference to
// its node, and transitively to the node's suffix, so it remains valid
// and dereferenceable even after further mutations of the List it was
// obtained from.
type Iterator[T any] struct {
	node *Node[T]
}

// End returns the version-agnostic terminal cursor. It compares equal
// across every version of every List.
func End[T any]() Iterator[T] {
	return Iterator[T]{}
}

// IsEnd reports whether it is the terminal cursor.
func (it Iterator[T]) IsEnd() bool {
	return it.node == nil
}

// Value returns the element it is positioned at, or an error wrapping
// [ErrOutOfRange] if it is the terminal cursor.
func (it Iterator[T]) Value() (T, error) {
	if it.node == nil {
		var zero T
		return zero, fmt.Errorf("%w: dereference of end iterator", ErrOutOfRange)
	}
	return it.node.Value, nil
}

// Next returns the cursor following it, or [End] at the end of the
// chain.
func (it Iterator[T]) Next() Iterator[T] {
	if it.node == nil {
		return it
	}
	return Iterator[T]{node: it.node.next}
}

func (l *List[T]) version(v int) (version[T], error) {
	if l == nil {
		panic("pds: method called on nil *List[T]")
	}
	if v < 0 || v >= len(l.versions) {
		var zero version[T]
		return zero, fmt.Errorf("%w: unregistered version %d", ErrOutOfRange, v)
	}
	return l.versions[v], nil
}

// Versions returns the number of registered versions, including the
// initial empty version 0. Always >= 1.
func (l *List[T]) Versions() int {
	if l == nil {
		panic("pds: method called on nil *List[T]")
	}
	return len(l.versions)
}

// Empty reports whether version v has no elements.
func (l *List[T]) Empty(v int) (bool, error) {
	ver, err := l.version(v)
	if err != nil {
		return false, err
	}
	return ver.size == 0, nil
}

// Size returns the number of elements in version v.
func (l *List[T]) Size(v int) (int, error) {
	ver, err := l.version(v)
	if err != nil {
		return 0, err
	}
	return ver.size, nil
}

// Begin returns an iterator positioned at the head of version v. It
// equals [End] if v is empty.
func (l *List[T]) Begin(v int) (Iterator[T], error) {
	ver, err := l.version(v)
	if err != nil {
		return End[T](), err
	}
	return Iterator[T]{node: ver.head}, nil
}

// Front returns the first element of version v.
func (l *List[T]) Front(v int) (T, error) {
	ver, err := l.version(v)
	if err != nil {
		var zero T
		return zero, err
	}
	if ver.head == nil {
		var zero T
		return zero, fmt.Errorf("%w: Front of empty version %d", ErrOutOfRange, v)
	}
	return ver.head.Value, nil
}

// Back returns the last element of version v. O(n).
func (l *List[T]) Back(v int) (T, error) {
	ver, err := l.version(v)
	if err != nil {
		var zero T
		return zero, err
	}
	if ver.head == nil {
		var zero T
		return zero, fmt.Errorf("%w: Back of empty version %d", ErrOutOfRange, v)
	}
	n := ver.head
	for n.next != nil {
		n = n.next
	}
	return n.Value, nil
}

// Clear drops every version and reinstates a fresh version 0, the empty
// sequence. This resolves the reference design's ambiguity (see
// DESIGN.md): Clear never leaves the List unusable, it always leaves it
// in exactly the state [NewList] returns.
func (l *List[T]) Clear() {
	if l == nil {
		panic("pds: method called on nil *List[T]")
	}
	l.versions = []version[T]{{}}
}

// Clone returns a List whose version registry is an independent copy of
// the receiver's. Nodes are immutable and never mutated after
// construction, so they remain shared between the original and the
// clone; only the registry slice is duplicated.
func (l *List[T]) Clone() *List[T] {
	if l == nil {
		return nil
	}
	c := &List[T]{versions: make([]version[T], len(l.versions))}
	copy(c.versions, l.versions)
	return c
}

// noCopy may be embedded in structs which must not be copied after
// first use, so that `go vet`'s -copylocks check flags accidental
// pass-by-value.
//
// See https://golang.org/issues/8005#issuecomment-190753527 for
// details. Note that it must not be embedded, due to the Lock/Unlock
// methods being promoted.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
