// SPDX-License-Identifier: MIT

package pds

import (
	"fmt"
	"io"
	"iter"
	"reflect"
	"strings"
)

// All returns an iterator over the elements of version v, from head to
// tail. It is read-only and allocates nothing beyond the iterator
// closure itself. Ranging over an unknown version yields no elements.
func (l *List[T]) All(v int) iter.Seq[T] {
	return func(yield func(T) bool) {
		ver, err := l.version(v)
		if err != nil {
			return
		}
		for n := ver.head; n != nil; n = n.next {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// Equal reports whether l and other hold the same number of versions
// and whether, for every version index, both Lists hold elements of
// equal length and equal value, in order. Values are compared with
// [Equaler] if T implements it, otherwise with reflect.DeepEqual,
// mirroring the teacher library's Equaler/equal.go convention.
func (l *List[T]) Equal(other *List[T]) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.versions) != len(other.versions) {
		return false
	}
	for v := range l.versions {
		va, vb := l.versions[v], other.versions[v]
		if va.size != vb.size {
			return false
		}
		a, b := va.head, vb.head
		for a != nil && b != nil {
			if !valuesEqual(a.Value, b.Value) {
				return false
			}
			a, b = a.next, b.next
		}
		if a != nil || b != nil {
			return false
		}
	}
	return true
}

func valuesEqual[T any](a, b T) bool {
	if ea, ok := any(a).(Equaler[T]); ok {
		return ea.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// SameElements reports whether the chain of version v is, element for
// element, the very same physical nodes as the chain of version w. It
// exists to make the structural-sharing invariant (spec §8, property 4)
// checkable from tests without exposing Node identity as part of the
// public value-equality contract.
func (l *List[T]) SameElements(v, w int) (bool, error) {
	va, err := l.version(v)
	if err != nil {
		return false, err
	}
	vb, err := l.version(w)
	if err != nil {
		return false, err
	}
	return va.head == vb.head, nil
}

// Fprint writes a bracketed rendering of version v's elements to w,
// e.g. "[1 2 3]". It is meant for debugging, mirroring the teacher
// library's Fprint/String pairing in stringify.go.
func (l *List[T]) Fprint(w io.Writer, v int) error {
	ver, err := l.version(v)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for n := ver.head; n != nil; n = n.next {
		if n != ver.head {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%v", n.Value); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "]")
	return err
}

// String returns version v's Fprint rendering, or a diagnostic
// placeholder if v is not registered. Unlike Fprint it never returns an
// error, matching the teacher library's String-wraps-Fprint contract
// (it panics there on I/O error; a strings.Builder never errors, so
// that branch cannot be reached here).
func (l *List[T]) String(v int) string {
	var b strings.Builder
	if err := l.Fprint(&b, v); err != nil {
		return fmt.Sprintf("<invalid version %d>", v)
	}
	return b.String()
}
