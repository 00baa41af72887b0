// SPDX-License-Identifier: MIT

package pds

// Cloner is an interface that enables deep cloning of values of type T.
// Path copying duplicates a Node's Value field by assignment, which is a
// shallow copy; a type that holds internal pointers or slices and must
// stay independent across versions can implement Cloner[T], and every
// node copy made by [List.Insert] and [List.Erase] will use it instead
// of the default shallow copy.
type Cloner[T any] interface {
	Clone() T
}

// cloneValue returns v.Clone() if T implements Cloner[T], otherwise v
// itself.
func cloneValue[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}
