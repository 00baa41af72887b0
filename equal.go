// SPDX-License-Identifier: MIT

package pds

// Equaler is a generic interface for types that can decide their own
// equality logic. It can be used to override the potentially expensive
// default comparison with [reflect.DeepEqual].
type Equaler[T any] interface {
	Equal(other T) bool
}
