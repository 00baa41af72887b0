// SPDX-License-Identifier: MIT

package pds

import "errors"

// ErrOutOfRange is the sentinel error wrapped by every out-of-range
// condition this package signals: an unregistered List version id,
// Front/Back/PopFront/PopBack on an empty version, dereferencing the
// terminal iterator, an unknown VersionTree parent or version, and a
// duplicate VersionTree version id.
//
// Callers should compare with errors.Is(err, pds.ErrOutOfRange), not
// string-match the message.
var ErrOutOfRange = errors.New("pds: out of range")
