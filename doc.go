// SPDX-License-Identifier: MIT

// Package pds provides two independent fully persistent data structures.
//
// [List] is an immutable-by-construction singly-linked sequence: every
// mutating operation leaves all previous versions intact and returns a
// new version, sharing as much of the underlying node graph as possible
// with its predecessors (path copying).
//
// [VersionTree] is an order-maintenance index over a tree of caller
// supplied version identifiers. It answers "does version a precede
// version b in the tree's preorder" in expected O(1), using the
// Bender-Cole-Demaine-Farach-Colton-Zito scheme: a doubly-labeled event
// list with hierarchical relabeling on label exhaustion.
//
// The two types do not depend on each other. A higher layer may pair a
// List with a VersionTree to build a confluently persistent structure
// where "which version is older" matters, but that composition is
// outside this package.
package pds
