// SPDX-License-Identifier: MIT

// Package gate decides whether the system matrix of the estimator must be
// rebuilt.
//
// What:
//
//	Snapshot captures the discrete state that shapes the matrix: inclusion
//	flags of every measurement group, breaker binary values, raw status
//	words, actual device states, transformer tap positions and the layout
//	of the surviving buses. Two cycles with equal snapshots produce the same
//	matrix.
//
//	Gate keeps the last accepted snapshot and reports a change on any
//	difference. Cache[T] is a Gate plus the value built from its snapshot:
//	Get consults the gate, rebuilds only on change and lets the gate accept
//	the new snapshot once the build succeeds. A failed build leaves the cache
//	as it was. The estimator gates its system matrix through Cache[*System].
//
// Errors:
//
//	Cache.Get returns the build error unchanged.
//
// Complexity:
//
//	Capture, Fingerprint and Equal are O(G + B + S + D + T + N).
package gate
