// SPDX-License-Identifier: MIT

// Package observability classifies the nodes of resolved buses as directly
// observed, indirectly observed or unobserved, and prunes buses that cannot
// be observed at all.
//
// What:
//
//	Check runs three stages over the buses of one owner:
//	 1. every node carrying an active voltage measurement is DirectlyObserved;
//	 2. every node still unobserved that is the "to" terminal of an active
//	    current-flow measurement becomes IndirectlyObserved;
//	 3. inside each bus, if any node is observed the remaining nodes are
//	    promoted to IndirectlyObserved (a merged bus shares one voltage);
//	    otherwise the bus is removed from the result.
//
//	Check returns nil when no node of the scope is observed. CheckNetwork
//	applies Check owner by owner and concatenates the survivors.
//	CheckPotential runs the same stages against the expected measurement
//	set (enabled and bound) and leaves the network untouched.
//
// Monotonicity:
//
//	Adding an active voltage measurement never downgrades any node.
//
// Complexity:
//
//	O(N + M) for N nodes in scope and M measurements.
package observability
