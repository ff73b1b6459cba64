// SPDX-License-Identifier: MIT

package topology

import (
	"sort"
	"strconv"
	"strings"
)

// VertexCluster is a set of node IDs merged through closed devices.
// ids is kept sorted ascending without duplicates.
type VertexCluster struct {
	ids []int
}

// NewVertexCluster returns a cluster holding ids.
func NewVertexCluster(ids ...int) VertexCluster {
	c := VertexCluster{ids: append([]int(nil), ids...)}
	sort.Ints(c.ids)
	c.ids = dedupe(c.ids)

	return c
}

// IDs returns a copy of the member IDs in ascending order.
func (c VertexCluster) IDs() []int { return append([]int(nil), c.ids...) }

// Len returns the number of members.
func (c VertexCluster) Len() int { return len(c.ids) }

// Min returns the smallest member, or 0 for an empty cluster.
func (c VertexCluster) Min() int {
	if len(c.ids) == 0 {
		return 0
	}

	return c.ids[0]
}

// Contains reports membership of id.
// Complexity: O(log n).
func (c VertexCluster) Contains(id int) bool {
	i := sort.SearchInts(c.ids, id)

	return i < len(c.ids) && c.ids[i] == id
}

// Absorb merges o into c (set union).
// Complexity: O(n+m).
func (c *VertexCluster) Absorb(o VertexCluster) {
	c.ids = union(c.ids, o.ids)
}

// Equal reports whether both clusters hold the same IDs.
func (c VertexCluster) Equal(o VertexCluster) bool {
	if len(c.ids) != len(o.ids) {
		return false
	}
	for i := range c.ids {
		if c.ids[i] != o.ids[i] {
			return false
		}
	}

	return true
}

// String renders the cluster as "{1,2,3}".
func (c VertexCluster) String() string {
	parts := make([]string, len(c.ids))
	for i, id := range c.ids {
		parts[i] = strconv.Itoa(id)
	}

	return "{" + strings.Join(parts, ",") + "}"
}

// union merges two sorted, duplicate-free slices into a new one.
func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)

	return append(out, b[j:]...)
}

func dedupe(sorted []int) []int {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}

	return out
}
