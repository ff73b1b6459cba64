// SPDX-License-Identifier: MIT

package phasor

import (
	"math"
	"sort"
)

// Frame is one cycle of raw measurement values keyed by measurement key.
type Frame map[string]float64

// Lookup returns the value of key; NaN and Inf values are reported missing.
func (f Frame) Lookup(key string) (float64, bool) {
	if key == "" {
		return 0, false
	}
	v, ok := f[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// Keys returns the frame keys in ascending order.
func (f Frame) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
