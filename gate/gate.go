// SPDX-License-Identifier: MIT

package gate

// Gate retains the snapshot of the last accepted cycle.
type Gate struct {
	last        Snapshot
	fingerprint uint64
	valid       bool
}

// Matches reports whether s equals the retained snapshot. Fingerprints
// reject most differences; equal fingerprints are confirmed by an exact
// compare. The gate is not modified.
func (g *Gate) Matches(s Snapshot) bool {
	return g.valid && g.fingerprint == s.Fingerprint() && g.last.Equal(s)
}

// Accept retains s as the last snapshot.
func (g *Gate) Accept(s Snapshot) {
	g.last, g.fingerprint, g.valid = s, s.Fingerprint(), true
}

// Changed compares s exactly against the retained snapshot. On mismatch, or
// on the first call, it accepts s and returns true.
func (g *Gate) Changed(s Snapshot) bool {
	if g.Matches(s) {
		return false
	}
	g.Accept(s)

	return true
}

// Fingerprint returns the fingerprint of the retained snapshot (0 when empty).
func (g *Gate) Fingerprint() uint64 { return g.fingerprint }

// Reset forgets the retained snapshot; the next Changed returns true.
func (g *Gate) Reset() { g.last, g.fingerprint, g.valid = Snapshot{}, 0, false }

// Cache holds a value derived from the snapshot its Gate accepted last.
type Cache[T any] struct {
	gate  Gate
	value T
}

// Get returns the cached value when the gate matches s; otherwise it calls
// build, and on success the gate accepts s, the result is cached and rebuilt
// is reported. On a build error the cache is left untouched and the error is
// returned as is.
func (c *Cache[T]) Get(s Snapshot, build func() (T, error)) (value T, rebuilt bool, err error) {
	if c.gate.Matches(s) {
		return c.value, false, nil
	}
	v, err := build()
	if err != nil {
		var zero T
		return zero, false, err
	}
	c.gate.Accept(s)
	c.value = v

	return v, true, nil
}

// Value returns the cached value and whether one is held.
func (c *Cache[T]) Value() (T, bool) { return c.value, c.gate.valid }

// Fingerprint returns the fingerprint of the cached snapshot (0 when empty).
func (c *Cache[T]) Fingerprint() uint64 { return c.gate.Fingerprint() }

// Invalidate drops the cached value and resets the gate.
func (c *Cache[T]) Invalidate() {
	var zero T
	c.gate.Reset()
	c.value = zero
}
