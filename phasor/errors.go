// SPDX-License-Identifier: MIT

package phasor

import "errors"

var (
	// ErrUnboundGroup indicates a group refers to a missing network entity.
	ErrUnboundGroup = errors.New("phasor: group bound to unknown entity")

	// ErrRoleMismatch indicates a binding inconsistent with the group's role,
	// e.g. a current flow whose terminals do not match its branch.
	ErrRoleMismatch = errors.New("phasor: binding does not match role")

	// ErrDuplicateKey indicates two groups of one catalog share a key.
	ErrDuplicateKey = errors.New("phasor: duplicate group key")
)
