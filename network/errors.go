// SPDX-License-Identifier: MIT

package network

import "errors"

var (
	// ErrInvalidDescription indicates a field-level validation failure.
	ErrInvalidDescription = errors.New("network: invalid description")

	// ErrDuplicateID indicates two entities of the same kind share an ID.
	ErrDuplicateID = errors.New("network: duplicate id")

	// ErrUnknownOwner indicates a reference to a non-existent parent entity.
	ErrUnknownOwner = errors.New("network: unknown owner")

	// ErrUnknownNode indicates a reference to a non-existent node.
	ErrUnknownNode = errors.New("network: unknown node")

	// ErrUnknownVoltageLevel indicates a node references a missing voltage level.
	ErrUnknownVoltageLevel = errors.New("network: unknown voltage level")

	// ErrSelfLoop indicates a device or branch connects a node to itself.
	ErrSelfLoop = errors.New("network: endpoints are identical")

	// ErrOwnerMismatch indicates an endpoint that belongs to a different owner.
	ErrOwnerMismatch = errors.New("network: endpoint owned elsewhere")

	// ErrEmptySubstation indicates a substation without any node.
	ErrEmptySubstation = errors.New("network: substation has no nodes")

	// ErrInvalidTap indicates a tap position that leaves a non-positive turns ratio.
	ErrInvalidTap = errors.New("network: tap position gives non-positive ratio")

	// ErrUnknownDevice indicates a lookup of a non-existent switching device.
	ErrUnknownDevice = errors.New("network: unknown switching device")
)
