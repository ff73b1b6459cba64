// SPDX-License-Identifier: MIT

package topology

import "errors"

var (
	// ErrNetworkNil indicates a nil *network.Network.
	ErrNetworkNil = errors.New("topology: network is nil")

	// ErrEmptyOwner indicates an owner without nodes.
	ErrEmptyOwner = errors.New("topology: owner has no nodes")
)
