// Package network holds the transmission network model consumed by the
// estimator: companies, divisions, substations, transmission lines, nodes,
// switching devices, transformers, line segments and shunts.
//
// What:
//
//   - Entities carry stable integer IDs and refer to their parents and
//     siblings by ID only (no pointers), so a Description is trivially
//     serializable by whatever importer produces it.
//   - New(desc) runs a single link-resolution pass: it builds id→index maps,
//     resolves node owners and base kV, checks device and branch endpoints,
//     and groups nodes/devices per owner.
//   - Switching devices are a tagged variant (Breaker, Switch) over one record
//     {Normal, Actual, ManualOverride}; behavior differences are capability
//     checks on DeviceKind, never type inspection.
//
// Errors (all detected at load time):
//
//   - ErrInvalidDescription   struct tag violation (ids, base kV, kinds)
//   - ErrDuplicateID          two entities of one kind share an ID
//   - ErrUnknownOwner         node/device/branch parent does not exist
//   - ErrUnknownNode          device/branch/shunt endpoint does not exist
//   - ErrUnknownVoltageLevel  node voltage level does not exist
//   - ErrSelfLoop             device or branch connects a node to itself
//   - ErrOwnerMismatch        device or transformer endpoint owned elsewhere
//   - ErrEmptySubstation      substation without nodes
//
// Concurrency:
//
//   - A Network is exclusively owned by the estimation cycle in flight; it is
//     not safe for concurrent mutation.
package network
