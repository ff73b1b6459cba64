// Package phasor models synchrophasor measurements for the estimator.
//
// What:
//
//   - Group: one named phasor measurement point with a Role (Voltage,
//     CurrentFlow, CurrentInjection). All roles share the same channel layout:
//     zero/negative/positive sequence plus phases A/B/C, each channel a Phasor
//     holding measured, estimated and residual values.
//   - Frame: the raw key/value measurement frame of one cycle.
//   - StatusWord: IEEE C37.118.2-2011 STAT bitfield gating data quality of the
//     groups bound to it.
//   - BreakerStatus / TapPosition: discrete inputs driving device states and
//     transformer taps.
//   - Catalog: the full measurement catalog linked against a network.
//   - Per-unit and symmetrical-component helpers.
//
// Units:
//
//   - Magnitudes are line-to-neutral volts or amperes, angles are degrees.
//   - Per-unit bases: VoltageBase(kV) = kV·1000/√3, CurrentBase(kV, MVA) =
//     MVA·10⁶/(√3·kV·1000).
//
// Errors:
//
//   - ErrUnboundGroup     a group references a node/branch/shunt that does not exist
//   - ErrRoleMismatch     a group's binding does not match its role
//   - ErrDuplicateKey     two groups share a key
package phasor
