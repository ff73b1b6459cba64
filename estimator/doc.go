// SPDX-License-Identifier: MIT

// Package estimator runs the linear synchrophasor state estimation cycle.
//
// What:
//
//	Each cycle ingests a frame, resolves the buses of every substation and
//	line, checks observability, selects the usable measurement groups and
//	solves z = H·x in the least-squares sense with x = H⁺·z. H and H⁺ are
//	cached behind gate.Cache and rebuilt only when the discrete state of
//	the cycle changes. Estimates are back-substituted into every group whose
//	terminals were solved and published as key/value pairs.
//
// Model:
//
//	All quantities are per-unit on BaseMVA and the node base kV. Voltage
//	rows are identity. Current-flow rows follow the π-model of a line
//	segment, I = y(Vk − Vo) + j(b/2)Vk, or the off-nominal tap model of a
//	transformer, I = y/|a|²·Vf − y/conj(a)·Vt on the tap side and
//	I = y·Vt − y/a·Vf on the other. Injection rows are the shunt admittance.
//	In three-phase mode every entry is a 3×3 block built from sequence data.
//
// Errors:
//
//	ErrNoVoltageMeasurements  no voltage group survived selection.
//	ErrNumerical              H is rank deficient or ill-conditioned; wraps
//	                          ops.ErrSingular / ops.ErrIllConditioned.
//	ErrSolveTimeout           rebuild exceeded Options.SolveTimeout.
//
// Concurrency:
//
//	One cycle at a time per Estimator. Stream runs cycles on one worker.
package estimator
