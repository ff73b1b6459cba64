// Package linse is a linear synchrophasor state estimator for transmission
// networks.
//
// What is linse?
//
//	A library that turns a breaker/switch/node model and a stream of PMU
//	frames into bus voltage estimates, branch current estimates and
//	residuals, one cycle per frame:
//		• network/      : companies, substations, lines, nodes, devices, branches
//		• phasor/       : measurement groups, STAT words, per-unit, frames
//		• topology/     : substation graph resolution into observed buses
//		• observability/: direct/indirect marking and pruning
//		• selection/    : active → included measurement filter
//		• gate/         : discrete-state snapshots and the rebuild cache
//		• matrix/, ops/ : complex dense matrices, LU, pseudo-inverse
//		• estimator/    : assembly, solve, back-substitution, output keys
//		• config/, logger/, report/: configuration, logging, diagnostics
//
// Cycle:
//
//	frame → ingest → active selection → bus resolution → observability →
//	included selection → gate (reuse or rebuild H⁺) → x = H⁺·z →
//	back-substitution → output frame
//
// Quick start:
//
//	net, _ := network.New(desc)
//	cat, _ := phasor.NewCatalog(net, groups)
//	cfg, _ := config.Load("linse.yaml")
//	logger.Init(cfg.ConsoleLogger())
//	est, _ := estimator.New(net, cat, cfg.EstimatorOptions()...)
//	res, err := est.Run(ctx, frame)
//
// Installation:
//
//	go get github.com/katalvlaran/linse
package linse
