// SPDX-License-Identifier: MIT

package estimator

import (
	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
)

// buildOutput renders the published keys of one cycle. Magnitudes are
// nominal, angles in degrees.
func buildOutput(sel OutputSelection, mode phasor.PhaseMode, net *network.Network, estimated []*phasor.Group, included map[*phasor.Group]bool) phasor.Frame {
	out := make(phasor.Frame)
	channels := phasor.ChannelsFor(mode)

	for _, g := range estimated {
		if !publishes(sel, g.Role) {
			continue
		}
		for _, c := range channels {
			p := g.Channel(c)
			magKey, angKey := p.EstimateKeys()
			out[magKey], out[angKey] = phasor.ToPolar(p.Estimated)
		}
	}
	if sel.Residuals {
		for _, g := range estimated {
			if !included[g] {
				continue
			}
			for _, c := range channels {
				p := g.Channel(c)
				magKey, angKey := p.ResidualKeys()
				out[magKey], out[angKey] = phasor.ToPolar(p.Residual)
			}
		}
	}
	if sel.DeviceStates {
		for _, d := range net.Devices() {
			if d.StatusKey != "" {
				out[d.StatusKey+phasor.EstimateSuffix] = d.Actual.Code()
			}
		}
	}
	if sel.TapPositions {
		for _, t := range net.Transformers() {
			if t.TapKey != "" {
				out[t.TapKey+phasor.EstimateSuffix] = float64(t.TapPosition)
			}
		}
	}

	return out
}

func publishes(sel OutputSelection, r phasor.Role) bool {
	switch r {
	case phasor.Voltage:
		return sel.Voltages
	case phasor.CurrentFlow:
		return sel.CurrentFlows
	case phasor.CurrentInjection:
		return sel.CurrentInjections
	}

	return false
}
