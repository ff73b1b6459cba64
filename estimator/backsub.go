// SPDX-License-Identifier: MIT

package estimator

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/linse/phasor"
)

// Scatter writes state into the bus estimates of m, w entries per bus.
func (m *Model) Scatter(state []complex128) {
	w := m.Mode.Width()
	for i := range m.Buses {
		m.Buses[i].Estimate = append([]complex128(nil), state[i*w:(i+1)*w]...)
	}
}

// BackSubstitute evaluates every group of groups that is enabled and whose
// terminals lie on solved buses, storing nominal estimates and residuals on
// the group channels. It returns the groups that received an estimate.
func (m *Model) BackSubstitute(state []complex128, groups []*phasor.Group) ([]*phasor.Group, error) {
	channels := phasor.ChannelsFor(m.Mode)
	out := make([]*phasor.Group, 0, len(groups))
	for _, g := range groups {
		if !g.Enabled || !g.Expected(m.Mode) {
			continue
		}
		est, err := m.Evaluate(g, state)
		if errors.Is(err, ErrUnresolvedTerminal) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("BackSubstitute: %w", err)
		}
		base := g.Base(m.BaseMVA)
		for i, c := range channels {
			g.Channel(c).SetEstimate(phasor.FromPerUnit(est[i], base))
		}
		out = append(out, g)
	}

	return out, nil
}
