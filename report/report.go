// SPDX-License-Identifier: MIT

// Package report renders diagnostic tables of a network and of one
// estimation cycle.
package report

import (
	"fmt"
	"io"
	"math/cmplx"
	"text/tabwriter"

	"github.com/katalvlaran/linse/estimator"
	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
	"github.com/katalvlaran/linse/topology"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// ComponentCounts writes the entity cardinalities of net.
func ComponentCounts(w io.Writer, net *network.Network) error {
	c := net.Count()
	tw := table(w)
	rows := []struct {
		name string
		n    int
	}{
		{"companies", c.Companies},
		{"divisions", c.Divisions},
		{"substations", c.Substations},
		{"lines", c.Lines},
		{"nodes", c.Nodes},
		{"breakers", c.Breakers},
		{"switches", c.Switches},
		{"transformers", c.Transformers},
		{"segments", c.Segments},
		{"shunts", c.Shunts},
	}
	fmt.Fprintln(tw, "COMPONENT\tCOUNT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", r.name, r.n)
	}

	return tw.Flush()
}

// InclusionStatus writes one line per catalog group with its enable flag,
// status-word quality and the stage it reached in res.
func InclusionStatus(w io.Writer, cat *phasor.Catalog, res *estimator.Result) error {
	tw := table(w)
	fmt.Fprintln(tw, "GROUP\tROLE\tNODE\tENABLED\tQUALITY\tACTIVE\tINCLUDED")
	for _, g := range cat.Groups() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			g.Key, g.Role, g.NodeID,
			yesNo(g.Enabled), yesNo(g.Quality()),
			yesNo(res.Active.Contains(g)), yesNo(res.Included.Contains(g)))
	}

	return tw.Flush()
}

// Buses writes the solved buses of res with their island, observation and
// per-unit estimate (first channel).
func Buses(w io.Writer, net *network.Network, res *estimator.Result) error {
	island := make(map[int]int)
	for n, members := range topology.Islands(net, res.Buses) {
		for _, b := range members {
			island[b] = n + 1
		}
	}

	tw := table(w)
	fmt.Fprintln(tw, "BUS\tOWNER\tNODES\tISLAND\tOBSERVATION\t|V| PU\tANGLE DEG")
	for i := range res.Buses {
		b := &res.Buses[i]
		var mag, ang float64
		if len(b.Estimate) > 0 {
			mag, ang = phasor.ToPolar(b.Estimate[0])
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%.4f\t%.2f\n",
			i, b.Owner, b.Cluster, island[i], b.Observation, mag, ang)
	}

	return tw.Flush()
}

// MaxResidual returns the key and per-unit magnitude of the largest residual
// among the included groups of res.
func MaxResidual(res *estimator.Result, mode phasor.PhaseMode, baseMVA float64) (string, float64) {
	var (
		key  string
		peak float64
	)
	for _, list := range [][]*phasor.Group{res.Included.Voltages, res.Included.CurrentFlows, res.Included.CurrentInjections} {
		for _, g := range list {
			base := g.Base(baseMVA)
			for _, c := range phasor.ChannelsFor(mode) {
				r := cmplx.Abs(phasor.ToPerUnit(g.Channel(c).Residual, base))
				if r > peak {
					key, peak = g.Channel(c).MagnitudeKey, r
				}
			}
		}
	}

	return key, peak
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
