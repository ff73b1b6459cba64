package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linse/estimator"
	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
	"github.com/katalvlaran/linse/report"
)

var sub1 = network.Owner{Kind: network.OwnerSubstation, ID: 1}

// nodes 1,2 joined by a closed breaker and node 3 behind a transformer;
// V1 measured, V3 disabled.
func setup(t *testing.T) (*network.Network, *phasor.Catalog, *estimator.Result) {
	t.Helper()
	net, err := network.New(network.Description{
		Companies:     []network.Company{{ID: 1}},
		Divisions:     []network.Division{{ID: 1, CompanyID: 1}},
		Substations:   []network.Substation{{ID: 1, DivisionID: 1}},
		VoltageLevels: []network.VoltageLevel{{ID: 1, BaseKV: 230}},
		Nodes: []network.Node{
			{ID: 1, VoltageLevelID: 1, Owner: sub1},
			{ID: 2, VoltageLevelID: 1, Owner: sub1},
			{ID: 3, VoltageLevelID: 1, Owner: sub1},
		},
		Devices: []network.SwitchingDevice{
			{ID: 10, Kind: network.Breaker, Owner: sub1, FromNodeID: 1, ToNodeID: 2, Actual: network.Closed},
		},
		Transformers: []network.Transformer{{ID: 1, SubstationID: 1, FromNodeID: 2, ToNodeID: 3, X: 0.1}},
	})
	require.NoError(t, err)

	groups := []phasor.Group{
		{ID: 1, Key: "V1", Role: phasor.Voltage, NodeID: 1, Enabled: true},
		{ID: 2, Key: "V3", Role: phasor.Voltage, NodeID: 3},
	}
	for i := range groups {
		p := groups[i].Channel(phasor.ChannelPositive)
		p.MagnitudeKey, p.AngleKey = groups[i].Key+".MAG", groups[i].Key+".ANG"
	}
	cat, err := phasor.NewCatalog(net, groups)
	require.NoError(t, err)

	e, err := estimator.New(net, cat)
	require.NoError(t, err)
	res, err := e.Run(context.Background(), phasor.Frame{
		"V1.MAG": phasor.VoltageBase(230), "V1.ANG": 0,
		"V3.MAG": phasor.VoltageBase(230), "V3.ANG": 0,
	})
	require.NoError(t, err)

	return net, cat, res
}

func TestComponentCounts(t *testing.T) {
	net, _, _ := setup(t)
	var buf bytes.Buffer
	require.NoError(t, report.ComponentCounts(&buf, net))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, []string{"COMPONENT", "COUNT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"nodes", "3"}, strings.Fields(lines[5]))
	assert.Equal(t, []string{"breakers", "1"}, strings.Fields(lines[6]))
	assert.Equal(t, []string{"transformers", "1"}, strings.Fields(lines[8]))
}

func TestInclusionStatus(t *testing.T) {
	_, cat, res := setup(t)
	var buf bytes.Buffer
	require.NoError(t, report.InclusionStatus(&buf, cat, res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"V1", "voltage", "1", "yes", "yes", "yes", "yes"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"V3", "voltage", "3", "no", "yes", "no", "no"}, strings.Fields(lines[2]))
}

func TestBuses(t *testing.T) {
	net, _, res := setup(t)
	var buf bytes.Buffer
	require.NoError(t, report.Buses(&buf, net, res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "bus {3} is unobserved and pruned")
	assert.Equal(t, []string{"0", "substation/1", "{1,2}", "1", "direct", "1.0000"}, strings.Fields(lines[1])[:6])
}

func TestMaxResidual(t *testing.T) {
	_, _, res := setup(t)
	_, peak := report.MaxResidual(res, phasor.ModePositiveSequence, phasor.DefaultBaseMVA)
	assert.Less(t, peak, 1e-9)
}
