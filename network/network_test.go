package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linse/network"
)

var sub1 = network.Owner{Kind: network.OwnerSubstation, ID: 1}

// threeNodeSubstation: nodes {1,2,3}, breaker 1↔2 closed, switch 2↔3 open.
func threeNodeSubstation() network.Description {
	return network.Description{
		Companies:     []network.Company{{ID: 1, Name: "Grid"}},
		Divisions:     []network.Division{{ID: 1, CompanyID: 1}},
		Substations:   []network.Substation{{ID: 1, DivisionID: 1, Name: "ALPHA"}},
		VoltageLevels: []network.VoltageLevel{{ID: 1, BaseKV: 500}},
		Nodes: []network.Node{
			{ID: 3, VoltageLevelID: 1, Owner: sub1},
			{ID: 1, VoltageLevelID: 1, Owner: sub1},
			{ID: 2, VoltageLevelID: 1, Owner: sub1},
		},
		Devices: []network.SwitchingDevice{
			{ID: 10, Kind: network.Breaker, Owner: sub1, FromNodeID: 1, ToNodeID: 2, Normal: network.Closed, Actual: network.Closed, StatusKey: "CB10"},
			{ID: 11, Kind: network.Switch, Owner: sub1, FromNodeID: 3, ToNodeID: 2, Normal: network.Open, Actual: network.Open},
		},
	}
}

func TestNew_LinksEntities(t *testing.T) {
	net, err := network.New(threeNodeSubstation())
	require.NoError(t, err)

	n, ok := net.Node(2)
	require.True(t, ok)
	assert.Equal(t, 500.0, n.BaseKV)
	assert.Equal(t, network.Unobserved, n.Observation)

	nodes := net.NodesOf(sub1)
	require.Len(t, nodes, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{nodes[0].ID, nodes[1].ID, nodes[2].ID})

	between := net.DevicesBetween(2, 3)
	require.Len(t, between, 1)
	assert.Equal(t, 11, between[0].ID)
	assert.Empty(t, net.DevicesBetween(1, 3))

	assert.Equal(t, []network.Owner{sub1}, net.Owners())
	c := net.Count()
	assert.Equal(t, 1, c.Breakers)
	assert.Equal(t, 1, c.Switches)
}

func TestNew_StructuralErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(d *network.Description)
		want   error
	}{
		{"device unknown node", func(d *network.Description) { d.Devices[0].ToNodeID = 99 }, network.ErrUnknownNode},
		{"device self loop", func(d *network.Description) { d.Devices[0].ToNodeID = 1 }, network.ErrSelfLoop},
		{"duplicate node", func(d *network.Description) { d.Nodes[0].ID = 1 }, network.ErrDuplicateID},
		{"unknown level", func(d *network.Description) { d.Nodes[0].VoltageLevelID = 7 }, network.ErrUnknownVoltageLevel},
		{"unknown owner", func(d *network.Description) { d.Nodes[0].Owner.ID = 5 }, network.ErrUnknownOwner},
		{"missing kind", func(d *network.Description) { d.Devices[0].Kind = 0 }, network.ErrInvalidDescription},
		{"empty substation", func(d *network.Description) {
			d.Substations = append(d.Substations, network.Substation{ID: 2, DivisionID: 1})
		}, network.ErrEmptySubstation},
		{"owner mismatch", func(d *network.Description) {
			d.Substations = append(d.Substations, network.Substation{ID: 2, DivisionID: 1})
			d.Nodes[0].Owner = network.Owner{Kind: network.OwnerSubstation, ID: 2}
		}, network.ErrOwnerMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := threeNodeSubstation()
			tc.mutate(&d)
			_, err := network.New(d)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSwitchingDevice_Override(t *testing.T) {
	d := network.SwitchingDevice{Kind: network.Breaker, Normal: network.Closed, Actual: network.Closed}

	assert.True(t, d.ApplyStatus(network.Open))
	assert.False(t, d.IsClosed())

	d.Command(network.Closed)
	assert.True(t, d.ManualOverride)
	assert.False(t, d.ApplyStatus(network.Open), "status ignored under override")
	assert.True(t, d.IsClosed())

	d.Release()
	assert.False(t, d.ManualOverride)
	assert.Equal(t, network.Closed, d.Actual)
	assert.True(t, network.Breaker.HasStatusTelemetry())
	assert.False(t, network.Switch.HasStatusTelemetry())
}

func TestTransformer_SetTapPosition(t *testing.T) {
	tr := network.Transformer{ID: 4, FixedTap: 1, TapStepPU: 0.1, NeutralTap: 0}
	require.NoError(t, tr.SetTapPosition(-9))
	assert.Equal(t, -9, tr.TapPosition)
	assert.InDelta(t, 0.1, real(tr.Ratio()), 1e-12)

	for _, pos := range []int{-10, -11, -40} {
		err := tr.SetTapPosition(pos)
		assert.ErrorIs(t, err, network.ErrInvalidTap, "tap %d", pos)
		assert.Equal(t, -9, tr.TapPosition, "rejected tap %d must not move the changer", pos)
	}
}

func TestNew_RejectsNonPositiveTapRatio(t *testing.T) {
	d := threeNodeSubstation()
	d.Transformers = []network.Transformer{{
		ID: 1, SubstationID: 1, FromNodeID: 1, ToNodeID: 3, X: 0.1,
		FixedTap: 1, TapStepPU: 0.05, NeutralTap: 0, TapPosition: -20,
	}}
	_, err := network.New(d)
	assert.ErrorIs(t, err, network.ErrInvalidTap)

	d.Transformers[0].TapPosition = -19
	_, err = network.New(d)
	assert.NoError(t, err)
}

func TestTransformer_Ratio(t *testing.T) {
	tr := network.Transformer{FixedTap: 1, TapStepPU: 0.00625, NeutralTap: 16, TapPosition: 18}
	r := tr.Ratio()
	assert.InDelta(t, 1.0125, real(r), 1e-12)
	assert.InDelta(t, 0, imag(r), 1e-12)

	tr = network.Transformer{PhaseShiftDeg: 90}
	r = tr.Ratio()
	assert.InDelta(t, 0, real(r), 1e-12)
	assert.InDelta(t, 1, imag(r), 1e-12)
}
