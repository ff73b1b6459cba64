package gate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linse/gate"
	"github.com/katalvlaran/linse/matrix"
	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
	"github.com/katalvlaran/linse/selection"
	"github.com/katalvlaran/linse/topology"
)

var sub1 = network.Owner{Kind: network.OwnerSubstation, ID: 1}

func fixture(t *testing.T) (*network.Network, *phasor.Catalog) {
	t.Helper()
	desc := network.Description{
		Companies:     []network.Company{{ID: 1}},
		Divisions:     []network.Division{{ID: 1, CompanyID: 1}},
		Substations:   []network.Substation{{ID: 1, DivisionID: 1}},
		VoltageLevels: []network.VoltageLevel{{ID: 1, BaseKV: 230}},
		Nodes: []network.Node{
			{ID: 1, VoltageLevelID: 1, Owner: sub1},
			{ID: 2, VoltageLevelID: 1, Owner: sub1},
		},
		Devices: []network.SwitchingDevice{
			{ID: 10, Kind: network.Breaker, Owner: sub1, FromNodeID: 1, ToNodeID: 2, Actual: network.Closed, StatusKey: "CB10"},
		},
	}
	net, err := network.New(desc)
	require.NoError(t, err)

	v := phasor.Group{ID: 1, Key: "V1", Role: phasor.Voltage, NodeID: 1, Enabled: true, StatusWordKey: "PMU.STAT"}
	v.Channel(phasor.ChannelPositive).MagnitudeKey = "V1.MAG"
	v.Channel(phasor.ChannelPositive).AngleKey = "V1.ANG"
	cat, err := phasor.NewCatalog(net, []phasor.Group{v})
	require.NoError(t, err)

	return net, cat
}

func capture(net *network.Network, cat *phasor.Catalog, frame phasor.Frame) gate.Snapshot {
	cat.Ingest(frame, true, false)
	active := selection.Selector{}.Active(cat)

	buses, _ := topology.ResolveNetwork(net)

	return gate.Capture(cat, net, active, buses)
}

func frame(breaker float64) phasor.Frame {
	return phasor.Frame{"V1.MAG": 1, "V1.ANG": 0, "PMU.STAT": 0, "CB10": breaker}
}

func TestGate_DetectsSingleBreakerFlip(t *testing.T) {
	net, cat := fixture(t)
	var g gate.Gate

	s1 := capture(net, cat, frame(1))
	assert.True(t, g.Changed(s1), "first snapshot always changes")
	assert.False(t, g.Changed(capture(net, cat, frame(1))))

	s2 := capture(net, cat, frame(0))
	assert.NotEqual(t, s1.Fingerprint(), s2.Fingerprint())
	assert.True(t, g.Changed(s2))
	assert.False(t, g.Changed(s2))

	g.Reset()
	assert.True(t, g.Changed(s2))
}

func TestGate_MatchesDoesNotAccept(t *testing.T) {
	net, cat := fixture(t)
	var g gate.Gate
	closed := capture(net, cat, frame(1))
	open := capture(net, cat, frame(0))

	assert.False(t, g.Matches(closed))
	assert.Zero(t, g.Fingerprint())
	g.Accept(closed)
	assert.True(t, g.Matches(closed))
	assert.Equal(t, closed.Fingerprint(), g.Fingerprint())

	assert.False(t, g.Matches(open))
	assert.True(t, g.Matches(closed), "a failed match keeps the accepted snapshot")
}

func TestSnapshot_InclusionAndStatusWord(t *testing.T) {
	net, cat := fixture(t)
	base := capture(net, cat, frame(1))
	assert.Equal(t, []bool{true}, base.Voltages)
	assert.Equal(t, []int{1}, base.Breakers)

	f := frame(1)
	delete(f, "V1.MAG")
	missing := capture(net, cat, f)
	assert.Equal(t, []bool{false}, missing.Voltages)
	assert.False(t, base.Equal(missing))

	f = frame(1)
	f["PMU.STAT"] = float64(phasor.StatTrigger) // quality unaffected, raw differs
	trig := capture(net, cat, f)
	assert.Equal(t, []bool{true}, trig.Voltages)
	assert.False(t, base.Equal(trig))

	f = frame(1)
	delete(f, "PMU.STAT")
	assert.False(t, base.Equal(capture(net, cat, f)))
}

func TestSnapshot_DeviceAndTapState(t *testing.T) {
	net, cat := fixture(t)
	base := capture(net, cat, frame(1))

	d, _ := net.Device(10)
	d.Command(network.Open)
	cmd := capture(net, cat, frame(1))
	assert.Equal(t, []network.DeviceState{network.Open}, cmd.Devices)
	assert.False(t, base.Equal(cmd))
	assert.Equal(t, base.Breakers, cmd.Breakers)
	assert.Equal(t, []int{1, 2, 0}, base.Layout)
	assert.Equal(t, []int{1, 0, 2, 0}, cmd.Layout)
}

func TestCache_ReusesSameObject(t *testing.T) {
	net, cat := fixture(t)
	var (
		c     gate.Cache[*matrix.Dense]
		calls int
	)
	build := func() (*matrix.Dense, error) {
		calls++
		return matrix.NewIdentity(2)
	}

	m1, rebuilt, err := c.Get(capture(net, cat, frame(1)), build)
	require.NoError(t, err)
	assert.True(t, rebuilt)

	m2, rebuilt, err := c.Get(capture(net, cat, frame(1)), build)
	require.NoError(t, err)
	assert.False(t, rebuilt)
	assert.Same(t, m1, m2)
	assert.Equal(t, 1, calls)

	m3, rebuilt, err := c.Get(capture(net, cat, frame(0)), build)
	require.NoError(t, err)
	assert.True(t, rebuilt)
	assert.NotSame(t, m1, m3)
	assert.Equal(t, 2, calls)
}

func TestCache_FailedBuildLeavesCache(t *testing.T) {
	net, cat := fixture(t)
	var c gate.Cache[int]
	s1 := capture(net, cat, frame(1))
	s2 := capture(net, cat, frame(0))

	v, _, err := c.Get(s1, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	fp := c.Fingerprint()

	boom := errors.New("boom")
	_, rebuilt, err := c.Get(s2, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, rebuilt)
	assert.Equal(t, fp, c.Fingerprint())

	got, ok := c.Value()
	assert.True(t, ok)
	assert.Equal(t, v, got)

	v, rebuilt, err = c.Get(s1, func() (int, error) { return 9, nil })
	require.NoError(t, err)
	assert.False(t, rebuilt)
	assert.Equal(t, 7, v)

	c.Invalidate()
	_, ok = c.Value()
	assert.False(t, ok)
}
