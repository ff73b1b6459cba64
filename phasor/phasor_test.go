package phasor_test

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
)

// TestPerUnit_RoundTrip converts random phasors to per-unit and back with one
// base and requires 1e-9 relative agreement.
func TestPerUnit_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		kv := []float64{13.8, 69, 115, 230, 345, 500, 765}[i%7]
		v := phasor.Polar(rng.Float64()*1e6, rng.Float64()*360-180)
		for _, base := range []float64{phasor.VoltageBase(kv), phasor.CurrentBase(kv, phasor.DefaultBaseMVA)} {
			back := phasor.FromPerUnit(phasor.ToPerUnit(v, base), base)
			assert.LessOrEqual(t, cmplx.Abs(back-v), 1e-9*cmplx.Abs(v)+1e-300)
		}
	}
	assert.Equal(t, complex128(0), phasor.ToPerUnit(1, 0))
}

func TestBases(t *testing.T) {
	assert.InDelta(t, 500000/math.Sqrt(3), phasor.VoltageBase(500), 1e-6)
	assert.InDelta(t, 100e6/(math.Sqrt(3)*500e3), phasor.CurrentBase(500, 100), 1e-9)
}

func TestPolar(t *testing.T) {
	mag, ang := phasor.ToPolar(phasor.Polar(2, -30))
	assert.InDelta(t, 2, mag, 1e-12)
	assert.InDelta(t, -30, ang, 1e-12)
}

func TestSequence_RoundTrip(t *testing.T) {
	va, vb, vc := phasor.Polar(1, 0), phasor.Polar(1, -120), phasor.Polar(1, 120)
	z, p, n := phasor.SequenceComponents(va, vb, vc)
	assert.InDelta(t, 0, cmplx.Abs(z), 1e-12)
	assert.InDelta(t, 1, cmplx.Abs(p), 1e-12)
	assert.InDelta(t, 0, cmplx.Abs(n), 1e-12)

	a, b, c := phasor.PhaseComponents(z, p, n)
	assert.InDelta(t, 0, cmplx.Abs(a-va), 1e-12)
	assert.InDelta(t, 0, cmplx.Abs(b-vb), 1e-12)
	assert.InDelta(t, 0, cmplx.Abs(c-vc), 1e-12)
}

func TestStatusWord(t *testing.T) {
	sw := phasor.StatusWord{Key: "STAT"}
	sw.Ingest(phasor.Frame{})
	assert.False(t, sw.DataValid(), "missing word is not valid")

	sw.Ingest(phasor.Frame{"STAT": 0})
	assert.True(t, sw.DataValid())

	sw.Ingest(phasor.Frame{"STAT": float64(phasor.StatDataModified | 0x0003)})
	assert.True(t, sw.DataValid())
	f := sw.Flags()
	assert.True(t, f.DataModified)
	assert.Equal(t, uint16(3), f.TriggerReason)

	sw.Ingest(phasor.Frame{"STAT": float64(0x8000)})
	assert.False(t, sw.DataValid())
	assert.Equal(t, uint16(2), sw.Flags().DataError)

	sw.Ingest(phasor.Frame{"STAT": float64(phasor.StatSyncLost)})
	assert.False(t, sw.DataValid())
}

func TestBreakerStatus(t *testing.T) {
	b := phasor.BreakerStatus{Key: "CB", Bit: 2}
	b.Ingest(phasor.Frame{"CB": 4})
	assert.Equal(t, 1, b.Binary())
	assert.Equal(t, network.Closed, b.State())

	b.Ingest(phasor.Frame{"CB": 3})
	assert.Equal(t, network.Open, b.State())
}

func voltageGroup() phasor.Group {
	g := phasor.Group{ID: 1, Key: "V1", Role: phasor.Voltage, NodeID: 1, Enabled: true}
	g.Channel(phasor.ChannelPositive).MagnitudeKey = "V1.MAG"
	g.Channel(phasor.ChannelPositive).AngleKey = "V1.ANG"
	return g
}

func TestGroup_Included(t *testing.T) {
	g := voltageGroup()
	assert.True(t, g.Expected(phasor.ModePositiveSequence))
	assert.False(t, g.Included(phasor.ModePositiveSequence), "no value yet")

	g.Ingest(phasor.Frame{"V1.MAG": 288000, "V1.ANG": -5})
	assert.True(t, g.Included(phasor.ModePositiveSequence))
	assert.False(t, g.Included(phasor.ModeThreePhase), "phase channels unbound")

	g.SetQuality(false)
	assert.False(t, g.Included(phasor.ModePositiveSequence))
	g.SetQuality(true)

	g.Enabled = false
	assert.False(t, g.Included(phasor.ModePositiveSequence))
	assert.False(t, g.Expected(phasor.ModePositiveSequence))
}

func TestPhasor_EstimateAndResidual(t *testing.T) {
	g := voltageGroup()
	g.Ingest(phasor.Frame{"V1.MAG": 100, "V1.ANG": 0})
	p := g.Channel(phasor.ChannelPositive)
	p.SetEstimate(98)
	assert.Equal(t, complex128(2), p.Residual)

	mag, ang := p.EstimateKeys()
	assert.Equal(t, "V1.MAG.EST", mag)
	assert.Equal(t, "V1.ANG.EST", ang)
	mag, _ = p.ResidualKeys()
	assert.Equal(t, "V1.MAG.RES", mag)

	assert.True(t, p.IngestEstimate(phasor.Frame{"V1.MAG.EST": 3, "V1.ANG.EST": 90}))
	assert.InDelta(t, 3, imag(p.Estimated), 1e-12)
}

func TestCatalog_Binding(t *testing.T) {
	sub := network.Owner{Kind: network.OwnerSubstation, ID: 1}
	net, err := network.New(network.Description{
		Companies:     []network.Company{{ID: 1}},
		Divisions:     []network.Division{{ID: 1, CompanyID: 1}},
		Substations:   []network.Substation{{ID: 1, DivisionID: 1}},
		VoltageLevels: []network.VoltageLevel{{ID: 1, BaseKV: 230}},
		Nodes: []network.Node{
			{ID: 1, VoltageLevelID: 1, Owner: sub},
			{ID: 2, VoltageLevelID: 1, Owner: sub},
		},
		Devices: []network.SwitchingDevice{
			{ID: 5, Kind: network.Breaker, Owner: sub, FromNodeID: 1, ToNodeID: 2, StatusKey: "CB5"},
		},
		Transformers: []network.Transformer{
			{ID: 9, SubstationID: 1, FromNodeID: 1, ToNodeID: 2, X: 0.1, TapKey: "TAP9"},
		},
		Shunts: []network.Shunt{{ID: 4, NodeID: 2, B: 0.2}},
	})
	require.NoError(t, err)

	v := voltageGroup()
	v.StatusWordKey = "PMU1.STAT"
	flow := phasor.Group{ID: 2, Key: "I12", Role: phasor.CurrentFlow, NodeID: 2, ToNodeID: 1,
		BranchKind: network.BranchTransformer, BranchID: 9, Enabled: true}
	inj := phasor.Group{ID: 3, Key: "I2", Role: phasor.CurrentInjection, NodeID: 2, ShuntID: 4}

	c, err := phasor.NewCatalog(net, []phasor.Group{inj, flow, v})
	require.NoError(t, err)
	require.Len(t, c.Voltages, 1)
	require.Len(t, c.CurrentFlows, 1)
	require.Len(t, c.CurrentInjections, 1)
	assert.Equal(t, 230.0, c.Voltages[0].BaseKV)
	require.Len(t, c.Breakers, 1)
	require.Len(t, c.Taps, 1)
	require.Len(t, c.StatusWords, 1)

	assert.Equal(t, []string{"CB5", "PMU1.STAT", "TAP9", "V1.ANG", "V1.MAG"}, c.InputKeys(phasor.ModePositiveSequence))

	c.Ingest(phasor.Frame{"V1.MAG": 1, "V1.ANG": 0, "PMU1.STAT": 0x8000, "CB5": 1, "TAP9": 2.6}, true, false)
	assert.False(t, c.Voltages[0].Included(phasor.ModePositiveSequence), "data error gates the group")
	assert.Equal(t, network.Closed, c.Breakers[0].State())
	assert.Equal(t, 3, c.Taps[0].Value)

	bad := flow
	bad.ToNodeID = 3
	_, err = phasor.NewCatalog(net, []phasor.Group{bad})
	require.ErrorIs(t, err, phasor.ErrRoleMismatch)

	lost := v
	lost.NodeID = 77
	_, err = phasor.NewCatalog(net, []phasor.Group{lost})
	require.ErrorIs(t, err, phasor.ErrUnboundGroup)

	_, err = phasor.NewCatalog(net, []phasor.Group{v, v})
	require.ErrorIs(t, err, phasor.ErrDuplicateKey)
}
