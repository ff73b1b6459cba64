package estimator_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
)

const (
	baseKV  = 230.0
	baseMVA = 100.0
	tol     = 1e-9
)

var (
	sub1 = network.Owner{Kind: network.OwnerSubstation, ID: 1}
	sub2 = network.Owner{Kind: network.OwnerSubstation, ID: 2}

	// true per-unit state
	v12 = complex(1, 0)
	v3  = phasor.Polar(0.98, -3)

	// line segment 2→3 and shunt at 3
	ySeries = 1 / complex(0.01, 0.1)
	bLine   = 0.02
	yShunt  = complex(0, 0.05)

	shift = phasor.Polar(1, -120) // phase B = A·shift, C = A·conj(shift)
)

// twoSubstations: sub1 {1,2} joined by breaker 10 (CB10), sub2 {3};
// segment 1 from 2 to 3, shunt 1 at 3.
func twoSubstations(t testing.TB) *network.Network {
	t.Helper()
	net, err := buildNetwork()
	require.NoError(t, err)

	return net
}

func buildNetwork() (*network.Network, error) {
	return network.New(description())
}

// networkWith builds the fixture after mutate edits its description.
func networkWith(t testing.TB, mutate func(d *network.Description)) *network.Network {
	t.Helper()
	d := description()
	mutate(&d)
	net, err := network.New(d)
	require.NoError(t, err)

	return net
}

func description() network.Description {
	return network.Description{
		Companies:     []network.Company{{ID: 1, Name: "Grid"}},
		Divisions:     []network.Division{{ID: 1, CompanyID: 1}},
		Substations:   []network.Substation{{ID: 1, DivisionID: 1, Name: "ALPHA"}, {ID: 2, DivisionID: 1, Name: "BETA"}},
		Lines:         []network.TransmissionLine{{ID: 1, DivisionID: 1, FromSubstationID: 1, ToSubstationID: 2}},
		VoltageLevels: []network.VoltageLevel{{ID: 1, BaseKV: baseKV}},
		Nodes: []network.Node{
			{ID: 1, VoltageLevelID: 1, Owner: sub1},
			{ID: 2, VoltageLevelID: 1, Owner: sub1},
			{ID: 3, VoltageLevelID: 1, Owner: sub2},
		},
		Devices: []network.SwitchingDevice{{
			ID: 10, Kind: network.Breaker, Owner: sub1, FromNodeID: 1, ToNodeID: 2,
			Normal: network.Closed, Actual: network.Closed, StatusKey: "CB10",
		}},
		Segments: []network.LineSegment{{
			ID: 1, LineID: 1, FromNodeID: 2, ToNodeID: 3,
			R: 0.01, X: 0.1, B: bLine, R0: 0.03, X0: 0.3, B0: 0.012,
		}},
		Shunts: []network.Shunt{{ID: 1, NodeID: 3, B: imag(yShunt)}},
	}
}

// bind configures positive-sequence and phase channels of g under key.
func bind(g *phasor.Group) {
	pos := g.Channel(phasor.ChannelPositive)
	pos.MagnitudeKey, pos.AngleKey = g.Key+".MAG", g.Key+".ANG"
	for _, c := range []phasor.Channel{phasor.ChannelA, phasor.ChannelB, phasor.ChannelC} {
		p := g.Channel(c)
		p.MagnitudeKey, p.AngleKey = g.Key+c.String()+".MAG", g.Key+c.String()+".ANG"
	}
}

func catalog(t testing.TB, net *network.Network) *phasor.Catalog {
	t.Helper()
	cat, err := buildCatalog(net)
	require.NoError(t, err)

	return cat
}

func buildCatalog(net *network.Network) (*phasor.Catalog, error) {
	groups := []phasor.Group{
		{ID: 1, Key: "V1", Role: phasor.Voltage, NodeID: 1, Enabled: true},
		{ID: 2, Key: "V2", Role: phasor.Voltage, NodeID: 2, Enabled: true},
		{ID: 3, Key: "I23", Role: phasor.CurrentFlow, NodeID: 2, ToNodeID: 3,
			BranchKind: network.BranchLineSegment, BranchID: 1, Enabled: true},
		{ID: 4, Key: "S3", Role: phasor.CurrentInjection, NodeID: 3, ShuntID: 1, Enabled: true},
	}
	for i := range groups {
		bind(&groups[i])
	}
	return phasor.NewCatalog(net, groups)
}

func put(f phasor.Frame, key string, nominal complex128) {
	f[key+".MAG"], f[key+".ANG"] = phasor.ToPolar(nominal)
}

var (
	vBase = phasor.VoltageBase(baseKV)
	iBase = phasor.CurrentBase(baseKV, baseMVA)
)

func flow23(vf, vt complex128) complex128 {
	return ySeries*(vf-vt) + complex(0, bLine/2)*vf
}

// frame returns noise-free positive-sequence and balanced phase values of
// V1, I23 and S3 plus breaker 10 closed. V2 is never published.
func frame() phasor.Frame {
	f := phasor.Frame{"CB10": 1}
	values := map[string]complex128{
		"V1":  v12 * complex(vBase, 0),
		"I23": flow23(v12, v3) * complex(iBase, 0),
		"S3":  yShunt * v3 * complex(iBase, 0),
	}
	for key, v := range values {
		put(f, key, v)
		put(f, key+"A", v)
		put(f, key+"B", v*shift)
		put(f, key+"C", v*cmplx.Conj(shift))
	}

	return f
}

func without(f phasor.Frame, keys ...string) phasor.Frame {
	out := make(phasor.Frame, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}

	return out
}

func near(a, b complex128) bool { return cmplx.Abs(a-b) < tol }
