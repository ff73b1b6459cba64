// SPDX-License-Identifier: MIT

package gate

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"slices"

	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
	"github.com/katalvlaran/linse/selection"
	"github.com/katalvlaran/linse/topology"
)

// absentRaw stands in for a status word missing from the frame.
const absentRaw = math.MaxUint64

// Snapshot is the discrete state of one cycle. Slices follow catalog and
// network order, which is stable for the lifetime of both.
type Snapshot struct {
	Voltages          []bool
	CurrentFlows      []bool
	CurrentInjections []bool
	Breakers          []int
	StatusWords       []uint64
	Devices           []network.DeviceState
	Taps              []int
	// Layout lists the node IDs of every surviving bus, each bus closed by 0.
	Layout []int
}

// Capture records the snapshot of the current cycle: inclusion flags are
// membership of each catalog group in included, Layout follows buses.
func Capture(cat *phasor.Catalog, net *network.Network, included selection.Selection, buses []topology.ObservedBus) Snapshot {
	s := Snapshot{
		Voltages:          flags(cat.Voltages, included.Voltages),
		CurrentFlows:      flags(cat.CurrentFlows, included.CurrentFlows),
		CurrentInjections: flags(cat.CurrentInjections, included.CurrentInjections),
		Breakers:          make([]int, len(cat.Breakers)),
		StatusWords:       make([]uint64, len(cat.StatusWords)),
		Taps:              make([]int, 0, len(cat.Taps)),
	}
	for i, b := range cat.Breakers {
		s.Breakers[i] = b.Binary()
	}
	for i, w := range cat.StatusWords {
		s.StatusWords[i] = absentRaw
		if w.Present {
			s.StatusWords[i] = math.Float64bits(w.Raw)
		}
	}
	for _, d := range net.Devices() {
		s.Devices = append(s.Devices, d.Actual)
	}
	for _, t := range net.Transformers() {
		s.Taps = append(s.Taps, t.TapPosition)
	}
	for i := range buses {
		s.Layout = append(s.Layout, buses[i].NodeIDs()...)
		s.Layout = append(s.Layout, 0)
	}

	return s
}

func flags(all, included []*phasor.Group) []bool {
	set := make(map[*phasor.Group]struct{}, len(included))
	for _, g := range included {
		set[g] = struct{}{}
	}
	out := make([]bool, len(all))
	for i, g := range all {
		_, out[i] = set[g]
	}

	return out
}

// Equal reports exact equality of both snapshots.
func (s Snapshot) Equal(o Snapshot) bool {
	return slices.Equal(s.Voltages, o.Voltages) &&
		slices.Equal(s.CurrentFlows, o.CurrentFlows) &&
		slices.Equal(s.CurrentInjections, o.CurrentInjections) &&
		slices.Equal(s.Breakers, o.Breakers) &&
		slices.Equal(s.StatusWords, o.StatusWords) &&
		slices.Equal(s.Devices, o.Devices) &&
		slices.Equal(s.Taps, o.Taps) &&
		slices.Equal(s.Layout, o.Layout)
}

// Fingerprint hashes the snapshot with FNV-64a. Every section is prefixed by
// its length so that shifting an entry between sections changes the hash.
func (s Snapshot) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	for _, sec := range [][]bool{s.Voltages, s.CurrentFlows, s.CurrentInjections} {
		put(uint64(len(sec)))
		for _, f := range sec {
			if f {
				put(1)
			} else {
				put(0)
			}
		}
	}
	put(uint64(len(s.Breakers)))
	for _, v := range s.Breakers {
		put(uint64(v))
	}
	put(uint64(len(s.StatusWords)))
	for _, v := range s.StatusWords {
		put(v)
	}
	put(uint64(len(s.Devices)))
	for _, v := range s.Devices {
		put(uint64(v))
	}
	put(uint64(len(s.Taps)))
	for _, v := range s.Taps {
		put(uint64(int64(v)))
	}
	put(uint64(len(s.Layout)))
	for _, v := range s.Layout {
		put(uint64(v))
	}

	return h.Sum64()
}
