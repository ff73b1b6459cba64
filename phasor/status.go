// SPDX-License-Identifier: MIT
// Package phasor: discrete inputs.
//
// STAT bit layout (IEEE C37.118.2-2011, Table 7). The layout is a protocol
// constant; it is not derived from any particular PMU firmware.
//
//	15-14 data error       00 = good
//	13    PMU sync         1 = not synchronized
//	12    data sorting     1 = by arrival
//	11    PMU trigger
//	10    configuration change pending
//	9     data modified
//	8-6   PMU time quality
//	5-4   unlocked time
//	3-0   trigger reason

package phasor

import (
	"math"

	"github.com/katalvlaran/linse/network"
)

// STAT word masks.
const (
	StatDataErrorMask     uint16 = 0xC000
	StatSyncLost          uint16 = 1 << 13
	StatSortByArrival     uint16 = 1 << 12
	StatTrigger           uint16 = 1 << 11
	StatConfigChange      uint16 = 1 << 10
	StatDataModified      uint16 = 1 << 9
	StatTimeQualityMask   uint16 = 0x01C0
	StatUnlockedMask      uint16 = 0x0030
	StatTriggerReasonMask uint16 = 0x000F
)

// StatusWord is the STAT value of one PMU.
type StatusWord struct {
	Key     string
	Raw     float64
	Present bool
}

// Ingest reads the raw value from frame.
func (s *StatusWord) Ingest(frame Frame) {
	s.Raw, s.Present = frame.Lookup(s.Key)
}

// Bits returns the STAT bitfield.
func (s *StatusWord) Bits() uint16 {
	if !s.Present || s.Raw < 0 || s.Raw > math.MaxUint16 {
		return 0
	}

	return uint16(s.Raw)
}

// DataValid reports whether the word was received, carries no data error and
// the PMU is synchronized.
func (s *StatusWord) DataValid() bool {
	if !s.Present || s.Raw < 0 || s.Raw > math.MaxUint16 {
		return false
	}
	bits := s.Bits()

	return bits&StatDataErrorMask == 0 && bits&StatSyncLost == 0
}

// Flags decodes the informational bits.
type Flags struct {
	DataError     uint16
	SyncLost      bool
	SortByArrival bool
	Trigger       bool
	ConfigChange  bool
	DataModified  bool
	TimeQuality   uint16
	Unlocked      uint16
	TriggerReason uint16
}

// Flags decodes the STAT bitfield.
func (s *StatusWord) Flags() Flags {
	b := s.Bits()

	return Flags{
		DataError:     (b & StatDataErrorMask) >> 14,
		SyncLost:      b&StatSyncLost != 0,
		SortByArrival: b&StatSortByArrival != 0,
		Trigger:       b&StatTrigger != 0,
		ConfigChange:  b&StatConfigChange != 0,
		DataModified:  b&StatDataModified != 0,
		TimeQuality:   (b & StatTimeQualityMask) >> 6,
		Unlocked:      (b & StatUnlockedMask) >> 4,
		TriggerReason: b & StatTriggerReasonMask,
	}
}

// BreakerStatus is the binary status input of one switching device.
// Bit selects the closed flag inside the digital value.
type BreakerStatus struct {
	DeviceID int
	Key      string
	Bit      int

	Value   int64
	Present bool
}

// Ingest reads the digital value from frame.
func (b *BreakerStatus) Ingest(frame Frame) {
	v, ok := frame.Lookup(b.Key)
	b.Present = ok
	if ok {
		b.Value = int64(v)
	}
}

// Binary returns the bit value (0 or 1) of the closed flag.
func (b *BreakerStatus) Binary() int {
	if b.Bit < 0 || b.Bit > 62 {
		return 0
	}

	return int((b.Value >> uint(b.Bit)) & 1)
}

// State converts the binary value into a device state.
func (b *BreakerStatus) State() network.DeviceState {
	if b.Binary() == 1 {
		return network.Closed
	}

	return network.Open
}

// TapPosition is the tap-changer position input of one transformer.
type TapPosition struct {
	TransformerID int
	Key           string

	Value   int
	Present bool
}

// Ingest reads the tap position from frame, rounding to the nearest step.
func (t *TapPosition) Ingest(frame Frame) {
	v, ok := frame.Lookup(t.Key)
	t.Present = ok
	if ok {
		t.Value = int(math.Round(v))
	}
}
