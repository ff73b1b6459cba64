// SPDX-License-Identifier: MIT

package phasor

// Key suffixes for derived output keys.
const (
	EstimateSuffix = ".EST"
	ResidualSuffix = ".RES"
)

// Phasor is one channel of a Group. Values are nominal (volts or amperes).
//
// Valid is set by Ingest when both keys were present and finite in the frame;
// Residual is Measured − Estimated and is only meaningful when Valid.
type Phasor struct {
	MagnitudeKey string
	AngleKey     string

	// Optional explicit estimate keys; derived from the measurement keys when empty.
	EstimateMagnitudeKey string
	EstimateAngleKey     string

	Measured  complex128
	Estimated complex128
	Residual  complex128
	Valid     bool
}

// Bound reports whether both measurement keys are configured.
func (p *Phasor) Bound() bool { return p.MagnitudeKey != "" && p.AngleKey != "" }

// Ingest reads the measured value from frame and updates Valid.
func (p *Phasor) Ingest(frame Frame) {
	mag, okM := frame.Lookup(p.MagnitudeKey)
	ang, okA := frame.Lookup(p.AngleKey)
	p.Valid = okM && okA && mag > 0
	if p.Valid {
		p.Measured = Polar(mag, ang)
	}
}

// IngestEstimate reads a previously published estimate from frame, if present.
func (p *Phasor) IngestEstimate(frame Frame) bool {
	magKey, angKey := p.EstimateKeys()
	mag, okM := frame.Lookup(magKey)
	ang, okA := frame.Lookup(angKey)
	if !okM || !okA {
		return false
	}
	p.Estimated = Polar(mag, ang)

	return true
}

// SetEstimate stores the estimate and refreshes the residual.
func (p *Phasor) SetEstimate(v complex128) {
	p.Estimated = v
	if p.Valid {
		p.Residual = p.Measured - v
		return
	}
	p.Residual = 0
}

// EstimateKeys returns the output keys of the estimate.
func (p *Phasor) EstimateKeys() (string, string) {
	mag, ang := p.EstimateMagnitudeKey, p.EstimateAngleKey
	if mag == "" && p.MagnitudeKey != "" {
		mag = p.MagnitudeKey + EstimateSuffix
	}
	if ang == "" && p.AngleKey != "" {
		ang = p.AngleKey + EstimateSuffix
	}

	return mag, ang
}

// ResidualKeys returns the output keys of the residual.
func (p *Phasor) ResidualKeys() (string, string) {
	var mag, ang string
	if p.MagnitudeKey != "" {
		mag = p.MagnitudeKey + ResidualSuffix
	}
	if p.AngleKey != "" {
		ang = p.AngleKey + ResidualSuffix
	}

	return mag, ang
}
