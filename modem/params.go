/*
NAME
  params.go

DESCRIPTION
  params.go defines the modem's shared parameters and the derived
  quantities (samples per bit, preamble length) both endpoints must agree
  on.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

// Package modem implements the BFSK physical layer: modulation,
// demodulation, the signal front-end, and preamble/magic synchronization.
// It is single-threaded and synchronous: every exported function operates
// on a buffer already resident in memory and returns, with no streaming or
// cancellation.
package modem

import (
	"fmt"
	"math"
)

// Params holds the modem's shared configuration. TX and RX must agree on
// F0, F1, BitDuration, PreambleSeconds, and REP; the remaining fields may
// differ between endpoints without breaking interoperability.
type Params struct {
	SampleRate int // samples per second

	F0, F1      float64 // mark/space tone frequencies, Hz
	BitDuration float64 // seconds per symbol
	REP         int     // repetition count per data bit, must be odd

	PreambleSeconds float64 // duration of the alternating preamble
	Amplitude       float64 // peak amplitude of the modulated tone, 0..1

	CoverGain float64 // gain applied to the cover waveform when mixing
	StegoGain float64 // gain applied to the modulated signal when mixing

	SearchSeconds  float64 // coarse-search window, seconds from start of capture
	CoarseStepFrac int     // coarse search step = spb / CoarseStepFrac
	RefineSteps    int     // fine search step = spb / RefineSteps
	EarlyStopRatio float64 // coarse search stops once score/preBits reaches this

	LenMax int // largest permitted ciphertext length

	RMSTarget float64 // target RMS after front-end normalization
	HPCutoff  float64 // high-pass corner, Hz
	LPCutoff  float64 // low-pass corner, Hz
	Q         float64 // biquad quality factor for both corners
}

// DefaultParams returns the recognized default configuration from the
// protocol's external-interface table.
func DefaultParams() Params {
	return Params{
		SampleRate: 44100,

		F0:          1200,
		F1:          2200,
		BitDuration: 0.015,
		REP:         3,

		PreambleSeconds: 1.5,
		Amplitude:       0.87,

		CoverGain: 0.3,
		StegoGain: 0.2,

		SearchSeconds:  3.0,
		CoarseStepFrac: 6,
		RefineSteps:    24,
		EarlyStopRatio: 0.93,

		LenMax: 2_000_000,

		RMSTarget: 0.25,
		HPCutoff:  700,
		LPCutoff:  2600,
		Q:         1 / math.Sqrt2,
	}
}

// SamplesPerBit returns spb = round(fs * bit_duration).
func (p Params) SamplesPerBit() int {
	return int(math.Round(float64(p.SampleRate) * p.BitDuration))
}

// PreambleBits returns round(preamble_seconds / bit_duration), clamped to
// at least 32.
func (p Params) PreambleBits() int {
	n := int(math.Round(p.PreambleSeconds / p.BitDuration))
	if n < 32 {
		n = 32
	}
	return n
}

// Validate checks the invariants required before any encode or decode
// pass: spb >= 40 and REP odd. It returns a *ConfigError describing the
// first violation found.
func (p Params) Validate() error {
	if spb := p.SamplesPerBit(); spb < 40 {
		return &ConfigError{Msg: fmt.Sprintf("samples per bit too small (spb=%d, need >= 40)", spb)}
	}
	if p.REP%2 == 0 {
		return &ConfigError{Msg: fmt.Sprintf("REP must be odd, got %d", p.REP)}
	}
	return nil
}
