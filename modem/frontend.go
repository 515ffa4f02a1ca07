/*
NAME
  frontend.go

DESCRIPTION
  frontend.go conditions a captured waveform before synchronization: DC
  removal, RMS normalization, and a pole-zero bandpass built from two
  cascaded RBJ biquads.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

package modem

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// FrontEnd runs the three-stage signal conditioning pipeline over samples
// and returns a new, conditioned buffer: DC removal, then RMS
// normalization to p.RMSTarget (skipped if the input is effectively
// silent), then a high-pass/low-pass biquad cascade. The input is never
// modified.
func FrontEnd(samples []float32, p Params) []float32 {
	n := len(samples)
	if n == 0 {
		return nil
	}

	xs := make([]float64, n)
	for i, v := range samples {
		xs[i] = float64(v)
	}

	mean := floats.Sum(xs) / float64(n)
	for i := range xs {
		xs[i] -= mean
	}

	if rms := math.Sqrt(floats.Dot(xs, xs) / float64(n)); rms >= 1e-6 {
		floats.Scale(p.RMSTarget/rms, xs)
	}

	fs := float64(p.SampleRate)
	hp := rbjHighpass(p.HPCutoff, fs, p.Q)
	lp := rbjLowpass(p.LPCutoff, fs, p.Q)
	var hpState, lpState biquadState

	out := make([]float32, n)
	for i, x := range xs {
		y := hp.process(x, &hpState)
		y = lp.process(y, &lpState)
		out[i] = float32(y)
	}
	return out
}

// biquadCoeffs holds a normalized (a0 divided out) second-order section.
type biquadCoeffs struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// biquadState is the Transposed Direct Form II delay line. It must be
// reset (its zero value) at the start of every decode pass; filter state
// never crosses calls.
type biquadState struct {
	z1, z2 float64
}

// process implements the TDF2 recurrence:
//
//	y[n]  = b0*x[n] + z1[n-1]
//	z1[n] = b1*x[n] - a1*y[n] + z2[n-1]
//	z2[n] = b2*x[n] - a2*y[n]
func (c biquadCoeffs) process(x float64, st *biquadState) float64 {
	y := c.b0*x + st.z1
	st.z1 = c.b1*x - c.a1*y + st.z2
	st.z2 = c.b2*x - c.a2*y
	return y
}

// rbjHighpass returns the standard Robert Bristow-Johnson cookbook
// high-pass biquad coefficients for corner frequency fc at sample rate fs
// with quality factor q, normalized by a0.
func rbjHighpass(fc, fs, q float64) biquadCoeffs {
	w0 := 2 * math.Pi * fc / fs
	cosw0, sinw0 := math.Cos(w0), math.Sin(w0)
	alpha := sinw0 / (2 * q)

	b0 := (1 + cosw0) / 2
	b1 := -(1 + cosw0)
	b2 := (1 + cosw0) / 2
	a0 := 1 + alpha
	a1 := -2 * cosw0
	a2 := 1 - alpha

	return biquadCoeffs{b0 / a0, b1 / a0, b2 / a0, a1 / a0, a2 / a0}
}

// rbjLowpass returns the standard RBJ cookbook low-pass biquad
// coefficients, normalized by a0.
func rbjLowpass(fc, fs, q float64) biquadCoeffs {
	w0 := 2 * math.Pi * fc / fs
	cosw0, sinw0 := math.Cos(w0), math.Sin(w0)
	alpha := sinw0 / (2 * q)

	b0 := (1 - cosw0) / 2
	b1 := 1 - cosw0
	b2 := (1 - cosw0) / 2
	a0 := 1 + alpha
	a1 := -2 * cosw0
	a2 := 1 - alpha

	return biquadCoeffs{b0 / a0, b1 / a0, b2 / a0, a1 / a0, a2 / a0}
}
