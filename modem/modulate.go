/*
NAME
  modulate.go

DESCRIPTION
  modulate.go converts a byte sequence into a BFSK PCM sample stream:
  preamble plus repetition-coded data symbols, each windowed to reduce
  spectral splatter.

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

	"github.com/mjibson/go-dsp/window"
)

// Modulate renders payload (the framed, encrypted bytes) as a BFSK PCM
// stream. It emits PreambleBits() unrepeated alternating symbols, followed
// by 8*REP*len(payload) data symbols, each spb samples long. Phase is
// accumulated continuously across the whole stream rather than reset at
// each symbol boundary: both this oscillator and the non-coherent detector
// are phase-insensitive, so this is an intentional asymmetry that reduces
// spectral splatter at symbol edges without affecting detection.
func Modulate(payload []byte, p Params) []float32 {
	spb := p.SamplesPerBit()
	preBits := p.PreambleBits()
	totalSymbols := preBits + 8*p.REP*len(payload)
	out := make([]float32, totalSymbols*spb)

	hann := window.Hann(spb)
	fs := float64(p.SampleRate)

	si := 0
	emit := func(bit int) {
		freq := p.F0
		if bit == 1 {
			freq = p.F1
		}
		for s := 0; s < spb; s++ {
			t := float64(si) / fs
			out[si] = float32(p.Amplitude * hann[s] * math.Sin(2*math.Pi*freq*t))
			si++
		}
	}

	for b := 0; b < preBits; b++ {
		emit(b % 2) // alternating 0,1,0,1,... starting with 0
	}

	for _, by := range payload {
		for bit := 7; bit >= 0; bit-- {
			dataBit := int((by >> uint(bit)) & 1)
			for r := 0; r < p.REP; r++ {
				emit(dataBit)
			}
		}
	}

	return out
}
