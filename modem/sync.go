/*
NAME
  sync.go

DESCRIPTION
  sync.go implements the two-stage synchronizer: a coarse preamble search
  with polarity trial, followed by fine refinement that locks the exact
  sample boundary using the frame's magic token as a known-plaintext
  landmark.

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

	"github.com/covertaudio/steg/codec/frame"
)

// SyncResult is the outcome of the coarse preamble search.
type SyncResult struct {
	Offset  int  // samples from start of capture to the first preamble symbol
	Invert  bool // polarity flag resolved during the search
	Score   int  // number of matching preamble bits, 0..PreambleBits()
	PreBits int  // PreambleBits() at the time of search, for diagnostics
}

// RefinedSync is the outcome of magic-aided fine refinement.
type RefinedSync struct {
	Position int  // sample index of the first header byte's first symbol
	Invert   bool // polarity flag, possibly opposite of the coarse result
}

// CoarseSearch scans candidate offsets in [0, search_max) with step
// max(spb/CoarseStepFrac, 1), scoring both polarities against the known
// alternating preamble pattern at each offset. It keeps the best-scoring
// (offset, invert) seen so far, with ties resolved in favor of the first
// one found, and stops early once a score reaches
// ceil(EarlyStopRatio * PreambleBits()).
func CoarseSearch(samples []float32, p Params) (SyncResult, error) {
	spb := p.SamplesPerBit()
	preBits := p.PreambleBits()
	n := len(samples)

	searchMax := int(math.Round(p.SearchSeconds * float64(p.SampleRate)))
	if searchMax > n {
		searchMax = n
	}

	step := spb / p.CoarseStepFrac
	if step < 1 {
		step = 1
	}

	earlyStop := int(math.Ceil(p.EarlyStopRatio * float64(preBits)))

	best := SyncResult{Offset: -1, PreBits: preBits}
	found := false

	for off := 0; off+preBits*spb <= n && off < searchMax; off += step {
		for _, invert := range [2]bool{false, true} {
			score := 0
			for b := 0; b < preBits; b++ {
				expected := b % 2
				got := DetectSymbol(samples, off+b*spb, p)
				if invert {
					got ^= 1
				}
				if got == expected {
					score++
				}
			}
			if !found || score > best.Score {
				best = SyncResult{Offset: off, Invert: invert, Score: score, PreBits: preBits}
				found = true
			}
			if best.Score >= earlyStop {
				return best, nil
			}
		}
	}

	if !found {
		return SyncResult{}, &SyncNotFoundError{}
	}
	return best, nil
}

// Refine locates the exact sample-accurate start of the data region by
// speculatively decoding four header bytes at candidate offsets within
// +/- one symbol of the expected data-region start (coarse.Offset +
// PreambleBits()*spb), trying the coarse polarity first and then the
// other. It accepts the first candidate whose decoded bytes equal the
// frame magic.
func Refine(samples []float32, p Params, coarse SyncResult) (RefinedSync, error) {
	spb := p.SamplesPerBit()
	preBits := p.PreambleBits()
	n := len(samples)

	base := coarse.Offset + preBits*spb
	step := spb / p.RefineSteps
	if step < 1 {
		step = 1
	}

	polarities := [2]bool{coarse.Invert, !coarse.Invert}

	for delta := -spb; delta <= spb; delta += step {
		pos := base + delta
		if pos < 0 {
			continue
		}
		if pos+32*p.REP*spb > n {
			continue
		}
		for _, invert := range polarities {
			var magic [4]byte
			cur := pos
			for i := range magic {
				magic[i], cur = DecodeByte(samples, cur, p, invert)
			}
			if string(magic[:]) == frame.Magic {
				return RefinedSync{Position: pos, Invert: invert}, nil
			}
		}
	}

	return RefinedSync{}, &MagicNotFoundError{BestScore: coarse.Score, PreBits: preBits}
}
