/*
NAME
  cover.go

DESCRIPTION
  cover.go optionally superimposes the modulated signal on a cover
  waveform.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

package modem

// MixCover combines signal with cover (tiled by modulo when shorter than
// signal) using the fixed scalar gains coverGain and stegoGain, clipping
// the result to [-1, 1]. When cover is empty, signal passes through
// unchanged except for the same clipping.
func MixCover(signal, cover []float32, coverGain, stegoGain float64) []float32 {
	out := make([]float32, len(signal))
	if len(cover) == 0 {
		for i, v := range signal {
			out[i] = clip(v)
		}
		return out
	}

	cg, sg := float32(coverGain), float32(stegoGain)
	L := len(cover)
	for i, v := range signal {
		out[i] = clip(cg*cover[i%L] + sg*v)
	}
	return out
}

func clip(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
