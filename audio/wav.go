/*
NAME
  wav.go

DESCRIPTION
  wav.go provides the audio file I/O collaborator: reading an arbitrary
  WAV file down to mono float32 PCM, and writing 16-bit PCM mono WAV.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

// Package audio is the byte-stream + sample-rate provider collaborator the
// modem core treats as an external boundary: it reads and writes WAV
// files, downmixing arbitrary channel counts to mono on read.
package audio

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

const bitDepth = 16

// Read decodes a WAV file of arbitrary sample rate and channel count into
// mono float32 PCM in [-1, 1], downmixing multi-channel audio by
// arithmetic averaging of channels, and returns the samples alongside the
// file's sample rate.
func Read(r io.Reader) (samples []float32, sampleRate int, err error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("audio: not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, errors.Wrap(err, "audio: read PCM buffer")
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, 0, errors.New("audio: invalid channel count")
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = bitDepth
	}
	fullScale := float64(int(1) << (depth - 1))

	frames := len(buf.Data) / channels
	samples = make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = float32(sum / float64(channels) / fullScale)
	}

	return samples, buf.Format.SampleRate, nil
}

// Write encodes mono float32 PCM samples (clamped to [-1, 1]) as a
// 16-bit PCM mono WAV file at sampleRate.
func Write(w io.WriteSeeker, samples []float32, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)

	data := make([]int, len(samples))
	const fullScale = float64(int(1) << (bitDepth - 1))
	for i, s := range samples {
		v := float64(s)
		switch {
		case v > 1:
			v = 1
		case v < -1:
			v = -1
		}
		data[i] = int(v * (fullScale - 1))
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "audio: write PCM buffer")
	}
	return errors.Wrap(enc.Close(), "audio: close encoder")
}
