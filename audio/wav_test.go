package audio

import (
	"bytes"
	"math"
	"testing"
)

// seekBuffer is an in-memory io.WriteSeeker over a byte slice, as required
// by wav.NewEncoder.
type seekBuffer struct {
	buf []byte
	pos int64
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	n := copy(s.buf[s.pos:end], p)
	s.pos = end
	return n, nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		s.pos = offset
	case 1:
		s.pos += offset
	case 2:
		s.pos = int64(len(s.buf)) + offset
	}
	return s.pos, nil
}

func TestWriteReadRoundTrip(t *testing.T) {
	const sampleRate = 44100
	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/sampleRate))
	}

	sb := &seekBuffer{}
	if err := Write(sb, samples, sampleRate); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, rate, err := Read(bytes.NewReader(sb.buf))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if rate != sampleRate {
		t.Errorf("sampleRate = %d, want %d", rate, sampleRate)
	}
	if len(got) != len(samples) {
		t.Fatalf("len(samples) = %d, want %d", len(got), len(samples))
	}
	for i := range samples {
		if diff := math.Abs(float64(got[i] - samples[i])); diff > 0.01 {
			t.Fatalf("sample[%d] = %v, want ~%v (quantization tolerance)", i, got[i], samples[i])
		}
	}
}

func TestReadRejectsNonWAV(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte("not a wav file")))
	if err == nil {
		t.Fatal("Read() on garbage input succeeded, want an error")
	}
}

func TestWriteClampsOutOfRangeSamples(t *testing.T) {
	sb := &seekBuffer{}
	samples := []float32{2.0, -2.0, 0}
	if err := Write(sb, samples, 8000); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, _, err := Read(bytes.NewReader(sb.buf))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got[0] <= 0.9 {
		t.Errorf("clamped positive sample = %v, want close to 1", got[0])
	}
	if got[1] >= -0.9 {
		t.Errorf("clamped negative sample = %v, want close to -1", got[1])
	}
}
