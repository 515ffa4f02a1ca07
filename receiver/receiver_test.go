package receiver

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"

	"pgregory.net/rapid"

	"github.com/covertaudio/steg/modem"
)

func TestRoundTripShortMessage(t *testing.T) {
	p := modem.DefaultParams()
	msg := []byte("A")

	signal, err := Encode(msg, nil, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, _, err := Decode(signal, p)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("Decode() = %q, want %q", got, msg)
	}
}

func TestRoundTripLongerMessage(t *testing.T) {
	p := modem.DefaultParams()
	msg := []byte("hello, this is a covert message")

	signal, err := Encode(msg, nil, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, _, err := Decode(signal, p)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("Decode() = %q, want %q", got, msg)
	}
}

func TestRoundTripWithCover(t *testing.T) {
	p := modem.DefaultParams()
	msg := []byte("hidden")

	cover := make([]float32, p.SampleRate) // 1s of silence as a stand-in cover track
	signal, err := Encode(msg, cover, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, _, err := Decode(signal, p)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("Decode() = %q, want %q", got, msg)
	}
}

func TestRoundTripWithLeadingSilence(t *testing.T) {
	p := modem.DefaultParams()
	msg := []byte("hello")

	signal, err := Encode(msg, nil, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	lead := make([]float32, p.SampleRate/2) // 0.5s
	signal = append(lead, signal...)

	got, _, err := Decode(signal, p)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("Decode() = %q, want %q", got, msg)
	}
}

// TestDecodePolarityInvariance checks decode(negate(encode(M))) == M. The
// non-coherent energy detector is unchanged by negating the waveform, so
// coarse search and refinement lock with the same invert flag as for the
// original signal.
func TestDecodePolarityInvariance(t *testing.T) {
	p := modem.DefaultParams()
	msg := []byte("hello")

	signal, err := Encode(msg, nil, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for i, v := range signal {
		signal[i] = -v
	}

	got, _, err := Decode(signal, p)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("Decode(negate(encode(%q))) = %q, want %q", msg, got, msg)
	}
}

func TestDecodeRejectsFlippedCiphertextBit(t *testing.T) {
	p := modem.DefaultParams()
	msg := []byte("hello")

	signal, err := Encode(msg, nil, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	conditioned := modem.FrontEnd(signal, p)
	coarse, err := modem.CoarseSearch(conditioned, p)
	if err != nil {
		t.Fatalf("CoarseSearch() error = %v", err)
	}
	refined, err := modem.Refine(conditioned, p, coarse)
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}

	// Overwrite all REP repeated symbols of the first ciphertext bit (past
	// the 8-byte header) with the opposite tone, so the decoded bit flips and
	// the CRC no longer matches the decoded body. The non-coherent energy
	// detector only distinguishes which tone dominates, so a sign flip
	// alone would not corrupt anything; synthesizing the other tone does.
	spb := p.SamplesPerBit()
	fs := float64(p.SampleRate)
	symbolStart := refined.Position + 8*p.REP*spb*8 // 8 header bytes in, start of ciphertext
	bit := modem.DetectSymbol(conditioned, symbolStart, p)
	oppositeFreq := p.F0
	if bit == 0 {
		oppositeFreq = p.F1
	}
	for r := 0; r < p.REP; r++ {
		base := symbolStart + r*spb
		for s := 0; s < spb; s++ {
			t := float64(base+s) / fs
			signal[base+s] = float32(p.Amplitude * math.Sin(2*math.Pi*oppositeFreq*t))
		}
	}

	_, diag, err := Decode(signal, p)
	var mismatch *CrcMismatchError
	if err == nil {
		t.Fatal("Decode() after bit flip succeeded, want an error")
	}
	if !errors.As(err, &mismatch) {
		// A flipped bit can, depending on position, also corrupt LEN and
		// surface as a BadLenError instead; both indicate the tamper was
		// caught.
		var badLen *BadLenError
		if !errors.As(err, &badLen) {
			t.Fatalf("Decode() error = %v, want *CrcMismatchError or *BadLenError", err)
		}
		return
	}
	if diag.WireCRC == diag.ComputedCRC {
		t.Errorf("diag CRCs equal (%#08x) despite mismatch error", diag.WireCRC)
	}
}

func TestDecodeEmptyCaptureFails(t *testing.T) {
	p := modem.DefaultParams()
	_, _, err := Decode(make([]float32, 100), p)
	if err == nil {
		t.Fatal("Decode() on tiny capture succeeded, want an error")
	}
}

func TestEncodeRejectsBadParams(t *testing.T) {
	p := modem.DefaultParams()
	p.REP = 2
	if _, err := Encode([]byte("x"), nil, p); err == nil {
		t.Fatal("Encode() with even REP succeeded, want a config error")
	}
}

// TestRoundTripProperty checks that Encode followed by Decode recovers the
// original message for any byte slice in a modest length range, across
// many randomly generated messages.
func TestRoundTripProperty(t *testing.T) {
	p := modem.DefaultParams()
	rapid.Check(t, func(rt *rapid.T) {
		// LenMax/BadLenError forbids a zero-length ciphertext, so the
		// smallest valid message is one byte.
		msg := rapid.SliceOfN(rapid.Byte(), 1, 48).Draw(rt, "msg")

		signal, err := Encode(msg, nil, p)
		if err != nil {
			rt.Fatalf("Encode() error = %v", err)
		}
		got, _, err := Decode(signal, p)
		if err != nil {
			rt.Fatalf("Decode() error = %v", err)
		}
		if !bytes.Equal(got, msg) {
			rt.Fatalf("Decode() = %q, want %q", got, msg)
		}
	})
}

// TestRoundTripLargeMessage covers the 1025-byte scenario: a ciphertext
// length with a nonzero high byte in the LEN field, round-tripped exactly.
func TestRoundTripLargeMessage(t *testing.T) {
	p := modem.DefaultParams()
	msg := make([]byte, 1025)
	for i := range msg {
		msg[i] = byte(i)
	}

	signal, err := Encode(msg, nil, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, _, err := Decode(signal, p)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 1025 {
		t.Fatalf("len(Decode()) = %d, want 1025", len(got))
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("Decode() did not round-trip the 1025-byte message exactly")
	}
}

// TestRoundTripWithAdditiveNoise adds deterministic low-amplitude
// Gaussian-ish noise to the modulated signal before decode, exercising the
// repetition-decode majority path rather than the all-or-nothing symbol
// overwrite in TestDecodeRejectsFlippedCiphertextBit.
func TestRoundTripWithAdditiveNoise(t *testing.T) {
	p := modem.DefaultParams()
	msg := []byte("hello, noisy channel")

	signal, err := Encode(msg, nil, p)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	const noiseAmplitude = 0.05
	for i := range signal {
		signal[i] += float32(noiseAmplitude * rng.NormFloat64())
	}

	got, _, err := Decode(signal, p)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("Decode() under additive noise = %q, want %q", got, msg)
	}
}
