/*
NAME
  receiver.go

DESCRIPTION
  receiver.go implements the receiver driver: after synchronization locks
  onto a frame, it decodes the header, body, and CRC, validates them, and
  invokes the crypto adapter. It implements the state machine
  SEARCH_COARSE -> REFINE_MAGIC -> READ_HEADER -> READ_BODY -> READ_CRC ->
  VERIFY -> DECRYPT -> DONE, with no retries on any terminal failure.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

// Package receiver drives a decode pass from a captured waveform to
// plaintext: synchronize, decode the frame, verify it, and decrypt it.
package receiver

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/covertaudio/steg/codec/aescrypt"
	"github.com/covertaudio/steg/codec/frame"
	"github.com/covertaudio/steg/modem"
)

// Diagnostics carries the sync and CRC information surfaced on both
// success and failure, for a CLI or test to report.
type Diagnostics struct {
	Coarse      modem.SyncResult
	Refined     modem.RefinedSync
	HasRefined  bool
	WireCRC     uint32
	ComputedCRC uint32
}

// BadLenError reports a decoded LEN field of zero or greater than
// modem.Params.LenMax.
type BadLenError struct {
	Len uint32
	Max uint32
}

func (e *BadLenError) Error() string {
	return fmt.Sprintf("receiver: bad length %d (max %d)", e.Len, e.Max)
}

// CrcMismatchError reports a CRC computed over the decoded header and
// ciphertext that does not match the CRC carried on the wire.
type CrcMismatchError struct {
	Want uint32
	Got  uint32
}

func (e *CrcMismatchError) Error() string {
	return fmt.Sprintf("receiver: crc mismatch: wire=%#08x computed=%#08x", e.Want, e.Got)
}

// DecryptFailedError wraps a failure from the crypto adapter.
type DecryptFailedError struct {
	Err error
}

func (e *DecryptFailedError) Error() string {
	return "receiver: decrypt failed: " + e.Err.Error()
}

func (e *DecryptFailedError) Unwrap() error { return e.Err }

// Decode runs the full receiver state machine over a captured mono PCM
// buffer: front-end conditioning, coarse search, magic refinement,
// header/body/CRC decode, verification, and decryption. On any terminal
// failure it returns the best Diagnostics gathered before the failure,
// alongside a typed error (*modem.SyncNotFoundError,
// *modem.MagicNotFoundError, *BadLenError, *CrcMismatchError, or
// *DecryptFailedError).
func Decode(samples []float32, p modem.Params) ([]byte, Diagnostics, error) {
	var diag Diagnostics

	if err := p.Validate(); err != nil {
		return nil, diag, err
	}

	conditioned := modem.FrontEnd(samples, p)

	coarse, err := modem.CoarseSearch(conditioned, p)
	if err != nil {
		return nil, diag, err
	}
	diag.Coarse = coarse

	refined, err := modem.Refine(conditioned, p, coarse)
	if err != nil {
		return nil, diag, err
	}
	diag.Refined = refined
	diag.HasRefined = true

	cur := refined.Position

	header := make([]byte, frame.HeaderLen)
	for i := range header {
		header[i], cur = modem.DecodeByte(conditioned, cur, p, refined.Invert)
	}

	length, err := frame.ParseHeader(header, uint32(p.LenMax))
	if err != nil {
		var badLen *frame.BadLenError
		if errors.As(err, &badLen) {
			return nil, diag, &BadLenError{Len: badLen.Len, Max: badLen.Max}
		}
		return nil, diag, errors.Wrap(err, "receiver: header")
	}

	ciphertext := make([]byte, length)
	for i := range ciphertext {
		ciphertext[i], cur = modem.DecodeByte(conditioned, cur, p, refined.Invert)
	}

	crcBytes := make([]byte, frame.CRCLen)
	for i := range crcBytes {
		crcBytes[i], cur = modem.DecodeByte(conditioned, cur, p, refined.Invert)
	}

	full := make([]byte, 0, len(header)+len(ciphertext)+len(crcBytes))
	full = append(full, header...)
	full = append(full, ciphertext...)
	full = append(full, crcBytes...)

	verified, err := frame.Verify(full)
	if err != nil {
		var mismatch *frame.CrcMismatchError
		if errors.As(err, &mismatch) {
			diag.WireCRC = mismatch.Want
			diag.ComputedCRC = mismatch.Got
			return nil, diag, &CrcMismatchError{Want: mismatch.Want, Got: mismatch.Got}
		}
		return nil, diag, errors.Wrap(err, "receiver: verify")
	}

	plain, err := aescrypt.DecryptDefault(verified)
	if err != nil {
		return nil, diag, &DecryptFailedError{Err: err}
	}

	return plain, diag, nil
}

// Encode builds an encrypted, framed BFSK waveform for message, optionally
// mixed with cover (pass nil for no cover mixing).
func Encode(message []byte, cover []float32, p modem.Params) ([]float32, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ciphertext, err := aescrypt.EncryptDefault(message)
	if err != nil {
		return nil, errors.Wrap(err, "receiver: encrypt")
	}

	framed := frame.Build(ciphertext)
	signal := modem.Modulate(framed, p)
	return modem.MixCover(signal, cover, p.CoverGain, p.StegoGain), nil
}
