/*
NAME
  frame.go

DESCRIPTION
  frame.go builds and parses the on-wire byte frame:
  MAGIC | LEN | CIPHERTEXT | CRC32.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

// Package frame builds and parses the fixed frame layout carried over the
// modem: a 4-byte magic, a 4-byte big-endian length, the ciphertext, and a
// 4-byte big-endian CRC-32 covering everything before it.
package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/covertaudio/steg/codec/crc"
)

// Magic is the 4-byte ASCII token that opens every frame and that the
// synchronizer's fine-refinement stage uses as a known-plaintext landmark.
const Magic = "STEG"

// HeaderLen is the size in bytes of MAGIC ‖ LEN.
const HeaderLen = 8

// CRCLen is the size in bytes of the trailing CRC-32 field.
const CRCLen = 4

// LenMax is the default largest ciphertext length a frame may declare,
// used when a caller has no narrower bound of its own (modem.Params.LenMax
// carries the configurable version of this same bound).
const LenMax = 2_000_000

// ErrBadMagic is returned when a header does not begin with Magic.
var ErrBadMagic = errors.New("frame: bad magic")

// BadLenError reports a LEN field of zero or greater than the max passed to
// ParseHeader/Parse.
type BadLenError struct {
	Len uint32
	Max uint32
}

func (e *BadLenError) Error() string {
	return fmt.Sprintf("frame: bad length %d (max %d)", e.Len, e.Max)
}

// CrcMismatchError reports a CRC-32 computed over the decoded frame that
// does not match the CRC-32 carried on the wire.
type CrcMismatchError struct {
	Want uint32 // CRC decoded from the frame
	Got  uint32 // CRC computed over the decoded header+ciphertext
}

func (e *CrcMismatchError) Error() string {
	return fmt.Sprintf("frame: crc mismatch: wire=%#08x computed=%#08x", e.Want, e.Got)
}

// Build returns the serialized frame for the given ciphertext:
// MAGIC ‖ BE32(len(ciphertext)) ‖ ciphertext ‖ BE32(CRC32(MAGIC‖LEN‖ciphertext)).
func Build(ciphertext []byte) []byte {
	buf := make([]byte, HeaderLen, HeaderLen+len(ciphertext)+CRCLen)
	copy(buf[0:4], Magic)
	binary.BigEndian.PutUint32(buf[4:8], uint32(len(ciphertext)))
	buf = append(buf, ciphertext...)

	sum := crc.Checksum(buf)
	crcBuf := make([]byte, CRCLen)
	binary.BigEndian.PutUint32(crcBuf, sum)
	return append(buf, crcBuf...)
}

// ParseHeader validates the first HeaderLen bytes of a frame and returns the
// declared ciphertext length, rejecting a LEN of zero or greater than
// maxLen. It checks the magic and the LEN bound but does not touch the CRC,
// since the receiver driver reads LEN before it knows how many more bytes
// to pull off the demodulator.
func ParseHeader(header []byte, maxLen uint32) (length uint32, err error) {
	if len(header) < HeaderLen {
		return 0, errors.New("frame: short header")
	}
	if string(header[0:4]) != Magic {
		return 0, ErrBadMagic
	}
	length = binary.BigEndian.Uint32(header[4:8])
	if length == 0 || length > maxLen {
		return 0, &BadLenError{Len: length, Max: maxLen}
	}
	return length, nil
}

// Verify checks the CRC-32 of a complete frame (header ‖ ciphertext ‖ crc)
// and, on success, returns the ciphertext slice.
func Verify(full []byte) ([]byte, error) {
	if len(full) < HeaderLen+CRCLen {
		return nil, errors.New("frame: short frame")
	}
	bodyEnd := len(full) - CRCLen
	want := binary.BigEndian.Uint32(full[bodyEnd:])
	got := crc.Checksum(full[:bodyEnd])
	if got != want {
		return nil, &CrcMismatchError{Want: want, Got: got}
	}
	return full[HeaderLen:bodyEnd], nil
}

// Parse is a convenience wrapper combining ParseHeader and Verify over a
// single in-memory buffer (as opposed to the receiver driver, which reads
// the header before it knows how many further bytes to demodulate).
func Parse(full []byte, maxLen uint32) ([]byte, error) {
	length, err := ParseHeader(full, maxLen)
	if err != nil {
		return nil, err
	}
	if len(full) < HeaderLen+int(length)+CRCLen {
		return nil, errors.New("frame: truncated frame")
	}
	return Verify(full[:HeaderLen+int(length)+CRCLen])
}
