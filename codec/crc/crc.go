/*
NAME
  crc.go

DESCRIPTION
  crc.go computes the CRC-32 checksum used to integrity-check a frame.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

// Package crc computes the standard CRC-32 (IEEE 802.3) checksum used to
// integrity-check a frame. The table is built once, on first use, and
// reused for the lifetime of the process.
package crc

import (
	"sync"

	"github.com/snksoft/crc"
)

// ieeeParams are the CRC-32 (IEEE 802.3 / zlib / Ethernet) parameters:
// reversed polynomial 0xEDB88320, init 0xFFFFFFFF, reflected input and
// output, final XOR 0xFFFFFFFF. snksoft/crc takes the normal (non-reversed)
// polynomial and performs the bit reflection itself.
var ieeeParams = &crc.Parameters{
	Width:      32,
	Polynomial: 0x04C11DB7,
	Init:       0xFFFFFFFF,
	ReflectIn:  true,
	ReflectOut: true,
	FinalXor:   0xFFFFFFFF,
}

var (
	once     sync.Once
	ieeeHash *crc.Hash
)

func hash() *crc.Hash {
	once.Do(func() {
		ieeeHash = crc.NewHash(ieeeParams)
	})
	return ieeeHash
}

// Checksum returns the CRC-32 (IEEE 802.3) checksum of data.
func Checksum(data []byte) uint32 {
	return uint32(hash().CalculateCRC(data))
}
