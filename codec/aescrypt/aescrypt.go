/*
NAME
  aescrypt.go

DESCRIPTION
  aescrypt.go is a thin adapter over AES-256 in counter mode, providing the
  encrypt/decrypt oracle the frame codec treats as opaque.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

// Package aescrypt wraps AES-256-CTR for use as the frame's symmetric
// cipher. CTR mode is length-preserving: len(cipher) == len(plain).
//
// The reference key and IV are fixed ASCII-decimal constants, per the
// protocol's design notes. This is intentional for demonstration and is
// cryptographically wrong for anything beyond it (CTR reuse leaks plaintext
// XORs); a real deployment would negotiate a key and transmit a fresh nonce
// per frame.
package aescrypt

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/pkg/errors"
)

// DefaultKey and DefaultIV are the fixed 32-byte key and 16-byte IV used by
// both endpoints of the reference protocol.
var (
	DefaultKey = []byte("01234567890123456789012345678901")
	DefaultIV  = []byte("0123456789012345")
)

// Encrypt returns the AES-256-CTR encryption of plain under key and iv.
func Encrypt(key, iv, plain []byte) ([]byte, error) {
	return xorKeystream(key, iv, plain)
}

// Decrypt returns the AES-256-CTR decryption of ciphertext under key and iv.
// CTR is its own inverse, so this is identical to Encrypt.
func Decrypt(key, iv, ciphertext []byte) ([]byte, error) {
	return xorKeystream(key, iv, ciphertext)
}

// EncryptDefault encrypts plain using DefaultKey and DefaultIV.
func EncryptDefault(plain []byte) ([]byte, error) {
	return Encrypt(DefaultKey, DefaultIV, plain)
}

// DecryptDefault decrypts ciphertext using DefaultKey and DefaultIV.
func DecryptDefault(ciphertext []byte) ([]byte, error) {
	return Decrypt(DefaultKey, DefaultIV, ciphertext)
}

func xorKeystream(key, iv, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "aescrypt: new cipher")
	}
	if len(iv) != block.BlockSize() {
		return nil, errors.Errorf("aescrypt: iv must be %d bytes, got %d", block.BlockSize(), len(iv))
	}
	out := make([]byte, len(in))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, in)
	return out, nil
}
