// Package cryptox provides the sealing primitives for values kept at rest in
// the local vault, plus loading of the vault key file.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/argon2"
)

// keyStretchSalt is fixed: the key file already holds high-entropy random
// material, argon2 here only widens it to a uniform AES key.
var keyStretchSalt = []byte("cmskeeper.vault.v1")

// Box seals and opens byte values with AES-GCM under a fixed 32-byte key.
type Box struct {
	aead cipher.AEAD
}

// NewBox constructs a Box. The key must be a valid AES key length
// (16, 24, or 32 bytes).
func NewBox(key []byte) (*Box, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Box{aead: aead}, nil
}

// Seal encrypts value under a fresh random nonce. The ciphertext and nonce
// are returned separately so callers can store them in distinct columns.
func (b *Box) Seal(value []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, b.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return b.aead.Seal(nil, nonce, value, nil), nonce, nil
}

// Open decrypts a value previously produced by Seal. It fails if either the
// ciphertext or the nonce was tampered with.
func (b *Box) Open(ciphertext, nonce []byte) ([]byte, error) {
	return b.aead.Open(nil, nonce, ciphertext, nil)
}

// LoadKey reads the vault key material from path, creating the file with
// fresh random bytes on first use, and stretches it with argon2id into a
// 32-byte AES key. The file is created with mode 0600.
func LoadKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		raw = make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, raw, 0o600); err != nil {
			return nil, fmt.Errorf("failed to create key file %s: %w", path, err)
		}
	} else if err != nil {
		return nil, err
	}

	if len(raw) < 16 {
		return nil, fmt.Errorf("key file %s is too short", path)
	}

	return argon2.IDKey(raw, keyStretchSalt, 1, 64*1024, 4, 32), nil
}
