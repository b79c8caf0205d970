// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureVault Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// codecSalt domain-separates the envelope key from any other value that
// might be derived from the same passphrase. It is fixed because the
// passphrase itself is a static, process-wide shared secret: every client
// must derive the same AES key or records become mutually unreadable.
var codecSalt = []byte("vaultcore/envelope/v1")

// aesCodec is the private implementation of [Codec]. It encrypts with
// AES-256-GCM and encodes envelopes as base64(nonce ‖ ciphertext), so every
// envelope carries the IV it needs and decryption has no side-channel
// parameters.
type aesCodec struct {
	key []byte

	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewAESCodec derives a 256-bit AES key from passphrase with Argon2id
// (OWASP 2024 parameters: 1 iteration, 64 MiB, 4 threads) and returns a
// [Codec] bound to it. Derivation happens once; individual Encrypt/Decrypt
// calls are cheap. Returns ErrEmptyKey for an empty passphrase.
func NewAESCodec(passphrase string) (Codec, error) {
	if passphrase == "" {
		return nil, ErrEmptyKey
	}

	c := &aesCodec{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
	}
	c.key = argon2.IDKey([]byte(passphrase), codecSalt, c.argonTime, c.argonMemory, c.argonThreads, 32)
	return c, nil
}

// Encrypt implements [Codec]. A fresh 12-byte nonce is read from the OS
// CSPRNG for every call and prepended to the GCM ciphertext:
// blob = nonce ‖ ciphertext, returned base64 (standard encoding).
func (c *aesCodec) Encrypt(plaintext string) (string, error) {
	gcm, err := c.gcm()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncrypt, err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: generate nonce: %v", ErrEncrypt, err)
	}

	ct := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, ct...)), nil
}

// Decrypt implements [Codec]. It base64-decodes the envelope, splits out the
// nonce, and opens the ciphertext. An authentication-tag mismatch here
// almost always means the envelope was produced under a different key; that
// is reported as ErrDecrypt rather than returned as garbage plaintext.
func (c *aesCodec) Decrypt(envelope string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", fmt.Errorf("%w: decode envelope: %v", ErrDecrypt, err)
	}

	gcm, err := c.gcm()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, errors.New("envelope too short"))
	}

	nonce, ct := blob[:nonceSize], blob[nonceSize:]
	pt, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("%w: open ciphertext: %v", ErrDecrypt, err)
	}

	// An envelope decrypting to nothing means an empty secret was stored,
	// which Add/Edit validation forbids. Treat it as corrupt so nothing
	// upstream ever trusts an empty result.
	if len(pt) == 0 {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, errors.New("empty plaintext"))
	}

	return string(pt), nil
}

func (c *aesCodec) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
