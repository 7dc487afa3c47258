// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	snapshotKeyInfo = "history-sync/snapshot/v1"
	snapshotKeyLen  = 32 // AES-256
	remoteIDSalt    = "salt"
)

// snapshotCipher is the private implementation of [SnapshotCipher].
type snapshotCipher struct {
	random io.Reader
}

// NewSnapshotCipher constructs a [SnapshotCipher] reading nonces from the OS
// CSPRNG.
func NewSnapshotCipher() SnapshotCipher {
	return &snapshotCipher{random: rand.Reader}
}

// Encrypt implements [SnapshotCipher]. A random 12-byte nonce is prepended to
// the ciphertext so that Decrypt can split it out: blob = nonce ‖ ciphertext.
func (c *snapshotCipher) Encrypt(plaintext, secret []byte, projectID string) ([]byte, error) {
	gcm, err := c.gcm(secret, projectID)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(c.random, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt implements [SnapshotCipher].
func (c *snapshotCipher) Decrypt(blob, secret []byte, projectID string) ([]byte, error) {
	gcm, err := c.gcm(secret, projectID)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize+gcm.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	return plaintext, nil
}

func (c *snapshotCipher) gcm(secret []byte, projectID string) (cipher.AEAD, error) {
	key, err := deriveKey(secret, projectID)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// deriveKey expands the project secret into a 256-bit AES key bound to
// projectID.
func deriveKey(secret []byte, projectID string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	key := make([]byte, snapshotKeyLen)
	kdf := hkdf.New(sha256.New, secret, []byte(projectID), []byte(snapshotKeyInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive snapshot key: %w", err)
	}
	return key, nil
}

// RemoteID returns the identifier a project is stored under on the history
// server: hex(SHA-256(projectID ‖ "salt")). The server never learns the raw
// project id.
func RemoteID(projectID string) string {
	sum := sha256.Sum256([]byte(projectID + remoteIDSalt))
	return hex.EncodeToString(sum[:])
}

// KeyHash returns hex(SHA-256(secret)). It is sent along with a push so the
// server can refuse a snapshot encrypted under a different key.
func KeyHash(secret []byte) string {
	sum := sha256.Sum256(secret)
	return hex.EncodeToString(sum[:])
}
