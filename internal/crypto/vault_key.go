// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	// saltLength is the per-account salt size in bytes.
	saltLength = 16

	// keyLength is the derived AES-256 key size in bytes.
	keyLength = 32

	// nonceLength is the AES-GCM nonce size in bytes.
	nonceLength = 12

	// kdfIterations is the PBKDF2 iteration count. Matches the parameters
	// the browser client uses with the Web Crypto API, so both sides derive
	// bit-identical keys from the same (password, salt) pair.
	kdfIterations = 200_000
)

// vaultKeyService is the private implementation of [VaultKeyService].
type vaultKeyService struct{}

// NewVaultKeyService constructs a [VaultKeyService] using PBKDF2-SHA256 with
// 200,000 iterations for key stretching and AES-256-GCM for authenticated
// encryption.
//
// The returned service is stateless and safe for concurrent use.
func NewVaultKeyService() VaultKeyService {
	return &vaultKeyService{}
}

// GenerateEncryptionSalt implements [VaultKeyService]. It reads 16 random
// bytes from the OS CSPRNG and returns them as the encryption salt. Returns
// an error if the random read fails.
func (v *vaultKeyService) GenerateEncryptionSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey implements [VaultKeyService]. It stretches the password into a
// 256-bit key with PBKDF2-SHA256. The iteration count makes brute-forcing
// the vault key from a leaked salt computationally expensive.
//
// Pure and deterministic, but CPU-bound: callers on latency-sensitive paths
// should not hold locks across this call.
func (v *vaultKeyService) DeriveKey(password string, salt []byte) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if len(salt) != saltLength {
		return nil, ErrInvalidSaltLength
	}

	return pbkdf2.Key([]byte(password), salt, kdfIterations, keyLength, sha256.New), nil
}

// Encrypt implements [VaultKeyService]. It seals plaintext with AES-256-GCM
// under a fresh random 12-byte nonce. The nonce is never derived from the
// content or a counter; reusing a (key, nonce) pair would break
// confidentiality entirely.
func (v *vaultKeyService) Encrypt(plaintext, key []byte) (models.CipherEnvelope, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return models.CipherEnvelope{}, err
	}

	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return models.CipherEnvelope{}, err
	}

	return models.CipherEnvelope{
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// Decrypt implements [VaultKeyService]. It opens an envelope produced by
// [vaultKeyService.Encrypt]. An authentication failure almost always means
// the user supplied a wrong master password, producing a wrong key.
func (v *vaultKeyService) Decrypt(envelope models.CipherEnvelope, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(envelope.Nonce) != nonceLength {
		return nil, ErrMalformedEnvelope
	}

	plaintext, err := gcm.Open(nil, envelope.Nonce, envelope.Ciphertext, nil)
	if err != nil {
		// Deliberately not wrapping the GCM error: its text carries no
		// useful detail and the sentinel keeps callers' errors.Is simple.
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// ExportKey implements [VaultKeyService]. It encodes the key as standard
// base64 for session storage on the client. The result is
// password-equivalent secret material.
func (v *vaultKeyService) ExportKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// ImportKey implements [VaultKeyService]. It decodes a string produced by
// [vaultKeyService.ExportKey] back into key bytes, rejecting values that do
// not decode to a valid AES-256 key.
func (v *vaultKeyService) ImportKey(exported string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(exported)
	if err != nil {
		return nil, err
	}
	if len(key) != keyLength {
		return nil, ErrInvalidKeyLength
	}
	return key, nil
}

// newGCM builds an AES-256-GCM AEAD from the given key, validating the key
// length first so Encrypt and Decrypt report bad keys uniformly.
func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != keyLength {
		return nil, ErrInvalidKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}
