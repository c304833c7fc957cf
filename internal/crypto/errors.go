package crypto

import "errors"

// Sentinel errors returned by the vault key service. Callers should match
// against them with [errors.Is].
var (
	// ErrEmptyPassword is returned by DeriveKey when the password is empty.
	// Key derivation from an empty secret is always a caller bug.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrInvalidSaltLength is returned by DeriveKey when the salt is not
	// exactly 16 bytes long.
	ErrInvalidSaltLength = errors.New("salt must be exactly 16 bytes")

	// ErrInvalidKeyLength is returned when a key passed to Encrypt, Decrypt
	// or ExportKey is not a valid AES-256 key (32 bytes).
	ErrInvalidKeyLength = errors.New("key must be exactly 32 bytes")

	// ErrDecryptionFailed is returned when the GCM authentication tag does
	// not verify: the ciphertext was tampered with, the nonce is corrupted,
	// or the key is wrong. This failure is terminal for the decrypt call.
	ErrDecryptionFailed = errors.New("decryption failed: authentication tag mismatch")

	// ErrMalformedEnvelope is returned when an envelope is structurally
	// invalid (e.g. nonce of the wrong size) before any decryption is
	// attempted.
	ErrMalformedEnvelope = errors.New("malformed cipher envelope")
)
