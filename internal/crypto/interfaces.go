package crypto

import "github.com/MKhiriev/go-pass-vault/models"

// VaultKeyService owns every cryptographic primitive of the vault's
// end-to-end encryption scheme. It knows nothing about the network, the
// database, or users; its only job is deriving and applying keys.
//
// Scheme:
//
//	Salt = GenerateEncryptionSalt()            (once, at account creation)
//	Key  = DeriveKey(password, salt)           (on every login, client side)
//	Env  = Encrypt(plaintext, Key)             (per vault field)
//	      ... Env stored server-side, Key only in the browser session ...
//	text = Decrypt(Env, Key)
type VaultKeyService interface {
	// GenerateEncryptionSalt generates a random per-account salt
	// (16 bytes / 128 bits). The salt is not secret; it exists so
	// identical passwords derive different keys.
	GenerateEncryptionSalt() ([]byte, error)

	// DeriveKey stretches a password and salt into a 256-bit AES key with
	// PBKDF2-SHA256. Deterministic: the same (password, salt) pair always
	// yields the same key, so the key never needs server-side storage.
	// Returns ErrEmptyPassword or ErrInvalidSaltLength on bad input.
	DeriveKey(password string, salt []byte) ([]byte, error)

	// Encrypt seals plaintext under key with AES-256-GCM, generating a
	// fresh random 12-byte nonce on every call. The returned envelope is
	// safe to store server-side: without the key it is random noise.
	Encrypt(plaintext, key []byte) (models.CipherEnvelope, error)

	// Decrypt opens an envelope produced by Encrypt. Fails hard with
	// ErrDecryptionFailed when the authentication tag does not verify
	// (wrong key, tampered ciphertext, corrupted nonce); it never returns
	// garbage plaintext.
	Decrypt(envelope models.CipherEnvelope, key []byte) ([]byte, error)

	// ExportKey encodes a derived key for short-lived client session
	// storage. The exported string is as sensitive as the password itself:
	// it must never be logged, persisted durably, or sent to the server.
	ExportKey(key []byte) string

	// ImportKey reverses ExportKey. ImportKey(ExportKey(k)) behaves
	// identically to k for all subsequent Encrypt/Decrypt calls.
	ImportKey(exported string) ([]byte, error)
}
