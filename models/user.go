package models

import "time"

// User represents an account entity used for authentication and key derivation.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the unique user login identifier.
	// Typically used during authentication.
	Email string `json:"email"`

	// Password carries the plaintext password on register/login requests only.
	// It is never persisted; the server stores AuthHash instead.
	Password string `json:"password,omitempty"`

	// AuthHash is the server-side representation of the user's password
	// (HMAC-SHA256 under the server hash key). Never exposed via JSON.
	AuthHash string `json:"-"`

	// EncryptionSalt is the per-account random salt (16 bytes, hex-encoded)
	// used by the client to derive the vault encryption key from the
	// master password. The salt itself is not a secret, but it is returned
	// only to the account's own session.
	EncryptionSalt string `json:"encryption_salt,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
