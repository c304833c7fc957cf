package models

import "time"

// Passkey is one registered WebAuthn public-key credential belonging to a
// user account. Created during a successful registration ceremony; only the
// signature counter is mutated afterwards, on every successful
// authentication.
type Passkey struct {
	// ID is the server-assigned identifier of the record.
	ID int64 `json:"-"`

	// UserID is the account the credential belongs to.
	UserID int64 `json:"-"`

	// CredentialID is the authenticator-assigned credential identifier in
	// canonical base64url form (no padding). Globally unique across all
	// accounts. Every comparison and lookup must use this encoding.
	CredentialID string `json:"credential_id"`

	// PublicKey is the credential public key in COSE format.
	PublicKey []byte `json:"-"`

	// SignCount is the authenticator signature counter. It must strictly
	// increase on every successful authentication; a stale value signals a
	// possibly cloned authenticator.
	SignCount uint32 `json:"sign_count"`

	// Transports lists the transports reported by the authenticator at
	// registration time (e.g. "internal", "usb").
	Transports []string `json:"transports,omitempty"`

	CreatedAt  time.Time `json:"created_at,omitzero"`
	LastUsedAt time.Time `json:"last_used_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the Passkey model.
func (p Passkey) TableName() string {
	return "passkeys"
}
