package models

import "time"

// VaultEntry is a single stored credential record in a user's vault.
//
// The secret field is encrypted on the client with a key derived from the
// user's master password; the server persists the envelope opaquely and can
// never recover the plaintext. All other fields are stored in the clear so
// entries can be listed and filtered without decryption.
type VaultEntry struct {
	// ID is the server-assigned identifier of the entry.
	ID int64 `json:"id"`

	// UserID is the owner of the entry. Not exposed via JSON.
	UserID int64 `json:"-"`

	// Title is the display name of the entry (e.g. the site or service).
	Title string `json:"title"`

	// Username is the login name stored with the entry. May be empty.
	Username string `json:"username,omitempty"`

	// Secret is the encrypted password envelope. The server treats it as
	// opaque bytes.
	Secret CipherEnvelope `json:"password"`

	// Website is an optional URL associated with the entry.
	Website string `json:"website,omitempty"`

	// Category groups entries for display purposes. Defaults to "general".
	Category string `json:"category,omitempty"`

	// Notes is optional free-form text. Stored in the clear.
	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the VaultEntry model.
func (e VaultEntry) TableName() string {
	return "vault_entries"
}
