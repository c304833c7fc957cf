package models

// TokenResponse is the body returned by login and passkey-finish endpoints:
// a signed session token plus the verification outcome.
type TokenResponse struct {
	// Token is the compact signed JWT the client presents as a bearer token.
	Token string `json:"token"`

	// Verified reports that the credential ceremony completed successfully.
	// Always true in success responses; included for client symmetry with
	// the error shape.
	Verified bool `json:"verified"`
}

// ErrorResponse is the uniform JSON error body of the HTTP API.
type ErrorResponse struct {
	// Error is a short human-readable description of what went wrong.
	// It never contains key material, plaintext, or internal error chains.
	Error string `json:"error"`
}

// MigrationItem is one legacy vault record whose secret was still encrypted
// server-side. The plaintext is exposed once, to the record's owner only,
// so the client can re-encrypt it with the user's derived key.
type MigrationItem struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username,omitempty"`

	// SecretPlain is the legacy secret decrypted with the static server
	// key. Present only inside an authenticated migration response.
	SecretPlain string `json:"password_plain"`

	Website  string `json:"website,omitempty"`
	Category string `json:"category,omitempty"`
	Notes    string `json:"notes,omitempty"`
}
