package models

import "time"

// PasskeyChallenge is an outstanding WebAuthn ceremony challenge for one
// account. At most one challenge per account exists at any time: issuing a
// new one overwrites (and thereby invalidates) the previous one, and a
// challenge is consumed exactly once.
//
// Challenges are ceremony-scoped and short-lived. They are never written to
// durable storage beyond the challenge table itself and never reused.
type PasskeyChallenge struct {
	// UserID is the account the challenge was issued for.
	UserID int64

	// Challenge is the base64url-encoded random challenge value presented
	// to the authenticator.
	Challenge string

	// Session is the serialized ceremony session state (expected challenge,
	// allowed credentials, user handle) needed to verify the client
	// response.
	Session []byte

	// ExpiresAt is the moment the challenge stops being acceptable.
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its TTL at the given time.
func (c PasskeyChallenge) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// TableName returns the name of the database table
// associated with the PasskeyChallenge model.
func (c PasskeyChallenge) TableName() string {
	return "passkey_challenges"
}
