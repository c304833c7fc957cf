package passkeys

import "errors"

// Sentinel errors returned by challenge stores, credential registries, and
// ceremonies. Callers should match against them with [errors.Is]. Each maps
// to a rejected ceremony, never a crash, and none of them carries key
// material or verification internals.
var (
	// ErrChallengeNotFound is returned by Consume when no live challenge
	// exists for the account: none was issued, it expired, or it was
	// already consumed. Consuming is destructive; retrying Consume after
	// this error can never resurrect a deleted challenge.
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrNoCredentialsRegistered is returned when an authentication
	// ceremony is started for an account that has no passkeys.
	ErrNoCredentialsRegistered = errors.New("no passkeys registered")

	// ErrDuplicateCredential is returned when registering a credential id
	// that already exists. Credential ids are globally unique, not just
	// unique per account.
	ErrDuplicateCredential = errors.New("credential already registered")

	// ErrCredentialNotFound is returned when a credential lookup by
	// (account, credential id) matches nothing.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrStaleCounter is returned when a reported signature counter is not
	// strictly greater than the stored one. A stale counter is the
	// protocol's signal of a possibly cloned authenticator, so the
	// authentication is rejected rather than the counter silently kept.
	ErrStaleCounter = errors.New("stale signature counter")

	// ErrVerificationFailed is returned when the cryptographic verification
	// of an attestation or assertion fails. The underlying library error is
	// logged but never surfaced to the client.
	ErrVerificationFailed = errors.New("credential verification failed")

	// ErrVerificationTimeout is returned when verification does not
	// complete within the configured bound. The ceremony fails instead of
	// hanging its caller.
	ErrVerificationTimeout = errors.New("credential verification timed out")
)
